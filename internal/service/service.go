package service

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"shareit/internal/errors"
)

// Clock returns the evaluation time for date rules. Production uses UTC
// wall time; tests pin it.
type Clock func() time.Time

// UTCNow is the production Clock.
func UTCNow() time.Time {
	return time.Now().UTC()
}

// notFound turns a missing row into the domain sentinel tagged with the id.
func notFound(err, sentinel error, id int64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %d", sentinel, id)
	}
	return err
}
