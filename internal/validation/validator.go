package validation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"shareit/internal/dto"
)

// Validator implements echo.Validator on top of go-playground/validator.
type Validator struct {
	v *validator.Validate
}

// New builds a Validator. now is the clock used for booking dates.
func New(now func() time.Time) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	v.RegisterStructValidation(bookingDates(now), dto.CreateBookingRequest{})
	return &Validator{v: v}
}

func (v *Validator) Validate(i interface{}) error {
	return v.v.Struct(i)
}

// bookingDates requires start >= now, end > now and end > start. Now is
// truncated to whole seconds, the precision of the wire format.
func bookingDates(now func() time.Time) validator.StructLevelFunc {
	return func(sl validator.StructLevel) {
		req := sl.Current().Interface().(dto.CreateBookingRequest)
		if req.Start == nil || req.End == nil {
			return
		}
		t := now().UTC().Truncate(time.Second)
		if req.Start.Before(t) {
			sl.ReportError(req.Start, "start", "Start", "notpast", "")
		}
		if !req.End.After(t) {
			sl.ReportError(req.End, "end", "End", "future", "")
		}
		if !req.End.After(req.Start.Time) {
			sl.ReportError(req.End, "end", "End", "gtstart", "")
		}
	}
}

// Message renders validation failures as one human-readable line.
func Message(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error()
	}
	parts := make([]string, 0, len(ve))
	for _, fe := range ve {
		parts = append(parts, describe(fe))
	}
	return strings.Join(parts, "; ")
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s must not be blank", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "notpast":
		return fmt.Sprintf("%s must not be in the past", field)
	case "future":
		return fmt.Sprintf("%s must be in the future", field)
	case "gtstart":
		return fmt.Sprintf("%s must be after start", field)
	}
	return fmt.Sprintf("%s failed %s", field, fe.Tag())
}
