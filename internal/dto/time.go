package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// LocalTimeLayout is the zone-less wire format. Values are UTC.
const LocalTimeLayout = "2006-01-02T15:04:05"

var inputLayouts = []string{
	LocalTimeLayout,
	"2006-01-02T15:04:05.999999999",
	time.RFC3339Nano,
}

// LocalTime is a UTC timestamp rendered without a zone.
type LocalTime struct {
	time.Time
}

// NewLocalTime wraps t in UTC.
func NewLocalTime(t time.Time) LocalTime {
	return LocalTime{Time: t.UTC()}
}

// ParseLocalTime accepts the wire layout, with or without fractional
// seconds, and RFC 3339.
func ParseLocalTime(s string) (LocalTime, error) {
	s = strings.TrimSpace(s)
	for _, layout := range inputLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return NewLocalTime(t), nil
		}
	}
	return LocalTime{}, fmt.Errorf("invalid timestamp %q, expected %s", s, LocalTimeLayout)
}

func (t LocalTime) String() string {
	return t.UTC().Format(LocalTimeLayout)
}

func (t LocalTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *LocalTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	parsed, err := ParseLocalTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
