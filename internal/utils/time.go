package utils

import (
	"fmt"
	"time"

	"github.com/kms-app/dinnerboard/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// ParseDayKey parses a day-key string (YYYY-MM-DD) in the specified timezone.
func ParseDayKey(dayKey string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dayKey)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// ValidateDayKey checks if the string matches the standard date format.
func ValidateDayKey(dayKey string) bool {
	_, err := time.Parse(constants.DateFormat, dayKey)
	return err == nil
}

// ValidateTimeFormat checks if the string matches the HH:MM annotation format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := time.Parse(constants.TimeFormat, timeStr)
	return err == nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
