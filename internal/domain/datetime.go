package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Wire layouts for deadline fields.
const (
	dateLayout          = "2006-01-02"
	timeOfDayLayout     = "15:04:05"
	timeOfDayLayoutHHMM = "15:04"
)

// Date is a calendar date with no time-of-day and no time zone, matching a
// SQL DATE column. The zero value is not a valid date.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate creates a Date from its components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf extracts the calendar date from t, in t's location.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return Date{Year: year, Month: month, Day: day}
}

// ParseDate parses a date in YYYY-MM-DD form. Impossible calendar dates
// (such as February 30th) are rejected.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidFormat)
	}
	return DateOf(t), nil
}

// String returns the date in YYYY-MM-DD form.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsZero reports whether d is the zero value.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// After reports whether d is later than other.
func (d Date) After(other Date) bool {
	return other.Before(d)
}

// DaysUntil returns the number of whole days from d to other. The result is
// negative when other is earlier than d.
func (d Date) DaysUntil(other Date) int {
	return int(other.midnightUTC().Sub(d.midnightUTC()).Hours() / 24)
}

// At combines the date with a time-of-day into a time.Time in UTC.
func (d Date) At(t TimeOfDay) time.Time {
	return time.Date(d.Year, d.Month, d.Day, t.Hour, t.Minute, t.Second, 0, time.UTC)
}

func (d Date) midnightUTC() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// MarshalJSON encodes the date as a YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a YYYY-MM-DD string.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: date must be a string", ErrInvalidFormat)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// TimeOfDay is a wall-clock time with no date and no time zone, matching a
// SQL TIME column.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// TimeOfDayOf extracts the wall-clock time from t, in t's location.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

// ParseTimeOfDay parses a time in HH:MM:SS or HH:MM form.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{timeOfDayLayout, timeOfDayLayoutHHMM} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDayOf(t), nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("%w: time must be in HH:MM[:SS] format", ErrInvalidFormat)
}

// String returns the time in HH:MM:SS form.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// After reports whether t is later in the day than other.
func (t TimeOfDay) After(other TimeOfDay) bool {
	if t.Hour != other.Hour {
		return t.Hour > other.Hour
	}
	if t.Minute != other.Minute {
		return t.Minute > other.Minute
	}
	return t.Second > other.Second
}

// MarshalJSON encodes the time as an HH:MM:SS string.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes an HH:MM:SS or HH:MM string.
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: time must be a string", ErrInvalidFormat)
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
