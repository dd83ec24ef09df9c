package model

import (
	"fmt"
	"time"
)

// DateFormat is the wire representation for observation dates, ISO-8601
// day granularity. Dates are never encoded as epoch numbers.
const DateFormat = "2006-01-02"

// readDateFormat tolerates single-digit month/day on input.
const readDateFormat = "2006-1-2"

// Date is a day-granularity date with no time zone. The zero value is not a
// usable date; use NewDate or ParseDate.
type Date struct {
	y int
	m time.Month
	d int
}

// NewDate returns a normalized Date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Today returns the current date in UTC.
func Today() Date { return NewDate(time.Now().UTC().Date()) }

// ParseDate parses an ISO-8601 date string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(readDateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return NewDate(t.Date()), nil
}

func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Year returns the year of the date.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// Before reports whether d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

func (d Date) String() string { return d.time().Format(DateFormat) }

// MarshalJSON encodes the date as a quoted ISO-8601 string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a quoted ISO-8601 string.
func (d *Date) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("invalid date literal %s", string(b))
	}
	parsed, err := ParseDate(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
