package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// dateLayouts форматы дат, которые встречаются в таблице
var dateLayouts = []string{
	"2006-01-02",
	"02.01.2006",
	"2.1.2006",
	"02/01/2006",
	"2006/01/02",
	"02-01-2006",
}

// Date is a calendar date without time of day or zone.
type Date struct {
	Year  int        `json:"-"`
	Month time.Month `json:"-"`
	Day   int        `json:"-"`
}

// ParseDate parses a date in any of the layouts used by the sheet.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, fmt.Errorf("%w: empty date", ErrInvalidValue)
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, fmt.Errorf("%w: unrecognized date %q", ErrInvalidValue, s)
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// String returns the canonical YYYY-MM-DD form.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Display returns the DD.MM.YYYY form shown to users.
func (d Date) Display() string {
	return fmt.Sprintf("%02d.%02d.%04d", d.Day, int(d.Month), d.Year)
}

// Time returns midnight of d in loc.
func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool {
	return other.Before(d)
}

// AgeOn returns full years elapsed between d and ref.
func (d Date) AgeOn(ref Date) int {
	age := ref.Year - d.Year
	if ref.Month < d.Month || (ref.Month == d.Month && ref.Day < d.Day) {
		age--
	}
	return age
}

// NextOccurrence returns the first anniversary of d's month/day on or after ref.
// Feb 29 falls on Feb 28 in non-leap years.
func (d Date) NextOccurrence(ref Date) Date {
	next := anniversary(d, ref.Year)
	if next.Before(ref) {
		next = anniversary(d, ref.Year+1)
	}
	return next
}

// DaysUntil returns the number of days from ref to the next anniversary of d.
func (d Date) DaysUntil(ref Date) int {
	next := d.NextOccurrence(ref)
	return int(next.Time(time.UTC).Sub(ref.Time(time.UTC)).Hours() / 24)
}

func anniversary(d Date, year int) Date {
	day := d.Day
	if d.Month == time.February && day == 29 && !isLeap(year) {
		day = 28
	}
	return Date{Year: year, Month: d.Month, Day: day}
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// MarshalJSON encodes the date as "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts any supported layout.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
