package date

import (
	"fmt"
	"time"
)

// Layout is the ISO 8601 calendar date format used for every persisted date.
const Layout = "2006-01-02"

// Date is a calendar date without a time of day or a location.
// The zero value is earlier than any valid date and is used as the minimum date.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// New returns the date for the given year, month and day, normalizing overflowing values
// the way time.Date does (e.g. February 30 becomes March 2).
func New(year int, month time.Month, day int) Date {
	return FromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// FromTime returns the calendar date of t in t's own location.
func FromTime(t time.Time) Date {
	year, month, day := t.Date()
	return Date{Year: year, Month: month, Day: day}
}

// Parse converts an ISO calendar date e.g. "2025-01-31" to Date
func Parse(s string) (Date, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return FromTime(t), nil
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

// String returns the ISO calendar date e.g. "2025-01-31"
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Compare returns -1 when d is before other, 1 when it is after and 0 when both are the same date.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return cmpInt(d.Year, other.Year)
	case d.Month != other.Month:
		return cmpInt(int(d.Month), int(other.Month))
	default:
		return cmpInt(d.Day, other.Day)
	}
}

func (d Date) Equal(other Date) bool {
	return d == other
}

func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

func (d Date) After(other Date) bool {
	return d.Compare(other) > 0
}

func (d Date) AddDays(days int) Date {
	return New(d.Year, d.Month, d.Day+days)
}

// AddMonths moves the date by the given number of months. When the resulting month is shorter,
// the day is clamped to its last day (January 31 + 1 month is February 28 or 29).
func (d Date) AddMonths(months int) Date {
	firstOfMonth := time.Date(d.Year, d.Month+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	day := min(d.Day, daysIn(firstOfMonth.Year(), firstOfMonth.Month()))
	return Date{Year: firstOfMonth.Year(), Month: firstOfMonth.Month(), Day: day}
}

// DaysBetween returns the number of days from `from` to `to`; positive when `to` is later.
func DaysBetween(from, to Date) int {
	return int((to.Time().Unix() - from.Time().Unix()) / 86400)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func cmpInt(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
