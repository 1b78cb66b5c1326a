package domain

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date (must be YYYY-MM-DD)")

// DateKey is a timezone-naive calendar date serialized as YYYY-MM-DD.
// Lexicographic order of valid keys is chronological order.
type DateKey string

func NewDateKey(t time.Time) DateKey {
	return DateKey(CivilDate(t).Format(DateLayout))
}

func ParseDateKey(s string) (DateKey, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateKey(t.Format(DateLayout)), nil
}

// Time returns the key as midnight UTC. ok is false for malformed keys.
func (d DateKey) Time() (t time.Time, ok bool) {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (d DateKey) Valid() bool {
	_, ok := d.Time()
	return ok
}

func (d DateKey) String() string {
	return string(d)
}

// Scan accepts a postgres date column as well as its text form.
func (d *DateKey) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewDateKey(v)
		return nil
	case string:
		return d.scanText(v)
	case []byte:
		return d.scanText(string(v))
	case nil:
		*d = ""
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidDate, src)
	}
}

func (d *DateKey) scanText(s string) error {
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	key, err := ParseDateKey(s)
	if err != nil {
		return err
	}
	*d = key
	return nil
}

func (d DateKey) Value() (driver.Value, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, string(d))
	}
	return string(d), nil
}

// AddDays shifts a valid key by n calendar days. Malformed keys are returned unchanged.
func (d DateKey) AddDays(n int) DateKey {
	t, ok := d.Time()
	if !ok {
		return d
	}
	return NewDateKey(t.AddDate(0, 0, n))
}

// CivilDate drops the clock and the zone, keeping the calendar date the caller sees.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts whole calendar days from one date to another.
func DaysBetween(from, to time.Time) int {
	return int(CivilDate(to).Sub(CivilDate(from)).Hours() / 24)
}

// ISOWeek identifies an ISO-8601 week (Monday based, Thursday anchored).
type ISOWeek struct {
	Year int
	Week int
}

func ISOWeekOf(t time.Time) ISOWeek {
	y, w := CivilDate(t).ISOWeek()
	return ISOWeek{Year: y, Week: w}
}

func weeksInYear(year int) int {
	_, w := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return w
}

func (w ISOWeek) Next() ISOWeek {
	if w.Week >= weeksInYear(w.Year) {
		return ISOWeek{Year: w.Year + 1, Week: 1}
	}
	return ISOWeek{Year: w.Year, Week: w.Week + 1}
}

func (w ISOWeek) Prev() ISOWeek {
	if w.Week <= 1 {
		return ISOWeek{Year: w.Year - 1, Week: weeksInYear(w.Year - 1)}
	}
	return ISOWeek{Year: w.Year, Week: w.Week - 1}
}

func (w ISOWeek) Before(other ISOWeek) bool {
	if w.Year != other.Year {
		return w.Year < other.Year
	}
	return w.Week < other.Week
}

func (w ISOWeek) String() string {
	return fmt.Sprintf("%04d-W%02d", w.Year, w.Week)
}
