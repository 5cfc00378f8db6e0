package models

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date (no time-of-day) serialized as YYYY-MM-DD.
// It maps to the Postgres date column of pickup_date.
type Date struct {
	Time time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts strict YYYY-MM-DD input.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// Today truncates the given instant to its UTC calendar date.
func Today(now time.Time) Date {
	y, m, d := now.UTC().Date()
	return NewDate(y, m, d)
}

func (d Date) IsZero() bool       { return d.Time.IsZero() }
func (d Date) Before(o Date) bool { return d.Time.Before(o.Time) }
func (d Date) String() string     { return d.Time.Format(dateLayout) }

func (d Date) Year() int         { return d.Time.Year() }
func (d Date) Month() time.Month { return d.Time.Month() }

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		*d = Date{}
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}
