package core

import (
	"fmt"
	"time"
)

// Month identifies a calendar month. All aggregations are windowed to the
// inclusive range [Start, End] of a Month.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month a timestamp falls in.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth reads a "YYYY-MM" label.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("parse month %q: want YYYY-MM", s)
	}
	return MonthOf(t), nil
}

// Start is the first calendar day of the month.
func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End is the last calendar day of the month, computed as day zero of the
// following month.
func (m Month) End() time.Time {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC)
}

// Days returns the number of calendar days in the month.
func (m Month) Days() int {
	return m.End().Day()
}

// Contains reports whether the date falls inside the month window. Zero
// dates are never contained.
func (m Month) Contains(d Date) bool {
	if d.IsZero() {
		return false
	}
	y, mo, _ := d.Date()
	return y == m.Year && mo == m.Month
}

// AddMonths steps the month forward (or back, for negative n), normalizing
// across year boundaries.
func (m Month) AddMonths(n int) Month {
	return MonthOf(m.Start().AddDate(0, n, 0))
}

// Label is the short display form, e.g. "Jan/25".
func (m Month) Label() string {
	return m.Start().Format("Jan/06")
}

func (m Month) String() string {
	return m.Start().Format("2006-01")
}
