package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidMonth is returned when a month value is not an integer in 1..12
var ErrInvalidMonth = errors.New("invalid month")

// Interval is the half-open range [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the interval
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// ParseMonth parses a query value into a month of the year
func ParseMonth(raw string) (time.Month, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: month is required", ErrInvalidMonth)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidMonth, raw)
	}
	if n < 1 || n > 12 {
		return 0, fmt.Errorf("%w: %d is outside 1-12", ErrInvalidMonth, n)
	}
	return time.Month(n), nil
}

// MonthInterval returns [first day of month, first day of next month) in UTC.
// December rolls over into January of the following year.
func MonthInterval(year int, month time.Month) Interval {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Interval{Start: start, End: start.AddDate(0, 1, 0)}
}

// ParseMonthInterval combines ParseMonth and MonthInterval
func ParseMonthInterval(year int, raw string) (Interval, error) {
	month, err := ParseMonth(raw)
	if err != nil {
		return Interval{}, err
	}
	return MonthInterval(year, month), nil
}
