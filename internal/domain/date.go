package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date is a calendar date in YYYY-MM-DD form, with no time component.
// Due dates and payment dates are calendar dates, not instants, so the
// string is decomposed by hand and anchored at local midnight instead of
// going through time-zone-sensitive ISO parsing.
type Date string

func (d Date) IsZero() bool {
	return d == ""
}

// Time converts the date to local midnight of that day.
func (d Date) Time() (time.Time, error) {
	parts := strings.Split(string(d), "-")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("invalid date %q", string(d))
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", string(d), err)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", string(d), err)
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", string(d), err)
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("invalid date %q", string(d))
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), nil
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	return Date(fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day()))
}

// DaysBetween returns the whole-day difference to minus from, comparing
// local midnights.
func DaysBetween(from, to time.Time) int {
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.Local)
	to = time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.Local)
	return int(to.Sub(from).Hours() / 24)
}
