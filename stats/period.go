package stats

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Period selects the window used to filter transactions.
type Period string

const (
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
	PeriodCustom  Period = "custom"
)

// ErrUnknownPeriod is returned by ParsePeriod for values outside the selector set.
var ErrUnknownPeriod = errors.New("unknown period")

// ParsePeriod validates a period selector.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case PeriodMonth, PeriodQuarter, PeriodYear, PeriodCustom:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPeriod, s)
	}
}

// Range is an inclusive date range. A nil End means the range is open-ended:
// month, quarter and year select everything from Start onward, future-dated
// entries included.
type Range struct {
	Start time.Time  `json:"start"`
	End   *time.Time `json:"end,omitempty"`
}

// Contains reports whether date falls within the range, compared by calendar day.
func (r Range) Contains(date time.Time) bool {
	d := dayOf(date)
	if d.Before(dayOf(r.Start)) {
		return false
	}
	if r.End != nil && d.After(dayOf(*r.End)) {
		return false
	}
	return true
}

// Bounded reports whether the range has an upper bound.
func (r Range) Bounded() bool {
	return r.End != nil
}

// dayOf strips the clock and zone so that dates compare as calendar days.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Resolve converts a period selector into a concrete range. It returns nil,
// meaning no period filtering, when a custom period lacks a bound or the
// selector is unknown.
func Resolve(period Period, now time.Time, customStart, customEnd *time.Time) *Range {
	switch period {
	case PeriodMonth:
		return &Range{Start: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())}
	case PeriodQuarter:
		first := time.Month((int(now.Month())-1)/3*3 + 1)
		return &Range{Start: time.Date(now.Year(), first, 1, 0, 0, 0, 0, now.Location())}
	case PeriodYear:
		return &Range{Start: time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())}
	case PeriodCustom:
		if customStart == nil || customEnd == nil {
			return nil
		}
		end := *customEnd
		return &Range{Start: *customStart, End: &end}
	default:
		return nil
	}
}

// BudgetWindow is the range a budget's allowance applies to at now:
// the current month for monthly budgets, the current year for yearly ones.
func BudgetWindow(period BudgetPeriod, now time.Time) *Range {
	if period == BudgetYearly {
		return Resolve(PeriodYear, now, nil, nil)
	}
	return Resolve(PeriodMonth, now, nil, nil)
}
