package domain

import (
	"fmt"
	"strings"
	"time"
)

// Period is a calendar bucket used to aggregate ledger entries.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// Periods lists the supported periods in display order.
var Periods = []Period{PeriodDay, PeriodWeek, PeriodMonth}

// ParsePeriod parses a period name, ignoring case and surrounding space.
func ParsePeriod(s string) (Period, error) {
	switch Period(strings.ToLower(strings.TrimSpace(s))) {
	case PeriodDay:
		return PeriodDay, nil
	case PeriodWeek:
		return PeriodWeek, nil
	case PeriodMonth:
		return PeriodMonth, nil
	default:
		return "", fmt.Errorf("unknown period %q", s)
	}
}

// Title returns the capitalised period name.
func (p Period) Title() string {
	if p == "" {
		return ""
	}
	return strings.ToUpper(string(p[:1])) + string(p[1:])
}

// PeriodStart returns local midnight at the start of the period containing
// now. Weeks begin on weekStart.
func PeriodStart(now time.Time, period Period, weekStart time.Weekday) time.Time {
	year, month, day := now.Date()
	loc := now.Location()

	switch period {
	case PeriodWeek:
		back := (int(now.Weekday()) - int(weekStart) + 7) % 7
		return time.Date(year, month, day-back, 0, 0, 0, 0, loc)
	case PeriodMonth:
		return time.Date(year, month, 1, 0, 0, 0, 0, loc)
	default:
		return time.Date(year, month, day, 0, 0, 0, 0, loc)
	}
}

// TimeInPeriod sums the ledger entries closed at or after the start of the
// period containing now.
func TimeInPeriod(entries Ledger, period Period, now time.Time, weekStart time.Weekday) int64 {
	if len(entries) == 0 {
		return 0
	}
	return entries.SumSince(PeriodStart(now, period, weekStart))
}
