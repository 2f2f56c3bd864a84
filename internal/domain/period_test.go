package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	for _, in := range []string{"day", "Day", " WEEK ", "month"} {
		_, err := ParsePeriod(in)
		assert.NoError(t, err, in)
	}
	_, err := ParsePeriod("year")
	assert.Error(t, err)
	assert.Equal(t, "Week", PeriodWeek.Title())
}

func TestPeriodStart(t *testing.T) {
	// Wednesday 14 October 2026, 15:00 local.
	now := base

	tests := []struct {
		name      string
		period    Period
		weekStart time.Weekday
		expected  time.Time
	}{
		{"day", PeriodDay, time.Sunday, time.Date(2026, 10, 14, 0, 0, 0, 0, time.Local)},
		{"week from sunday", PeriodWeek, time.Sunday, time.Date(2026, 10, 11, 0, 0, 0, 0, time.Local)},
		{"week from monday", PeriodWeek, time.Monday, time.Date(2026, 10, 12, 0, 0, 0, 0, time.Local)},
		{"week from wednesday is today", PeriodWeek, time.Wednesday, time.Date(2026, 10, 14, 0, 0, 0, 0, time.Local)},
		{"week from thursday goes back six days", PeriodWeek, time.Thursday, time.Date(2026, 10, 8, 0, 0, 0, 0, time.Local)},
		{"month", PeriodMonth, time.Sunday, time.Date(2026, 10, 1, 0, 0, 0, 0, time.Local)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PeriodStart(now, tt.period, tt.weekStart))
		})
	}
}

func TestPeriodStart_WeekCrossesMonth(t *testing.T) {
	// Thursday 1 October 2026; the week began Sunday 27 September.
	now := time.Date(2026, 10, 1, 9, 30, 0, 0, time.Local)
	assert.Equal(t, time.Date(2026, 9, 27, 0, 0, 0, 0, time.Local), PeriodStart(now, PeriodWeek, time.Sunday))
}

func TestTimeInPeriod(t *testing.T) {
	now := base
	entries := Ledger{
		NewTimeEntry(now.Add(-48*time.Hour), 3600),
		NewTimeEntry(now.Add(-10*time.Minute), 600),
	}

	assert.Equal(t, int64(600), TimeInPeriod(entries, PeriodDay, now, time.Sunday))
	assert.Equal(t, int64(4200), TimeInPeriod(entries, PeriodWeek, now, time.Sunday))
	assert.Equal(t, int64(600), TimeInPeriod(entries, PeriodWeek, now, time.Wednesday))
	assert.Equal(t, int64(4200), TimeInPeriod(entries, PeriodMonth, now, time.Sunday))
}

func TestTimeInPeriod_BoundaryIncluded(t *testing.T) {
	now := base
	midnight := PeriodStart(now, PeriodDay, time.Sunday)
	entries := Ledger{
		NewTimeEntry(midnight, 120),
		NewTimeEntry(midnight.Add(-time.Nanosecond), 999),
	}

	assert.Equal(t, int64(120), TimeInPeriod(entries, PeriodDay, now, time.Sunday))
}

func TestTimeInPeriod_Empty(t *testing.T) {
	assert.Equal(t, int64(0), TimeInPeriod(nil, PeriodDay, base, time.Sunday))
	assert.Equal(t, int64(0), TimeInPeriod(Ledger{}, PeriodMonth, base, time.Sunday))
}

func TestLedger(t *testing.T) {
	var l Ledger
	_, ok := l.Last()
	assert.False(t, ok)

	l = l.Append(NewTimeEntry(base, 10)).Append(NewTimeEntry(base.Add(time.Minute), 20))
	last, ok := l.Last()
	require.True(t, ok)
	assert.Equal(t, int64(20), last.Duration)
	assert.Equal(t, int64(30), l.Total())
	assert.Equal(t, int64(0), NewTimeEntry(base, -5).Duration)
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		seconds  int64
		expected HoursMinutes
		text     string
	}{
		{3661, HoursMinutes{Hours: 1, Minutes: 1}, "1h 1m"},
		{0, HoursMinutes{}, "0h 0m"},
		{59, HoursMinutes{}, "0h 0m"},
		{36000 + 59*60 + 59, HoursMinutes{Hours: 10, Minutes: 59}, "10h 59m"},
		{-20, HoursMinutes{}, "0h 0m"},
	}

	for _, tt := range tests {
		got := FormatTime(tt.seconds)
		assert.Equal(t, tt.expected, got)
		assert.Equal(t, tt.text, got.String())
	}
	assert.Equal(t, "1.5h", Hours(5400))
}
