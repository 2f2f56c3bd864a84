package services

import (
	"context"
	"time"

	"project-timer/internal/domain"
)

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct {
	tracker   TrackerService
	weekStart time.Weekday
}

// NewReportingService creates a new ReportingService instance. Weeks begin
// on weekStart.
func NewReportingService(tracker TrackerService, weekStart time.Weekday) ReportingService {
	return &reportingServiceImpl{tracker: tracker, weekStart: weekStart}
}

// TimeInPeriod sums the ledger of project id over the current period. The
// running interval is not counted until it is paused or stopped.
func (r *reportingServiceImpl) TimeInPeriod(ctx context.Context, id string, period domain.Period) (int64, error) {
	p, err := r.tracker.Get(ctx, id)
	if err != nil || p == nil {
		return 0, err
	}
	return domain.TimeInPeriod(p.TimeEntries, period, r.tracker.Now(), r.weekStart), nil
}

// Breakdown returns one row per project, in collection order, for the
// current period
func (r *reportingServiceImpl) Breakdown(ctx context.Context, period domain.Period) *Report {
	now := r.tracker.Now()
	projects := r.tracker.List(ctx)

	report := &Report{
		Period: period,
		Start:  domain.PeriodStart(now, period, r.weekStart),
		Rows:   make([]BreakdownRow, 0, len(projects)),
	}
	for _, p := range projects {
		seconds := domain.TimeInPeriod(p.TimeEntries, period, now, r.weekStart)
		report.Rows = append(report.Rows, BreakdownRow{
			ProjectID: p.ID,
			Name:      p.Name,
			Seconds:   seconds,
			Hours:     domain.Hours(seconds),
		})
		report.TotalSeconds += seconds
	}
	return report
}
