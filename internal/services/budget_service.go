package services

import (
	"context"

	"project-timer/internal/domain"
)

// budgetServiceImpl implements the BudgetService interface
type budgetServiceImpl struct {
	tracker TrackerService
}

// NewBudgetService creates a new BudgetService instance
func NewBudgetService(tracker TrackerService) BudgetService {
	return &budgetServiceImpl{tracker: tracker}
}

// Progress returns the budget of project id measured against its live
// total, or nil when it has no budget.
func (b *budgetServiceImpl) Progress(ctx context.Context, id string) (*domain.Budget, error) {
	p, err := b.tracker.Get(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	budget, ok := b.tracker.Limits(ctx).Progress(id, p.DisplayedTotal(b.tracker.Now()))
	if !ok {
		return nil, nil
	}
	return &budget, nil
}

// Status returns every project with its live total and budget
func (b *budgetServiceImpl) Status(ctx context.Context) []ProjectStatus {
	projects := b.tracker.List(ctx)
	limits := b.tracker.Limits(ctx)
	now := b.tracker.Now()

	out := make([]ProjectStatus, 0, len(projects))
	for _, p := range projects {
		status := ProjectStatus{
			Project: p,
			Total:   p.DisplayedTotal(now),
		}
		if budget, ok := limits.Progress(p.ID, status.Total); ok {
			status.Budget = &budget
		}
		if last, ok := p.TimeEntries.Last(); ok {
			ts := last.Timestamp
			status.LastEntry = &ts
		}
		out = append(out, status)
	}
	return out
}
