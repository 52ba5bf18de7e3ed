package service

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/wealthpath/expenses/internal/model"
)

// MonthAnalytics provides the per-month views the summary combines.
type MonthAnalytics interface {
	GetCategoryBreakdown(ctx context.Context, month string) ([]model.CategoryBreakdownEntry, error)
	GetDailyTotals(ctx context.Context, month string) ([]model.DailyTotal, error)
}

// MonthBudgetStatus provides budget status for a month.
type MonthBudgetStatus interface {
	GetBudgetStatus(ctx context.Context, month string) (*model.BudgetStatus, error)
}

// DashboardService aggregates one month's analytics and budget status for display.
type DashboardService struct {
	analytics MonthAnalytics
	budgets   MonthBudgetStatus
}

// NewDashboardService creates a new DashboardService with the required dependencies.
func NewDashboardService(analytics MonthAnalytics, budgets MonthBudgetStatus) *DashboardService {
	return &DashboardService{
		analytics: analytics,
		budgets:   budgets,
	}
}

// GetMonthSummary gathers breakdown, daily totals and budget status for month concurrently.
// The first failing read cancels the others and its error is returned as is.
func (s *DashboardService) GetMonthSummary(ctx context.Context, month string) (*model.MonthSummary, error) {
	m, err := parseMonthKey("month", month)
	if err != nil {
		return nil, err
	}

	var (
		breakdown []model.CategoryBreakdownEntry
		daily     []model.DailyTotal
		status    *model.BudgetStatus
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		breakdown, err = s.analytics.GetCategoryBreakdown(gctx, month)
		return err
	})
	g.Go(func() error {
		var err error
		daily, err = s.analytics.GetDailyTotals(gctx, month)
		return err
	})
	g.Go(func() error {
		var err error
		status, err = s.budgets.GetBudgetStatus(gctx, month)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, e := range breakdown {
		total = total.Add(e.Amount)
	}

	return &model.MonthSummary{
		Month:        m,
		TotalSpent:   total,
		Breakdown:    breakdown,
		DailyTotals:  daily,
		BudgetStatus: status,
	}, nil
}
