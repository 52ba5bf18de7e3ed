package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/wealthpath/expenses/internal/model"
	"github.com/wealthpath/expenses/internal/scheduler"
	"github.com/wealthpath/expenses/internal/service"
)

// ExpenseServiceInterface for handler testing
type ExpenseServiceInterface interface {
	Create(ctx context.Context, input service.ExpenseInput) (*model.Expense, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Expense, error)
	List(ctx context.Context, input service.ListExpensesInput) (*service.ExpensePage, error)
	Update(ctx context.Context, id uuid.UUID, input service.ExpenseInput) (*model.Expense, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryServiceInterface for handler testing
type CategoryServiceInterface interface {
	Create(ctx context.Context, input service.CategoryInput) (*model.Category, error)
	Get(ctx context.Context, id string) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	Update(ctx context.Context, id string, input service.CategoryInput) (*model.Category, error)
	Delete(ctx context.Context, id string) error
}

// BudgetServiceInterface for handler testing
type BudgetServiceInterface interface {
	Upsert(ctx context.Context, input service.UpsertBudgetInput) (*model.Budget, error)
	Get(ctx context.Context, month string) (*model.Budget, error)
	List(ctx context.Context) ([]model.Budget, error)
	Delete(ctx context.Context, month string) error
	GetBudgetStatus(ctx context.Context, month string) (*model.BudgetStatus, error)
}

// AnalyticsServiceInterface for handler testing
type AnalyticsServiceInterface interface {
	GetCategoryBreakdown(ctx context.Context, month string) ([]model.CategoryBreakdownEntry, error)
	GetCategoryBreakdownForRange(ctx context.Context, startDate, endDate string) ([]model.CategoryBreakdownEntry, error)
	GetDailyTotals(ctx context.Context, month string) ([]model.DailyTotal, error)
	GetMonthlyTotals(ctx context.Context, endMonth string, count int) ([]model.MonthlyTotal, error)
	CompareMonths(ctx context.Context, currentMonth, previousMonth string) ([]model.MonthComparisonEntry, error)
	GetTrendAnalysis(ctx context.Context, month string, windowMonths int) (*model.TrendAnalysis, error)
}

// SummaryServiceInterface for handler testing
type SummaryServiceInterface interface {
	GetMonthSummary(ctx context.Context, month string) (*model.MonthSummary, error)
}

// ExportServiceInterface for handler testing
type ExportServiceInterface interface {
	ExportExpensesCSV(ctx context.Context, input service.ListExpensesInput) ([]byte, error)
	ExportMonthlyReportPDF(ctx context.Context, month string) ([]byte, error)
}

// AlertSchedulerInterface for handler testing
type AlertSchedulerInterface interface {
	CheckBudgets(ctx context.Context) (int, error)
	Health() scheduler.HealthStatus
}
