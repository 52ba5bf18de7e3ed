package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/wealthpath/expenses/internal/model"
	"github.com/wealthpath/expenses/internal/scheduler"
	"github.com/wealthpath/expenses/internal/service"
)

type MockExpenseService struct {
	mock.Mock
}

func (m *MockExpenseService) Create(ctx context.Context, input service.ExpenseInput) (*model.Expense, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Expense), args.Error(1)
}

func (m *MockExpenseService) Get(ctx context.Context, id uuid.UUID) (*model.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Expense), args.Error(1)
}

func (m *MockExpenseService) List(ctx context.Context, input service.ListExpensesInput) (*service.ExpensePage, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExpensePage), args.Error(1)
}

func (m *MockExpenseService) Update(ctx context.Context, id uuid.UUID, input service.ExpenseInput) (*model.Expense, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Expense), args.Error(1)
}

func (m *MockExpenseService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) Create(ctx context.Context, input service.CategoryInput) (*model.Category, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryService) Get(ctx context.Context, id string) (*model.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryService) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCategoryService) Update(ctx context.Context, id string, input service.CategoryInput) (*model.Category, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockBudgetService implements BudgetServiceInterface for testing
type MockBudgetService struct {
	mock.Mock
}

func (m *MockBudgetService) Upsert(ctx context.Context, input service.UpsertBudgetInput) (*model.Budget, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Budget), args.Error(1)
}

func (m *MockBudgetService) Get(ctx context.Context, month string) (*model.Budget, error) {
	args := m.Called(ctx, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Budget), args.Error(1)
}

func (m *MockBudgetService) List(ctx context.Context) ([]model.Budget, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Budget), args.Error(1)
}

func (m *MockBudgetService) Delete(ctx context.Context, month string) error {
	return m.Called(ctx, month).Error(0)
}

func (m *MockBudgetService) GetBudgetStatus(ctx context.Context, month string) (*model.BudgetStatus, error) {
	args := m.Called(ctx, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BudgetStatus), args.Error(1)
}

type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) GetCategoryBreakdown(ctx context.Context, month string) ([]model.CategoryBreakdownEntry, error) {
	args := m.Called(ctx, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CategoryBreakdownEntry), args.Error(1)
}

func (m *MockAnalyticsService) GetCategoryBreakdownForRange(ctx context.Context, startDate, endDate string) ([]model.CategoryBreakdownEntry, error) {
	args := m.Called(ctx, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CategoryBreakdownEntry), args.Error(1)
}

func (m *MockAnalyticsService) GetDailyTotals(ctx context.Context, month string) ([]model.DailyTotal, error) {
	args := m.Called(ctx, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DailyTotal), args.Error(1)
}

func (m *MockAnalyticsService) GetMonthlyTotals(ctx context.Context, endMonth string, count int) ([]model.MonthlyTotal, error) {
	args := m.Called(ctx, endMonth, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MonthlyTotal), args.Error(1)
}

func (m *MockAnalyticsService) CompareMonths(ctx context.Context, currentMonth, previousMonth string) ([]model.MonthComparisonEntry, error) {
	args := m.Called(ctx, currentMonth, previousMonth)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MonthComparisonEntry), args.Error(1)
}

func (m *MockAnalyticsService) GetTrendAnalysis(ctx context.Context, month string, windowMonths int) (*model.TrendAnalysis, error) {
	args := m.Called(ctx, month, windowMonths)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TrendAnalysis), args.Error(1)
}

type MockSummaryService struct {
	mock.Mock
}

func (m *MockSummaryService) GetMonthSummary(ctx context.Context, month string) (*model.MonthSummary, error) {
	args := m.Called(ctx, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MonthSummary), args.Error(1)
}

type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) ExportExpensesCSV(ctx context.Context, input service.ListExpensesInput) ([]byte, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockExportService) ExportMonthlyReportPDF(ctx context.Context, month string) ([]byte, error) {
	args := m.Called(ctx, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockAlertScheduler struct {
	mock.Mock
}

func (m *MockAlertScheduler) CheckBudgets(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockAlertScheduler) Health() scheduler.HealthStatus {
	return m.Called().Get(0).(scheduler.HealthStatus)
}
