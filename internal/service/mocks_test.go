package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/wealthpath/expenses/internal/model"
	"github.com/wealthpath/expenses/internal/repository"
	"github.com/wealthpath/expenses/pkg/datetime"
)

type MockExpenseRepo struct {
	mock.Mock
}

func (m *MockExpenseRepo) Create(ctx context.Context, e *model.Expense) error {
	args := m.Called(ctx, e)
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockExpenseRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Expense), args.Error(1)
}

func (m *MockExpenseRepo) List(ctx context.Context, filters repository.ExpenseFilters) ([]model.Expense, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Expense), args.Error(1)
}

func (m *MockExpenseRepo) ListAll(ctx context.Context, filters repository.ExpenseFilters) ([]model.Expense, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Expense), args.Error(1)
}

func (m *MockExpenseRepo) Count(ctx context.Context, filters repository.ExpenseFilters) (int, error) {
	args := m.Called(ctx, filters)
	return args.Int(0), args.Error(1)
}

func (m *MockExpenseRepo) Update(ctx context.Context, e *model.Expense) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockExpenseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockExpenseRepo) FetchByDateRange(ctx context.Context, start, end datetime.Date) ([]model.Expense, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Expense), args.Error(1)
}

func (m *MockExpenseRepo) FetchByMonthRange(ctx context.Context, start, end datetime.Month) ([]model.Expense, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Expense), args.Error(1)
}

func (m *MockExpenseRepo) FetchByMonth(ctx context.Context, month datetime.Month) ([]model.Expense, error) {
	args := m.Called(ctx, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Expense), args.Error(1)
}

type MockCategoryRepo struct {
	mock.Mock
}

func (m *MockCategoryRepo) Create(ctx context.Context, c *model.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryRepo) GetByID(ctx context.Context, id string) (*model.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepo) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCategoryRepo) Update(ctx context.Context, c *model.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockBudgetRepo struct {
	mock.Mock
}

func (m *MockBudgetRepo) Upsert(ctx context.Context, budget *model.Budget) error {
	args := m.Called(ctx, budget)
	if budget.ID == uuid.Nil {
		budget.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockBudgetRepo) FindByMonth(ctx context.Context, month datetime.Month) (*model.Budget, bool, error) {
	args := m.Called(ctx, month)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*model.Budget), args.Bool(1), args.Error(2)
}

func (m *MockBudgetRepo) GetByMonth(ctx context.Context, month datetime.Month) (*model.Budget, error) {
	args := m.Called(ctx, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Budget), args.Error(1)
}

func (m *MockBudgetRepo) List(ctx context.Context) ([]model.Budget, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Budget), args.Error(1)
}

func (m *MockBudgetRepo) Delete(ctx context.Context, month datetime.Month) error {
	args := m.Called(ctx, month)
	return args.Error(0)
}

// Fixtures

var testCategories = []model.Category{
	{ID: "cat-1", Name: "Food", Color: "#FF5733"},
	{ID: "cat-2", Name: "Transport", Color: "#33FF57"},
	{ID: "cat-3", Name: "Healthcare", Color: "#3357FF"},
	{ID: "cat-4", Name: "Entertainment", Color: "#F1C40F"},
}

func mustMonth(key string) datetime.Month {
	m, err := datetime.ParseMonth(key)
	if err != nil {
		panic(err)
	}
	return m
}

func mustDate(key string) datetime.Date {
	d, err := datetime.ParseDate(key)
	if err != nil {
		panic(err)
	}
	return d
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func expense(date, categoryID, amount string) model.Expense {
	return model.Expense{
		ID:            uuid.New(),
		Date:          mustDate(date),
		Amount:        dec(amount),
		CategoryID:    categoryID,
		PaymentMethod: model.PaymentMethodCash,
	}
}
