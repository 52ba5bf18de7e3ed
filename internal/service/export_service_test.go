package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wealthpath/expenses/internal/apperror"
	"github.com/wealthpath/expenses/internal/model"
	"github.com/wealthpath/expenses/internal/repository"
	"github.com/wealthpath/expenses/pkg/currency"
)

type MockSummaryProvider struct {
	mock.Mock
}

func (m *MockSummaryProvider) GetMonthSummary(ctx context.Context, month string) (*model.MonthSummary, error) {
	args := m.Called(ctx, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MonthSummary), args.Error(1)
}

func TestExportService_ExportExpensesCSV(t *testing.T) {
	t.Parallel()

	expenseRepo := new(MockExpenseRepo)
	categoryRepo := new(MockCategoryRepo)
	svc := NewExportService(expenseRepo, categoryRepo, new(MockSummaryProvider), currency.USD)

	lunch := expense("2023-03-14", "cat-1", "12.5")
	lunch.Description = "Lunch, with team"
	orphan := expense("2023-03-02", "gone", "3")

	categoryID := "cat-1"
	byCategory := mock.MatchedBy(func(f repository.ExpenseFilters) bool {
		return f.CategoryID != nil && *f.CategoryID == categoryID
	})
	expenseRepo.On("Count", mock.Anything, byCategory).Return(2, nil)
	expenseRepo.On("ListAll", mock.Anything, byCategory).Return([]model.Expense{lunch, orphan}, nil)
	categoryRepo.On("List", mock.Anything).Return(testCategories, nil)

	data, err := svc.ExportExpensesCSV(context.Background(), ListExpensesInput{CategoryID: &categoryID, Page: 4})
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Date", "Category", "Description", "Payment Method", "Amount"}, records[0])
	assert.Equal(t, []string{"2023-03-14", "Food", "Lunch, with team", "cash", "12.50"}, records[1])
	assert.Equal(t, "gone", records[2][1])
}

func TestExportService_ExportExpensesCSV_Error(t *testing.T) {
	t.Parallel()

	expenseRepo := new(MockExpenseRepo)
	svc := NewExportService(expenseRepo, new(MockCategoryRepo), new(MockSummaryProvider), currency.USD)
	dbErr := errors.New("db down")
	expenseRepo.On("Count", mock.Anything, mock.Anything).Return(1, nil)
	expenseRepo.On("ListAll", mock.Anything, mock.Anything).Return(nil, dbErr)

	_, err := svc.ExportExpensesCSV(context.Background(), ListExpensesInput{})
	assert.ErrorIs(t, err, dbErr)
}

func TestExportService_ExportExpensesCSV_TooManyRows(t *testing.T) {
	t.Parallel()

	expenseRepo := new(MockExpenseRepo)
	svc := NewExportService(expenseRepo, new(MockCategoryRepo), new(MockSummaryProvider), currency.USD)
	expenseRepo.On("Count", mock.Anything, mock.Anything).Return(maxExportRows+1, nil)

	data, err := svc.ExportExpensesCSV(context.Background(), ListExpensesInput{})
	assert.Nil(t, data)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.GetStatusCode(err))
	assert.Contains(t, apperror.GetMessage(err), "narrow the filters")
	expenseRepo.AssertNotCalled(t, "ListAll", mock.Anything, mock.Anything)
}

func TestExportService_ExportExpensesCSV_AtLimit(t *testing.T) {
	t.Parallel()

	expenseRepo := new(MockExpenseRepo)
	categoryRepo := new(MockCategoryRepo)
	svc := NewExportService(expenseRepo, categoryRepo, new(MockSummaryProvider), currency.USD)
	expenseRepo.On("Count", mock.Anything, mock.Anything).Return(maxExportRows, nil)
	expenseRepo.On("ListAll", mock.Anything, mock.Anything).Return([]model.Expense{expense("2023-03-01", "cat-1", "1")}, nil)
	categoryRepo.On("List", mock.Anything).Return(testCategories, nil)

	_, err := svc.ExportExpensesCSV(context.Background(), ListExpensesInput{})
	assert.NoError(t, err)
}

func TestExportService_ExportMonthlyReportPDF(t *testing.T) {
	t.Parallel()

	summaries := new(MockSummaryProvider)
	svc := NewExportService(new(MockExpenseRepo), new(MockCategoryRepo), summaries, currency.EUR)
	svc.now = func() time.Time { return time.Date(2023, 4, 1, 9, 0, 0, 0, time.UTC) }

	summaries.On("GetMonthSummary", mock.Anything, "2023-03").Return(&model.MonthSummary{
		Month:      mustMonth("2023-03"),
		TotalSpent: dec("400"),
		Breakdown: []model.CategoryBreakdownEntry{
			{CategoryID: "cat-1", CategoryName: "Food", Amount: dec("250"), Percentage: 62.5},
			{CategoryID: "cat-2", CategoryName: "Transport", Amount: dec("150"), Percentage: 37.5},
		},
		DailyTotals: []model.DailyTotal{{Date: mustDate("2023-03-02"), Amount: dec("400")}},
		BudgetStatus: &model.BudgetStatus{
			Month:          mustMonth("2023-03"),
			TotalBudget:    dec("500"),
			TotalSpent:     dec("400"),
			TotalRemaining: dec("100"),
			PercentageUsed: 80,
			Categories: []model.CategoryBudgetStatus{
				{CategoryID: "cat-1", CategoryName: "Food", Budgeted: dec("250"), Spent: dec("250"), Percentage: 100, Status: model.BudgetStatusExceeded},
			},
		},
	}, nil)

	data, err := svc.ExportMonthlyReportPDF(context.Background(), "2023-03")
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Equal(t, 1, reader.NumPage())

	text, err := reader.GetPlainText()
	require.NoError(t, err)
	content, err := io.ReadAll(text)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Expense Report")
}

func TestExportService_ExportMonthlyReportPDF_SummaryError(t *testing.T) {
	t.Parallel()

	summaries := new(MockSummaryProvider)
	svc := NewExportService(new(MockExpenseRepo), new(MockCategoryRepo), summaries, currency.USD)
	dbErr := errors.New("boom")
	summaries.On("GetMonthSummary", mock.Anything, "2023-03").Return(nil, dbErr)

	_, err := svc.ExportMonthlyReportPDF(context.Background(), "2023-03")
	assert.ErrorIs(t, err, dbErr)
}
