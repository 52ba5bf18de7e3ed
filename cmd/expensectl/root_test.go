package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wealthpath/expenses/internal/model"
	"github.com/wealthpath/expenses/pkg/datetime"
)

type stubReports struct {
	breakdown []model.CategoryBreakdownEntry
	trend     *model.TrendAnalysis
	status    *model.BudgetStatus

	gotMonth  string
	gotWindow int
}

func (s *stubReports) GetCategoryBreakdown(_ context.Context, month string) ([]model.CategoryBreakdownEntry, error) {
	s.gotMonth = month
	return s.breakdown, nil
}

func (s *stubReports) GetTrendAnalysis(_ context.Context, month string, window int) (*model.TrendAnalysis, error) {
	s.gotMonth, s.gotWindow = month, window
	return s.trend, nil
}

func (s *stubReports) GetBudgetStatus(_ context.Context, month string) (*model.BudgetStatus, error) {
	s.gotMonth = month
	return s.status, nil
}

// useStub points the report commands at src for the duration of the test.
func useStub(t *testing.T, src reportSource) {
	t.Helper()
	previous := withReports
	withReports = func(_ context.Context, _ *options, run func(reportSource) error) error {
		return run(src)
	}
	t.Cleanup(func() { withReports = previous })
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DEFAULT_CURRENCY", "USD")

	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootHelp(t *testing.T) {
	out, err := run(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "migrate")
	assert.Contains(t, out, "report")
}

func TestReportBreakdown_Text(t *testing.T) {
	stub := &stubReports{breakdown: []model.CategoryBreakdownEntry{
		{CategoryID: "cat-1", CategoryName: "Food", Amount: decimal.RequireFromString("1200.50"), Percentage: 75},
		{CategoryID: "cat-2", CategoryName: "Transport", Amount: decimal.RequireFromString("400.17"), Percentage: 25},
	}}
	useStub(t, stub)

	out, err := run(t, "report", "breakdown", "--month", "2023-03")
	require.NoError(t, err)

	assert.Equal(t, "2023-03", stub.gotMonth)
	assert.Contains(t, out, "CATEGORY")
	assert.Contains(t, out, "Food")
	assert.Contains(t, out, "$1,200.50")
	assert.Contains(t, out, "75.0%")
}

func TestReportBreakdown_Empty(t *testing.T) {
	useStub(t, &stubReports{breakdown: []model.CategoryBreakdownEntry{}})

	out, err := run(t, "report", "breakdown", "--month", "2023-03")
	require.NoError(t, err)
	assert.Equal(t, "No spending recorded.\n", out)
}

func TestReportTrend_JSON(t *testing.T) {
	month := datetime.Month{Year: 2023, Month: 3}
	stub := &stubReports{trend: &model.TrendAnalysis{
		Month:          month,
		WindowMonths:   3,
		TrendDirection: model.TrendIncreasing,
		Insights:       []string{"Your spending has been trending upward over the last 3 months"},
	}}
	useStub(t, stub)

	out, err := run(t, "report", "trend", "--month", "2023-03", "--months", "3", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, 3, stub.gotWindow)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "increasing", decoded["trendDirection"])
}

func TestReportTrend_DefaultWindow(t *testing.T) {
	stub := &stubReports{trend: &model.TrendAnalysis{TrendDirection: model.TrendStable}}
	useStub(t, stub)

	out, err := run(t, "report", "trend", "--month", "2023-03")
	require.NoError(t, err)
	assert.Equal(t, 6, stub.gotWindow)
	assert.Contains(t, out, "Direction: stable")
}

func TestReportBudget_Text(t *testing.T) {
	useStub(t, &stubReports{status: &model.BudgetStatus{
		Month:          datetime.Month{Year: 2023, Month: 3},
		TotalBudget:    decimal.NewFromInt(400),
		TotalSpent:     decimal.NewFromInt(380),
		TotalRemaining: decimal.NewFromInt(20),
		PercentageUsed: 95,
		Categories: []model.CategoryBudgetStatus{
			{CategoryName: "Transport", Budgeted: decimal.NewFromInt(100), Spent: decimal.NewFromInt(150), Percentage: 150, Status: model.BudgetStatusExceeded},
		},
	}})

	out, err := run(t, "report", "budget", "--month", "2023-03")
	require.NoError(t, err)
	assert.Contains(t, out, "$380.00 spent of $400.00 (95%), $20.00 remaining")
	assert.Contains(t, out, "exceeded")
}

func TestReport_RejectsBadFlags(t *testing.T) {
	useStub(t, &stubReports{})

	tests := []struct {
		name string
		args []string
	}{
		{"bad month", []string{"report", "breakdown", "--month", "2023-13"}},
		{"bad format", []string{"report", "budget", "--month", "2023-03", "--format", "yaml"}},
		{"window too small", []string{"report", "trend", "--month", "2023-03", "--months", "0"}},
		{"window too large", []string{"report", "trend", "--month", "2023-03", "--months", "25"}},
		{"unexpected arg", []string{"report", "breakdown", "extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestMigrateDown_RejectsNonPositiveSteps(t *testing.T) {
	_, err := run(t, "migrate", "down", "--steps", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--steps")
}
