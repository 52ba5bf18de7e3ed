package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/wealthpath/expenses/internal/apperror"
	"github.com/wealthpath/expenses/internal/model"
	"github.com/wealthpath/expenses/pkg/datetime"
)

// DefaultCategoryColor is used for expenses whose category has no metadata.
const DefaultCategoryColor = "#9E9E9E"

// DefaultMonthlyTotalsCount is the number of months returned when the caller does not ask for a count.
const DefaultMonthlyTotalsCount = 6

// MaxSeriesMonths bounds monthly series and trend windows.
const MaxSeriesMonths = 24

var hundred = decimal.NewFromInt(100)

// ExpenseRepoForAnalytics provides the expense reads the analytics engine needs.
// Ranges are inclusive on both ends.
type ExpenseRepoForAnalytics interface {
	FetchByDateRange(ctx context.Context, start, end datetime.Date) ([]model.Expense, error)
	FetchByMonthRange(ctx context.Context, start, end datetime.Month) ([]model.Expense, error)
	FetchByMonth(ctx context.Context, month datetime.Month) ([]model.Expense, error)
}

// CategoryLister provides category metadata (name, color).
type CategoryLister interface {
	List(ctx context.Context) ([]model.Category, error)
}

// AnalyticsService rolls expenses up into breakdowns, time series, comparisons and trends.
// It holds no state between calls; every result is recomputed from the repositories.
type AnalyticsService struct {
	expenseRepo  ExpenseRepoForAnalytics
	categoryRepo CategoryLister
}

// NewAnalyticsService creates a new AnalyticsService with the given repositories.
func NewAnalyticsService(expenseRepo ExpenseRepoForAnalytics, categoryRepo CategoryLister) *AnalyticsService {
	return &AnalyticsService{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
	}
}

// GetCategoryBreakdown returns per-category totals for month, largest first.
func (s *AnalyticsService) GetCategoryBreakdown(ctx context.Context, month string) ([]model.CategoryBreakdownEntry, error) {
	m, err := parseMonthKey("month", month)
	if err != nil {
		return nil, err
	}
	return s.breakdownForMonth(ctx, m)
}

// GetCategoryBreakdownForRange returns per-category totals for an inclusive date range.
func (s *AnalyticsService) GetCategoryBreakdownForRange(ctx context.Context, startDate, endDate string) ([]model.CategoryBreakdownEntry, error) {
	start, err := parseDateKey("startDate", startDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDateKey("endDate", endDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start.Time) {
		return nil, apperror.InvalidArgument("endDate", "endDate must not be before startDate")
	}

	expenses, err := s.expenseRepo.FetchByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetching expenses %s..%s: %w", start, end, err)
	}
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return buildBreakdown(expenses, categories), nil
}

func (s *AnalyticsService) breakdownForMonth(ctx context.Context, month datetime.Month) ([]model.CategoryBreakdownEntry, error) {
	expenses, err := s.expenseRepo.FetchByMonth(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("fetching expenses for %s: %w", month, err)
	}
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return buildBreakdown(expenses, categories), nil
}

// GetDailyTotals returns one entry per day of month that has spending, oldest first.
// Days without expenses are omitted.
func (s *AnalyticsService) GetDailyTotals(ctx context.Context, month string) ([]model.DailyTotal, error) {
	m, err := parseMonthKey("month", month)
	if err != nil {
		return nil, err
	}

	expenses, err := s.expenseRepo.FetchByMonth(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("fetching expenses for %s: %w", m, err)
	}
	return buildDailyTotals(expenses), nil
}

// GetMonthlyTotals returns count consecutive months ending at endMonth, oldest first.
// Months without spending are reported as zero. A non-positive count yields an empty list
// and a count above MaxSeriesMonths is rejected.
func (s *AnalyticsService) GetMonthlyTotals(ctx context.Context, endMonth string, count int) ([]model.MonthlyTotal, error) {
	end, err := parseMonthKey("endMonth", endMonth)
	if err != nil {
		return nil, err
	}
	if count > MaxSeriesMonths {
		return nil, apperror.InvalidArgument("count", fmt.Sprintf("count must be at most %d, got %d", MaxSeriesMonths, count))
	}
	return s.monthlyTotals(ctx, end, count)
}

func (s *AnalyticsService) monthlyTotals(ctx context.Context, end datetime.Month, count int) ([]model.MonthlyTotal, error) {
	months := datetime.MonthsEndingAt(end, count)
	if len(months) == 0 {
		return []model.MonthlyTotal{}, nil
	}

	expenses, err := s.expenseRepo.FetchByMonthRange(ctx, months[0], end)
	if err != nil {
		return nil, fmt.Errorf("fetching expenses %s..%s: %w", months[0], end, err)
	}
	return buildMonthlyTotals(expenses, months), nil
}

// CompareMonths diffs the category breakdowns of two months, biggest swings first.
// The months need not be adjacent.
func (s *AnalyticsService) CompareMonths(ctx context.Context, currentMonth, previousMonth string) ([]model.MonthComparisonEntry, error) {
	current, err := parseMonthKey("current", currentMonth)
	if err != nil {
		return nil, err
	}
	previous, err := parseMonthKey("previous", previousMonth)
	if err != nil {
		return nil, err
	}

	currentBreakdown, err := s.breakdownForMonth(ctx, current)
	if err != nil {
		return nil, err
	}
	previousBreakdown, err := s.breakdownForMonth(ctx, previous)
	if err != nil {
		return nil, err
	}
	return compareBreakdowns(currentBreakdown, previousBreakdown), nil
}

func buildBreakdown(expenses []model.Expense, categories []model.Category) []model.CategoryBreakdownEntry {
	totals := make(map[string]decimal.Decimal)
	total := decimal.Zero
	for _, e := range expenses {
		totals[e.CategoryID] = totals[e.CategoryID].Add(e.Amount)
		total = total.Add(e.Amount)
	}

	lookup := indexCategories(categories)
	entries := make([]model.CategoryBreakdownEntry, 0, len(totals))
	for id, amount := range totals {
		if amount.IsZero() {
			continue
		}

		entry := model.CategoryBreakdownEntry{
			CategoryID:   id,
			CategoryName: id,
			Amount:       amount,
			Color:        DefaultCategoryColor,
		}
		if c, ok := lookup[id]; ok {
			entry.CategoryName = c.Name
			if c.Color != "" {
				entry.Color = c.Color
			}
		}
		if total.IsPositive() {
			entry.Percentage = amount.Div(total).Mul(hundred).InexactFloat64()
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if c := entries[i].Amount.Cmp(entries[j].Amount); c != 0 {
			return c > 0
		}
		return entries[i].CategoryID < entries[j].CategoryID
	})
	return entries
}

func buildDailyTotals(expenses []model.Expense) []model.DailyTotal {
	index := make(map[string]int)
	totals := make([]model.DailyTotal, 0)
	for _, e := range expenses {
		key := e.Date.String()
		i, ok := index[key]
		if !ok {
			i = len(totals)
			index[key] = i
			totals = append(totals, model.DailyTotal{Date: e.Date, Amount: decimal.Zero})
		}
		totals[i].Amount = totals[i].Amount.Add(e.Amount)
	}

	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Date.Before(totals[j].Date.Time)
	})
	return totals
}

func buildMonthlyTotals(expenses []model.Expense, months []datetime.Month) []model.MonthlyTotal {
	index := make(map[datetime.Month]int, len(months))
	totals := make([]model.MonthlyTotal, len(months))
	for i, m := range months {
		index[m] = i
		totals[i] = model.MonthlyTotal{Month: m, Amount: decimal.Zero}
	}

	for _, e := range expenses {
		if i, ok := index[e.Date.CalendarMonth()]; ok {
			totals[i].Amount = totals[i].Amount.Add(e.Amount)
		}
	}
	return totals
}

func compareBreakdowns(current, previous []model.CategoryBreakdownEntry) []model.MonthComparisonEntry {
	type pair struct {
		name     string
		current  decimal.Decimal
		previous decimal.Decimal
	}

	pairs := make(map[string]*pair)
	for _, e := range current {
		pairs[e.CategoryID] = &pair{name: e.CategoryName, current: e.Amount, previous: decimal.Zero}
	}
	for _, e := range previous {
		if p, ok := pairs[e.CategoryID]; ok {
			p.previous = e.Amount
			continue
		}
		pairs[e.CategoryID] = &pair{name: e.CategoryName, current: decimal.Zero, previous: e.Amount}
	}

	entries := make([]model.MonthComparisonEntry, 0, len(pairs))
	for id, p := range pairs {
		entries = append(entries, model.MonthComparisonEntry{
			CategoryID:       id,
			CategoryName:     p.name,
			CurrentAmount:    p.current,
			PreviousAmount:   p.previous,
			Difference:       p.current.Sub(p.previous),
			PercentageChange: calculatePercentageChange(p.previous, p.current),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if c := entries[i].Difference.Abs().Cmp(entries[j].Difference.Abs()); c != 0 {
			return c > 0
		}
		return entries[i].CategoryID < entries[j].CategoryID
	})
	return entries
}

// calculatePercentageChange calculates the percentage change between two values.
// A move away from zero counts as a full 100% increase.
func calculatePercentageChange(previous, current decimal.Decimal) float64 {
	if previous.IsZero() {
		if current.IsZero() {
			return 0
		}
		return 100
	}
	change := current.Sub(previous).Div(previous.Abs()).Mul(hundred).InexactFloat64()
	return round2(change)
}

func indexCategories(categories []model.Category) map[string]model.Category {
	lookup := make(map[string]model.Category, len(categories))
	for _, c := range categories {
		lookup[c.ID] = c
	}
	return lookup
}

func parseMonthKey(field, key string) (datetime.Month, error) {
	m, err := datetime.ParseMonth(key)
	if err != nil {
		return datetime.Month{}, apperror.InvalidArgument(field, err.Error())
	}
	return m, nil
}

func parseDateKey(field, key string) (datetime.Date, error) {
	d, err := datetime.ParseDate(key)
	if err != nil {
		return datetime.Date{}, apperror.InvalidArgument(field, fmt.Sprintf("invalid date %q: expected YYYY-MM-DD", key))
	}
	return d, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
