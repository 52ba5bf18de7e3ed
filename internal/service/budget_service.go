package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/wealthpath/expenses/internal/apperror"
	"github.com/wealthpath/expenses/internal/model"
	"github.com/wealthpath/expenses/pkg/datetime"
)

// Usage thresholds in whole percent of a category cap.
const (
	budgetWarningPercent  = 80
	budgetExceededPercent = 100
)

// UnknownCategoryName labels budget caps whose category no longer exists.
const UnknownCategoryName = "Unknown Category"

// BudgetRepositoryInterface defines the contract for budget data access.
// Implementations must be safe for concurrent use.
type BudgetRepositoryInterface interface {
	Upsert(ctx context.Context, budget *model.Budget) error
	FindByMonth(ctx context.Context, month datetime.Month) (*model.Budget, bool, error)
	GetByMonth(ctx context.Context, month datetime.Month) (*model.Budget, error)
	List(ctx context.Context) ([]model.Budget, error)
	Delete(ctx context.Context, month datetime.Month) error
}

// ExpenseRepoForBudget provides expense data needed for budget calculations.
type ExpenseRepoForBudget interface {
	FetchByMonth(ctx context.Context, month datetime.Month) ([]model.Expense, error)
}

// BudgetService handles business logic for monthly budgets.
// It tracks spending against the overall cap and each category cap.
type BudgetService struct {
	repo         BudgetRepositoryInterface
	expenseRepo  ExpenseRepoForBudget
	categoryRepo CategoryLister
}

// NewBudgetService creates a new BudgetService with the given repositories.
func NewBudgetService(repo BudgetRepositoryInterface, expenseRepo ExpenseRepoForBudget, categoryRepo CategoryLister) *BudgetService {
	return &BudgetService{
		repo:         repo,
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
	}
}

type UpsertBudgetInput struct {
	Month      string                 `json:"month"`
	Amount     decimal.Decimal        `json:"amount"`
	Categories []model.BudgetCategory `json:"categories"`
}

// Upsert creates or replaces the budget for input.Month.
// Category caps keep the order they were given in.
func (s *BudgetService) Upsert(ctx context.Context, input UpsertBudgetInput) (*model.Budget, error) {
	month, err := parseMonthKey("month", input.Month)
	if err != nil {
		return nil, err
	}
	if input.Amount.IsNegative() {
		return nil, apperror.ValidationError("amount", "amount must not be negative")
	}

	seen := make(map[string]bool, len(input.Categories))
	categories := make([]model.BudgetCategory, 0, len(input.Categories))
	for _, c := range input.Categories {
		if c.CategoryID == "" {
			return nil, apperror.ValidationError("categories", "categoryId is required")
		}
		if c.Amount.IsNegative() {
			return nil, apperror.ValidationError("categories", fmt.Sprintf("cap for %s must not be negative", c.CategoryID))
		}
		if seen[c.CategoryID] {
			return nil, apperror.ValidationError("categories", fmt.Sprintf("category %s listed twice", c.CategoryID))
		}
		seen[c.CategoryID] = true
		categories = append(categories, c)
	}

	budget := &model.Budget{
		Month:      month,
		Amount:     input.Amount,
		Categories: categories,
	}
	if err := s.repo.Upsert(ctx, budget); err != nil {
		return nil, fmt.Errorf("saving budget for %s: %w", month, err)
	}
	return budget, nil
}

// Get retrieves the budget for month.
// Returns ErrBudgetNotFound if none is stored.
func (s *BudgetService) Get(ctx context.Context, month string) (*model.Budget, error) {
	m, err := parseMonthKey("month", month)
	if err != nil {
		return nil, err
	}
	budget, err := s.repo.GetByMonth(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("getting budget for %s: %w", m, err)
	}
	return budget, nil
}

// List retrieves every stored budget, newest month first.
func (s *BudgetService) List(ctx context.Context) ([]model.Budget, error) {
	budgets, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}
	return budgets, nil
}

func (s *BudgetService) Delete(ctx context.Context, month string) error {
	m, err := parseMonthKey("month", month)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, m); err != nil {
		return fmt.Errorf("deleting budget for %s: %w", m, err)
	}
	return nil
}

// GetBudgetStatus compares the month's budget with actual spending.
// A month without a budget yields an all-zero status with no categories.
func (s *BudgetService) GetBudgetStatus(ctx context.Context, month string) (*model.BudgetStatus, error) {
	m, err := parseMonthKey("month", month)
	if err != nil {
		return nil, err
	}

	budget, found, err := s.repo.FindByMonth(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("finding budget for %s: %w", m, err)
	}
	if !found {
		return emptyBudgetStatus(m), nil
	}

	expenses, err := s.expenseRepo.FetchByMonth(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("fetching expenses for %s: %w", m, err)
	}
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	return evaluateBudget(budget, expenses, categories), nil
}

func emptyBudgetStatus(month datetime.Month) *model.BudgetStatus {
	return &model.BudgetStatus{
		Month:          month,
		TotalBudget:    decimal.Zero,
		TotalSpent:     decimal.Zero,
		TotalRemaining: decimal.Zero,
		PercentageUsed: 0,
		Categories:     []model.CategoryBudgetStatus{},
	}
}

func evaluateBudget(budget *model.Budget, expenses []model.Expense, categories []model.Category) *model.BudgetStatus {
	totalSpent := decimal.Zero
	spentByCategory := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		totalSpent = totalSpent.Add(e.Amount)
		spentByCategory[e.CategoryID] = spentByCategory[e.CategoryID].Add(e.Amount)
	}

	lookup := indexCategories(categories)
	statuses := make([]model.CategoryBudgetStatus, 0, len(budget.Categories))
	for _, limit := range budget.Categories {
		spent := decimal.Zero
		if v, ok := spentByCategory[limit.CategoryID]; ok {
			spent = v
		}

		name := UnknownCategoryName
		if c, ok := lookup[limit.CategoryID]; ok {
			name = c.Name
		}

		percentage := usagePercent(spent, limit.Amount)
		statuses = append(statuses, model.CategoryBudgetStatus{
			CategoryID:   limit.CategoryID,
			CategoryName: name,
			Budgeted:     limit.Amount,
			Spent:        spent,
			Remaining:    remainingOf(limit.Amount, spent),
			Percentage:   percentage,
			Status:       classifyUsage(percentage),
		})
	}

	return &model.BudgetStatus{
		Month:          budget.Month,
		TotalBudget:    budget.Amount,
		TotalSpent:     totalSpent,
		TotalRemaining: remainingOf(budget.Amount, totalSpent),
		PercentageUsed: usagePercent(totalSpent, budget.Amount),
		Categories:     statuses,
	}
}

// usagePercent is spent/limit as a whole percent, 0 when the limit is not positive.
func usagePercent(spent, limit decimal.Decimal) int {
	if !limit.IsPositive() {
		return 0
	}
	return int(spent.Div(limit).Mul(hundred).Round(0).IntPart())
}

func remainingOf(limit, spent decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, limit.Sub(spent))
}

func classifyUsage(percentage int) model.BudgetStatusLevel {
	switch {
	case percentage >= budgetExceededPercent:
		return model.BudgetStatusExceeded
	case percentage >= budgetWarningPercent:
		return model.BudgetStatusWarning
	default:
		return model.BudgetStatusNormal
	}
}
