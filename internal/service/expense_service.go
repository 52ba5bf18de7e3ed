// Package service implements the business logic layer of the expense tracker.
// It validates input, coordinates repositories and computes derived reports.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wealthpath/expenses/internal/apperror"
	"github.com/wealthpath/expenses/internal/model"
	"github.com/wealthpath/expenses/internal/repository"
	"github.com/wealthpath/expenses/pkg/datetime"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ExpenseRepositoryInterface defines the contract for expense data access.
// Implementations must be safe for concurrent use.
type ExpenseRepositoryInterface interface {
	Create(ctx context.Context, e *model.Expense) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Expense, error)
	List(ctx context.Context, filters repository.ExpenseFilters) ([]model.Expense, error)
	Count(ctx context.Context, filters repository.ExpenseFilters) (int, error)
	Update(ctx context.Context, e *model.Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ExpenseService handles business logic for expense records.
// It enforces validation rules and coordinates repository operations.
type ExpenseService struct {
	repo ExpenseRepositoryInterface
}

// NewExpenseService creates a new ExpenseService with the given repository.
// The repository must not be nil.
func NewExpenseService(repo ExpenseRepositoryInterface) *ExpenseService {
	return &ExpenseService{repo: repo}
}

type ExpenseInput struct {
	Date          datetime.Date       `json:"date"`
	Amount        decimal.Decimal     `json:"amount"`
	CategoryID    string              `json:"categoryId"`
	Description   string              `json:"description"`
	PaymentMethod model.PaymentMethod `json:"paymentMethod"`
}

// ListExpensesInput carries the typed list filters. Page is 1-based.
type ListExpensesInput struct {
	CategoryID    *string
	PaymentMethod *model.PaymentMethod
	StartDate     *datetime.Date
	EndDate       *datetime.Date
	Search        *string
	MinAmount     *decimal.Decimal
	MaxAmount     *decimal.Decimal
	Page          int
	PageSize      int
}

type ExpensePage struct {
	Expenses   []model.Expense `json:"expenses"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	TotalPages int             `json:"totalPages"`
}

// Create validates and persists a new expense.
// Payment method defaults to "other".
func (s *ExpenseService) Create(ctx context.Context, input ExpenseInput) (*model.Expense, error) {
	e, err := input.toExpense()
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("creating expense: %w", err)
	}
	return e, nil
}

// Get retrieves an expense by its ID.
// Returns ErrExpenseNotFound if the expense does not exist.
func (s *ExpenseService) Get(ctx context.Context, id uuid.UUID) (*model.Expense, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting expense %s: %w", id, err)
	}
	return e, nil
}

// List returns one page of expenses matching the filters, newest first.
// PageSize is capped at 100 and defaults to 20.
func (s *ExpenseService) List(ctx context.Context, input ListExpensesInput) (*ExpensePage, error) {
	if input.Page <= 0 {
		input.Page = 1
	}
	if input.PageSize <= 0 {
		input.PageSize = defaultPageSize
	}
	if input.PageSize > maxPageSize {
		input.PageSize = maxPageSize
	}

	filters, err := input.toFilters()
	if err != nil {
		return nil, err
	}
	filters.Limit = input.PageSize
	filters.Offset = (input.Page - 1) * input.PageSize

	expenses, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	total, err := s.repo.Count(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("counting expenses: %w", err)
	}

	return &ExpensePage{
		Expenses:   expenses,
		Total:      total,
		Page:       input.Page,
		PageSize:   input.PageSize,
		TotalPages: (total + input.PageSize - 1) / input.PageSize,
	}, nil
}

// Update replaces every editable field of an existing expense.
// Returns ErrExpenseNotFound if the expense does not exist.
func (s *ExpenseService) Update(ctx context.Context, id uuid.UUID, input ExpenseInput) (*model.Expense, error) {
	e, err := input.toExpense()
	if err != nil {
		return nil, err
	}
	e.ID = id

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("updating expense %s: %w", id, err)
	}
	return e, nil
}

// Delete removes an expense by ID.
func (s *ExpenseService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting expense %s: %w", id, err)
	}
	return nil
}

func (in ExpenseInput) toExpense() (*model.Expense, error) {
	if in.Date.IsZero() {
		return nil, apperror.ValidationError("date", "date is required")
	}
	if in.Amount.IsNegative() {
		return nil, apperror.ValidationError("amount", "amount must not be negative")
	}
	if in.Amount.Exponent() < -2 && !in.Amount.Equal(in.Amount.Round(2)) {
		return nil, apperror.ValidationError("amount", "amount must have at most two decimal places")
	}
	categoryID := strings.TrimSpace(in.CategoryID)
	if categoryID == "" {
		return nil, apperror.ValidationError("categoryId", "categoryId is required")
	}

	method := in.PaymentMethod
	if method == "" {
		method = model.PaymentMethodOther
	}
	if !method.IsValid() {
		return nil, apperror.ValidationError("paymentMethod", fmt.Sprintf("unsupported payment method %q", method))
	}

	return &model.Expense{
		Date:          in.Date,
		Amount:        in.Amount,
		CategoryID:    categoryID,
		Description:   strings.TrimSpace(in.Description),
		PaymentMethod: method,
	}, nil
}

func (in ListExpensesInput) toFilters() (repository.ExpenseFilters, error) {
	if in.PaymentMethod != nil && !in.PaymentMethod.IsValid() {
		return repository.ExpenseFilters{}, apperror.ValidationError("paymentMethod", fmt.Sprintf("unsupported payment method %q", *in.PaymentMethod))
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(in.StartDate.Time) {
		return repository.ExpenseFilters{}, apperror.ValidationError("endDate", "endDate must not be before startDate")
	}
	if in.MinAmount != nil && in.MaxAmount != nil && in.MaxAmount.LessThan(*in.MinAmount) {
		return repository.ExpenseFilters{}, apperror.ValidationError("maxAmount", "maxAmount must not be below minAmount")
	}

	return repository.ExpenseFilters{
		CategoryID:    in.CategoryID,
		PaymentMethod: in.PaymentMethod,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		Search:        in.Search,
		MinAmount:     in.MinAmount,
		MaxAmount:     in.MaxAmount,
	}, nil
}
