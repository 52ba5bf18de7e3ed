package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/wealthpath/expenses/internal/model"
	"github.com/wealthpath/expenses/pkg/datetime"
)

var ErrBudgetNotFound = errors.New("budget not found")

type BudgetRepository struct {
	db *sqlx.DB
}

func NewBudgetRepository(db *sqlx.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

// Upsert stores the budget for budget.Month, replacing any existing one.
// Category caps are rewritten in slice order.
func (r *BudgetRepository) Upsert(ctx context.Context, budget *model.Budget) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query := `
		INSERT INTO budgets (id, month, amount, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (month) DO UPDATE SET amount = EXCLUDED.amount, updated_at = NOW()
		RETURNING id, created_at, updated_at`

	err = tx.QueryRowxContext(ctx, query, uuid.New(), budget.Month, budget.Amount).
		Scan(&budget.ID, &budget.CreatedAt, &budget.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert budget: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM budget_categories WHERE budget_id = $1`, budget.ID); err != nil {
		return fmt.Errorf("clear budget categories: %w", err)
	}

	for i, c := range budget.Categories {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO budget_categories (budget_id, category_id, amount, position) VALUES ($1, $2, $3, $4)`,
			budget.ID, c.CategoryID, c.Amount, i,
		)
		if err != nil {
			return fmt.Errorf("insert budget category %s: %w", c.CategoryID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit budget: %w", err)
	}
	return nil
}

// FindByMonth returns the month's budget; found is false when none is stored.
func (r *BudgetRepository) FindByMonth(ctx context.Context, month datetime.Month) (*model.Budget, bool, error) {
	var budget model.Budget
	query := `SELECT id, month, amount, created_at, updated_at FROM budgets WHERE month = $1`
	err := r.db.GetContext(ctx, &budget, query, month)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if err := r.loadCategories(ctx, &budget); err != nil {
		return nil, false, err
	}
	return &budget, true, nil
}

// GetByMonth is FindByMonth for callers that treat a missing budget as an error.
func (r *BudgetRepository) GetByMonth(ctx context.Context, month datetime.Month) (*model.Budget, error) {
	budget, found, err := r.FindByMonth(ctx, month)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrBudgetNotFound
	}
	return budget, nil
}

func (r *BudgetRepository) List(ctx context.Context) ([]model.Budget, error) {
	budgets := []model.Budget{}
	query := `SELECT id, month, amount, created_at, updated_at FROM budgets ORDER BY month DESC`
	if err := r.db.SelectContext(ctx, &budgets, query); err != nil {
		return nil, err
	}

	for i := range budgets {
		if err := r.loadCategories(ctx, &budgets[i]); err != nil {
			return nil, err
		}
	}
	return budgets, nil
}

func (r *BudgetRepository) Delete(ctx context.Context, month datetime.Month) error {
	query := `DELETE FROM budgets WHERE month = $1`
	result, err := r.db.ExecContext(ctx, query, month)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrBudgetNotFound
	}
	return nil
}

func (r *BudgetRepository) loadCategories(ctx context.Context, budget *model.Budget) error {
	categories := []model.BudgetCategory{}
	query := `
		SELECT category_id, amount
		FROM budget_categories
		WHERE budget_id = $1
		ORDER BY position`
	if err := r.db.SelectContext(ctx, &categories, query, budget.ID); err != nil {
		return fmt.Errorf("load budget categories: %w", err)
	}
	budget.Categories = categories
	return nil
}
