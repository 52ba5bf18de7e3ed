package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/wealthpath/expenses/internal/model"
	"github.com/wealthpath/expenses/pkg/datetime"
)

var ErrExpenseNotFound = errors.New("expense not found")

// ExpenseFilters narrows List. Nil fields are ignored.
type ExpenseFilters struct {
	CategoryID    *string
	PaymentMethod *model.PaymentMethod
	StartDate     *datetime.Date
	EndDate       *datetime.Date
	Search        *string
	MinAmount     *decimal.Decimal
	MaxAmount     *decimal.Decimal
	Limit         int
	Offset        int
}

type ExpenseRepository struct {
	db *sqlx.DB
}

func NewExpenseRepository(db *sqlx.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

const expenseColumns = `id, date, amount, category_id, description, payment_method, created_at, updated_at`

// Shared WHERE clause for List and Count, parameters $1..$7.
const expenseFilterClause = `
		WHERE ($1::text IS NULL OR category_id = $1)
		AND ($2::text IS NULL OR payment_method = $2)
		AND ($3::date IS NULL OR date >= $3)
		AND ($4::date IS NULL OR date <= $4)
		AND ($5::text IS NULL OR description ILIKE '%' || $5 || '%')
		AND ($6::numeric IS NULL OR amount >= $6)
		AND ($7::numeric IS NULL OR amount <= $7)`

func (r *ExpenseRepository) Create(ctx context.Context, e *model.Expense) error {
	query := `
		INSERT INTO expenses (id, date, amount, category_id, description, payment_method, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING created_at, updated_at`

	e.ID = uuid.New()
	return r.db.QueryRowxContext(ctx, query,
		e.ID, e.Date, e.Amount, e.CategoryID, e.Description, e.PaymentMethod,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Expense, error) {
	var e model.Expense
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`
	err := r.db.GetContext(ctx, &e, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrExpenseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *ExpenseRepository) List(ctx context.Context, filters ExpenseFilters) ([]model.Expense, error) {
	expenses := []model.Expense{}
	query := `SELECT ` + expenseColumns + ` FROM expenses` + expenseFilterClause + `
		ORDER BY date DESC, created_at DESC
		LIMIT $8 OFFSET $9`

	err := r.db.SelectContext(ctx, &expenses, query, append(filterArgs(filters), filters.Limit, filters.Offset)...)
	return expenses, err
}

// ListAll returns every expense matching filters, ignoring Limit and Offset.
func (r *ExpenseRepository) ListAll(ctx context.Context, filters ExpenseFilters) ([]model.Expense, error) {
	expenses := []model.Expense{}
	query := `SELECT ` + expenseColumns + ` FROM expenses` + expenseFilterClause + `
		ORDER BY date DESC, created_at DESC`

	err := r.db.SelectContext(ctx, &expenses, query, filterArgs(filters)...)
	return expenses, err
}

func (r *ExpenseRepository) Count(ctx context.Context, filters ExpenseFilters) (int, error) {
	var total int
	query := `SELECT COUNT(*) FROM expenses` + expenseFilterClause
	err := r.db.GetContext(ctx, &total, query, filterArgs(filters)...)
	return total, err
}

func filterArgs(f ExpenseFilters) []any {
	var paymentMethod *string
	if f.PaymentMethod != nil {
		pm := string(*f.PaymentMethod)
		paymentMethod = &pm
	}
	return []any{f.CategoryID, paymentMethod, f.StartDate, f.EndDate, f.Search, f.MinAmount, f.MaxAmount}
}

func (r *ExpenseRepository) Update(ctx context.Context, e *model.Expense) error {
	query := `
		UPDATE expenses
		SET date = $2, amount = $3, category_id = $4, description = $5, payment_method = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`
	err := r.db.QueryRowxContext(ctx, query,
		e.ID, e.Date, e.Amount, e.CategoryID, e.Description, e.PaymentMethod,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrExpenseNotFound
	}
	return err
}

func (r *ExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM expenses WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrExpenseNotFound
	}
	return nil
}

// FetchByDateRange returns expenses dated within [start, end], both inclusive, oldest first.
func (r *ExpenseRepository) FetchByDateRange(ctx context.Context, start, end datetime.Date) ([]model.Expense, error) {
	expenses := []model.Expense{}
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE date >= $1 AND date <= $2
		ORDER BY date, created_at`
	err := r.db.SelectContext(ctx, &expenses, query, start, end)
	return expenses, err
}

// FetchByMonthRange returns expenses from the first day of start through the last day of end.
func (r *ExpenseRepository) FetchByMonthRange(ctx context.Context, start, end datetime.Month) ([]model.Expense, error) {
	return r.FetchByDateRange(ctx, start.FirstDay(), end.LastDay())
}

func (r *ExpenseRepository) FetchByMonth(ctx context.Context, month datetime.Month) ([]model.Expense, error) {
	return r.FetchByDateRange(ctx, month.FirstDay(), month.LastDay())
}
