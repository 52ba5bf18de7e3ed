package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wealthpath/expenses/pkg/datetime"
)

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodDebitCard    PaymentMethod = "debit_card"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodOther        PaymentMethod = "other"
)

var PaymentMethods = []PaymentMethod{
	PaymentMethodCash,
	PaymentMethodCreditCard,
	PaymentMethodDebitCard,
	PaymentMethodBankTransfer,
	PaymentMethodOther,
}

func (p PaymentMethod) IsValid() bool {
	for _, m := range PaymentMethods {
		if p == m {
			return true
		}
	}
	return false
}

type Expense struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	Date          datetime.Date   `db:"date" json:"date"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	CategoryID    string          `db:"category_id" json:"categoryId"`
	Description   string          `db:"description" json:"description"`
	PaymentMethod PaymentMethod   `db:"payment_method" json:"paymentMethod"`
	CreatedAt     time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updatedAt"`
}

type Category struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Color     string    `db:"color" json:"color"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Budget holds the overall cap for one month and an ordered list of per-category caps.
type Budget struct {
	ID         uuid.UUID        `db:"id" json:"id"`
	Month      datetime.Month   `db:"month" json:"month"`
	Amount     decimal.Decimal  `db:"amount" json:"amount"`
	Categories []BudgetCategory `db:"-" json:"categories"`
	CreatedAt  time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time        `db:"updated_at" json:"updatedAt"`
}

type BudgetCategory struct {
	CategoryID string          `db:"category_id" json:"categoryId"`
	Amount     decimal.Decimal `db:"amount" json:"amount"`
}

// Analytics

type CategoryBreakdownEntry struct {
	CategoryID   string          `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	Amount       decimal.Decimal `json:"amount"`
	Percentage   float64         `json:"percentage"`
	Color        string          `json:"color"`
}

type DailyTotal struct {
	Date   datetime.Date   `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

type MonthlyTotal struct {
	Month  datetime.Month  `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

type MonthComparisonEntry struct {
	CategoryID       string          `json:"categoryId"`
	CategoryName     string          `json:"categoryName"`
	CurrentAmount    decimal.Decimal `json:"currentAmount"`
	PreviousAmount   decimal.Decimal `json:"previousAmount"`
	Difference       decimal.Decimal `json:"difference"`
	PercentageChange float64         `json:"percentageChange"`
}

type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// MonthlyChange is the delta between a month and the one before it.
type MonthlyChange struct {
	Month            datetime.Month  `json:"month"`
	Amount           decimal.Decimal `json:"amount"`
	Change           decimal.Decimal `json:"change"`
	PercentageChange float64         `json:"percentageChange"`
}

type TrendAnalysis struct {
	Month                datetime.Month  `json:"month"`
	WindowMonths         int             `json:"windowMonths"`
	CurrentMonthTotal    decimal.Decimal `json:"currentMonthTotal"`
	AverageSpending      decimal.Decimal `json:"averageSpending"`
	MonthlyTotals        []MonthlyTotal  `json:"monthlyTotals"`
	MonthlyChanges       []MonthlyChange `json:"monthlyChanges"`
	AverageMonthlyChange decimal.Decimal `json:"averageMonthlyChange"`
	Volatility           float64         `json:"volatility"`
	TrendDirection       TrendDirection  `json:"trendDirection"`
	Insights             []string        `json:"insights"`
}

// Budget status

type BudgetStatusLevel string

const (
	BudgetStatusNormal   BudgetStatusLevel = "normal"
	BudgetStatusWarning  BudgetStatusLevel = "warning"
	BudgetStatusExceeded BudgetStatusLevel = "exceeded"
)

type CategoryBudgetStatus struct {
	CategoryID   string            `json:"categoryId"`
	CategoryName string            `json:"categoryName"`
	Budgeted     decimal.Decimal   `json:"budgeted"`
	Spent        decimal.Decimal   `json:"spent"`
	Remaining    decimal.Decimal   `json:"remaining"`
	Percentage   int               `json:"percentage"`
	Status       BudgetStatusLevel `json:"status"`
}

type BudgetStatus struct {
	Month          datetime.Month         `json:"month"`
	TotalBudget    decimal.Decimal        `json:"totalBudget"`
	TotalSpent     decimal.Decimal        `json:"totalSpent"`
	TotalRemaining decimal.Decimal        `json:"totalRemaining"`
	PercentageUsed int                    `json:"percentageUsed"`
	Categories     []CategoryBudgetStatus `json:"categories"`
}

// MonthSummary aggregates the month view: breakdown, daily series and budget status.
type MonthSummary struct {
	Month        datetime.Month           `json:"month"`
	TotalSpent   decimal.Decimal          `json:"totalSpent"`
	Breakdown    []CategoryBreakdownEntry `json:"breakdown"`
	DailyTotals  []DailyTotal             `json:"dailyTotals"`
	BudgetStatus *BudgetStatus            `json:"budgetStatus"`
}

// BudgetAlert is published when a category crosses the warning or exceeded threshold.
type BudgetAlert struct {
	Month        datetime.Month    `json:"month"`
	CategoryID   string            `json:"categoryId"`
	CategoryName string            `json:"categoryName"`
	Budgeted     decimal.Decimal   `json:"budgeted"`
	Spent        decimal.Decimal   `json:"spent"`
	Percentage   int               `json:"percentage"`
	Status       BudgetStatusLevel `json:"status"`
	Timestamp    time.Time         `json:"timestamp"`
}
