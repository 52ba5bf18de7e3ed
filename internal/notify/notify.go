// Package notify delivers budget alerts to RabbitMQ or to the application log.
package notify

import (
	"context"
	"log/slog"

	"github.com/wealthpath/expenses/internal/model"
)

// Notifier delivers a single budget alert.
type Notifier interface {
	Notify(ctx context.Context, alert model.BudgetAlert) error
}

// LogNotifier writes alerts to a structured logger. It is the fallback when no broker is configured.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, alert model.BudgetAlert) error {
	level := slog.LevelInfo
	if alert.Status == model.BudgetStatusExceeded {
		level = slog.LevelWarn
	}

	n.logger.Log(ctx, level, "Budget alert",
		slog.String("month", alert.Month.String()),
		slog.String("category_id", alert.CategoryID),
		slog.String("category", alert.CategoryName),
		slog.String("budgeted", alert.Budgeted.StringFixed(2)),
		slog.String("spent", alert.Spent.StringFixed(2)),
		slog.Int("percentage", alert.Percentage),
		slog.String("status", string(alert.Status)),
	)
	return nil
}
