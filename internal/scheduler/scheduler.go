// Package scheduler runs the periodic budget alert job.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/wealthpath/expenses/internal/logger"
	"github.com/wealthpath/expenses/internal/model"
	"github.com/wealthpath/expenses/internal/notify"
	"github.com/wealthpath/expenses/pkg/datetime"
)

const jobName = "budget-alerts"

// Config holds the scheduler configuration
type Config struct {
	// Schedule is a five-field cron expression (e.g., "0 9 * * *" for daily at 09:00)
	Schedule string
	// Timeout bounds a single alert run
	Timeout time.Duration
	Enabled bool
}

// DefaultConfig returns the default scheduler configuration
func DefaultConfig() Config {
	return Config{
		Schedule: "0 9 * * *",
		Timeout:  30 * time.Second,
		Enabled:  true,
	}
}

// BudgetStatusProvider evaluates a month's budget.
type BudgetStatusProvider interface {
	GetBudgetStatus(ctx context.Context, month string) (*model.BudgetStatus, error)
}

// Scheduler evaluates the current month's budget on a cron schedule and
// sends one alert per category in warning or exceeded state.
type Scheduler struct {
	cron     *cron.Cron
	budgets  BudgetStatusProvider
	notifier notify.Notifier
	config   Config
	logger   *slog.Logger
	entryID  cron.EntryID
	metrics  *MetricsCollector
	now      func() time.Time
}

// New creates a new Scheduler instance
func New(cfg Config, budgets BudgetStatusProvider, notifier notify.Notifier, log *slog.Logger) *Scheduler {
	if log == nil {
		log = slog.Default()
	}

	return &Scheduler{
		cron:     cron.New(cron.WithSeconds()),
		budgets:  budgets,
		notifier: notifier,
		config:   cfg,
		logger:   log.With(slog.String("component", "scheduler")),
		metrics:  NewMetricsCollector(),
		now:      time.Now,
	}
}

// Start begins the scheduler
func (s *Scheduler) Start() error {
	if !s.config.Enabled {
		s.logger.Info("Scheduler is disabled, skipping start")
		return nil
	}

	// cron.WithSeconds expects six fields
	schedule := "0 " + s.config.Schedule

	entryID, err := s.cron.AddFunc(schedule, func() {
		s.runAlertJob()
	})
	if err != nil {
		return err
	}

	s.entryID = entryID
	s.cron.Start()

	s.logger.Info("Scheduler started",
		slog.String("schedule", s.config.Schedule),
		slog.Duration("timeout", s.config.Timeout),
	)

	return nil
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("Stopping scheduler...")
	return s.cron.Stop()
}

// RunNow triggers an immediate alert run
func (s *Scheduler) RunNow() {
	go s.runAlertJob()
}

func (s *Scheduler) runAlertJob() {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Timeout)
	defer cancel()
	ctx = logger.WithJob(ctx, jobName)
	log := logger.Enrich(ctx, s.logger)

	startTime := time.Now()
	sent, err := s.CheckBudgets(ctx)
	duration := time.Since(startTime)

	if err != nil {
		log.Error("Budget alert job failed",
			slog.String("error", err.Error()),
			slog.Int("alerts_sent", sent),
			slog.Duration("duration", duration),
		)
		return
	}

	log.Info("Budget alert job completed",
		slog.Int("alerts_sent", sent),
		slog.Duration("duration", duration),
	)
}

// CheckBudgets evaluates the current month once and returns how many alerts were delivered.
// A failed delivery is logged and does not stop the remaining alerts.
// Every call is recorded in the job's health metrics.
func (s *Scheduler) CheckBudgets(ctx context.Context) (int, error) {
	ctx = logger.WithJob(ctx, jobName)
	run := RunMetrics{StartedAt: s.now()}
	sent, failed, err := s.checkBudgets(ctx, run.StartedAt)

	run.CompletedAt = s.now()
	run.DurationMs = run.CompletedAt.Sub(run.StartedAt).Milliseconds()
	run.AlertsSent = sent
	run.AlertsFailed = failed
	run.Success = err == nil
	if err != nil {
		run.ErrorMessage = err.Error()
	}
	s.metrics.Record(run)

	return sent, err
}

func (s *Scheduler) checkBudgets(ctx context.Context, now time.Time) (sent, failed int, err error) {
	month := datetime.MonthOf(now)

	status, err := s.budgets.GetBudgetStatus(ctx, month.String())
	if err != nil {
		return 0, 0, err
	}

	for _, c := range status.Categories {
		if c.Status == model.BudgetStatusNormal {
			continue
		}

		alert := model.BudgetAlert{
			Month:        month,
			CategoryID:   c.CategoryID,
			CategoryName: c.CategoryName,
			Budgeted:     c.Budgeted,
			Spent:        c.Spent,
			Percentage:   c.Percentage,
			Status:       c.Status,
			Timestamp:    now.UTC(),
		}
		if err := s.notifier.Notify(ctx, alert); err != nil {
			logger.Enrich(ctx, s.logger).Warn("Failed to deliver budget alert",
				slog.String("category_id", c.CategoryID),
				slog.String("error", err.Error()),
			)
			failed++
			continue
		}
		sent++
	}

	return sent, failed, nil
}

// Health reports the job's schedule and the outcome of recent runs.
func (s *Scheduler) Health() HealthStatus {
	return s.metrics.HealthStatus(s.config.Schedule, s.GetNextRunTime(), s.IsRunning())
}

// GetNextRunTime returns the next scheduled run time
func (s *Scheduler) GetNextRunTime() time.Time {
	if s.entryID == 0 {
		return time.Time{}
	}
	return s.cron.Entry(s.entryID).Next
}

// IsRunning returns true if the scheduler is running
func (s *Scheduler) IsRunning() bool {
	return s.cron != nil && len(s.cron.Entries()) > 0
}
