package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/wealthpath/expenses/docs"
	"github.com/wealthpath/expenses/internal/config"
	"github.com/wealthpath/expenses/internal/database"
	"github.com/wealthpath/expenses/internal/handler"
	"github.com/wealthpath/expenses/internal/logger"
	"github.com/wealthpath/expenses/internal/notify"
	"github.com/wealthpath/expenses/internal/repository"
	"github.com/wealthpath/expenses/internal/scheduler"
	"github.com/wealthpath/expenses/internal/service"
)

// @title Expenses API
// @version 1.0
// @description Monthly expense tracking with category analytics, trends and budget status.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@wealthpath.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

func main() {
	cfg := config.Load()
	logger.Setup(cfg.Env, os.Stdout)
	log := logger.Logger()

	if err := cfg.Validate(); err != nil {
		log.Error("Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := database.Connect(connectCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Error("Failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	if cfg.RunMigrations {
		if err := database.MigrateUp(db); err != nil {
			log.Error("Failed to run migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
		log.Info("Migrations applied")
	}

	// Initialize repositories
	expenseRepo := repository.NewExpenseRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	budgetRepo := repository.NewBudgetRepository(db)

	// Initialize services
	expenseService := service.NewExpenseService(expenseRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	analyticsService := service.NewAnalyticsService(expenseRepo, categoryRepo)
	budgetService := service.NewBudgetService(budgetRepo, expenseRepo, categoryRepo)
	dashboardService := service.NewDashboardService(analyticsService, budgetService)
	exportService := service.NewExportService(expenseRepo, categoryRepo, dashboardService, cfg.DefaultCurrency)

	// Budget alerts go to RabbitMQ when configured, otherwise to the log
	var notifier notify.Notifier = notify.NewLogNotifier(log)
	if cfg.AMQPEnabled() {
		publisher, err := notify.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingKey, log)
		if err != nil {
			log.Error("Failed to connect to RabbitMQ, falling back to log alerts", slog.String("error", err.Error()))
		} else {
			notifier = publisher
			defer func() { _ = publisher.Close() }()
		}
	}

	// Also serves POST /api/alerts/run when the cron schedule is disabled
	alertScheduler := scheduler.New(scheduler.Config{
		Schedule: cfg.BudgetAlertSchedule,
		Timeout:  cfg.BudgetAlertTimeout,
		Enabled:  cfg.BudgetAlertsEnabled,
	}, budgetService, notifier, log)
	if err := alertScheduler.Start(); err != nil {
		log.Error("Failed to start budget alert scheduler", slog.String("error", err.Error()))
	} else if cfg.BudgetAlertsEnabled {
		log.Info("Budget alert scheduler started",
			slog.String("schedule", cfg.BudgetAlertSchedule),
			slog.Duration("timeout", cfg.BudgetAlertTimeout),
		)
	}

	r := newRouter(cfg, routes{
		expenses:   handler.NewExpenseHandler(expenseService),
		categories: handler.NewCategoryHandler(categoryService),
		budgets:    handler.NewBudgetHandler(budgetService),
		analytics:  handler.NewAnalyticsHandler(analyticsService),
		dashboard:  handler.NewDashboardHandler(dashboardService),
		export:     handler.NewExportHandler(exportService),
		alerts:     handler.NewAlertHandler(alertScheduler),
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Handle graceful shutdown
	done := make(chan struct{})
	go func() {
		defer close(done)
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("Shutting down server...")

		// Stop scheduler first
		<-alertScheduler.Stop().Done()
		log.Info("Scheduler stopped")

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Error("Server shutdown error", slog.String("error", err.Error()))
		}
	}()

	log.Info("Server starting", slog.String("port", cfg.Port), slog.String("env", cfg.Env))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("Server failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	<-done
}
