package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/wealthpath/expenses/internal/config"
	"github.com/wealthpath/expenses/internal/handler"
)

type routes struct {
	expenses   *handler.ExpenseHandler
	categories *handler.CategoryHandler
	budgets    *handler.BudgetHandler
	analytics  *handler.AnalyticsHandler
	dashboard  *handler.DashboardHandler
	export     *handler.ExportHandler
	alerts     *handler.AlertHandler
}

func newRouter(cfg *config.Config, h routes) chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(handler.RequestLogger)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api", func(r chi.Router) {
		// Health check
		// @Summary Health check
		// @Description Check if the API is running
		// @Tags health
		// @Produce json
		// @Success 200 {object} map[string]string
		// @Router /health [get]
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})

		// Expenses
		r.Get("/expenses", h.expenses.List)
		r.Post("/expenses", h.expenses.Create)
		r.Get("/expenses/export/csv", h.export.ExportExpensesCSV)
		r.Get("/expenses/{id}", h.expenses.Get)
		r.Put("/expenses/{id}", h.expenses.Update)
		r.Delete("/expenses/{id}", h.expenses.Delete)

		// Categories
		r.Get("/categories", h.categories.List)
		r.Post("/categories", h.categories.Create)
		r.Get("/categories/{id}", h.categories.Get)
		r.Put("/categories/{id}", h.categories.Update)
		r.Delete("/categories/{id}", h.categories.Delete)

		// Budgets
		r.Get("/budgets", h.budgets.List)
		r.Post("/budgets", h.budgets.Upsert)
		r.Get("/budgets/{month}", h.budgets.Get)
		r.Delete("/budgets/{month}", h.budgets.Delete)
		r.Get("/budgets/{month}/status", h.budgets.Status)

		// Analytics
		r.Get("/analytics/categories", h.analytics.Categories)
		r.Get("/analytics/daily", h.analytics.Daily)
		r.Get("/analytics/monthly", h.analytics.Monthly)
		r.Get("/analytics/compare", h.analytics.Compare)
		r.Get("/analytics/trends", h.analytics.Trends)
		r.Get("/analytics/summary", h.dashboard.GetMonthSummary)

		// Reports
		r.Get("/reports/{month}/export/pdf", h.export.ExportMonthlyReportPDF)

		// Budget alerts
		r.Get("/alerts/health", h.alerts.GetAlertHealth)
		r.Post("/alerts/run", h.alerts.RunAlerts)
	})

	return r
}
