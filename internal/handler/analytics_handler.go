package handler

import (
	"net/http"
	"strings"

	"github.com/wealthpath/expenses/internal/apperror"
	_ "github.com/wealthpath/expenses/internal/model" // swagger types
	"github.com/wealthpath/expenses/internal/service"
)

const minSeriesMonths = 1

// AnalyticsHandler serves the read-only spending analytics.
type AnalyticsHandler struct {
	service AnalyticsServiceInterface
}

func NewAnalyticsHandler(service AnalyticsServiceInterface) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// Categories godoc
// @Summary Category breakdown
// @Description Spending per category for a month, or for an inclusive date range when startDate and endDate are given
// @Tags analytics
// @Produce json
// @Param month query string false "Month (YYYY-MM), defaults to the current month"
// @Param startDate query string false "Range start (YYYY-MM-DD)"
// @Param endDate query string false "Range end (YYYY-MM-DD)"
// @Success 200 {array} model.CategoryBreakdownEntry
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /analytics/categories [get]
func (h *AnalyticsHandler) Categories(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, end := strings.TrimSpace(q.Get("startDate")), strings.TrimSpace(q.Get("endDate"))

	if start != "" || end != "" {
		if start == "" || end == "" {
			respondAppError(w, apperror.InvalidArgument("startDate", "startDate and endDate must be given together"))
			return
		}
		entries, err := h.service.GetCategoryBreakdownForRange(r.Context(), start, end)
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, entries)
		return
	}

	month, err := queryMonth(r, "month")
	if err != nil {
		handleError(w, r, err)
		return
	}
	entries, err := h.service.GetCategoryBreakdown(r.Context(), month)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

// Daily godoc
// @Summary Daily totals
// @Description Spending per day with at least one expense
// @Tags analytics
// @Produce json
// @Param month query string false "Month (YYYY-MM), defaults to the current month"
// @Success 200 {array} model.DailyTotal
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /analytics/daily [get]
func (h *AnalyticsHandler) Daily(w http.ResponseWriter, r *http.Request) {
	month, err := queryMonth(r, "month")
	if err != nil {
		handleError(w, r, err)
		return
	}

	totals, err := h.service.GetDailyTotals(r.Context(), month)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, totals)
}

// Monthly godoc
// @Summary Monthly totals
// @Description Consecutive months ending at endMonth, oldest first, zero-filled
// @Tags analytics
// @Produce json
// @Param endMonth query string false "Last month (YYYY-MM), defaults to the current month"
// @Param count query int false "Number of months (1-24)" default(6)
// @Success 200 {array} model.MonthlyTotal
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /analytics/monthly [get]
func (h *AnalyticsHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	endMonth, err := queryMonth(r, "endMonth")
	if err != nil {
		handleError(w, r, err)
		return
	}
	count, err := queryCount(r, "count", service.DefaultMonthlyTotalsCount, minSeriesMonths, service.MaxSeriesMonths)
	if err != nil {
		handleError(w, r, err)
		return
	}

	totals, err := h.service.GetMonthlyTotals(r.Context(), endMonth, count)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, totals)
}

// Compare godoc
// @Summary Compare two months
// @Description Per-category differences, largest swings first
// @Tags analytics
// @Produce json
// @Param current query string true "Current month (YYYY-MM)"
// @Param previous query string true "Month to compare against (YYYY-MM)"
// @Success 200 {array} model.MonthComparisonEntry
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /analytics/compare [get]
func (h *AnalyticsHandler) Compare(w http.ResponseWriter, r *http.Request) {
	current, err := queryRequiredMonth(r, "current")
	if err != nil {
		handleError(w, r, err)
		return
	}
	previous, err := queryRequiredMonth(r, "previous")
	if err != nil {
		handleError(w, r, err)
		return
	}

	entries, err := h.service.CompareMonths(r.Context(), current, previous)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

// Trends godoc
// @Summary Trend analysis
// @Description Average, volatility, direction and insights over a window of months
// @Tags analytics
// @Produce json
// @Param month query string false "Last month of the window (YYYY-MM), defaults to the current month"
// @Param months query int false "Window size (1-24)" default(6)
// @Success 200 {object} model.TrendAnalysis
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /analytics/trends [get]
func (h *AnalyticsHandler) Trends(w http.ResponseWriter, r *http.Request) {
	month, err := queryMonth(r, "month")
	if err != nil {
		handleError(w, r, err)
		return
	}
	window, err := queryCount(r, "months", service.DefaultTrendWindow, minSeriesMonths, service.MaxSeriesMonths)
	if err != nil {
		handleError(w, r, err)
		return
	}

	analysis, err := h.service.GetTrendAnalysis(r.Context(), month, window)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, analysis)
}
