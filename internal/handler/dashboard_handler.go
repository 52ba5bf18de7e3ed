package handler

import (
	"net/http"

	_ "github.com/wealthpath/expenses/internal/model" // swagger types
)

type DashboardHandler struct {
	service SummaryServiceInterface
}

func NewDashboardHandler(service SummaryServiceInterface) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// GetMonthSummary godoc
// @Summary Month summary
// @Description Category breakdown, daily totals and budget status for one month
// @Tags analytics
// @Produce json
// @Param month query string false "Month (YYYY-MM), defaults to the current month"
// @Success 200 {object} model.MonthSummary
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /analytics/summary [get]
func (h *DashboardHandler) GetMonthSummary(w http.ResponseWriter, r *http.Request) {
	month, err := queryMonth(r, "month")
	if err != nil {
		handleError(w, r, err)
		return
	}

	summary, err := h.service.GetMonthSummary(r.Context(), month)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}
