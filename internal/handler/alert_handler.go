package handler

import (
	"net/http"
)

type AlertHandler struct {
	scheduler AlertSchedulerInterface
}

func NewAlertHandler(scheduler AlertSchedulerInterface) *AlertHandler {
	return &AlertHandler{scheduler: scheduler}
}

// RunAlerts godoc
// @Summary Evaluate budget alerts now
// @Description Evaluate the current month's budget and send one alert per category in warning or exceeded state
// @Tags alerts
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Router /alerts/run [post]
func (h *AlertHandler) RunAlerts(w http.ResponseWriter, r *http.Request) {
	sent, err := h.scheduler.CheckBudgets(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Budget alerts evaluated",
		"sent":    sent,
	})
}

// GetAlertHealth godoc
// @Summary Get budget alert job health
// @Description Schedule, next run and the outcome of recent alert runs
// @Tags alerts
// @Produce json
// @Success 200 {object} scheduler.HealthStatus
// @Router /alerts/health [get]
func (h *AlertHandler) GetAlertHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.scheduler.Health())
}
