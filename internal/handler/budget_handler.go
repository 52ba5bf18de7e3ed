package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wealthpath/expenses/internal/apperror"
	_ "github.com/wealthpath/expenses/internal/model" // swagger types
	"github.com/wealthpath/expenses/internal/service"
)

type BudgetHandler struct {
	service BudgetServiceInterface
}

func NewBudgetHandler(service BudgetServiceInterface) *BudgetHandler {
	return &BudgetHandler{service: service}
}

// List godoc
// @Summary List budgets
// @Description All monthly budgets, newest month first
// @Tags budgets
// @Produce json
// @Success 200 {array} model.Budget
// @Failure 500 {object} ErrorResponse
// @Router /budgets [get]
func (h *BudgetHandler) List(w http.ResponseWriter, r *http.Request) {
	budgets, err := h.service.List(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, budgets)
}

// Upsert godoc
// @Summary Set a month's budget
// @Description Create or replace the overall and per-category caps for a month
// @Tags budgets
// @Accept json
// @Produce json
// @Param input body service.UpsertBudgetInput true "Budget data"
// @Success 200 {object} model.Budget
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /budgets [post]
func (h *BudgetHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var input service.UpsertBudgetInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondAppError(w, apperror.BadRequest("invalid request body: "+err.Error()))
		return
	}

	budget, err := h.service.Upsert(r.Context(), input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, budget)
}

// Get godoc
// @Summary Get a month's budget
// @Tags budgets
// @Produce json
// @Param month path string true "Month (YYYY-MM)"
// @Success 200 {object} model.Budget
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /budgets/{month} [get]
func (h *BudgetHandler) Get(w http.ResponseWriter, r *http.Request) {
	budget, err := h.service.Get(r.Context(), chi.URLParam(r, "month"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, budget)
}

// Delete godoc
// @Summary Delete a month's budget
// @Tags budgets
// @Param month path string true "Month (YYYY-MM)"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /budgets/{month} [delete]
func (h *BudgetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "month")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Status godoc
// @Summary Budget status
// @Description Spending against the month's overall and per-category caps. A month without a budget reports zeros.
// @Tags budgets
// @Produce json
// @Param month path string true "Month (YYYY-MM)"
// @Success 200 {object} model.BudgetStatus
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /budgets/{month}/status [get]
func (h *BudgetHandler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.GetBudgetStatus(r.Context(), chi.URLParam(r, "month"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, status)
}
