// Package handler implements HTTP handlers for the expense tracker REST API.
// Each handler validates input, delegates to services, and formats responses.
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/wealthpath/expenses/internal/apperror"
	"github.com/wealthpath/expenses/internal/model"
	"github.com/wealthpath/expenses/internal/service"
)

// ExpenseHandler handles HTTP requests for expense operations.
type ExpenseHandler struct {
	service ExpenseServiceInterface
}

// NewExpenseHandler creates a new ExpenseHandler with the given service.
func NewExpenseHandler(service ExpenseServiceInterface) *ExpenseHandler {
	return &ExpenseHandler{service: service}
}

// Create godoc
// @Summary Create an expense
// @Description Record a new expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param input body service.ExpenseInput true "Expense data"
// @Success 201 {object} model.Expense
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /expenses [post]
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.ExpenseInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondAppError(w, apperror.BadRequest("invalid request body: "+err.Error()))
		return
	}

	expense, err := h.service.Create(r.Context(), input)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, expense)
}

// Get godoc
// @Summary Get an expense
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} model.Expense
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /expenses/{id} [get]
func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondAppError(w, apperror.BadRequest("invalid expense ID"))
		return
	}

	expense, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, expense)
}

// List godoc
// @Summary List expenses
// @Description Page through expenses, newest first, with optional filters
// @Tags expenses
// @Produce json
// @Param page query int false "Page number (1-based)" default(1)
// @Param pageSize query int false "Items per page" default(20)
// @Param categoryId query string false "Filter by category"
// @Param paymentMethod query string false "Filter by payment method"
// @Param startDate query string false "Filter by start date (YYYY-MM-DD)"
// @Param endDate query string false "Filter by end date (YYYY-MM-DD)"
// @Param search query string false "Search in description"
// @Param minAmount query number false "Minimum amount"
// @Param maxAmount query number false "Maximum amount"
// @Success 200 {object} service.ExpensePage
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /expenses [get]
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	input, err := parseExpenseFilters(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	page, err := h.service.List(r.Context(), input)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, page)
}

// Update godoc
// @Summary Update an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param input body service.ExpenseInput true "Expense data"
// @Success 200 {object} model.Expense
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /expenses/{id} [put]
func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondAppError(w, apperror.BadRequest("invalid expense ID"))
		return
	}

	var input service.ExpenseInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondAppError(w, apperror.BadRequest("invalid request body: "+err.Error()))
		return
	}

	expense, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, expense)
}

// Delete godoc
// @Summary Delete an expense
// @Tags expenses
// @Param id path string true "Expense ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /expenses/{id} [delete]
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondAppError(w, apperror.BadRequest("invalid expense ID"))
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseExpenseFilters reads the list filters shared by listing and CSV export.
func parseExpenseFilters(r *http.Request) (service.ListExpensesInput, error) {
	var input service.ListExpensesInput
	q := r.URL.Query()

	if page := q.Get("page"); page != "" {
		p, err := strconv.Atoi(page)
		if err != nil || p < 1 {
			return input, apperror.InvalidArgument("page", "page must be a positive integer")
		}
		input.Page = p
	}
	if pageSize := q.Get("pageSize"); pageSize != "" {
		ps, err := strconv.Atoi(pageSize)
		if err != nil || ps < 1 {
			return input, apperror.InvalidArgument("pageSize", "pageSize must be a positive integer")
		}
		input.PageSize = ps
	}

	input.CategoryID = queryString(r, "categoryId")
	input.Search = queryString(r, "search")
	if method := queryString(r, "paymentMethod"); method != nil {
		pm := model.PaymentMethod(*method)
		input.PaymentMethod = &pm
	}

	var err error
	if input.StartDate, err = queryDate(r, "startDate"); err != nil {
		return input, err
	}
	if input.EndDate, err = queryDate(r, "endDate"); err != nil {
		return input, err
	}
	if input.MinAmount, err = queryDecimal(r, "minAmount"); err != nil {
		return input, err
	}
	if input.MaxAmount, err = queryDecimal(r, "maxAmount"); err != nil {
		return input, err
	}

	return input, nil
}
