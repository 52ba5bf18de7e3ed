package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/wealthpath/expenses/internal/apperror"
	"github.com/wealthpath/expenses/internal/logger"
	"github.com/wealthpath/expenses/internal/repository"
	"github.com/wealthpath/expenses/pkg/datetime"
)

// ErrorResponse represents a JSON error response body.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// respondJSON writes a JSON response with the given status code.
// It sets the Content-Type header to application/json.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// respondError writes a JSON error response with the given status code and message.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondAppError writes a JSON error response from an AppError.
// It extracts the status code and message from the error.
func respondAppError(w http.ResponseWriter, err *apperror.AppError) {
	resp := ErrorResponse{
		Error: err.Message,
		Field: err.Field,
	}
	respondJSON(w, err.StatusCode, resp)
}

// handleError translates a service error into a response.
// Server-side failures are logged with the request ID and answered with a generic message.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repository.ErrExpenseNotFound):
		respondAppError(w, apperror.NotFound("expense"))
		return
	case errors.Is(err, repository.ErrCategoryNotFound):
		respondAppError(w, apperror.NotFound("category"))
		return
	case errors.Is(err, repository.ErrBudgetNotFound):
		respondAppError(w, apperror.NotFound("budget"))
		return
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) && apperror.IsClientError(appErr) {
		respondAppError(w, appErr)
		return
	}

	logger.FromContext(r.Context()).Error("Request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err.Error(),
	)
	respondAppError(w, apperror.Internal(err))
}

// parseDecimal parses a string into a decimal.Decimal.
func parseDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// queryMonth reads a YYYY-MM query parameter, falling back to the current month when absent.
func queryMonth(r *http.Request, name string) (string, error) {
	value := strings.TrimSpace(r.URL.Query().Get(name))
	if value == "" {
		return datetime.CurrentMonth().String(), nil
	}
	if _, err := datetime.ParseMonth(value); err != nil {
		return "", apperror.InvalidArgument(name, err.Error())
	}
	return value, nil
}

// queryRequiredMonth is queryMonth without the fallback.
func queryRequiredMonth(r *http.Request, name string) (string, error) {
	value := strings.TrimSpace(r.URL.Query().Get(name))
	if value == "" {
		return "", apperror.InvalidArgument(name, name+" is required (YYYY-MM)")
	}
	return queryMonth(r, name)
}

// queryCount reads an integer parameter in [lo, hi], returning def when absent.
func queryCount(r *http.Request, name string, def, lo, hi int) (int, error) {
	value := strings.TrimSpace(r.URL.Query().Get(name))
	if value == "" {
		return def, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < lo || n > hi {
		return 0, apperror.InvalidArgument(name, name+" must be an integer between "+strconv.Itoa(lo)+" and "+strconv.Itoa(hi))
	}
	return n, nil
}

// queryDate reads an optional YYYY-MM-DD parameter.
func queryDate(r *http.Request, name string) (*datetime.Date, error) {
	value := strings.TrimSpace(r.URL.Query().Get(name))
	if value == "" {
		return nil, nil
	}
	d, err := datetime.ParseDate(value)
	if err != nil {
		return nil, apperror.InvalidArgument(name, name+" must be YYYY-MM-DD")
	}
	return &d, nil
}

// queryDecimal reads an optional decimal parameter.
func queryDecimal(r *http.Request, name string) (*decimal.Decimal, error) {
	value := strings.TrimSpace(r.URL.Query().Get(name))
	if value == "" {
		return nil, nil
	}
	d, err := parseDecimal(value)
	if err != nil {
		return nil, apperror.InvalidArgument(name, name+" must be a number")
	}
	return &d, nil
}

// queryString reads an optional non-blank parameter.
func queryString(r *http.Request, name string) *string {
	value := strings.TrimSpace(r.URL.Query().Get(name))
	if value == "" {
		return nil
	}
	return &value
}
