package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

// ExportHandler handles data export endpoints.
type ExportHandler struct {
	service ExportServiceInterface
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(service ExportServiceInterface) *ExportHandler {
	return &ExportHandler{service: service}
}

// ExportExpensesCSV godoc
// @Summary Export expenses to CSV
// @Description Export expenses matching the list filters to CSV
// @Tags export
// @Produce text/csv
// @Param categoryId query string false "Filter by category"
// @Param paymentMethod query string false "Filter by payment method"
// @Param search query string false "Search in description"
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD)"
// @Param minAmount query number false "Minimum amount"
// @Param maxAmount query number false "Maximum amount"
// @Success 200 {file} file "CSV file"
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /expenses/export/csv [get]
func (h *ExportHandler) ExportExpensesCSV(w http.ResponseWriter, r *http.Request) {
	input, err := parseExpenseFilters(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	csvData, err := h.service.ExportExpensesCSV(r.Context(), input)
	if err != nil {
		handleError(w, r, err)
		return
	}

	filename := fmt.Sprintf("expenses_%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(csvData)))
	_, _ = w.Write(csvData)
}

// ExportMonthlyReportPDF godoc
// @Summary Export monthly report to PDF
// @Description Spending breakdown, budget status and totals for one month
// @Tags export
// @Produce application/pdf
// @Param month path string true "Month (YYYY-MM)"
// @Success 200 {file} file "PDF file"
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /reports/{month}/export/pdf [get]
func (h *ExportHandler) ExportMonthlyReportPDF(w http.ResponseWriter, r *http.Request) {
	month := chi.URLParam(r, "month")

	pdfData, err := h.service.ExportMonthlyReportPDF(r.Context(), month)
	if err != nil {
		handleError(w, r, err)
		return
	}

	filename := fmt.Sprintf("expense_report_%s.pdf", month)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdfData)))
	_, _ = w.Write(pdfData)
}
