package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/wealthpath/expenses/internal/apperror"
	"github.com/wealthpath/expenses/internal/model"
	"github.com/wealthpath/expenses/internal/repository"
	"github.com/wealthpath/expenses/pkg/currency"
)

// maxExportRows bounds a single CSV export.
const maxExportRows = 10000

// ExpenseExporter provides unpaginated expense reads for export.
type ExpenseExporter interface {
	ListAll(ctx context.Context, filters repository.ExpenseFilters) ([]model.Expense, error)
	Count(ctx context.Context, filters repository.ExpenseFilters) (int, error)
}

// MonthSummaryProvider supplies the data behind the monthly PDF report.
type MonthSummaryProvider interface {
	GetMonthSummary(ctx context.Context, month string) (*model.MonthSummary, error)
}

// ExportService handles data export functionality for expenses and reports.
type ExportService struct {
	expenseRepo  ExpenseExporter
	categoryRepo CategoryLister
	summaries    MonthSummaryProvider
	currency     currency.Currency
	now          func() time.Time
}

// NewExportService creates a new ExportService. Amounts in reports are formatted in cur.
func NewExportService(expenseRepo ExpenseExporter, categoryRepo CategoryLister, summaries MonthSummaryProvider, cur currency.Currency) *ExportService {
	return &ExportService{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		summaries:    summaries,
		currency:     cur,
		now:          time.Now,
	}
}

// ExportExpensesCSV exports expenses matching input to CSV, newest first.
// Pagination fields of input are ignored. A filter matching more than
// maxExportRows expenses is rejected rather than cut short.
func (s *ExportService) ExportExpensesCSV(ctx context.Context, input ListExpensesInput) ([]byte, error) {
	filters, err := input.toFilters()
	if err != nil {
		return nil, err
	}

	total, err := s.expenseRepo.Count(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("counting expenses for export: %w", err)
	}
	if total > maxExportRows {
		return nil, apperror.BadRequest(fmt.Sprintf("export matches %d expenses, more than the limit of %d; narrow the filters", total, maxExportRows))
	}

	expenses, err := s.expenseRepo.ListAll(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("fetching expenses for export: %w", err)
	}
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	lookup := indexCategories(categories)

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"Date", "Category", "Description", "Payment Method", "Amount"}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("writing CSV header: %w", err)
	}

	for _, e := range expenses {
		category := e.CategoryID
		if c, ok := lookup[e.CategoryID]; ok {
			category = c.Name
		}
		row := []string{
			e.Date.String(),
			category,
			e.Description,
			string(e.PaymentMethod),
			e.Amount.StringFixed(2),
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("writing CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flushing CSV writer: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportMonthlyReportPDF renders the month summary as an A4 report.
func (s *ExportService) ExportMonthlyReportPDF(ctx context.Context, month string) ([]byte, error) {
	summary, err := s.summaries.GetMonthSummary(ctx, month)
	if err != nil {
		return nil, err
	}
	return s.renderMonthlyReport(summary)
}

func (s *ExportService) renderMonthlyReport(summary *model.MonthSummary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 24)
	pdf.SetTextColor(33, 37, 41)
	pdf.CellFormat(0, 12, "Expense Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 14)
	pdf.SetTextColor(108, 117, 125)
	pdf.CellFormat(0, 8, summary.Month.Display(), "", 1, "C", false, 0, "")
	pdf.Ln(10)

	s.sectionTitle(pdf, "Summary")
	status := summary.BudgetStatus
	s.summaryRow(pdf, "Total Spent", currency.Format(summary.TotalSpent, s.currency))
	if status != nil && status.TotalBudget.IsPositive() {
		s.summaryRow(pdf, "Budget", currency.Format(status.TotalBudget, s.currency))
		s.summaryRow(pdf, "Remaining", currency.Format(status.TotalRemaining, s.currency))
		s.summaryRow(pdf, "Budget Used", fmt.Sprintf("%d%%", status.PercentageUsed))
	}
	s.summaryRow(pdf, "Days With Spending", fmt.Sprintf("%d", len(summary.DailyTotals)))
	pdf.Ln(10)

	if len(summary.Breakdown) > 0 {
		s.sectionTitle(pdf, "Spending by Category")
		tableHeader(pdf, []string{"Category", "Amount", "% of Total"}, []float64{80, 45, 45})

		pdf.SetFont("Arial", "", 10)
		for _, e := range summary.Breakdown {
			pdf.SetTextColor(33, 37, 41)
			pdf.CellFormat(80, 7, e.CategoryName, "1", 0, "L", false, 0, "")
			pdf.CellFormat(45, 7, currency.Format(e.Amount, s.currency), "1", 0, "R", false, 0, "")
			pdf.CellFormat(45, 7, fmt.Sprintf("%.1f%%", e.Percentage), "1", 1, "R", false, 0, "")
		}
		pdf.Ln(10)
	}

	if status != nil && len(status.Categories) > 0 {
		s.sectionTitle(pdf, "Budget Status")
		tableHeader(pdf, []string{"Category", "Budgeted", "Spent", "Used", "Status"}, []float64{50, 35, 35, 20, 30})

		pdf.SetFont("Arial", "", 10)
		for _, c := range status.Categories {
			pdf.SetTextColor(33, 37, 41)
			pdf.CellFormat(50, 7, c.CategoryName, "1", 0, "L", false, 0, "")
			pdf.CellFormat(35, 7, currency.Format(c.Budgeted, s.currency), "1", 0, "R", false, 0, "")
			pdf.CellFormat(35, 7, currency.Format(c.Spent, s.currency), "1", 0, "R", false, 0, "")
			pdf.CellFormat(20, 7, fmt.Sprintf("%d%%", c.Percentage), "1", 0, "R", false, 0, "")
			r, g, b := statusColor(c.Status)
			pdf.SetTextColor(r, g, b)
			pdf.CellFormat(30, 7, string(c.Status), "1", 1, "C", false, 0, "")
		}
	}

	// Footer
	pdf.SetY(-25)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(108, 117, 125)
	pdf.CellFormat(0, 5, fmt.Sprintf("Generated on %s", s.now().Format("January 2, 2006")), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("generating PDF: %w", err)
	}

	return buf.Bytes(), nil
}

func (s *ExportService) sectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(33, 37, 41)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")

	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.Ln(5)
}

func (s *ExportService) summaryRow(pdf *gofpdf.Fpdf, label, value string) {
	colWidth := 85.0
	pdf.SetFont("Arial", "", 11)
	pdf.SetTextColor(108, 117, 125)
	pdf.CellFormat(colWidth, 7, label, "", 0, "L", false, 0, "")
	pdf.SetTextColor(33, 37, 41)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(colWidth, 7, value, "", 1, "R", false, 0, "")
}

func tableHeader(pdf *gofpdf.Fpdf, titles []string, widths []float64) {
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(248, 249, 250)
	pdf.SetTextColor(33, 37, 41)
	for i, title := range titles {
		align := "R"
		if i == 0 {
			align = "L"
		}
		ln := 0
		if i == len(titles)-1 {
			ln = 1
		}
		pdf.CellFormat(widths[i], 8, title, "1", ln, align, true, 0, "")
	}
}

func statusColor(level model.BudgetStatusLevel) (int, int, int) {
	switch level {
	case model.BudgetStatusExceeded:
		return 220, 53, 69
	case model.BudgetStatusWarning:
		return 255, 153, 0
	default:
		return 40, 167, 69
	}
}
