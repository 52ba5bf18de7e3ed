package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/wealthpath/expenses/internal/model"
	"github.com/wealthpath/expenses/internal/repository"
	"github.com/wealthpath/expenses/internal/service"
	"github.com/wealthpath/expenses/pkg/currency"
	"github.com/wealthpath/expenses/pkg/datetime"
)

// reportSource is the slice of the service layer the report commands read from.
type reportSource interface {
	GetCategoryBreakdown(ctx context.Context, month string) ([]model.CategoryBreakdownEntry, error)
	GetTrendAnalysis(ctx context.Context, month string, windowMonths int) (*model.TrendAnalysis, error)
	GetBudgetStatus(ctx context.Context, month string) (*model.BudgetStatus, error)
}

type dbReports struct {
	*service.AnalyticsService
	budgets *service.BudgetService
}

func (r dbReports) GetBudgetStatus(ctx context.Context, month string) (*model.BudgetStatus, error) {
	return r.budgets.GetBudgetStatus(ctx, month)
}

func newDBReports(db *sqlx.DB) reportSource {
	expenseRepo := repository.NewExpenseRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	budgetRepo := repository.NewBudgetRepository(db)
	return dbReports{
		AnalyticsService: service.NewAnalyticsService(expenseRepo, categoryRepo),
		budgets:          service.NewBudgetService(budgetRepo, expenseRepo, categoryRepo),
	}
}

// withReports opens the reports backed by the database; tests replace it.
var withReports = func(ctx context.Context, opts *options, run func(reportSource) error) error {
	return withDB(ctx, opts, func(db *sqlx.DB) error {
		return run(newDBReports(db))
	})
}

type reportFlags struct {
	month  string
	format string
	months int
}

func (f *reportFlags) validate() error {
	if f.month == "" {
		f.month = datetime.CurrentMonth().String()
	}
	if _, err := datetime.ParseMonth(f.month); err != nil {
		return fmt.Errorf("invalid --month: %w", err)
	}
	switch f.format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid --format %q (expected json or text)", f.format)
	}
	return nil
}

func newReportCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print category, trend and budget reports for a month",
	}

	flags := &reportFlags{}
	cmd.PersistentFlags().StringVar(&flags.month, "month", "", "Month as YYYY-MM (defaults to the current month)")
	cmd.PersistentFlags().StringVar(&flags.format, "format", "text", "Output format: text or json")

	breakdown := &cobra.Command{
		Use:   "breakdown",
		Short: "Spending per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.validate(); err != nil {
				return err
			}
			return withReports(cmd.Context(), opts, func(src reportSource) error {
				entries, err := src.GetCategoryBreakdown(cmd.Context(), flags.month)
				if err != nil {
					return err
				}
				if flags.format == "json" {
					return writeJSON(cmd.OutOrStdout(), entries)
				}
				return printBreakdown(cmd.OutOrStdout(), entries, displayCurrency(opts))
			})
		},
	}

	trend := &cobra.Command{
		Use:   "trend",
		Short: "Month-over-month trend and insights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.validate(); err != nil {
				return err
			}
			if flags.months < 1 || flags.months > service.MaxSeriesMonths {
				return fmt.Errorf("--months must be between 1 and %d", service.MaxSeriesMonths)
			}
			return withReports(cmd.Context(), opts, func(src reportSource) error {
				analysis, err := src.GetTrendAnalysis(cmd.Context(), flags.month, flags.months)
				if err != nil {
					return err
				}
				if flags.format == "json" {
					return writeJSON(cmd.OutOrStdout(), analysis)
				}
				return printTrend(cmd.OutOrStdout(), analysis, displayCurrency(opts))
			})
		},
	}
	trend.Flags().IntVar(&flags.months, "months", service.DefaultTrendWindow, "Number of months to analyze")

	budget := &cobra.Command{
		Use:   "budget",
		Short: "Budget status per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.validate(); err != nil {
				return err
			}
			return withReports(cmd.Context(), opts, func(src reportSource) error {
				status, err := src.GetBudgetStatus(cmd.Context(), flags.month)
				if err != nil {
					return err
				}
				if flags.format == "json" {
					return writeJSON(cmd.OutOrStdout(), status)
				}
				return printBudget(cmd.OutOrStdout(), status, displayCurrency(opts))
			})
		},
	}

	cmd.AddCommand(breakdown, trend, budget)
	return cmd
}

func displayCurrency(opts *options) currency.Currency {
	if opts.cfg == nil || opts.cfg.DefaultCurrency == "" {
		return currency.DefaultCurrency
	}
	return opts.cfg.DefaultCurrency
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func printBreakdown(w io.Writer, entries []model.CategoryBreakdownEntry, cur currency.Currency) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No spending recorded.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tAMOUNT\tSHARE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%.1f%%\n", e.CategoryName, currency.Format(e.Amount, cur), e.Percentage)
	}
	return tw.Flush()
}

func printTrend(w io.Writer, a *model.TrendAnalysis, cur currency.Currency) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MONTH\tTOTAL")
	for _, t := range a.MonthlyTotals {
		fmt.Fprintf(tw, "%s\t%s\n", t.Month, currency.Format(t.Amount, cur))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nAverage: %s\n", currency.Format(a.AverageSpending, cur))
	fmt.Fprintf(w, "Average change: %s\n", currency.Format(a.AverageMonthlyChange, cur))
	fmt.Fprintf(w, "Volatility: %.2f\n", a.Volatility)
	fmt.Fprintf(w, "Direction: %s\n", a.TrendDirection)
	if len(a.Insights) > 0 {
		fmt.Fprintf(w, "\nInsights:\n  - %s\n", strings.Join(a.Insights, "\n  - "))
	}
	return nil
}

func printBudget(w io.Writer, s *model.BudgetStatus, cur currency.Currency) error {
	fmt.Fprintf(w, "Budget %s: %s spent of %s (%d%%), %s remaining\n",
		s.Month, currency.Format(s.TotalSpent, cur), currency.Format(s.TotalBudget, cur),
		s.PercentageUsed, currency.Format(s.TotalRemaining, cur))
	if len(s.Categories) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tBUDGETED\tSPENT\tUSED\tSTATUS")
	for _, c := range s.Categories {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d%%\t%s\n", c.CategoryName,
			currency.Format(c.Budgeted, cur), currency.Format(c.Spent, cur), c.Percentage, c.Status)
	}
	return tw.Flush()
}
