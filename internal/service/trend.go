package service

import (
	"context"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/wealthpath/expenses/internal/apperror"
	"github.com/wealthpath/expenses/internal/model"
	"github.com/wealthpath/expenses/pkg/datetime"
)

// DefaultTrendWindow is the number of months analyzed when the caller does not choose one.
const DefaultTrendWindow = 6

// Insight and direction thresholds, as fractions of the window average
// (recentChangeThreshold is in percent).
const (
	averageDeviationThreshold = 0.15
	highVolatilityThreshold   = 0.20
	lowVolatilityThreshold    = 0.05
	trendDirectionThreshold   = 0.10
	recentChangeThreshold     = 20.0

	// trendDirectionMonths is how many trailing months decide the direction.
	trendDirectionMonths = 3
)

// GetTrendAnalysis analyzes windowMonths of monthly totals ending at month.
// A window that resolves to no months is reported as InsufficientData.
func (s *AnalyticsService) GetTrendAnalysis(ctx context.Context, month string, windowMonths int) (*model.TrendAnalysis, error) {
	current, err := parseMonthKey("month", month)
	if err != nil {
		return nil, err
	}
	if windowMonths <= 0 {
		return nil, apperror.InsufficientData(fmt.Sprintf("trend window must cover at least one month, got %d", windowMonths))
	}
	if windowMonths > MaxSeriesMonths {
		return nil, apperror.InvalidArgument("months", fmt.Sprintf("trend window must be at most %d months, got %d", MaxSeriesMonths, windowMonths))
	}

	totals, err := s.monthlyTotals(ctx, current, windowMonths)
	if err != nil {
		return nil, err
	}
	if len(totals) == 0 {
		return nil, apperror.InsufficientData("no months to analyze")
	}

	analysis := analyzeTrend(current, totals)
	return &analysis, nil
}

// analyzeTrend is deterministic for a given series: decimal arithmetic up to the
// final square root, then fixed rounding.
func analyzeTrend(month datetime.Month, totals []model.MonthlyTotal) model.TrendAnalysis {
	n := len(totals)

	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t.Amount)
	}
	average := sum.Div(decimal.NewFromInt(int64(n)))
	currentTotal := totals[n-1].Amount

	changes := make([]model.MonthlyChange, 0, n-1)
	changeSum := decimal.Zero
	for i := 1; i < n; i++ {
		prev, cur := totals[i-1].Amount, totals[i].Amount
		change := cur.Sub(prev)

		pct := 0.0
		if prev.IsPositive() {
			pct = round2(change.Div(prev).Mul(hundred).InexactFloat64())
		}

		changes = append(changes, model.MonthlyChange{
			Month:            totals[i].Month,
			Amount:           cur,
			Change:           change,
			PercentageChange: pct,
		})
		changeSum = changeSum.Add(change)
	}

	averageChange := decimal.Zero
	volatility := 0.0
	if len(changes) > 0 {
		count := decimal.NewFromInt(int64(len(changes)))
		averageChange = changeSum.Div(count)

		variance := decimal.Zero
		for _, c := range changes {
			d := c.Change.Sub(averageChange)
			variance = variance.Add(d.Mul(d))
		}
		volatility = math.Sqrt(variance.Div(count).InexactFloat64())
	}

	direction := trendDirection(totals, average)

	return model.TrendAnalysis{
		Month:                month,
		WindowMonths:         n,
		CurrentMonthTotal:    currentTotal,
		AverageSpending:      average.Round(2),
		MonthlyTotals:        totals,
		MonthlyChanges:       changes,
		AverageMonthlyChange: averageChange.Round(2),
		Volatility:           round2(volatility),
		TrendDirection:       direction,
		Insights:             trendInsights(n, currentTotal, average, volatility, direction, changes),
	}
}

// trendDirection compares the first and last of the trailing months against
// a band of trendDirectionThreshold around the window average.
func trendDirection(totals []model.MonthlyTotal, average decimal.Decimal) model.TrendDirection {
	n := len(totals)
	if n < trendDirectionMonths {
		return model.TrendStable
	}

	first := totals[n-trendDirectionMonths].Amount
	last := totals[n-1].Amount
	threshold := average.Mul(decimal.NewFromFloat(trendDirectionThreshold))

	switch {
	case last.Sub(first).GreaterThan(threshold):
		return model.TrendIncreasing
	case first.Sub(last).GreaterThan(threshold):
		return model.TrendDecreasing
	default:
		return model.TrendStable
	}
}

func trendInsights(window int, current, average decimal.Decimal, volatility float64, direction model.TrendDirection, changes []model.MonthlyChange) []string {
	insights := make([]string, 0, 4)
	avg := average.InexactFloat64()

	if avg > 0 {
		deviation := current.Sub(average).Div(average).InexactFloat64()
		if math.Abs(deviation) > averageDeviationThreshold {
			side := "above"
			if deviation < 0 {
				side = "below"
			}
			insights = append(insights, fmt.Sprintf("Your spending this month is %.1f%% %s your %d-month average",
				math.Abs(deviation)*100, side, window))
		}

		// A window without deltas has zero volatility and counts as consistent.
		switch {
		case volatility > highVolatilityThreshold*avg:
			insights = append(insights, "Your spending shows high volatility from month to month")
		case volatility < lowVolatilityThreshold*avg:
			insights = append(insights, "Your spending is very consistent from month to month")
		}
	}

	switch direction {
	case model.TrendIncreasing:
		insights = append(insights, fmt.Sprintf("Your spending has been trending upward over the last %d months", trendDirectionMonths))
	case model.TrendDecreasing:
		insights = append(insights, fmt.Sprintf("Your spending has been trending downward over the last %d months", trendDirectionMonths))
	}

	if len(changes) > 0 {
		latest := changes[len(changes)-1]
		if math.Abs(latest.PercentageChange) > recentChangeThreshold {
			kind := "increase"
			if latest.PercentageChange < 0 {
				kind = "decrease"
			}
			insights = append(insights, fmt.Sprintf("This month shows a %.1f%% %s from last month",
				math.Abs(latest.PercentageChange), kind))
		}
	}

	return insights
}
