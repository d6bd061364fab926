package analyzer

import (
	"context"
	"testing"
	"time"

	"spendscope/internal/logging"
	"spendscope/internal/models"
	"spendscope/internal/taxonomy"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(description, amount string, date time.Time) models.Transaction {
	return models.Transaction{
		Date:        date,
		Description: description,
		Amount:      decimal.RequireFromString(amount),
	}
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	return New(taxonomy.Default(), DefaultOptions(), WithLogger(logging.NewMockLogger()))
}

func TestAnalyzeCashFlow(t *testing.T) {
	a := newTestAnalyzer(t)

	analysis := a.Analyze(context.Background(), []models.Transaction{
		tx("salary deposit", "3000", day(2025, 1, 1)),
		tx("monthly rent", "-1500", day(2025, 1, 2)),
		tx("grocery store", "-300", day(2025, 1, 3)),
	})

	assert.True(t, analysis.Income.Equal(decimal.NewFromInt(3000)))
	assert.True(t, analysis.Expenses.Equal(decimal.NewFromInt(1800)))
	assert.True(t, analysis.NetCashFlow.Equal(decimal.NewFromInt(1200)))
	assert.InDelta(t, 0.4, analysis.SavingsRate, 1e-9)
}

func TestAnalyzeSavingsRateZeroWithoutIncome(t *testing.T) {
	a := newTestAnalyzer(t)

	analysis := a.Analyze(context.Background(), []models.Transaction{
		tx("grocery store", "-300", day(2025, 1, 3)),
	})

	assert.True(t, analysis.Income.IsZero())
	assert.Zero(t, analysis.SavingsRate)
	assert.True(t, analysis.NetCashFlow.Equal(decimal.NewFromInt(-300)))
}

func TestAnalyzeSpendingByCategorySumsToExpenses(t *testing.T) {
	a := newTestAnalyzer(t)

	analysis := a.Analyze(context.Background(), []models.Transaction{
		tx("salary deposit", "4000", day(2025, 1, 1)),
		tx("monthly rent", "-1500", day(2025, 1, 2)),
		tx("grocery store", "-220", day(2025, 1, 5)),
		tx("starbucks coffee", "-6.50", day(2025, 1, 6)),
		tx("zzqx wvvk", "-12", day(2025, 1, 7)),
	})

	sum := decimal.Zero
	for _, amount := range analysis.SpendingByCategory {
		sum = sum.Add(amount)
	}
	assert.True(t, sum.Equal(analysis.Expenses), "category totals %s should sum to expenses %s", sum, analysis.Expenses)

	// Income never appears in the spending map.
	_, hasIncome := analysis.SpendingByCategory[models.CategoryIncome]
	assert.False(t, hasIncome)
}

func TestAnalyzeMonthlySpending(t *testing.T) {
	a := newTestAnalyzer(t)

	analysis := a.Analyze(context.Background(), []models.Transaction{
		tx("grocery store", "-100", day(2025, 1, 5)),
		tx("grocery store", "-150", day(2025, 2, 5)),
	})

	require.Contains(t, analysis.MonthlySpending, "2025-01")
	require.Contains(t, analysis.MonthlySpending, "2025-02")
	assert.True(t, analysis.MonthlySpending["2025-01"][models.CategoryGroceries].Equal(decimal.NewFromInt(100)))
	assert.True(t, analysis.MonthlySpending["2025-02"][models.CategoryGroceries].Equal(decimal.NewFromInt(150)))
}

func TestAnalyzeTopRankings(t *testing.T) {
	a := newTestAnalyzer(t)

	analysis := a.Analyze(context.Background(), []models.Transaction{
		tx("monthly rent", "-1500", day(2025, 1, 1)),
		tx("grocery store", "-300", day(2025, 1, 2)),
		tx("starbucks coffee", "-20", day(2025, 1, 3)),
	})

	require.NotEmpty(t, analysis.TopSpendingCategories)
	assert.Equal(t, models.CategoryHousing, analysis.TopSpendingCategories[0].Category)
	assert.True(t, analysis.TopSpendingCategories[0].Amount.Equal(decimal.NewFromInt(1500)))

	require.NotEmpty(t, analysis.TopMerchants)
	assert.Equal(t, "Monthly Rent", analysis.TopMerchants[0].Merchant)
}

func TestAnalyzeTopRankingLimits(t *testing.T) {
	opts := DefaultOptions()
	opts.TopCategories = 2
	opts.TopMerchants = 2
	a := New(taxonomy.Default(), opts, WithLogger(logging.NewMockLogger()))

	analysis := a.Analyze(context.Background(), []models.Transaction{
		tx("monthly rent", "-1500", day(2025, 1, 1)),
		tx("grocery store", "-300", day(2025, 1, 2)),
		tx("starbucks coffee", "-20", day(2025, 1, 3)),
		tx("shell gas station", "-45", day(2025, 1, 4)),
	})

	assert.Len(t, analysis.TopSpendingCategories, 2)
	assert.Len(t, analysis.TopMerchants, 2)
}

func TestAnalyzePreassignedCategoryKept(t *testing.T) {
	a := newTestAnalyzer(t)

	in := tx("starbucks coffee", "-5", day(2025, 1, 1))
	in.Category = "client-entertainment"

	analysis := a.Analyze(context.Background(), []models.Transaction{in})
	require.Len(t, analysis.Transactions, 1)
	assert.Equal(t, "client-entertainment", analysis.Transactions[0].Category)
	assert.Contains(t, analysis.SpendingByCategory, "client-entertainment")
}

func TestAnalyzeEndToEnd(t *testing.T) {
	a := newTestAnalyzer(t)

	// Three calm months of dining then a blowout, plus a monthly rent
	// cluster for the recurring detector.
	txs := []models.Transaction{
		tx("salary deposit", "4000", day(2025, 1, 1)),
		tx("monthly rent #101", "-1500", day(2025, 1, 2)),
		tx("restaurant dinner", "-100", day(2025, 1, 10)),

		tx("salary deposit", "4000", day(2025, 2, 1)),
		tx("monthly rent #102", "-1500", day(2025, 2, 2)),
		tx("restaurant dinner", "-110", day(2025, 2, 10)),

		tx("salary deposit", "4000", day(2025, 3, 1)),
		tx("monthly rent #103", "-1500", day(2025, 3, 3)),
		tx("restaurant dinner", "-105", day(2025, 3, 10)),

		tx("salary deposit", "4000", day(2025, 4, 1)),
		tx("monthly rent #104", "-1500", day(2025, 4, 2)),
		tx("restaurant dinner", "-400", day(2025, 4, 10)),
	}

	analysis := a.Analyze(context.Background(), txs)

	// Recurring: rent and dining both cluster monthly.
	require.NotEmpty(t, analysis.RecurringExpenses)
	var rentFound bool
	for _, r := range analysis.RecurringExpenses {
		if r.Category == models.CategoryHousing {
			rentFound = true
			assert.Equal(t, models.FrequencyMonthly, r.Frequency)
			assert.Len(t, r.Transactions, 4)
		}
	}
	assert.True(t, rentFound, "rent cluster should be detected as recurring")

	// Anomaly: the April dining blowout is flagged.
	require.Len(t, analysis.UnusualSpending, 1)
	assert.Equal(t, "2025-04", analysis.UnusualSpending[0].Month)
	require.Len(t, analysis.UnusualSpending[0].Categories, 1)
	flagged := analysis.UnusualSpending[0].Categories[0]
	assert.Equal(t, models.CategoryDining, flagged.Category)
	assert.InDelta(t, 178.75, flagged.Average.InexactFloat64(), 1e-9)
}

func TestAnalyzeIdempotent(t *testing.T) {
	a := newTestAnalyzer(t)

	txs := []models.Transaction{
		tx("salary deposit", "3000", day(2025, 1, 1)),
		tx("monthly rent", "-1500", day(2025, 1, 2)),
		tx("monthly rent", "-1500", day(2025, 2, 2)),
		tx("grocery store", "-250", day(2025, 1, 10)),
		tx("zzqx wvvk", "-12", day(2025, 1, 11)),
	}

	first := a.Analyze(context.Background(), txs)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, a.Analyze(context.Background(), txs))
	}

	// Inputs stay untouched.
	for _, in := range txs {
		assert.Empty(t, in.Category)
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	a := newTestAnalyzer(t)

	analysis := a.Analyze(context.Background(), nil)
	assert.Empty(t, analysis.Transactions)
	assert.Empty(t, analysis.SpendingByCategory)
	assert.True(t, analysis.Income.IsZero())
	assert.Zero(t, analysis.SavingsRate)
	assert.Empty(t, analysis.RecurringExpenses)
	assert.Empty(t, analysis.UnusualSpending)
}
