package recurring

import (
	"testing"
	"time"

	"spendscope/internal/logging"
	"spendscope/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expense(description, amount string, date time.Time) models.CategorizedTransaction {
	return models.CategorizedTransaction{
		Transaction: models.Transaction{
			Date:        date,
			Description: description,
			Amount:      decimal.RequireFromString(amount),
			Category:    models.CategoryOther,
		},
		Method: models.MethodDefault,
	}
}

func day(d int) time.Time {
	return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, d)
}

func TestGroupingKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "NETFLIX.COM", "netflix.com"},
		{"strips reference numbers", "Gym membership #12345", "gym membership"},
		{"strips embedded dates", "Insurance 2025-01-15 premium", "insurance premium"},
		{"strips decimal amounts", "Refill 12.99 store", "refill store"},
		{"strips generic words", "Netflix payment", "netflix"},
		{"collapses whitespace", "Rent   payment   #42", "rent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GroupingKey(tt.input))
		})
	}
}

func TestDetectMonthly(t *testing.T) {
	d := New(DefaultOptions(), logging.NewMockLogger())

	// Rent on day 0, 30, 61, 90: average gap 30 days, amounts nearly equal.
	txs := []models.CategorizedTransaction{
		expense("Rent payment #1001", "-50.00", day(0)),
		expense("Rent payment #1002", "-50.50", day(30)),
		expense("Rent payment #1003", "-49.80", day(61)),
		expense("Rent payment #1004", "-50.00", day(90)),
	}

	out := d.Detect(txs)
	require.Len(t, out, 1)
	assert.Equal(t, models.FrequencyMonthly, out[0].Frequency)
	assert.Len(t, out[0].Transactions, 4)
	assert.Equal(t, "Rent payment #1001", out[0].Description)
	assert.True(t, out[0].AverageAmount.Equal(decimal.RequireFromString("50.075")),
		"got %s", out[0].AverageAmount)
}

func TestDetectWeekly(t *testing.T) {
	d := New(DefaultOptions(), logging.NewMockLogger())

	txs := []models.CategorizedTransaction{
		expense("Cleaning service", "-80", day(0)),
		expense("Cleaning service", "-80", day(7)),
		expense("Cleaning service", "-80", day(14)),
	}

	out := d.Detect(txs)
	require.Len(t, out, 1)
	assert.Equal(t, models.FrequencyWeekly, out[0].Frequency)
}

func TestDetectYearly(t *testing.T) {
	d := New(DefaultOptions(), logging.NewMockLogger())

	txs := []models.CategorizedTransaction{
		expense("Domain renewal", "-15", day(0)),
		expense("Domain renewal", "-15", day(365)),
	}

	out := d.Detect(txs)
	require.Len(t, out, 1)
	assert.Equal(t, models.FrequencyYearly, out[0].Frequency)
}

func TestDetectSingleOccurrenceNeverRecurring(t *testing.T) {
	d := New(DefaultOptions(), logging.NewMockLogger())

	out := d.Detect([]models.CategorizedTransaction{
		expense("One-off purchase", "-99", day(0)),
	})
	assert.Empty(t, out)
}

func TestDetectIrregularIntervalDropped(t *testing.T) {
	d := New(DefaultOptions(), logging.NewMockLogger())

	// 45-day gaps fall outside every window and the group vanishes.
	txs := []models.CategorizedTransaction{
		expense("Storage unit", "-60", day(0)),
		expense("Storage unit", "-60", day(45)),
		expense("Storage unit", "-60", day(90)),
	}
	assert.Empty(t, d.Detect(txs))
}

func TestDetectUnstableAmountsDropped(t *testing.T) {
	d := New(DefaultOptions(), logging.NewMockLogger())

	// Same cadence, wildly different amounts: fails both variance tests.
	txs := []models.CategorizedTransaction{
		expense("Hardware store", "-20", day(0)),
		expense("Hardware store", "-400", day(30)),
		expense("Hardware store", "-35", day(60)),
	}
	assert.Empty(t, d.Detect(txs))
}

func TestDetectIgnoresInflows(t *testing.T) {
	d := New(DefaultOptions(), logging.NewMockLogger())

	txs := []models.CategorizedTransaction{
		expense("Salary", "2000", day(0)),
		expense("Salary", "2000", day(30)),
		expense("Salary", "2000", day(61)),
	}
	assert.Empty(t, d.Detect(txs))
}

func TestDetectGroupsAcrossNoisyDescriptions(t *testing.T) {
	d := New(DefaultOptions(), logging.NewMockLogger())

	// Reference numbers and filler words differ but normalize away.
	txs := []models.CategorizedTransaction{
		expense("Netflix payment #001", "-15.99", day(0)),
		expense("NETFLIX purchase #002", "-15.99", day(30)),
		expense("netflix #003", "-15.99", day(61)),
	}

	out := d.Detect(txs)
	require.Len(t, out, 1)
	assert.Equal(t, models.FrequencyMonthly, out[0].Frequency)
	assert.Equal(t, "Netflix payment #001", out[0].Description)
}

func TestDetectDeterministicOrder(t *testing.T) {
	d := New(DefaultOptions(), logging.NewMockLogger())

	txs := []models.CategorizedTransaction{
		expense("Gym", "-40", day(0)),
		expense("Rent", "-1500", day(1)),
		expense("Gym", "-40", day(30)),
		expense("Rent", "-1500", day(31)),
	}

	first := d.Detect(txs)
	require.Len(t, first, 2)
	assert.Equal(t, "Gym", first[0].Description)
	assert.Equal(t, "Rent", first[1].Description)

	for i := 0; i < 10; i++ {
		assert.Equal(t, first, d.Detect(txs))
	}
}
