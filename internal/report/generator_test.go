package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"spendscope/internal/logging"
	"spendscope/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleAnalysis() *models.SpendingAnalysis {
	return &models.SpendingAnalysis{
		SpendingByCategory: map[string]decimal.Decimal{
			models.CategoryHousing: decimal.NewFromInt(1500),
		},
		MonthlySpending: map[string]map[string]decimal.Decimal{
			"2025-01": {models.CategoryHousing: decimal.NewFromInt(1500)},
		},
		Income:      decimal.NewFromInt(3000),
		Expenses:    decimal.NewFromInt(1500),
		NetCashFlow: decimal.NewFromInt(1500),
		SavingsRate: 0.5,
		TopSpendingCategories: []models.CategoryTotal{
			{Category: models.CategoryHousing, Amount: decimal.NewFromInt(1500)},
		},
	}
}

func TestGenerateJSON(t *testing.T) {
	g := NewGenerator(logging.NewMockLogger())

	data, err := g.Generate(sampleAnalysis(), FormatJSON)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "spending_by_category")
	assert.Contains(t, decoded, "savings_rate")
	assert.Equal(t, 0.5, decoded["savings_rate"])
}

func TestGenerateYAML(t *testing.T) {
	g := NewGenerator(logging.NewMockLogger())

	data, err := g.Generate(sampleAnalysis(), FormatYAML)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "spending_by_category")
	assert.Contains(t, decoded, "net_cash_flow")
}

func TestGenerateUnsupportedFormat(t *testing.T) {
	g := NewGenerator(logging.NewMockLogger())

	_, err := g.Generate(sampleAnalysis(), "xml")
	assert.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	g := NewGenerator(logging.NewMockLogger())
	path := filepath.Join(t.TempDir(), "reports", "analysis.json")

	require.NoError(t, g.WriteFile(sampleAnalysis(), FormatJSON, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "spending_by_category")
}
