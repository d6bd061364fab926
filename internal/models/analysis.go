package models

import (
	"github.com/shopspring/decimal"
)

// CategoryTotal is one entry of a top-spending-categories ranking.
type CategoryTotal struct {
	Category string          `json:"category" yaml:"category"`
	Amount   decimal.Decimal `json:"amount" yaml:"amount"`
}

// MerchantTotal is one entry of a top-merchants ranking.
type MerchantTotal struct {
	Merchant string          `json:"merchant" yaml:"merchant"`
	Amount   decimal.Decimal `json:"amount" yaml:"amount"`
}

// RecurringExpense describes a cluster of similarly-described expense
// transactions with stable amounts and regular date spacing.
type RecurringExpense struct {
	// Description is the first member's original description.
	Description string `json:"description" yaml:"description"`
	// Category is the first member's category.
	Category      string          `json:"category" yaml:"category"`
	AverageAmount decimal.Decimal `json:"average_amount" yaml:"average_amount"`
	// Frequency is one of FrequencyWeekly, FrequencyMonthly, FrequencyYearly.
	Frequency    string                   `json:"frequency" yaml:"frequency"`
	Transactions []CategorizedTransaction `json:"transactions" yaml:"transactions"`
}

// AnomalousCategory is a single category flagged within a month.
type AnomalousCategory struct {
	Category string          `json:"category" yaml:"category"`
	Amount   decimal.Decimal `json:"amount" yaml:"amount"`
	Average  decimal.Decimal `json:"average" yaml:"average"`
	// PercentIncrease is (amount - average) / average * 100.
	PercentIncrease float64 `json:"percent_increase" yaml:"percent_increase"`
}

// MonthlyAnomaly groups the flagged categories of one YYYY-MM month.
type MonthlyAnomaly struct {
	Month      string              `json:"month" yaml:"month"`
	Categories []AnomalousCategory `json:"unusual_categories" yaml:"unusual_categories"`
}

// SpendingAnalysis is the read-only snapshot produced by one Analyze call.
// Every field is built fresh per call; nothing is shared with later calls.
type SpendingAnalysis struct {
	Transactions []CategorizedTransaction `json:"transactions" yaml:"transactions"`

	// SpendingByCategory maps category to total expense (absolute value).
	// Categories with no expense transactions are absent, not zero.
	SpendingByCategory map[string]decimal.Decimal `json:"spending_by_category" yaml:"spending_by_category"`

	// MonthlySpending maps YYYY-MM month keys to per-category expense totals.
	MonthlySpending map[string]map[string]decimal.Decimal `json:"monthly_spending" yaml:"monthly_spending"`

	RecurringExpenses []RecurringExpense `json:"recurring_expenses" yaml:"recurring_expenses"`
	UnusualSpending   []MonthlyAnomaly   `json:"unusual_spending" yaml:"unusual_spending"`

	Income      decimal.Decimal `json:"income" yaml:"income"`
	Expenses    decimal.Decimal `json:"expenses" yaml:"expenses"`
	NetCashFlow decimal.Decimal `json:"net_cash_flow" yaml:"net_cash_flow"`
	// SavingsRate is net cash flow over income, or 0 when income is zero.
	SavingsRate float64 `json:"savings_rate" yaml:"savings_rate"`

	TopSpendingCategories []CategoryTotal `json:"top_spending_categories" yaml:"top_spending_categories"`
	TopMerchants          []MerchantTotal `json:"top_merchants" yaml:"top_merchants"`
}
