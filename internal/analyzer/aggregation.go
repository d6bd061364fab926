package analyzer

import (
	"sort"

	"spendscope/internal/models"

	"github.com/shopspring/decimal"
)

// aggregate computes the cash-flow totals, per-category and per-month
// spending maps, and the top-N rankings. Only expense transactions feed the
// spending maps; categories without expenses are absent rather than
// zero-valued.
func (a *Analyzer) aggregate(txs []models.CategorizedTransaction) *models.SpendingAnalysis {
	analysis := &models.SpendingAnalysis{
		Transactions:       txs,
		SpendingByCategory: make(map[string]decimal.Decimal),
		MonthlySpending:    make(map[string]map[string]decimal.Decimal),
	}

	// First-seen key order keeps the top-N tie-breaks reproducible across
	// runs despite map iteration randomness.
	var categoryOrder, merchantOrder []string
	merchantTotals := make(map[string]decimal.Decimal)

	income := decimal.Zero
	outflow := decimal.Zero

	for _, tx := range txs {
		if tx.Amount.Sign() > 0 {
			income = income.Add(tx.Amount)
			continue
		}
		outflow = outflow.Add(tx.Amount)
		if !tx.IsExpense() {
			continue
		}

		amount := tx.Amount.Abs()

		if _, seen := analysis.SpendingByCategory[tx.Category]; !seen {
			categoryOrder = append(categoryOrder, tx.Category)
		}
		analysis.SpendingByCategory[tx.Category] = analysis.SpendingByCategory[tx.Category].Add(amount)

		month := tx.MonthKey()
		if analysis.MonthlySpending[month] == nil {
			analysis.MonthlySpending[month] = make(map[string]decimal.Decimal)
		}
		analysis.MonthlySpending[month][tx.Category] = analysis.MonthlySpending[month][tx.Category].Add(amount)

		merchant := ExtractMerchant(tx.Description)
		if _, seen := merchantTotals[merchant]; !seen {
			merchantOrder = append(merchantOrder, merchant)
		}
		merchantTotals[merchant] = merchantTotals[merchant].Add(amount)
	}

	analysis.Income = income
	analysis.Expenses = outflow.Abs()
	analysis.NetCashFlow = income.Sub(analysis.Expenses)
	if income.IsPositive() {
		analysis.SavingsRate = analysis.NetCashFlow.Div(income).InexactFloat64()
	}

	analysis.TopSpendingCategories = topCategories(analysis.SpendingByCategory, categoryOrder, a.opts.TopCategories)
	analysis.TopMerchants = topMerchants(merchantTotals, merchantOrder, a.opts.TopMerchants)
	return analysis
}

// topCategories ranks categories by descending total, ties broken by
// first-seen order.
func topCategories(totals map[string]decimal.Decimal, order []string, limit int) []models.CategoryTotal {
	ranked := make([]models.CategoryTotal, 0, len(order))
	for _, name := range order {
		ranked = append(ranked, models.CategoryTotal{Category: name, Amount: totals[name]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Amount.GreaterThan(ranked[j].Amount)
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// topMerchants ranks merchants by descending total, ties broken by
// first-seen order.
func topMerchants(totals map[string]decimal.Decimal, order []string, limit int) []models.MerchantTotal {
	ranked := make([]models.MerchantTotal, 0, len(order))
	for _, name := range order {
		ranked = append(ranked, models.MerchantTotal{Merchant: name, Amount: totals[name]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Amount.GreaterThan(ranked[j].Amount)
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
