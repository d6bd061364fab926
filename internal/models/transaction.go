// Package models defines the core data types exchanged between the parsing
// boundary, the classification pipeline, and the analysis detectors.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single normalized financial event as delivered by
// the parsing collaborator. Amount carries the sign convention: positive is
// an inflow, negative is an outflow. Category is optional; when present at
// input it is authoritative and the pipeline will not reclassify.
type Transaction struct {
	Date        time.Time       `json:"date" yaml:"date"`
	Description string          `json:"description" yaml:"description"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
	Category    string          `json:"category,omitempty" yaml:"category,omitempty"`
}

// IsExpense returns true if the transaction is an outflow.
func (t Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}

// IsIncome returns true if the transaction is an inflow.
func (t Transaction) IsIncome() bool {
	return t.Amount.IsPositive()
}

// HasCategory returns true if the transaction arrived with a category already
// assigned.
func (t Transaction) HasCategory() bool {
	return t.Category != ""
}

// MonthKey returns the YYYY-MM bucket key for the transaction's date.
func (t Transaction) MonthKey() string {
	return t.Date.Format("2006-01")
}

// ClassificationMethod records how a transaction acquired its category.
type ClassificationMethod string

const (
	// MethodProvided means the category was present on the input record.
	MethodProvided ClassificationMethod = "provided"
	// MethodSimilarity means the text-similarity index cleared the threshold.
	MethodSimilarity ClassificationMethod = "similarity"
	// MethodKeyword means the deterministic keyword fallback matched.
	MethodKeyword ClassificationMethod = "keyword"
	// MethodDefault means nothing matched and the catch-all was assigned.
	MethodDefault ClassificationMethod = "default"
	// MethodAI means an AI refinement strategy supplied the category.
	MethodAI ClassificationMethod = "ai"
)

// CategorizedTransaction is a Transaction with a definite category and the
// classification outcome that produced it. The embedded Transaction is a
// copy; inputs are never mutated.
type CategorizedTransaction struct {
	Transaction `yaml:",inline"`
	Method      ClassificationMethod `json:"method" yaml:"method"`
	// Score is the cosine similarity of the winning category. It is only
	// meaningful when Method is MethodSimilarity.
	Score float64 `json:"score,omitempty" yaml:"score,omitempty"`
}
