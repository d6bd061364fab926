// Package classifier assigns spending categories to transactions. It layers
// three approaches: batch text-similarity scoring, deterministic keyword
// matching, and an optional AI refinement pass for transactions nothing else
// could place.
package classifier

import (
	"context"

	"spendscope/internal/models"
)

// Strategy defines one method for categorizing a single transaction.
type Strategy interface {
	// Categorize attempts to categorize a transaction. The boolean reports
	// whether the strategy produced a category; a false result with a nil
	// error means the strategy simply found no match.
	Categorize(ctx context.Context, tx models.Transaction) (string, bool, error)

	// Name identifies the strategy in logs.
	Name() string
}
