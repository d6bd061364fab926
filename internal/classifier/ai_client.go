package classifier

import (
	"context"

	"spendscope/internal/models"
)

// AIClient defines the interface for AI-based categorization services. The
// abstraction keeps the refinement pass testable without external API calls.
type AIClient interface {
	// CategorizeTransaction asks the AI service to pick one of the given
	// category names for the transaction. Returns the chosen name, which the
	// caller must validate against the taxonomy.
	CategorizeTransaction(ctx context.Context, tx models.Transaction, categories []string) (string, error)

	// Close releases any underlying connections.
	Close() error
}
