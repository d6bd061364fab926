package classifier

import (
	"context"

	"spendscope/internal/logging"
	"spendscope/internal/models"
	"spendscope/internal/taxonomy"
)

// AIStrategy refines transactions the other strategies left in the fallback
// category by asking an AIClient. Results are only accepted when they name a
// category the taxonomy actually contains.
type AIStrategy struct {
	client AIClient
	tax    taxonomy.Taxonomy
	logger logging.Logger
}

// NewAIStrategy creates an AIStrategy backed by the given client.
func NewAIStrategy(client AIClient, tax taxonomy.Taxonomy, logger logging.Logger) *AIStrategy {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &AIStrategy{client: client, tax: tax, logger: logger}
}

// Name returns the name of this strategy for logging.
func (s *AIStrategy) Name() string {
	return "AI"
}

// Categorize asks the AI client for a category. Answers outside the taxonomy
// are treated as no-match rather than errors.
func (s *AIStrategy) Categorize(ctx context.Context, tx models.Transaction) (string, bool, error) {
	category, err := s.client.CategorizeTransaction(ctx, tx, s.tax.Names())
	if err != nil {
		return "", false, err
	}
	if !s.tax.Has(category) {
		s.logger.WithFields(
			logging.Field{Key: logging.FieldStrategy, Value: s.Name()},
			logging.Field{Key: logging.FieldCategory, Value: category},
		).Warn("AI returned a category outside the taxonomy, ignoring")
		return "", false, nil
	}
	return category, true, nil
}
