package classifier

import (
	"context"
	"strings"

	"spendscope/internal/logging"
	"spendscope/internal/models"
	"spendscope/internal/taxonomy"
)

// KeywordStrategy implements deterministic keyword-substring matching against
// the taxonomy. For inflows it tests income keywords before anything else;
// otherwise categories are tried in taxonomy definition order and the first
// keyword found in the lowercased description wins. The ordering is a
// deliberate tie-break policy and must stay reproducible.
type KeywordStrategy struct {
	tax    taxonomy.Taxonomy
	logger logging.Logger
}

// NewKeywordStrategy creates a KeywordStrategy over the given taxonomy.
func NewKeywordStrategy(tax taxonomy.Taxonomy, logger logging.Logger) *KeywordStrategy {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &KeywordStrategy{tax: tax, logger: logger}
}

// Name returns the name of this strategy for logging.
func (s *KeywordStrategy) Name() string {
	return "Keyword"
}

// Categorize matches the transaction description against taxonomy keywords.
// A false result means no keyword matched; the caller decides the fallback.
func (s *KeywordStrategy) Categorize(_ context.Context, tx models.Transaction) (string, bool, error) {
	desc := strings.ToLower(tx.Description)
	if strings.TrimSpace(desc) == "" {
		return "", false, nil
	}

	// Inflows: income keywords take precedence over everything.
	if tx.Amount.Sign() > 0 {
		if kw, ok := s.matchCategory(desc, models.CategoryIncome); ok {
			s.logMatch(tx.Description, models.CategoryIncome, kw)
			return models.CategoryIncome, true, nil
		}
	}

	for _, c := range s.tax.Categories() {
		if kw, ok := s.matchKeywords(desc, c.Keywords); ok {
			s.logMatch(tx.Description, c.Name, kw)
			return c.Name, true, nil
		}
	}
	return "", false, nil
}

func (s *KeywordStrategy) matchCategory(desc, category string) (string, bool) {
	keywords, ok := s.tax.Keywords(category)
	if !ok {
		return "", false
	}
	return s.matchKeywords(desc, keywords)
}

func (s *KeywordStrategy) matchKeywords(desc string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(desc, strings.ToLower(kw)) {
			return kw, true
		}
	}
	return "", false
}

func (s *KeywordStrategy) logMatch(description, category, keyword string) {
	s.logger.WithFields(
		logging.Field{Key: logging.FieldStrategy, Value: s.Name()},
		logging.Field{Key: "description", Value: description},
		logging.Field{Key: logging.FieldCategory, Value: category},
		logging.Field{Key: logging.FieldKeyword, Value: keyword},
	).Debug("Transaction categorized by keyword match")
}
