package classifier

import (
	"context"

	"spendscope/internal/logging"
	"spendscope/internal/models"
	"spendscope/internal/similarity"
	"spendscope/internal/taxonomy"
)

// DefaultSimilarityThreshold is the minimum cosine score a similarity match
// must clear to be accepted.
const DefaultSimilarityThreshold = 0.1

// Pipeline orchestrates transaction categorization: pre-assigned categories
// pass through untouched, the remainder goes through batch similarity
// scoring with a per-transaction keyword fallback, and an optional AI pass
// refines whatever still landed in the fallback category.
type Pipeline struct {
	tax       taxonomy.Taxonomy
	index     *similarity.Index
	keyword   *KeywordStrategy
	ai        Strategy
	threshold float64
	logger    logging.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithThreshold overrides the similarity acceptance threshold.
func WithThreshold(threshold float64) PipelineOption {
	return func(p *Pipeline) { p.threshold = threshold }
}

// WithAIStrategy enables the AI refinement pass for fallback-categorized
// transactions.
func WithAIStrategy(ai Strategy) PipelineOption {
	return func(p *Pipeline) { p.ai = ai }
}

// WithLogger sets the pipeline logger.
func WithLogger(logger logging.Logger) PipelineOption {
	return func(p *Pipeline) { p.logger = logger }
}

// NewPipeline builds a Pipeline over the taxonomy. A degenerate taxonomy
// whose keywords produce no similarity vocabulary is tolerated: the pipeline
// then runs keyword-only.
func NewPipeline(tax taxonomy.Taxonomy, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		tax:       tax,
		threshold: DefaultSimilarityThreshold,
		logger:    logging.GetLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.keyword = NewKeywordStrategy(tax, p.logger)

	index, err := similarity.NewIndex(tax)
	if err != nil {
		p.logger.WithError(err).Warn("Similarity index unavailable, using keyword classification only")
	} else {
		p.index = index
	}
	return p
}

// Classify categorizes a batch of transactions, preserving input order. The
// input is never mutated; each output record is new. Transactions arriving
// with a non-empty category are passed through unchanged.
func (p *Pipeline) Classify(ctx context.Context, txs []models.Transaction) []models.CategorizedTransaction {
	out := make([]models.CategorizedTransaction, len(txs))

	var pending []int
	for i, tx := range txs {
		if tx.HasCategory() {
			out[i] = models.CategorizedTransaction{Transaction: tx, Method: models.MethodProvided}
			continue
		}
		pending = append(pending, i)
	}

	if len(pending) > 0 {
		p.classifyPending(ctx, txs, pending, out)
	}
	if p.ai != nil {
		p.refineFallbacks(ctx, out)
	}
	return out
}

// classifyPending runs the similarity batch over the uncategorized
// transactions and falls back to keyword matching per transaction. A failed
// batch discards any partial results and reruns the whole pending set
// through keyword matching alone.
func (p *Pipeline) classifyPending(ctx context.Context, txs []models.Transaction, pending []int, out []models.CategorizedTransaction) {
	var matches []similarity.Match
	if p.index != nil {
		descriptions := make([]string, len(pending))
		for i, idx := range pending {
			descriptions[i] = txs[idx].Description
		}

		var err error
		matches, err = p.index.ScoreBatch(descriptions)
		if err != nil {
			p.logger.WithError(err).Warn("Similarity scoring failed, falling back to keyword classification for the batch")
			matches = nil
		}
	}

	for i, idx := range pending {
		if matches != nil && matches[i].Score > p.threshold {
			out[idx] = p.categorized(txs[idx], matches[i].Category, models.MethodSimilarity, matches[i].Score)
			continue
		}
		out[idx] = p.keywordFallback(ctx, txs[idx])
	}
}

// keywordFallback applies the keyword strategy, defaulting to the catch-all
// category when nothing matches.
func (p *Pipeline) keywordFallback(ctx context.Context, tx models.Transaction) models.CategorizedTransaction {
	category, found, err := p.keyword.Categorize(ctx, tx)
	if err == nil && found {
		return p.categorized(tx, category, models.MethodKeyword, 0)
	}
	if err != nil {
		p.logger.WithError(err).WithField(logging.FieldStrategy, p.keyword.Name()).Warn("Keyword strategy failed, defaulting")
	}
	return p.categorized(tx, models.CategoryOther, models.MethodDefault, 0)
}

// refineFallbacks gives the AI strategy a shot at transactions that defaulted
// to the catch-all category. AI errors are logged and leave the default in
// place.
func (p *Pipeline) refineFallbacks(ctx context.Context, out []models.CategorizedTransaction) {
	for i := range out {
		if out[i].Method == models.MethodProvided || out[i].Category != models.CategoryOther {
			continue
		}
		category, found, err := p.ai.Categorize(ctx, out[i].Transaction)
		if err != nil {
			p.logger.WithError(err).WithField(logging.FieldStrategy, p.ai.Name()).Warn("AI refinement failed, keeping default category")
			continue
		}
		if found {
			out[i] = p.categorized(out[i].Transaction, category, models.MethodAI, 0)
		}
	}
}

// categorized builds a new categorized record without touching the input.
func (p *Pipeline) categorized(tx models.Transaction, category string, method models.ClassificationMethod, score float64) models.CategorizedTransaction {
	tx.Category = category
	return models.CategorizedTransaction{Transaction: tx, Method: method, Score: score}
}
