// Package analyzer ties classification, aggregation, and the detectors into
// a single spending-profile computation.
package analyzer

import (
	"context"

	"spendscope/internal/anomaly"
	"spendscope/internal/classifier"
	"spendscope/internal/logging"
	"spendscope/internal/models"
	"spendscope/internal/recurring"
	"spendscope/internal/taxonomy"
)

// Default ranking limits.
const (
	DefaultTopCategories = 5
	DefaultTopMerchants  = 10
)

// Options configures one Analyzer instance.
type Options struct {
	// SimilarityThreshold is the minimum cosine score for an accepted
	// similarity classification.
	SimilarityThreshold float64
	// TopCategories and TopMerchants bound the rankings in the result.
	TopCategories int
	TopMerchants  int

	Recurring recurring.Options
	Anomaly   anomaly.Options
}

// DefaultOptions returns the standard analysis configuration.
func DefaultOptions() Options {
	return Options{
		SimilarityThreshold: classifier.DefaultSimilarityThreshold,
		TopCategories:       DefaultTopCategories,
		TopMerchants:        DefaultTopMerchants,
		Recurring:           recurring.DefaultOptions(),
		Anomaly:             anomaly.DefaultOptions(),
	}
}

// Analyzer computes spending profiles. It is stateless across Analyze calls:
// each call works only from its input and produces a fresh result.
type Analyzer struct {
	opts       Options
	pipeline   *classifier.Pipeline
	recurring  *recurring.Detector
	anomaly    *anomaly.Detector
	aiStrategy classifier.Strategy
	logger     logging.Logger
}

// Option customizes an Analyzer beyond the threshold Options.
type Option func(*Analyzer)

// WithLogger sets the analyzer logger.
func WithLogger(logger logging.Logger) Option {
	return func(a *Analyzer) { a.logger = logger }
}

// WithAIStrategy enables AI refinement for transactions that would otherwise
// land in the fallback category.
func WithAIStrategy(strategy classifier.Strategy) Option {
	return func(a *Analyzer) { a.aiStrategy = strategy }
}

// New builds an Analyzer over the taxonomy.
func New(tax taxonomy.Taxonomy, opts Options, options ...Option) *Analyzer {
	a := &Analyzer{
		opts:   opts,
		logger: logging.GetLogger(),
	}
	for _, opt := range options {
		opt(a)
	}

	pipelineOpts := []classifier.PipelineOption{
		classifier.WithThreshold(opts.SimilarityThreshold),
		classifier.WithLogger(a.logger),
	}
	if a.aiStrategy != nil {
		pipelineOpts = append(pipelineOpts, classifier.WithAIStrategy(a.aiStrategy))
	}
	a.pipeline = classifier.NewPipeline(tax, pipelineOpts...)
	a.recurring = recurring.New(opts.Recurring, a.logger)
	a.anomaly = anomaly.New(opts.Anomaly, a.logger)
	return a
}

// Analyze classifies the transactions and computes the full spending
// profile. The input slice is not modified; calling Analyze twice with the
// same input yields identical results.
func (a *Analyzer) Analyze(ctx context.Context, txs []models.Transaction) *models.SpendingAnalysis {
	categorized := a.pipeline.Classify(ctx, txs)

	analysis := a.aggregate(categorized)
	analysis.RecurringExpenses = a.recurring.Detect(categorized)
	analysis.UnusualSpending = a.anomaly.Detect(analysis.MonthlySpending)

	a.logger.WithFields(
		logging.Field{Key: logging.FieldCount, Value: len(txs)},
		logging.Field{Key: "recurring", Value: len(analysis.RecurringExpenses)},
		logging.Field{Key: "anomalous_months", Value: len(analysis.UnusualSpending)},
	).Info("Spending analysis complete")
	return analysis
}
