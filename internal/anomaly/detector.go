// Package anomaly flags per-category monthly spending that is a statistical
// outlier against that category's own history.
package anomaly

import (
	"sort"

	"spendscope/internal/logging"
	"spendscope/internal/models"
	"spendscope/internal/stats"

	"github.com/shopspring/decimal"
)

// Options holds the outlier thresholds.
type Options struct {
	// StdDevMultiplier: a month is flagged when its total exceeds the
	// category mean by this many standard deviations.
	StdDevMultiplier float64
	// MinAmount is the absolute floor; months below it are never flagged
	// regardless of how unusual they look statistically.
	MinAmount float64
	// MinMonths is the minimum number of distinct months in the data before
	// any detection runs.
	MinMonths int
	// MinObservations is the minimum number of monthly totals a category
	// needs before its own history is considered meaningful.
	MinObservations int
}

// DefaultOptions returns the standard outlier thresholds.
func DefaultOptions() Options {
	return Options{
		StdDevMultiplier: 1.5,
		MinAmount:        50,
		MinMonths:        2,
		MinObservations:  2,
	}
}

// Detector flags unusual monthly category spending.
type Detector struct {
	opts   Options
	logger logging.Logger
}

// New creates a Detector with the given options.
func New(opts Options, logger logging.Logger) *Detector {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Detector{opts: opts, logger: logger}
}

// Detect compares each category's monthly totals against that category's
// history. monthlySpending maps YYYY-MM keys to per-category expense totals,
// as produced by aggregation. Output is sorted by month, then category, so
// repeated runs yield identical results.
func (d *Detector) Detect(monthlySpending map[string]map[string]decimal.Decimal) []models.MonthlyAnomaly {
	if len(monthlySpending) < d.opts.MinMonths {
		return nil
	}

	// Collect each category's observations across all months.
	history := make(map[string][]float64)
	for _, categories := range monthlySpending {
		for category, amount := range categories {
			history[category] = append(history[category], amount.InexactFloat64())
		}
	}

	months := make([]string, 0, len(monthlySpending))
	for month := range monthlySpending {
		months = append(months, month)
	}
	sort.Strings(months)

	var out []models.MonthlyAnomaly
	for _, month := range months {
		categories := monthlySpending[month]

		names := make([]string, 0, len(categories))
		for name := range categories {
			names = append(names, name)
		}
		sort.Strings(names)

		var flagged []models.AnomalousCategory
		for _, name := range names {
			if a, ok := d.evaluate(name, categories[name], history[name]); ok {
				flagged = append(flagged, a)
			}
		}
		if len(flagged) > 0 {
			out = append(out, models.MonthlyAnomaly{Month: month, Categories: flagged})
		}
	}

	d.logger.WithField(logging.FieldCount, len(out)).Debug("Anomaly detection complete")
	return out
}

// evaluate tests a single category-month against the category history.
func (d *Detector) evaluate(category string, amount decimal.Decimal, observations []float64) (models.AnomalousCategory, bool) {
	if len(observations) < d.opts.MinObservations {
		return models.AnomalousCategory{}, false
	}

	mean := stats.Mean(observations)
	stddev := stats.StdDev(observations)
	value := amount.InexactFloat64()

	if value <= mean+d.opts.StdDevMultiplier*stddev || value <= d.opts.MinAmount {
		return models.AnomalousCategory{}, false
	}

	percent := 0.0
	if mean != 0 {
		percent = (value - mean) / mean * 100
	}
	return models.AnomalousCategory{
		Category:        category,
		Amount:          amount,
		Average:         decimal.NewFromFloat(mean),
		PercentIncrease: percent,
	}, true
}
