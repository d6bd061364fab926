// Package recurring detects regularly repeating expenses by clustering
// transactions on a normalized description key and testing amount stability
// and date-interval regularity.
package recurring

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"spendscope/internal/dateutils"
	"spendscope/internal/logging"
	"spendscope/internal/models"
	"spendscope/internal/stats"

	"github.com/shopspring/decimal"
)

// Options holds the detection thresholds. The interval windows and variance
// bounds are inherited calibration values with no documented derivation;
// treat them as starting points, not statistically optimal settings.
type Options struct {
	// MinGroupSize is the smallest cluster that can be recurring.
	MinGroupSize int
	// MaxRelativeStdDev accepts a group when |stddev/mean| is below it.
	MaxRelativeStdDev float64
	// MaxAbsoluteStdDev accepts a group when stddev is below it, covering
	// near-zero means where the relative test degenerates.
	MaxAbsoluteStdDev float64

	// Average day-gap windows per frequency. Groups whose average interval
	// falls outside every window are dropped.
	WeeklyMinDays, WeeklyMaxDays   float64
	MonthlyMinDays, MonthlyMaxDays float64
	YearlyMinDays, YearlyMaxDays   float64
}

// DefaultOptions returns the standard detection thresholds.
func DefaultOptions() Options {
	return Options{
		MinGroupSize:      2,
		MaxRelativeStdDev: 0.2,
		MaxAbsoluteStdDev: 5,
		WeeklyMinDays:     6,
		WeeklyMaxDays:     8,
		MonthlyMinDays:    25,
		MonthlyMaxDays:    35,
		YearlyMinDays:     350,
		YearlyMaxDays:     380,
	}
}

// Detector clusters expense transactions and emits the recurring ones.
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

var (
	refNumberRe = regexp.MustCompile(`#\d+`)
	isoDateRe   = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	decimalRe   = regexp.MustCompile(`\d+\.\d+`)
	spacesRe    = regexp.MustCompile(`\s+`)
)

// genericWords are filler transaction words removed from grouping keys so
// that e.g. "Netflix payment" and "Netflix purchase" cluster together.
var genericWords = []string{"payment", "purchase", "transaction", "debit", "credit"}

// GroupingKey normalizes a description into the cluster key: lowercased,
// stripped of reference numbers, embedded ISO dates, decimal numbers, and
// generic transaction words, with whitespace collapsed.
func GroupingKey(description string) string {
	key := strings.ToLower(description)
	key = refNumberRe.ReplaceAllString(key, "")
	key = isoDateRe.ReplaceAllString(key, "")
	key = decimalRe.ReplaceAllString(key, "")
	for _, w := range genericWords {
		key = strings.ReplaceAll(key, w, "")
	}
	return strings.TrimSpace(spacesRe.ReplaceAllString(key, " "))
}

// Detect finds recurring expenses among the categorized transactions. Only
// expenses participate. Output order is deterministic: groups appear in
// first-seen order of their grouping key.
func (d *Detector) Detect(txs []models.CategorizedTransaction) []models.RecurringExpense {
	groups := make(map[string][]models.CategorizedTransaction)
	var keyOrder []string

	for _, tx := range txs {
		if !tx.IsExpense() {
			continue
		}
		key := GroupingKey(tx.Description)
		if key == "" {
			continue
		}
		if _, seen := groups[key]; !seen {
			keyOrder = append(keyOrder, key)
		}
		groups[key] = append(groups[key], tx)
	}

	var out []models.RecurringExpense
	for _, key := range keyOrder {
		group := groups[key]
		if len(group) < d.opts.MinGroupSize {
			continue
		}
		if expense, ok := d.evaluate(group); ok {
			out = append(out, expense)
		}
	}

	d.logger.WithField(logging.FieldCount, len(out)).Debug("Recurring expense detection complete")
	return out
}

// evaluate tests one cluster for amount stability and interval regularity.
func (d *Detector) evaluate(group []models.CategorizedTransaction) (models.RecurringExpense, bool) {
	sorted := make([]models.CategorizedTransaction, len(group))
	copy(sorted, group)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	amounts := make([]float64, len(sorted))
	for i, tx := range sorted {
		amounts[i] = tx.Amount.InexactFloat64()
	}
	mean := stats.Mean(amounts)
	stddev := stats.StdDev(amounts)

	stable := stddev < d.opts.MaxAbsoluteStdDev
	if !stable && mean != 0 {
		stable = math.Abs(stddev/mean) < d.opts.MaxRelativeStdDev
	}
	if !stable {
		return models.RecurringExpense{}, false
	}

	var gapSum float64
	for i := 1; i < len(sorted); i++ {
		gapSum += float64(dateutils.DaysBetween(sorted[i-1].Date, sorted[i].Date))
	}
	avgGap := gapSum / float64(len(sorted)-1)

	frequency, ok := d.frequencyFor(avgGap)
	if !ok {
		// Irregular intervals are dropped rather than reported.
		return models.RecurringExpense{}, false
	}

	return models.RecurringExpense{
		Description:   sorted[0].Description,
		Category:      sorted[0].Category,
		AverageAmount: averageAmount(sorted),
		Frequency:     frequency,
		Transactions:  sorted,
	}, true
}

// frequencyFor maps an average day gap onto a frequency window.
func (d *Detector) frequencyFor(avgGap float64) (string, bool) {
	switch {
	case avgGap >= d.opts.MonthlyMinDays && avgGap <= d.opts.MonthlyMaxDays:
		return models.FrequencyMonthly, true
	case avgGap >= d.opts.WeeklyMinDays && avgGap <= d.opts.WeeklyMaxDays:
		return models.FrequencyWeekly, true
	case avgGap >= d.opts.YearlyMinDays && avgGap <= d.opts.YearlyMaxDays:
		return models.FrequencyYearly, true
	default:
		return "", false
	}
}

// averageAmount computes the mean transaction amount in exact decimal,
// reported as a magnitude.
func averageAmount(group []models.CategorizedTransaction) decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range group {
		sum = sum.Add(tx.Amount)
	}
	return sum.Div(decimal.NewFromInt(int64(len(group)))).Abs()
}
