// Package categorize handles transaction categorization without the full
// analysis pass.
package categorize

import (
	"fmt"

	"spendscope/cmd/root"
	"spendscope/internal/classifier"
	"spendscope/internal/dateutils"
	"spendscope/internal/models"
	"spendscope/internal/taxonomy"
	"spendscope/internal/transactioncsv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	description string
	amount      string
	date        string
)

// Cmd represents the categorize command.
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize transactions without running the full analysis",
	Long: `Categorize assigns categories either to a single transaction given via
flags or to every row of an input CSV, writing the categorized rows back
out.`,
	RunE: categorizeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&description, "description", "d", "", "Single transaction description to categorize")
	Cmd.Flags().StringVarP(&amount, "amount", "a", "-1", "Transaction amount (with --description)")
	Cmd.Flags().StringVarP(&date, "date", "t", "", "Transaction date (with --description)")
}

func categorizeFunc(cmd *cobra.Command, args []string) error {
	categoriesPath := root.SharedFlags.Categories
	if categoriesPath == "" {
		categoriesPath = root.Cfg.Categories.File
	}
	tax := taxonomy.Load(categoriesPath, root.Log)
	pipeline := classifier.NewPipeline(tax,
		classifier.WithThreshold(root.Cfg.Analyzer.SimilarityThreshold),
		classifier.WithLogger(root.Log))

	if description != "" {
		return categorizeSingle(cmd, pipeline)
	}
	if root.SharedFlags.Input == "" {
		return fmt.Errorf("either --description or --input is required")
	}

	txs, err := transactioncsv.Read(root.SharedFlags.Input, root.Log)
	if err != nil {
		return err
	}
	categorized := pipeline.Classify(cmd.Context(), txs)

	if root.SharedFlags.Output == "" {
		for _, tx := range categorized {
			fmt.Printf("%s,%s,%s,%s\n",
				dateutils.ToISODate(tx.Date), tx.Description, tx.Amount.StringFixed(2), tx.Category)
		}
		return nil
	}
	return transactioncsv.Write(categorized, root.SharedFlags.Output, root.Log)
}

func categorizeSingle(cmd *cobra.Command, pipeline *classifier.Pipeline) error {
	amt, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	tx := models.Transaction{Description: description, Amount: amt}
	if date != "" {
		parsed, err := dateutils.ParseDate(date)
		if err != nil {
			return err
		}
		tx.Date = parsed
	}

	out := pipeline.Classify(cmd.Context(), []models.Transaction{tx})
	fmt.Printf("Category: %s (method: %s)\n", out[0].Category, out[0].Method)
	return nil
}
