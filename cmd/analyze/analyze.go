// Package analyze implements the full spending-analysis command.
package analyze

import (
	"context"
	"fmt"

	"spendscope/cmd/root"
	"spendscope/internal/analyzer"
	"spendscope/internal/classifier"
	"spendscope/internal/report"
	"spendscope/internal/taxonomy"
	"spendscope/internal/transactioncsv"

	"github.com/spf13/cobra"
)

var format string

// Cmd represents the analyze command.
var Cmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a transactions CSV into a spending profile report",
	Long: `Analyze reads a transactions CSV (Date, Description, Amount, Category),
categorizes the uncategorized rows, and writes the spending profile as a
JSON or YAML report.`,
	RunE: analyzeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", "", "Report format: json or yaml (default from config)")
}

func analyzeFunc(cmd *cobra.Command, args []string) error {
	if root.SharedFlags.Input == "" {
		return fmt.Errorf("input file is required (use --input)")
	}

	txs, err := transactioncsv.Read(root.SharedFlags.Input, root.Log)
	if err != nil {
		return err
	}

	a, cleanup, err := buildAnalyzer()
	if err != nil {
		return err
	}
	defer cleanup()

	analysis := a.Analyze(cmd.Context(), txs)

	outFormat := format
	if outFormat == "" {
		outFormat = root.Cfg.Report.Format
	}

	generator := report.NewGenerator(root.Log)
	if root.SharedFlags.Output == "" {
		data, err := generator.Generate(analysis, outFormat)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}
	return generator.WriteFile(analysis, outFormat, root.SharedFlags.Output)
}

// buildAnalyzer assembles the analyzer from config and flags. The returned
// cleanup closes the AI client when one was created.
func buildAnalyzer() (*analyzer.Analyzer, func(), error) {
	categoriesPath := root.SharedFlags.Categories
	if categoriesPath == "" {
		categoriesPath = root.Cfg.Categories.File
	}
	tax := taxonomy.Load(categoriesPath, root.Log)

	opts := []analyzer.Option{analyzer.WithLogger(root.Log)}
	cleanup := func() {}

	if root.Cfg.AI.Enabled {
		client, err := classifier.NewGeminiClient(
			context.Background(), root.Cfg.AI.APIKey, root.Cfg.AI.Model, root.Log)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize AI client: %w", err)
		}
		opts = append(opts, analyzer.WithAIStrategy(classifier.NewAIStrategy(client, tax, root.Log)))
		cleanup = func() {
			if err := client.Close(); err != nil {
				root.Log.WithError(err).Warn("Failed to close AI client")
			}
		}
	}

	return analyzer.New(tax, root.Cfg.AnalyzerOptions(), opts...), cleanup, nil
}
