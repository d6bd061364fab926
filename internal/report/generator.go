// Package report renders a SpendingAnalysis for human or machine
// consumption.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"spendscope/internal/logging"
	"spendscope/internal/models"

	"gopkg.in/yaml.v3"
)

// Supported output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Generator renders spending analyses in the supported formats.
type Generator struct {
	logger logging.Logger
}

// NewGenerator creates a Generator.
func NewGenerator(logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Generator{logger: logger.WithField(logging.FieldComponent, "report")}
}

// Generate renders the analysis in the given format and returns the raw
// bytes. Unsupported formats are an error.
func (g *Generator) Generate(analysis *models.SpendingAnalysis, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		out, err := json.MarshalIndent(analysis, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
		}
		return out, nil
	case FormatYAML:
		out, err := yaml.Marshal(analysis)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// WriteFile renders the analysis and writes it to path, creating parent
// directories as needed.
func (g *Generator) WriteFile(analysis *models.SpendingAnalysis, format, path string) error {
	data, err := g.Generate(analysis, format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("error writing report: %w", err)
	}
	g.logger.WithFields(
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: "format", Value: format},
	).Info("Report written")
	return nil
}
