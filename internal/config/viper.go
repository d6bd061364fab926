// Package config provides Viper-based hierarchical configuration management.
package config

import (
	"fmt"
	"strings"

	"spendscope/internal/analyzer"
	"spendscope/internal/anomaly"
	"spendscope/internal/recurring"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Categories struct {
		// File points to an optional YAML file with category overrides.
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"categories" yaml:"categories"`

	Analyzer struct {
		SimilarityThreshold float64 `mapstructure:"similarity_threshold" yaml:"similarity_threshold"`
		TopCategories       int     `mapstructure:"top_categories" yaml:"top_categories"`
		TopMerchants        int     `mapstructure:"top_merchants" yaml:"top_merchants"`
	} `mapstructure:"analyzer" yaml:"analyzer"`

	Recurring struct {
		MinGroupSize      int     `mapstructure:"min_group_size" yaml:"min_group_size"`
		MaxRelativeStdDev float64 `mapstructure:"max_relative_stddev" yaml:"max_relative_stddev"`
		MaxAbsoluteStdDev float64 `mapstructure:"max_absolute_stddev" yaml:"max_absolute_stddev"`
		WeeklyMinDays     float64 `mapstructure:"weekly_min_days" yaml:"weekly_min_days"`
		WeeklyMaxDays     float64 `mapstructure:"weekly_max_days" yaml:"weekly_max_days"`
		MonthlyMinDays    float64 `mapstructure:"monthly_min_days" yaml:"monthly_min_days"`
		MonthlyMaxDays    float64 `mapstructure:"monthly_max_days" yaml:"monthly_max_days"`
		YearlyMinDays     float64 `mapstructure:"yearly_min_days" yaml:"yearly_min_days"`
		YearlyMaxDays     float64 `mapstructure:"yearly_max_days" yaml:"yearly_max_days"`
	} `mapstructure:"recurring" yaml:"recurring"`

	Anomaly struct {
		StdDevMultiplier float64 `mapstructure:"stddev_multiplier" yaml:"stddev_multiplier"`
		MinAmount        float64 `mapstructure:"min_amount" yaml:"min_amount"`
		MinMonths        int     `mapstructure:"min_months" yaml:"min_months"`
		MinObservations  int     `mapstructure:"min_observations" yaml:"min_observations"`
	} `mapstructure:"anomaly" yaml:"anomaly"`

	Report struct {
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"report" yaml:"report"`

	AI struct {
		Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
		Model   string `mapstructure:"model" yaml:"model"`
		APIKey  string `mapstructure:"api_key" yaml:"-"` // Never serialize the API key
	} `mapstructure:"ai" yaml:"ai"`
}

// InitializeConfig initializes Viper configuration with hierarchical
// loading: defaults, then an optional config file, then environment
// variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.spendscope")
	v.AddConfigPath(".spendscope")
	v.AddConfigPath(".")

	v.SetEnvPrefix("SPENDSCOPE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
		// Missing or invalid config file is fine, defaults and env apply.
	}

	// The API key always comes from the conventional unprefixed variable.
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind GEMINI_API_KEY environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("categories.file", "")

	v.SetDefault("analyzer.similarity_threshold", 0.1)
	v.SetDefault("analyzer.top_categories", analyzer.DefaultTopCategories)
	v.SetDefault("analyzer.top_merchants", analyzer.DefaultTopMerchants)

	r := recurring.DefaultOptions()
	v.SetDefault("recurring.min_group_size", r.MinGroupSize)
	v.SetDefault("recurring.max_relative_stddev", r.MaxRelativeStdDev)
	v.SetDefault("recurring.max_absolute_stddev", r.MaxAbsoluteStdDev)
	v.SetDefault("recurring.weekly_min_days", r.WeeklyMinDays)
	v.SetDefault("recurring.weekly_max_days", r.WeeklyMaxDays)
	v.SetDefault("recurring.monthly_min_days", r.MonthlyMinDays)
	v.SetDefault("recurring.monthly_max_days", r.MonthlyMaxDays)
	v.SetDefault("recurring.yearly_min_days", r.YearlyMinDays)
	v.SetDefault("recurring.yearly_max_days", r.YearlyMaxDays)

	a := anomaly.DefaultOptions()
	v.SetDefault("anomaly.stddev_multiplier", a.StdDevMultiplier)
	v.SetDefault("anomaly.min_amount", a.MinAmount)
	v.SetDefault("anomaly.min_months", a.MinMonths)
	v.SetDefault("anomaly.min_observations", a.MinObservations)

	v.SetDefault("report.format", "json")

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-1.5-flash")
}

// validateConfig validates the configuration values.
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Analyzer.SimilarityThreshold < 0 || config.Analyzer.SimilarityThreshold > 1 {
		return fmt.Errorf("analyzer.similarity_threshold must be between 0 and 1, got: %f", config.Analyzer.SimilarityThreshold)
	}
	if config.Analyzer.TopCategories < 0 || config.Analyzer.TopMerchants < 0 {
		return fmt.Errorf("ranking limits must not be negative")
	}

	if config.Recurring.MinGroupSize < 2 {
		return fmt.Errorf("recurring.min_group_size must be at least 2, got: %d", config.Recurring.MinGroupSize)
	}
	if config.Anomaly.StdDevMultiplier <= 0 {
		return fmt.Errorf("anomaly.stddev_multiplier must be positive, got: %f", config.Anomaly.StdDevMultiplier)
	}

	if config.Report.Format != "json" && config.Report.Format != "yaml" {
		return fmt.Errorf("invalid report format: %s (must be 'json' or 'yaml')", config.Report.Format)
	}

	if config.AI.Enabled && config.AI.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY required when AI is enabled")
	}
	return nil
}

// AnalyzerOptions maps the configuration onto analyzer options.
func (c *Config) AnalyzerOptions() analyzer.Options {
	return analyzer.Options{
		SimilarityThreshold: c.Analyzer.SimilarityThreshold,
		TopCategories:       c.Analyzer.TopCategories,
		TopMerchants:        c.Analyzer.TopMerchants,
		Recurring: recurring.Options{
			MinGroupSize:      c.Recurring.MinGroupSize,
			MaxRelativeStdDev: c.Recurring.MaxRelativeStdDev,
			MaxAbsoluteStdDev: c.Recurring.MaxAbsoluteStdDev,
			WeeklyMinDays:     c.Recurring.WeeklyMinDays,
			WeeklyMaxDays:     c.Recurring.WeeklyMaxDays,
			MonthlyMinDays:    c.Recurring.MonthlyMinDays,
			MonthlyMaxDays:    c.Recurring.MonthlyMaxDays,
			YearlyMinDays:     c.Recurring.YearlyMinDays,
			YearlyMaxDays:     c.Recurring.YearlyMaxDays,
		},
		Anomaly: anomaly.Options{
			StdDevMultiplier: c.Anomaly.StdDevMultiplier,
			MinAmount:        c.Anomaly.MinAmount,
			MinMonths:        c.Anomaly.MinMonths,
			MinObservations:  c.Anomaly.MinObservations,
		},
	}
}

// ConfigureLoggingFromConfig builds a logrus logger matching the Config.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
	return logger
}
