// Package root contains the root command for the application.
package root

import (
	"spendscope/internal/config"
	"spendscope/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags holds the flags shared by multiple commands.
type CommonFlags struct {
	Input      string
	Output     string
	Categories string
}

var (
	// Log is the shared logger instance for commands.
	Log logging.Logger = logging.GetLogger()

	// Cfg is the loaded application configuration.
	Cfg *config.Config

	// SharedFlags are accessible to all commands.
	SharedFlags = CommonFlags{}

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "spendscope",
		Short: "Analyze transaction histories into a spending profile.",
		Long: `spendscope categorizes financial transactions and derives a spending
profile: category and monthly totals, recurring expenses, and unusual
spending months.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to spendscope!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				return err
			}
			Cfg = cfg

			logger := logging.NewLogrusAdapterFromLogger(config.ConfigureLoggingFromConfig(cfg))
			logging.SetLogger(logger)
			Log = logger
			return nil
		},
	}
)

// Init initializes the root command and its persistent flags.
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input transactions CSV file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Categories, "categories", "c", "", "Custom categories YAML file")
}
