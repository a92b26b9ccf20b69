// Package cmd defines the command-line interface for vainupylinter.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vainuio/vainupylinter/internal/contract"
	"github.com/vainuio/vainupylinter/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add subcommands to the root command
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Gate options
	rootCmd.PersistentFlags().StringP("rcfile", "r", "", "Pylint configuration file (ignored when it does not exist)")
	rootCmd.PersistentFlags().Float64P("thresh", "t", contract.DefaultThreshold, "Minimum passing score out of 10")
	rootCmd.PersistentFlags().BoolP("allow-errors", "e", false, "Do not fail files because of error messages")
	rootCmd.PersistentFlags().BoolP("ignore-tests", "i", false, "Let failing test files pass (base name contains 'test_' or path contains 'tests.py')")
	rootCmd.PersistentFlags().BoolP("keep-results", "k", false, "Keep failure lists between runs in the same process")
	rootCmd.PersistentFlags().String("custom-path", "", "Registered extension, policy YAML or Go plugin with custom checks (also -cp)")
	rootCmd.PersistentFlags().IntP("verbosity", "v", contract.DefaultVerbosity, "Log level: 10 debug, 20 info, 30 warning, 40 error, 50 critical")
	rootCmd.PersistentFlags().String("pylint", contract.DefaultPylintCommand, "Command used to launch pylint")

	// Report and history options
	rootCmd.PersistentFlags().String("output", string(schema.NoneOut), "Per-file report format: none or table or json or csv")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write the report to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("history-backend", string(schema.NoneBackend), "Run history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql, or the SQLite file path")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
