package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vainuio/vainupylinter/core"
	"github.com/vainuio/vainupylinter/internal/contract"
	"github.com/vainuio/vainupylinter/internal/history"
	"github.com/vainuio/vainupylinter/internal/logging"
	"github.com/vainuio/vainupylinter/internal/outwriter"
	"github.com/vainuio/vainupylinter/schema"
	"golang.org/x/term"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// historyManager is the global history manager instance.
var historyManager contract.HistoryManager = history.Manager

// exitFunc terminates the process once a gate run is reported.
var exitFunc = os.Exit

// rootCmd lints the files given as arguments and exits 0 or 1.
var rootCmd = &cobra.Command{
	Use:   "vainupylinter [flags] [file ...]",
	Short: "Run pylint on Python files and fail when a file scores below the threshold.",
	Long: `vainupylinter runs pylint on each given file and fails the build when a file
scores below the threshold, reports fatal messages, or reports errors.

Paths that do not contain ".py" are skipped, so the tool can be fed the raw
output of "git diff --name-only". Test files can be exempted with
--ignore-tests, and custom rules, scoring and thresholds can be plugged in
with --custom-path.

Examples:
  # Check changed files against the default threshold of 9.2
  vainupylinter $(git diff --name-only origin/main)

  # Lower the threshold and tolerate error messages
  vainupylinter -t 8.5 -e app/views.py app/models.py

  # Apply a policy file with custom rules
  vainupylinter --custom-path .lint-policy.yaml app/*.py`,
	Version:            version,
	Args:               cobra.ArbitraryArgs,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	PreRunE:            sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runGate(rootCtx)
	},
}

// runGate lints cfg.Files and terminates the process with the gate's exit code.
func runGate(ctx context.Context) {
	linter := contract.NewLocalPylint(cfg.PylintCommand)
	runner, err := core.NewRunner(cfg, linter, slog.Default(),
		core.WithSink(outwriter.NewOutWriter(cfg)),
		core.WithSink(history.NewRecorder(historyManager, cfg.ConfigParams())),
		core.WithExit(func(code int) {
			history.CloseHistory()
			exitFunc(code)
		}),
	)
	if err != nil {
		contract.LogFatal("Failed to load custom extension", err)
	}
	runner.Run(ctx)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	configureConfigFile()

	viper.SetEnvPrefix("VAINUPYLINTER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("thresh", contract.DefaultThreshold)
	viper.SetDefault("verbosity", contract.DefaultVerbosity)
	viper.SetDefault("pylint", contract.DefaultPylintCommand)
	viper.SetDefault("output", schema.NoneOut)
	viper.SetDefault("history-backend", schema.NoneBackend)
	viper.SetDefault("history-db-connect", "")
	viper.SetDefault("color", defaultColor())
}

// configureConfigFile points viper at --config or the default locations.
func configureConfigFile() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		return
	}
	viper.SetConfigName(".vainupylinter") // Name of config file (without extension)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")     // Look in the current directory
	viper.AddConfigPath("$HOME") // Look in the home directory
}

// defaultColor enables colored labels only when stdout is a terminal.
func defaultColor() string {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return "yes"
	}
	return "no"
}

// readConfigFile loads the config file if present.
func readConfigFile() error {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}
	return nil
}

// sharedSetup unmarshals config, runs validation and prepares logging and history.
func sharedSetup(_ context.Context, _ *cobra.Command, args []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := readConfigFile(); err != nil {
		return err
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Handle positional arguments (which Viper doesn't do).
	input.Files = args

	// 4. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	// 5. Logging is configured before anything else prints.
	slog.SetDefault(logging.New(os.Stderr, cfg.Verbosity))
	color.NoColor = !cfg.UseColors

	// 6. Initialize run history with validated config
	if err := history.InitHistory(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return fmt.Errorf("failed to initialize run history: %w", err)
	}

	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// Execute runs the root command with os.Args.
func Execute() error {
	rootCmd.SetArgs(rewriteLegacyArgs(os.Args[1:]))
	return rootCmd.Execute()
}

// SetHistoryManager sets the global history manager.
func SetHistoryManager(mgr contract.HistoryManager) {
	historyManager = mgr
}
