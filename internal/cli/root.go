// Package cli provides the command-line interface for the analysis
// application.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"stocksignal/internal/analysis/scoring"
	"stocksignal/internal/analysis/technical"
	"stocksignal/internal/config"
	"stocksignal/internal/logging"
	"stocksignal/internal/marketdata"
	"stocksignal/internal/store"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2025-11-01"
)

// App holds the application dependencies.
type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Store    store.DataStore
	Provider marketdata.Provider
	Analyzer *technical.Analyzer
	Scorer   *scoring.Scorer
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config:   cfg,
		Logger:   logger,
		Provider: marketdata.NewCSVProvider(cfg.Data.CSVDir),
		Analyzer: technical.NewAnalyzer(nil),
		Scorer:   scoring.NewScorer(tierTable(cfg.Markets.KRTiers), tierTable(cfg.Markets.USTiers)),
	}

	dataStore, err := store.NewSQLiteStore(cfg.Store.Path)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize store, some features may be unavailable")
	} else {
		app.Store = dataStore
		logger.Debug().Msg("SQLite store initialized")
	}

	rootCmd := &cobra.Command{
		Use:   "stocksignal",
		Short: "Stock Signal - technical analysis and signal generation CLI",
		Long: `Stock Signal analyzes daily price series with classic technical
indicators, scores symbols on a 0-100 composite scale, classifies
buy/sell signals, detects chart patterns, and sizes portfolios by
inverse volatility.

Use 'stocksignal help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/stocksignal)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	addCoreCommands(rootCmd, app)
	addAnalysisCommands(rootCmd, app)
	addPatternCommands(rootCmd, app)
	addScanCommands(rootCmd, app)
	addPortfolioCommands(rootCmd, app)
	addWatchlistCommands(rootCmd, app)

	return rootCmd
}

// tierTable converts configured tiers into a scoring table; empty config
// falls back to the built-in tables.
func tierTable(tiers []config.TierConfig) scoring.TierTable {
	if len(tiers) == 0 {
		return nil
	}
	table := make(scoring.TierTable, 0, len(tiers))
	for _, t := range tiers {
		table = append(table, scoring.CapTier{Min: t.Min, Score: t.Score})
	}
	return table
}

// addCoreCommands adds core utility commands.
func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("Stock Signal v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			return showConfig(output, app.Config)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("✓ Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) error {
	output.Bold("Analysis")
	output.Printf("  RSI Period:       %d\n", cfg.Analysis.RSIPeriod)
	output.Printf("  ATR Period:       %d\n", cfg.Analysis.ATRPeriod)
	output.Printf("  Bollinger:        %d / %.1f\n", cfg.Analysis.BollingerPeriod, cfg.Analysis.BollingerStdDev)
	output.Printf("  Min Bars:         %d\n", cfg.Analysis.MinBars)
	output.Printf("  Workers:          %d\n", cfg.Analysis.Workers)
	output.Println()

	output.Bold("Scanner")
	output.Printf("  Lookback:         %d\n", cfg.Scanner.Lookback)
	output.Printf("  Distance:         %d-%d\n", cfg.Scanner.MinDistance, cfg.Scanner.MaxDistance)
	output.Printf("  Tolerance:        %.2f\n", cfg.Scanner.Tolerance)
	output.Printf("  Min Depth:        %.2f\n", cfg.Scanner.MinDepth)
	output.Printf("  Min Confidence:   %.0f\n", cfg.Scanner.MinConfidence)
	output.Println()

	output.Bold("Scan")
	output.Printf("  Workers:          %d\n", cfg.Scan.Workers)
	output.Printf("  Schedule:         %s\n", orNone(cfg.Scan.Schedule))
	output.Println()

	output.Bold("Data & Store")
	output.Printf("  CSV Directory:    %s\n", cfg.Data.CSVDir)
	output.Printf("  Database:         %s\n", cfg.Store.Path)
	output.Println()

	output.Bold("Logging")
	output.Printf("  Level:            %s\n", cfg.Logging.Level)
	output.Printf("  Console:          %v\n", cfg.Logging.Console)
	output.Printf("  File:             %v (%s)\n", cfg.Logging.File, cfg.Logging.FilePath)

	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(disabled)"
	}
	return s
}
