package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"stocksignal/internal/analysis/scoring"
	apperrors "stocksignal/internal/errors"
	"stocksignal/internal/logging"
	"stocksignal/internal/scheduler"
	"stocksignal/internal/store"
)

// addScanCommands adds the batch screening commands.
func addScanCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newScanCmd(app))
	rootCmd.AddCommand(newHistoryCmd(app))
}

func newScanCmd(app *App) *cobra.Command {
	var listName string
	var every time.Duration
	var save bool
	var top int

	cmd := &cobra.Command{
		Use:   "scan [symbol...]",
		Short: "Score a batch of symbols and rank them",
		Long: `Analyzes and scores every symbol concurrently, ranking them by
composite score. Symbols come from the arguments or, with --list, from a
stored watchlist. With --every the scan repeats on a schedule until
interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx := logging.WithLogger(cmd.Context(), app.Logger)

			symbols := args
			if len(symbols) == 0 && listName != "" {
				if app.Store == nil {
					return apperrors.Wrap(apperrors.ErrDatabaseError, "store unavailable for watchlist lookup")
				}
				var err error
				symbols, err = app.Store.GetWatchlist(ctx, listName)
				if err != nil {
					return err
				}
			}
			if len(symbols) == 0 {
				return apperrors.Wrap(apperrors.ErrInvalidInput, "no symbols to scan: pass symbols or --list")
			}

			runScan := func() error {
				return app.runScan(ctx, output, symbols, save, top)
			}

			if every <= 0 {
				return runScan()
			}

			// Recurring mode: run once now, then on the interval.
			if err := runScan(); err != nil {
				app.Logger.Error().Err(err).Msg("Initial scan failed")
			}

			sched := scheduler.New(app.Logger)
			sched.Every(every, "scan", func() {
				if err := runScan(); err != nil {
					app.Logger.Error().Err(err).Msg("Scheduled scan failed")
				}
			})
			sched.Start()
			defer sched.Stop()

			output.Info("Scanning every %s, press Ctrl-C to stop", every)
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			select {
			case <-sigCh:
			case <-ctx.Done():
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&listName, "list", "", "scan a stored watchlist instead of argument symbols")
	cmd.Flags().DurationVar(&every, "every", 0, "repeat the scan on this interval (e.g. 10m)")
	cmd.Flags().BoolVar(&save, "save", false, "persist scan results to the local database")
	cmd.Flags().IntVar(&top, "top", 20, "show at most this many results")
	return cmd
}

// runScan performs one screening pass and renders or persists the results.
func (app *App) runScan(ctx context.Context, output *Output, symbols []string, save bool, top int) error {
	start := time.Now()

	screener := scoring.NewScreener(app.Analyzer, app.Scorer, app.Logger, app.Config.Scan.Workers)
	results, err := screener.Scan(ctx, symbols, app.candlesFor, nil)
	if err != nil {
		return err
	}
	logging.LogScan(app.Logger, len(symbols), len(results), time.Since(start))

	if save && app.Store != nil {
		records := make([]store.ScanRecord, 0, len(results))
		now := time.Now()
		for _, r := range results {
			records = append(records, store.ScanRecord{
				Symbol:     r.Symbol,
				Price:      r.Price,
				ChangeRate: r.ChangeRate,
				Score:      float64(r.Breakdown.ScaledTotal),
				Signal:     r.Signal,
				ScannedAt:  now,
			})
		}
		if err := app.Store.SaveScanResults(ctx, records); err != nil {
			app.Logger.Warn().Err(err).Msg("Failed to save scan results")
		}
	}

	if output.IsJSON() {
		return output.JSON(results)
	}

	output.Bold("Scan Results (%d/%d symbols)", len(results), len(symbols))
	if len(results) == 0 {
		output.Dim("No symbols produced a result")
		return nil
	}

	if top > 0 && len(results) > top {
		results = results[:top]
	}

	table := NewTable(output, "#", "SYMBOL", "PRICE", "CHANGE", "SCORE", "SIGNAL")
	for i, r := range results {
		table.AddRow(
			fmt.Sprintf("%d", i+1),
			r.Symbol,
			FormatPrice(r.Price),
			output.FormatSignedPercent(r.ChangeRate),
			fmt.Sprintf("%d", r.Breakdown.ScaledTotal),
			output.Signal(string(r.Signal)),
		)
	}
	table.Render()
	return nil
}

func newHistoryCmd(app *App) *cobra.Command {
	var limit int
	var symbol string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show stored scan results and signals",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx := logging.WithLogger(cmd.Context(), app.Logger)
			if app.Store == nil {
				return apperrors.Wrap(apperrors.ErrDatabaseError, "store unavailable")
			}

			if symbol != "" {
				signals, err := app.Store.GetSignals(ctx, symbol, limit)
				if err != nil {
					return err
				}
				if output.IsJSON() {
					return output.JSON(signals)
				}

				output.Bold("Signal History: %s", symbol)
				table := NewTable(output, "DATE", "SIGNAL", "CONF", "COMPOSITE")
				for _, s := range signals {
					table.AddRow(
						FormatDate(s.CreatedAt),
						output.Signal(string(s.Signal)),
						FormatConfidence(s.Confidence),
						fmt.Sprintf("%.1f", s.CompositeScore),
					)
				}
				table.Render()
				return nil
			}

			records, err := app.Store.GetLatestScanResults(ctx, limit)
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(records)
			}

			output.Bold("Recent Scan Results")
			table := NewTable(output, "DATE", "SYMBOL", "PRICE", "CHANGE", "SCORE", "SIGNAL")
			for _, r := range records {
				table.AddRow(
					FormatDate(r.ScannedAt),
					r.Symbol,
					FormatPrice(r.Price),
					output.FormatSignedPercent(r.ChangeRate),
					fmt.Sprintf("%.0f", r.Score),
					output.Signal(string(r.Signal)),
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum rows to show")
	cmd.Flags().StringVar(&symbol, "symbol", "", "show signal history for one symbol")
	return cmd
}
