package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	apperrors "stocksignal/internal/errors"
	"stocksignal/internal/logging"
	"stocksignal/internal/portfolio"
)

// addPortfolioCommands adds the portfolio weighting commands.
func addPortfolioCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newOptimizeCmd(app))
}

func newOptimizeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optimize <symbol> [symbol...]",
		Short: "Compute inverse-volatility portfolio weights",
		Long: `Weights each symbol by inverse volatility, tilts the weights by up
to 20% based on technical score, and renormalizes to 100%. Volatility and
scores come from the technical analysis of each symbol's recent history.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx := logging.WithLogger(cmd.Context(), app.Logger)

			candidates := make([]portfolio.Candidate, 0, len(args))
			stats := make(map[string]portfolio.InstrumentStats, len(args))
			for _, symbol := range args {
				candles, err := app.candlesFor(ctx, symbol)
				if err != nil {
					return err
				}
				result, err := app.Analyzer.Analyze(ctx, candles)
				if err != nil {
					return err
				}

				var vol float64
				if result.Indicators.ATR != nil && result.CurrentPrice > 0 {
					vol = *result.Indicators.ATR / result.CurrentPrice * 100
				}
				candidates = append(candidates, portfolio.Candidate{
					Symbol:     symbol,
					Volatility: vol,
					TechScore:  float64(result.Score),
				})

				if s, err := portfolio.StatsFromCandles(candles); err == nil {
					stats[symbol] = s
				} else {
					app.Logger.Debug().Err(err).Str("symbol", symbol).Msg("No return stats")
				}
			}

			alloc, err := portfolio.Optimize(candidates)
			if err != nil {
				return apperrors.Wrap(err, "portfolio optimization")
			}
			metrics := portfolio.Metrics(alloc, stats)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"allocation": alloc,
					"metrics":    metrics,
				})
			}

			output.Bold("Portfolio Allocation")
			table := NewTable(output, "SYMBOL", "VOL%", "SCORE", "BASE%", "FINAL%")
			for _, w := range alloc.Weights {
				table.AddRow(
					w.Symbol,
					fmt.Sprintf("%.2f", w.Volatility),
					fmt.Sprintf("%.0f", w.TechScore),
					fmt.Sprintf("%.2f", w.BaseWeight),
					fmt.Sprintf("%.2f", w.FinalWeight),
				)
			}
			table.Render()

			output.Println()
			output.Printf("  Portfolio Volatility: %.2f%%\n", alloc.PortfolioVolatility)
			output.Printf("  Portfolio Score:      %.1f\n", alloc.PortfolioScore)
			if metrics.Volatility > 0 {
				output.Printf("  Expected Return:      %.2f%% (annualized)\n", metrics.ExpectedReturn)
				output.Printf("  Sharpe Ratio:         %.2f\n", metrics.SharpeRatio)
			}
			return nil
		},
	}
	return cmd
}
