package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"stocksignal/internal/analysis"
	"stocksignal/internal/analysis/patterns"
	"stocksignal/internal/analysis/recommend"
	"stocksignal/internal/logging"
)

// addPatternCommands adds the pattern detection and recommendation commands.
func addPatternCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newPatternsCmd(app))
	rootCmd.AddCommand(newRecommendCmd(app))
}

func newPatternsCmd(app *App) *cobra.Command {
	var deepScan bool

	cmd := &cobra.Command{
		Use:   "patterns <symbol>",
		Short: "Detect chart patterns in recent history",
		Long: `Classifies the trend and checks the trailing window for double
top/bottom, triangle, and range structures. With --scan the whole series
is additionally searched for double top/bottom formations.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol := args[0]
			output := NewOutput(cmd)
			ctx := logging.WithLogger(cmd.Context(), app.Logger)

			candles, err := app.candlesFor(ctx, symbol)
			if err != nil {
				return err
			}

			detected := patterns.NewDetector().Detect(candles)

			var tops, bottoms []patterns.ScanMatch
			if deepScan {
				scanner := patterns.NewScanner(patterns.ScannerConfig{
					Lookback:      app.Config.Scanner.Lookback,
					MinDistance:   app.Config.Scanner.MinDistance,
					MaxDistance:   app.Config.Scanner.MaxDistance,
					Tolerance:     app.Config.Scanner.Tolerance,
					MinDepth:      app.Config.Scanner.MinDepth,
					MinConfidence: int(app.Config.Scanner.MinConfidence),
					MaxResults:    app.Config.Scanner.MaxResults,
				})
				tops = scanner.ScanDoubleTops(candles)
				bottoms = scanner.ScanDoubleBottoms(candles)
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"symbol":         symbol,
					"patterns":       detected,
					"double_tops":    tops,
					"double_bottoms": bottoms,
				})
			}

			output.Bold("Patterns: %s", symbol)
			if len(detected) == 0 {
				output.Dim("Not enough history for pattern detection")
				return nil
			}
			for _, p := range detected {
				output.Printf("  %s %s\n", directionMarker(output, p.Direction), p.Description)
				if p.Reliability != analysis.ReliabilityInfo {
					output.Dim("    reliability: %s", string(p.Reliability))
				}
			}

			if deepScan {
				printScanMatches(output, "Double Tops", tops)
				printScanMatches(output, "Double Bottoms", bottoms)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&deepScan, "scan", false, "search the whole series for double top/bottom structures")
	return cmd
}

func directionMarker(output *Output, direction analysis.PatternDirection) string {
	switch direction {
	case analysis.PatternBullish:
		return output.Green("▲")
	case analysis.PatternBearish:
		return output.Red("▼")
	default:
		return output.Yellow("•")
	}
}

func printScanMatches(output *Output, title string, matches []patterns.ScanMatch) {
	output.Println()
	output.Bold(title)
	if len(matches) == 0 {
		output.Dim("  none found")
		return
	}

	table := NewTable(output, "FIRST", "MIDDLE", "SECOND", "CONF", "TARGET")
	for _, m := range matches {
		table.AddRow(
			fmt.Sprintf("%s @%d", FormatPrice(m.FirstPrice), m.FirstIndex),
			fmt.Sprintf("%s @%d", FormatPrice(m.MiddlePrice), m.MiddleIndex),
			fmt.Sprintf("%s @%d", FormatPrice(m.SecondPrice), m.SecondIndex),
			fmt.Sprintf("%d%%", m.Confidence),
			FormatPrice(m.TargetPrice),
		)
	}
	table.Render()
}

func newRecommendCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "recommend <symbol>",
		Short: "Derive buy/target/stop levels and an entry timing verdict",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol := args[0]
			output := NewOutput(cmd)
			ctx := logging.WithLogger(cmd.Context(), app.Logger)

			candles, err := app.candlesFor(ctx, symbol)
			if err != nil {
				return err
			}

			rec, err := recommend.Recommend(candles)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(rec)
			}

			output.Bold("Recommendation: %s", symbol)
			output.Printf("  Current:  %s\n", FormatPrice(rec.CurrentPrice))
			output.Printf("  Buy:      %s\n", FormatPrice(rec.BuyPrice))
			output.Printf("  Target:   %s (%s)\n", FormatPrice(rec.TargetPrice), FormatPercent(rec.ExpectedReturn))
			output.Printf("  Stop:     %s (%s)\n", FormatPrice(rec.StopLoss), FormatPercent(-rec.RiskReturn))
			output.Printf("  R/R:      %s\n", FormatRiskReward(rec.RiskRewardRatio))
			output.Println()

			switch rec.Timing {
			case analysis.ActionBuy:
				output.Success("Timing: BUY")
			case analysis.ActionSell:
				output.Error("Timing: SELL")
			default:
				output.Warning("Timing: WAIT")
			}
			for _, r := range rec.Reasons {
				output.Printf("  • %s\n", r)
			}

			output.Println()
			output.Dim("RSI %.1f  |  20d range %s-%s  |  60d range %s-%s",
				rec.RSI,
				FormatPrice(rec.Low20), FormatPrice(rec.High20),
				FormatPrice(rec.Low60), FormatPrice(rec.High60))
			return nil
		},
	}
}
