package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"stocksignal/internal/analysis/risk"
	"stocksignal/internal/analysis/scoring"
	"stocksignal/internal/analysis/technical"
	apperrors "stocksignal/internal/errors"
	"stocksignal/internal/logging"
	"stocksignal/internal/models"
	"stocksignal/internal/sentiment"
	"stocksignal/internal/store"
)

// historyBars is how much history the commands pull per symbol.
const historyBars = 250

// addAnalysisCommands adds the per-symbol analysis commands.
func addAnalysisCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newAnalyzeCmd(app))
	rootCmd.AddCommand(newScoreCmd(app))
	rootCmd.AddCommand(newSignalCmd(app))
	rootCmd.AddCommand(newTimingCmd(app))
	rootCmd.AddCommand(newRiskCmd(app))
	rootCmd.AddCommand(newSentimentCmd())
}

// candlesFor pulls recent history for a symbol.
func (app *App) candlesFor(ctx context.Context, symbol string) ([]models.Candle, error) {
	return app.Provider.GetCandles(ctx, symbol, historyBars)
}

// analyzeSymbol runs the full technical pass on recent history.
func (app *App) analyzeSymbol(ctx context.Context, symbol string) (*technical.Result, error) {
	candles, err := app.candlesFor(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return app.Analyzer.Analyze(ctx, candles)
}

func newAnalyzeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <symbol>",
		Short: "Run the full technical analysis for a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol := args[0]
			output := NewOutput(cmd)
			ctx := logging.WithLogger(cmd.Context(), app.Logger)

			result, err := app.analyzeSymbol(ctx, symbol)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(result)
			}

			output.Bold("Technical Analysis: %s", symbol)
			output.Printf("  Price:        %s (%s)\n", FormatPrice(result.CurrentPrice), output.FormatSignedPercent(result.ChangeRate))
			output.Printf("  Volume Ratio: %.2fx\n", result.VolumeRatio)
			output.Printf("  Tech Score:   %d/100\n", result.Score)
			output.Println()

			ind := result.Indicators
			table := NewTable(output, "INDICATOR", "VALUE")
			if ind.RSI != nil {
				table.AddRow("RSI(14)", FormatPrice(*ind.RSI))
			}
			if ind.MA5 != nil {
				table.AddRow("MA5", FormatPrice(*ind.MA5))
			}
			if ind.MA20 != nil {
				table.AddRow("MA20", FormatPrice(*ind.MA20))
			}
			if ind.MA60 != nil {
				table.AddRow("MA60", FormatPrice(*ind.MA60))
			}
			if ind.MACD != nil {
				table.AddRow("MACD", FormatPrice(ind.MACD.Line))
				table.AddRow("MACD Signal", FormatPrice(ind.MACD.Signal))
			}
			if ind.Bollinger != nil {
				table.AddRow("BB Upper", FormatPrice(ind.Bollinger.Upper))
				table.AddRow("BB Middle", FormatPrice(ind.Bollinger.Middle))
				table.AddRow("BB Lower", FormatPrice(ind.Bollinger.Lower))
			}
			if ind.ATR != nil {
				table.AddRow("ATR(14)", FormatPrice(*ind.ATR))
			}
			table.Render()

			if len(result.Signals) > 0 {
				output.Println()
				output.Bold("Signals")
				for _, s := range result.Signals {
					output.Printf("  • %s\n", s)
				}
			}

			if ind.ATR != nil {
				output.Println()
				output.Bold("Entry Levels")
				output.Printf("  Stop Loss: %s\n", FormatPrice(result.Risk.StopLoss))
				output.Printf("  Target 1:  %s\n", FormatPrice(result.Risk.Target1))
				output.Printf("  Target 2:  %s\n", FormatPrice(result.Risk.Target2))
				output.Printf("  Target 3:  %s\n", FormatPrice(result.Risk.Target3))
			}
			return nil
		},
	}
}

func newScoreCmd(app *App) *cobra.Command {
	var market string
	var marketCap float64

	cmd := &cobra.Command{
		Use:   "score <symbol>",
		Short: "Compute the 0-100 composite score for a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol := args[0]
			if market != string(models.MarketKR) && market != string(models.MarketUS) {
				return apperrors.NewValidationError("market", market, "must be KR or US")
			}
			output := NewOutput(cmd)
			ctx := logging.WithLogger(cmd.Context(), app.Logger)

			result, err := app.analyzeSymbol(ctx, symbol)
			if err != nil {
				return err
			}

			in := scoring.CompositeInput{
				TechScore:   float64(result.Score),
				Market:      models.Market(market),
				MarketCap:   marketCap,
				Price:       result.CurrentPrice,
				VolumeRatio: result.VolumeRatio,
				ChangeRate:  result.ChangeRate,
			}
			if result.Indicators.MA20 != nil {
				in.MA20 = *result.Indicators.MA20
			}
			if result.Indicators.MA60 != nil {
				in.MA60 = *result.Indicators.MA60
			}

			breakdown := app.Scorer.Composite(in)
			signal := scoring.SignalFromScore(breakdown.ScaledTotal)
			logging.LogScore(app.Logger, symbol, float64(breakdown.ScaledTotal), string(signal))

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"symbol":    symbol,
					"breakdown": breakdown,
					"signal":    signal,
				})
			}

			output.Bold("Composite Score: %s", symbol)
			table := NewTable(output, "COMPONENT", "POINTS")
			table.AddRow("Technical", PadLeft(FormatGrouped(float64(breakdown.Technical)), 6))
			table.AddRow("Market Cap", PadLeft(FormatGrouped(float64(breakdown.MarketCap)), 6))
			table.AddRow("Volume", PadLeft(FormatGrouped(float64(breakdown.Volume)), 6))
			table.AddRow("Momentum", PadLeft(FormatGrouped(float64(breakdown.Momentum)), 6))
			table.AddRow("Change", PadLeft(FormatGrouped(float64(breakdown.Change)), 6))
			if breakdown.HasTheme {
				table.AddRow("Theme Change", PadLeft(FormatGrouped(float64(breakdown.ThemeChange)), 6))
				table.AddRow("Theme Rank", PadLeft(FormatGrouped(float64(breakdown.ThemeRank)), 6))
			}
			if breakdown.HasNews {
				table.AddRow("News Count", PadLeft(FormatGrouped(float64(breakdown.NewsCount)), 6))
				table.AddRow("News Recency", PadLeft(FormatGrouped(float64(breakdown.NewsRecency)), 6))
			}
			table.Render()

			output.Println()
			output.Printf("  Total:  %d/%d\n", breakdown.Total, breakdown.MaxPossible)
			output.Printf("  Scaled: %d/100\n", breakdown.ScaledTotal)
			output.Printf("  Signal: %s\n", output.Signal(string(signal)))
			return nil
		},
	}

	cmd.Flags().StringVar(&market, "market", "KR", "market for cap tiers (KR or US)")
	cmd.Flags().Float64Var(&marketCap, "cap", 0, "market cap (KR: 100M KRW units, US: $M)")
	return cmd
}

func newSignalCmd(app *App) *cobra.Command {
	var per, pbr float64
	var save bool

	cmd := &cobra.Command{
		Use:   "signal <symbol>",
		Short: "Classify the blended technical+fundamental signal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol := args[0]
			output := NewOutput(cmd)
			ctx := logging.WithLogger(cmd.Context(), app.Logger)

			result, err := app.analyzeSymbol(ctx, symbol)
			if err != nil {
				return err
			}

			fundScore, fundReasons := scoring.FundamentalScore(&models.Fundamentals{PER: per, PBR: pbr})

			var hint *scoring.RiskHint
			if result.Indicators.ATR != nil {
				hint = &scoring.RiskHint{
					StopLoss: result.Risk.StopLoss,
					Target:   result.Risk.Target2,
				}
			}

			classified := scoring.Classify(float64(result.Score), result.Signals, float64(fundScore), fundReasons, hint)
			logging.LogSignal(app.Logger, symbol, string(classified.Signal), classified.Confidence)

			if save && app.Store != nil {
				record := &store.SignalRecord{
					Symbol:         symbol,
					Signal:         classified.Signal,
					Confidence:     classified.Confidence,
					CompositeScore: classified.CompositeScore,
					TechnicalScore: result.Score,
					Reasons:        classified.Reasons,
					CreatedAt:      time.Now(),
				}
				if err := app.Store.SaveSignal(ctx, record); err != nil {
					app.Logger.Warn().Err(err).Msg("Failed to save signal")
				}
			}

			if output.IsJSON() {
				return output.JSON(classified)
			}

			output.Bold("Signal: %s", symbol)
			output.Printf("  Signal:      %s\n", output.Signal(string(classified.Signal)))
			output.Printf("  Confidence:  %s\n", FormatConfidence(classified.Confidence))
			output.Printf("  Composite:   %.1f (tech %.1f / fund %.1f)\n",
				classified.CompositeScore, classified.TechnicalScore, classified.FundamentalScore)
			output.Println()
			for _, r := range classified.Reasons {
				output.Printf("  • %s\n", r)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&per, "per", 0, "price-earnings ratio (0 skips)")
	cmd.Flags().Float64Var(&pbr, "pbr", 0, "price-book ratio (0 skips)")
	cmd.Flags().BoolVar(&save, "save", false, "persist the signal to the local database")
	return cmd
}

func newTimingCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "timing <symbol>",
		Short: "Score the short-term entry timing for a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol := args[0]
			output := NewOutput(cmd)
			ctx := logging.WithLogger(cmd.Context(), app.Logger)

			result, err := app.analyzeSymbol(ctx, symbol)
			if err != nil {
				return err
			}

			in := scoring.TimingInput{
				Price:       result.CurrentPrice,
				VolumeRatio: result.VolumeRatio,
				ChangeRate:  result.ChangeRate,
			}
			if result.Indicators.RSI != nil {
				in.RSI = *result.Indicators.RSI
			}
			if macd := result.Indicators.MACD; macd != nil {
				in.MACDLine = macd.Line
				in.MACDSignal = macd.Signal
				in.MACDHistogram = macd.Histogram
			}
			if result.Indicators.MA20 != nil {
				in.MA20 = *result.Indicators.MA20
			}
			if result.Indicators.MA60 != nil {
				in.MA60 = *result.Indicators.MA60
			}

			timing := scoring.AnalyzeTiming(in)

			if output.IsJSON() {
				return output.JSON(timing)
			}

			output.Bold("Entry Timing: %s", symbol)
			output.Printf("  Score:   %+.1f\n", timing.Score)
			output.Printf("  Verdict: %s\n", output.Signal(string(timing.Verdict)))
			if len(timing.BuySignals) > 0 {
				output.Println()
				output.Success("Buy factors:")
				for _, s := range timing.BuySignals {
					output.Printf("  + %s\n", s)
				}
			}
			if len(timing.SellSignals) > 0 {
				output.Println()
				output.Error("Sell factors:")
				for _, s := range timing.SellSignals {
					output.Printf("  - %s\n", s)
				}
			}
			return nil
		},
	}
}

func newRiskCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "risk <symbol>",
		Short: "Assess volatility, VaR, and stop/target levels",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol := args[0]
			output := NewOutput(cmd)
			ctx := logging.WithLogger(cmd.Context(), app.Logger)

			result, err := app.analyzeSymbol(ctx, symbol)
			if err != nil {
				return err
			}
			if result.Indicators.ATR == nil {
				return apperrors.Wrap(apperrors.ErrInsufficientData, "ATR unavailable for risk assessment")
			}

			profile, err := risk.Assess(result.CurrentPrice, *result.Indicators.ATR)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(profile)
			}

			output.Bold("Risk Profile: %s", symbol)
			output.Printf("  Volatility:  %.2f%% (%s)\n", profile.VolatilityPercent, string(profile.Tier))
			output.Printf("  Daily VaR:   %.2f%% (%s)\n", profile.DailyVaRPercent, FormatPrice(profile.DailyVaR))
			output.Printf("  Weekly VaR:  %.2f%% (%s)\n", profile.WeeklyVaRPercent, FormatPrice(profile.WeeklyVaR))
			output.Println()
			output.Printf("  Stop Loss:   %s (%s)\n", FormatPrice(profile.StopLoss), FormatPercent(-profile.StopLossPercent))
			output.Printf("  Target:      %s (%s)\n", FormatPrice(profile.TargetPrice), FormatPercent(profile.TargetPercent))
			return nil
		},
	}
}

func newSentimentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sentiment <headline> [headline...]",
		Short: "Score news headlines with keyword sentiment",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			result := sentiment.NewAnalyzer(nil, nil).Analyze(args)

			if output.IsJSON() {
				return output.JSON(result)
			}

			output.Bold("Headline Sentiment")
			for _, h := range result.Headlines {
				marker := output.Yellow("•")
				if h.Score > 0 {
					marker = output.Green("+")
				} else if h.Score < 0 {
					marker = output.Red("-")
				}
				output.Printf("  %s %s\n", marker, TruncateString(h.Title, 70))
			}
			output.Println()
			output.Printf("  Positive: %d (%.0f%%)  Negative: %d (%.0f%%)  Neutral: %d\n",
				result.PositiveCount, result.PositivePercent,
				result.NegativeCount, result.NegativePercent,
				result.NeutralCount)
			output.Printf("  Overall: %s (score %+d)\n", string(result.Overall), result.TotalScore)
			return nil
		},
	}
}
