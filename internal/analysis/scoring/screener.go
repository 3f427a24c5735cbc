package scoring

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"stocksignal/internal/analysis"
	"stocksignal/internal/analysis/technical"
	apperrors "stocksignal/internal/errors"
	"stocksignal/internal/models"
)

// CandleProvider supplies the price series for a symbol.
type CandleProvider func(ctx context.Context, symbol string) ([]models.Candle, error)

// ContextProvider supplies the optional market context for a symbol. It may
// return (nil, nil) when no context is available.
type ContextProvider func(ctx context.Context, symbol string) (*models.MarketContext, error)

// ScanResult is one symbol's outcome from a batch scan.
type ScanResult struct {
	Symbol     string          `json:"symbol"`
	Price      float64         `json:"price"`
	ChangeRate float64         `json:"change_rate"`
	TechScore  int             `json:"tech_score"`
	Breakdown  ScoreBreakdown  `json:"breakdown"`
	Signal     analysis.Signal `json:"signal"`
}

// Screener scores many symbols concurrently with a bounded worker pool.
// Single-symbol failures are logged and skipped; the rest of the batch
// proceeds.
type Screener struct {
	analyzer *technical.Analyzer
	scorer   *Scorer
	logger   zerolog.Logger
	workers  int
}

// NewScreener creates a new Screener.
func NewScreener(analyzer *technical.Analyzer, scorer *Scorer, logger zerolog.Logger, workers int) *Screener {
	if workers <= 0 {
		workers = 4
	}
	if scorer == nil {
		scorer = NewScorer(nil, nil)
	}
	return &Screener{
		analyzer: analyzer,
		scorer:   scorer,
		logger:   logger,
		workers:  workers,
	}
}

// Scan analyzes and scores every symbol, returning results sorted by
// scaled composite score, highest first. The contexts provider may be nil.
func (s *Screener) Scan(ctx context.Context, symbols []string, candles CandleProvider, contexts ContextProvider) ([]ScanResult, error) {
	if len(symbols) == 0 {
		return nil, nil
	}

	workChan := make(chan string, len(symbols))
	resultChan := make(chan ScanResult, len(symbols))

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for symbol := range workChan {
				select {
				case <-ctx.Done():
					return
				default:
				}
				result, err := s.scanSymbol(ctx, symbol, candles, contexts)
				if err != nil {
					s.logger.Warn().Err(err).Str("symbol", symbol).Msg("Scan skipped symbol")
					continue
				}
				resultChan <- *result
			}
		}()
	}

	for _, symbol := range symbols {
		workChan <- symbol
	}
	close(workChan)

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make([]ScanResult, 0, len(symbols))
	for result := range resultChan {
		results = append(results, result)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Breakdown.ScaledTotal > results[j].Breakdown.ScaledTotal
	})
	return results, nil
}

// scanSymbol runs the single-symbol pipeline: fetch candles, run the full
// technical pass, attach optional context, and compute the composite score.
func (s *Screener) scanSymbol(ctx context.Context, symbol string, candles CandleProvider, contexts ContextProvider) (*ScanResult, error) {
	series, err := candles(ctx, symbol)
	if err != nil {
		return nil, apperrors.NewScanError(symbol, "fetch", err)
	}

	ta, err := s.analyzer.Analyze(ctx, series)
	if err != nil {
		return nil, apperrors.NewScanError(symbol, "analyze", err)
	}

	var mctx *models.MarketContext
	if contexts != nil {
		mctx, err = contexts(ctx, symbol)
		if err != nil {
			// Context is optional enrichment; score without it.
			s.logger.Debug().Err(err).Str("symbol", symbol).Msg("No market context")
			mctx = nil
		}
	}

	in := CompositeInput{
		TechScore:   float64(ta.Score),
		Price:       ta.CurrentPrice,
		VolumeRatio: ta.VolumeRatio,
		ChangeRate:  ta.ChangeRate,
	}
	if ta.Indicators.MA20 != nil {
		in.MA20 = *ta.Indicators.MA20
	}
	if ta.Indicators.MA60 != nil {
		in.MA60 = *ta.Indicators.MA60
	}
	if mctx != nil {
		in.Market = mctx.Market
		in.MarketCap = mctx.MarketCap
		in.Theme = mctx.Theme
		in.News = mctx.News
	}

	breakdown := s.scorer.Composite(in)

	return &ScanResult{
		Symbol:     symbol,
		Price:      ta.CurrentPrice,
		ChangeRate: ta.ChangeRate,
		TechScore:  ta.Score,
		Breakdown:  breakdown,
		Signal:     SignalFromScore(breakdown.ScaledTotal),
	}, nil
}
