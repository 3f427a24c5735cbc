package portfolio

import (
	"math"

	apperrors "stocksignal/internal/errors"
	"stocksignal/internal/models"
)

// riskFreeRate is the annual risk-free rate (%) used for the Sharpe ratio.
const riskFreeRate = 3.0

const tradingDaysPerYear = 252

// InstrumentStats are the annualized return statistics for one instrument.
type InstrumentStats struct {
	ExpectedReturn float64 `json:"expected_return"` // annualized %
	Volatility     float64 `json:"volatility"`      // annualized %
}

// PortfolioStats aggregate the weighted statistics of an allocation.
type PortfolioStats struct {
	ExpectedReturn float64 `json:"expected_return"`
	Volatility     float64 `json:"volatility"`
	SharpeRatio    float64 `json:"sharpe_ratio"`
}

// StatsFromCandles derives annualized expected return and volatility from
// the daily close-to-close returns of a series.
func StatsFromCandles(candles []models.Candle) (InstrumentStats, error) {
	if len(candles) < 2 {
		return InstrumentStats{}, apperrors.Wrap(apperrors.ErrInsufficientData, "need at least 2 bars for return stats")
	}

	returns := make([]float64, 0, len(candles)-1)
	for i := 1; i < len(candles); i++ {
		prev := candles[i-1].Close
		if prev <= 0 {
			return InstrumentStats{}, apperrors.Wrapf(apperrors.ErrInvalidInput, "non-positive close at bar %d", i-1)
		}
		returns = append(returns, (candles[i].Close-prev)/prev)
	}

	var sum float64
	for _, r := range returns {
		sum += r
	}
	meanReturn := sum / float64(len(returns))

	var variance float64
	for _, r := range returns {
		d := r - meanReturn
		variance += d * d
	}
	variance /= float64(len(returns))

	return InstrumentStats{
		ExpectedReturn: meanReturn * tradingDaysPerYear * 100,
		Volatility:     math.Sqrt(variance) * math.Sqrt(tradingDaysPerYear) * 100,
	}, nil
}

// Metrics computes weighted portfolio-level statistics for an allocation.
// Instruments without stats contribute only their weight to the denominator.
func Metrics(alloc *Allocation, stats map[string]InstrumentStats) PortfolioStats {
	var out PortfolioStats
	if alloc == nil {
		return out
	}

	for _, w := range alloc.Weights {
		s, ok := stats[w.Symbol]
		if !ok {
			continue
		}
		out.ExpectedReturn += s.ExpectedReturn * w.FinalWeight / 100
		out.Volatility += s.Volatility * w.FinalWeight / 100
	}

	if out.Volatility > 0 {
		out.SharpeRatio = (out.ExpectedReturn - riskFreeRate) / out.Volatility
	}
	return out
}
