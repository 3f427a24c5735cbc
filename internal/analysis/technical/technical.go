// Package technical runs the full technical analysis pass over a price
// series: indicator snapshot, 0-100 technical score with its signal
// reasons, and ATR-based entry risk levels.
package technical

import (
	"context"

	"stocksignal/internal/analysis/indicators"
	apperrors "stocksignal/internal/errors"
	"stocksignal/internal/models"
)

// MinBars is the minimum series length for a full analysis.
const MinBars = 60

// MACDValues is the simplified MACD snapshot at the latest bar.
type MACDValues struct {
	Line      float64 `json:"line"`
	Signal    float64 `json:"signal"`
	Histogram float64 `json:"histogram"`
}

// BollingerValues is the Bollinger Band snapshot at the latest bar.
type BollingerValues struct {
	Upper  float64 `json:"upper"`
	Middle float64 `json:"middle"`
	Lower  float64 `json:"lower"`
}

// IndicatorSet is the named indicator snapshot for the latest bar. Nil
// fields mean the series was too short for that indicator.
type IndicatorSet struct {
	RSI       *float64         `json:"rsi,omitempty"`
	MA5       *float64         `json:"ma5,omitempty"`
	MA20      *float64         `json:"ma20,omitempty"`
	MA60      *float64         `json:"ma60,omitempty"`
	MACD      *MACDValues      `json:"macd,omitempty"`
	Bollinger *BollingerValues `json:"bollinger,omitempty"`
	ATR       *float64         `json:"atr,omitempty"`
}

// RiskLevels are the ATR-multiple entry levels derived from the latest price.
type RiskLevels struct {
	StopLoss        float64 `json:"stop_loss"`
	Target1         float64 `json:"target1"`
	Target2         float64 `json:"target2"`
	Target3         float64 `json:"target3"`
	RiskRewardRatio float64 `json:"risk_reward_ratio"`
}

// Result is the outcome of a full technical analysis.
type Result struct {
	CurrentPrice  float64      `json:"current_price"`
	PreviousClose float64      `json:"previous_close"`
	ChangeRate    float64      `json:"change_rate"`
	VolumeRatio   float64      `json:"volume_ratio"`
	Indicators    IndicatorSet `json:"indicators"`
	Score         int          `json:"score"`
	Signals       []string     `json:"signals"`
	Risk          RiskLevels   `json:"risk"`
}

// Analyzer computes full technical analyses using a shared indicator engine.
type Analyzer struct {
	engine *indicators.Engine
}

// NewAnalyzer creates an Analyzer on top of the given engine.
func NewAnalyzer(engine *indicators.Engine) *Analyzer {
	if engine == nil {
		engine = indicators.NewDefaultEngine(4)
	}
	return &Analyzer{engine: engine}
}

// Analyze runs the full technical pass. It fails fast below MinBars: more
// history cannot appear on retry, so callers surface this directly.
func (a *Analyzer) Analyze(ctx context.Context, candles []models.Candle) (*Result, error) {
	if len(candles) < MinBars {
		return nil, apperrors.Wrapf(apperrors.ErrInsufficientData,
			"technical analysis needs %d bars, got %d", MinBars, len(candles))
	}

	singles, multis, err := a.engine.CalculateAll(ctx, candles)
	if err != nil {
		return nil, err
	}

	n := len(candles)
	price := candles[n-1].Close
	prevClose := candles[n-2].Close

	result := &Result{
		CurrentPrice:  price,
		PreviousClose: prevClose,
	}
	if prevClose > 0 {
		result.ChangeRate = (price - prevClose) / prevClose * 100
	}

	result.Indicators = snapshotIndicators(singles, multis, n)

	if ratio, err := indicators.VolumeRatio(candles, 20); err == nil {
		result.VolumeRatio = ratio
	}

	result.Score, result.Signals = technicalScore(result, price, prevClose)

	if result.Indicators.ATR != nil {
		result.Risk = entryRiskLevels(price, *result.Indicators.ATR, 2)
	}

	return result, nil
}

// snapshotIndicators picks the latest value of each engine output.
func snapshotIndicators(singles map[string][]float64, multis map[string]map[string][]float64, n int) IndicatorSet {
	set := IndicatorSet{
		RSI:  lastValue(singles["RSI_14"], n),
		MA5:  lastValue(singles["SMA_5"], n),
		MA20: lastValue(singles["SMA_20"], n),
		MA60: lastValue(singles["SMA_60"], n),
		ATR:  lastValue(singles["ATR_14"], n),
	}

	if macd, ok := multis["MACD_12_26"]; ok {
		set.MACD = &MACDValues{
			Line:      macd["macd"][n-1],
			Signal:    macd["signal"][n-1],
			Histogram: macd["histogram"][n-1],
		}
	}
	if bb, ok := multis["BollingerBands_20_2.0"]; ok {
		set.Bollinger = &BollingerValues{
			Upper:  bb["upper"][n-1],
			Middle: bb["middle"][n-1],
			Lower:  bb["lower"][n-1],
		}
	}

	return set
}

func lastValue(values []float64, n int) *float64 {
	if len(values) != n {
		return nil
	}
	v := values[n-1]
	return &v
}

// technicalScore applies the base-50 adjustment ladder and collects the
// matching signal descriptions.
func technicalScore(r *Result, price, prevClose float64) (int, []string) {
	score := 50.0
	signals := []string{}

	if rsi := r.Indicators.RSI; rsi != nil {
		switch {
		case *rsi < 30:
			score += 15
			signals = append(signals, "RSI oversold: rebound expected")
		case *rsi > 70:
			score -= 15
			signals = append(signals, "RSI overbought: pullback risk")
		case *rsi < 40:
			score += 5
			signals = append(signals, "RSI in lower range")
		case *rsi > 60:
			score -= 5
			signals = append(signals, "RSI in upper range")
		}
	}

	if macd := r.Indicators.MACD; macd != nil {
		if macd.Line > macd.Signal {
			score += 10
			signals = append(signals, "MACD above signal line (bullish)")
		} else {
			score -= 10
			signals = append(signals, "MACD below signal line (bearish)")
		}
	}

	ma20 := r.Indicators.MA20
	ma60 := r.Indicators.MA60
	if ma20 != nil && ma60 != nil {
		if price > *ma20 && *ma20 > *ma60 {
			score += 10
			signals = append(signals, "Bullish moving average alignment")
		} else if price < *ma20 && *ma20 < *ma60 {
			score -= 10
			signals = append(signals, "Bearish moving average alignment")
		}
		if price > *ma20 {
			score += 5
			signals = append(signals, "Price above MA20")
		} else {
			score -= 5
			signals = append(signals, "Price below MA20")
		}
	}

	if r.VolumeRatio > 2 {
		if price > prevClose {
			score += 5
			signals = append(signals, "Volume surge on an up day")
		} else {
			score -= 5
			signals = append(signals, "Volume surge on a down day")
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return int(score), signals
}

// entryRiskLevels derives the stop and staggered targets from an entry
// price and ATR.
func entryRiskLevels(entry, atr float64, atrMultiplier float64) RiskLevels {
	return RiskLevels{
		StopLoss:        entry - atr*atrMultiplier,
		Target1:         entry + atr*2,
		Target2:         entry + atr*3,
		Target3:         entry + atr*5,
		RiskRewardRatio: 2.0,
	}
}
