package scoring

import (
	"stocksignal/internal/analysis"
)

// TimingInput is the indicator snapshot consumed by the timing rule pass.
// PrevHistogram is optional; without it the histogram-slope rules are
// skipped.
type TimingInput struct {
	RSI           float64
	MACDLine      float64
	MACDSignal    float64
	MACDHistogram float64
	PrevHistogram *float64
	Price         float64
	MA20          float64
	MA60          float64
	VolumeRatio   float64
	ChangeRate    float64
}

// TimingResult is the outcome of the additive timing rule pass. The score
// accumulates independently of the composite score.
type TimingResult struct {
	Score       float64                `json:"score"`
	Verdict     analysis.TimingVerdict `json:"verdict"`
	BuySignals  []string               `json:"buy_signals"`
	SellSignals []string               `json:"sell_signals"`
}

// AnalyzeTiming runs the rule accumulator: each matching rule adds or
// subtracts its weight and records a reason, and the final score is
// bucketed into a verdict.
func AnalyzeTiming(in TimingInput) TimingResult {
	var score float64
	buy := []string{}
	sell := []string{}

	switch {
	case in.RSI < 30:
		score += 2
		buy = append(buy, "RSI oversold")
	case in.RSI < 40:
		score++
		buy = append(buy, "RSI approaching oversold")
	case in.RSI > 70:
		score -= 2
		sell = append(sell, "RSI overbought")
	case in.RSI > 60:
		score--
		sell = append(sell, "RSI approaching overbought")
	}

	if in.MACDLine > in.MACDSignal && in.MACDHistogram > 0 {
		score += 2
		buy = append(buy, "MACD golden cross")
	} else if in.MACDLine < in.MACDSignal && in.MACDHistogram < 0 {
		score -= 2
		sell = append(sell, "MACD dead cross")
	}

	if in.PrevHistogram != nil {
		if in.MACDHistogram > 0 && in.MACDHistogram > *in.PrevHistogram {
			score++
			buy = append(buy, "MACD histogram rising")
		} else if in.MACDHistogram < 0 && in.MACDHistogram < *in.PrevHistogram {
			score--
			sell = append(sell, "MACD histogram falling")
		}
	}

	if in.Price > 0 && in.MA20 > 0 && in.MA60 > 0 {
		// Alignment and position are separate rules: a fully aligned
		// series earns both.
		if in.Price > in.MA20 && in.MA20 > in.MA60 {
			score += 2
			buy = append(buy, "Bullish moving average alignment")
		} else if in.Price < in.MA20 && in.MA20 < in.MA60 {
			score -= 2
			sell = append(sell, "Bearish moving average alignment")
		}
		if in.Price > in.MA20 && in.Price > in.MA60 {
			score++
			buy = append(buy, "Price above both moving averages")
		} else if in.Price < in.MA20 && in.Price < in.MA60 {
			score--
			sell = append(sell, "Price below both moving averages")
		}
	}

	if in.VolumeRatio >= 2.0 {
		score++
		buy = append(buy, "Volume surge")
	} else if in.VolumeRatio >= 1.5 {
		score += 0.5
		buy = append(buy, "Volume picking up")
	}

	if in.ChangeRate >= 3 {
		score++
		buy = append(buy, "Strong daily gain")
	} else if in.ChangeRate <= -3 {
		score--
		sell = append(sell, "Sharp daily drop")
	}

	return TimingResult{
		Score:       score,
		Verdict:     timingVerdict(score),
		BuySignals:  buy,
		SellSignals: sell,
	}
}

func timingVerdict(score float64) analysis.TimingVerdict {
	switch {
	case score >= 5:
		return analysis.TimingStrongBuy
	case score >= 2:
		return analysis.TimingBuy
	case score <= -5:
		return analysis.TimingStrongSell
	case score <= -2:
		return analysis.TimingSell
	default:
		return analysis.TimingWatch
	}
}
