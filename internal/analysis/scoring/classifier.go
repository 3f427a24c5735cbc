package scoring

import (
	"fmt"
	"math"

	"stocksignal/internal/analysis"
)

// RiskHint carries the stop/target levels quoted in buy-signal reasons.
type RiskHint struct {
	StopLoss float64
	Target   float64
}

// SignalResult is the blended technical+fundamental classification.
type SignalResult struct {
	Signal           analysis.Signal `json:"signal"`
	Confidence       float64         `json:"confidence"`
	CompositeScore   float64         `json:"composite_score"`
	TechnicalScore   float64         `json:"technical_score"`
	FundamentalScore float64         `json:"fundamental_score"`
	Reasons          []string        `json:"reasons"`
}

// Classify blends the technical and fundamental scores (60/40) and walks
// the signal ladder, attaching per-bucket confidence. Up to three technical
// signals and two fundamental reasons are kept; buy signals also quote the
// stop and target when a risk hint is supplied.
func Classify(techScore float64, techSignals []string, fundScore float64, fundReasons []string, risk *RiskHint) *SignalResult {
	composite := techScore*0.6 + fundScore*0.4

	var signal analysis.Signal
	var confidence float64
	switch {
	case composite >= 75:
		signal = analysis.StrongBuy
		confidence = math.Min(95, composite)
	case composite >= 60:
		signal = analysis.Buy
		confidence = composite
	case composite >= 40:
		signal = analysis.Hold
		confidence = 100 - math.Abs(composite-50)*2
	case composite >= 25:
		signal = analysis.Sell
		confidence = 100 - composite
	default:
		signal = analysis.StrongSell
		confidence = math.Min(95, 100-composite)
	}

	reasons := make([]string, 0, 7)
	reasons = append(reasons, firstN(techSignals, 3)...)
	reasons = append(reasons, firstN(fundReasons, 2)...)

	if risk != nil && (signal == analysis.StrongBuy || signal == analysis.Buy) {
		reasons = append(reasons,
			fmt.Sprintf("Stop-loss: %.2f", risk.StopLoss),
			fmt.Sprintf("Target: %.2f", risk.Target))
	}

	return &SignalResult{
		Signal:           signal,
		Confidence:       roundTo(confidence, 1),
		CompositeScore:   roundTo(composite, 1),
		TechnicalScore:   roundTo(techScore, 1),
		FundamentalScore: roundTo(fundScore, 1),
		Reasons:          reasons,
	}
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

// roundTo rounds to the given number of decimal places.
func roundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
