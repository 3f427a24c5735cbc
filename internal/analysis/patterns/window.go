// Package patterns detects chart structures: a windowed detector over the
// trailing bars and a whole-series double top/bottom scanner.
package patterns

import (
	"fmt"

	"stocksignal/internal/analysis"
	"stocksignal/internal/models"
)

const (
	windowSize = 60
	recentSize = 20
	minBars    = 20
)

// Detector runs the windowed pattern checks over the trailing bars.
type Detector struct{}

// NewDetector creates a windowed pattern detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect classifies the trend and checks the trailing window for double
// top/bottom, triangle, and range structures, always ending with the
// informational support/resistance fact. A series shorter than minBars
// yields no patterns; that is not an error.
func (d *Detector) Detect(candles []models.Candle) []analysis.Pattern {
	if len(candles) < minBars {
		return nil
	}

	window := candles
	if len(window) > windowSize {
		window = window[len(window)-windowSize:]
	}

	closes := make([]float64, len(window))
	for i, c := range window {
		closes[i] = c.Close
	}

	recent := window[len(window)-recentSize:]
	highs := make([]float64, recentSize)
	lows := make([]float64, recentSize)
	for i, c := range recent {
		highs[i] = c.High
		lows[i] = c.Low
	}

	current := closes[len(closes)-1]
	patterns := []analysis.Pattern{classifyTrend(closes)}

	if p, ok := detectDoubleBottom(lows, current); ok {
		patterns = append(patterns, p)
	}
	if p, ok := detectDoubleTop(highs, current); ok {
		patterns = append(patterns, p)
	}
	if p, ok := detectTriangle(highs, lows); ok {
		patterns = append(patterns, p)
	}
	if p, ok := detectRange(highs, lows); ok {
		patterns = append(patterns, p)
	}

	support := minOf(lows)
	resistance := maxOf(highs)
	patterns = append(patterns, analysis.Pattern{
		Type:        analysis.PatternSupportResistance,
		Direction:   analysis.PatternNeutral,
		Reliability: analysis.ReliabilityInfo,
		Description: fmt.Sprintf("Support near %.2f, resistance near %.2f", support, resistance),
		Support:     support,
		Resistance:  resistance,
	})

	return patterns
}

// classifyTrend compares the current price against the 10- and 30-bar
// averages and the 10-bar % change.
func classifyTrend(closes []float64) analysis.Pattern {
	n := len(closes)
	current := closes[n-1]

	avg10 := meanOf(closes[n-min(10, n):])
	avg30 := meanOf(closes[n-min(30, n):])

	var change10 float64
	if n >= 10 && closes[n-10] != 0 {
		change10 = (current - closes[n-10]) / closes[n-10] * 100
	}

	var trend analysis.Trend
	var direction analysis.PatternDirection
	reliability := analysis.ReliabilityModerate

	switch {
	case current > avg10 && avg10 > avg30 && change10 > 5:
		trend = analysis.TrendStrongUp
		direction = analysis.PatternBullish
		reliability = analysis.ReliabilityHigh
	case current > avg10 && current > avg30:
		trend = analysis.TrendUp
		direction = analysis.PatternBullish
	case current < avg10 && avg10 < avg30 && change10 < -5:
		trend = analysis.TrendStrongDown
		direction = analysis.PatternBearish
		reliability = analysis.ReliabilityHigh
	case current < avg10 && current < avg30:
		trend = analysis.TrendDown
		direction = analysis.PatternBearish
	default:
		trend = analysis.TrendSideways
		direction = analysis.PatternNeutral
	}

	return analysis.Pattern{
		Type:        analysis.PatternTrend,
		Direction:   direction,
		Reliability: reliability,
		Description: fmt.Sprintf("%s (10-bar change %.1f%%)", trend, change10),
	}
}

// detectDoubleBottom looks for two matching lows at least five bars apart,
// confirmed by the current price trading 2% above the first low.
func detectDoubleBottom(lows []float64, current float64) (analysis.Pattern, bool) {
	if len(lows) < 10 {
		return analysis.Pattern{}, false
	}

	idx1 := minIndex(lows[:len(lows)-5])
	l1 := lows[idx1]
	if idx1+5 >= len(lows) || l1 <= 0 {
		return analysis.Pattern{}, false
	}

	idx2 := idx1 + 5 + minIndex(lows[idx1+5:])
	l2 := lows[idx2]

	diffPct := abs(l1-l2) / l1 * 100
	if diffPct >= 3 || current <= l1*1.02 {
		return analysis.Pattern{}, false
	}

	reliability := analysis.ReliabilityModerate
	if diffPct < 1.5 {
		reliability = analysis.ReliabilityHigh
	}

	return analysis.Pattern{
		Type:        analysis.PatternDoubleBottom,
		Direction:   analysis.PatternBullish,
		Reliability: reliability,
		Description: fmt.Sprintf("Double bottom: lows %.2f and %.2f (%.1f%% apart)", l1, l2, diffPct),
		Support:     minOf([]float64{l1, l2}),
	}, true
}

// detectDoubleTop is the bearish mirror of detectDoubleBottom.
func detectDoubleTop(highs []float64, current float64) (analysis.Pattern, bool) {
	if len(highs) < 10 {
		return analysis.Pattern{}, false
	}

	idx1 := maxIndex(highs[:len(highs)-5])
	h1 := highs[idx1]
	if idx1+5 >= len(highs) || h1 <= 0 {
		return analysis.Pattern{}, false
	}

	idx2 := idx1 + 5 + maxIndex(highs[idx1+5:])
	h2 := highs[idx2]

	diffPct := abs(h1-h2) / h1 * 100
	if diffPct >= 3 || current >= h1*0.98 {
		return analysis.Pattern{}, false
	}

	reliability := analysis.ReliabilityModerate
	if diffPct < 1.5 {
		reliability = analysis.ReliabilityHigh
	}

	return analysis.Pattern{
		Type:        analysis.PatternDoubleTop,
		Direction:   analysis.PatternBearish,
		Reliability: reliability,
		Description: fmt.Sprintf("Double top: highs %.2f and %.2f (%.1f%% apart)", h1, h2, diffPct),
		Resistance:  maxOf([]float64{h1, h2}),
	}, true
}

// detectTriangle looks for converging highs and lows with the window range
// shrinking below 70% of its initial range.
func detectTriangle(highs, lows []float64) (analysis.Pattern, bool) {
	n := len(highs)
	if n < 2 {
		return analysis.Pattern{}, false
	}

	highTrend := (highs[n-1] - highs[0]) / float64(n)
	lowTrend := (lows[n-1] - lows[0]) / float64(n)

	initialRange := highs[0] - lows[0]
	finalRange := highs[n-1] - lows[n-1]

	if highTrend < 0 && lowTrend > 0 && finalRange < initialRange*0.7 {
		return analysis.Pattern{
			Type:        analysis.PatternTriangle,
			Direction:   analysis.PatternNeutral,
			Reliability: analysis.ReliabilityModerate,
			Description: "Converging triangle: breakout watch",
		}, true
	}
	return analysis.Pattern{}, false
}

// detectRange reports a range-bound market when the window's total spread
// stays under 10%.
func detectRange(highs, lows []float64) (analysis.Pattern, bool) {
	maxHigh := maxOf(highs)
	minLow := minOf(lows)
	if minLow <= 0 {
		return analysis.Pattern{}, false
	}

	rangePct := (maxHigh - minLow) / minLow * 100
	if rangePct >= 10 {
		return analysis.Pattern{}, false
	}

	reliability := analysis.ReliabilityModerate
	if rangePct < 5 {
		reliability = analysis.ReliabilityHigh
	}

	return analysis.Pattern{
		Type:        analysis.PatternRange,
		Direction:   analysis.PatternNeutral,
		Reliability: reliability,
		Description: fmt.Sprintf("Range-bound within %.1f%%", rangePct),
		Support:     minLow,
		Resistance:  maxHigh,
	}, true
}
