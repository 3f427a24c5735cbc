package patterns

import (
	"math"
	"sort"

	"stocksignal/internal/analysis"
	"stocksignal/internal/models"
)

// ScannerConfig tunes the whole-series double top/bottom search.
type ScannerConfig struct {
	Lookback      int     // bars on each side required for a strict extremum
	MinDistance   int     // minimum bars between the matched extrema
	MaxDistance   int     // maximum bars between the matched extrema
	Tolerance     float64 // max relative difference between the two peaks/troughs
	MinDepth      float64 // minimum relative reversal depth at the middle extremum
	MinConfidence int     // matches below this confidence are dropped
	MaxResults    int     // cap on returned matches
}

// DefaultScannerConfig returns the standard scan parameters.
func DefaultScannerConfig() ScannerConfig {
	return ScannerConfig{
		Lookback:      5,
		MinDistance:   10,
		MaxDistance:   50,
		Tolerance:     0.02,
		MinDepth:      0.03,
		MinConfidence: 70,
		MaxResults:    5,
	}
}

// ScanMatch is one double top/bottom structure found by the scanner.
type ScanMatch struct {
	Type        analysis.PatternType `json:"type"`
	StartIndex  int                  `json:"start_index"`
	FirstIndex  int                  `json:"first_index"`
	FirstPrice  float64              `json:"first_price"`
	MiddleIndex int                  `json:"middle_index"`
	MiddlePrice float64              `json:"middle_price"`
	SecondIndex int                  `json:"second_index"`
	SecondPrice float64              `json:"second_price"`
	EndIndex    int                  `json:"end_index"`
	Confidence  int                  `json:"confidence"`
	TargetPrice float64              `json:"target_price"`
}

// Scanner searches an entire close series for double top/bottom
// structures. The nested extremum search is cubic in series length, which
// stays cheap at the window sizes scanned here (a few hundred bars); note
// that the confidence of overlapping structures depends on the scan order
// selecting earlier extrema first.
type Scanner struct {
	cfg ScannerConfig
}

// NewScanner creates a Scanner with the given configuration.
func NewScanner(cfg ScannerConfig) *Scanner {
	if cfg.Lookback <= 0 {
		cfg = DefaultScannerConfig()
	}
	return &Scanner{cfg: cfg}
}

// ScanDoubleTops searches the full series for peak-valley-peak structures.
func (s *Scanner) ScanDoubleTops(candles []models.Candle) []ScanMatch {
	return s.scan(candles, true)
}

// ScanDoubleBottoms searches the full series for valley-peak-valley structures.
func (s *Scanner) ScanDoubleBottoms(candles []models.Candle) []ScanMatch {
	return s.scan(candles, false)
}

func (s *Scanner) scan(candles []models.Candle, tops bool) []ScanMatch {
	cfg := s.cfg
	prices := make([]float64, len(candles))
	for i, c := range candles {
		prices[i] = c.Close
	}
	n := len(prices)
	if n < cfg.MinDistance*2+cfg.Lookback*2 {
		return nil
	}

	first, middle := s.isPeak, s.isValley
	patternType := analysis.PatternDoubleTop
	if !tops {
		first, middle = s.isValley, s.isPeak
		patternType = analysis.PatternDoubleBottom
	}

	var matches []ScanMatch
	for i := cfg.Lookback; i < n-cfg.Lookback; i++ {
		if !first(prices, i) {
			continue
		}
		jMax := min(i+cfg.MaxDistance, n-cfg.MinDistance)
		for j := i + cfg.MinDistance; j < jMax; j++ {
			if !middle(prices, j) {
				continue
			}
			kMax := min(j+cfg.MaxDistance, n-cfg.Lookback)
			for k := j + cfg.MinDistance; k < kMax; k++ {
				if !first(prices, k) {
					continue
				}
				if m, ok := s.match(prices, i, j, k, patternType); ok {
					matches = append(matches, m)
				}
			}
		}
	}

	sort.Slice(matches, func(a, b int) bool {
		return matches[a].Confidence > matches[b].Confidence
	})
	if len(matches) > cfg.MaxResults {
		matches = matches[:cfg.MaxResults]
	}
	return matches
}

// match validates one candidate triple and scores its confidence from the
// closeness of the two outer extrema and the depth of the reversal.
func (s *Scanner) match(prices []float64, i, j, k int, patternType analysis.PatternType) (ScanMatch, bool) {
	cfg := s.cfg
	p1, mid, p2 := prices[i], prices[j], prices[k]
	if p1 <= 0 {
		return ScanMatch{}, false
	}

	priceDiff := abs(p1-p2) / p1
	if priceDiff > cfg.Tolerance {
		return ScanMatch{}, false
	}

	var depth float64
	if patternType == analysis.PatternDoubleTop {
		depth = (p1 - mid) / p1
	} else {
		depth = (mid - p1) / p1
	}
	if depth < cfg.MinDepth {
		return ScanMatch{}, false
	}

	confidence := int(math.Round((1-priceDiff/cfg.Tolerance)*50 + math.Min(depth/0.10, 1)*50))
	if confidence < cfg.MinConfidence {
		return ScanMatch{}, false
	}

	var target float64
	if patternType == analysis.PatternDoubleTop {
		target = mid - (p1 - mid)
	} else {
		target = mid + (mid - p1)
	}

	return ScanMatch{
		Type:        patternType,
		StartIndex:  i,
		FirstIndex:  i,
		FirstPrice:  p1,
		MiddleIndex: j,
		MiddlePrice: mid,
		SecondIndex: k,
		SecondPrice: p2,
		EndIndex:    k,
		Confidence:  confidence,
		TargetPrice: target,
	}, true
}

// isPeak reports a strict local maximum against the lookback bars on both
// sides. Edge indices never qualify.
func (s *Scanner) isPeak(prices []float64, i int) bool {
	if i < s.cfg.Lookback || i >= len(prices)-s.cfg.Lookback {
		return false
	}
	for d := 1; d <= s.cfg.Lookback; d++ {
		if prices[i] <= prices[i-d] || prices[i] <= prices[i+d] {
			return false
		}
	}
	return true
}

// isValley reports a strict local minimum against the lookback bars on
// both sides.
func (s *Scanner) isValley(prices []float64, i int) bool {
	if i < s.cfg.Lookback || i >= len(prices)-s.cfg.Lookback {
		return false
	}
	for d := 1; d <= s.cfg.Lookback; d++ {
		if prices[i] >= prices[i-d] || prices[i] >= prices[i+d] {
			return false
		}
	}
	return true
}
