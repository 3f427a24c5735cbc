// Package portfolio allocates weights across candidate instruments using
// inverse-volatility weighting adjusted by technical score.
package portfolio

import (
	"sort"

	apperrors "stocksignal/internal/errors"
)

// volatilityFloor keeps near-zero volatility from dominating the weights.
const volatilityFloor = 0.5

// Candidate is one instrument entering the optimizer.
type Candidate struct {
	Symbol     string  `json:"symbol"`
	Volatility float64 `json:"volatility"` // daily volatility %
	TechScore  float64 `json:"tech_score"` // 0-100
}

// Weight is the allocation assigned to one instrument.
type Weight struct {
	Symbol      string  `json:"symbol"`
	Volatility  float64 `json:"volatility"`
	TechScore   float64 `json:"tech_score"`
	BaseWeight  float64 `json:"base_weight"`  // % before the score adjustment
	FinalWeight float64 `json:"final_weight"` // % after renormalization
}

// Allocation is the optimizer output, sorted by final weight descending.
// Final weights sum to 100 up to rounding.
type Allocation struct {
	Weights             []Weight `json:"weights"`
	PortfolioVolatility float64  `json:"portfolio_volatility"`
	PortfolioScore      float64  `json:"portfolio_score"`
}

// Optimize computes inverse-volatility weights, tilts each by up to ±20%
// based on its technical score, and renormalizes to exactly 100%.
func Optimize(candidates []Candidate) (*Allocation, error) {
	if len(candidates) == 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "no candidates to optimize")
	}

	vols := make([]float64, len(candidates))
	var sumInverse float64
	for i, c := range candidates {
		v := c.Volatility
		if v <= 0 {
			v = 1
		}
		if v < volatilityFloor {
			v = volatilityFloor
		}
		vols[i] = v
		sumInverse += 1 / v
	}

	weights := make([]Weight, len(candidates))
	var sumAdjusted float64
	adjusted := make([]float64, len(candidates))
	for i, c := range candidates {
		base := (1 / vols[i]) / sumInverse * 100
		techAdjust := ((c.TechScore - 50) / 50) * 20
		adjusted[i] = base * (1 + techAdjust/100)
		sumAdjusted += adjusted[i]

		weights[i] = Weight{
			Symbol:     c.Symbol,
			Volatility: vols[i],
			TechScore:  c.TechScore,
			BaseWeight: base,
		}
	}

	alloc := &Allocation{Weights: weights}
	for i := range weights {
		final := adjusted[i] / sumAdjusted * 100
		weights[i].FinalWeight = final
		alloc.PortfolioVolatility += weights[i].Volatility * final / 100
		alloc.PortfolioScore += weights[i].TechScore * final / 100
	}

	sort.Slice(alloc.Weights, func(i, j int) bool {
		return alloc.Weights[i].FinalWeight > alloc.Weights[j].FinalWeight
	})
	return alloc, nil
}
