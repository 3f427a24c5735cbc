package scoring

import (
	"fmt"

	"stocksignal/internal/models"
)

// FundamentalScore grades valuation ratios into a 0-100 score starting
// from a neutral 50. Ratios that are zero or negative are skipped as
// unavailable.
func FundamentalScore(f *models.Fundamentals) (int, []string) {
	score := 50.0
	reasons := []string{}

	if f == nil {
		return int(score), reasons
	}

	if f.PER > 0 {
		switch {
		case f.PER < 10:
			score += 15
			reasons = append(reasons, fmt.Sprintf("Low PER %.1f: undervalued", f.PER))
		case f.PER < 20:
			score += 5
			reasons = append(reasons, fmt.Sprintf("Reasonable PER %.1f", f.PER))
		case f.PER < 30:
			score -= 5
			reasons = append(reasons, fmt.Sprintf("Elevated PER %.1f", f.PER))
		default:
			score -= 10
			reasons = append(reasons, fmt.Sprintf("High PER %.1f: overvalued", f.PER))
		}
	}

	if f.PBR > 0 {
		switch {
		case f.PBR < 1:
			score += 15
			reasons = append(reasons, fmt.Sprintf("PBR %.2f below book value", f.PBR))
		case f.PBR < 2:
			score += 5
			reasons = append(reasons, fmt.Sprintf("Moderate PBR %.2f", f.PBR))
		default:
			score -= 5
			reasons = append(reasons, fmt.Sprintf("High PBR %.2f", f.PBR))
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return int(score), reasons
}
