// Package risk derives volatility, parametric VaR, and stop/target levels
// from the latest price and ATR.
package risk

import (
	"math"

	"stocksignal/internal/analysis"
	apperrors "stocksignal/internal/errors"
)

// zScore95 is the one-tailed 95% z-score used for parametric VaR.
const zScore95 = 1.65

// Profile is the risk assessment for one instrument.
type Profile struct {
	VolatilityPercent float64           `json:"volatility_percent"`
	DailyVaRPercent   float64           `json:"daily_var_percent"`
	WeeklyVaRPercent  float64           `json:"weekly_var_percent"`
	DailyVaR          float64           `json:"daily_var"`
	WeeklyVaR         float64           `json:"weekly_var"`
	StopLoss          float64           `json:"stop_loss"`
	StopLossPercent   float64           `json:"stop_loss_percent"`
	TargetPrice       float64           `json:"target_price"`
	TargetPercent     float64           `json:"target_percent"`
	Tier              analysis.RiskTier `json:"tier"`
}

// Assess computes the risk profile from price and ATR. A non-positive
// price is an input fault, not a silent zero.
func Assess(price, atr float64) (*Profile, error) {
	if price <= 0 {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidInput, "price must be positive, got %.4f", price)
	}

	vol := atr / price * 100
	dailyVaRPct := vol * zScore95
	weeklyVaRPct := dailyVaRPct * math.Sqrt(5)

	stop := price - atr*2
	target := price + atr*3

	return &Profile{
		VolatilityPercent: vol,
		DailyVaRPercent:   dailyVaRPct,
		WeeklyVaRPercent:  weeklyVaRPct,
		DailyVaR:          price * dailyVaRPct / 100,
		WeeklyVaR:         price * weeklyVaRPct / 100,
		StopLoss:          stop,
		StopLossPercent:   (price - stop) / price * 100,
		TargetPrice:       target,
		TargetPercent:     (target - price) / price * 100,
		Tier:              tierFor(vol),
	}, nil
}

func tierFor(volatilityPercent float64) analysis.RiskTier {
	switch {
	case volatilityPercent >= 5:
		return analysis.RiskVeryHigh
	case volatilityPercent >= 3:
		return analysis.RiskHigh
	case volatilityPercent >= 2:
		return analysis.RiskModerate
	default:
		return analysis.RiskLow
	}
}
