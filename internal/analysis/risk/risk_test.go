package risk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocksignal/internal/analysis"
	apperrors "stocksignal/internal/errors"
)

func TestAssess_Golden(t *testing.T) {
	profile, err := Assess(100, 2)
	require.NoError(t, err)

	assert.InDelta(t, 2.0, profile.VolatilityPercent, 0.0001)
	assert.InDelta(t, 3.3, profile.DailyVaRPercent, 0.0001)
	assert.InDelta(t, 3.3*math.Sqrt(5), profile.WeeklyVaRPercent, 0.0001)
	assert.InDelta(t, 3.3, profile.DailyVaR, 0.0001)
	assert.InDelta(t, 96, profile.StopLoss, 0.0001)
	assert.InDelta(t, 4, profile.StopLossPercent, 0.0001)
	assert.InDelta(t, 106, profile.TargetPrice, 0.0001)
	assert.InDelta(t, 6, profile.TargetPercent, 0.0001)
	assert.Equal(t, analysis.RiskModerate, profile.Tier)
}

func TestAssess_TierBoundaries(t *testing.T) {
	cases := []struct {
		atr  float64
		tier analysis.RiskTier
	}{
		{1.0, analysis.RiskLow},
		{2.0, analysis.RiskModerate},
		{3.0, analysis.RiskHigh},
		{5.0, analysis.RiskVeryHigh},
	}
	for _, tc := range cases {
		profile, err := Assess(100, tc.atr)
		require.NoError(t, err)
		assert.Equal(t, tc.tier, profile.Tier, "atr=%v", tc.atr)
	}
}

func TestAssess_ZeroATR(t *testing.T) {
	profile, err := Assess(100, 0)
	require.NoError(t, err)
	assert.Zero(t, profile.VolatilityPercent)
	assert.InDelta(t, 100, profile.StopLoss, 0.0001)
	assert.Equal(t, analysis.RiskLow, profile.Tier)
}

func TestAssess_NonPositivePrice(t *testing.T) {
	_, err := Assess(0, 2)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = Assess(-10, 2)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
