package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stocksignal/internal/analysis"
	"stocksignal/internal/models"
)

func TestTierTable_Score(t *testing.T) {
	assert.Equal(t, 15, DefaultKRCapTiers.Score(150000))
	assert.Equal(t, 12, DefaultKRCapTiers.Score(60000))
	assert.Equal(t, 3, DefaultKRCapTiers.Score(100))
	assert.Equal(t, 13, DefaultUSCapTiers.Score(300000))
	assert.Equal(t, 0, TierTable{}.Score(1000))
}

func TestComposite_TechnicalOnlyNarrowsDenominator(t *testing.T) {
	scorer := NewScorer(nil, nil)
	b := scorer.Composite(CompositeInput{
		TechScore:   80,
		Market:      models.MarketKR,
		MarketCap:   60000,
		Price:       110,
		MA20:        105,
		MA60:        100,
		VolumeRatio: 2.5,
		ChangeRate:  3.5,
	})

	assert.Equal(t, 20, b.Technical)
	assert.Equal(t, 12, b.MarketCap)
	assert.Equal(t, 8, b.Volume)
	assert.Equal(t, 10, b.Momentum)
	assert.Equal(t, 4, b.Change)
	assert.False(t, b.HasTheme)
	assert.False(t, b.HasNews)
	assert.Equal(t, 54, b.Total)
	assert.Equal(t, 65, b.MaxPossible)
	assert.Equal(t, 83, b.ScaledTotal)
}

func TestComposite_ThemeAndNewsWidenDenominator(t *testing.T) {
	scorer := NewScorer(nil, nil)
	in := CompositeInput{
		TechScore:   80,
		Market:      models.MarketKR,
		MarketCap:   60000,
		Price:       110,
		MA20:        105,
		MA60:        100,
		VolumeRatio: 2.5,
		ChangeRate:  3.5,
	}

	in.Theme = &models.ThemeContext{Name: "Semis", ChangeRate: 5, Rank: 1}
	withTheme := scorer.Composite(in)
	assert.Equal(t, 10, withTheme.ThemeChange)
	assert.Equal(t, 10, withTheme.ThemeRank)
	assert.Equal(t, 85, withTheme.MaxPossible)
	assert.Equal(t, 87, withTheme.ScaledTotal)

	in.News = &models.NewsContext{Count: 10, HasToday: true}
	full := scorer.Composite(in)
	assert.Equal(t, 10, full.NewsCount)
	assert.Equal(t, 5, full.NewsRecency)
	assert.Equal(t, 100, full.MaxPossible)
	assert.Equal(t, 89, full.Total)
	assert.Equal(t, 89, full.ScaledTotal)
}

func TestComposite_USMarketUsesUSTiers(t *testing.T) {
	scorer := NewScorer(nil, nil)
	b := scorer.Composite(CompositeInput{
		TechScore: 50,
		Market:    models.MarketUS,
		MarketCap: 300000,
	})
	assert.Equal(t, 13, b.MarketCap)
}

func TestSignalFromScore_Ladder(t *testing.T) {
	assert.Equal(t, analysis.StrongBuy, SignalFromScore(80))
	assert.Equal(t, analysis.Buy, SignalFromScore(60))
	assert.Equal(t, analysis.Hold, SignalFromScore(40))
	assert.Equal(t, analysis.Sell, SignalFromScore(20))
	assert.Equal(t, analysis.StrongSell, SignalFromScore(19))
}

func TestClassify_LadderAndConfidence(t *testing.T) {
	cases := []struct {
		name       string
		tech       float64
		fund       float64
		signal     analysis.Signal
		confidence float64
	}{
		{"strong buy caps at 95", 100, 100, analysis.StrongBuy, 95},
		{"strong buy uses composite", 90, 80, analysis.StrongBuy, 86},
		{"buy", 65, 60, analysis.Buy, 63},
		{"hold peaks at midpoint", 50, 50, analysis.Hold, 100},
		{"hold decays away from midpoint", 45, 45, analysis.Hold, 90},
		{"sell", 30, 30, analysis.Sell, 70},
		{"strong sell caps at 95", 0, 0, analysis.StrongSell, 95},
		{"strong sell uses inverse", 10, 10, analysis.StrongSell, 90},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := Classify(tc.tech, nil, tc.fund, nil, nil)
			assert.Equal(t, tc.signal, result.Signal)
			assert.InDelta(t, tc.confidence, result.Confidence, 0.0001)
		})
	}
}

func TestClassify_ReasonsTruncatedAndRiskQuoted(t *testing.T) {
	techSignals := []string{"a", "b", "c", "d", "e"}
	fundReasons := []string{"x", "y", "z"}
	risk := &RiskHint{StopLoss: 96, Target: 106}

	result := Classify(80, techSignals, 70, fundReasons, risk)
	assert.Equal(t, analysis.StrongBuy, result.Signal)
	assert.Equal(t, []string{
		"a", "b", "c", "x", "y",
		"Stop-loss: 96.00", "Target: 106.00",
	}, result.Reasons)
}

func TestClassify_RiskNotQuotedOnHold(t *testing.T) {
	result := Classify(50, nil, 50, nil, &RiskHint{StopLoss: 96, Target: 106})
	assert.Equal(t, analysis.Hold, result.Signal)
	assert.Empty(t, result.Reasons)
}

func TestAnalyzeTiming_BullishStack(t *testing.T) {
	prev := 0.1
	result := AnalyzeTiming(TimingInput{
		RSI:           25,
		MACDLine:      1.0,
		MACDSignal:    0.8,
		MACDHistogram: 0.2,
		PrevHistogram: &prev,
		Price:         110,
		MA20:          105,
		MA60:          100,
		VolumeRatio:   2.5,
		ChangeRate:    3.5,
	})

	assert.InDelta(t, 10, result.Score, 0.0001)
	assert.Equal(t, analysis.TimingStrongBuy, result.Verdict)
	assert.Len(t, result.BuySignals, 7)
	assert.Empty(t, result.SellSignals)
}

func TestAnalyzeTiming_BearishStack(t *testing.T) {
	prev := -0.1
	result := AnalyzeTiming(TimingInput{
		RSI:           75,
		MACDLine:      -1.0,
		MACDSignal:    -0.8,
		MACDHistogram: -0.2,
		PrevHistogram: &prev,
		Price:         90,
		MA20:          95,
		MA60:          100,
		VolumeRatio:   1.0,
		ChangeRate:    -4,
	})

	assert.InDelta(t, -9, result.Score, 0.0001)
	assert.Equal(t, analysis.TimingStrongSell, result.Verdict)
	assert.Empty(t, result.BuySignals)
	assert.Len(t, result.SellSignals, 6)
}

func TestAnalyzeTiming_AlignmentRulesStackIndependently(t *testing.T) {
	// Full bullish alignment satisfies both moving-average rules, so a
	// neutral RSI plus a MACD cross is already a strong buy.
	result := AnalyzeTiming(TimingInput{
		RSI:           50,
		MACDLine:      1.0,
		MACDSignal:    0.5,
		MACDHistogram: 0.5,
		Price:         110,
		MA20:          105,
		MA60:          100,
		VolumeRatio:   1.0,
	})

	assert.InDelta(t, 5, result.Score, 0.0001)
	assert.Equal(t, analysis.TimingStrongBuy, result.Verdict)
	assert.Contains(t, result.BuySignals, "Bullish moving average alignment")
	assert.Contains(t, result.BuySignals, "Price above both moving averages")
}

func TestAnalyzeTiming_NeutralIsWatch(t *testing.T) {
	result := AnalyzeTiming(TimingInput{
		RSI:           50,
		MACDLine:      0.1,
		MACDSignal:    0.2,
		MACDHistogram: 0.05,
		VolumeRatio:   1.0,
	})
	assert.InDelta(t, 0, result.Score, 0.0001)
	assert.Equal(t, analysis.TimingWatch, result.Verdict)
}

func TestAnalyzeTiming_HalfPointVolumeRule(t *testing.T) {
	result := AnalyzeTiming(TimingInput{RSI: 50, VolumeRatio: 1.5})
	assert.InDelta(t, 0.5, result.Score, 0.0001)
	assert.Equal(t, analysis.TimingWatch, result.Verdict)
	assert.Contains(t, result.BuySignals, "Volume picking up")
}

func TestFundamentalScore(t *testing.T) {
	score, reasons := FundamentalScore(nil)
	assert.Equal(t, 50, score)
	assert.Empty(t, reasons)

	score, reasons = FundamentalScore(&models.Fundamentals{PER: 8, PBR: 0.8})
	assert.Equal(t, 80, score)
	assert.Len(t, reasons, 2)

	score, _ = FundamentalScore(&models.Fundamentals{PER: 35, PBR: 3})
	assert.Equal(t, 35, score)

	// Zero ratios are treated as unavailable and skipped.
	score, reasons = FundamentalScore(&models.Fundamentals{PER: 0, PBR: 1.5})
	assert.Equal(t, 55, score)
	assert.Len(t, reasons, 1)
}
