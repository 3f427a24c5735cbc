// Package recommend derives explicit buy/target/stop price levels and an
// entry-timing verdict from Bollinger Bands, support/resistance, RSI, and
// moving-average crossovers.
package recommend

import (
	"math"

	"stocksignal/internal/analysis"
	"stocksignal/internal/analysis/indicators"
	apperrors "stocksignal/internal/errors"
	"stocksignal/internal/models"
)

// MinBars is the minimum series length for a recommendation.
const MinBars = 60

// Recommendation is the price-level and timing output.
type Recommendation struct {
	CurrentPrice    float64               `json:"current_price"`
	BuyPrice        float64               `json:"buy_price"`
	TargetPrice     float64               `json:"target_price"`
	StopLoss        float64               `json:"stop_loss"`
	ExpectedReturn  float64               `json:"expected_return"`  // % from current to target
	RiskReturn      float64               `json:"risk_return"`      // % from current to stop
	RiskRewardRatio float64               `json:"risk_reward_ratio"`
	Timing          analysis.TimingAction `json:"timing"`
	Reasons         []string              `json:"reasons"`
	RSI             float64               `json:"rsi"`
	High20          float64               `json:"high20"`
	Low20           float64               `json:"low20"`
	High60          float64               `json:"high60"`
	Low60           float64               `json:"low60"`
	BollingerUpper  float64               `json:"bollinger_upper"`
	BollingerLower  float64               `json:"bollinger_lower"`
}

// timingRule is one entry-timing conditional.
type timingRule struct {
	action analysis.TimingAction
	reason string
	match  func(s *snapshot) bool
}

// ruleGroup pairs a buy rule with its sell counterpart. Within a group
// only the first match fires; across groups each match overwrites the
// verdict, so the last matching group wins. Every matched reason is
// retained.
type ruleGroup []timingRule

type snapshot struct {
	price    float64
	rsi      float64
	bbUpper  float64
	bbLower  float64
	ma5Cur   float64
	ma5Prev  float64
	ma20Cur  float64
	ma20Prev float64
}

var timingRules = []ruleGroup{
	{
		{analysis.ActionBuy, "RSI oversold", func(s *snapshot) bool { return s.rsi < 30 }},
		{analysis.ActionSell, "RSI overbought", func(s *snapshot) bool { return s.rsi > 70 }},
	},
	{
		{analysis.ActionBuy, "Price near lower Bollinger band", func(s *snapshot) bool { return s.price <= s.bbLower*1.02 }},
		{analysis.ActionSell, "Price near upper Bollinger band", func(s *snapshot) bool { return s.price >= s.bbUpper*0.98 }},
	},
	{
		{analysis.ActionBuy, "5/20 moving average golden cross", func(s *snapshot) bool {
			return s.ma5Prev < s.ma20Prev && s.ma5Cur > s.ma20Cur
		}},
		{analysis.ActionSell, "5/20 moving average dead cross", func(s *snapshot) bool {
			return s.ma5Prev > s.ma20Prev && s.ma5Cur < s.ma20Cur
		}},
	},
}

// Recommend computes the buy/target/stop levels and timing verdict. It
// fails fast below MinBars and on a non-positive latest close.
func Recommend(candles []models.Candle) (*Recommendation, error) {
	if len(candles) < MinBars {
		return nil, apperrors.Wrapf(apperrors.ErrInsufficientData,
			"recommendation needs %d bars, got %d", MinBars, len(candles))
	}

	n := len(candles)
	price := candles[n-1].Close
	if price <= 0 {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidInput, "current price %.4f", price)
	}

	closes := make([]float64, n)
	for i, c := range candles {
		closes[i] = c.Close
	}

	rsiValues, err := indicators.NewRSI(14).Calculate(candles)
	if err != nil {
		return nil, err
	}
	bb, err := indicators.NewBollingerBands(20, 2.0).Calculate(candles)
	if err != nil {
		return nil, err
	}

	s := &snapshot{
		price:    price,
		rsi:      rsiValues[n-1],
		bbUpper:  bb["upper"][n-1],
		bbLower:  bb["lower"][n-1],
		ma5Cur:   meanOf(closes[n-5:]),
		ma5Prev:  meanOf(closes[n-6 : n-1]),
		ma20Cur:  meanOf(closes[n-20:]),
		ma20Prev: meanOf(closes[n-21 : n-1]),
	}

	high20, low20 := rangeOf(candles[n-20:])
	high60, low60 := rangeOf(candles[n-60:])

	buy := roundTo(math.Max(s.bbLower, low20*0.99), 2)
	target := roundTo(math.Min(s.bbUpper, high20*1.01), 2)
	stop := roundTo(buy*0.95, 2)

	expectedReturn := (target - price) / price * 100
	riskReturn := (price - stop) / price * 100

	var ratio float64
	if riskReturn != 0 {
		ratio = math.Abs(expectedReturn) / math.Abs(riskReturn)
	}

	timing := analysis.ActionWait
	reasons := []string{}
	for _, group := range timingRules {
		for _, rule := range group {
			if rule.match(s) {
				timing = rule.action
				reasons = append(reasons, rule.reason)
				break
			}
		}
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "No clear entry signal: wait")
	}

	return &Recommendation{
		CurrentPrice:    price,
		BuyPrice:        buy,
		TargetPrice:     target,
		StopLoss:        stop,
		ExpectedReturn:  roundTo(expectedReturn, 2),
		RiskReturn:      roundTo(riskReturn, 2),
		RiskRewardRatio: roundTo(ratio, 2),
		Timing:          timing,
		Reasons:         reasons,
		RSI:             roundTo(s.rsi, 1),
		High20:          high20,
		Low20:           low20,
		High60:          high60,
		Low60:           low60,
		BollingerUpper:  roundTo(s.bbUpper, 2),
		BollingerLower:  roundTo(s.bbLower, 2),
	}, nil
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var total float64
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

// rangeOf returns the highest high and lowest low of the candles.
func rangeOf(candles []models.Candle) (high, low float64) {
	high = candles[0].High
	low = candles[0].Low
	for _, c := range candles[1:] {
		if c.High > high {
			high = c.High
		}
		if c.Low < low {
			low = c.Low
		}
	}
	return high, low
}

func roundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
