// Package scoring combines technical, volume, market-cap, theme, and news
// inputs into a normalized 0-100 composite score, and maps scores onto
// discrete trading signals.
package scoring

import (
	"math"

	"stocksignal/internal/analysis"
	"stocksignal/internal/models"
)

// CapTier maps a minimum market cap to a tier score.
type CapTier struct {
	Min   float64
	Score int
}

// TierTable is an ordered list of cap tiers, highest minimum first.
type TierTable []CapTier

// Score returns the tier score for the given market cap.
func (t TierTable) Score(marketCap float64) int {
	for _, tier := range t {
		if marketCap >= tier.Min {
			return tier.Score
		}
	}
	if len(t) == 0 {
		return 0
	}
	return t[len(t)-1].Score
}

// Default market-cap tier tables. KR caps are in 억원, US caps in $M.
var (
	DefaultKRCapTiers = TierTable{
		{Min: 100000, Score: 15},
		{Min: 50000, Score: 12},
		{Min: 10000, Score: 9},
		{Min: 5000, Score: 6},
		{Min: 0, Score: 3},
	}
	DefaultUSCapTiers = TierTable{
		{Min: 1000000, Score: 15},
		{Min: 200000, Score: 13},
		{Min: 50000, Score: 11},
		{Min: 10000, Score: 9},
		{Min: 2000, Score: 6},
		{Min: 0, Score: 3},
	}
)

// CompositeInput carries everything the composite scorer consumes. Theme
// and News are optional; leaving them nil narrows the scaling denominator.
type CompositeInput struct {
	TechScore   float64 // 0-100 technical score
	Market      models.Market
	MarketCap   float64
	Price       float64
	MA20        float64
	MA60        float64
	VolumeRatio float64
	ChangeRate  float64 // daily % change
	Theme       *models.ThemeContext
	News        *models.NewsContext
}

// ScoreBreakdown is the composite score with every bounded sub-score,
// the presence flags, and the normalized 0-100 total.
type ScoreBreakdown struct {
	Technical   int  `json:"technical"`    // max 25
	MarketCap   int  `json:"market_cap"`   // max 15
	Volume      int  `json:"volume"`       // max 10
	Momentum    int  `json:"momentum"`     // max 10
	Change      int  `json:"change"`       // max 5
	ThemeChange int  `json:"theme_change"` // max 10
	ThemeRank   int  `json:"theme_rank"`   // max 10
	NewsCount   int  `json:"news_count"`   // max 10
	NewsRecency int  `json:"news_recency"` // max 5
	HasTheme    bool `json:"has_theme"`
	HasNews     bool `json:"has_news"`
	Total       int  `json:"total"`
	MaxPossible int  `json:"max_possible"`
	ScaledTotal int  `json:"scaled_total"` // 0-100
}

// Scorer computes composite scores using per-market cap tier tables.
type Scorer struct {
	krTiers TierTable
	usTiers TierTable
}

// NewScorer creates a Scorer. Nil tier tables fall back to the defaults.
func NewScorer(krTiers, usTiers TierTable) *Scorer {
	if krTiers == nil {
		krTiers = DefaultKRCapTiers
	}
	if usTiers == nil {
		usTiers = DefaultUSCapTiers
	}
	return &Scorer{krTiers: krTiers, usTiers: usTiers}
}

// tiersFor picks the tier table for a market; KR is the default.
func (s *Scorer) tiersFor(market models.Market) TierTable {
	if market == models.MarketUS {
		return s.usTiers
	}
	return s.krTiers
}

// Composite computes the full score breakdown for one instrument.
func (s *Scorer) Composite(in CompositeInput) ScoreBreakdown {
	b := ScoreBreakdown{
		Technical: int(math.Round(in.TechScore / 100 * 25)),
		MarketCap: s.tiersFor(in.Market).Score(in.MarketCap),
		Volume:    volumeRatioScore(in.VolumeRatio),
		Momentum:  momentumScore(in.Price, in.MA20, in.MA60),
		Change:    changeScore(in.ChangeRate),
	}

	if in.Theme != nil {
		b.HasTheme = true
		b.ThemeChange = themeChangeScore(in.Theme.ChangeRate)
		b.ThemeRank = themeRankScore(in.Theme.Rank)
	}
	if in.News != nil {
		b.HasNews = true
		b.NewsCount = newsCountScore(in.News.Count)
		b.NewsRecency = newsRecencyScore(in.News)
	}

	b.Total = b.Technical + b.MarketCap + b.Volume + b.Momentum + b.Change +
		b.ThemeChange + b.ThemeRank + b.NewsCount + b.NewsRecency

	b.MaxPossible = 65
	if b.HasTheme {
		b.MaxPossible += 20
	}
	if b.HasNews {
		b.MaxPossible += 15
	}

	b.ScaledTotal = int(math.Round(float64(b.Total) / float64(b.MaxPossible) * 100))
	return b
}

// SignalFromScore maps a 0-100 scaled composite score onto the discrete
// signal ladder.
func SignalFromScore(scaledTotal int) analysis.Signal {
	switch {
	case scaledTotal >= 80:
		return analysis.StrongBuy
	case scaledTotal >= 60:
		return analysis.Buy
	case scaledTotal >= 40:
		return analysis.Hold
	case scaledTotal >= 20:
		return analysis.Sell
	default:
		return analysis.StrongSell
	}
}

func volumeRatioScore(ratio float64) int {
	switch {
	case ratio >= 3.0:
		return 10
	case ratio >= 2.0:
		return 8
	case ratio >= 1.5:
		return 7
	case ratio >= 1.2:
		return 6
	case ratio >= 1.0:
		return 4
	case ratio >= 0.8:
		return 2
	default:
		return 0
	}
}

// momentumScore grades the price/MA20/MA60 ordering. It only applies when
// all three values are present and positive.
func momentumScore(price, ma20, ma60 float64) int {
	if price <= 0 || ma20 <= 0 || ma60 <= 0 {
		return 0
	}
	switch {
	case price > ma20 && ma20 > ma60:
		return 10
	case price > ma20 && price > ma60:
		return 8
	case price > ma20 || price > ma60:
		return 5
	default:
		return 0
	}
}

func changeScore(changeRate float64) int {
	switch {
	case changeRate >= 5:
		return 5
	case changeRate >= 3:
		return 4
	case changeRate >= 1:
		return 3
	case changeRate >= 0:
		return 2
	case changeRate >= -2:
		return 1
	default:
		return 0
	}
}

func themeChangeScore(changeRate float64) int {
	switch {
	case changeRate >= 5:
		return 10
	case changeRate >= 3:
		return 8
	case changeRate >= 2:
		return 6
	case changeRate >= 1:
		return 4
	case changeRate >= 0:
		return 2
	default:
		return 0
	}
}

func themeRankScore(rank int) int {
	switch {
	case rank <= 1:
		return 10
	case rank <= 3:
		return 8
	case rank <= 5:
		return 6
	case rank <= 10:
		return 4
	default:
		return 2
	}
}

func newsCountScore(count int) int {
	switch {
	case count >= 10:
		return 10
	case count >= 7:
		return 8
	case count >= 5:
		return 6
	case count >= 3:
		return 4
	case count >= 1:
		return 2
	default:
		return 0
	}
}

func newsRecencyScore(news *models.NewsContext) int {
	if news.HasToday {
		return 5
	}
	if news.HasYesterday {
		return 3
	}
	return 0
}
