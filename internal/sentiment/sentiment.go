// Package sentiment scores news headlines with keyword lists and
// aggregates them into an overall verdict. The default keyword sets target
// Korean financial headlines.
package sentiment

import "strings"

// Verdict buckets the aggregate headline sentiment.
type Verdict string

const (
	VeryPositive Verdict = "very_positive"
	Positive     Verdict = "positive"
	NeutralTone  Verdict = "neutral"
	Negative     Verdict = "negative"
	VeryNegative Verdict = "very_negative"
)

// HeadlineSentiment is the score for one headline.
type HeadlineSentiment struct {
	Title     string  `json:"title"`
	Score     int     `json:"score"`
	Sentiment Verdict `json:"sentiment"`
}

// Result aggregates headline sentiments.
type Result struct {
	Headlines       []HeadlineSentiment `json:"headlines"`
	PositiveCount   int                 `json:"positive_count"`
	NegativeCount   int                 `json:"negative_count"`
	NeutralCount    int                 `json:"neutral_count"`
	TotalScore      int                 `json:"total_score"`
	Overall         Verdict             `json:"overall"`
	PositivePercent float64             `json:"positive_percent"`
	NegativePercent float64             `json:"negative_percent"`
}

var defaultPositive = []string{
	"상승", "급등", "호재", "최고", "신고가", "흑자", "성장", "개선",
	"돌파", "수주", "계약", "호실적", "기대", "강세", "매수", "반등",
	"surge", "rally", "beat", "upgrade",
}

var defaultNegative = []string{
	"하락", "급락", "악재", "최저", "신저가", "적자", "부진", "우려",
	"하향", "손실", "약세", "매도", "리스크", "충격", "감소", "급감",
	"plunge", "miss", "downgrade", "lawsuit",
}

// Analyzer scores headlines against positive/negative keyword lists.
type Analyzer struct {
	positive []string
	negative []string
}

// NewAnalyzer creates an Analyzer; nil keyword lists use the defaults.
func NewAnalyzer(positive, negative []string) *Analyzer {
	if positive == nil {
		positive = defaultPositive
	}
	if negative == nil {
		negative = defaultNegative
	}
	return &Analyzer{positive: positive, negative: negative}
}

// Analyze scores every headline (+1 per positive keyword, -1 per negative)
// and buckets the net positive-minus-negative headline count.
func (a *Analyzer) Analyze(titles []string) Result {
	result := Result{Headlines: make([]HeadlineSentiment, 0, len(titles))}

	for _, title := range titles {
		score := a.scoreTitle(title)

		hs := HeadlineSentiment{Title: title, Score: score, Sentiment: NeutralTone}
		switch {
		case score > 0:
			hs.Sentiment = Positive
			result.PositiveCount++
		case score < 0:
			hs.Sentiment = Negative
			result.NegativeCount++
		default:
			result.NeutralCount++
		}
		result.Headlines = append(result.Headlines, hs)
	}

	result.TotalScore = result.PositiveCount - result.NegativeCount
	result.Overall = overallVerdict(result.TotalScore)

	if total := len(titles); total > 0 {
		result.PositivePercent = float64(result.PositiveCount) / float64(total) * 100
		result.NegativePercent = float64(result.NegativeCount) / float64(total) * 100
	}
	return result
}

func (a *Analyzer) scoreTitle(title string) int {
	score := 0
	for _, kw := range a.positive {
		if strings.Contains(title, kw) {
			score++
		}
	}
	for _, kw := range a.negative {
		if strings.Contains(title, kw) {
			score--
		}
	}
	return score
}

func overallVerdict(totalScore int) Verdict {
	switch {
	case totalScore >= 3:
		return VeryPositive
	case totalScore >= 1:
		return Positive
	case totalScore <= -3:
		return VeryNegative
	case totalScore <= -1:
		return Negative
	default:
		return NeutralTone
	}
}
