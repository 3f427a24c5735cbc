package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_KeywordScoring(t *testing.T) {
	analyzer := NewAnalyzer(nil, nil)
	result := analyzer.Analyze([]string{
		"삼성전자 주가 급등, 신고가 돌파",
		"실적 부진 우려에 하락",
		"보합세 마감",
	})

	require.Len(t, result.Headlines, 3)
	// Three positive keywords in the first headline.
	assert.Equal(t, 3, result.Headlines[0].Score)
	assert.Equal(t, Positive, result.Headlines[0].Sentiment)
	assert.Equal(t, -3, result.Headlines[1].Score)
	assert.Equal(t, Negative, result.Headlines[1].Sentiment)
	assert.Equal(t, 0, result.Headlines[2].Score)
	assert.Equal(t, NeutralTone, result.Headlines[2].Sentiment)

	assert.Equal(t, 1, result.PositiveCount)
	assert.Equal(t, 1, result.NegativeCount)
	assert.Equal(t, 1, result.NeutralCount)
	assert.Equal(t, 0, result.TotalScore)
	assert.Equal(t, NeutralTone, result.Overall)
	assert.InDelta(t, 33.333, result.PositivePercent, 0.01)
	assert.InDelta(t, 33.333, result.NegativePercent, 0.01)
}

func TestAnalyze_MixedKeywordsNetOut(t *testing.T) {
	analyzer := NewAnalyzer(nil, nil)
	result := analyzer.Analyze([]string{"상승 기대 속 리스크 우려"})

	// Two positive and two negative keywords cancel to neutral.
	assert.Equal(t, 0, result.Headlines[0].Score)
	assert.Equal(t, NeutralTone, result.Headlines[0].Sentiment)
}

func TestAnalyze_OverallVerdictBuckets(t *testing.T) {
	analyzer := NewAnalyzer(nil, nil)

	cases := []struct {
		titles  []string
		verdict Verdict
	}{
		{[]string{"surge", "rally", "beat"}, VeryPositive},
		{[]string{"surge"}, Positive},
		{[]string{"plunge"}, Negative},
		{[]string{"plunge", "miss", "lawsuit"}, VeryNegative},
		{[]string{"quarterly report published"}, NeutralTone},
	}
	for _, tc := range cases {
		result := analyzer.Analyze(tc.titles)
		assert.Equal(t, tc.verdict, result.Overall, "titles=%v", tc.titles)
	}
}

func TestAnalyze_CustomKeywords(t *testing.T) {
	analyzer := NewAnalyzer([]string{"moon"}, []string{"crash"})
	result := analyzer.Analyze([]string{"to the moon", "market crash"})

	assert.Equal(t, Positive, result.Headlines[0].Sentiment)
	assert.Equal(t, Negative, result.Headlines[1].Sentiment)
	assert.Equal(t, VeryNegative, overallVerdict(-3))
}

func TestAnalyze_EmptyInput(t *testing.T) {
	result := NewAnalyzer(nil, nil).Analyze(nil)
	assert.Empty(t, result.Headlines)
	assert.Equal(t, NeutralTone, result.Overall)
	assert.Zero(t, result.PositivePercent)
}
