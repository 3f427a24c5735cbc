package scoring

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"stocksignal/internal/models"
)

func compositeInputGen() gopter.Gen {
	return gopter.CombineGens(
		gen.Float64Range(0, 100),       // tech score
		gen.Float64Range(0, 2000000),   // market cap
		gen.Float64Range(1, 1000),      // price
		gen.Float64Range(1, 1000),      // ma20
		gen.Float64Range(1, 1000),      // ma60
		gen.Float64Range(0, 5),         // volume ratio
		gen.Float64Range(-15, 15),      // change rate
		gen.Bool(),                     // KR or US
		gen.Bool(),                     // has theme
		gen.Bool(),                     // has news
	).Map(func(vals []interface{}) CompositeInput {
		in := CompositeInput{
			TechScore:   vals[0].(float64),
			MarketCap:   vals[1].(float64),
			Price:       vals[2].(float64),
			MA20:        vals[3].(float64),
			MA60:        vals[4].(float64),
			VolumeRatio: vals[5].(float64),
			ChangeRate:  vals[6].(float64),
			Market:      models.MarketKR,
		}
		if vals[7].(bool) {
			in.Market = models.MarketUS
		}
		if vals[8].(bool) {
			in.Theme = &models.ThemeContext{ChangeRate: in.ChangeRate, Rank: int(in.VolumeRatio*3) + 1}
		}
		if vals[9].(bool) {
			in.News = &models.NewsContext{Count: int(in.VolumeRatio * 2), HasToday: vals[7].(bool)}
		}
		return in
	})
}

func TestProperty_ScaledTotalWithinBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)
	scorer := NewScorer(nil, nil)

	properties.Property("scaled composite score is within [0, 100]", prop.ForAll(
		func(in CompositeInput) bool {
			b := scorer.Composite(in)
			return b.ScaledTotal >= 0 && b.ScaledTotal <= 100
		},
		compositeInputGen(),
	))

	properties.Property("total never exceeds the declared maximum", prop.ForAll(
		func(in CompositeInput) bool {
			b := scorer.Composite(in)
			return b.Total <= b.MaxPossible
		},
		compositeInputGen(),
	))

	properties.Property("presence flags set the denominator", prop.ForAll(
		func(in CompositeInput) bool {
			b := scorer.Composite(in)
			want := 65
			if b.HasTheme {
				want += 20
			}
			if b.HasNews {
				want += 15
			}
			return b.MaxPossible == want
		},
		compositeInputGen(),
	))

	properties.TestingRun(t)
}

func TestProperty_ClassifyConfidenceWithinBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("confidence stays within [0, 100]", prop.ForAll(
		func(tech, fund float64) bool {
			result := Classify(tech, nil, fund, nil, nil)
			return result.Confidence >= 0 && result.Confidence <= 100
		},
		gen.Float64Range(0, 100),
		gen.Float64Range(0, 100),
	))

	properties.TestingRun(t)
}
