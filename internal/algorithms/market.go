package algorithms

import (
	"math"

	"github.com/fifapredict/scorecast/internal/models"
)

// marketSentiment takes the single lowest-coefficient entry as the favorite.
type marketSentiment struct{}

func (marketSentiment) Kind() models.AlgorithmKind { return models.AlgorithmMarket }

func (marketSentiment) BaseWeight() float64 { return 0.15 }

func (a marketSentiment) Predict(in Input) models.AlgorithmResult {
	if len(in.Odds) == 0 {
		return statistical{}.fallbackResult(in, a.Kind(), a.BaseWeight())
	}

	favorite := in.Odds[0]
	for _, candidate := range in.Odds[1:] {
		if candidate.Coefficient < favorite.Coefficient {
			favorite = candidate
		}
	}

	return models.AlgorithmResult{
		Algorithm:  a.Kind(),
		Score:      favorite.Score,
		Confidence: math.Min(0.9, 1.0/favorite.Coefficient),
		Weight:     a.BaseWeight(),
	}
}
