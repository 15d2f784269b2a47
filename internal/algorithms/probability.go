package algorithms

import (
	"github.com/fifapredict/scorecast/internal/models"
)

// probabilityBased picks from the top normalized entries, boosted by the ratio
// of the two teams' aggregate strength indices.
type probabilityBased struct{}

func (probabilityBased) Kind() models.AlgorithmKind { return models.AlgorithmProbability }

func (probabilityBased) BaseWeight() float64 { return 0.25 }

func (a probabilityBased) Predict(in Input) models.AlgorithmResult {
	if len(in.Odds) == 0 {
		return statistical{}.fallbackResult(in, a.Kind(), a.BaseWeight())
	}

	top := in.Odds
	if len(top) > 5 {
		top = top[:5]
	}

	ratio := 1.0
	if in.Away.OverallRating > 0 {
		ratio = in.Home.OverallRating / in.Away.OverallRating
	}

	best := top[0]
	bestAdjusted := adjustedProbability(top[0], ratio)
	for _, candidate := range top[1:] {
		if adj := adjustedProbability(candidate, ratio); adj > bestAdjusted {
			best = candidate
			bestAdjusted = adj
		}
	}

	return models.AlgorithmResult{
		Algorithm:  a.Kind(),
		Score:      best.Score,
		Confidence: clamp01(bestAdjusted / 100.0),
		Weight:     a.BaseWeight(),
	}
}

func adjustedProbability(entry models.NormalizedOdds, strengthRatio float64) float64 {
	return entry.NormalizedProbability * (1 + (strengthRatio-1)*0.3)
}
