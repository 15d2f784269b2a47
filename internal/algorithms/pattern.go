package algorithms

import (
	"math"

	"github.com/fifapredict/scorecast/internal/models"
)

// patternRecognition looks up the most frequent actual score among recent
// resolved predictions with a comparable strength differential, falling back
// to the statistical model when no usable history exists.
type patternRecognition struct{}

func (patternRecognition) Kind() models.AlgorithmKind { return models.AlgorithmPattern }

func (patternRecognition) BaseWeight() float64 { return 0.20 }

// historyWindow bounds how far back the pattern matcher looks
const historyWindow = 10

func (a patternRecognition) Predict(in Input) models.AlgorithmResult {
	tier := strengthTier(in.Home.OverallRating, in.Away.OverallRating)

	counts := make(map[string]int)
	order := make([]string, 0)
	examined := 0
	for i := len(in.History) - 1; i >= 0 && examined < historyWindow; i-- {
		p := in.History[i]
		if p == nil || p.ActualResult == nil || p.ActualResult.ActualScore == "" {
			continue
		}
		if p.RiskLevel != tier {
			continue
		}
		examined++
		score := p.ActualResult.ActualScore
		if _, seen := counts[score]; !seen {
			order = append(order, score)
		}
		counts[score]++
	}

	if examined == 0 {
		return statistical{}.fallbackResult(in, a.Kind(), a.BaseWeight())
	}

	best := order[0]
	for _, score := range order[1:] {
		if counts[score] > counts[best] {
			best = score
		}
	}

	return models.AlgorithmResult{
		Algorithm:  a.Kind(),
		Score:      best,
		Confidence: clamp01(float64(counts[best]) / float64(examined)),
		Weight:     a.BaseWeight(),
	}
}

// strengthTier buckets a fixture by strength gap using the same thresholds as
// the risk assessor, so "comparable differential" matches the stored risk tier.
func strengthTier(homeRating, awayRating float64) models.RiskLevel {
	gap := math.Abs(homeRating - awayRating)
	switch {
	case gap > 15:
		return models.RiskLow
	case gap > 5:
		return models.RiskMedium
	default:
		return models.RiskHigh
	}
}
