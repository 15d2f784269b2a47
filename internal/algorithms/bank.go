// Package algorithms implements the heuristic scoring functions that feed the
// ensemble combiner. Each algorithm is deterministic for a fixed Input; all
// simulated feature values arrive through the features provider.
package algorithms

import (
	"math"

	"github.com/fifapredict/scorecast/internal/features"
	"github.com/fifapredict/scorecast/internal/models"
)

// Input is the read-only view each algorithm scores against
type Input struct {
	Odds          []models.NormalizedOdds // sorted descending by probability
	Home          features.TeamFeatures
	Away          features.TeamFeatures
	Context       features.MatchContext
	History       []*models.Prediction // resolved predictions, oldest first
	ExtremeSignal bool                 // market distribution flags extreme scores
}

// Algorithm is one member of the heuristic bank
type Algorithm interface {
	Kind() models.AlgorithmKind
	BaseWeight() float64
	Predict(in Input) models.AlgorithmResult
}

// Bank returns the full algorithm bank in its canonical order. The order is
// load-bearing: the ensemble breaks cumulative-weight ties by first-seen
// position.
func Bank() []Algorithm {
	return []Algorithm{
		probabilityBased{},
		statistical{},
		marketSentiment{},
		patternRecognition{},
		realTimeContext{},
		neuralStyle{},
		extremeDetector{},
	}
}

// Run evaluates every algorithm in the bank against the input
func Run(in Input) []models.AlgorithmResult {
	bank := Bank()
	results := make([]models.AlgorithmResult, 0, len(bank))
	for _, a := range bank {
		results = append(results, a.Predict(in))
	}
	return results
}

const maxGoals = 7

func clampGoals(g int) int {
	if g < 0 {
		return 0
	}
	if g > maxGoals {
		return maxGoals
	}
	return g
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
