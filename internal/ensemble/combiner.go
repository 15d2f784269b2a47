// Package ensemble combines the algorithm bank's candidate scores into a
// single prediction via a dynamically weighted plurality vote.
package ensemble

import (
	"math"

	"github.com/fifapredict/scorecast/internal/models"
)

// Universal fallback applied whenever an odds-consuming step receives no
// valid input.
const (
	FallbackScore      = "1-1"
	FallbackConfidence = 45
)

// Dynamic weight bounds per algorithm
const (
	minAlgorithmWeight = 0.05
	maxAlgorithmWeight = 0.40
)

// Bounds on the situational nudge applied per algorithm
const (
	minContextAdjustment = 0.9
	maxContextAdjustment = 1.1
)

// WeightState carries the only persistent learning in the system: per-algorithm
// performance multipliers recomputed by the statistics aggregator. A nil or
// empty state means every algorithm runs at its neutral 1.0 multiplier.
type WeightState struct {
	PerformanceMultipliers map[models.AlgorithmKind]float64
}

// NewWeightState returns a state with no history, all multipliers neutral
func NewWeightState() WeightState {
	return WeightState{PerformanceMultipliers: make(map[models.AlgorithmKind]float64)}
}

func (s WeightState) multiplier(kind models.AlgorithmKind) float64 {
	if s.PerformanceMultipliers == nil {
		return 1.0
	}
	if m, ok := s.PerformanceMultipliers[kind]; ok && m > 0 {
		return m
	}
	return 1.0
}

// ContextAdjuster supplies the bounded situational nudge for an algorithm.
// Implementations outside the bounds are clamped.
type ContextAdjuster func(kind models.AlgorithmKind) float64

// NeutralContext applies no situational nudge
func NeutralContext(models.AlgorithmKind) float64 { return 1.0 }

// VoteGroup is the cumulative weight behind one candidate score
type VoteGroup struct {
	Score            string
	CumulativeWeight float64
	Supporters       []models.AlgorithmKind
}

// Outcome is the combined ensemble result before calibration
type Outcome struct {
	Score         string
	RawConfidence float64 // weighted mean of algorithm confidences, [0,1]
	WinningShare  float64 // fraction of total weight behind the winning score
	Groups        []VoteGroup
	Weighted      []models.AlgorithmResult // inputs with dynamic weights applied
}

// Combine applies dynamic weights and selects the score with the highest
// cumulative weight. Ties resolve by group insertion order so repeated runs
// over the same inputs produce identical output.
func Combine(results []models.AlgorithmResult, state WeightState, adjust ContextAdjuster) Outcome {
	if len(results) == 0 {
		return Outcome{Score: FallbackScore, RawConfidence: float64(FallbackConfidence) / 100.0}
	}
	if adjust == nil {
		adjust = NeutralContext
	}

	weighted := make([]models.AlgorithmResult, len(results))
	groups := make([]VoteGroup, 0, len(results))
	index := make(map[string]int, len(results))

	totalWeight := 0.0
	confidenceSum := 0.0

	for i, r := range results {
		context := math.Max(minContextAdjustment, math.Min(maxContextAdjustment, adjust(r.Algorithm)))
		w := r.Weight * state.multiplier(r.Algorithm) * context
		w = math.Max(minAlgorithmWeight, math.Min(maxAlgorithmWeight, w))

		weighted[i] = r
		weighted[i].Weight = w

		totalWeight += w
		confidenceSum += r.Confidence * w

		if gi, ok := index[r.Score]; ok {
			groups[gi].CumulativeWeight += w
			groups[gi].Supporters = append(groups[gi].Supporters, r.Algorithm)
		} else {
			index[r.Score] = len(groups)
			groups = append(groups, VoteGroup{
				Score:            r.Score,
				CumulativeWeight: w,
				Supporters:       []models.AlgorithmKind{r.Algorithm},
			})
		}
	}

	winner := groups[0]
	for _, g := range groups[1:] {
		if g.CumulativeWeight > winner.CumulativeWeight {
			winner = g
		}
	}

	out := Outcome{
		Score:    winner.Score,
		Groups:   groups,
		Weighted: weighted,
	}
	if totalWeight > 0 {
		out.RawConfidence = confidenceSum / totalWeight
		out.WinningShare = winner.CumulativeWeight / totalWeight
	}
	return out
}
