// Package odds converts exact-score betting coefficients into calibrated
// probabilities and derives scoreline features.
package odds

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fifapredict/scorecast/internal/models"
)

// Empirical thresholds carried over from the original market model. They are
// overridable through the engine configuration; these are the defaults.
const (
	extremeSideGoals     = 5
	attackingTotalGoals  = 6
	defensiveTotalGoals  = 2
	unbalancedDifference = 3

	// Goal counts at or above this level are treated as market noise
	noiseGoalCount = 7

	extremeBoost = 1.3
	noiseDamp    = 0.7

	// Share of implied probability on extreme scorelines above which the
	// distribution is considered to carry an extreme-score signal
	extremeSignalShare = 0.15
)

// Filter drops entries with a missing score, a malformed scoreline or a
// non-positive coefficient.
func Filter(entries []models.OddsEntry) []models.OddsEntry {
	valid := make([]models.OddsEntry, 0, len(entries))
	for _, e := range entries {
		if e.Valid() {
			valid = append(valid, e)
		}
	}
	return valid
}

// Normalize turns a list of odds entries into normalized probabilities summing
// to 100 before extreme-score adjustments, sorted descending by probability.
// An empty result signals the caller to apply the fallback prediction policy.
func Normalize(entries []models.OddsEntry) []models.NormalizedOdds {
	valid := Filter(entries)
	if len(valid) == 0 {
		return nil
	}

	// Sum 1/coefficient exactly so the renormalized probabilities add up to
	// 100 within tolerance regardless of coefficient magnitudes.
	totalWeight := decimal.Zero
	for _, e := range valid {
		totalWeight = totalWeight.Add(decimal.NewFromFloat(1).Div(decimal.NewFromFloat(e.Coefficient)))
	}
	total, _ := totalWeight.Float64()

	extremeSignal := hasExtremeSignal(valid, total)

	normalized := make([]models.NormalizedOdds, 0, len(valid))
	for _, e := range valid {
		weight := (1.0 / e.Coefficient) / total
		n := models.NormalizedOdds{
			OddsEntry:             e,
			NormalizedProbability: weight * 100.0,
			Weight:                weight,
			MarketConfidence:      MarketConfidence(e.Coefficient),
		}
		home, away, err := ParseScore(e.Score)
		if err == nil {
			c := ClassifyGoals(home, away)
			n.Type = c.Type
			switch {
			case home >= noiseGoalCount || away >= noiseGoalCount:
				n.NormalizedProbability *= noiseDamp
			case c.Type == models.ScoreExtreme && extremeSignal:
				n.NormalizedProbability *= extremeBoost
			}
		} else {
			n.Type = models.ScoreBalanced
		}
		normalized = append(normalized, n)
	}

	sort.SliceStable(normalized, func(i, j int) bool {
		return normalized[i].NormalizedProbability > normalized[j].NormalizedProbability
	})
	return normalized
}

// MarketConfidence maps a coefficient to the market's confidence step function
func MarketConfidence(coefficient float64) float64 {
	switch {
	case coefficient <= 1.5:
		return 95
	case coefficient <= 2.0:
		return 85
	case coefficient <= 3.0:
		return 70
	case coefficient <= 5.0:
		return 55
	case coefficient <= 10.0:
		return 40
	default:
		return 25
	}
}

// HasExtremeSignal reports whether the distribution concentrates enough
// implied probability on extreme scorelines to treat them as live candidates.
func HasExtremeSignal(entries []models.OddsEntry) bool {
	valid := Filter(entries)
	if len(valid) == 0 {
		return false
	}
	total := 0.0
	for _, e := range valid {
		total += 1.0 / e.Coefficient
	}
	return hasExtremeSignal(valid, total)
}

func hasExtremeSignal(valid []models.OddsEntry, totalWeight float64) bool {
	if totalWeight <= 0 {
		return false
	}
	extremeWeight := 0.0
	for _, e := range valid {
		home, away, err := ParseScore(e.Score)
		if err != nil {
			continue
		}
		if ClassifyGoals(home, away).Type == models.ScoreExtreme {
			extremeWeight += 1.0 / e.Coefficient
		}
	}
	return extremeWeight/totalWeight >= extremeSignalShare
}

// AverageCoefficient returns the mean coefficient over the entries
func AverageCoefficient(entries []models.NormalizedOdds) float64 {
	if len(entries) == 0 {
		return 0
	}
	sum := 0.0
	for _, e := range entries {
		sum += e.Coefficient
	}
	return sum / float64(len(entries))
}

// TotalGoalsExpectation estimates expected total goals implied by the market,
// weighting each scoreline's goal count by its normalized probability.
func TotalGoalsExpectation(entries []models.NormalizedOdds) float64 {
	totalProb := 0.0
	weighted := 0.0
	for _, e := range entries {
		home, away, err := ParseScore(e.Score)
		if err != nil {
			continue
		}
		weighted += float64(home+away) * e.NormalizedProbability
		totalProb += e.NormalizedProbability
	}
	if totalProb == 0 {
		return 0
	}
	return weighted / totalProb
}
