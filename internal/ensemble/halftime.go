package ensemble

import (
	"math"

	"github.com/fifapredict/scorecast/internal/models"
	"github.com/fifapredict/scorecast/internal/odds"
)

// Bounds on the fraction of full-time goals attributed to the first half.
// The default sits at the midpoint of the empirically observed range.
const (
	MinHalftimeFactor     = 0.4
	MaxHalftimeFactor     = 0.7
	DefaultHalftimeFactor = 0.55
)

// halftimeConfidenceScale discounts half-time confidence relative to full time
const halftimeConfidenceScale = 0.85

// HalftimeResult is the derived half-time projection
type HalftimeResult struct {
	Score      string
	Winner     models.Winner
	Confidence int
}

// DeriveHalftime scales each algorithm's full-time candidate down to a
// half-time scoreline and recombines with the same plurality vote.
func DeriveHalftime(results []models.AlgorithmResult, factor float64, state WeightState, adjust ContextAdjuster, quality DataQuality) HalftimeResult {
	if factor < MinHalftimeFactor || factor > MaxHalftimeFactor {
		factor = DefaultHalftimeFactor
	}

	scaled := make([]models.AlgorithmResult, 0, len(results))
	for _, r := range results {
		home, away, err := odds.ParseScore(r.Score)
		if err != nil {
			continue
		}
		s := r
		s.Score = odds.FormatScore(
			int(math.Round(float64(home)*factor)),
			int(math.Round(float64(away)*factor)),
		)
		scaled = append(scaled, s)
	}

	if len(scaled) == 0 {
		return HalftimeResult{
			Score:      FallbackScore,
			Winner:     odds.DetermineWinner(FallbackScore),
			Confidence: int(math.Round(FallbackConfidence * halftimeConfidenceScale)),
		}
	}

	out := Combine(scaled, state, adjust)
	confidence := int(math.Round(float64(FinalConfidence(out, quality)) * halftimeConfidenceScale))

	return HalftimeResult{
		Score:      out.Score,
		Winner:     odds.DetermineWinner(out.Score),
		Confidence: confidence,
	}
}
