package ensemble

import (
	"math"

	"github.com/fifapredict/scorecast/internal/models"
)

// Confidence bounds for full-time predictions
const (
	MinConfidence = 25
	MaxConfidence = 95
)

// Bonus ceilings. Each bonus is bounded on its own so no single factor can
// swamp the raw ensemble confidence.
const (
	maxConsistencyBonus = 8.0
	maxDataQualityBonus = 6.0
	maxConsensusBonus   = 5.0
)

// DataQuality describes how much usable market input backed the prediction
type DataQuality struct {
	ValidOddsCount int
	DistinctScores int
}

// FinalConfidence maps the raw ensemble confidence into the bounded, adjusted
// confidence percentage.
func FinalConfidence(out Outcome, quality DataQuality) int {
	base := out.RawConfidence * 100.0

	consistency := out.WinningShare * maxConsistencyBonus

	var dataQuality float64
	switch {
	case quality.ValidOddsCount >= 20:
		dataQuality = maxDataQualityBonus
	case quality.ValidOddsCount >= 10:
		dataQuality = 4
	case quality.ValidOddsCount >= 5:
		dataQuality = 2
	}
	if quality.DistinctScores >= 10 {
		dataQuality = math.Min(maxDataQualityBonus, dataQuality+1)
	}

	var consensus float64
	if len(out.Groups) > 0 {
		// A majority of supporting algorithms behind the winner earns the
		// consensus bonus in proportion to the backing.
		supporters := 0
		totalSupport := 0
		for _, g := range out.Groups {
			totalSupport += len(g.Supporters)
			if g.Score == out.Score {
				supporters = len(g.Supporters)
			}
		}
		if totalSupport > 0 {
			consensus = float64(supporters) / float64(totalSupport) * maxConsensusBonus
		}
	}

	final := int(math.Round(base + consistency + dataQuality + consensus))
	if final < MinConfidence {
		return MinConfidence
	}
	if final > MaxConfidence {
		return MaxConfidence
	}
	return final
}

// AssessRisk assigns the qualitative risk tier from the strength gap between
// the two teams. The mapping is monotonic: a smaller gap always yields equal
// or higher risk.
func AssessRisk(homeRating, awayRating float64) models.RiskLevel {
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

// AlternativeRisk grades a ranked alternative scenario by its coefficient and
// position in the ranking.
func AlternativeRisk(coefficient float64, position int) models.RiskLevel {
	switch {
	case coefficient > 10 || position > 3:
		return models.RiskHigh
	case coefficient > 5 || position > 1:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}
