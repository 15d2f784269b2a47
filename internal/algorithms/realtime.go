package algorithms

import (
	"math"

	"github.com/fifapredict/scorecast/internal/models"
	"github.com/fifapredict/scorecast/internal/odds"
)

// realTimeContext applies time-to-kickoff, injury/weather perturbation and
// momentum/stability indices as multiplicative adjustments to the statistical
// base scoreline.
type realTimeContext struct{}

func (realTimeContext) Kind() models.AlgorithmKind { return models.AlgorithmRealTime }

func (realTimeContext) BaseWeight() float64 { return 0.12 }

func (a realTimeContext) Predict(in Input) models.AlgorithmResult {
	baseHome, baseAway := expectedGoals(in)

	home := float64(baseHome)
	away := float64(baseAway)

	// Information close to kickoff is sharper; stale fixtures are discounted
	kickoff := 1.0
	switch {
	case in.Context.HoursToKickoff >= 0 && in.Context.HoursToKickoff < 1:
		kickoff = 1.05
	case in.Context.HoursToKickoff > 48:
		kickoff = 0.95
	}

	home *= kickoff * (1 - in.Context.InjuryImpactHome*0.5) * (1 - in.Context.WeatherImpact*0.3)
	away *= kickoff * (1 - in.Context.InjuryImpactAway*0.5) * (1 - in.Context.WeatherImpact*0.3)

	// Home attacking momentum lifts home goals; home defensive stability
	// suppresses away goals.
	home *= in.Context.AttackMomentum
	away *= 2.0 - in.Context.DefenseStability

	confidence := clamp01((70 + 30*in.Context.DataFreshness*in.Context.MarketVolatility) / 100.0)

	return models.AlgorithmResult{
		Algorithm:  a.Kind(),
		Score:      odds.FormatScore(clampGoals(int(math.Round(home))), clampGoals(int(math.Round(away)))),
		Confidence: confidence,
		Weight:     a.BaseWeight(),
	}
}
