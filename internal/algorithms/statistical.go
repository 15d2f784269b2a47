package algorithms

import (
	"math"

	"github.com/fifapredict/scorecast/internal/models"
	"github.com/fifapredict/scorecast/internal/odds"
)

// statistical derives goal counts from the teams' attack and defense indices
// with a Poisson-flavored multiplicative model.
type statistical struct{}

func (statistical) Kind() models.AlgorithmKind { return models.AlgorithmStatistical }

func (statistical) BaseWeight() float64 { return 0.20 }

const statisticalConfidence = 0.75

// highScoringExpectation is the market-implied total goals above which the
// goal model is nudged upward.
const highScoringExpectation = 3.0

func (a statistical) Predict(in Input) models.AlgorithmResult {
	home, away := expectedGoals(in)
	return models.AlgorithmResult{
		Algorithm:  a.Kind(),
		Score:      odds.FormatScore(home, away),
		Confidence: statisticalConfidence,
		Weight:     a.BaseWeight(),
	}
}

// fallbackResult lets other algorithms degrade to the statistical model while
// keeping their own identity in the breakdown.
func (a statistical) fallbackResult(in Input, kind models.AlgorithmKind, weight float64) models.AlgorithmResult {
	home, away := expectedGoals(in)
	return models.AlgorithmResult{
		Algorithm:  kind,
		Score:      odds.FormatScore(home, away),
		Confidence: statisticalConfidence,
		Weight:     weight,
	}
}

// expectedGoals computes each side's goal count. Attack is scaled against the
// opposing defense; a floor on the defense index guards against division
// blowups on degenerate feature values.
func expectedGoals(in Input) (int, int) {
	homeLambda := in.Home.GoalsPerMatch *
		(in.Home.AttackRating / math.Max(40, in.Away.DefenseRating)) *
		(1 + in.Context.HomeAdvantage)
	awayLambda := in.Away.GoalsPerMatch *
		(in.Away.AttackRating / math.Max(40, in.Home.DefenseRating)) *
		(1 - in.Context.HomeAdvantage*0.5)

	if odds.TotalGoalsExpectation(in.Odds) >= highScoringExpectation {
		homeLambda *= 1.2
		awayLambda *= 1.2
	}

	return clampGoals(int(math.Round(homeLambda))), clampGoals(int(math.Round(awayLambda)))
}
