package algorithms

import (
	"math"

	"github.com/fifapredict/scorecast/internal/models"
	"github.com/fifapredict/scorecast/internal/odds"
)

// extremeDetector estimates the probability of an extreme final score from
// each team's historical extreme-score frequency plus the market's extreme
// signal, emitting a high-goal scoreline when that probability is elevated.
type extremeDetector struct{}

func (extremeDetector) Kind() models.AlgorithmKind { return models.AlgorithmExtremeScore }

func (extremeDetector) BaseWeight() float64 { return 0.10 }

const (
	extremeSignalBonus = 0.2
	extremeThreshold   = 0.25
	extremeGoalCount   = 5
)

func (a extremeDetector) Predict(in Input) models.AlgorithmResult {
	pExtreme := (in.Home.ExtremeScoreRate + in.Away.ExtremeScoreRate) / 2.0
	if in.ExtremeSignal {
		pExtreme += extremeSignalBonus
	}
	pExtreme = clamp01(pExtreme)

	if pExtreme >= extremeThreshold {
		// Credit the high-goal side to the stronger attack; the weaker side
		// keeps its usual scoring rate.
		homeIsStrong := in.Home.AttackRating >= in.Away.AttackRating
		weak := in.Away
		if !homeIsStrong {
			weak = in.Home
		}
		weakGoals := clampGoals(int(math.Round(weak.GoalsPerMatch)))
		score := odds.FormatScore(extremeGoalCount, weakGoals)
		if !homeIsStrong {
			score = odds.FormatScore(weakGoals, extremeGoalCount)
		}
		return models.AlgorithmResult{
			Algorithm:  a.Kind(),
			Score:      score,
			Confidence: math.Min(0.9, pExtreme),
			Weight:     a.BaseWeight(),
		}
	}

	if len(in.Odds) == 0 {
		return statistical{}.fallbackResult(in, a.Kind(), a.BaseWeight())
	}

	// No elevated extreme risk: side with the market leader, at low confidence
	return models.AlgorithmResult{
		Algorithm:  a.Kind(),
		Score:      in.Odds[0].Score,
		Confidence: pExtreme,
		Weight:     a.BaseWeight(),
	}
}
