// Package tracking recomputes outcome probabilities for an in-progress match
// as it moves toward minute 90.
package tracking

import (
	"fmt"
	"math"

	"github.com/fifapredict/scorecast/internal/models"
	"github.com/fifapredict/scorecast/internal/odds"
)

const matchLength = 90

// DefaultBaseGoalRate is the per-minute goal arrival rate before phase and
// score adjustments.
const DefaultBaseGoalRate = 0.03

// Options tunes the live model
type Options struct {
	BaseGoalRate float64
}

// Tracker projects live matches against their original prediction
type Tracker struct {
	baseRate float64
}

// New creates a tracker; a non-positive base rate falls back to the default
func New(opts Options) *Tracker {
	rate := opts.BaseGoalRate
	if rate <= 0 {
		rate = DefaultBaseGoalRate
	}
	return &Tracker{baseRate: rate}
}

// Snapshot is one live observation of the match
type Snapshot struct {
	Minute       int
	CurrentScore string
}

// Scenario is one projected final score with its probability
type Scenario struct {
	Score       string  `json:"score"`
	Probability float64 `json:"probability"` // percent
}

// Projection is the re-computed outlook for an in-progress match
type Projection struct {
	Minute                int        `json:"minute"`
	TimeRemaining         int        `json:"time_remaining"`
	Phase                 string     `json:"phase"`
	ExactMatchProbability int        `json:"exact_match_probability"` // percent, 1-95
	AdjustedConfidence    int        `json:"adjusted_confidence"`
	NextGoalProbability   int        `json:"next_goal_probability"` // percent
	ProgressionMatch      int        `json:"progression_match"`     // percent
	FinalScoreScenarios   []Scenario `json:"final_score_scenarios"`
}

// Project recomputes probabilities for the predicted final score given the
// current live state.
func (t *Tracker) Project(pred *models.Prediction, snap Snapshot) (Projection, error) {
	predHome, predAway, err := odds.ParseScore(pred.PredictedScore)
	if err != nil {
		return Projection{}, fmt.Errorf("predicted score unusable: %w", err)
	}
	curHome, curAway, err := odds.ParseScore(snap.CurrentScore)
	if err != nil {
		return Projection{}, fmt.Errorf("current score unusable: %w", err)
	}

	minute := snap.Minute
	if minute < 0 {
		minute = 0
	}
	remaining := matchLength - minute
	if remaining < 0 {
		remaining = 0
	}

	rate := t.goalRate(minute, curHome, curAway)

	proj := Projection{
		Minute:        minute,
		TimeRemaining: remaining,
		Phase:         matchPhase(minute),
	}

	proj.ExactMatchProbability = exactMatchProbability(predHome, predAway, curHome, curAway, rate, remaining)
	proj.AdjustedConfidence = adjustConfidence(pred.Confidence, predHome, predAway, curHome, curAway, minute, remaining)
	proj.NextGoalProbability = nextGoalProbability(curHome, curAway, minute, remaining)
	proj.ProgressionMatch = progressionMatch(predHome, predAway, curHome, curAway, minute)
	proj.FinalScoreScenarios = finalScoreScenarios(curHome, curAway, rate, remaining)

	return proj, nil
}

// goalRate adapts the base per-minute rate to the match phase and the score
// state: opening and closing quartiles run hotter, the spell around half time
// cools off, and a wide score gap closes the game down.
func (t *Tracker) goalRate(minute, home, away int) float64 {
	rate := t.baseRate

	switch {
	case minute >= 45 && minute <= 50:
		rate *= 0.8
	case minute < 15 || minute > 75:
		rate *= 1.2
	}

	diff := home - away
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff >= 2:
		rate *= 0.7
	case diff == 0 && minute > 70:
		rate *= 1.3
	}

	return rate
}

// PoissonProbability returns P(X = k) for rate lambda
func PoissonProbability(k int, lambda float64) float64 {
	if lambda <= 0 {
		if k == 0 {
			return 1
		}
		return 0
	}
	p := math.Exp(-lambda)
	for i := 1; i <= k; i++ {
		p *= lambda / float64(i)
	}
	return math.Min(1, p)
}

func exactMatchProbability(predHome, predAway, curHome, curAway int, rate float64, remaining int) int {
	needHome := predHome - curHome
	needAway := predAway - curAway

	// Overshot on either side means the exact score is unreachable
	if needHome < 0 || needAway < 0 {
		return 1
	}

	lambda := rate * float64(remaining)
	p := PoissonProbability(needHome, lambda) *
		PoissonProbability(needAway, lambda) *
		interdependenceFactor(needHome+needAway)

	pct := int(math.Round(p * 100))
	if pct < 1 {
		return 1
	}
	if pct > 95 {
		return 95
	}
	return pct
}

// interdependenceFactor penalizes scenarios that require many combined
// additional goals, since goal events are not independent across the sides.
func interdependenceFactor(combined int) float64 {
	if combined <= 1 {
		return 1.0
	}
	return 1.0 / (1.0 + 0.25*float64(combined-1))
}

// progressionCurve allocates the share of predicted goals expected by a given
// minute.
func progressionCurve(minute int) float64 {
	switch {
	case minute <= 15:
		return 0.10
	case minute <= 30:
		return 0.25
	case minute <= 45:
		return 0.40
	case minute <= 60:
		return 0.60
	case minute <= 75:
		return 0.80
	default:
		return 1.0
	}
}

// progressionMatch measures how closely the actual scoring tracks the
// progression curve applied to the prediction, as a percentage.
func progressionMatch(predHome, predAway, curHome, curAway, minute int) int {
	curve := progressionCurve(minute)
	expectedHome := float64(predHome) * curve
	expectedAway := float64(predAway) * curve

	homeAcc := progressionAccuracy(expectedHome, float64(curHome))
	awayAcc := progressionAccuracy(expectedAway, float64(curAway))
	return int(math.Round((homeAcc + awayAcc) / 2 * 100))
}

func progressionAccuracy(expected, actual float64) float64 {
	diff := math.Abs(expected - actual)
	return math.Max(0, 1-diff/math.Max(1, expected))
}

// adjustConfidence decays the original confidence with elapsed time relative
// to how well the actual progression tracks the predicted one.
func adjustConfidence(original, predHome, predAway, curHome, curAway, minute, remaining int) int {
	match := float64(progressionMatch(predHome, predAway, curHome, curAway, minute)) / 100.0

	timeRatio := float64(remaining) / matchLength
	var timeFactor float64
	switch {
	case timeRatio > 0.8:
		timeFactor = 0.7 // early readings are noisy
	case timeRatio > 0.5:
		timeFactor = 0.9
	case timeRatio > 0.2:
		timeFactor = 1.1
	default:
		timeFactor = 1.2 // end state is nearly settled
	}

	context := 1.0
	curTotal := curHome + curAway
	predTotal := predHome + predAway
	if curTotal > predTotal {
		context *= 0.9
	}
	if float64(curTotal) < float64(predTotal)*0.5 && remaining < 30 {
		context *= 0.8
	}
	if diff := curHome - curAway; diff >= 3 || diff <= -3 {
		context *= 0.7
	}

	adjusted := float64(original) * (0.4 + 0.6*match) * (0.6 + 0.4*timeFactor) * context
	return int(math.Round(math.Max(5, math.Min(95, adjusted))))
}

// nextGoalProbability estimates the chance of any further goal, capped at 15%
func nextGoalProbability(curHome, curAway, minute, remaining int) int {
	base := 0.03 + float64(curHome+curAway)*0.005
	if remaining < 10 {
		base += 0.01
	}
	if minute > 80 {
		base += 0.005
	}
	p := math.Min(0.15, base*float64(remaining))
	return int(math.Round(p * 100))
}

// finalScoreScenarios projects the distribution over plausible final scores
// by adding 0-3 further goals per side to the current score.
func finalScoreScenarios(curHome, curAway int, rate float64, remaining int) []Scenario {
	lambda := rate * float64(remaining)
	scenarios := make([]Scenario, 0, 16)
	for dh := 0; dh <= 3; dh++ {
		for da := 0; da <= 3; da++ {
			p := PoissonProbability(dh, lambda) *
				PoissonProbability(da, lambda) *
				interdependenceFactor(dh+da)
			pct := p * 100
			if pct < 0.5 {
				continue
			}
			scenarios = append(scenarios, Scenario{
				Score:       odds.FormatScore(curHome+dh, curAway+da),
				Probability: math.Round(pct*10) / 10,
			})
		}
	}
	return scenarios
}

// matchPhase labels the intensity phase of the match
func matchPhase(minute int) string {
	switch {
	case minute < 15:
		return "build_up"
	case minute < 30:
		return "moderate"
	case minute < 45:
		return "intense"
	case minute < 60:
		return "moderate"
	case minute < 75:
		return "intense"
	case minute < 90:
		return "critical"
	default:
		return "final_moments"
	}
}
