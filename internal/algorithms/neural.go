package algorithms

import (
	"math"

	"github.com/fifapredict/scorecast/internal/models"
	"github.com/fifapredict/scorecast/internal/odds"
)

// neuralStyle runs a fixed two-stage feature transform over the team indices.
// It is a feature-weighted heuristic shaped like a tiny network, not a trained
// model; the weights below are hand-picked constants.
type neuralStyle struct{}

func (neuralStyle) Kind() models.AlgorithmKind { return models.AlgorithmNeural }

func (neuralStyle) BaseWeight() float64 { return 0.08 }

var (
	hiddenWeights = [4][6]float64{
		{0.42, -0.31, 0.18, 0.25, 0.37, -0.12},
		{-0.15, 0.44, 0.29, -0.22, 0.11, 0.33},
		{0.27, 0.08, -0.35, 0.41, -0.19, 0.24},
		{0.13, -0.26, 0.39, 0.17, 0.31, -0.28},
	}
	outputWeights = [3][4]float64{
		{0.58, -0.21, 0.44, 0.27},  // home goal signal
		{-0.17, 0.52, 0.23, 0.39},  // away goal signal
		{0.35, 0.28, -0.14, 0.47},  // confidence signal
	}
)

func (a neuralStyle) Predict(in Input) models.AlgorithmResult {
	topProbability := 0.0
	if len(in.Odds) > 0 {
		topProbability = in.Odds[0].NormalizedProbability / 100.0
	}

	inputs := [6]float64{
		in.Home.OverallRating / 100.0,
		in.Away.OverallRating / 100.0,
		(in.Home.CurrentForm - in.Away.CurrentForm) / 10.0,
		in.Home.GoalsPerMatch / 4.0,
		in.Away.GoalsPerMatch / 4.0,
		topProbability,
	}

	var hidden [4]float64
	for i, row := range hiddenWeights {
		sum := 0.0
		for j, w := range row {
			sum += w * inputs[j]
		}
		hidden[i] = math.Tanh(sum)
	}

	var out [3]float64
	for i, row := range outputWeights {
		sum := 0.0
		for j, w := range row {
			sum += w * hidden[j]
		}
		out[i] = sigmoid(sum)
	}

	home := clampGoals(int(math.Round(out[0] * 4.0)))
	away := clampGoals(int(math.Round(out[1] * 4.0)))
	confidence := 0.7 + out[2]*0.25 // bounded to [0.7, 0.95]

	return models.AlgorithmResult{
		Algorithm:  a.Kind(),
		Score:      odds.FormatScore(home, away),
		Confidence: confidence,
		Weight:     a.BaseWeight(),
	}
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}
