// Package evaluation scores finished predictions against actual results and
// aggregates accuracy and calibration statistics over the full history.
package evaluation

import (
	"time"

	"github.com/fifapredict/scorecast/internal/models"
	"github.com/fifapredict/scorecast/internal/odds"
)

// Confidence thresholds for the accuracy classification grid
const (
	highConfidence = 70
	lowConfidence  = 50
)

// BuildActualResult evaluates a prediction against a terminal score. The
// function is pure: re-running it with the same inputs yields the same result,
// which keeps repeated verification idempotent.
func BuildActualResult(pred *models.Prediction, finalScore, halftimeScore string, verifiedAt time.Time) models.ActualResult {
	correct := pred.PredictedScore == finalScore

	inAlternatives := false
	for _, alt := range pred.TopPredictions {
		if alt.Score == finalScore {
			inAlternatives = true
			break
		}
	}

	return models.ActualResult{
		ActualScore:         finalScore,
		ActualWinner:        odds.DetermineWinner(finalScore).Label(),
		ActualHalftimeScore: halftimeScore,
		Correct:             correct,
		InAlternatives:      inAlternatives,
		ConfidenceAccuracy:  ClassifyConfidence(correct, pred.Confidence),
		ProximityScore:      ProximityScore(pred.PredictedScore, finalScore),
		LearningPoints:      learningPoints(pred, finalScore, correct, inAlternatives),
		VerifiedAt:          verifiedAt,
	}
}

// ClassifyConfidence grades how well the stated confidence matched the outcome
func ClassifyConfidence(correct bool, confidence int) models.ConfidenceAccuracy {
	switch {
	case correct && confidence > highConfidence:
		return models.ConfidenceExcellent
	case correct && confidence > lowConfidence:
		return models.ConfidenceGood
	case !correct && confidence < lowConfidence:
		return models.ConfidenceAppropriate
	case !correct && confidence > highConfidence:
		return models.ConfidenceOverconfident
	default:
		return models.ConfidenceNeedsImprovement
	}
}

// ProximityScore grades how close the predicted scoreline landed: 100 for an
// exact match, declining with the combined goal difference.
func ProximityScore(predicted, actual string) int {
	ph, pa, err1 := odds.ParseScore(predicted)
	ah, aa, err2 := odds.ParseScore(actual)
	if err1 != nil || err2 != nil {
		return 0
	}

	diff := absInt(ph-ah) + absInt(pa-aa)
	switch diff {
	case 0:
		return 100
	case 1:
		return 75
	case 2:
		return 50
	default:
		score := 25 - diff*5
		if score < 0 {
			return 0
		}
		return score
	}
}

func learningPoints(pred *models.Prediction, finalScore string, correct, inAlternatives bool) []string {
	var points []string
	if !correct {
		points = append(points, "Score prediction missed")
		if inAlternatives {
			points = append(points, "Actual score was among alternatives - raise alternative weighting")
		} else {
			points = append(points, "Actual score not predicted - review inputs")
		}
		if pred.Confidence > highConfidence {
			points = append(points, "High confidence incorrect - review confidence calculation")
		}
	}
	return points
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
