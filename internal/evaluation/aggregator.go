package evaluation

import (
	"math"

	"github.com/fifapredict/scorecast/internal/models"
)

// Neutral defaults reported when no history exists. A missing history must
// never block prediction creation.
const (
	defaultCalibration = 50
	defaultConfidence  = 60
)

// calibrationBins are the confidence bin boundaries used for calibration error
var calibrationBins = []int{0, 40, 60, 75, 85, 95, 100}

// AccuracyStats is recomputed on demand from the full prediction collection
// and never stored independently.
type AccuracyStats struct {
	TotalPredictions     int `json:"total_predictions"`
	CompletedPredictions int `json:"completed_predictions"`
	CorrectPredictions   int `json:"correct_predictions"`
	PendingPredictions   int `json:"pending_predictions"`
	AccuracyRate         int `json:"accuracy_rate"`

	ExactScoreAccuracy    int `json:"exact_score_accuracy"`
	AlternativesAccuracy  int `json:"alternatives_accuracy"`
	ConfidenceCalibration int `json:"confidence_calibration"`
	ImprovementTrend      int `json:"improvement_trend"`

	AverageConfidence      int `json:"average_confidence"`
	HighConfidenceAccuracy int `json:"high_confidence_accuracy"`
	LowConfidenceAccuracy  int `json:"low_confidence_accuracy"`

	AlgorithmAccuracy map[models.AlgorithmKind]float64 `json:"algorithm_accuracy"`
}

// ComputeStats aggregates accuracy and calibration over all predictions
func ComputeStats(predictions []*models.Prediction) AccuracyStats {
	stats := AccuracyStats{
		TotalPredictions:      len(predictions),
		ConfidenceCalibration: defaultCalibration,
		AverageConfidence:     defaultConfidence,
		AlgorithmAccuracy:     make(map[models.AlgorithmKind]float64),
	}

	completed := make([]*models.Prediction, 0, len(predictions))
	for _, p := range predictions {
		if p != nil && p.Completed() {
			completed = append(completed, p)
		}
	}
	stats.CompletedPredictions = len(completed)
	stats.PendingPredictions = stats.TotalPredictions - stats.CompletedPredictions
	if len(completed) == 0 {
		return stats
	}

	correct := 0
	alternativeHits := 0
	confidenceSum := 0
	highTotal, highCorrect := 0, 0
	lowTotal, lowCorrect := 0, 0

	for _, p := range completed {
		if p.ActualResult.Correct {
			correct++
		}
		if p.ActualResult.InAlternatives {
			alternativeHits++
		}
		confidenceSum += p.Confidence
		if p.Confidence > highConfidence {
			highTotal++
			if p.ActualResult.Correct {
				highCorrect++
			}
		}
		if p.Confidence < lowConfidence {
			lowTotal++
			if p.ActualResult.Correct {
				lowCorrect++
			}
		}
	}

	stats.CorrectPredictions = correct
	stats.AccuracyRate = roundPct(correct, len(completed))
	stats.ExactScoreAccuracy = stats.AccuracyRate
	stats.AlternativesAccuracy = roundPct(alternativeHits, len(completed))
	stats.AverageConfidence = int(math.Round(float64(confidenceSum) / float64(len(completed))))
	stats.HighConfidenceAccuracy = roundPct(highCorrect, highTotal)
	stats.LowConfidenceAccuracy = roundPct(lowCorrect, lowTotal)
	stats.ConfidenceCalibration = calibrationScore(completed)
	stats.ImprovementTrend = improvementTrend(completed)
	stats.AlgorithmAccuracy = AlgorithmAccuracy(completed)

	return stats
}

// calibrationScore bins completed predictions by stated confidence, compares
// each bin's observed accuracy to its expected midpoint, and reports
// 100 - average absolute error.
func calibrationScore(completed []*models.Prediction) int {
	totalError := 0.0
	populated := 0

	for i := 0; i < len(calibrationBins)-1; i++ {
		lo, hi := calibrationBins[i], calibrationBins[i+1]
		binTotal, binCorrect := 0, 0
		for _, p := range completed {
			if p.Confidence >= lo && p.Confidence < hi {
				binTotal++
				if p.ActualResult.Correct {
					binCorrect++
				}
			}
		}
		if binTotal == 0 {
			continue
		}
		populated++
		observed := float64(binCorrect) / float64(binTotal) * 100
		expected := float64(lo+hi) / 2
		totalError += math.Abs(observed - expected)
	}

	if populated == 0 {
		return defaultCalibration
	}
	score := 100 - totalError/float64(populated)
	if score < 0 {
		return 0
	}
	return int(math.Round(score))
}

// improvementTrend compares recent-half accuracy against early-half accuracy,
// in percentage points.
func improvementTrend(completed []*models.Prediction) int {
	if len(completed) < 4 {
		return 0
	}
	mid := len(completed) / 2
	early := completed[:mid]
	recent := completed[mid:]
	return roundPct(countCorrect(recent), len(recent)) - roundPct(countCorrect(early), len(early))
}

// AlgorithmAccuracy computes, per algorithm, the fraction of completed
// predictions where that algorithm's own candidate score matched the actual
// result.
func AlgorithmAccuracy(completed []*models.Prediction) map[models.AlgorithmKind]float64 {
	hits := make(map[models.AlgorithmKind]int)
	totals := make(map[models.AlgorithmKind]int)
	for _, p := range completed {
		if p.ActualResult == nil {
			continue
		}
		for _, r := range p.AlgorithmBreakdown {
			totals[r.Algorithm]++
			if r.Score == p.ActualResult.ActualScore {
				hits[r.Algorithm]++
			}
		}
	}

	accuracy := make(map[models.AlgorithmKind]float64, len(totals))
	for kind, total := range totals {
		if total > 0 {
			accuracy[kind] = float64(hits[kind]) / float64(total)
		}
	}
	return accuracy
}

// PerformanceMultipliers maps per-algorithm accuracy into the bounded
// multiplier band applied by the ensemble combiner. Algorithms without enough
// samples stay at the neutral 1.0.
func PerformanceMultipliers(predictions []*models.Prediction, minSamples int) map[models.AlgorithmKind]float64 {
	completed := make([]*models.Prediction, 0, len(predictions))
	for _, p := range predictions {
		if p != nil && p.Completed() {
			completed = append(completed, p)
		}
	}

	totals := make(map[models.AlgorithmKind]int)
	for _, p := range completed {
		for _, r := range p.AlgorithmBreakdown {
			totals[r.Algorithm]++
		}
	}

	multipliers := make(map[models.AlgorithmKind]float64)
	for kind, accuracy := range AlgorithmAccuracy(completed) {
		if totals[kind] < minSamples {
			continue
		}
		// Accuracy 0 maps to 0.8, accuracy 1 to 1.2
		multipliers[kind] = 0.8 + 0.4*accuracy
	}
	return multipliers
}

func countCorrect(preds []*models.Prediction) int {
	n := 0
	for _, p := range preds {
		if p.ActualResult != nil && p.ActualResult.Correct {
			n++
		}
	}
	return n
}

func roundPct(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}
