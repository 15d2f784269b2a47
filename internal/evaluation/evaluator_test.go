package evaluation

import (
	"reflect"
	"testing"
	"time"

	"github.com/fifapredict/scorecast/internal/models"
)

func completedPrediction(score string, confidence int) *models.Prediction {
	return &models.Prediction{
		ID:             1,
		HomeTeam:       "Chelsea",
		AwayTeam:       "Arsenal",
		PredictedScore: score,
		Confidence:     confidence,
		TopPredictions: []models.ScorePrediction{
			{Score: score},
			{Score: "1-1"},
			{Score: "2-1"},
		},
	}
}

func TestBuildActualResultCorrectPrediction(t *testing.T) {
	pred := completedPrediction("2-0", 80)
	verifiedAt := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)

	actual := BuildActualResult(pred, "2-0", "1-0", verifiedAt)

	if !actual.Correct {
		t.Error("exact match should be correct")
	}
	if !actual.InAlternatives {
		t.Error("predicted score is listed among alternatives")
	}
	if actual.ConfidenceAccuracy != models.ConfidenceExcellent {
		t.Errorf("correct at 80%% confidence should grade excellent, got %s", actual.ConfidenceAccuracy)
	}
	if actual.ProximityScore != 100 {
		t.Errorf("exact match proximity = %d, want 100", actual.ProximityScore)
	}
	if len(actual.LearningPoints) != 0 {
		t.Errorf("correct prediction should carry no learning points, got %v", actual.LearningPoints)
	}
	if actual.ActualWinner != "Domicile" {
		t.Errorf("2-0 winner label = %q", actual.ActualWinner)
	}
	if !actual.VerifiedAt.Equal(verifiedAt) {
		t.Error("verification timestamp not preserved")
	}
}

func TestBuildActualResultMissWithAlternativeHit(t *testing.T) {
	pred := completedPrediction("2-0", 80)

	actual := BuildActualResult(pred, "2-1", "", time.Now())

	if actual.Correct {
		t.Error("2-1 is not the predicted 2-0")
	}
	if !actual.InAlternatives {
		t.Error("2-1 is among the alternatives")
	}
	if actual.ConfidenceAccuracy != models.ConfidenceOverconfident {
		t.Errorf("wrong at 80%% confidence should grade overconfident, got %s", actual.ConfidenceAccuracy)
	}
	if actual.ProximityScore != 75 {
		t.Errorf("one goal off proximity = %d, want 75", actual.ProximityScore)
	}

	wantPoints := []string{
		"Score prediction missed",
		"Actual score was among alternatives - raise alternative weighting",
		"High confidence incorrect - review confidence calculation",
	}
	if !reflect.DeepEqual(actual.LearningPoints, wantPoints) {
		t.Errorf("learning points = %v, want %v", actual.LearningPoints, wantPoints)
	}
}

func TestBuildActualResultIsPure(t *testing.T) {
	pred := completedPrediction("1-0", 60)
	verifiedAt := time.Now()

	first := BuildActualResult(pred, "0-2", "0-1", verifiedAt)
	second := BuildActualResult(pred, "0-2", "0-1", verifiedAt)

	if !reflect.DeepEqual(first, second) {
		t.Error("repeated evaluation diverged")
	}
}

func TestClassifyConfidenceGrid(t *testing.T) {
	cases := []struct {
		correct    bool
		confidence int
		want       models.ConfidenceAccuracy
	}{
		{true, 85, models.ConfidenceExcellent},
		{true, 60, models.ConfidenceGood},
		{true, 40, models.ConfidenceNeedsImprovement},
		{false, 40, models.ConfidenceAppropriate},
		{false, 85, models.ConfidenceOverconfident},
		{false, 60, models.ConfidenceNeedsImprovement},
	}
	for _, tc := range cases {
		got := ClassifyConfidence(tc.correct, tc.confidence)
		if got != tc.want {
			t.Errorf("ClassifyConfidence(%v, %d) = %s, want %s", tc.correct, tc.confidence, got, tc.want)
		}
	}
}

func TestProximityScore(t *testing.T) {
	cases := []struct {
		predicted, actual string
		want              int
	}{
		{"2-1", "2-1", 100},
		{"2-1", "2-0", 75},
		{"2-1", "1-0", 50},
		{"2-1", "0-0", 10},
		{"0-0", "5-5", 0},
		{"bad", "2-1", 0},
	}
	for _, tc := range cases {
		if got := ProximityScore(tc.predicted, tc.actual); got != tc.want {
			t.Errorf("ProximityScore(%s, %s) = %d, want %d", tc.predicted, tc.actual, got, tc.want)
		}
	}
}
