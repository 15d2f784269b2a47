package tracking

import (
	"math"
	"testing"

	"github.com/fifapredict/scorecast/internal/models"
)

func testPrediction(score string, confidence int) *models.Prediction {
	return &models.Prediction{
		PredictedScore: score,
		Confidence:     confidence,
	}
}

func TestPoissonProbability(t *testing.T) {
	if got := PoissonProbability(0, 0); got != 1 {
		t.Errorf("P(0; 0) = %f, want 1", got)
	}
	if got := PoissonProbability(2, 0); got != 0 {
		t.Errorf("P(2; 0) = %f, want 0", got)
	}

	// P(1; 1) = e^-1 ≈ 0.3679
	if got := PoissonProbability(1, 1); math.Abs(got-math.Exp(-1)) > 1e-9 {
		t.Errorf("P(1; 1) = %f, want %f", got, math.Exp(-1))
	}

	sum := 0.0
	for k := 0; k < 30; k++ {
		sum += PoissonProbability(k, 2.5)
	}
	if math.Abs(sum-1.0) > 1e-6 {
		t.Errorf("distribution sums to %f", sum)
	}
}

func TestProjectRejectsMalformedScores(t *testing.T) {
	tracker := New(Options{})

	if _, err := tracker.Project(testPrediction("bad", 80), Snapshot{Minute: 30, CurrentScore: "1-0"}); err == nil {
		t.Error("expected error for malformed predicted score")
	}
	if _, err := tracker.Project(testPrediction("2-1", 80), Snapshot{Minute: 30, CurrentScore: "x"}); err == nil {
		t.Error("expected error for malformed current score")
	}
}

func TestExactMatchProbabilityShrinksWithLessTime(t *testing.T) {
	tracker := New(Options{})
	pred := testPrediction("2-1", 80)

	early, err := tracker.Project(pred, Snapshot{Minute: 50, CurrentScore: "1-0"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	late, err := tracker.Project(pred, Snapshot{Minute: 80, CurrentScore: "1-0"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if late.ExactMatchProbability >= early.ExactMatchProbability {
		t.Errorf("probability should shrink as time runs out: minute 50 = %d%%, minute 80 = %d%%",
			early.ExactMatchProbability, late.ExactMatchProbability)
	}
}

func TestExactMatchProbabilityFloorOnOvershoot(t *testing.T) {
	tracker := New(Options{})
	pred := testPrediction("1-0", 80)

	proj, err := tracker.Project(pred, Snapshot{Minute: 60, CurrentScore: "2-0"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if proj.ExactMatchProbability != 1 {
		t.Errorf("overshot score should report the 1%% floor, got %d", proj.ExactMatchProbability)
	}
}

func TestExactMatchProbabilityAtFullMatch(t *testing.T) {
	tracker := New(Options{})
	pred := testPrediction("2-1", 80)

	proj, err := tracker.Project(pred, Snapshot{Minute: 89, CurrentScore: "2-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if proj.ExactMatchProbability < 90 {
		t.Errorf("score already reached near the end should be near certain, got %d%%", proj.ExactMatchProbability)
	}
}

func TestAdjustedConfidenceBounds(t *testing.T) {
	tracker := New(Options{})

	cases := []struct {
		score   string
		current string
		minute  int
	}{
		{"2-1", "0-0", 85},
		{"1-0", "5-0", 70},
		{"3-2", "3-2", 88},
		{"0-0", "0-0", 5},
	}
	for _, tc := range cases {
		proj, err := tracker.Project(testPrediction(tc.score, 90), Snapshot{Minute: tc.minute, CurrentScore: tc.current})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if proj.AdjustedConfidence < 5 || proj.AdjustedConfidence > 95 {
			t.Errorf("adjusted confidence %d escaped [5, 95] for %+v", proj.AdjustedConfidence, tc)
		}
	}
}

func TestNextGoalProbabilityCapped(t *testing.T) {
	tracker := New(Options{})

	proj, err := tracker.Project(testPrediction("4-4", 50), Snapshot{Minute: 10, CurrentScore: "3-3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if proj.NextGoalProbability > 15 {
		t.Errorf("next goal probability %d exceeds the 15%% cap", proj.NextGoalProbability)
	}
}

func TestFinalScoreScenariosStartFromCurrentScore(t *testing.T) {
	tracker := New(Options{})

	proj, err := tracker.Project(testPrediction("2-1", 75), Snapshot{Minute: 70, CurrentScore: "1-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(proj.FinalScoreScenarios) == 0 {
		t.Fatal("expected at least one scenario")
	}
	if proj.FinalScoreScenarios[0].Score != "1-1" {
		t.Errorf("first scenario should hold the current score, got %s", proj.FinalScoreScenarios[0].Score)
	}
	for _, s := range proj.FinalScoreScenarios {
		if s.Probability < 0.5 {
			t.Errorf("scenario %s below the 0.5%% reporting floor: %.2f", s.Score, s.Probability)
		}
	}
}

func TestMatchPhases(t *testing.T) {
	cases := []struct {
		minute int
		want   string
	}{
		{5, "build_up"},
		{20, "moderate"},
		{40, "intense"},
		{50, "moderate"},
		{70, "intense"},
		{85, "critical"},
		{90, "final_moments"},
	}
	tracker := New(Options{})
	for _, tc := range cases {
		proj, err := tracker.Project(testPrediction("1-0", 70), Snapshot{Minute: tc.minute, CurrentScore: "0-0"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if proj.Phase != tc.want {
			t.Errorf("minute %d phase = %s, want %s", tc.minute, proj.Phase, tc.want)
		}
	}
}
