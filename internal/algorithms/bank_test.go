package algorithms

import (
	"reflect"
	"testing"

	"github.com/fifapredict/scorecast/internal/features"
	"github.com/fifapredict/scorecast/internal/models"
	"github.com/fifapredict/scorecast/internal/odds"
)

func evenFeatures() features.TeamFeatures {
	return features.TeamFeatures{
		OverallRating:    80,
		AttackRating:     80,
		DefenseRating:    80,
		CurrentForm:      6,
		GoalsPerMatch:    1.5,
		ExtremeScoreRate: 0.02,
	}
}

func neutralContext() features.MatchContext {
	return features.MatchContext{
		HoursToKickoff:   24,
		HomeAdvantage:    0.5,
		MarketVolatility: 0.9,
		DataFreshness:    0.9,
		AttackMomentum:   1.0,
		DefenseStability: 1.0,
	}
}

func testInput() Input {
	normalized := odds.Normalize([]models.OddsEntry{
		{Score: "1-0", Coefficient: 2.0},
		{Score: "1-1", Coefficient: 4.0},
		{Score: "2-1", Coefficient: 5.0},
		{Score: "0-0", Coefficient: 8.0},
	})
	return Input{
		Odds:    normalized,
		Home:    evenFeatures(),
		Away:    evenFeatures(),
		Context: neutralContext(),
	}
}

func TestBankOrderIsStable(t *testing.T) {
	want := []models.AlgorithmKind{
		models.AlgorithmProbability,
		models.AlgorithmStatistical,
		models.AlgorithmMarket,
		models.AlgorithmPattern,
		models.AlgorithmRealTime,
		models.AlgorithmNeural,
		models.AlgorithmExtremeScore,
	}
	got := make([]models.AlgorithmKind, 0, len(want))
	for _, a := range Bank() {
		got = append(got, a.Kind())
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("bank order = %v, want %v", got, want)
	}
}

func TestRunProducesOneResultPerAlgorithm(t *testing.T) {
	results := Run(testInput())
	if len(results) != len(Bank()) {
		t.Fatalf("got %d results for %d algorithms", len(results), len(Bank()))
	}
	for _, r := range results {
		if !models.ValidScoreString(r.Score) {
			t.Errorf("%s produced malformed score %q", r.Algorithm, r.Score)
		}
		if r.Confidence < 0 || r.Confidence > 1 {
			t.Errorf("%s confidence %f out of [0,1]", r.Algorithm, r.Confidence)
		}
		if r.Weight <= 0 {
			t.Errorf("%s weight %f must be positive", r.Algorithm, r.Weight)
		}
	}
}

func TestRunIsDeterministic(t *testing.T) {
	first := Run(testInput())
	for i := 0; i < 20; i++ {
		if again := Run(testInput()); !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d diverged", i)
		}
	}
}

func TestProbabilityBasedFollowsMarketWhenEven(t *testing.T) {
	r := probabilityBased{}.Predict(testInput())
	if r.Score != "1-0" {
		t.Errorf("even teams should follow the market leader 1-0, got %s", r.Score)
	}
}

func TestProbabilityBasedBoostsStrongerSide(t *testing.T) {
	in := testInput()
	in.Home.OverallRating = 90
	in.Away.OverallRating = 70

	r := probabilityBased{}.Predict(in)
	// The strength boost scales every candidate equally, so the ranking holds;
	// what must rise is confidence in the favorite.
	even := probabilityBased{}.Predict(testInput())
	if r.Confidence <= even.Confidence {
		t.Errorf("stronger home side should not lower confidence: %f vs %f", r.Confidence, even.Confidence)
	}
}

func TestMarketSentimentPicksShortestOdds(t *testing.T) {
	r := marketSentiment{}.Predict(testInput())
	if r.Score != "1-0" {
		t.Errorf("market sentiment should pick the shortest odds, got %s", r.Score)
	}
	if r.Confidence <= 0 || r.Confidence > 0.9 {
		t.Errorf("confidence %f out of expected band", r.Confidence)
	}
}

func TestAlgorithmsDegradeWithoutOdds(t *testing.T) {
	in := testInput()
	in.Odds = nil

	results := Run(in)
	if len(results) != len(Bank()) {
		t.Fatalf("empty odds should still produce %d results, got %d", len(Bank()), len(results))
	}
	for _, r := range results {
		if !models.ValidScoreString(r.Score) {
			t.Errorf("%s produced malformed score %q without odds", r.Algorithm, r.Score)
		}
	}
}

func TestExtremeDetectorElevated(t *testing.T) {
	in := testInput()
	in.Home.ExtremeScoreRate = 0.4
	in.Away.ExtremeScoreRate = 0.3
	in.Home.AttackRating = 90
	in.Away.AttackRating = 70

	r := extremeDetector{}.Predict(in)
	home, away, err := odds.ParseScore(r.Score)
	if err != nil {
		t.Fatalf("malformed score %q", r.Score)
	}
	if home != 5 {
		t.Errorf("elevated extreme risk should credit 5 goals to the stronger attack, got %s", r.Score)
	}
	if away >= home {
		t.Errorf("weaker side should stay below the extreme side, got %s", r.Score)
	}
}

func TestExtremeDetectorQuietMarket(t *testing.T) {
	r := extremeDetector{}.Predict(testInput())
	if r.Score != "1-0" {
		t.Errorf("quiet market should side with the leader, got %s", r.Score)
	}
	if r.Confidence >= extremeThreshold {
		t.Errorf("quiet market confidence %f should stay below %f", r.Confidence, extremeThreshold)
	}
}

func TestStatisticalRespondsToAttackStrength(t *testing.T) {
	weak := testInput()
	strong := testInput()
	strong.Home.AttackRating = 95
	strong.Home.GoalsPerMatch = 3.0

	weakHome, _, _ := odds.ParseScore(statistical{}.Predict(weak).Score)
	strongHome, _, _ := odds.ParseScore(statistical{}.Predict(strong).Score)
	if strongHome < weakHome {
		t.Errorf("stronger attack produced fewer goals: %d < %d", strongHome, weakHome)
	}
}

func TestPatternRecognitionUsesHistory(t *testing.T) {
	in := testInput()
	history := make([]*models.Prediction, 0, 4)
	for i := 0; i < 4; i++ {
		history = append(history, &models.Prediction{
			RiskLevel:    models.RiskHigh, // same tier as the even test teams
			ActualResult: &models.ActualResult{ActualScore: "2-2"},
		})
	}
	in.History = history

	r := patternRecognition{}.Predict(in)
	if r.Score != "2-2" {
		t.Errorf("repeated 2-2 outcomes in comparable matches should surface, got %s", r.Score)
	}
}
