package odds

import (
	"math"
	"testing"

	"github.com/fifapredict/scorecast/internal/models"
)

func sampleMarket() []models.OddsEntry {
	return []models.OddsEntry{
		{Score: "1-0", Coefficient: 2.0},
		{Score: "1-1", Coefficient: 4.0},
		{Score: "2-1", Coefficient: 5.0},
		{Score: "0-0", Coefficient: 8.0},
	}
}

func TestFilterDropsInvalidEntries(t *testing.T) {
	entries := []models.OddsEntry{
		{Score: "1-0", Coefficient: 2.0},
		{Score: "bad", Coefficient: 3.0},
		{Score: "2-1", Coefficient: 1.0},
		{Score: "0-0", Coefficient: 0.0},
		{Score: "3-3", Coefficient: 12.5},
	}

	valid := Filter(entries)
	if len(valid) != 2 {
		t.Fatalf("expected 2 valid entries, got %d", len(valid))
	}
	if valid[0].Score != "1-0" || valid[1].Score != "3-3" {
		t.Errorf("unexpected surviving entries: %v", valid)
	}
}

func TestNormalizeSumsToHundred(t *testing.T) {
	normalized := Normalize(sampleMarket())
	if len(normalized) != 4 {
		t.Fatalf("expected 4 normalized entries, got %d", len(normalized))
	}

	sum := 0.0
	for _, n := range normalized {
		sum += n.NormalizedProbability
	}
	if math.Abs(sum-100.0) > 0.01 {
		t.Errorf("normalized probabilities sum to %.4f, want 100", sum)
	}
}

func TestNormalizeRanksLowestCoefficientFirst(t *testing.T) {
	normalized := Normalize(sampleMarket())

	if normalized[0].Score != "1-0" {
		t.Errorf("expected 1-0 ranked first, got %s", normalized[0].Score)
	}
	for i := 1; i < len(normalized); i++ {
		if normalized[i].NormalizedProbability > normalized[i-1].NormalizedProbability {
			t.Errorf("entries not sorted descending at index %d", i)
		}
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	if got := Normalize(nil); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
	if got := Normalize([]models.OddsEntry{{Score: "x", Coefficient: 0.5}}); got != nil {
		t.Errorf("expected nil when no entry is valid, got %v", got)
	}
}

func TestNormalizeDampsNoiseScorelines(t *testing.T) {
	entries := []models.OddsEntry{
		{Score: "1-0", Coefficient: 4.0},
		{Score: "7-0", Coefficient: 4.0},
	}
	normalized := Normalize(entries)

	var regular, noisy float64
	for _, n := range normalized {
		if n.Score == "7-0" {
			noisy = n.NormalizedProbability
		} else {
			regular = n.NormalizedProbability
		}
	}
	if noisy >= regular {
		t.Errorf("7-0 should be damped below 1-0: noisy=%.2f regular=%.2f", noisy, regular)
	}
}

func TestMarketConfidenceSteps(t *testing.T) {
	cases := []struct {
		coefficient float64
		want        float64
	}{
		{1.2, 95},
		{1.5, 95},
		{2.0, 85},
		{3.0, 70},
		{5.0, 55},
		{10.0, 40},
		{50.0, 25},
	}
	for _, tc := range cases {
		if got := MarketConfidence(tc.coefficient); got != tc.want {
			t.Errorf("MarketConfidence(%.1f) = %.0f, want %.0f", tc.coefficient, got, tc.want)
		}
	}
}

func TestHasExtremeSignal(t *testing.T) {
	quiet := sampleMarket()
	if HasExtremeSignal(quiet) {
		t.Error("balanced market should not flag an extreme signal")
	}

	loud := []models.OddsEntry{
		{Score: "1-0", Coefficient: 5.0},
		{Score: "5-0", Coefficient: 2.0},
	}
	if !HasExtremeSignal(loud) {
		t.Error("market concentrated on 5-0 should flag an extreme signal")
	}
}

func TestTotalGoalsExpectation(t *testing.T) {
	normalized := Normalize([]models.OddsEntry{
		{Score: "0-0", Coefficient: 2.0},
		{Score: "2-2", Coefficient: 2.0},
	})
	got := TotalGoalsExpectation(normalized)
	if math.Abs(got-2.0) > 0.01 {
		t.Errorf("expected 2.0 goals, got %.4f", got)
	}
}
