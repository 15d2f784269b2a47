package results

import (
	"context"
	"testing"
	"time"

	"github.com/fifapredict/scorecast/internal/models"
	"github.com/fifapredict/scorecast/internal/odds"
)

var testClock = time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testClock }

func TestLookupKnownFixture(t *testing.T) {
	provider := NewSimulatedProvider(1).WithClock(fixedClock)

	result, err := provider.Lookup(context.Background(), "Manchester City", "Liverpool", testClock)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if result.Status != models.StatusFinished {
		t.Errorf("status = %s, want finished", result.Status)
	}
	if result.FinalScore != "2-1" {
		t.Errorf("final score = %s, want 2-1", result.FinalScore)
	}
	if result.HalftimeScore != "1-0" {
		t.Errorf("halftime score = %s, want 1-0", result.HalftimeScore)
	}
}

func TestLookupScheduledMatch(t *testing.T) {
	provider := NewSimulatedProvider(1).WithClock(fixedClock)
	kickoff := testClock.Add(2 * time.Hour)

	result, err := provider.Lookup(context.Background(), "Lyon", "Marseille", kickoff)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if result.Status != models.StatusScheduled {
		t.Errorf("future kickoff status = %s, want scheduled", result.Status)
	}
}

func TestLookupLiveMatch(t *testing.T) {
	provider := NewSimulatedProvider(1).WithClock(fixedClock)
	kickoff := testClock.Add(-30 * time.Minute)

	result, err := provider.Lookup(context.Background(), "Lyon", "Marseille", kickoff)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if result.Status != models.StatusLive {
		t.Fatalf("in-progress status = %s, want live", result.Status)
	}
	if result.Minute != 30 {
		t.Errorf("minute = %d, want 30", result.Minute)
	}
	if !models.ValidScoreString(result.CurrentScore) {
		t.Errorf("current score %q is malformed", result.CurrentScore)
	}
	if result.HalftimeScore != "" {
		t.Error("halftime score should be empty before minute 45")
	}
}

func TestLookupFinishedMatch(t *testing.T) {
	provider := NewSimulatedProvider(1).WithClock(fixedClock)
	kickoff := testClock.Add(-3 * time.Hour)

	result, err := provider.Lookup(context.Background(), "Lyon", "Marseille", kickoff)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if result.Status != models.StatusFinished {
		t.Fatalf("past kickoff status = %s, want finished", result.Status)
	}
	if !models.ValidScoreString(result.FinalScore) {
		t.Errorf("final score %q is malformed", result.FinalScore)
	}

	// The halftime score can never exceed the final score.
	fh, fa, _ := odds.ParseScore(result.FinalScore)
	hh, ha, err := odds.ParseScore(result.HalftimeScore)
	if err != nil {
		t.Fatalf("halftime score %q is malformed", result.HalftimeScore)
	}
	if hh > fh || ha > fa {
		t.Errorf("halftime %s exceeds final %s", result.HalftimeScore, result.FinalScore)
	}
}

func TestLookupHonoursContextCancellation(t *testing.T) {
	provider := NewSimulatedProvider(1).WithClock(fixedClock)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := provider.Lookup(ctx, "Lyon", "Marseille", testClock); err == nil {
		t.Error("expected error from cancelled context")
	}
}

func TestTruncateScoreForTime(t *testing.T) {
	if got := truncateScoreForTime("2-1", 45); got != "1-0" {
		t.Errorf("2-1 at minute 45 = %s, want 1-0", got)
	}
	if got := truncateScoreForTime("3-2", 90); got != "3-2" {
		t.Errorf("full match should keep the score, got %s", got)
	}
	if got := truncateScoreForTime("3-2", 0); got != "0-0" {
		t.Errorf("kickoff score = %s, want 0-0", got)
	}
}
