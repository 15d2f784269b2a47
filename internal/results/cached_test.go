package results

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fifapredict/scorecast/internal/models"
)

type countingProvider struct {
	calls  int
	result models.MatchResult
	err    error
}

func (p *countingProvider) Lookup(ctx context.Context, home, away string, kickoff time.Time) (models.MatchResult, error) {
	p.calls++
	return p.result, p.err
}

func TestCachedProviderServesFromCache(t *testing.T) {
	inner := &countingProvider{result: models.MatchResult{Status: models.StatusLive, CurrentScore: "1-0", Minute: 40}}
	cached := NewCachedProvider(inner, time.Minute)
	kickoff := time.Now()

	for i := 0; i < 3; i++ {
		result, err := cached.Lookup(context.Background(), "Chelsea", "Arsenal", kickoff)
		if err != nil {
			t.Fatalf("lookup %d failed: %v", i, err)
		}
		if result.CurrentScore != "1-0" {
			t.Errorf("lookup %d score = %s", i, result.CurrentScore)
		}
	}

	if inner.calls != 1 {
		t.Errorf("inner provider called %d times, want 1", inner.calls)
	}
	hits, misses := cached.Stats()
	if hits != 2 || misses != 1 {
		t.Errorf("stats = %d hits / %d misses, want 2/1", hits, misses)
	}
}

func TestCachedProviderDistinguishesFixtures(t *testing.T) {
	inner := &countingProvider{result: models.MatchResult{Status: models.StatusScheduled}}
	cached := NewCachedProvider(inner, time.Minute)
	kickoff := time.Now()

	cached.Lookup(context.Background(), "Chelsea", "Arsenal", kickoff)
	cached.Lookup(context.Background(), "Liverpool", "Everton", kickoff)

	if inner.calls != 2 {
		t.Errorf("distinct fixtures should each reach the inner provider, got %d calls", inner.calls)
	}
}

func TestCachedProviderDoesNotCacheErrors(t *testing.T) {
	inner := &countingProvider{
		result: models.MatchResult{Status: models.StatusError},
		err:    errors.New("upstream down"),
	}
	cached := NewCachedProvider(inner, time.Minute)
	kickoff := time.Now()

	for i := 0; i < 2; i++ {
		if _, err := cached.Lookup(context.Background(), "Chelsea", "Arsenal", kickoff); err == nil {
			t.Fatal("expected lookup error")
		}
	}
	if inner.calls != 2 {
		t.Errorf("errors must not be cached, inner called %d times", inner.calls)
	}
}

func TestCachedProviderFlush(t *testing.T) {
	inner := &countingProvider{result: models.MatchResult{Status: models.StatusScheduled}}
	cached := NewCachedProvider(inner, time.Minute)
	kickoff := time.Now()

	cached.Lookup(context.Background(), "Chelsea", "Arsenal", kickoff)
	cached.Flush()
	cached.Lookup(context.Background(), "Chelsea", "Arsenal", kickoff)

	if inner.calls != 2 {
		t.Errorf("flush should evict entries, inner called %d times", inner.calls)
	}
}
