// Package results resolves match outcomes from an external score source.
package results

import (
	"context"
	"strings"
	"time"

	"github.com/fifapredict/scorecast/internal/models"
)

// Provider looks up the current state of a match. Implementations must return
// one of the three healthy statuses or an error; callers map errors to
// degraded fallback responses rather than failing the check.
type Provider interface {
	Lookup(ctx context.Context, home, away string, kickoff time.Time) (models.MatchResult, error)
}

func normalizeTeamName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
