package odds

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fifapredict/scorecast/internal/models"
)

// Classification holds the derived features of a scoreline
type Classification struct {
	Total      int
	Difference int
	Type       models.ScoreType
}

// ParseScore splits an "H-A" scoreline into its goal counts
func ParseScore(score string) (home, away int, err error) {
	parts := strings.SplitN(score, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed score %q", score)
	}
	home, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("malformed home goals in %q", score)
	}
	away, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("malformed away goals in %q", score)
	}
	if home < 0 || away < 0 {
		return 0, 0, fmt.Errorf("negative goals in %q", score)
	}
	return home, away, nil
}

// FormatScore renders goal counts as the canonical "H-A" string
func FormatScore(home, away int) string {
	return strconv.Itoa(home) + "-" + strconv.Itoa(away)
}

// Classify categorizes a scoreline. Rules apply in priority order: a side
// reaching extremeSideGoals wins over every other category.
func Classify(score string) Classification {
	home, away, err := ParseScore(score)
	if err != nil {
		return Classification{Type: models.ScoreBalanced}
	}
	return ClassifyGoals(home, away)
}

// ClassifyGoals categorizes parsed goal counts
func ClassifyGoals(home, away int) Classification {
	c := Classification{
		Total:      home + away,
		Difference: abs(home - away),
	}
	switch {
	case home >= extremeSideGoals || away >= extremeSideGoals:
		c.Type = models.ScoreExtreme
	case c.Total >= attackingTotalGoals:
		c.Type = models.ScoreAttacking
	case c.Total <= defensiveTotalGoals:
		c.Type = models.ScoreDefensive
	case c.Difference >= unbalancedDifference:
		c.Type = models.ScoreUnbalanced
	default:
		c.Type = models.ScoreBalanced
	}
	return c
}

// DetermineWinner derives the winning side from a scoreline. Malformed input
// yields WinnerIndeterminate; every well-formed scoreline maps to exactly one
// of Home, Away, Draw.
func DetermineWinner(score string) models.Winner {
	home, away, err := ParseScore(score)
	if err != nil {
		return models.WinnerIndeterminate
	}
	switch {
	case home > away:
		return models.WinnerHome
	case away > home:
		return models.WinnerAway
	default:
		return models.WinnerDraw
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
