package models

import (
	"regexp"
)

var scorePattern = regexp.MustCompile(`^\d+-\d+$`)

// OddsEntry represents a single exact-score betting market entry
type OddsEntry struct {
	Score       string  `json:"score" validate:"required"`
	Coefficient float64 `json:"coefficient" validate:"required,gt=1"`
}

// Valid reports whether the entry carries a well-formed score and a usable coefficient
func (o OddsEntry) Valid() bool {
	return scorePattern.MatchString(o.Score) && o.Coefficient > 1.0
}

// ImpliedProbability returns the bookmaker-implied probability as a percentage
func (o OddsEntry) ImpliedProbability() float64 {
	if o.Coefficient <= 0 {
		return 0
	}
	return 100.0 / o.Coefficient
}

// ValidScoreString reports whether s is a well-formed "H-A" scoreline
func ValidScoreString(s string) bool {
	return scorePattern.MatchString(s)
}

// ScoreType categorizes a scoreline by its goal profile
type ScoreType string

const (
	ScoreDefensive  ScoreType = "defensive"
	ScoreBalanced   ScoreType = "balanced"
	ScoreAttacking  ScoreType = "attacking"
	ScoreExtreme    ScoreType = "extreme"
	ScoreUnbalanced ScoreType = "unbalanced"
)

// NormalizedOdds is an OddsEntry enriched with calibrated probabilities
type NormalizedOdds struct {
	OddsEntry
	NormalizedProbability float64   `json:"normalized_probability"`
	Weight                float64   `json:"weight"`
	MarketConfidence      float64   `json:"market_confidence"`
	Type                  ScoreType `json:"score_type"`
}
