package models

import (
	"time"
)

// Winner identifies the side a scoreline favours
type Winner string

const (
	WinnerHome          Winner = "Home"
	WinnerAway          Winner = "Away"
	WinnerDraw          Winner = "Draw"
	WinnerIndeterminate Winner = "Indeterminate"
)

// Label returns the display label stored on prediction records
func (w Winner) Label() string {
	switch w {
	case WinnerHome:
		return "Domicile"
	case WinnerAway:
		return "Visiteur"
	case WinnerDraw:
		return "Nul"
	default:
		return string(WinnerIndeterminate)
	}
}

// AlgorithmKind identifies a member of the heuristic algorithm bank
type AlgorithmKind string

const (
	AlgorithmProbability  AlgorithmKind = "probability_based"
	AlgorithmStatistical  AlgorithmKind = "statistical_analysis"
	AlgorithmMarket       AlgorithmKind = "market_sentiment"
	AlgorithmPattern      AlgorithmKind = "pattern_recognition"
	AlgorithmRealTime     AlgorithmKind = "real_time_context"
	AlgorithmNeural       AlgorithmKind = "neural_network"
	AlgorithmExtremeScore AlgorithmKind = "extreme_score"
)

// AlgorithmResult is a single algorithm's candidate score with its local confidence.
// Results are created fresh per prediction request and never mutated.
type AlgorithmResult struct {
	Algorithm  AlgorithmKind `json:"algorithm"`
	Score      string        `json:"score" validate:"required"`
	Confidence float64       `json:"confidence" validate:"gte=0,lte=1"`
	Weight     float64       `json:"weight" validate:"gte=0,lte=1"`
}

// RiskLevel is the qualitative risk tier attached to a prediction
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// ScorePrediction is one ranked alternative scenario
type ScorePrediction struct {
	Score            string    `json:"score"`
	Probability      float64   `json:"probability"`
	Coefficient      float64   `json:"coefficient"`
	Risk             RiskLevel `json:"risk"`
	MarketConfidence float64   `json:"market_confidence"`
}

// ConfidenceAccuracy classifies how well stated confidence matched the outcome
type ConfidenceAccuracy string

const (
	ConfidenceExcellent        ConfidenceAccuracy = "excellent"
	ConfidenceGood             ConfidenceAccuracy = "good"
	ConfidenceAppropriate      ConfidenceAccuracy = "appropriate"
	ConfidenceOverconfident    ConfidenceAccuracy = "overconfident"
	ConfidenceNeedsImprovement ConfidenceAccuracy = "needs_improvement"
)

// ActualResult records the terminal outcome of a verified prediction.
// It is set at most once; the prediction is immutable afterwards.
type ActualResult struct {
	ActualScore         string             `json:"actual_score"`
	ActualWinner        string             `json:"actual_winner"`
	ActualHalftimeScore string             `json:"actual_halftime_score,omitempty"`
	Correct             bool               `json:"correct"`
	InAlternatives      bool               `json:"in_alternatives"`
	ConfidenceAccuracy  ConfidenceAccuracy `json:"confidence_accuracy"`
	ProximityScore      int                `json:"proximity_score"`
	LearningPoints      []string           `json:"learning_points"`
	VerifiedAt          time.Time          `json:"verified_at"`
}

// Prediction is the durable record produced by the engine
type Prediction struct {
	ID            int       `json:"id"`
	HomeTeam      string    `json:"home_team" validate:"required"`
	AwayTeam      string    `json:"away_team" validate:"required"`
	MatchDateTime time.Time `json:"match_date_time" validate:"required"`

	ScoreOdds             []OddsEntry `json:"score_odds"`
	HalftimeScoreOdds     []OddsEntry `json:"halftime_score_odds"`
	Confrontations        []float64   `json:"confrontations"`
	ConfrontationHalftime []OddsEntry `json:"confrontation_halftime"`

	PredictedScore          string            `json:"predicted_score"`
	PredictedWinner         string            `json:"predicted_winner"`
	Confidence              int               `json:"confidence"`
	PredictedHalftimeScore  string            `json:"predicted_halftime_score"`
	PredictedHalftimeWinner string            `json:"predicted_halftime_winner"`
	HalftimeConfidence      int               `json:"halftime_confidence"`
	TopPredictions          []ScorePrediction `json:"top_predictions"`
	AlgorithmBreakdown      []AlgorithmResult `json:"algorithm_breakdown"`
	RiskLevel               RiskLevel         `json:"risk_level"`
	Timestamp               time.Time         `json:"timestamp"`

	ActualResult *ActualResult `json:"actual_result,omitempty"`
}

// Completed reports whether the prediction has been resolved against a final score
func (p *Prediction) Completed() bool {
	return p.ActualResult != nil
}

// MatchStatus is the lifecycle state reported by the result lookup collaborator
type MatchStatus string

const (
	StatusScheduled MatchStatus = "scheduled"
	StatusLive      MatchStatus = "live"
	StatusFinished  MatchStatus = "finished"
	StatusError     MatchStatus = "error"
)

// MatchResult is the shape returned by the external result lookup collaborator.
// Any response that does not fit one of the three healthy statuses is treated
// as StatusError by the engine.
type MatchResult struct {
	Status        MatchStatus `json:"status"`
	FinalScore    string      `json:"final_score,omitempty"`
	CurrentScore  string      `json:"current_score,omitempty"`
	Minute        int         `json:"minute,omitempty"`
	HalftimeScore string      `json:"halftime_score,omitempty"`
}
