package engine

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/fifapredict/scorecast/internal/models"
	"github.com/fifapredict/scorecast/internal/odds"
)

// Input shape requirements
const (
	minValidFullTimeOdds = 3
	minValidHalftimeOdds = 3
	confrontationCount   = 5
	minConfrontationHT   = 4
)

var inputValidator = validator.New()

// MatchInput is the full request to create a prediction
type MatchInput struct {
	HomeTeam              string             `json:"home_team" validate:"required"`
	AwayTeam              string             `json:"away_team" validate:"required"`
	MatchDateTime         time.Time          `json:"match_date_time" validate:"required"`
	ScoreOdds             []models.OddsEntry `json:"score_odds" validate:"required"`
	HalftimeScoreOdds     []models.OddsEntry `json:"halftime_score_odds" validate:"required"`
	Confrontations        []float64          `json:"confrontations" validate:"required"`
	ConfrontationHalftime []models.OddsEntry `json:"confrontation_halftime" validate:"required"`
}

// Validate checks both presence and semantic shape of the input. All problems
// are collected into a single ValidationError so the caller can report every
// defect at once.
func (in MatchInput) Validate() error {
	verr := models.NewValidationError()

	if err := inputValidator.Struct(in); err != nil {
		if fieldErrors, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range fieldErrors {
				verr.Add(fe.Field(), fmt.Sprintf("failed %q constraint", fe.Tag()))
			}
		} else {
			return err
		}
	}

	if in.HomeTeam != "" && in.HomeTeam == in.AwayTeam {
		verr.Add("AwayTeam", "must differ from home team")
	}

	if n := len(odds.Filter(in.ScoreOdds)); n < minValidFullTimeOdds {
		verr.Add("ScoreOdds", fmt.Sprintf("needs at least %d valid entries, got %d", minValidFullTimeOdds, n))
	}
	if n := len(odds.Filter(in.HalftimeScoreOdds)); n < minValidHalftimeOdds {
		verr.Add("HalftimeScoreOdds", fmt.Sprintf("needs at least %d valid entries, got %d", minValidHalftimeOdds, n))
	}

	if len(in.Confrontations) != confrontationCount {
		verr.Add("Confrontations", fmt.Sprintf("needs exactly %d coefficients, got %d", confrontationCount, len(in.Confrontations)))
	} else {
		for i, c := range in.Confrontations {
			if c <= 0 {
				verr.Add("Confrontations", fmt.Sprintf("coefficient %d must be positive", i))
				break
			}
		}
	}

	if len(in.ConfrontationHalftime) < minConfrontationHT {
		verr.Add("ConfrontationHalftime", fmt.Sprintf("needs at least %d entries, got %d", minConfrontationHT, len(in.ConfrontationHalftime)))
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}
