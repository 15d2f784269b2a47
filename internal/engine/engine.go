// Package engine orchestrates the full prediction lifecycle: input
// validation, the algorithm bank, ensemble combination, persistence and
// post-match verification.
package engine

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fifapredict/scorecast/internal/algorithms"
	"github.com/fifapredict/scorecast/internal/ensemble"
	"github.com/fifapredict/scorecast/internal/evaluation"
	"github.com/fifapredict/scorecast/internal/features"
	applogger "github.com/fifapredict/scorecast/internal/logger"
	"github.com/fifapredict/scorecast/internal/metrics"
	"github.com/fifapredict/scorecast/internal/models"
	"github.com/fifapredict/scorecast/internal/odds"
	"github.com/fifapredict/scorecast/internal/repository"
	"github.com/fifapredict/scorecast/internal/results"
	"github.com/fifapredict/scorecast/internal/tracking"
)

// Options tunes engine behaviour. Zero values fall back to the defaults
// encoded in DefaultOptions.
type Options struct {
	HalftimeGoalFactor  float64
	LiveBaseGoalRate    float64
	HistoryWindow       int
	MaxAlternatives     int
	CheckWorkers        int
	LookupTimeout       time.Duration
	MinAlgorithmSamples int
}

// DefaultOptions returns the empirically tuned defaults
func DefaultOptions() Options {
	return Options{
		HalftimeGoalFactor:  ensemble.DefaultHalftimeFactor,
		LiveBaseGoalRate:    tracking.DefaultBaseGoalRate,
		HistoryWindow:       10,
		MaxAlternatives:     6,
		CheckWorkers:        4,
		LookupTimeout:       15 * time.Second,
		MinAlgorithmSamples: 5,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.HalftimeGoalFactor == 0 {
		o.HalftimeGoalFactor = d.HalftimeGoalFactor
	}
	if o.LiveBaseGoalRate == 0 {
		o.LiveBaseGoalRate = d.LiveBaseGoalRate
	}
	if o.HistoryWindow == 0 {
		o.HistoryWindow = d.HistoryWindow
	}
	if o.MaxAlternatives == 0 {
		o.MaxAlternatives = d.MaxAlternatives
	}
	if o.CheckWorkers == 0 {
		o.CheckWorkers = d.CheckWorkers
	}
	if o.LookupTimeout == 0 {
		o.LookupTimeout = d.LookupTimeout
	}
	if o.MinAlgorithmSamples == 0 {
		o.MinAlgorithmSamples = d.MinAlgorithmSamples
	}
	return o
}

// Engine ties the prediction pipeline together
type Engine struct {
	repo     repository.PredictionRepository
	provider results.Provider
	features features.Provider
	tracker  *tracking.Tracker
	logger   *logrus.Logger
	opts     Options
	now      func() time.Time
}

// New creates an engine with the given collaborators
func New(repo repository.PredictionRepository, provider results.Provider, feat features.Provider, logger *logrus.Logger, opts Options) *Engine {
	opts = opts.withDefaults()
	return &Engine{
		repo:     repo,
		provider: provider,
		features: feat,
		tracker:  tracking.New(tracking.Options{BaseGoalRate: opts.LiveBaseGoalRate}),
		logger:   logger,
		opts:     opts,
		now:      time.Now,
	}
}

// WithClock overrides the wall clock, for tests
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// CreatePrediction validates the input, runs the algorithm bank, combines the
// candidates and persists the resulting prediction record.
func (e *Engine) CreatePrediction(ctx context.Context, input MatchInput) (*models.Prediction, error) {
	started := e.now()

	if err := input.Validate(); err != nil {
		return nil, err
	}

	log := applogger.WithComponent(e.logger, "engine").WithFields(logrus.Fields{
		"home_team": input.HomeTeam,
		"away_team": input.AwayTeam,
	})

	normalized := odds.Normalize(input.ScoreOdds)
	extremeSignal := odds.HasExtremeSignal(input.ScoreOdds)

	history, err := e.history(ctx)
	if err != nil {
		log.WithError(err).Warn("History unavailable, proceeding without pattern context")
		history = nil
	}

	home := e.features.TeamFeatures(input.HomeTeam)
	away := e.features.TeamFeatures(input.AwayTeam)
	matchCtx := e.features.MatchContext(input.HomeTeam, input.AwayTeam, input.MatchDateTime)

	bankResults := algorithms.Run(algorithms.Input{
		Odds:          normalized,
		Home:          home,
		Away:          away,
		Context:       matchCtx,
		History:       history,
		ExtremeSignal: extremeSignal,
	})

	state := e.weightState(history)
	adjust := contextAdjuster(matchCtx, len(history))
	quality := dataQuality(normalized)

	outcome := ensemble.Combine(bankResults, state, adjust)
	confidence := ensemble.FinalConfidence(outcome, quality)
	halftime := ensemble.DeriveHalftime(bankResults, e.opts.HalftimeGoalFactor, state, adjust, quality)

	prediction := &models.Prediction{
		HomeTeam:                input.HomeTeam,
		AwayTeam:                input.AwayTeam,
		MatchDateTime:           input.MatchDateTime,
		ScoreOdds:               input.ScoreOdds,
		HalftimeScoreOdds:       input.HalftimeScoreOdds,
		Confrontations:          input.Confrontations,
		ConfrontationHalftime:   input.ConfrontationHalftime,
		PredictedScore:          outcome.Score,
		PredictedWinner:         odds.DetermineWinner(outcome.Score).Label(),
		Confidence:              confidence,
		PredictedHalftimeScore:  halftime.Score,
		PredictedHalftimeWinner: halftime.Winner.Label(),
		HalftimeConfidence:      halftime.Confidence,
		TopPredictions:          e.rankAlternatives(normalized),
		AlgorithmBreakdown:      outcome.Weighted,
		RiskLevel:               ensemble.AssessRisk(home.OverallRating, away.OverallRating),
		Timestamp:               e.now(),
	}

	if err := e.repo.Create(ctx, prediction); err != nil {
		return nil, err
	}

	metrics.RecordPredictionCreated(e.now().Sub(started).Seconds())
	log.WithFields(logrus.Fields{
		"prediction_id": prediction.ID,
		"score":         prediction.PredictedScore,
		"confidence":    prediction.Confidence,
		"risk":          prediction.RiskLevel,
	}).Info("Prediction created")

	return prediction, nil
}

// GetPrediction returns a stored prediction by ID
func (e *Engine) GetPrediction(ctx context.Context, id int) (*models.Prediction, error) {
	return e.repo.GetByID(ctx, id)
}

// ListPredictions returns all stored predictions
func (e *Engine) ListPredictions(ctx context.Context) ([]*models.Prediction, error) {
	return e.repo.GetAll(ctx)
}

// Stats recomputes accuracy statistics over the full prediction collection
// and pushes the headline figures to the metrics registry.
func (e *Engine) Stats(ctx context.Context) (evaluation.AccuracyStats, error) {
	all, err := e.repo.GetAll(ctx)
	if err != nil {
		return evaluation.AccuracyStats{}, err
	}
	stats := evaluation.ComputeStats(all)
	metrics.UpdateAccuracy(float64(stats.AccuracyRate), float64(stats.ConfidenceCalibration))
	metrics.UpdatePending(float64(stats.PendingPredictions))
	return stats, nil
}

// rankAlternatives selects the top market scenarios with their risk grades
func (e *Engine) rankAlternatives(normalized []models.NormalizedOdds) []models.ScorePrediction {
	limit := e.opts.MaxAlternatives
	if limit > len(normalized) {
		limit = len(normalized)
	}
	alternatives := make([]models.ScorePrediction, 0, limit)
	for i := 0; i < limit; i++ {
		entry := normalized[i]
		alternatives = append(alternatives, models.ScorePrediction{
			Score:            entry.Score,
			Probability:      entry.NormalizedProbability,
			Coefficient:      entry.Coefficient,
			Risk:             ensemble.AlternativeRisk(entry.Coefficient, i),
			MarketConfidence: entry.MarketConfidence,
		})
	}
	return alternatives
}

// history returns the completed predictions window consumed by pattern
// recognition and performance weighting, oldest first.
func (e *Engine) history(ctx context.Context) ([]*models.Prediction, error) {
	completed, err := e.repo.GetCompleted(ctx)
	if err != nil {
		return nil, err
	}
	if len(completed) > e.opts.HistoryWindow {
		completed = completed[len(completed)-e.opts.HistoryWindow:]
	}
	return completed, nil
}

// weightState folds historical per-algorithm accuracy into the dynamic
// weight multipliers.
func (e *Engine) weightState(history []*models.Prediction) ensemble.WeightState {
	state := ensemble.NewWeightState()
	for kind, mult := range evaluation.PerformanceMultipliers(history, e.opts.MinAlgorithmSamples) {
		state.PerformanceMultipliers[kind] = mult
	}
	return state
}

// contextAdjuster maps fixture context onto per-algorithm weight nudges.
// Real-time context earns trust with fresh data; pattern recognition is
// discounted while history is thin.
func contextAdjuster(matchCtx features.MatchContext, historySize int) ensemble.ContextAdjuster {
	return func(kind models.AlgorithmKind) float64 {
		switch kind {
		case models.AlgorithmRealTime:
			return 0.9 + 0.2*(matchCtx.DataFreshness-0.8)/0.2
		case models.AlgorithmPattern:
			if historySize < 3 {
				return 0.92
			}
			return 1.0
		case models.AlgorithmMarket:
			return 2.0 - matchCtx.MarketVolatility
		default:
			return 1.0
		}
	}
}

func dataQuality(normalized []models.NormalizedOdds) ensemble.DataQuality {
	distinct := make(map[string]struct{}, len(normalized))
	for _, n := range normalized {
		distinct[n.Score] = struct{}{}
	}
	return ensemble.DataQuality{
		ValidOddsCount: len(normalized),
		DistinctScores: len(distinct),
	}
}
