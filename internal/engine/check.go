package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/fifapredict/scorecast/internal/evaluation"
	applogger "github.com/fifapredict/scorecast/internal/logger"
	"github.com/fifapredict/scorecast/internal/metrics"
	"github.com/fifapredict/scorecast/internal/models"
	"github.com/fifapredict/scorecast/internal/tracking"
)

// CheckOutcome is the result of checking one prediction against the live
// result source. A lookup failure produces a degraded outcome with
// FallbackMode set rather than an error; only repository failures propagate.
type CheckOutcome struct {
	PredictionID int                  `json:"prediction_id"`
	Status       models.MatchStatus   `json:"status"`
	Message      string               `json:"message,omitempty"`
	FallbackMode bool                 `json:"fallback_mode,omitempty"`
	Prediction   *models.Prediction   `json:"prediction,omitempty"`
	Projection   *tracking.Projection `json:"projection,omitempty"`
}

// CheckPrediction resolves the match state for one prediction and advances it
// through its lifecycle: verification when finished, live re-projection when
// in progress, a readiness note when still scheduled.
func (e *Engine) CheckPrediction(ctx context.Context, id int) (CheckOutcome, error) {
	pred, err := e.repo.GetByID(ctx, id)
	if err != nil {
		return CheckOutcome{}, err
	}
	return e.check(ctx, pred)
}

func (e *Engine) check(ctx context.Context, pred *models.Prediction) (CheckOutcome, error) {
	outcome := CheckOutcome{PredictionID: pred.ID, Prediction: pred}
	log := applogger.WithComponent(e.logger, "engine").WithField("prediction_id", pred.ID)

	if pred.Completed() {
		outcome.Status = models.StatusFinished
		outcome.Message = "already verified"
		return outcome, nil
	}

	lookupCtx, cancel := context.WithTimeout(ctx, e.opts.LookupTimeout)
	defer cancel()

	result, err := e.provider.Lookup(lookupCtx, pred.HomeTeam, pred.AwayTeam, pred.MatchDateTime)
	if err != nil {
		metrics.RecordLookupFailure()
		metrics.RecordCheck(string(models.StatusError))
		log.WithError(err).Warn("Result lookup failed, returning degraded outcome")
		outcome.Status = models.StatusError
		outcome.FallbackMode = true
		outcome.Message = "result source unavailable; prediction stands unverified"
		return outcome, nil
	}

	metrics.RecordCheck(string(result.Status))

	switch result.Status {
	case models.StatusFinished:
		return e.verify(ctx, pred, result, log)

	case models.StatusLive:
		projection, err := e.tracker.Project(pred, tracking.Snapshot{
			Minute:       result.Minute,
			CurrentScore: result.CurrentScore,
		})
		if err != nil {
			outcome.Status = models.StatusError
			outcome.FallbackMode = true
			outcome.Message = fmt.Sprintf("live projection failed: %v", err)
			return outcome, nil
		}
		outcome.Status = models.StatusLive
		outcome.Projection = &projection
		outcome.Message = fmt.Sprintf("live at minute %d, current score %s", result.Minute, result.CurrentScore)
		return outcome, nil

	case models.StatusScheduled:
		outcome.Status = models.StatusScheduled
		outcome.Message = "match has not started yet"
		return outcome, nil

	default:
		outcome.Status = models.StatusError
		outcome.FallbackMode = true
		outcome.Message = "result source returned an unusable state"
		return outcome, nil
	}
}

// verify records the final score against the prediction exactly once
func (e *Engine) verify(ctx context.Context, pred *models.Prediction, result models.MatchResult, log *logrus.Entry) (CheckOutcome, error) {
	outcome := CheckOutcome{PredictionID: pred.ID, Status: models.StatusFinished}

	if !models.ValidScoreString(result.FinalScore) {
		outcome.Status = models.StatusError
		outcome.FallbackMode = true
		outcome.Prediction = pred
		outcome.Message = fmt.Sprintf("unusable final score %q", result.FinalScore)
		return outcome, nil
	}

	actual := evaluation.BuildActualResult(pred, result.FinalScore, result.HalftimeScore, e.now())
	updated, err := e.repo.SetActualResult(ctx, pred.ID, &actual)
	if err != nil {
		if err == models.ErrAlreadyFinal {
			outcome.Prediction = pred
			outcome.Message = "conflicting final score, keeping original verification"
			return outcome, nil
		}
		return CheckOutcome{}, err
	}

	metrics.RecordVerification(actual.Correct)
	log.WithFields(logrus.Fields{
		"final_score": result.FinalScore,
		"correct":     actual.Correct,
		"proximity":   actual.ProximityScore,
	}).Info("Prediction verified")

	outcome.Prediction = updated
	outcome.Message = fmt.Sprintf("finished %s", result.FinalScore)
	return outcome, nil
}

// CheckAllPending checks every unresolved prediction through a bounded worker
// pool. Individual failures are captured in their outcome; the batch itself
// only fails when the repository does.
func (e *Engine) CheckAllPending(ctx context.Context) ([]CheckOutcome, error) {
	started := e.now()

	pending, err := e.repo.GetPending(ctx)
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		return nil, nil
	}

	workers := e.opts.CheckWorkers
	if workers > len(pending) {
		workers = len(pending)
	}

	jobs := make(chan int)
	outcomes := make([]CheckOutcome, len(pending))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				out, err := e.check(ctx, pending[idx])
				if err != nil {
					out = CheckOutcome{
						PredictionID: pending[idx].ID,
						Status:       models.StatusError,
						FallbackMode: true,
						Message:      err.Error(),
					}
				}
				outcomes[idx] = out
			}
		}()
	}

	for idx := range pending {
		select {
		case jobs <- idx:
		case <-ctx.Done():
			idx := idx
			for ; idx < len(pending); idx++ {
				outcomes[idx] = CheckOutcome{
					PredictionID: pending[idx].ID,
					Status:       models.StatusError,
					FallbackMode: true,
					Message:      ctx.Err().Error(),
				}
			}
			close(jobs)
			wg.Wait()
			return outcomes, nil
		}
	}
	close(jobs)
	wg.Wait()

	metrics.CheckBatchDuration.Observe(e.now().Sub(started).Seconds())
	applogger.WithComponent(e.logger, "engine").
		WithField("checked", len(pending)).
		Info("Pending check batch complete")

	return outcomes, nil
}
