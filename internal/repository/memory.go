package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/fifapredict/scorecast/internal/models"
)

// MemoryPredictionRepository is an in-process PredictionRepository backed by a
// map. All reads return copies so callers cannot mutate stored records.
type MemoryPredictionRepository struct {
	mu          sync.RWMutex
	predictions map[int]*models.Prediction
}

// NewMemoryPredictionRepository creates an empty in-memory repository
func NewMemoryPredictionRepository() *MemoryPredictionRepository {
	return &MemoryPredictionRepository{
		predictions: make(map[int]*models.Prediction),
	}
}

// Seed loads pre-built predictions, preserving their IDs. Records without an
// ID get the next available one. Intended for replays and test fixtures.
func (r *MemoryPredictionRepository) Seed(predictions []*models.Prediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range predictions {
		if p == nil {
			continue
		}
		clone := clonePrediction(p)
		if clone.ID == 0 {
			maxID := 0
			for id := range r.predictions {
				if id > maxID {
					maxID = id
				}
			}
			clone.ID = maxID + 1
		}
		if _, ok := r.predictions[clone.ID]; ok {
			return fmt.Errorf("seed: duplicate prediction id %d", clone.ID)
		}
		r.predictions[clone.ID] = clone
	}
	return nil
}

// Create stores a prediction and assigns it the next available ID
func (r *MemoryPredictionRepository) Create(_ context.Context, prediction *models.Prediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	maxID := 0
	for id := range r.predictions {
		if id > maxID {
			maxID = id
		}
	}
	prediction.ID = maxID + 1
	r.predictions[prediction.ID] = clonePrediction(prediction)
	return nil
}

// GetByID retrieves a prediction by ID
func (r *MemoryPredictionRepository) GetByID(_ context.Context, id int) (*models.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.predictions[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return clonePrediction(stored), nil
}

// GetAll returns every stored prediction ordered by ID
func (r *MemoryPredictionRepository) GetAll(_ context.Context) ([]*models.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(*models.Prediction) bool { return true }), nil
}

// GetPending returns predictions that have no recorded actual result
func (r *MemoryPredictionRepository) GetPending(_ context.Context) ([]*models.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(p *models.Prediction) bool { return !p.Completed() }), nil
}

// GetCompleted returns predictions with a recorded actual result
func (r *MemoryPredictionRepository) GetCompleted(_ context.Context) ([]*models.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(p *models.Prediction) bool { return p.Completed() }), nil
}

// GetByTeams returns predictions for the given pairing in either venue order
func (r *MemoryPredictionRepository) GetByTeams(_ context.Context, home, away string) ([]*models.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(p *models.Prediction) bool {
		return (p.HomeTeam == home && p.AwayTeam == away) ||
			(p.HomeTeam == away && p.AwayTeam == home)
	}), nil
}

// GetByDateRange returns predictions whose kickoff falls within [start, end]
func (r *MemoryPredictionRepository) GetByDateRange(_ context.Context, start, end time.Time) ([]*models.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(p *models.Prediction) bool {
		return !p.MatchDateTime.Before(start) && !p.MatchDateTime.After(end)
	}), nil
}

// Update replaces a stored prediction
func (r *MemoryPredictionRepository) Update(_ context.Context, prediction *models.Prediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.predictions[prediction.ID]; !ok {
		return models.ErrNotFound
	}
	r.predictions[prediction.ID] = clonePrediction(prediction)
	return nil
}

// SetActualResult records a match outcome exactly once. Re-recording the same
// final score is a no-op returning the stored record; recording a different
// score fails with ErrAlreadyFinal.
func (r *MemoryPredictionRepository) SetActualResult(_ context.Context, id int, result *models.ActualResult) (*models.Prediction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.predictions[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if stored.ActualResult != nil {
		if stored.ActualResult.ActualScore == result.ActualScore {
			return clonePrediction(stored), nil
		}
		return nil, models.ErrAlreadyFinal
	}

	stored.ActualResult = cloneActualResult(result)
	return clonePrediction(stored), nil
}

// Delete removes a prediction by ID
func (r *MemoryPredictionRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.predictions[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.predictions, id)
	return nil
}

// collect filters stored predictions and returns copies sorted by ID.
// Callers must hold at least the read lock.
func (r *MemoryPredictionRepository) collect(keep func(*models.Prediction) bool) []*models.Prediction {
	out := make([]*models.Prediction, 0, len(r.predictions))
	for _, p := range r.predictions {
		if keep(p) {
			out = append(out, clonePrediction(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func clonePrediction(p *models.Prediction) *models.Prediction {
	if p == nil {
		return nil
	}
	clone := *p
	clone.ScoreOdds = append([]models.OddsEntry(nil), p.ScoreOdds...)
	clone.HalftimeScoreOdds = append([]models.OddsEntry(nil), p.HalftimeScoreOdds...)
	clone.Confrontations = append([]float64(nil), p.Confrontations...)
	clone.ConfrontationHalftime = append([]models.OddsEntry(nil), p.ConfrontationHalftime...)
	clone.TopPredictions = append([]models.ScorePrediction(nil), p.TopPredictions...)
	clone.AlgorithmBreakdown = append([]models.AlgorithmResult(nil), p.AlgorithmBreakdown...)
	clone.ActualResult = cloneActualResult(p.ActualResult)
	return &clone
}

func cloneActualResult(a *models.ActualResult) *models.ActualResult {
	if a == nil {
		return nil
	}
	clone := *a
	clone.LearningPoints = append([]string(nil), a.LearningPoints...)
	return &clone
}
