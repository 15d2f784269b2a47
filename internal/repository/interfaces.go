package repository

import (
	"context"
	"time"

	"github.com/fifapredict/scorecast/internal/models"
)

// PredictionRepository defines the interface for prediction data access
type PredictionRepository interface {
	Create(ctx context.Context, prediction *models.Prediction) error
	GetByID(ctx context.Context, id int) (*models.Prediction, error)
	GetAll(ctx context.Context) ([]*models.Prediction, error)
	GetPending(ctx context.Context) ([]*models.Prediction, error)
	GetCompleted(ctx context.Context) ([]*models.Prediction, error)
	GetByTeams(ctx context.Context, home, away string) ([]*models.Prediction, error)
	GetByDateRange(ctx context.Context, start, end time.Time) ([]*models.Prediction, error)
	Update(ctx context.Context, prediction *models.Prediction) error
	SetActualResult(ctx context.Context, id int, result *models.ActualResult) (*models.Prediction, error)
	Delete(ctx context.Context, id int) error
}
