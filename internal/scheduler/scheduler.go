// Package scheduler runs the periodic pending-prediction checks.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/fifapredict/scorecast/internal/engine"
	applogger "github.com/fifapredict/scorecast/internal/logger"
	"github.com/fifapredict/scorecast/internal/models"
)

const checkTimeout = 10 * time.Minute

// Scheduler manages the recurring check job
type Scheduler struct {
	cron      *cron.Cron
	engine    *engine.Engine
	logger    *logrus.Logger
	mu        sync.Mutex
	isRunning bool
	jobIDs    []cron.EntryID
}

// NewScheduler creates a scheduler around the engine
func NewScheduler(eng *engine.Engine, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		engine: eng,
		logger: logger,
	}
}

// SchedulePendingChecks registers the bulk pending check on a cron expression
func (s *Scheduler) SchedulePendingChecks(cronExpression string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
		defer cancel()

		outcomes, err := s.engine.CheckAllPending(ctx)
		if err != nil {
			s.logger.WithError(err).Error("Scheduled pending check failed")
			return
		}

		verified := 0
		for _, out := range outcomes {
			if out.Status == models.StatusFinished && !out.FallbackMode {
				verified++
			}
		}
		applogger.WithComponent(s.logger, "scheduler").WithFields(logrus.Fields{
			"checked":  len(outcomes),
			"verified": verified,
		}).Info("Scheduled pending check completed")
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}
	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("schedule", cronExpression).Info("Scheduled pending checks")
	return nil
}

// Start begins running scheduled jobs
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}
	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}
	s.cron.Start()
	s.isRunning = true
	return nil
}

// Stop halts the scheduler, waiting for in-flight jobs to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.isRunning = false
	s.logger.Info("Scheduler stopped")
}
