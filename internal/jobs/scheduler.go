package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

type SeasonService interface {
	DeactivateEnded(ctx context.Context, now time.Time) (int64, error)
}

// Scheduler owns the background jobs. Right now that is a single sweep
// deactivating seasons whose end date has passed.
type Scheduler struct {
	sched     gocron.Scheduler
	seasonSvc SeasonService
}

func NewScheduler(seasonSvc SeasonService, sweepInterval time.Duration) (*Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("gocron.NewScheduler -> %w", err)
	}

	s := &Scheduler{
		sched:     sched,
		seasonSvc: seasonSvc,
	}

	_, err = sched.NewJob(
		gocron.DurationJob(sweepInterval),
		gocron.NewTask(s.sweepEndedSeasons),
	)
	if err != nil {
		return nil, fmt.Errorf("sched.NewJob -> %w", err)
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.sched.Start()
}

func (s *Scheduler) Shutdown() error {
	if err := s.sched.Shutdown(); err != nil {
		return fmt.Errorf("s.sched.Shutdown -> %w", err)
	}

	return nil
}

func (s *Scheduler) sweepEndedSeasons() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	affected, err := s.seasonSvc.DeactivateEnded(ctx, time.Now())
	if err != nil {
		zap.L().Error("season sweep failed", zap.Error(err))
		return
	}

	if affected > 0 {
		zap.L().Info("deactivated ended seasons", zap.Int64("count", affected))
	}
}
