package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gosimple/slug"

	"github.com/tourneyhq/pokernights-api/internal/domain"
	"github.com/tourneyhq/pokernights-api/internal/repository"
	"github.com/tourneyhq/pokernights-api/internal/stats"
)

var ErrSeasonNotFound = repository.ErrSeasonNotFound

type SeasonRepository interface {
	Create(ctx context.Context, season domain.Season) (domain.Season, error)
	FindByID(ctx context.Context, id uint) (domain.Season, error)
	FindAll(ctx context.Context) ([]domain.Season, error)
	Update(ctx context.Context, season domain.Season) (domain.Season, error)
	Delete(ctx context.Context, id uint) error
	DeactivateEndedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type SeasonEventRepository interface {
	FindBySeasonID(ctx context.Context, seasonID uint) ([]domain.Event, error)
}

type SeasonService struct {
	repo       SeasonRepository
	eventRepo  SeasonEventRepository
	playerRepo PlayerRepository
}

func NewSeasonService(repo SeasonRepository, eventRepo SeasonEventRepository, playerRepo PlayerRepository) *SeasonService {
	return &SeasonService{
		repo:       repo,
		eventRepo:  eventRepo,
		playerRepo: playerRepo,
	}
}

func (s *SeasonService) CreateSeason(ctx context.Context, season domain.Season) (domain.Season, error) {
	season.Slug = slug.Make(season.Name)

	created, err := s.repo.Create(ctx, season)
	if err != nil {
		return domain.Season{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *SeasonService) GetSeason(ctx context.Context, id uint) (domain.Season, error) {
	season, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Season{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return season, nil
}

func (s *SeasonService) ListSeasons(ctx context.Context) ([]domain.Season, error) {
	seasons, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return seasons, nil
}

func (s *SeasonService) UpdateSeason(ctx context.Context, season domain.Season) (domain.Season, error) {
	season.Slug = slug.Make(season.Name)

	updated, err := s.repo.Update(ctx, season)
	if err != nil {
		return domain.Season{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *SeasonService) DeleteSeason(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// GetStandings recomputes the season leaderboard and per-player progress
// from the season's completed events. Nothing is cached or persisted.
func (s *SeasonService) GetStandings(ctx context.Context, seasonID uint) (domain.SeasonStandings, error) {
	season, err := s.repo.FindByID(ctx, seasonID)
	if err != nil {
		return domain.SeasonStandings{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	events, err := s.eventRepo.FindBySeasonID(ctx, season.ID)
	if err != nil {
		return domain.SeasonStandings{}, fmt.Errorf("s.eventRepo.FindBySeasonID -> %w", err)
	}

	players, err := s.playerRepo.FindAll(ctx)
	if err != nil {
		return domain.SeasonStandings{}, fmt.Errorf("s.playerRepo.FindAll -> %w", err)
	}

	return stats.SeasonStandings(season, events, players), nil
}

// DeactivateEnded is the nightly sweep closing out seasons whose end date
// has passed.
func (s *SeasonService) DeactivateEnded(ctx context.Context, now time.Time) (int64, error) {
	affected, err := s.repo.DeactivateEndedBefore(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("s.repo.DeactivateEndedBefore -> %w", err)
	}

	return affected, nil
}
