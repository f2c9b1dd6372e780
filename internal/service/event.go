package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gosimple/slug"

	"github.com/tourneyhq/pokernights-api/internal/domain"
	"github.com/tourneyhq/pokernights-api/internal/repository"
)

var (
	ErrEventNotFound  = repository.ErrEventNotFound
	ErrEventCompleted = errors.New("event is already completed")
)

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	FindAll(ctx context.Context) ([]domain.Event, error)
	FindBySeasonID(ctx context.Context, seasonID uint) ([]domain.Event, error)
	Update(ctx context.Context, event domain.Event) (domain.Event, error)
	UpdateStatus(ctx context.Context, id uint, status domain.EventStatus) error
	Delete(ctx context.Context, id uint) error
	SaveResults(ctx context.Context, id uint, results []domain.EventResult, prizePool int, finalParticipantIDs []uint) error
}

type EventService struct {
	repo       EventRepository
	seasonRepo SeasonRepository
}

func NewEventService(repo EventRepository, seasonRepo SeasonRepository) *EventService {
	return &EventService{
		repo:       repo,
		seasonRepo: seasonRepo,
	}
}

func (s *EventService) CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	if _, err := s.seasonRepo.FindByID(ctx, event.SeasonID); err != nil {
		return domain.Event{}, fmt.Errorf("s.seasonRepo.FindByID -> %w", err)
	}

	event.Slug = slug.Make(event.Name)
	if event.Status == "" {
		event.Status = domain.EventStatusDraft
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *EventService) GetEvent(ctx context.Context, id uint) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return event, nil
}

func (s *EventService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return events, nil
}

func (s *EventService) ListEventsBySeason(ctx context.Context, seasonID uint) ([]domain.Event, error) {
	events, err := s.repo.FindBySeasonID(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindBySeasonID -> %w", err)
	}

	return events, nil
}

// UpdateEvent rewrites the editable fields of a not-yet-completed event.
// Completed events are frozen: their results feed the season standings.
func (s *EventService) UpdateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	existing, err := s.repo.FindByID(ctx, event.ID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if existing.Status == domain.EventStatusCompleted {
		return domain.Event{}, ErrEventCompleted
	}

	event.Slug = slug.Make(event.Name)
	if event.Status == "" {
		event.Status = existing.Status
	}

	updated, err := s.repo.Update(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
