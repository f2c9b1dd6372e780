package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tourneyhq/pokernights-api/internal/domain"
	"github.com/tourneyhq/pokernights-api/internal/repository/dao"
)

var ErrEventNotFound = dao.ErrEventNotFound

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event, participantIDs []uint) (dao.Event, error)
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	FindAll(ctx context.Context) ([]dao.Event, error)
	FindBySeasonID(ctx context.Context, seasonID uint) ([]dao.Event, error)
	Update(ctx context.Context, event dao.Event, participantIDs []uint) (dao.Event, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
	SaveResults(ctx context.Context, id uint, results []dao.EventResult, prizePool int, participantIDs []uint) error
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	daoEvent, err := eventDomainToDao(event)
	if err != nil {
		return domain.Event{}, err
	}

	created, err := r.dao.Insert(ctx, daoEvent, participantIDs(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return eventDaoToDomain(created)
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return eventDaoToDomain(found)
}

func (r *EventRepository) FindAll(ctx context.Context) ([]domain.Event, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return eventsDaoToDomain(found)
}

func (r *EventRepository) FindBySeasonID(ctx context.Context, seasonID uint) ([]domain.Event, error) {
	found, err := r.dao.FindBySeasonID(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindBySeasonID -> %w", err)
	}

	return eventsDaoToDomain(found)
}

func (r *EventRepository) Update(ctx context.Context, event domain.Event) (domain.Event, error) {
	daoEvent, err := eventDomainToDao(event)
	if err != nil {
		return domain.Event{}, err
	}

	updated, err := r.dao.Update(ctx, daoEvent, participantIDs(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return eventDaoToDomain(updated)
}

func (r *EventRepository) UpdateStatus(ctx context.Context, id uint, status domain.EventStatus) error {
	if err := r.dao.UpdateStatus(ctx, id, string(status)); err != nil {
		return fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

// SaveResults writes the finalized results and prize pool back onto the
// event and marks it completed.
func (r *EventRepository) SaveResults(ctx context.Context, id uint, results []domain.EventResult, prizePool int, finalParticipantIDs []uint) error {
	daoResults := make([]dao.EventResult, 0, len(results))
	for _, result := range results {
		daoResults = append(daoResults, dao.EventResult{
			EventID:  id,
			PlayerID: result.PlayerID,
			Position: result.Position,
			Prize:    result.Prize,
			Rebuys:   result.Rebuys,
		})
	}

	if err := r.dao.SaveResults(ctx, id, daoResults, prizePool, finalParticipantIDs); err != nil {
		return fmt.Errorf("r.dao.SaveResults -> %w", err)
	}

	return nil
}

func eventDaoToDomain(e dao.Event) (domain.Event, error) {
	var blinds []domain.BlindLevel
	if e.BlindStructure != "" {
		if err := json.Unmarshal([]byte(e.BlindStructure), &blinds); err != nil {
			return domain.Event{}, fmt.Errorf("json.Unmarshal blind structure -> %w", err)
		}
	}

	participants := make([]domain.Player, 0, len(e.Participants))
	for _, p := range e.Participants {
		participants = append(participants, playerDaoToDomain(p))
	}

	results := make([]domain.EventResult, 0, len(e.Results))
	for _, result := range e.Results {
		results = append(results, domain.EventResult{
			EventID:  result.EventID,
			PlayerID: result.PlayerID,
			Position: result.Position,
			Prize:    result.Prize,
			Rebuys:   result.Rebuys,
		})
	}

	return domain.Event{
		ID:             e.ID,
		SeasonID:       e.SeasonID,
		Name:           e.Name,
		Slug:           e.Slug,
		Date:           e.Date,
		BuyIn:          e.BuyIn,
		RebuyAllowed:   e.RebuyAllowed,
		RebuyPrice:     e.RebuyPrice,
		MaxPlayers:     e.MaxPlayers,
		StartingStack:  e.StartingStack,
		Status:         domain.EventStatus(e.Status),
		BlindStructure: blinds,
		PrizePool:      e.PrizePool,
		Participants:   participants,
		Results:        results,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}, nil
}

func eventsDaoToDomain(daoEvents []dao.Event) ([]domain.Event, error) {
	events := make([]domain.Event, 0, len(daoEvents))
	for _, e := range daoEvents {
		event, err := eventDaoToDomain(e)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, nil
}

func eventDomainToDao(e domain.Event) (dao.Event, error) {
	blinds := ""
	if len(e.BlindStructure) > 0 {
		encoded, err := json.Marshal(e.BlindStructure)
		if err != nil {
			return dao.Event{}, fmt.Errorf("json.Marshal blind structure -> %w", err)
		}
		blinds = string(encoded)
	}

	return dao.Event{
		ID:             e.ID,
		SeasonID:       e.SeasonID,
		Name:           e.Name,
		Slug:           e.Slug,
		Date:           e.Date,
		BuyIn:          e.BuyIn,
		RebuyAllowed:   e.RebuyAllowed,
		RebuyPrice:     e.RebuyPrice,
		MaxPlayers:     e.MaxPlayers,
		StartingStack:  e.StartingStack,
		Status:         string(e.Status),
		BlindStructure: blinds,
		PrizePool:      e.PrizePool,
	}, nil
}

func participantIDs(e domain.Event) []uint {
	if e.Participants == nil {
		return nil
	}

	ids := make([]uint, 0, len(e.Participants))
	for _, p := range e.Participants {
		ids = append(ids, p.ID)
	}

	return ids
}
