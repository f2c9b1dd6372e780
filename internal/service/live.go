package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/tourneyhq/pokernights-api/internal/domain"
	"github.com/tourneyhq/pokernights-api/internal/tournament"
)

var (
	ErrNoLiveSession         = errors.New("no live session for this event")
	ErrEventNotStartable     = errors.New("event is completed or cancelled")
	ErrEventFull             = errors.New("event is at max players")
	ErrTournamentNotFinished = errors.New("tournament is not finished")
)

type LiveEventRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	UpdateStatus(ctx context.Context, id uint, status domain.EventStatus) error
	SaveResults(ctx context.Context, id uint, results []domain.EventResult, prizePool int, finalParticipantIDs []uint) error
}

// LiveService hosts one in-memory engine per running event. The engine
// itself is pure; this layer owns session lifetime, persistence at
// finalization and the snapshots used for crash recovery. Sessions are not
// shared between instances; concurrent edits from two clients resolve
// last-write-wins.
type LiveService struct {
	eventRepo  LiveEventRepository
	playerRepo PlayerRepository

	mu       sync.Mutex
	sessions map[uint]*tournament.Engine
}

func NewLiveService(eventRepo LiveEventRepository, playerRepo PlayerRepository) *LiveService {
	return &LiveService{
		eventRepo:  eventRepo,
		playerRepo: playerRepo,
		sessions:   make(map[uint]*tournament.Engine),
	}
}

// StartSession opens a live session for the event, seeding the roster from
// the event's participant list. Starting an already-running session just
// returns its current state.
func (s *LiveService) StartSession(ctx context.Context, eventID uint) (domain.LiveState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if engine, ok := s.sessions[eventID]; ok {
		return liveState(eventID, engine), nil
	}

	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return domain.LiveState{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}
	if event.Status == domain.EventStatusCompleted || event.Status == domain.EventStatusCancelled {
		return domain.LiveState{}, ErrEventNotStartable
	}

	engine := tournament.New(tournament.Config{
		BuyIn:         event.BuyIn,
		RebuyPrice:    event.RebuyPrice,
		StartingStack: event.StartingStack,
		MaxPlayers:    event.MaxPlayers,
	})
	for _, player := range event.Participants {
		engine.AddParticipant(player.ID, player.DisplayName(), player.IsGuest)
	}

	if event.Status == domain.EventStatusDraft {
		if err = s.eventRepo.UpdateStatus(ctx, eventID, domain.EventStatusActive); err != nil {
			return domain.LiveState{}, fmt.Errorf("s.eventRepo.UpdateStatus -> %w", err)
		}
	}

	s.sessions[eventID] = engine
	zap.L().Info("live session started",
		zap.Uint("event_id", eventID),
		zap.Int("participants", len(event.Participants)))

	return liveState(eventID, engine), nil
}

func (s *LiveService) GetState(eventID uint) (domain.LiveState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	engine, ok := s.sessions[eventID]
	if !ok {
		return domain.LiveState{}, ErrNoLiveSession
	}

	return liveState(eventID, engine), nil
}

// AddParticipant seats an existing player. The max-players cap is enforced
// here, not in the engine, mirroring the advisory UI behavior.
func (s *LiveService) AddParticipant(ctx context.Context, eventID, playerID uint) (domain.LiveState, error) {
	player, err := s.playerRepo.FindByID(ctx, playerID)
	if err != nil {
		return domain.LiveState{}, fmt.Errorf("s.playerRepo.FindByID -> %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	engine, ok := s.sessions[eventID]
	if !ok {
		return domain.LiveState{}, ErrNoLiveSession
	}

	cfg := engine.Config()
	if cfg.MaxPlayers > 0 && len(engine.Roster()) >= cfg.MaxPlayers {
		return domain.LiveState{}, ErrEventFull
	}

	engine.AddParticipant(player.ID, player.DisplayName(), player.IsGuest)

	return liveState(eventID, engine), nil
}

// AddGuest registers a new guest player record and seats them in one go.
func (s *LiveService) AddGuest(ctx context.Context, eventID uint, name string) (domain.LiveState, error) {
	guest, err := s.playerRepo.Create(ctx, domain.Player{Name: name, IsGuest: true})
	if err != nil {
		return domain.LiveState{}, fmt.Errorf("s.playerRepo.Create -> %w", err)
	}

	return s.AddParticipant(ctx, eventID, guest.ID)
}

func (s *LiveService) RemoveParticipant(eventID, playerID uint) (domain.LiveState, error) {
	return s.withSession(eventID, func(engine *tournament.Engine) {
		engine.RemoveParticipant(playerID)
	})
}

func (s *LiveService) ChangeRebuys(eventID, playerID uint, delta int) (domain.LiveState, error) {
	return s.withSession(eventID, func(engine *tournament.Engine) {
		engine.ChangeRebuys(playerID, delta)
	})
}

func (s *LiveService) Eliminate(eventID, playerID uint) (domain.LiveState, error) {
	return s.withSession(eventID, func(engine *tournament.Engine) {
		engine.Eliminate(playerID)
	})
}

func (s *LiveService) UndoLastElimination(eventID uint) (domain.LiveState, error) {
	return s.withSession(eventID, func(engine *tournament.Engine) {
		engine.UndoLastElimination()
	})
}

// Snapshot captures the running session for client-side crash recovery.
func (s *LiveService) Snapshot(eventID uint) (tournament.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	engine, ok := s.sessions[eventID]
	if !ok {
		return tournament.Snapshot{}, ErrNoLiveSession
	}

	return engine.Snapshot(), nil
}

// RestoreSession rebuilds a session from a snapshot, replacing whatever is
// currently in memory for the event.
func (s *LiveService) RestoreSession(ctx context.Context, eventID uint, snap tournament.Snapshot) (domain.LiveState, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return domain.LiveState{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}
	if event.Status == domain.EventStatusCompleted || event.Status == domain.EventStatusCancelled {
		return domain.LiveState{}, ErrEventNotStartable
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	engine := tournament.Restore(snap)
	s.sessions[eventID] = engine
	zap.L().Info("live session restored",
		zap.Uint("event_id", eventID),
		zap.String("snapshot_token", snap.Token))

	return liveState(eventID, engine), nil
}

// Finalize converts the finished roster into results, persists them with
// the prize pool, marks the event completed and drops the session.
func (s *LiveService) Finalize(ctx context.Context, eventID uint) (domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	engine, ok := s.sessions[eventID]
	if !ok {
		return domain.Event{}, ErrNoLiveSession
	}
	if !engine.Finished() {
		return domain.Event{}, ErrTournamentNotFinished
	}

	results := engine.FinalizeResults(eventID)
	roster := engine.Roster()
	finalParticipantIDs := make([]uint, 0, len(roster))
	for _, p := range roster {
		finalParticipantIDs = append(finalParticipantIDs, p.PlayerID)
	}

	err := s.eventRepo.SaveResults(ctx, eventID, results, engine.PrizePool(), finalParticipantIDs)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.eventRepo.SaveResults -> %w", err)
	}

	delete(s.sessions, eventID)
	zap.L().Info("live session finalized",
		zap.Uint("event_id", eventID),
		zap.Int("prize_pool", engine.PrizePool()),
		zap.Int("results", len(results)))

	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	return event, nil
}

func (s *LiveService) withSession(eventID uint, apply func(engine *tournament.Engine)) (domain.LiveState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	engine, ok := s.sessions[eventID]
	if !ok {
		return domain.LiveState{}, ErrNoLiveSession
	}

	apply(engine)

	return liveState(eventID, engine), nil
}

func liveState(eventID uint, engine *tournament.Engine) domain.LiveState {
	return domain.LiveState{
		EventID:   eventID,
		Roster:    engine.Roster(),
		PrizePool: engine.PrizePool(),
		Payouts:   engine.PayoutStructure(),
		ChipStats: engine.ChipStats(),
		Finished:  engine.Finished(),
	}
}
