package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourneyhq/pokernights-api/internal/domain"
)

type stubEventRepo struct {
	events map[uint]domain.Event

	savedResults   []domain.EventResult
	savedPrizePool int
	savedIDs       []uint
}

func (r *stubEventRepo) FindByID(_ context.Context, id uint) (domain.Event, error) {
	event, ok := r.events[id]
	if !ok {
		return domain.Event{}, ErrEventNotFound
	}

	return event, nil
}

func (r *stubEventRepo) UpdateStatus(_ context.Context, id uint, status domain.EventStatus) error {
	event, ok := r.events[id]
	if !ok {
		return ErrEventNotFound
	}
	event.Status = status
	r.events[id] = event

	return nil
}

func (r *stubEventRepo) SaveResults(_ context.Context, id uint, results []domain.EventResult, prizePool int, finalParticipantIDs []uint) error {
	event, ok := r.events[id]
	if !ok {
		return ErrEventNotFound
	}

	r.savedResults = results
	r.savedPrizePool = prizePool
	r.savedIDs = finalParticipantIDs

	event.Status = domain.EventStatusCompleted
	event.Results = results
	event.PrizePool = prizePool
	r.events[id] = event

	return nil
}

type stubPlayerRepo struct {
	players map[uint]domain.Player
	nextID  uint
}

func (r *stubPlayerRepo) Create(_ context.Context, player domain.Player) (domain.Player, error) {
	r.nextID++
	player.ID = r.nextID
	r.players[player.ID] = player

	return player, nil
}

func (r *stubPlayerRepo) FindByID(_ context.Context, id uint) (domain.Player, error) {
	player, ok := r.players[id]
	if !ok {
		return domain.Player{}, ErrPlayerNotFound
	}

	return player, nil
}

func (r *stubPlayerRepo) FindAll(_ context.Context) ([]domain.Player, error) {
	players := make([]domain.Player, 0, len(r.players))
	for _, p := range r.players {
		players = append(players, p)
	}

	return players, nil
}

func (r *stubPlayerRepo) Update(_ context.Context, player domain.Player) (domain.Player, error) {
	r.players[player.ID] = player
	return player, nil
}

func (r *stubPlayerRepo) Delete(_ context.Context, id uint) error {
	delete(r.players, id)
	return nil
}

func newLiveFixture() (*LiveService, *stubEventRepo, *stubPlayerRepo) {
	players := &stubPlayerRepo{
		players: map[uint]domain.Player{
			1: {ID: 1, Name: "Ann"},
			2: {ID: 2, Name: "Ben"},
			3: {ID: 3, Name: "Cal"},
			4: {ID: 4, Name: "Dee"},
		},
		nextID: 4,
	}
	events := &stubEventRepo{
		events: map[uint]domain.Event{
			7: {
				ID:            7,
				Name:          "Friday Night",
				Date:          time.Date(2025, 3, 7, 20, 0, 0, 0, time.UTC),
				BuyIn:         20,
				RebuyAllowed:  true,
				RebuyPrice:    10,
				MaxPlayers:    3,
				StartingStack: 5000,
				Status:        domain.EventStatusDraft,
				Participants: []domain.Player{
					{ID: 1, Name: "Ann"},
					{ID: 2, Name: "Ben"},
				},
			},
		},
	}

	return NewLiveService(events, players), events, players
}

func TestLiveService_StartSession(t *testing.T) {
	svc, events, _ := newLiveFixture()
	ctx := context.Background()

	state, err := svc.StartSession(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, state.Roster, 2)
	assert.Equal(t, 40, state.PrizePool)
	assert.False(t, state.Finished)
	assert.Equal(t, domain.EventStatusActive, events.events[7].Status)

	// Starting again is idempotent.
	again, err := svc.StartSession(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, state, again)
}

func TestLiveService_StartSessionCompletedEvent(t *testing.T) {
	svc, events, _ := newLiveFixture()
	event := events.events[7]
	event.Status = domain.EventStatusCompleted
	events.events[7] = event

	_, err := svc.StartSession(context.Background(), 7)
	assert.ErrorIs(t, err, ErrEventNotStartable)
}

func TestLiveService_GetStateWithoutSession(t *testing.T) {
	svc, _, _ := newLiveFixture()

	_, err := svc.GetState(7)
	assert.ErrorIs(t, err, ErrNoLiveSession)
}

func TestLiveService_AddParticipantEnforcesMaxPlayers(t *testing.T) {
	svc, _, _ := newLiveFixture()
	ctx := context.Background()

	_, err := svc.StartSession(ctx, 7)
	require.NoError(t, err)

	state, err := svc.AddParticipant(ctx, 7, 3)
	require.NoError(t, err)
	assert.Len(t, state.Roster, 3)

	_, err = svc.AddParticipant(ctx, 7, 4)
	assert.ErrorIs(t, err, ErrEventFull)
}

func TestLiveService_AddGuest(t *testing.T) {
	svc, _, players := newLiveFixture()
	ctx := context.Background()

	_, err := svc.StartSession(ctx, 7)
	require.NoError(t, err)

	state, err := svc.AddGuest(ctx, 7, "Walk-in Walt")
	require.NoError(t, err)
	assert.Len(t, state.Roster, 3)

	guest := players.players[5]
	assert.True(t, guest.IsGuest)
	assert.Equal(t, "Walk-in Walt", guest.Name)
}

func TestLiveService_FullTournamentFlow(t *testing.T) {
	svc, events, _ := newLiveFixture()
	ctx := context.Background()

	_, err := svc.StartSession(ctx, 7)
	require.NoError(t, err)

	_, err = svc.AddParticipant(ctx, 7, 3)
	require.NoError(t, err)

	state, err := svc.ChangeRebuys(7, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 80, state.PrizePool) // 3×20 + 2×10

	_, err = svc.Finalize(ctx, 7)
	assert.ErrorIs(t, err, ErrTournamentNotFinished)

	state, err = svc.Eliminate(7, 3)
	require.NoError(t, err)
	assert.False(t, state.Finished)

	state, err = svc.Eliminate(7, 1)
	require.NoError(t, err)
	assert.True(t, state.Finished)

	event, err := svc.Finalize(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, domain.EventStatusCompleted, event.Status)
	assert.Equal(t, 80, events.savedPrizePool)

	require.Len(t, events.savedResults, 3)
	assert.Equal(t, uint(2), events.savedResults[0].PlayerID) // winner
	assert.Equal(t, 1, events.savedResults[0].Position)
	assert.Equal(t, 40, events.savedResults[0].Prize)
	assert.Equal(t, uint(1), events.savedResults[1].PlayerID)
	assert.Equal(t, 2, events.savedResults[1].Rebuys)

	// Session is gone after finalization.
	_, err = svc.GetState(7)
	assert.ErrorIs(t, err, ErrNoLiveSession)
}

func TestLiveService_UndoRestoresLastKnockout(t *testing.T) {
	svc, _, _ := newLiveFixture()
	ctx := context.Background()

	_, err := svc.StartSession(ctx, 7)
	require.NoError(t, err)

	state, err := svc.Eliminate(7, 1)
	require.NoError(t, err)
	assert.True(t, state.Finished)

	state, err = svc.UndoLastElimination(7)
	require.NoError(t, err)
	assert.False(t, state.Finished)
	for _, p := range state.Roster {
		assert.True(t, p.Active())
	}
}

func TestLiveService_SnapshotRestore(t *testing.T) {
	svc, _, _ := newLiveFixture()
	ctx := context.Background()

	_, err := svc.StartSession(ctx, 7)
	require.NoError(t, err)

	_, err = svc.Eliminate(7, 2)
	require.NoError(t, err)

	snap, err := svc.Snapshot(7)
	require.NoError(t, err)
	assert.NotEmpty(t, snap.Token)

	// Losing the session and restoring from the snapshot picks up where we
	// left off.
	_, err = svc.UndoLastElimination(7)
	require.NoError(t, err)

	state, err := svc.RestoreSession(ctx, 7, snap)
	require.NoError(t, err)

	eliminated := 0
	for _, p := range state.Roster {
		if !p.Active() {
			eliminated++
		}
	}
	assert.Equal(t, 1, eliminated)
}
