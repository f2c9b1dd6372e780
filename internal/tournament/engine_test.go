package tournament

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourneyhq/pokernights-api/internal/domain"
)

func newTestEngine(names ...string) *Engine {
	e := New(Config{BuyIn: 20, RebuyPrice: 10, StartingStack: 5000, MaxPlayers: 20})
	for i, name := range names {
		e.AddParticipant(uint(i+1), name, false)
	}

	return e
}

func TestAddParticipant(t *testing.T) {
	e := newTestEngine("Zoe", "alice", "Bob")

	roster := e.Roster()
	require.Len(t, roster, 3)
	assert.Equal(t, "alice", roster[0].Name)
	assert.Equal(t, "Bob", roster[1].Name)
	assert.Equal(t, "Zoe", roster[2].Name)

	for _, p := range roster {
		assert.Zero(t, p.Rebuys)
		assert.True(t, p.Active())
	}

	assert.False(t, e.AddParticipant(1, "Zoe again", false), "duplicate add should be a no-op")
	assert.Len(t, e.Roster(), 3)
}

func TestRemoveParticipant(t *testing.T) {
	e := newTestEngine("Ann", "Ben", "Cal")

	require.True(t, e.RemoveParticipant(2))
	assert.Len(t, e.Roster(), 2)

	assert.False(t, e.RemoveParticipant(2), "removing an unknown player is a no-op")

	require.True(t, e.Eliminate(3))
	assert.False(t, e.RemoveParticipant(3), "eliminated players cannot be removed")
	assert.Len(t, e.Roster(), 2)
}

func TestChangeRebuys(t *testing.T) {
	e := newTestEngine("Ann", "Ben")

	require.True(t, e.ChangeRebuys(1, 2))
	require.True(t, e.ChangeRebuys(1, -1))
	assert.Equal(t, 1, e.Roster()[0].Rebuys)

	require.True(t, e.ChangeRebuys(1, -5))
	assert.Zero(t, e.Roster()[0].Rebuys, "rebuys clamp at zero")

	require.True(t, e.Eliminate(2))
	assert.True(t, e.ChangeRebuys(2, 1), "rebuys may still change after elimination")

	assert.False(t, e.ChangeRebuys(99, 1))
}

func TestEliminationPositionsCountDown(t *testing.T) {
	e := newTestEngine("Ann", "Ben", "Cal", "Dee", "Eve")

	// 5 active: the first knockout takes position 5.
	require.True(t, e.Eliminate(1))
	require.True(t, e.Eliminate(2))
	require.True(t, e.Eliminate(3))
	require.True(t, e.Eliminate(4))

	positions := make(map[uint]int)
	active := 0
	for _, p := range e.Roster() {
		if p.Active() {
			active++
			continue
		}
		positions[p.PlayerID] = *p.EliminatedPosition
	}

	assert.Equal(t, 1, active)
	assert.Equal(t, map[uint]int{1: 5, 2: 4, 3: 3, 4: 2}, positions)

	assert.False(t, e.Eliminate(1), "double elimination is a no-op")
	assert.False(t, e.Eliminate(42), "unknown player is a no-op")
}

func TestActivePlusEliminatedEqualsRoster(t *testing.T) {
	e := newTestEngine("Ann", "Ben", "Cal", "Dee")

	for _, id := range []uint{3, 1} {
		require.True(t, e.Eliminate(id))

		active, eliminated := 0, 0
		for _, p := range e.Roster() {
			if p.Active() {
				active++
			} else {
				eliminated++
			}
		}
		assert.Equal(t, len(e.Roster()), active+eliminated)
	}
}

func TestUndoLastElimination(t *testing.T) {
	e := newTestEngine("Ann", "Ben", "Cal")

	assert.False(t, e.UndoLastElimination(), "nothing to undo on a fresh roster")

	require.True(t, e.Eliminate(1)) // position 3
	require.True(t, e.Eliminate(2)) // position 2

	// The most recent knockout holds the smallest position.
	require.True(t, e.UndoLastElimination())

	var reactivated []uint
	for _, p := range e.Roster() {
		if p.Active() {
			reactivated = append(reactivated, p.PlayerID)
		}
	}
	assert.Contains(t, reactivated, uint(2))
	assert.NotContains(t, reactivated, uint(1), "undo restores only the last elimination")
}

func TestUndoIsLeftInverseOfEliminate(t *testing.T) {
	e := newTestEngine("Ann", "Ben", "Cal", "Dee")
	before := e.Roster()

	require.True(t, e.Eliminate(4))
	require.True(t, e.UndoLastElimination())

	assert.Equal(t, before, e.Roster())
}

func TestPrizePool(t *testing.T) {
	e := newTestEngine("Ann", "Ben", "Cal", "Dee", "Eve")
	e.ChangeRebuys(1, 2)
	e.ChangeRebuys(3, 1)

	// 5×20 + 3×10
	assert.Equal(t, 130, e.PrizePool())
}

func TestComputePrizePoolLinearInRebuys(t *testing.T) {
	base := ComputePrizePool(6, 4, 25, 10)
	doubled := ComputePrizePool(6, 4, 25, 20)

	assert.Equal(t, 40, doubled-base, "doubling the rebuy price doubles the rebuy contribution")
}

func TestComputePayouts(t *testing.T) {
	tests := []struct {
		name             string
		total            int
		participantCount int
		buyIn            int
		want             []domain.PayoutEntry
	}{
		{
			name: "empty roster", total: 100, participantCount: 0, buyIn: 20,
			want: []domain.PayoutEntry{},
		},
		{
			name: "zero pool", total: 0, participantCount: 5, buyIn: 0,
			want: []domain.PayoutEntry{},
		},
		{
			name: "single player takes everything", total: 20, participantCount: 1, buyIn: 20,
			want: []domain.PayoutEntry{{Position: 1, Prize: 20}},
		},
		{
			name: "heads up splits 65/35", total: 40, participantCount: 2, buyIn: 20,
			want: []domain.PayoutEntry{{Position: 1, Prize: 26}, {Position: 2, Prize: 14}},
		},
		{
			name: "five players split 50/30/20", total: 130, participantCount: 5, buyIn: 20,
			want: []domain.PayoutEntry{
				{Position: 1, Prize: 65},
				{Position: 2, Prize: 39},
				{Position: 3, Prize: 26},
			},
		},
		{
			name: "thirteen players still three tiers", total: 260, participantCount: 13, buyIn: 20,
			want: []domain.PayoutEntry{
				{Position: 1, Prize: 130},
				{Position: 2, Prize: 78},
				{Position: 3, Prize: 52},
			},
		},
		{
			name: "sixteen players reserve a buy-in for fourth", total: 320, participantCount: 16, buyIn: 20,
			want: []domain.PayoutEntry{
				{Position: 1, Prize: 150},
				{Position: 2, Prize: 90},
				{Position: 3, Prize: 60},
				{Position: 4, Prize: 20},
			},
		},
		{
			name: "big field with pool at most one buy-in drops fourth", total: 20, participantCount: 14, buyIn: 20,
			want: []domain.PayoutEntry{
				{Position: 1, Prize: 10},
				{Position: 2, Prize: 6},
				{Position: 3, Prize: 4},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputePayouts(tt.total, tt.participantCount, tt.buyIn)
			assert.Equal(t, tt.want, got)

			for i := 1; i < len(got); i++ {
				assert.GreaterOrEqual(t, got[i-1].Prize, got[i].Prize,
					"prizes must be non-increasing by position")
			}
		})
	}
}

func TestPayoutRoundingIsPerTier(t *testing.T) {
	// 50/30/20 of 103 rounds each tier independently; the displayed sum may
	// drift from the pool and that drift is expected.
	got := ComputePayouts(103, 5, 20)

	require.Len(t, got, 3)
	assert.Equal(t, 52, got[0].Prize)
	assert.Equal(t, 31, got[1].Prize)
	assert.Equal(t, 21, got[2].Prize)
}

func TestChipStats(t *testing.T) {
	e := newTestEngine("Ann", "Ben", "Cal")
	e.ChangeRebuys(2, 1)

	stats := e.ChipStats()
	assert.Equal(t, 20000, stats.TotalChips) // (3+1)×5000
	assert.Equal(t, 3, stats.ActiveCount)
	assert.Equal(t, 6666, stats.AverageStack)

	e.Eliminate(1)
	e.Eliminate(2)
	e.Eliminate(3)
	stats = e.ChipStats()
	assert.Zero(t, stats.ActiveCount)
	assert.Zero(t, stats.AverageStack, "no average stack with nobody active")
}

func TestFinished(t *testing.T) {
	empty := New(Config{BuyIn: 20})
	assert.False(t, empty.Finished())

	e := newTestEngine("Ann", "Ben", "Cal")
	assert.False(t, e.Finished())

	e.Eliminate(1)
	assert.False(t, e.Finished())

	e.Eliminate(2)
	assert.True(t, e.Finished())
}

func TestFinalizeResults(t *testing.T) {
	e := newTestEngine("Ann", "Ben", "Cal", "Dee", "Eve")
	e.ChangeRebuys(2, 3) // pool: 5×20 + 3×10 = 130

	require.True(t, e.Eliminate(5)) // 5th
	require.True(t, e.Eliminate(4)) // 4th
	require.True(t, e.Eliminate(3)) // 3rd
	require.True(t, e.Eliminate(2)) // 2nd
	require.True(t, e.Finished())

	results := e.FinalizeResults(7)
	require.Len(t, results, 5)

	want := []domain.EventResult{
		{EventID: 7, PlayerID: 1, Position: 1, Prize: 65},
		{EventID: 7, PlayerID: 2, Position: 2, Prize: 39, Rebuys: 3},
		{EventID: 7, PlayerID: 3, Position: 3, Prize: 26},
		{EventID: 7, PlayerID: 4, Position: 4},
		{EventID: 7, PlayerID: 5, Position: 5},
	}
	assert.Equal(t, want, results)
}

func TestSnapshotRestore(t *testing.T) {
	e := newTestEngine("Ann", "Ben", "Cal")
	e.ChangeRebuys(1, 2)
	e.Eliminate(3)

	snap := e.Snapshot()
	assert.NotEmpty(t, snap.Token)
	assert.False(t, snap.TakenAt.IsZero())

	restored := Restore(snap)
	assert.Equal(t, e.Roster(), restored.Roster())
	assert.Equal(t, e.Config(), restored.Config())
	assert.Equal(t, e.PrizePool(), restored.PrizePool())

	// The snapshot stays detached from both engines.
	restored.Eliminate(2)
	assert.NotEqual(t, e.Roster(), restored.Roster())
	assert.True(t, snap.Roster[1].Active() || snap.Roster[0].Active())
}
