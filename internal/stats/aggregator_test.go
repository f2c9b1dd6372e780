package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourneyhq/pokernights-api/internal/domain"
)

var testPlayers = []domain.Player{
	{ID: 1, Name: "Ann"},
	{ID: 2, Name: "Ben", Nickname: "Benny"},
	{ID: 3, Name: "Cal"},
	{ID: 4, Name: "Dee"},
}

func day(n int) time.Time {
	return time.Date(2025, time.March, n, 20, 0, 0, 0, time.UTC)
}

func TestSeasonStandings_NoCompletedEvents(t *testing.T) {
	season := domain.Season{ID: 1}
	events := []domain.Event{
		{ID: 10, SeasonID: 1, Status: domain.EventStatusDraft, Date: day(1)},
		{ID: 11, SeasonID: 1, Status: domain.EventStatusCancelled, Date: day(2)},
		{ID: 12, SeasonID: 2, Status: domain.EventStatusCompleted, Date: day(3)},
	}

	standings := SeasonStandings(season, events, testPlayers)

	assert.Empty(t, standings.Leaderboard)
	assert.Empty(t, standings.Progress)
}

func TestSeasonStandings_SingleLossMakesNegativeTotal(t *testing.T) {
	season := domain.Season{ID: 1}
	events := []domain.Event{
		{
			ID: 10, SeasonID: 1, Status: domain.EventStatusCompleted,
			Name: "Week 1", Date: day(1), BuyIn: 50,
			Participants: []domain.Player{{ID: 1}, {ID: 2}},
			Results: []domain.EventResult{
				{PlayerID: 1, Position: 1, Prize: 100},
				{PlayerID: 2, Position: 2, Prize: 0},
			},
		},
	}

	standings := SeasonStandings(season, events, testPlayers)
	require.Len(t, standings.Leaderboard, 2)

	loser := standings.Leaderboard[1]
	assert.Equal(t, uint(2), loser.PlayerID)
	assert.Equal(t, "Benny", loser.PlayerName)
	assert.Equal(t, -50, loser.TotalFinalResult)
	assert.Equal(t, 1, loser.EventsPlayed)
	assert.Zero(t, loser.Wins)

	progress := standings.Progress[2]
	require.Len(t, progress, 1)
	assert.Equal(t, "Week 1", progress[0].EventName)
	assert.Equal(t, -50, progress[0].EventFinalResult)
	assert.Equal(t, -50, progress[0].CumulativeFinalResult)
}

func TestSeasonStandings_CumulativeProgressAcrossEvents(t *testing.T) {
	season := domain.Season{ID: 1}
	// Second event listed first: the fold must order by date, not input order.
	events := []domain.Event{
		{
			ID: 11, SeasonID: 1, Status: domain.EventStatusCompleted,
			Name: "Week 2", Date: day(8), BuyIn: 20, RebuyPrice: 10,
			Participants: []domain.Player{{ID: 1}, {ID: 2}},
			Results: []domain.EventResult{
				{PlayerID: 1, Position: 2, Prize: 0, Rebuys: 2},
				{PlayerID: 2, Position: 1, Prize: 60},
			},
		},
		{
			ID: 10, SeasonID: 1, Status: domain.EventStatusCompleted,
			Name: "Week 1", Date: day(1), BuyIn: 20,
			Participants: []domain.Player{{ID: 1}, {ID: 2}},
			Results: []domain.EventResult{
				{PlayerID: 1, Position: 1, Prize: 26},
				{PlayerID: 2, Position: 2, Prize: 14},
			},
		},
	}

	standings := SeasonStandings(season, events, testPlayers)

	progress := standings.Progress[1]
	require.Len(t, progress, 2)
	assert.Equal(t, "Week 1", progress[0].EventName)
	assert.Equal(t, 6, progress[0].CumulativeFinalResult) // 26−20
	assert.Equal(t, "Week 2", progress[1].EventName)
	assert.Equal(t, -40, progress[1].EventFinalResult) // 0−(20+2×10)
	assert.Equal(t, -34, progress[1].CumulativeFinalResult)

	// Ben: (14−20) + (60−20) = 34, one win.
	require.Len(t, standings.Leaderboard, 2)
	assert.Equal(t, uint(2), standings.Leaderboard[0].PlayerID)
	assert.Equal(t, 34, standings.Leaderboard[0].TotalFinalResult)
	assert.Equal(t, 1, standings.Leaderboard[0].Wins)
	assert.Equal(t, 2, standings.Leaderboard[0].EventsPlayed)
}

func TestSeasonStandings_LeaderboardSortedDescending(t *testing.T) {
	season := domain.Season{ID: 1}
	events := []domain.Event{
		{
			ID: 10, SeasonID: 1, Status: domain.EventStatusCompleted,
			Name: "Week 1", Date: day(1), BuyIn: 20,
			Participants: []domain.Player{{ID: 1}, {ID: 2}, {ID: 3}},
			Results: []domain.EventResult{
				{PlayerID: 1, Position: 3, Prize: 0},
				{PlayerID: 2, Position: 1, Prize: 40},
				{PlayerID: 3, Position: 2, Prize: 20},
			},
		},
	}

	standings := SeasonStandings(season, events, testPlayers)

	for i := 1; i < len(standings.Leaderboard); i++ {
		assert.GreaterOrEqual(t,
			standings.Leaderboard[i-1].TotalFinalResult,
			standings.Leaderboard[i].TotalFinalResult)
	}
}

func TestSeasonStandings_UnrankedParticipantLosesBuyIn(t *testing.T) {
	season := domain.Season{ID: 1}
	events := []domain.Event{
		{
			ID: 10, SeasonID: 1, Status: domain.EventStatusCompleted,
			Name: "Week 1", Date: day(1), BuyIn: 30,
			Participants: []domain.Player{{ID: 1}, {ID: 2}, {ID: 3}},
			Results: []domain.EventResult{
				{PlayerID: 1, Position: 1, Prize: 90},
				{PlayerID: 2, Position: 2, Prize: 0},
			},
		},
	}

	standings := SeasonStandings(season, events, testPlayers)
	require.Len(t, standings.Leaderboard, 3)

	var cal domain.LeaderboardEntry
	for _, entry := range standings.Leaderboard {
		if entry.PlayerID == 3 {
			cal = entry
		}
	}
	assert.Equal(t, -30, cal.TotalFinalResult)
	assert.Equal(t, 1, cal.EventsPlayed)
}

func TestSeasonStandings_DuplicateResultRowsCountOnce(t *testing.T) {
	season := domain.Season{ID: 1}
	events := []domain.Event{
		{
			ID: 10, SeasonID: 1, Status: domain.EventStatusCompleted,
			Name: "Week 1", Date: day(1), BuyIn: 20,
			Participants: []domain.Player{{ID: 1}},
			Results: []domain.EventResult{
				{PlayerID: 1, Position: 1, Prize: 20},
				{PlayerID: 1, Position: 1, Prize: 20},
			},
		},
	}

	standings := SeasonStandings(season, events, testPlayers)
	require.Len(t, standings.Leaderboard, 1)
	assert.Equal(t, 1, standings.Leaderboard[0].EventsPlayed)
	assert.Len(t, standings.Progress[1], 1)
}

func TestSeasonStandings_EventsSharingADateStayDistinct(t *testing.T) {
	season := domain.Season{ID: 1}
	events := []domain.Event{
		{
			ID: 10, SeasonID: 1, Status: domain.EventStatusCompleted,
			Name: "Afternoon", Date: day(1), BuyIn: 20,
			Participants: []domain.Player{{ID: 1}},
			Results:      []domain.EventResult{{PlayerID: 1, Position: 1, Prize: 20}},
		},
		{
			ID: 11, SeasonID: 1, Status: domain.EventStatusCompleted,
			Name: "Evening", Date: day(1), BuyIn: 20,
			Participants: []domain.Player{{ID: 1}},
			Results:      []domain.EventResult{{PlayerID: 1, Position: 1, Prize: 20}},
		},
	}

	standings := SeasonStandings(season, events, testPlayers)
	require.Len(t, standings.Leaderboard, 1)
	assert.Equal(t, 2, standings.Leaderboard[0].EventsPlayed)
	assert.Len(t, standings.Progress[1], 2)
}

func TestSeasonStandings_UnknownPlayersAreSkipped(t *testing.T) {
	season := domain.Season{ID: 1}
	events := []domain.Event{
		{
			ID: 10, SeasonID: 1, Status: domain.EventStatusCompleted,
			Name: "Week 1", Date: day(1), BuyIn: 20,
			Participants: []domain.Player{{ID: 99}},
			Results:      []domain.EventResult{{PlayerID: 98, Position: 1, Prize: 20}},
		},
	}

	standings := SeasonStandings(season, events, testPlayers)
	assert.Empty(t, standings.Leaderboard)
}

func TestFinalTableThreshold(t *testing.T) {
	tests := []struct {
		participants int
		want         int
	}{
		{0, 1},
		{1, 1},
		{4, 4},
		{5, 3},
		{9, 3},
		{10, 3},  // ceil(3.0)
		{11, 4},  // ceil(3.3)
		{20, 6},
		{21, 7},  // ceil(6.3)
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, finalTableThreshold(tt.participants),
			"participants=%d", tt.participants)
	}
}
