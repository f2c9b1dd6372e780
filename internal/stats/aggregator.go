// Package stats computes season-level standings: a net-profit leaderboard
// and per-player cumulative progress across a season's completed events.
// The fold is read-only and referentially transparent; it never writes
// anything back.
package stats

import (
	"math"
	"sort"

	"github.com/tourneyhq/pokernights-api/internal/domain"
)

type playerAccumulator struct {
	player     domain.Player
	total      int
	played     int
	wins       int
	finalTables int
	progress   []domain.PlayerProgressPoint
	cumulative int
	seenEvents map[uint]bool
}

// SeasonStandings folds the season's completed events, in chronological
// order, into a leaderboard and per-player progress series. Events or
// results pointing at unknown players are skipped. Counting of played
// events de-duplicates on event ID.
func SeasonStandings(season domain.Season, events []domain.Event, players []domain.Player) domain.SeasonStandings {
	accs := make(map[uint]*playerAccumulator, len(players))
	order := make([]uint, 0, len(players))
	for _, player := range players {
		accs[player.ID] = &playerAccumulator{
			player:     player,
			seenEvents: make(map[uint]bool),
		}
		order = append(order, player.ID)
	}

	for _, event := range seasonEvents(season, events) {
		resulted := make(map[uint]bool, len(event.Results))

		for _, result := range event.Results {
			resulted[result.PlayerID] = true

			acc := accs[result.PlayerID]
			if acc == nil || acc.seenEvents[event.ID] {
				continue
			}

			net := result.Prize - (event.BuyIn + result.Rebuys*event.RebuyPrice)
			acc.record(event, net)
			if result.Position == 1 {
				acc.wins++
			}
			if result.Position <= finalTableThreshold(len(event.Participants)) {
				acc.finalTables++
			}
		}

		// Players on the entry list without a recorded result still paid
		// the buy-in.
		for _, participant := range event.Participants {
			if resulted[participant.ID] {
				continue
			}

			acc := accs[participant.ID]
			if acc == nil || acc.seenEvents[event.ID] {
				continue
			}

			acc.record(event, -event.BuyIn)
		}
	}

	standings := domain.SeasonStandings{
		SeasonID:    season.ID,
		Leaderboard: make([]domain.LeaderboardEntry, 0, len(order)),
		Progress:    make(map[uint][]domain.PlayerProgressPoint),
	}
	for _, playerID := range order {
		acc := accs[playerID]
		if acc.played == 0 {
			continue
		}

		standings.Leaderboard = append(standings.Leaderboard, domain.LeaderboardEntry{
			PlayerID:         acc.player.ID,
			PlayerName:       acc.player.DisplayName(),
			TotalFinalResult: acc.total,
			EventsPlayed:     acc.played,
			Wins:             acc.wins,
			FinalTables:      acc.finalTables,
		})

		progress := acc.progress
		sort.SliceStable(progress, func(i, j int) bool {
			return progress[i].EventDate.Before(progress[j].EventDate)
		})
		standings.Progress[playerID] = progress
	}

	sort.SliceStable(standings.Leaderboard, func(i, j int) bool {
		return standings.Leaderboard[i].TotalFinalResult > standings.Leaderboard[j].TotalFinalResult
	})

	return standings
}

func (acc *playerAccumulator) record(event domain.Event, net int) {
	acc.seenEvents[event.ID] = true
	acc.played++
	acc.total += net
	acc.cumulative += net
	acc.progress = append(acc.progress, domain.PlayerProgressPoint{
		EventDate:             event.Date,
		EventName:             event.Name,
		EventFinalResult:      net,
		CumulativeFinalResult: acc.cumulative,
	})
}

func seasonEvents(season domain.Season, events []domain.Event) []domain.Event {
	completed := make([]domain.Event, 0, len(events))
	for _, event := range events {
		if event.SeasonID == season.ID && event.Status == domain.EventStatusCompleted {
			completed = append(completed, event)
		}
	}
	sort.SliceStable(completed, func(i, j int) bool {
		return completed[i].Date.Before(completed[j].Date)
	})

	return completed
}

// finalTableThreshold is the position cutoff counted as a final-table
// finish: the top 30% (rounded up) for fields of 10+, the top 3 from 5
// players, otherwise the whole field.
func finalTableThreshold(participantCount int) int {
	switch {
	case participantCount >= 10:
		return int(math.Ceil(0.3 * float64(participantCount)))
	case participantCount >= 5:
		return 3
	case participantCount == 0:
		return 1
	default:
		return participantCount
	}
}
