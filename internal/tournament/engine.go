// Package tournament implements the live-tournament payout and progression
// engine. The engine is pure computation over an in-memory roster: it does
// no I/O, and invalid operations are no-ops reported through a boolean
// rather than errors.
package tournament

import (
	"math"
	"sort"
	"strings"

	"github.com/tourneyhq/pokernights-api/internal/domain"
)

// fourFigurePayoutMin is the field size from which a flat 4th-place prize
// worth one buy-in is carved out of the pool.
const fourFigurePayoutMin = 14

type Config struct {
	BuyIn         int `json:"buy_in"`
	RebuyPrice    int `json:"rebuy_price"`
	StartingStack int `json:"starting_stack"`
	MaxPlayers    int `json:"max_players"`
}

// Engine tracks one tournament session. MaxPlayers is advisory only; the
// engine never refuses an add because of it (the hosting layer does).
type Engine struct {
	cfg    Config
	roster []domain.Participant
}

func New(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

func (e *Engine) Config() Config {
	return e.cfg
}

// Roster returns a copy sorted by display name.
func (e *Engine) Roster() []domain.Participant {
	out := make([]domain.Participant, len(e.roster))
	copy(out, e.roster)
	return out
}

// AddParticipant seats a player with zero rebuys, active. Adding a player
// already on the roster is a no-op.
func (e *Engine) AddParticipant(playerID uint, name string, isGuest bool) bool {
	if e.find(playerID) != nil {
		return false
	}

	e.roster = append(e.roster, domain.Participant{
		PlayerID: playerID,
		Name:     name,
		IsGuest:  isGuest,
	})
	e.sortRoster()

	return true
}

// RemoveParticipant unseats an active player. Eliminated players cannot be
// removed; the only way back for them is UndoLastElimination.
func (e *Engine) RemoveParticipant(playerID uint) bool {
	for i, p := range e.roster {
		if p.PlayerID == playerID {
			if !p.Active() {
				return false
			}
			e.roster = append(e.roster[:i], e.roster[i+1:]...)
			return true
		}
	}

	return false
}

// ChangeRebuys adjusts a participant's rebuy count by delta, clamped at
// zero. Allowed for active and eliminated participants alike.
func (e *Engine) ChangeRebuys(playerID uint, delta int) bool {
	p := e.find(playerID)
	if p == nil {
		return false
	}

	p.Rebuys += delta
	if p.Rebuys < 0 {
		p.Rebuys = 0
	}

	return true
}

// Eliminate knocks a player out. The finishing position is the number of
// players still active at the moment of elimination, so positions count
// down as the field empties and position 1 is left for the last player
// standing. Already-eliminated players are a no-op.
func (e *Engine) Eliminate(playerID uint) bool {
	p := e.find(playerID)
	if p == nil || !p.Active() {
		return false
	}

	position := e.activeCount()
	p.EliminatedPosition = &position

	return true
}

// UndoLastElimination reactivates the most recently eliminated player.
// Because positions count down, that is the eliminated participant holding
// the numerically smallest position.
func (e *Engine) UndoLastElimination() bool {
	var last *domain.Participant
	for i := range e.roster {
		p := &e.roster[i]
		if p.Active() {
			continue
		}
		if last == nil || *p.EliminatedPosition < *last.EliminatedPosition {
			last = p
		}
	}
	if last == nil {
		return false
	}

	last.EliminatedPosition = nil

	return true
}

// PrizePool is buy-ins plus rebuys across the whole roster, eliminated
// players included.
func (e *Engine) PrizePool() int {
	return ComputePrizePool(len(e.roster), e.totalRebuys(), e.cfg.BuyIn, e.cfg.RebuyPrice)
}

func (e *Engine) PayoutStructure() []domain.PayoutEntry {
	return ComputePayouts(e.PrizePool(), len(e.roster), e.cfg.BuyIn)
}

func (e *Engine) ChipStats() domain.ChipStats {
	stats := domain.ChipStats{
		TotalChips:  (len(e.roster) + e.totalRebuys()) * e.cfg.StartingStack,
		ActiveCount: e.activeCount(),
	}
	if stats.ActiveCount > 0 {
		stats.AverageStack = stats.TotalChips / stats.ActiveCount
	}

	return stats
}

// Finished reports whether at most one player remains active on a
// non-empty roster.
func (e *Engine) Finished() bool {
	return len(e.roster) > 0 && e.activeCount() <= 1
}

// FinalizeResults converts the roster into persistable results: the
// remaining active player takes position 1, eliminated players keep their
// assigned positions, and prizes come from the payout structure (zero for
// unpaid positions). Output is sorted ascending by position.
func (e *Engine) FinalizeResults(eventID uint) []domain.EventResult {
	payouts := make(map[int]int)
	for _, entry := range e.PayoutStructure() {
		payouts[entry.Position] = entry.Prize
	}

	results := make([]domain.EventResult, 0, len(e.roster))
	for _, p := range e.roster {
		position := 1
		if !p.Active() {
			position = *p.EliminatedPosition
		}
		results = append(results, domain.EventResult{
			EventID:  eventID,
			PlayerID: p.PlayerID,
			Position: position,
			Prize:    payouts[position],
			Rebuys:   p.Rebuys,
		})
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Position < results[j].Position
	})

	return results
}

// ComputePrizePool is the pool for a field of participantCount players
// with totalRebuys rebuys between them.
func ComputePrizePool(participantCount, totalRebuys, buyIn, rebuyPrice int) int {
	return participantCount*buyIn + totalRebuys*rebuyPrice
}

// ComputePayouts maps the pool onto finishing positions. Small fields pay
// fixed percentage bands; fields of 14+ reserve a flat buy-in for 4th
// place before splitting the rest 50/30/20. Each prize is rounded to the
// nearest unit independently, so the sum may drift a unit or two from the
// pool.
func ComputePayouts(total, participantCount, buyIn int) []domain.PayoutEntry {
	if participantCount == 0 || total == 0 {
		return []domain.PayoutEntry{}
	}

	if participantCount < fourFigurePayoutMin {
		switch {
		case participantCount >= 3:
			return splitPool(total, 0.5, 0.3, 0.2)
		case participantCount == 2:
			return splitPool(total, 0.65, 0.35)
		default:
			return splitPool(total, 1)
		}
	}

	if total > buyIn {
		payouts := splitPool(total-buyIn, 0.5, 0.3, 0.2)
		return append(payouts, domain.PayoutEntry{Position: 4, Prize: buyIn})
	}

	// Degenerate: the reserved 4th-place prize would swallow the pool.
	return splitPool(total, 0.5, 0.3, 0.2)
}

func splitPool(total int, shares ...float64) []domain.PayoutEntry {
	payouts := make([]domain.PayoutEntry, 0, len(shares))
	for i, share := range shares {
		payouts = append(payouts, domain.PayoutEntry{
			Position: i + 1,
			Prize:    int(math.Round(float64(total) * share)),
		})
	}

	return payouts
}

func (e *Engine) find(playerID uint) *domain.Participant {
	for i := range e.roster {
		if e.roster[i].PlayerID == playerID {
			return &e.roster[i]
		}
	}

	return nil
}

func (e *Engine) activeCount() int {
	n := 0
	for _, p := range e.roster {
		if p.Active() {
			n++
		}
	}

	return n
}

func (e *Engine) totalRebuys() int {
	n := 0
	for _, p := range e.roster {
		n += p.Rebuys
	}

	return n
}

func (e *Engine) sortRoster() {
	sort.SliceStable(e.roster, func(i, j int) bool {
		return strings.ToLower(e.roster[i].Name) < strings.ToLower(e.roster[j].Name)
	})
}
