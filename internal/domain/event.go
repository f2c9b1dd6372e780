package domain

import "time"

type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusActive    EventStatus = "active"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

type BlindLevel struct {
	Level           int `json:"level"`
	SmallBlind      int `json:"small_blind"`
	BigBlind        int `json:"big_blind"`
	Ante            int `json:"ante,omitempty"`
	DurationMinutes int `json:"duration_minutes"`
}

type Event struct {
	ID             uint          `json:"id"`
	SeasonID       uint          `json:"season_id"`
	Name           string        `json:"name"`
	Slug           string        `json:"slug"`
	Date           time.Time     `json:"date"`
	BuyIn          int           `json:"buy_in"`
	RebuyAllowed   bool          `json:"rebuy_allowed"`
	RebuyPrice     int           `json:"rebuy_price,omitempty"`
	MaxPlayers     int           `json:"max_players"`
	StartingStack  int           `json:"starting_stack,omitempty"`
	Status         EventStatus   `json:"status"`
	BlindStructure []BlindLevel  `json:"blind_structure,omitempty"`
	PrizePool      int           `json:"prize_pool"`
	Participants   []Player      `json:"participants,omitempty"`
	Results        []EventResult `json:"results,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// EventResult is one finishing record. Positions are a permutation of 1..N
// for the N players still on the roster when the tournament ended.
type EventResult struct {
	EventID  uint `json:"event_id"`
	PlayerID uint `json:"player_id"`
	Position int  `json:"position"`
	Prize    int  `json:"prize"`
	Rebuys   int  `json:"rebuys"`
}
