package domain

import "time"

type Season struct {
	ID        uint       `json:"id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type LeaderboardEntry struct {
	PlayerID         uint   `json:"player_id"`
	PlayerName       string `json:"player_name"`
	TotalFinalResult int    `json:"total_final_result"`
	EventsPlayed     int    `json:"events_played"`
	Wins             int    `json:"wins"`
	FinalTables      int    `json:"final_tables"`
}

type PlayerProgressPoint struct {
	EventDate             time.Time `json:"event_date"`
	EventName             string    `json:"event_name"`
	EventFinalResult      int       `json:"event_final_result"`
	CumulativeFinalResult int       `json:"cumulative_final_result"`
}

// SeasonStandings is the aggregator output rendered on season dashboards.
// It is recomputed from scratch on every read and never persisted.
type SeasonStandings struct {
	SeasonID    uint                          `json:"season_id"`
	Leaderboard []LeaderboardEntry            `json:"leaderboard"`
	Progress    map[uint][]PlayerProgressPoint `json:"progress"`
}
