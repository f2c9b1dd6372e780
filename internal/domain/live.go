package domain

// Participant is one seat on the live roster. EliminatedPosition stays nil
// while the player is active; once set it only ever reverts through an
// explicit undo of the last elimination.
type Participant struct {
	PlayerID           uint   `json:"player_id"`
	Name               string `json:"name"`
	IsGuest            bool   `json:"is_guest"`
	Rebuys             int    `json:"rebuys"`
	EliminatedPosition *int   `json:"eliminated_position,omitempty"`
}

func (p Participant) Active() bool {
	return p.EliminatedPosition == nil
}

type PayoutEntry struct {
	Position int `json:"position"`
	Prize    int `json:"prize"`
}

type ChipStats struct {
	TotalChips   int `json:"total_chips"`
	ActiveCount  int `json:"active_count"`
	AverageStack int `json:"average_stack"`
}

// LiveState is the full derived view of a running tournament, recomputed
// after every roster or rebuy change.
type LiveState struct {
	EventID   uint          `json:"event_id"`
	Roster    []Participant `json:"roster"`
	PrizePool int           `json:"prize_pool"`
	Payouts   []PayoutEntry `json:"payouts"`
	ChipStats ChipStats     `json:"chip_stats"`
	Finished  bool          `json:"finished"`
}
