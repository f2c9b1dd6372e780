package tournament

import (
	"time"

	"github.com/google/uuid"

	"github.com/tourneyhq/pokernights-api/internal/domain"
)

// Snapshot is a serializable capture of a running session. The engine only
// produces and consumes snapshots; when and where they get persisted is the
// hosting layer's call.
type Snapshot struct {
	Token   string               `json:"token"`
	TakenAt time.Time            `json:"taken_at"`
	Config  Config               `json:"config"`
	Roster  []domain.Participant `json:"roster"`
}

func (e *Engine) Snapshot() Snapshot {
	roster := make([]domain.Participant, len(e.roster))
	copy(roster, e.roster)

	return Snapshot{
		Token:   uuid.NewString(),
		TakenAt: time.Now().UTC(),
		Config:  e.cfg,
		Roster:  roster,
	}
}

// Restore rebuilds an engine from a snapshot, e.g. after a crashed or
// reloaded session.
func Restore(snap Snapshot) *Engine {
	roster := make([]domain.Participant, len(snap.Roster))
	copy(roster, snap.Roster)

	return &Engine{
		cfg:    snap.Config,
		roster: roster,
	}
}
