package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/tourneyhq/pokernights-api/internal/tournament"
)

var (
	errPlayerOrGuest = errors.New("exactly one of player_id or guest_name is required")
	errZeroDelta     = errors.New("delta must not be zero")
	errEmptySnapshot = errors.New("snapshot roster is required")
)

// AddLiveParticipantRequest seats either an existing player or a brand-new
// guest, never both.
type AddLiveParticipantRequest struct {
	PlayerID  uint   `json:"player_id"`
	GuestName string `json:"guest_name"`
}

func (req *AddLiveParticipantRequest) Validate() error {
	hasPlayer := req.PlayerID != 0
	hasGuest := req.GuestName != ""
	if hasPlayer == hasGuest {
		return errPlayerOrGuest
	}

	return validation.ValidateStruct(
		req,
		validation.Field(&req.GuestName, validation.Length(0, 100)),
	)
}

type ChangeRebuysRequest struct {
	Delta int `json:"delta"`
}

func (req *ChangeRebuysRequest) Validate() error {
	if req.Delta == 0 {
		return errZeroDelta
	}

	return nil
}

type RestoreSessionRequest struct {
	Snapshot tournament.Snapshot `json:"snapshot"`
}

func (req *RestoreSessionRequest) Validate() error {
	if len(req.Snapshot.Roster) == 0 {
		return errEmptySnapshot
	}

	return nil
}
