package request

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/tourneyhq/pokernights-api/internal/domain"
)

var (
	errMissingRebuyPrice = errors.New("rebuy price is required when rebuys are allowed")
	errInvalidBlinds     = errors.New("blind levels must have increasing big blinds")
)

type BlindLevelRequest struct {
	SmallBlind      int `json:"small_blind"`
	BigBlind        int `json:"big_blind"`
	Ante            int `json:"ante"`
	DurationMinutes int `json:"duration_minutes"`
}

type CreateEventRequest struct {
	SeasonID       uint                `json:"season_id"`
	Name           string              `json:"name"`
	Date           time.Time           `json:"date"`
	BuyIn          int                 `json:"buy_in"`
	RebuyAllowed   bool                `json:"rebuy_allowed"`
	RebuyPrice     int                 `json:"rebuy_price"`
	MaxPlayers     int                 `json:"max_players"`
	StartingStack  int                 `json:"starting_stack"`
	BlindStructure []BlindLevelRequest `json:"blind_structure"`
	ParticipantIDs []uint              `json:"participant_ids"`
}

func (req *CreateEventRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.SeasonID, validation.Required),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Date, validation.Required),
		validation.Field(&req.BuyIn, validation.Required, validation.Min(1)),
		validation.Field(&req.RebuyPrice, validation.Min(0)),
		validation.Field(&req.MaxPlayers, validation.Min(0)),
		validation.Field(&req.StartingStack, validation.Min(0)),
	)
	if err != nil {
		return err
	}

	return validateEventRules(req.RebuyAllowed, req.RebuyPrice, req.BlindStructure)
}

type UpdateEventRequest struct {
	SeasonID       uint                `json:"season_id"`
	Name           string              `json:"name"`
	Date           time.Time           `json:"date"`
	BuyIn          int                 `json:"buy_in"`
	RebuyAllowed   bool                `json:"rebuy_allowed"`
	RebuyPrice     int                 `json:"rebuy_price"`
	MaxPlayers     int                 `json:"max_players"`
	StartingStack  int                 `json:"starting_stack"`
	Status         string              `json:"status"`
	BlindStructure []BlindLevelRequest `json:"blind_structure"`
	ParticipantIDs []uint              `json:"participant_ids"`
}

func (req *UpdateEventRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.SeasonID, validation.Required),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Date, validation.Required),
		validation.Field(&req.BuyIn, validation.Required, validation.Min(1)),
		validation.Field(&req.RebuyPrice, validation.Min(0)),
		validation.Field(&req.MaxPlayers, validation.Min(0)),
		validation.Field(&req.StartingStack, validation.Min(0)),
		validation.Field(&req.Status, validation.In(
			string(domain.EventStatusDraft),
			string(domain.EventStatusActive),
			string(domain.EventStatusCancelled),
		)),
	)
	if err != nil {
		return err
	}

	return validateEventRules(req.RebuyAllowed, req.RebuyPrice, req.BlindStructure)
}

func validateEventRules(rebuyAllowed bool, rebuyPrice int, blinds []BlindLevelRequest) error {
	if rebuyAllowed && rebuyPrice <= 0 {
		return errMissingRebuyPrice
	}

	for i := 1; i < len(blinds); i++ {
		if blinds[i].BigBlind <= blinds[i-1].BigBlind {
			return errInvalidBlinds
		}
	}

	return nil
}

func (req *CreateEventRequest) BlindLevels() []domain.BlindLevel {
	return blindLevels(req.BlindStructure)
}

func (req *UpdateEventRequest) BlindLevels() []domain.BlindLevel {
	return blindLevels(req.BlindStructure)
}

func blindLevels(blinds []BlindLevelRequest) []domain.BlindLevel {
	if len(blinds) == 0 {
		return nil
	}

	levels := make([]domain.BlindLevel, 0, len(blinds))
	for i, level := range blinds {
		levels = append(levels, domain.BlindLevel{
			Level:           i + 1,
			SmallBlind:      level.SmallBlind,
			BigBlind:        level.BigBlind,
			Ante:            level.Ante,
			DurationMinutes: level.DurationMinutes,
		})
	}

	return levels
}
