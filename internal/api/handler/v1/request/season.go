package request

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

var errEndBeforeStart = errors.New("end date must be after the start date")

type CreateSeasonRequest struct {
	Name      string     `json:"name"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

func (req *CreateSeasonRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.StartDate, validation.Required),
	)
	if err != nil {
		return err
	}

	if req.EndDate != nil && !req.EndDate.After(req.StartDate) {
		return errEndBeforeStart
	}

	return nil
}

type UpdateSeasonRequest struct {
	Name      string     `json:"name"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	IsActive  bool       `json:"is_active"`
}

func (req *UpdateSeasonRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.StartDate, validation.Required),
	)
	if err != nil {
		return err
	}

	if req.EndDate != nil && !req.EndDate.After(req.StartDate) {
		return errEndBeforeStart
	}

	return nil
}
