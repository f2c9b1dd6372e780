package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreatePlayerRequest struct {
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
	IsGuest  bool   `json:"is_guest"`
}

func (req *CreatePlayerRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Nickname, validation.Length(0, 100)),
	)
}

type UpdatePlayerRequest struct {
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
	IsGuest  bool   `json:"is_guest"`
}

func (req *UpdatePlayerRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Nickname, validation.Length(0, 100)),
	)
}
