package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/estadio/stadium-api/internal/domain"
)

var errPurchaseFields = errors.New("gameId and sector are required")

type PurchaseTicketRequest struct {
	GameID uint   `json:"gameId"`
	Sector string `json:"sector"`
}

func (req *PurchaseTicketRequest) Validate() error {
	required := validation.Required.Error(errPurchaseFields.Error())

	err := validation.ValidateStruct(
		req,
		validation.Field(&req.GameID, required),
		validation.Field(&req.Sector, required),
	)
	if err != nil {
		return errPurchaseFields
	}
	return nil
}

type CreateTicketRequest struct {
	Sector string  `json:"sector"`
	Price  float64 `json:"price"`
	GameID uint    `json:"gameId"`
	UserID uint    `json:"userId"`
}

func (req *CreateTicketRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Sector, validation.Required),
		validation.Field(&req.Price, validation.Min(0.0)),
		validation.Field(&req.GameID, validation.Required),
		validation.Field(&req.UserID, validation.Required),
	)
}

func (req *CreateTicketRequest) ToDomain() domain.Ticket {
	return domain.Ticket{
		Sector: req.Sector,
		Price:  req.Price,
		GameID: req.GameID,
		UserID: req.UserID,
	}
}

type UpdateTicketRequest struct {
	Sector *string  `json:"sector"`
	Price  *float64 `json:"price"`
}

func (req *UpdateTicketRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Sector, validation.NilOrNotEmpty),
		validation.Field(&req.Price, validation.Min(0.0)),
	)
}

func (req *UpdateTicketRequest) ToDomain() domain.TicketPatch {
	return domain.TicketPatch{
		Sector: req.Sector,
		Price:  req.Price,
	}
}

type RejectMemberRequest struct {
	Reason string `json:"reason"`
}

func (req *RejectMemberRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Reason, validation.Length(0, 500)),
	)
}
