package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/estadio/stadium-api/internal/domain"
)

type SectorRequest struct {
	Sector      string  `json:"sector"`
	Price       float64 `json:"price"`
	PriceMember float64 `json:"priceMember"`
}

func (req SectorRequest) Validate() error {
	return validation.ValidateStruct(
		&req,
		validation.Field(&req.Sector, validation.Required),
		validation.Field(&req.Price, validation.Min(0.0)),
		validation.Field(&req.PriceMember, validation.Min(0.0)),
	)
}

func sectorsToDomain(sectors []SectorRequest) []domain.Sector {
	if sectors == nil {
		return nil
	}

	out := make([]domain.Sector, 0, len(sectors))
	for _, s := range sectors {
		out = append(out, domain.Sector{Sector: s.Sector, Price: s.Price, PriceMember: s.PriceMember})
	}
	return out
}

type CreateStadiumRequest struct {
	Name    string          `json:"name"`
	Sectors []SectorRequest `json:"sectors"`
}

func (req *CreateStadiumRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Sectors),
	)
}

func (req *CreateStadiumRequest) ToDomain() domain.Stadium {
	return domain.Stadium{
		Name:    req.Name,
		Sectors: sectorsToDomain(req.Sectors),
	}
}

// UpdateStadiumRequest replaces the sector list when sectors is present.
type UpdateStadiumRequest struct {
	Name    *string         `json:"name"`
	Sectors []SectorRequest `json:"sectors"`
}

func (req *UpdateStadiumRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.NilOrNotEmpty),
		validation.Field(&req.Sectors),
	)
}

func (req *UpdateStadiumRequest) SectorsToDomain() []domain.Sector {
	return sectorsToDomain(req.Sectors)
}

type CreateGameRequest struct {
	Name      string    `json:"name"`
	Date      time.Time `json:"date"`
	StadiumID *uint     `json:"stadiumId"`
	Image     string    `json:"image"`
}

func (req *CreateGameRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Date, validation.Required),
	)
}

func (req *CreateGameRequest) ToDomain() domain.Game {
	return domain.Game{
		Name:      req.Name,
		Date:      req.Date,
		StadiumID: req.StadiumID,
		Image:     req.Image,
	}
}

type UpdateGameRequest struct {
	Name      *string    `json:"name"`
	Date      *time.Time `json:"date"`
	StadiumID *uint      `json:"stadiumId"`
	Image     *string    `json:"image"`
}

func (req *UpdateGameRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.NilOrNotEmpty),
	)
}

func (req *UpdateGameRequest) ToDomain() domain.GamePatch {
	return domain.GamePatch{
		Name:      req.Name,
		Date:      req.Date,
		StadiumID: req.StadiumID,
		Image:     req.Image,
	}
}
