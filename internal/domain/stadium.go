package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrSectorNotFound = errors.New("sector not found")

type Sector struct {
	ID          uint    `json:"id"`
	StadiumID   uint    `json:"stadiumId"`
	Sector      string  `json:"sector"`
	Price       float64 `json:"price"`
	PriceMember float64 `json:"priceMember"`
}

// PriceFor returns the member price when isMember is set, the standard one otherwise.
func (s Sector) PriceFor(isMember bool) float64 {
	if isMember {
		return s.PriceMember
	}
	return s.Price
}

type Stadium struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Sectors   []Sector  `json:"sectors"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FindSector returns the first sector whose label contains label.
func (s Stadium) FindSector(label string) (Sector, error) {
	for _, sec := range s.Sectors {
		if sec.Sector != "" && strings.Contains(sec.Sector, label) {
			return sec, nil
		}
	}
	return Sector{}, ErrSectorNotFound
}
