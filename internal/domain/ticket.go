package domain

import "time"

// Ticket is a snapshot: price and IsMember are frozen at issuance.
type Ticket struct {
	ID        uint      `json:"id"`
	Sector    string    `json:"sector"`
	Price     float64   `json:"price"`
	GameID    uint      `json:"gameId"`
	UserID    uint      `json:"userId"`
	IsMember  bool      `json:"isMember"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Purchase struct {
	Ticket   Ticket  `json:"ticket"`
	Price    float64 `json:"price"`
	IsMember bool    `json:"isMember"`
}

// PriceTicket applies the sector pricing rule for the given buyer.
func PriceTicket(stadium Stadium, label string, buyer User, gameID uint) (Ticket, error) {
	sector, err := stadium.FindSector(label)
	if err != nil {
		return Ticket{}, err
	}

	isMember := buyer.IsMember()
	return Ticket{
		Sector:   label,
		Price:    sector.PriceFor(isMember),
		GameID:   gameID,
		UserID:   buyer.ID,
		IsMember: isMember,
	}, nil
}

type TicketPatch struct {
	Sector *string
	Price  *float64
}
