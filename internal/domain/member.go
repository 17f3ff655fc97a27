package domain

import (
	"fmt"
	"time"
)

type Member struct {
	ID             uint      `json:"id"`
	TaxNumber      int64     `json:"taxNumber"`
	Photo          string    `json:"photo"`
	PaymentRegular bool      `json:"paymentRegular"`
	Cash           float64   `json:"cash"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// NewMemberFor builds the default member profile linked to a freshly
// registered user.
func NewMemberFor(taxNumber int64) Member {
	return Member{
		TaxNumber:      taxNumber,
		Photo:          fmt.Sprintf("member_%d.jpg", taxNumber),
		PaymentRegular: false,
		Cash:           0,
	}
}

type MemberPatch struct {
	Photo          *string
	PaymentRegular *bool
	Cash           *float64
}
