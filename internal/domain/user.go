package domain

import "time"

type Role struct {
	Name   string `json:"name"`
	Scopes Scopes `json:"scope"`
}

type User struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      Role      `json:"role"`
	Age       int       `json:"age,omitempty"`
	Address   string    `json:"address"`
	Country   string    `json:"country"`
	TaxNumber int64     `json:"taxNumber"`
	MemberID  *uint     `json:"memberId,omitempty"`
	Member    *Member   `json:"member,omitempty"`
	TicketIDs []uint    `json:"tickets"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u User) IsMember() bool {
	return u.Role.Scopes.Has(ScopeMember)
}

func (u User) IsAdmin() bool {
	return u.Role.Scopes.Has(ScopeAdmin)
}

// Identity is the decoded, already authenticated caller.
type Identity struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Scopes Scopes `json:"role"`
}

// UserPatch carries the admin-editable fields of a user; nil means unchanged.
type UserPatch struct {
	Name     *string
	Email    *string
	Age      *int
	Address  *string
	Country  *string
	RoleName *string
	Scopes   Scopes
}
