package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func estadioA() Stadium {
	return Stadium{
		ID:   1,
		Name: "Estádio A",
		Sectors: []Sector{
			{Sector: "A", Price: 30, PriceMember: 25},
			{Sector: "Bancada Norte", Price: 20, PriceMember: 15},
		},
	}
}

func TestPriceTicket(t *testing.T) {
	member := User{ID: 3, Role: Role{Scopes: Scopes{ScopeNotMember, ScopeMember}}}
	nonMember := User{ID: 4, Role: Role{Scopes: Scopes{ScopeNotMember}}}

	ticket, err := PriceTicket(estadioA(), "A", member, 9)
	require.NoError(t, err)
	assert.Equal(t, 25.0, ticket.Price)
	assert.True(t, ticket.IsMember)
	assert.Equal(t, uint(3), ticket.UserID)
	assert.Equal(t, uint(9), ticket.GameID)

	ticket, err = PriceTicket(estadioA(), "A", nonMember, 9)
	require.NoError(t, err)
	assert.Equal(t, 30.0, ticket.Price)
	assert.False(t, ticket.IsMember)
}

func TestPriceTicket_SubstringMatch(t *testing.T) {
	ticket, err := PriceTicket(estadioA(), "Norte", User{ID: 1}, 2)
	require.NoError(t, err)
	assert.Equal(t, 20.0, ticket.Price)
	assert.Equal(t, "Norte", ticket.Sector)
}

func TestPriceTicket_UnknownSector(t *testing.T) {
	_, err := PriceTicket(estadioA(), "Z", User{ID: 1}, 2)
	assert.ErrorIs(t, err, ErrSectorNotFound)
}

func TestNewPageInfo(t *testing.T) {
	info := NewPageInfo(Pagination{Limit: 5, Skip: 10}, 16)
	assert.Equal(t, 2, info.Page)
	assert.True(t, info.HasMore)

	info = NewPageInfo(Pagination{Limit: 5, Skip: 15}, 16)
	assert.False(t, info.HasMore)
}
