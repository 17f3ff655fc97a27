package repository

import (
	"context"
	"fmt"

	"github.com/estadio/stadium-api/internal/domain"
	"github.com/estadio/stadium-api/internal/repository/dao"
)

var ErrTicketNotFound = dao.ErrTicketNotFound

type TicketDAO interface {
	InsertForUser(ctx context.Context, ticket dao.Ticket) (dao.Ticket, error)
	FindByID(ctx context.Context, id uint) (dao.Ticket, error)
	FindAll(ctx context.Context, limit, skip int) ([]dao.Ticket, error)
	FindByUserID(ctx context.Context, userID uint, limit, skip int) ([]dao.Ticket, error)
	FindByGameID(ctx context.Context, gameID uint) ([]dao.Ticket, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) (dao.Ticket, error)
}

type TicketRepository struct {
	dao TicketDAO
}

func NewTicketRepository(dao TicketDAO) *TicketRepository {
	return &TicketRepository{
		dao: dao,
	}
}

// Create stores the ticket and links it to its owner in one step.
func (r *TicketRepository) Create(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error) {
	created, err := r.dao.InsertForUser(ctx, dao.Ticket{
		Sector:   ticket.Sector,
		Price:    ticket.Price,
		GameID:   ticket.GameID,
		UserID:   ticket.UserID,
		IsMember: ticket.IsMember,
	})
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.dao.InsertForUser -> %w", err)
	}

	return ticketToDomain(created), nil
}

func (r *TicketRepository) FindByID(ctx context.Context, id uint) (domain.Ticket, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return ticketToDomain(found), nil
}

func (r *TicketRepository) FindAll(ctx context.Context, page domain.Pagination) ([]domain.Ticket, error) {
	found, err := r.dao.FindAll(ctx, page.Limit, page.Skip)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return ticketsToDomain(found), nil
}

func (r *TicketRepository) FindByUserID(ctx context.Context, userID uint, page domain.Pagination) ([]domain.Ticket, error) {
	found, err := r.dao.FindByUserID(ctx, userID, page.Limit, page.Skip)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUserID -> %w", err)
	}

	return ticketsToDomain(found), nil
}

func (r *TicketRepository) FindByGameID(ctx context.Context, gameID uint) ([]domain.Ticket, error) {
	found, err := r.dao.FindByGameID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByGameID -> %w", err)
	}

	return ticketsToDomain(found), nil
}

func (r *TicketRepository) Update(ctx context.Context, id uint, patch domain.TicketPatch) (domain.Ticket, error) {
	fields := map[string]interface{}{}
	if patch.Sector != nil {
		fields["sector"] = *patch.Sector
	}
	if patch.Price != nil {
		fields["price"] = *patch.Price
	}

	updated, err := r.dao.Update(ctx, id, fields)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return ticketToDomain(updated), nil
}

func ticketsToDomain(found []dao.Ticket) []domain.Ticket {
	tickets := make([]domain.Ticket, 0, len(found))
	for _, t := range found {
		tickets = append(tickets, ticketToDomain(t))
	}

	return tickets
}
