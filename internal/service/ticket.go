package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/estadio/stadium-api/internal/domain"
	"github.com/estadio/stadium-api/internal/repository"
)

var (
	ErrTicketNotFound     = repository.ErrTicketNotFound
	ErrGameWithoutStadium = errors.New("game does not have a stadium associated")
	ErrSectorNotFound     = domain.ErrSectorNotFound
)

type TicketRepository interface {
	Create(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error)
	FindByID(ctx context.Context, id uint) (domain.Ticket, error)
	FindAll(ctx context.Context, page domain.Pagination) ([]domain.Ticket, error)
	FindByUserID(ctx context.Context, userID uint, page domain.Pagination) ([]domain.Ticket, error)
	FindByGameID(ctx context.Context, gameID uint) ([]domain.Ticket, error)
	Update(ctx context.Context, id uint, patch domain.TicketPatch) (domain.Ticket, error)
}

type GameFinder interface {
	FindGameByID(ctx context.Context, id uint) (domain.Game, error)
	FindStadiumByID(ctx context.Context, id uint) (domain.Stadium, error)
}

type UserFinder interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

type TicketService struct {
	repo  TicketRepository
	games GameFinder
	users UserFinder
}

func NewTicketService(repo TicketRepository, games GameFinder, users UserFinder) *TicketService {
	return &TicketService{
		repo:  repo,
		games: games,
		users: users,
	}
}

// Purchase prices a ticket for the buyer's current membership and issues it.
// The price and membership flag are frozen on the ticket.
func (s *TicketService) Purchase(ctx context.Context, userID, gameID uint, sector string) (domain.Purchase, error) {
	game, err := s.games.FindGameByID(ctx, gameID)
	if err != nil {
		return domain.Purchase{}, fmt.Errorf("s.games.FindGameByID -> %w", err)
	}
	if game.StadiumID == nil {
		return domain.Purchase{}, ErrGameWithoutStadium
	}

	stadium, err := s.stadiumOf(ctx, game)
	if err != nil {
		return domain.Purchase{}, err
	}

	buyer, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return domain.Purchase{}, fmt.Errorf("s.users.FindByID -> %w", err)
	}

	ticket, err := domain.PriceTicket(stadium, sector, buyer, game.ID)
	if err != nil {
		return domain.Purchase{}, err
	}

	created, err := s.repo.Create(ctx, ticket)
	if err != nil {
		return domain.Purchase{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return domain.Purchase{
		Ticket:   created,
		Price:    created.Price,
		IsMember: created.IsMember,
	}, nil
}

func (s *TicketService) stadiumOf(ctx context.Context, game domain.Game) (domain.Stadium, error) {
	if game.Stadium != nil && game.Stadium.ID == *game.StadiumID {
		return *game.Stadium, nil
	}

	stadium, err := s.games.FindStadiumByID(ctx, *game.StadiumID)
	if err != nil {
		return domain.Stadium{}, fmt.Errorf("s.games.FindStadiumByID -> %w", err)
	}

	return stadium, nil
}

// CreateForUser issues a ticket exactly as given; no pricing is applied.
func (s *TicketService) CreateForUser(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error) {
	if _, err := s.games.FindGameByID(ctx, ticket.GameID); err != nil {
		return domain.Ticket{}, fmt.Errorf("s.games.FindGameByID -> %w", err)
	}
	if _, err := s.users.FindByID(ctx, ticket.UserID); err != nil {
		return domain.Ticket{}, fmt.Errorf("s.users.FindByID -> %w", err)
	}

	created, err := s.repo.Create(ctx, ticket)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// List returns every ticket to administrators and only their own to others.
func (s *TicketService) List(ctx context.Context, caller domain.Identity, page domain.Pagination) ([]domain.Ticket, error) {
	if caller.Scopes.Has(domain.ScopeAdmin) {
		tickets, err := s.repo.FindAll(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
		}
		return tickets, nil
	}

	tickets, err := s.repo.FindByUserID(ctx, caller.ID, page)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByUserID -> %w", err)
	}

	return tickets, nil
}

func (s *TicketService) ListByGame(ctx context.Context, gameID uint) ([]domain.Ticket, error) {
	tickets, err := s.repo.FindByGameID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByGameID -> %w", err)
	}

	return tickets, nil
}

func (s *TicketService) Get(ctx context.Context, id uint) (domain.Ticket, error) {
	ticket, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return ticket, nil
}

func (s *TicketService) Update(ctx context.Context, id uint, patch domain.TicketPatch) (domain.Ticket, error) {
	ticket, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return ticket, nil
}
