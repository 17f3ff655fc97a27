package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/estadio/stadium-api/internal/domain"
	"github.com/estadio/stadium-api/internal/notify"
	"github.com/estadio/stadium-api/internal/repository"
)

// memStore is an in-memory stand-in for the postgres-backed repositories.
type memStore struct {
	mu       sync.Mutex
	nextID   uint
	users    map[uint]domain.User
	requests map[uint]domain.MemberRequest
	stadiums map[uint]domain.Stadium
	games    map[uint]domain.Game
	tickets  map[uint]domain.Ticket
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[uint]domain.User{},
		requests: map[uint]domain.MemberRequest{},
		stadiums: map[uint]domain.Stadium{},
		games:    map[uint]domain.Game{},
		tickets:  map[uint]domain.Ticket{},
	}
}

func (m *memStore) id() uint {
	m.nextID++
	return m.nextID
}

func (m *memStore) addUser(name string, scopes ...domain.Scope) domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()

	user := domain.User{ID: m.id(), Name: name, Role: domain.Role{Name: "user", Scopes: scopes}}
	m.users[user.ID] = user
	return user
}

func (m *memStore) addStadium(stadium domain.Stadium) domain.Stadium {
	m.mu.Lock()
	defer m.mu.Unlock()

	stadium.ID = m.id()
	m.stadiums[stadium.ID] = stadium
	return stadium
}

func (m *memStore) addGame(game domain.Game) domain.Game {
	m.mu.Lock()
	defer m.mu.Unlock()

	game.ID = m.id()
	m.games[game.ID] = game
	return game
}

func (m *memStore) FindByID(_ context.Context, id uint) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *memStore) FindGameByID(_ context.Context, id uint) (domain.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	game, ok := m.games[id]
	if !ok {
		return domain.Game{}, repository.ErrGameNotFound
	}
	return game, nil
}

func (m *memStore) FindStadiumByID(_ context.Context, id uint) (domain.Stadium, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stadium, ok := m.stadiums[id]
	if !ok {
		return domain.Stadium{}, repository.ErrStadiumNotFound
	}
	return stadium, nil
}

type memRequests struct{ *memStore }

func (m memRequests) Create(_ context.Context, request domain.MemberRequest) (domain.MemberRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.requests {
		if r.UserID == request.UserID && r.IsPending() {
			return domain.MemberRequest{}, repository.ErrPendingRequestExists
		}
	}
	request.ID = m.id()
	m.requests[request.ID] = request
	return request, nil
}

func (m memRequests) FindByID(_ context.Context, id uint) (domain.MemberRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	request, ok := m.requests[id]
	if !ok {
		return domain.MemberRequest{}, repository.ErrRequestNotFound
	}
	return request, nil
}

func (m memRequests) sorted(keep func(domain.MemberRequest) bool) []domain.MemberRequest {
	var out []domain.MemberRequest
	for _, r := range m.requests {
		if keep(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RequestDate.Equal(out[j].RequestDate) {
			return out[i].ID > out[j].ID
		}
		return out[i].RequestDate.After(out[j].RequestDate)
	})
	return out
}

func (m memRequests) FindByUserID(_ context.Context, userID uint) ([]domain.MemberRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.sorted(func(r domain.MemberRequest) bool { return r.UserID == userID }), nil
}

func (m memRequests) FindAll(_ context.Context, page domain.Pagination) ([]domain.MemberRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := m.sorted(func(domain.MemberRequest) bool { return true })
	if page.Skip >= len(all) {
		return nil, nil
	}
	end := page.Skip + page.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[page.Skip:end], nil
}

func (m memRequests) FindByStatus(_ context.Context, status domain.MemberRequestStatus) ([]domain.MemberRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.sorted(func(r domain.MemberRequest) bool { return r.Status == status }), nil
}

func (m memRequests) Approve(_ context.Context, id, adminID uint, at time.Time) (domain.MemberRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	request, ok := m.requests[id]
	if !ok {
		return domain.MemberRequest{}, repository.ErrRequestNotFound
	}
	if err := request.Approve(adminID, at); err != nil {
		return domain.MemberRequest{}, repository.ErrRequestNotPending
	}
	m.requests[id] = request

	user := m.users[request.UserID]
	user.Role.Scopes = user.Role.Scopes.With(domain.ScopeMember)
	m.users[user.ID] = user

	return request, nil
}

func (m memRequests) Reject(_ context.Context, id, adminID uint, reason string, at time.Time) (domain.MemberRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	request, ok := m.requests[id]
	if !ok {
		return domain.MemberRequest{}, repository.ErrRequestNotFound
	}
	if err := request.Reject(adminID, reason, at); err != nil {
		return domain.MemberRequest{}, repository.ErrRequestNotPending
	}
	m.requests[id] = request

	return request, nil
}

type memTickets struct{ *memStore }

func (m memTickets) Create(_ context.Context, ticket domain.Ticket) (domain.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[ticket.UserID]
	if !ok {
		return domain.Ticket{}, repository.ErrUserNotFound
	}
	ticket.ID = m.id()
	m.tickets[ticket.ID] = ticket
	user.TicketIDs = append(user.TicketIDs, ticket.ID)
	m.users[user.ID] = user

	return ticket, nil
}

func (m memTickets) FindByID(_ context.Context, id uint) (domain.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ticket, ok := m.tickets[id]
	if !ok {
		return domain.Ticket{}, repository.ErrTicketNotFound
	}
	return ticket, nil
}

func (m memTickets) filter(keep func(domain.Ticket) bool) []domain.Ticket {
	out := []domain.Ticket{}
	for _, t := range m.tickets {
		if keep(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m memTickets) FindAll(_ context.Context, _ domain.Pagination) ([]domain.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.filter(func(domain.Ticket) bool { return true }), nil
}

func (m memTickets) FindByUserID(_ context.Context, userID uint, _ domain.Pagination) ([]domain.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.filter(func(t domain.Ticket) bool { return t.UserID == userID }), nil
}

func (m memTickets) FindByGameID(_ context.Context, gameID uint) ([]domain.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.filter(func(t domain.Ticket) bool { return t.GameID == gameID }), nil
}

func (m memTickets) Update(_ context.Context, id uint, patch domain.TicketPatch) (domain.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ticket, ok := m.tickets[id]
	if !ok {
		return domain.Ticket{}, repository.ErrTicketNotFound
	}
	if patch.Sector != nil {
		ticket.Sector = *patch.Sector
	}
	if patch.Price != nil {
		ticket.Price = *patch.Price
	}
	m.tickets[id] = ticket
	return ticket, nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func (r *recordingNotifier) Emit(_ context.Context, event notify.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingNotifier) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.events))
	for _, e := range r.events {
		names = append(names, e.Name)
	}
	return names
}
