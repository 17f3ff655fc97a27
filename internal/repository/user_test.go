package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/estadio/stadium-api/internal/domain"
	"github.com/estadio/stadium-api/internal/repository/dao"
)

type mockUserDAO struct {
	mock.Mock
}

func (m *mockUserDAO) InsertWithMember(ctx context.Context, user dao.User, member dao.Member) (dao.User, error) {
	args := m.Called(ctx, user, member)
	return args.Get(0).(dao.User), args.Error(1)
}

func (m *mockUserDAO) FindByID(ctx context.Context, id uint) (dao.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(dao.User), args.Error(1)
}

func (m *mockUserDAO) FindByName(ctx context.Context, name string) (dao.User, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(dao.User), args.Error(1)
}

func (m *mockUserDAO) FindAll(ctx context.Context, limit, skip int) ([]dao.User, error) {
	args := m.Called(ctx, limit, skip)
	return args.Get(0).([]dao.User), args.Error(1)
}

func (m *mockUserDAO) Update(ctx context.Context, id uint, fields map[string]interface{}) (dao.User, error) {
	args := m.Called(ctx, id, fields)
	return args.Get(0).(dao.User), args.Error(1)
}

func (m *mockUserDAO) AttachMember(ctx context.Context, userID uint, member dao.Member) (dao.User, dao.Member, error) {
	args := m.Called(ctx, userID, member)
	return args.Get(0).(dao.User), args.Get(1).(dao.Member), args.Error(2)
}

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()
	users := &mockUserDAO{}
	repo := NewUserRepository(users, nil)

	memberID := uint(4)
	users.On("InsertWithMember", ctx,
		mock.MatchedBy(func(u dao.User) bool {
			return u.Name == "ana" && []string(u.Scopes)[0] == "notMember"
		}),
		dao.Member{TaxNumber: 123, Photo: "member_123.jpg"},
	).Return(dao.User{
		ID:        1,
		Name:      "ana",
		RoleName:  "user",
		Scopes:    pq.StringArray{"notMember"},
		TaxNumber: 123,
		MemberID:  &memberID,
		Member:    &dao.Member{ID: memberID, TaxNumber: 123},
		TicketIDs: pq.Int64Array{7, 9},
	}, nil)

	created, err := repo.Create(ctx, domain.User{
		Name:      "ana",
		Role:      domain.Role{Name: "user", Scopes: domain.Scopes{domain.ScopeNotMember}},
		TaxNumber: 123,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.Scopes{domain.ScopeNotMember}, created.Role.Scopes)
	assert.Equal(t, []uint{7, 9}, created.TicketIDs)
	require.NotNil(t, created.Member)
	assert.Equal(t, memberID, created.Member.ID)
	users.AssertExpectations(t)
}

func TestUserRepository_UpdateOnlySetFields(t *testing.T) {
	ctx := context.Background()
	users := &mockUserDAO{}
	repo := NewUserRepository(users, nil)

	email := "new@example.com"
	users.On("Update", ctx, uint(2), map[string]interface{}{
		"email":  email,
		"scopes": pq.StringArray{"notMember", "member"},
	}).Return(dao.User{ID: 2, Email: email}, nil)

	updated, err := repo.Update(ctx, 2, domain.UserPatch{
		Email:  &email,
		Scopes: domain.Scopes{domain.ScopeNotMember, domain.ScopeMember},
	})
	require.NoError(t, err)
	assert.Equal(t, email, updated.Email)
	users.AssertExpectations(t)
}

func TestUserRepository_FindByIDWrapsSentinel(t *testing.T) {
	ctx := context.Background()
	users := &mockUserDAO{}
	repo := NewUserRepository(users, nil)

	users.On("FindByID", ctx, uint(9)).Return(dao.User{}, dao.ErrUserNotFound)

	_, err := repo.FindByID(ctx, 9)
	assert.True(t, errors.Is(err, ErrUserNotFound))
	assert.Contains(t, err.Error(), "r.dao.FindByID -> ")
}
