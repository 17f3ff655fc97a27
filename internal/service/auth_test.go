package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/estadio/stadium-api/internal/domain"
	"github.com/estadio/stadium-api/internal/repository"
)

type mockAuthRepo struct {
	mock.Mock
}

func (m *mockAuthRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockAuthRepo) FindByID(ctx context.Context, id uint) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockAuthRepo) FindByName(ctx context.Context, name string) (domain.User, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(domain.User), args.Error(1)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("admin is hashed and stored", func(t *testing.T) {
		repo := &mockAuthRepo{}
		repo.On("Create", ctx, mock.MatchedBy(func(u domain.User) bool {
			return u.Name == "root" &&
				u.Role.Name == "user" &&
				bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("Secret123!")) == nil
		})).Return(domain.User{ID: 1, Name: "root"}, nil)

		created, err := NewAuthService(repo).Register(ctx, domain.User{
			Name:     "root",
			Password: "Secret123!",
			Role:     domain.Role{Scopes: domain.Scopes{domain.ScopeAdmin}},
		})
		require.NoError(t, err)
		assert.Equal(t, uint(1), created.ID)
		repo.AssertExpectations(t)
	})

	t.Run("non admin is refused", func(t *testing.T) {
		repo := &mockAuthRepo{}

		_, err := NewAuthService(repo).Register(ctx, domain.User{
			Name: "ana",
			Role: domain.Role{Scopes: domain.Scopes{domain.ScopeNotMember}},
		})
		assert.ErrorIs(t, err, ErrOnlyAdmin)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAuthService_CreateUserOnlyNotMember(t *testing.T) {
	ctx := context.Background()
	repo := &mockAuthRepo{}
	svc := NewAuthService(repo)

	for _, scopes := range []domain.Scopes{
		{domain.ScopeAdmin},
		{domain.ScopeMember},
		{domain.ScopeNotMember, domain.ScopeMember},
		nil,
	} {
		_, err := svc.CreateUser(ctx, domain.User{Name: "x", Role: domain.Role{Scopes: scopes}})
		assert.ErrorIs(t, err, ErrOnlyNotMember, "scopes %v", scopes)
	}

	repo.On("Create", ctx, mock.Anything).Return(domain.User{ID: 2}, nil)
	_, err := svc.CreateUser(ctx, domain.User{
		Name:     "ana",
		Password: "Secret123!",
		Role:     domain.Role{Scopes: domain.Scopes{domain.ScopeNotMember}},
	})
	require.NoError(t, err)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("Secret123!"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &mockAuthRepo{}
	repo.On("FindByName", ctx, "ana").Return(domain.User{ID: 3, Name: "ana", Password: string(hash)}, nil)
	repo.On("FindByName", ctx, "ghost").Return(domain.User{}, repository.ErrUserNotFound)
	svc := NewAuthService(repo)

	user, err := svc.Login(ctx, "ana", "Secret123!")
	require.NoError(t, err)
	assert.Equal(t, uint(3), user.ID)

	_, err = svc.Login(ctx, "ana", "wrong")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = svc.Login(ctx, "ghost", "Secret123!")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
