package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/estadio/stadium-api/internal/domain"
	"github.com/estadio/stadium-api/internal/repository"
)

var (
	ErrUserNameExists      = repository.ErrUserNameExists
	ErrUserEmailExists     = repository.ErrUserEmailExists
	ErrUserTaxNumberExists = repository.ErrUserTaxNumberExists
	ErrWrongPassword       = errors.New("wrong password")
	ErrOnlyAdmin           = errors.New("Only create Admin")
	ErrOnlyNotMember       = errors.New("Only create NonMembers")
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByName(ctx context.Context, name string) (domain.User, error)
}

type AuthService struct {
	repo AuthUserRepository
}

func NewAuthService(repo AuthUserRepository) *AuthService {
	return &AuthService{
		repo: repo,
	}
}

// Register is the public sign-up path; it only accepts administrators.
func (s *AuthService) Register(ctx context.Context, user domain.User) (domain.User, error) {
	if !user.Role.Scopes.Has(domain.ScopeAdmin) {
		return domain.User{}, ErrOnlyAdmin
	}

	return s.create(ctx, user)
}

// CreateUser is used by administrators to add regular, non-member accounts.
func (s *AuthService) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	if len(user.Role.Scopes) != 1 || user.Role.Scopes[0] != domain.ScopeNotMember {
		return domain.User{}, ErrOnlyNotMember
	}

	return s.create(ctx, user)
}

func (s *AuthService) create(ctx context.Context, user domain.User) (domain.User, error) {
	hashed, err := hashPassword(user.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hashPassword -> %w", err)
	}
	user.Password = hashed

	if user.Role.Name == "" {
		user.Role.Name = "user"
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, name, password string) (domain.User, error) {
	user, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByName -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, ErrWrongPassword
	}

	return user, nil
}

// Me re-reads the caller so scope changes made after login are visible.
func (s *AuthService) Me(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
