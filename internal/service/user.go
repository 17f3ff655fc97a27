package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/estadio/stadium-api/internal/domain"
	"github.com/estadio/stadium-api/internal/notify"
	"github.com/estadio/stadium-api/internal/repository"
)

var (
	ErrUserNotFound    = repository.ErrUserNotFound
	ErrMemberExists    = repository.ErrMemberExists
	ErrMemberNotFound  = repository.ErrMemberNotFound
	ErrUserHasNoMember = errors.New("user does not have an associated member")
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindAll(ctx context.Context, page domain.Pagination) ([]domain.User, error)
	Update(ctx context.Context, id uint, patch domain.UserPatch) (domain.User, error)
	AttachMember(ctx context.Context, userID uint, member domain.Member) (domain.User, domain.Member, error)
	FindMemberByID(ctx context.Context, id uint) (domain.Member, error)
	FindMemberByTaxNumber(ctx context.Context, taxNumber int64) (domain.Member, error)
	FindMembers(ctx context.Context, page domain.Pagination) ([]domain.Member, int64, error)
	UpdateMember(ctx context.Context, id uint, patch domain.MemberPatch) (domain.Member, error)
}

type UserService struct {
	repo     UserRepository
	notifier notify.Notifier
}

func NewUserService(repo UserRepository, notifier notify.Notifier) *UserService {
	return &UserService{
		repo:     repo,
		notifier: notifier,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, page domain.Pagination) ([]domain.User, error) {
	users, err := s.repo.FindAll(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return users, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id uint, patch domain.UserPatch) (domain.User, error) {
	user, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return user, nil
}

// AttachMember creates a member profile for the user and announces it.
func (s *UserService) AttachMember(ctx context.Context, userID uint, member domain.Member) (domain.User, error) {
	user, created, err := s.repo.AttachMember(ctx, userID, member)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.AttachMember -> %w", err)
	}

	s.notifier.Emit(ctx, notify.NewEvent(
		domain.EventMemberCreated,
		fmt.Sprintf("New member created: %s", user.Name),
		map[string]interface{}{"user": user, "member": created},
	))

	return user, nil
}

func (s *UserService) ListMembers(ctx context.Context, page domain.Pagination) ([]domain.Member, domain.PageInfo, error) {
	members, total, err := s.repo.FindMembers(ctx, page)
	if err != nil {
		return nil, domain.PageInfo{}, fmt.Errorf("s.repo.FindMembers -> %w", err)
	}

	return members, domain.NewPageInfo(page, total), nil
}

func (s *UserService) GetMember(ctx context.Context, id uint) (domain.Member, error) {
	member, err := s.repo.FindMemberByID(ctx, id)
	if err != nil {
		return domain.Member{}, fmt.Errorf("s.repo.FindMemberByID -> %w", err)
	}

	return member, nil
}

func (s *UserService) GetMemberByTaxNumber(ctx context.Context, taxNumber int64) (domain.Member, error) {
	member, err := s.repo.FindMemberByTaxNumber(ctx, taxNumber)
	if err != nil {
		return domain.Member{}, fmt.Errorf("s.repo.FindMemberByTaxNumber -> %w", err)
	}

	return member, nil
}

// UpdateMemberOfUser edits the member profile linked to the given user.
func (s *UserService) UpdateMemberOfUser(ctx context.Context, userID uint, patch domain.MemberPatch) (domain.Member, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return domain.Member{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if user.MemberID == nil {
		return domain.Member{}, ErrUserHasNoMember
	}

	member, err := s.repo.UpdateMember(ctx, *user.MemberID, patch)
	if err != nil {
		return domain.Member{}, fmt.Errorf("s.repo.UpdateMember -> %w", err)
	}

	return member, nil
}
