package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/estadio/stadium-api/internal/domain"
	"github.com/estadio/stadium-api/internal/notify"
	"github.com/estadio/stadium-api/internal/repository"
)

var (
	ErrRequestNotFound      = repository.ErrRequestNotFound
	ErrRequestNotPending    = repository.ErrRequestNotPending
	ErrPendingRequestExists = repository.ErrPendingRequestExists
	ErrInvalidStatus        = errors.New("invalid member request status")
)

type MemberRequestRepository interface {
	Create(ctx context.Context, request domain.MemberRequest) (domain.MemberRequest, error)
	FindByID(ctx context.Context, id uint) (domain.MemberRequest, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.MemberRequest, error)
	FindAll(ctx context.Context, page domain.Pagination) ([]domain.MemberRequest, error)
	FindByStatus(ctx context.Context, status domain.MemberRequestStatus) ([]domain.MemberRequest, error)
	Approve(ctx context.Context, id, adminID uint, at time.Time) (domain.MemberRequest, error)
	Reject(ctx context.Context, id, adminID uint, reason string, at time.Time) (domain.MemberRequest, error)
}

// MembershipService runs the request -> approve/reject workflow that turns a
// notMember user into a member.
type MembershipService struct {
	repo     MemberRequestRepository
	notifier notify.Notifier
	now      func() time.Time
}

func NewMembershipService(repo MemberRequestRepository, notifier notify.Notifier) *MembershipService {
	return &MembershipService{
		repo:     repo,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *MembershipService) Submit(ctx context.Context, userID uint) (domain.MemberRequest, error) {
	existing, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return domain.MemberRequest{}, fmt.Errorf("s.repo.FindByUserID -> %w", err)
	}
	if domain.HasPending(existing) {
		return domain.MemberRequest{}, ErrPendingRequestExists
	}

	created, err := s.repo.Create(ctx, domain.NewMemberRequest(userID, s.now()))
	if err != nil {
		return domain.MemberRequest{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// Approve grants the requester the member scope. The store only lets one
// approval of a pending request through, so concurrent calls cannot both win.
func (s *MembershipService) Approve(ctx context.Context, requestID, adminID uint) (domain.MemberRequest, error) {
	request, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		return domain.MemberRequest{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	now := s.now()
	if err = request.Approve(adminID, now); err != nil {
		return domain.MemberRequest{}, ErrRequestNotPending
	}

	approved, err := s.repo.Approve(ctx, requestID, adminID, now)
	if err != nil {
		return domain.MemberRequest{}, fmt.Errorf("s.repo.Approve -> %w", err)
	}

	s.notifier.Emit(ctx, notify.NewEvent(
		domain.EventMemberApproved,
		"Membership request approved",
		map[string]interface{}{"request": approved},
	))

	return approved, nil
}

func (s *MembershipService) Reject(ctx context.Context, requestID, adminID uint, reason string) (domain.MemberRequest, error) {
	request, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		return domain.MemberRequest{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	now := s.now()
	if err = request.Reject(adminID, reason, now); err != nil {
		return domain.MemberRequest{}, ErrRequestNotPending
	}

	rejected, err := s.repo.Reject(ctx, requestID, adminID, request.Reason, now)
	if err != nil {
		return domain.MemberRequest{}, fmt.Errorf("s.repo.Reject -> %w", err)
	}

	return rejected, nil
}

func (s *MembershipService) ListMine(ctx context.Context, userID uint) ([]domain.MemberRequest, error) {
	requests, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByUserID -> %w", err)
	}

	return requests, nil
}

// ListAll pages through every request, newest first. A status filter returns
// all matching requests and ignores the page.
func (s *MembershipService) ListAll(ctx context.Context, page domain.Pagination, status domain.MemberRequestStatus) ([]domain.MemberRequest, error) {
	if status != "" {
		if !status.Valid() {
			return nil, fmt.Errorf("unknown status %q: %w", status, ErrInvalidStatus)
		}

		requests, err := s.repo.FindByStatus(ctx, status)
		if err != nil {
			return nil, fmt.Errorf("s.repo.FindByStatus -> %w", err)
		}

		return requests, nil
	}

	requests, err := s.repo.FindAll(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return requests, nil
}
