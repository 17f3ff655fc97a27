package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/estadio/stadium-api/internal/domain"
	"github.com/estadio/stadium-api/internal/repository/dao"
)

var (
	ErrRequestNotFound      = dao.ErrRequestNotFound
	ErrRequestNotPending    = dao.ErrRequestNotPending
	ErrPendingRequestExists = dao.ErrPendingRequestExists
)

type MemberRequestDAO interface {
	Insert(ctx context.Context, request dao.MemberRequest) (dao.MemberRequest, error)
	FindByID(ctx context.Context, id uint) (dao.MemberRequest, error)
	FindByUserID(ctx context.Context, userID uint) ([]dao.MemberRequest, error)
	FindAll(ctx context.Context, limit, skip int) ([]dao.MemberRequest, error)
	FindByStatus(ctx context.Context, status string) ([]dao.MemberRequest, error)
	Approve(ctx context.Context, id, adminID uint, at time.Time) (dao.MemberRequest, error)
	Reject(ctx context.Context, id, adminID uint, reason string, at time.Time) (dao.MemberRequest, error)
}

type MemberRequestRepository struct {
	dao MemberRequestDAO
}

func NewMemberRequestRepository(dao MemberRequestDAO) *MemberRequestRepository {
	return &MemberRequestRepository{
		dao: dao,
	}
}

func (r *MemberRequestRepository) Create(ctx context.Context, request domain.MemberRequest) (domain.MemberRequest, error) {
	created, err := r.dao.Insert(ctx, dao.MemberRequest{
		UserID:      request.UserID,
		Status:      string(request.Status),
		RequestDate: request.RequestDate,
	})
	if err != nil {
		return domain.MemberRequest{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return requestToDomain(created), nil
}

func (r *MemberRequestRepository) FindByID(ctx context.Context, id uint) (domain.MemberRequest, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.MemberRequest{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return requestToDomain(found), nil
}

func (r *MemberRequestRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.MemberRequest, error) {
	found, err := r.dao.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUserID -> %w", err)
	}

	return requestsToDomain(found), nil
}

func (r *MemberRequestRepository) FindAll(ctx context.Context, page domain.Pagination) ([]domain.MemberRequest, error) {
	found, err := r.dao.FindAll(ctx, page.Limit, page.Skip)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return requestsToDomain(found), nil
}

func (r *MemberRequestRepository) FindByStatus(ctx context.Context, status domain.MemberRequestStatus) ([]domain.MemberRequest, error) {
	found, err := r.dao.FindByStatus(ctx, string(status))
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByStatus -> %w", err)
	}

	return requestsToDomain(found), nil
}

// Approve finalizes the request and grants the member scope atomically.
func (r *MemberRequestRepository) Approve(ctx context.Context, id, adminID uint, at time.Time) (domain.MemberRequest, error) {
	approved, err := r.dao.Approve(ctx, id, adminID, at)
	if err != nil {
		return domain.MemberRequest{}, fmt.Errorf("r.dao.Approve -> %w", err)
	}

	return requestToDomain(approved), nil
}

func (r *MemberRequestRepository) Reject(ctx context.Context, id, adminID uint, reason string, at time.Time) (domain.MemberRequest, error) {
	rejected, err := r.dao.Reject(ctx, id, adminID, reason, at)
	if err != nil {
		return domain.MemberRequest{}, fmt.Errorf("r.dao.Reject -> %w", err)
	}

	return requestToDomain(rejected), nil
}

func requestsToDomain(found []dao.MemberRequest) []domain.MemberRequest {
	requests := make([]domain.MemberRequest, 0, len(found))
	for _, req := range found {
		requests = append(requests, requestToDomain(req))
	}

	return requests
}
