package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/estadio/stadium-api/internal/domain"
	"github.com/estadio/stadium-api/internal/repository"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserRepo) FindAll(ctx context.Context, page domain.Pagination) ([]domain.User, error) {
	args := m.Called(ctx, page)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, id uint, patch domain.UserPatch) (domain.User, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserRepo) AttachMember(ctx context.Context, userID uint, member domain.Member) (domain.User, domain.Member, error) {
	args := m.Called(ctx, userID, member)
	return args.Get(0).(domain.User), args.Get(1).(domain.Member), args.Error(2)
}

func (m *mockUserRepo) FindMemberByID(ctx context.Context, id uint) (domain.Member, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Member), args.Error(1)
}

func (m *mockUserRepo) FindMemberByTaxNumber(ctx context.Context, taxNumber int64) (domain.Member, error) {
	args := m.Called(ctx, taxNumber)
	return args.Get(0).(domain.Member), args.Error(1)
}

func (m *mockUserRepo) FindMembers(ctx context.Context, page domain.Pagination) ([]domain.Member, int64, error) {
	args := m.Called(ctx, page)
	return args.Get(0).([]domain.Member), args.Get(1).(int64), args.Error(2)
}

func (m *mockUserRepo) UpdateMember(ctx context.Context, id uint, patch domain.MemberPatch) (domain.Member, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(domain.Member), args.Error(1)
}

func TestUserService_AttachMember(t *testing.T) {
	ctx := context.Background()
	repo := &mockUserRepo{}
	notifier := &recordingNotifier{}
	svc := NewUserService(repo, notifier)

	member := domain.Member{TaxNumber: 123, Photo: "ana.jpg"}
	memberID := uint(8)
	repo.On("AttachMember", ctx, uint(2), member).
		Return(domain.User{ID: 2, Name: "ana", MemberID: &memberID}, domain.Member{ID: memberID, TaxNumber: 123}, nil).
		Once()
	repo.On("AttachMember", ctx, uint(2), member).
		Return(domain.User{}, domain.Member{}, repository.ErrMemberExists).
		Once()

	user, err := svc.AttachMember(ctx, 2, member)
	require.NoError(t, err)
	assert.Equal(t, &memberID, user.MemberID)
	require.Len(t, notifier.events, 1)
	assert.Equal(t, domain.EventMemberCreated, notifier.events[0].Name)
	assert.Equal(t, "New member created: ana", notifier.events[0].Message)

	_, err = svc.AttachMember(ctx, 2, member)
	assert.ErrorIs(t, err, ErrMemberExists)
	assert.Len(t, notifier.events, 1)
}

func TestUserService_ListMembers(t *testing.T) {
	ctx := context.Background()
	repo := &mockUserRepo{}
	page := domain.Pagination{Limit: 5}

	repo.On("FindMembers", ctx, page).Return([]domain.Member{{ID: 1}}, int64(1), nil)

	members, info, err := NewUserService(repo, &recordingNotifier{}).ListMembers(ctx, page)
	require.NoError(t, err)
	assert.Len(t, members, 1)
	assert.False(t, info.HasMore)
	assert.Equal(t, int64(1), info.Total)
}

func TestUserService_UpdateMemberOfUser(t *testing.T) {
	ctx := context.Background()
	repo := &mockUserRepo{}
	svc := NewUserService(repo, &recordingNotifier{})

	memberID := uint(4)
	cash := 10.0
	patch := domain.MemberPatch{Cash: &cash}

	repo.On("FindByID", ctx, uint(1)).Return(domain.User{ID: 1, MemberID: &memberID}, nil)
	repo.On("FindByID", ctx, uint(2)).Return(domain.User{ID: 2}, nil)
	repo.On("UpdateMember", ctx, memberID, patch).Return(domain.Member{ID: memberID, Cash: cash}, nil)

	member, err := svc.UpdateMemberOfUser(ctx, 1, patch)
	require.NoError(t, err)
	assert.Equal(t, 10.0, member.Cash)

	_, err = svc.UpdateMemberOfUser(ctx, 2, patch)
	assert.ErrorIs(t, err, ErrUserHasNoMember)
}
