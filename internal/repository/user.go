package repository

import (
	"context"
	"fmt"

	"github.com/estadio/stadium-api/internal/domain"
	"github.com/estadio/stadium-api/internal/repository/dao"
)

var (
	ErrUserNameExists      = dao.ErrUserNameExists
	ErrUserEmailExists     = dao.ErrUserEmailExists
	ErrUserTaxNumberExists = dao.ErrUserTaxNumberExists
	ErrUserNotFound        = dao.ErrUserNotFound
	ErrMemberExists        = dao.ErrMemberExists
	ErrMemberNotFound      = dao.ErrMemberNotFound
)

type UserDAO interface {
	InsertWithMember(ctx context.Context, user dao.User, member dao.Member) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByName(ctx context.Context, name string) (dao.User, error)
	FindAll(ctx context.Context, limit, skip int) ([]dao.User, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) (dao.User, error)
	AttachMember(ctx context.Context, userID uint, member dao.Member) (dao.User, dao.Member, error)
}

type MemberDAO interface {
	FindByID(ctx context.Context, id uint) (dao.Member, error)
	FindByTaxNumber(ctx context.Context, taxNumber int64) (dao.Member, error)
	FindAll(ctx context.Context, limit, skip int) ([]dao.Member, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) (dao.Member, error)
}

type UserRepository struct {
	dao       UserDAO
	memberDAO MemberDAO
}

func NewUserRepository(dao UserDAO, memberDAO MemberDAO) *UserRepository {
	return &UserRepository{
		dao:       dao,
		memberDAO: memberDAO,
	}
}

// Create stores the user together with its member profile; an existing
// member with the same tax number is reused.
func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	member := domain.NewMemberFor(user.TaxNumber)

	created, err := r.dao.InsertWithMember(ctx, userToDAO(user), memberToDAO(member))
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.InsertWithMember -> %w", err)
	}

	return userToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return userToDomain(found), nil
}

func (r *UserRepository) FindByName(ctx context.Context, name string) (domain.User, error) {
	found, err := r.dao.FindByName(ctx, name)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByName -> %w", err)
	}

	return userToDomain(found), nil
}

func (r *UserRepository) FindAll(ctx context.Context, page domain.Pagination) ([]domain.User, error) {
	found, err := r.dao.FindAll(ctx, page.Limit, page.Skip)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	users := make([]domain.User, 0, len(found))
	for _, u := range found {
		users = append(users, userToDomain(u))
	}

	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, id uint, patch domain.UserPatch) (domain.User, error) {
	fields := map[string]interface{}{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Email != nil {
		fields["email"] = *patch.Email
	}
	if patch.Age != nil {
		fields["age"] = *patch.Age
	}
	if patch.Address != nil {
		fields["address"] = *patch.Address
	}
	if patch.Country != nil {
		fields["country"] = *patch.Country
	}
	if patch.RoleName != nil {
		fields["role_name"] = *patch.RoleName
	}
	if patch.Scopes != nil {
		fields["scopes"] = pqStrings(patch.Scopes.Strings())
	}

	updated, err := r.dao.Update(ctx, id, fields)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return userToDomain(updated), nil
}

func (r *UserRepository) AttachMember(ctx context.Context, userID uint, member domain.Member) (domain.User, domain.Member, error) {
	user, created, err := r.dao.AttachMember(ctx, userID, memberToDAO(member))
	if err != nil {
		return domain.User{}, domain.Member{}, fmt.Errorf("r.dao.AttachMember -> %w", err)
	}

	return userToDomain(user), memberToDomain(created), nil
}

func (r *UserRepository) FindMemberByID(ctx context.Context, id uint) (domain.Member, error) {
	found, err := r.memberDAO.FindByID(ctx, id)
	if err != nil {
		return domain.Member{}, fmt.Errorf("r.memberDAO.FindByID -> %w", err)
	}

	return memberToDomain(found), nil
}

func (r *UserRepository) FindMemberByTaxNumber(ctx context.Context, taxNumber int64) (domain.Member, error) {
	found, err := r.memberDAO.FindByTaxNumber(ctx, taxNumber)
	if err != nil {
		return domain.Member{}, fmt.Errorf("r.memberDAO.FindByTaxNumber -> %w", err)
	}

	return memberToDomain(found), nil
}

func (r *UserRepository) FindMembers(ctx context.Context, page domain.Pagination) ([]domain.Member, int64, error) {
	found, err := r.memberDAO.FindAll(ctx, page.Limit, page.Skip)
	if err != nil {
		return nil, 0, fmt.Errorf("r.memberDAO.FindAll -> %w", err)
	}

	total, err := r.memberDAO.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("r.memberDAO.Count -> %w", err)
	}

	members := make([]domain.Member, 0, len(found))
	for _, m := range found {
		members = append(members, memberToDomain(m))
	}

	return members, total, nil
}

func (r *UserRepository) UpdateMember(ctx context.Context, id uint, patch domain.MemberPatch) (domain.Member, error) {
	fields := map[string]interface{}{}
	if patch.Photo != nil {
		fields["photo"] = *patch.Photo
	}
	if patch.PaymentRegular != nil {
		fields["payment_regular"] = *patch.PaymentRegular
	}
	if patch.Cash != nil {
		fields["cash"] = *patch.Cash
	}

	updated, err := r.memberDAO.Update(ctx, id, fields)
	if err != nil {
		return domain.Member{}, fmt.Errorf("r.memberDAO.Update -> %w", err)
	}

	return memberToDomain(updated), nil
}
