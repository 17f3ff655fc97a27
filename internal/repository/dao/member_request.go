package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"

	scopeMember = "member"
)

var (
	ErrRequestNotFound      = errors.New("member request not found")
	ErrRequestNotPending    = errors.New("member request is not pending")
	ErrPendingRequestExists = errors.New("a pending member request already exists")
)

type MemberRequest struct {
	ID uint `gorm:"primaryKey"`

	// At most one pending request per user.
	UserID uint  `gorm:"not null;index;uniqueIndex:idx_member_requests_pending_user,where:status = 'pending'"`
	User   *User `gorm:"foreignKey:UserID"`

	Status       string    `gorm:"not null;default:'pending';index"`
	RequestDate  time.Time `gorm:"not null;index"`
	ResponseDate *time.Time
	AdminID      *uint
	Admin        *User `gorm:"foreignKey:AdminID"`
	Reason       string
}

type MemberRequestDAO struct {
	db *gorm.DB
}

func NewMemberRequestDAO(db *gorm.DB) *MemberRequestDAO {
	return &MemberRequestDAO{
		db: db,
	}
}

func (d *MemberRequestDAO) withPeople(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User", func(db *gorm.DB) *gorm.DB { return db.Select("id", "name", "email") }).
		Preload("Admin", func(db *gorm.DB) *gorm.DB { return db.Select("id", "name") })
}

func (d *MemberRequestDAO) Insert(ctx context.Context, request MemberRequest) (MemberRequest, error) {
	result := d.db.WithContext(ctx).Create(&request)
	if result.Error != nil {
		if constraint, ok := uniqueViolation(result.Error); ok && constraint == "idx_member_requests_pending_user" {
			return MemberRequest{}, ErrPendingRequestExists
		}

		return MemberRequest{}, result.Error
	}

	return request, nil
}

func (d *MemberRequestDAO) FindByID(ctx context.Context, id uint) (MemberRequest, error) {
	return d.findByID(d.db.WithContext(ctx), id)
}

func (d *MemberRequestDAO) findByID(db *gorm.DB, id uint) (MemberRequest, error) {
	var request MemberRequest

	result := d.withPeople(db).First(&request, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return MemberRequest{}, ErrRequestNotFound
		}

		return MemberRequest{}, result.Error
	}

	return request, nil
}

func (d *MemberRequestDAO) FindByUserID(ctx context.Context, userID uint) ([]MemberRequest, error) {
	var requests []MemberRequest

	result := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("request_date DESC, id DESC").
		Find(&requests)
	if result.Error != nil {
		return nil, result.Error
	}

	return requests, nil
}

func (d *MemberRequestDAO) FindAll(ctx context.Context, limit, skip int) ([]MemberRequest, error) {
	var requests []MemberRequest

	result := d.withPeople(d.db.WithContext(ctx)).
		Order("request_date DESC, id DESC").
		Offset(skip).
		Limit(limit).
		Find(&requests)
	if result.Error != nil {
		return nil, result.Error
	}

	return requests, nil
}

func (d *MemberRequestDAO) FindByStatus(ctx context.Context, status string) ([]MemberRequest, error) {
	var requests []MemberRequest

	result := d.withPeople(d.db.WithContext(ctx)).
		Where("status = ?", status).
		Order("request_date DESC, id DESC").
		Find(&requests)
	if result.Error != nil {
		return nil, result.Error
	}

	return requests, nil
}

// transition moves a pending request to status. The update only matches
// pending rows, so of two concurrent callers exactly one wins.
func (d *MemberRequestDAO) transition(tx *gorm.DB, id uint, fields map[string]interface{}) error {
	result := tx.Model(&MemberRequest{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 1 {
		return nil
	}

	var count int64
	if err := tx.Model(&MemberRequest{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrRequestNotFound
	}

	return ErrRequestNotPending
}

// Approve marks the request approved and grants the requester the member
// scope in the same transaction.
func (d *MemberRequestDAO) Approve(ctx context.Context, id, adminID uint, at time.Time) (MemberRequest, error) {
	var approved MemberRequest

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := d.transition(tx, id, map[string]interface{}{
			"status":        StatusApproved,
			"admin_id":      adminID,
			"response_date": at,
		})
		if err != nil {
			return err
		}

		approved, err = d.findByID(tx, id)
		if err != nil {
			return err
		}

		return addScope(tx, approved.UserID, scopeMember)
	})
	if err != nil {
		return MemberRequest{}, err
	}

	return approved, nil
}

func (d *MemberRequestDAO) Reject(ctx context.Context, id, adminID uint, reason string, at time.Time) (MemberRequest, error) {
	var rejected MemberRequest

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := d.transition(tx, id, map[string]interface{}{
			"status":        StatusRejected,
			"admin_id":      adminID,
			"response_date": at,
			"reason":        reason,
		})
		if err != nil {
			return err
		}

		rejected, err = d.findByID(tx, id)

		return err
	})
	if err != nil {
		return MemberRequest{}, err
	}

	return rejected, nil
}
