package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrMemberNotFound = errors.New("member not found")
	ErrMemberExists   = errors.New("member already exists")
)

type Member struct {
	ID             uint  `gorm:"primaryKey"`
	TaxNumber      int64 `gorm:"unique;not null"`
	Photo          string
	PaymentRegular bool    `gorm:"not null;default:false"`
	Cash           float64 `gorm:"not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type MemberDAO struct {
	db *gorm.DB
}

func NewMemberDAO(db *gorm.DB) *MemberDAO {
	return &MemberDAO{
		db: db,
	}
}

func (d *MemberDAO) FindByID(ctx context.Context, id uint) (Member, error) {
	var member Member

	result := d.db.WithContext(ctx).First(&member, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Member{}, ErrMemberNotFound
		}

		return Member{}, result.Error
	}

	return member, nil
}

func (d *MemberDAO) FindAll(ctx context.Context, limit, skip int) ([]Member, error) {
	var members []Member

	result := d.db.WithContext(ctx).Order("id").Offset(skip).Limit(limit).Find(&members)
	if result.Error != nil {
		return nil, result.Error
	}

	return members, nil
}

func (d *MemberDAO) Update(ctx context.Context, id uint, fields map[string]interface{}) (Member, error) {
	if len(fields) > 0 {
		result := d.db.WithContext(ctx).Model(&Member{ID: id}).Updates(fields)
		if result.Error != nil {
			return Member{}, result.Error
		}
		if result.RowsAffected == 0 {
			return Member{}, ErrMemberNotFound
		}
	}

	return d.FindByID(ctx, id)
}

func (d *MemberDAO) Count(ctx context.Context) (int64, error) {
	var total int64

	result := d.db.WithContext(ctx).Model(&Member{}).Count(&total)
	if result.Error != nil {
		return 0, result.Error
	}

	return total, nil
}

func (d *MemberDAO) FindByTaxNumber(ctx context.Context, taxNumber int64) (Member, error) {
	var member Member

	result := d.db.WithContext(ctx).First(&member, "tax_number = ?", taxNumber)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Member{}, ErrMemberNotFound
		}

		return Member{}, result.Error
	}

	return member, nil
}
