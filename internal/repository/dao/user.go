package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	ErrUserNameExists      = errors.New("user name already exists")
	ErrUserEmailExists     = errors.New("user email already exists")
	ErrUserTaxNumberExists = errors.New("user tax number already exists")
	ErrUserNotFound        = errors.New("user not found")
)

type User struct {
	ID uint `gorm:"primaryKey"`

	Name     string `gorm:"unique;not null"`
	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null"`

	RoleName string         `gorm:"not null;default:'user'"`
	Scopes   pq.StringArray `gorm:"type:text[];not null;default:'{}'"`

	Age       int
	Address   string `gorm:"not null"`
	Country   string `gorm:"not null"`
	TaxNumber int64  `gorm:"unique;not null"`

	MemberID *uint   `gorm:"index"`
	Member   *Member `gorm:"foreignKey:MemberID"`

	// TicketIDs mirrors tickets.user_id; it is only written together with a
	// ticket insert.
	TicketIDs pq.Int64Array `gorm:"type:bigint[];not null;default:'{}'"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

func userInsertErr(err error) error {
	if constraint, ok := uniqueViolation(err); ok {
		switch constraint {
		case "uni_users_name":
			return ErrUserNameExists
		case "uni_users_email":
			return ErrUserEmailExists
		case "uni_users_tax_number":
			return ErrUserTaxNumberExists
		}
	}

	return err
}

// InsertWithMember creates the user and links it to the member that owns the
// same tax number, creating member first when none exists. Both writes share
// one transaction.
func (d *UserDAO) InsertWithMember(ctx context.Context, user User, member Member) (User, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Member
		result := tx.Where("tax_number = ?", user.TaxNumber).Limit(1).Find(&existing)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			member.TaxNumber = user.TaxNumber
			if err := tx.Create(&member).Error; err != nil {
				return err
			}
			existing = member
		}

		user.MemberID = &existing.ID
		if err := tx.Create(&user).Error; err != nil {
			return userInsertErr(err)
		}

		user.Member = &existing

		return nil
	})
	if err != nil {
		return User{}, err
	}

	return user, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).Preload("Member").First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByName(ctx context.Context, name string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, "name = ?", name)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindAll(ctx context.Context, limit, skip int) ([]User, error) {
	var users []User

	result := d.db.WithContext(ctx).
		Preload("Member").
		Order("id").
		Offset(skip).
		Limit(limit).
		Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

func (d *UserDAO) Update(ctx context.Context, id uint, fields map[string]interface{}) (User, error) {
	if len(fields) > 0 {
		result := d.db.WithContext(ctx).Model(&User{ID: id}).Updates(fields)
		if result.Error != nil {
			return User{}, userInsertErr(result.Error)
		}
		if result.RowsAffected == 0 {
			return User{}, ErrUserNotFound
		}
	}

	return d.FindByID(ctx, id)
}

// AttachMember stores member and points the user at it.
func (d *UserDAO) AttachMember(ctx context.Context, userID uint, member Member) (User, Member, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&member).Error; err != nil {
			if _, ok := uniqueViolation(err); ok {
				return ErrMemberExists
			}
			return err
		}

		result := tx.Model(&User{ID: userID}).Update("member_id", member.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}

		return nil
	})
	if err != nil {
		return User{}, Member{}, err
	}

	user, err := d.FindByID(ctx, userID)
	if err != nil {
		return User{}, Member{}, fmt.Errorf("d.FindByID -> %w", err)
	}

	return user, member, nil
}

// addScope appends scope unless the user already holds it.
func addScope(tx *gorm.DB, userID uint, scope string) error {
	result := tx.Model(&User{}).
		Where("id = ? AND NOT (?::text = ANY(scopes))", userID, scope).
		Update("scopes", gorm.Expr("array_append(scopes, ?::text)", scope))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := tx.Model(&User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrUserNotFound
	}

	return nil
}

func appendTicket(tx *gorm.DB, userID uint, ticketID uint) error {
	result := tx.Model(&User{}).
		Where("id = ?", userID).
		Update("ticket_ids", gorm.Expr("array_append(ticket_ids, ?::bigint)", ticketID))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}
