package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrTicketNotFound = errors.New("ticket not found")

type Ticket struct {
	ID        uint    `gorm:"primaryKey"`
	Sector    string  `gorm:"not null"`
	Price     float64 `gorm:"not null"`
	GameID    uint    `gorm:"not null;index"`
	Game      *Game   `gorm:"foreignKey:GameID"`
	UserID    uint    `gorm:"not null;index"`
	User      *User   `gorm:"foreignKey:UserID"`
	IsMember  bool    `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type TicketDAO struct {
	db *gorm.DB
}

func NewTicketDAO(db *gorm.DB) *TicketDAO {
	return &TicketDAO{
		db: db,
	}
}

// InsertForUser stores the ticket and records its id on the owner in the
// same transaction.
func (d *TicketDAO) InsertForUser(ctx context.Context, ticket Ticket) (Ticket, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Game", "User").Create(&ticket).Error; err != nil {
			return err
		}

		return appendTicket(tx, ticket.UserID, ticket.ID)
	})
	if err != nil {
		return Ticket{}, err
	}

	return ticket, nil
}

func (d *TicketDAO) FindByID(ctx context.Context, id uint) (Ticket, error) {
	var ticket Ticket

	result := d.db.WithContext(ctx).First(&ticket, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Ticket{}, ErrTicketNotFound
		}

		return Ticket{}, result.Error
	}

	return ticket, nil
}

func (d *TicketDAO) FindAll(ctx context.Context, limit, skip int) ([]Ticket, error) {
	return d.find(d.db.WithContext(ctx).Offset(skip).Limit(limit))
}

func (d *TicketDAO) FindByUserID(ctx context.Context, userID uint, limit, skip int) ([]Ticket, error) {
	return d.find(d.db.WithContext(ctx).Where("user_id = ?", userID).Offset(skip).Limit(limit))
}

func (d *TicketDAO) FindByGameID(ctx context.Context, gameID uint) ([]Ticket, error) {
	return d.find(d.db.WithContext(ctx).Where("game_id = ?", gameID))
}

func (d *TicketDAO) find(db *gorm.DB) ([]Ticket, error) {
	var tickets []Ticket

	result := db.Order("id").Find(&tickets)
	if result.Error != nil {
		return nil, result.Error
	}

	return tickets, nil
}

func (d *TicketDAO) Update(ctx context.Context, id uint, fields map[string]interface{}) (Ticket, error) {
	if len(fields) > 0 {
		result := d.db.WithContext(ctx).Model(&Ticket{ID: id}).Updates(fields)
		if result.Error != nil {
			return Ticket{}, result.Error
		}
		if result.RowsAffected == 0 {
			return Ticket{}, ErrTicketNotFound
		}
	}

	return d.FindByID(ctx, id)
}
