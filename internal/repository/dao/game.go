package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrGameNotFound = errors.New("game not found")

type Game struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"not null"`
	Date      time.Time `gorm:"not null;index"`
	StadiumID *uint     `gorm:"index"`
	Stadium   *Stadium  `gorm:"foreignKey:StadiumID"`
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type GameDAO struct {
	db *gorm.DB
}

func NewGameDAO(db *gorm.DB) *GameDAO {
	return &GameDAO{
		db: db,
	}
}

func withStadium(db *gorm.DB) *gorm.DB {
	return db.Preload("Stadium").Preload("Stadium.Sectors", func(db *gorm.DB) *gorm.DB {
		return db.Order("sectors.id")
	})
}

func (d *GameDAO) Insert(ctx context.Context, game Game) (Game, error) {
	result := d.db.WithContext(ctx).Omit("Stadium").Create(&game)
	if result.Error != nil {
		return Game{}, result.Error
	}

	return d.FindByID(ctx, game.ID)
}

func (d *GameDAO) FindByID(ctx context.Context, id uint) (Game, error) {
	var game Game

	result := withStadium(d.db.WithContext(ctx)).First(&game, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Game{}, ErrGameNotFound
		}

		return Game{}, result.Error
	}

	return game, nil
}

func (d *GameDAO) FindAll(ctx context.Context, limit, skip int) ([]Game, error) {
	var games []Game

	result := withStadium(d.db.WithContext(ctx)).
		Order("date, id").
		Offset(skip).
		Limit(limit).
		Find(&games)
	if result.Error != nil {
		return nil, result.Error
	}

	return games, nil
}

func (d *GameDAO) Count(ctx context.Context) (int64, error) {
	var total int64

	result := d.db.WithContext(ctx).Model(&Game{}).Count(&total)
	if result.Error != nil {
		return 0, result.Error
	}

	return total, nil
}

func (d *GameDAO) Update(ctx context.Context, id uint, fields map[string]interface{}) (Game, error) {
	if len(fields) > 0 {
		result := d.db.WithContext(ctx).Model(&Game{ID: id}).Updates(fields)
		if result.Error != nil {
			return Game{}, result.Error
		}
		if result.RowsAffected == 0 {
			return Game{}, ErrGameNotFound
		}
	}

	return d.FindByID(ctx, id)
}
