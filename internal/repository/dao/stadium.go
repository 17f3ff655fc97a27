package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrStadiumNotFound = errors.New("stadium not found")

type Stadium struct {
	ID        uint     `gorm:"primaryKey"`
	Name      string   `gorm:"not null"`
	Sectors   []Sector `gorm:"foreignKey:StadiumID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Sector struct {
	ID          uint    `gorm:"primaryKey"`
	StadiumID   uint    `gorm:"not null;index"`
	Sector      string  `gorm:"not null"`
	Price       float64 `gorm:"not null"`
	PriceMember float64 `gorm:"not null"`
}

type StadiumDAO struct {
	db *gorm.DB
}

func NewStadiumDAO(db *gorm.DB) *StadiumDAO {
	return &StadiumDAO{
		db: db,
	}
}

func withSectors(db *gorm.DB) *gorm.DB {
	return db.Preload("Sectors", func(db *gorm.DB) *gorm.DB { return db.Order("sectors.id") })
}

func (d *StadiumDAO) Insert(ctx context.Context, stadium Stadium) (Stadium, error) {
	result := d.db.WithContext(ctx).Create(&stadium)
	if result.Error != nil {
		return Stadium{}, result.Error
	}

	return stadium, nil
}

func (d *StadiumDAO) FindByID(ctx context.Context, id uint) (Stadium, error) {
	var stadium Stadium

	result := withSectors(d.db.WithContext(ctx)).First(&stadium, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Stadium{}, ErrStadiumNotFound
		}

		return Stadium{}, result.Error
	}

	return stadium, nil
}

func (d *StadiumDAO) FindAll(ctx context.Context, limit, skip int) ([]Stadium, error) {
	var stadiums []Stadium

	result := withSectors(d.db.WithContext(ctx)).Order("id").Offset(skip).Limit(limit).Find(&stadiums)
	if result.Error != nil {
		return nil, result.Error
	}

	return stadiums, nil
}

func (d *StadiumDAO) Count(ctx context.Context) (int64, error) {
	var total int64

	result := d.db.WithContext(ctx).Model(&Stadium{}).Count(&total)
	if result.Error != nil {
		return 0, result.Error
	}

	return total, nil
}

// Update renames the stadium and, when sectors is non-nil, replaces its
// whole sector list.
func (d *StadiumDAO) Update(ctx context.Context, id uint, name *string, sectors []Sector) (Stadium, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Stadium{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrStadiumNotFound
		}

		if name != nil {
			if err := tx.Model(&Stadium{ID: id}).Update("name", *name).Error; err != nil {
				return err
			}
		}

		if sectors == nil {
			return nil
		}

		if err := tx.Where("stadium_id = ?", id).Delete(&Sector{}).Error; err != nil {
			return err
		}
		if len(sectors) == 0 {
			return nil
		}
		for i := range sectors {
			sectors[i].ID = 0
			sectors[i].StadiumID = id
		}

		return tx.Create(&sectors).Error
	})
	if err != nil {
		return Stadium{}, err
	}

	return d.FindByID(ctx, id)
}
