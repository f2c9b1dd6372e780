package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrPlayerNotFound = errors.New("player not found")

type Player struct {
	ID uint `gorm:"primaryKey"`

	Name     string `gorm:"not null"`
	Nickname string
	IsGuest  bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type PlayerDAO struct {
	db *gorm.DB
}

func NewPlayerDAO(db *gorm.DB) *PlayerDAO {
	return &PlayerDAO{
		db: db,
	}
}

func (d *PlayerDAO) Insert(ctx context.Context, player Player) (Player, error) {
	result := d.db.WithContext(ctx).Create(&player)
	if result.Error != nil {
		return Player{}, result.Error
	}

	return player, nil
}

func (d *PlayerDAO) FindByID(ctx context.Context, id uint) (Player, error) {
	var player Player

	result := d.db.WithContext(ctx).First(&player, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Player{}, ErrPlayerNotFound
		}

		return Player{}, result.Error
	}

	return player, nil
}

func (d *PlayerDAO) FindAll(ctx context.Context) ([]Player, error) {
	var players []Player

	result := d.db.WithContext(ctx).Order("name asc").Find(&players)
	if result.Error != nil {
		return nil, result.Error
	}

	return players, nil
}

func (d *PlayerDAO) Update(ctx context.Context, player Player) (Player, error) {
	result := d.db.WithContext(ctx).Model(&Player{ID: player.ID}).
		Select("Name", "Nickname", "IsGuest").
		Updates(player)
	if result.Error != nil {
		return Player{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Player{}, ErrPlayerNotFound
	}

	return d.FindByID(ctx, player.ID)
}

func (d *PlayerDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Player{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPlayerNotFound
	}

	return nil
}
