package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrSeasonNotFound = errors.New("season not found")

type Season struct {
	ID uint `gorm:"primaryKey"`

	Name      string    `gorm:"not null"`
	Slug      string    `gorm:"uniqueIndex;not null"`
	StartDate time.Time `gorm:"not null"`
	EndDate   *time.Time
	IsActive  bool `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type SeasonDAO struct {
	db *gorm.DB
}

func NewSeasonDAO(db *gorm.DB) *SeasonDAO {
	return &SeasonDAO{
		db: db,
	}
}

func (d *SeasonDAO) Insert(ctx context.Context, season Season) (Season, error) {
	result := d.db.WithContext(ctx).Create(&season)
	if result.Error != nil {
		return Season{}, result.Error
	}

	return season, nil
}

func (d *SeasonDAO) FindByID(ctx context.Context, id uint) (Season, error) {
	var season Season

	result := d.db.WithContext(ctx).First(&season, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Season{}, ErrSeasonNotFound
		}

		return Season{}, result.Error
	}

	return season, nil
}

func (d *SeasonDAO) FindAll(ctx context.Context) ([]Season, error) {
	var seasons []Season

	result := d.db.WithContext(ctx).Order("start_date desc").Find(&seasons)
	if result.Error != nil {
		return nil, result.Error
	}

	return seasons, nil
}

func (d *SeasonDAO) Update(ctx context.Context, season Season) (Season, error) {
	result := d.db.WithContext(ctx).Model(&Season{ID: season.ID}).
		Select("Name", "Slug", "StartDate", "EndDate", "IsActive").
		Updates(season)
	if result.Error != nil {
		return Season{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Season{}, ErrSeasonNotFound
	}

	return d.FindByID(ctx, season.ID)
}

func (d *SeasonDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Season{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSeasonNotFound
	}

	return nil
}

// DeactivateEndedBefore flips is_active off for seasons whose end date has
// passed, returning how many rows changed. Used by the nightly sweeper.
func (d *SeasonDAO) DeactivateEndedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := d.db.WithContext(ctx).Model(&Season{}).
		Where("is_active = ? AND end_date IS NOT NULL AND end_date < ?", true, cutoff).
		Update("is_active", false)
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
