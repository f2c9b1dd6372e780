package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrEventNotFound = errors.New("event not found")

type Event struct {
	ID uint `gorm:"primaryKey"`

	SeasonID uint   `gorm:"index;not null"`
	Season   Season `gorm:"foreignKey:SeasonID"`

	Name string    `gorm:"not null"`
	Slug string    `gorm:"index;not null"`
	Date time.Time `gorm:"not null"`

	BuyIn         int `gorm:"not null"`
	RebuyAllowed  bool
	RebuyPrice    int
	MaxPlayers    int
	StartingStack int

	Status string `gorm:"not null;default:draft"`

	// JSON-encoded []domain.BlindLevel.
	BlindStructure string

	PrizePool int

	Participants []Player      `gorm:"many2many:event_participants;"`
	Results      []EventResult `gorm:"foreignKey:EventID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type EventResult struct {
	ID uint `gorm:"primaryKey"`

	EventID  uint `gorm:"index;not null"`
	PlayerID uint `gorm:"not null"`
	Position int  `gorm:"not null"`
	Prize    int  `gorm:"not null"`
	Rebuys   int  `gorm:"not null"`
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event, participantIDs []uint) (Event, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		return replaceParticipants(tx, &event, participantIDs)
	})
	if err != nil {
		return Event{}, err
	}

	return d.FindByID(ctx, event.ID)
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).
		Preload("Participants").
		Preload("Results").
		First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindAll(ctx context.Context) ([]Event, error) {
	var events []Event

	result := d.db.WithContext(ctx).
		Preload("Participants").
		Preload("Results").
		Order("date asc").
		Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) FindBySeasonID(ctx context.Context, seasonID uint) ([]Event, error) {
	var events []Event

	result := d.db.WithContext(ctx).
		Preload("Participants").
		Preload("Results").
		Where("season_id = ?", seasonID).
		Order("date asc").
		Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) Update(ctx context.Context, event Event, participantIDs []uint) (Event, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Event{ID: event.ID}).
			Select("SeasonID", "Name", "Slug", "Date", "BuyIn", "RebuyAllowed",
				"RebuyPrice", "MaxPlayers", "StartingStack", "Status", "BlindStructure").
			Updates(event)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrEventNotFound
		}

		return replaceParticipants(tx, &Event{ID: event.ID}, participantIDs)
	})
	if err != nil {
		return Event{}, err
	}

	return d.FindByID(ctx, event.ID)
}

func (d *EventDAO) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := d.db.WithContext(ctx).Model(&Event{ID: id}).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

func (d *EventDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&EventResult{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&Event{ID: id}).Association("Participants").Clear(); err != nil {
			return err
		}

		result := tx.Delete(&Event{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrEventNotFound
		}

		return nil
	})
}

// SaveResults replaces the event's results, records the final prize pool
// and participant list, and marks the event completed, all in one
// transaction.
func (d *EventDAO) SaveResults(ctx context.Context, id uint, results []EventResult, prizePool int, participantIDs []uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&EventResult{}).Error; err != nil {
			return err
		}
		if len(results) > 0 {
			if err := tx.Create(&results).Error; err != nil {
				return err
			}
		}

		if err := replaceParticipants(tx, &Event{ID: id}, participantIDs); err != nil {
			return err
		}

		result := tx.Model(&Event{ID: id}).Updates(map[string]interface{}{
			"prize_pool": prizePool,
			"status":     "completed",
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrEventNotFound
		}

		return nil
	})
}

func replaceParticipants(tx *gorm.DB, event *Event, participantIDs []uint) error {
	if participantIDs == nil {
		return nil
	}

	players := make([]Player, 0, len(participantIDs))
	for _, playerID := range participantIDs {
		players = append(players, Player{ID: playerID})
	}

	return tx.Model(event).Association("Participants").Replace(players)
}
