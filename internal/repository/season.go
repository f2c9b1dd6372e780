package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/tourneyhq/pokernights-api/internal/domain"
	"github.com/tourneyhq/pokernights-api/internal/repository/dao"
)

var ErrSeasonNotFound = dao.ErrSeasonNotFound

type SeasonDAO interface {
	Insert(ctx context.Context, season dao.Season) (dao.Season, error)
	FindByID(ctx context.Context, id uint) (dao.Season, error)
	FindAll(ctx context.Context) ([]dao.Season, error)
	Update(ctx context.Context, season dao.Season) (dao.Season, error)
	Delete(ctx context.Context, id uint) error
	DeactivateEndedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type SeasonRepository struct {
	dao SeasonDAO
}

func NewSeasonRepository(dao SeasonDAO) *SeasonRepository {
	return &SeasonRepository{
		dao: dao,
	}
}

func (r *SeasonRepository) Create(ctx context.Context, season domain.Season) (domain.Season, error) {
	created, err := r.dao.Insert(ctx, seasonDomainToDao(season))
	if err != nil {
		return domain.Season{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return seasonDaoToDomain(created), nil
}

func (r *SeasonRepository) FindByID(ctx context.Context, id uint) (domain.Season, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Season{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return seasonDaoToDomain(found), nil
}

func (r *SeasonRepository) FindAll(ctx context.Context) ([]domain.Season, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	seasons := make([]domain.Season, 0, len(found))
	for _, s := range found {
		seasons = append(seasons, seasonDaoToDomain(s))
	}

	return seasons, nil
}

func (r *SeasonRepository) Update(ctx context.Context, season domain.Season) (domain.Season, error) {
	updated, err := r.dao.Update(ctx, seasonDomainToDao(season))
	if err != nil {
		return domain.Season{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return seasonDaoToDomain(updated), nil
}

func (r *SeasonRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *SeasonRepository) DeactivateEndedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	affected, err := r.dao.DeactivateEndedBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("r.dao.DeactivateEndedBefore -> %w", err)
	}

	return affected, nil
}

func seasonDaoToDomain(s dao.Season) domain.Season {
	return domain.Season{
		ID:        s.ID,
		Name:      s.Name,
		Slug:      s.Slug,
		StartDate: s.StartDate,
		EndDate:   s.EndDate,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func seasonDomainToDao(s domain.Season) dao.Season {
	return dao.Season{
		ID:        s.ID,
		Name:      s.Name,
		Slug:      s.Slug,
		StartDate: s.StartDate,
		EndDate:   s.EndDate,
		IsActive:  s.IsActive,
	}
}
