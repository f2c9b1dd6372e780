package repository

import (
	"context"
	"fmt"

	"github.com/tourneyhq/pokernights-api/internal/domain"
	"github.com/tourneyhq/pokernights-api/internal/repository/dao"
)

var ErrPlayerNotFound = dao.ErrPlayerNotFound

type PlayerDAO interface {
	Insert(ctx context.Context, player dao.Player) (dao.Player, error)
	FindByID(ctx context.Context, id uint) (dao.Player, error)
	FindAll(ctx context.Context) ([]dao.Player, error)
	Update(ctx context.Context, player dao.Player) (dao.Player, error)
	Delete(ctx context.Context, id uint) error
}

type PlayerRepository struct {
	dao PlayerDAO
}

func NewPlayerRepository(dao PlayerDAO) *PlayerRepository {
	return &PlayerRepository{
		dao: dao,
	}
}

func (r *PlayerRepository) Create(ctx context.Context, player domain.Player) (domain.Player, error) {
	created, err := r.dao.Insert(ctx, dao.Player{
		Name:     player.Name,
		Nickname: player.Nickname,
		IsGuest:  player.IsGuest,
	})
	if err != nil {
		return domain.Player{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return playerDaoToDomain(created), nil
}

func (r *PlayerRepository) FindByID(ctx context.Context, id uint) (domain.Player, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Player{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return playerDaoToDomain(found), nil
}

func (r *PlayerRepository) FindAll(ctx context.Context) ([]domain.Player, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	players := make([]domain.Player, 0, len(found))
	for _, p := range found {
		players = append(players, playerDaoToDomain(p))
	}

	return players, nil
}

func (r *PlayerRepository) Update(ctx context.Context, player domain.Player) (domain.Player, error) {
	updated, err := r.dao.Update(ctx, dao.Player{
		ID:       player.ID,
		Name:     player.Name,
		Nickname: player.Nickname,
		IsGuest:  player.IsGuest,
	})
	if err != nil {
		return domain.Player{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return playerDaoToDomain(updated), nil
}

func (r *PlayerRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func playerDaoToDomain(p dao.Player) domain.Player {
	return domain.Player{
		ID:        p.ID,
		Name:      p.Name,
		Nickname:  p.Nickname,
		IsGuest:   p.IsGuest,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
