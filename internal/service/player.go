package service

import (
	"context"
	"fmt"

	"github.com/tourneyhq/pokernights-api/internal/domain"
	"github.com/tourneyhq/pokernights-api/internal/repository"
)

var ErrPlayerNotFound = repository.ErrPlayerNotFound

type PlayerRepository interface {
	Create(ctx context.Context, player domain.Player) (domain.Player, error)
	FindByID(ctx context.Context, id uint) (domain.Player, error)
	FindAll(ctx context.Context) ([]domain.Player, error)
	Update(ctx context.Context, player domain.Player) (domain.Player, error)
	Delete(ctx context.Context, id uint) error
}

type PlayerService struct {
	repo PlayerRepository
}

func NewPlayerService(repo PlayerRepository) *PlayerService {
	return &PlayerService{
		repo: repo,
	}
}

func (s *PlayerService) CreatePlayer(ctx context.Context, player domain.Player) (domain.Player, error) {
	created, err := s.repo.Create(ctx, player)
	if err != nil {
		return domain.Player{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *PlayerService) GetPlayer(ctx context.Context, id uint) (domain.Player, error) {
	player, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Player{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return player, nil
}

func (s *PlayerService) ListPlayers(ctx context.Context) ([]domain.Player, error) {
	players, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return players, nil
}

func (s *PlayerService) UpdatePlayer(ctx context.Context, player domain.Player) (domain.Player, error) {
	updated, err := s.repo.Update(ctx, player)
	if err != nil {
		return domain.Player{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *PlayerService) DeletePlayer(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
