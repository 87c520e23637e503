package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/smashscore/smashscore/models"
	"github.com/smashscore/smashscore/repositories"
)

type PlayerService interface {
	Create(ctx context.Context, name string) (*models.Player, error)
	GetByID(ctx context.Context, id string) (*models.Player, error)
	List(ctx context.Context) ([]models.Player, error)
	Rename(ctx context.Context, id, name string) (*models.Player, error)
	Delete(ctx context.Context, id string) error
}

type playerService struct {
	playerRepo repositories.PlayerRepository
}

func NewPlayerService(playerRepo repositories.PlayerRepository) PlayerService {
	return &playerService{playerRepo: playerRepo}
}

func (s *playerService) Create(ctx context.Context, name string) (*models.Player, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	player := &models.Player{ID: uuid.NewString(), Name: strings.TrimSpace(name)}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerNameConflict) {
			return nil, ErrPlayerNameConflict
		}
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return player, nil
}

func (s *playerService) GetByID(ctx context.Context, id string) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return player, nil
}

func (s *playerService) List(ctx context.Context) ([]models.Player, error) {
	return s.playerRepo.List(ctx)
}

func (s *playerService) Rename(ctx context.Context, id, name string) (*models.Player, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	err := s.playerRepo.UpdateName(ctx, id, strings.TrimSpace(name))
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrPlayerNotFound):
			return nil, ErrPlayerNotFound
		case errors.Is(err, repositories.ErrPlayerNameConflict):
			return nil, ErrPlayerNameConflict
		}
		return nil, err
	}
	return s.playerRepo.GetByID(ctx, id)
}

func (s *playerService) Delete(ctx context.Context, id string) error {
	err := s.playerRepo.Delete(ctx, id)
	if errors.Is(err, repositories.ErrPlayerNotFound) {
		return ErrPlayerNotFound
	}
	return err
}
