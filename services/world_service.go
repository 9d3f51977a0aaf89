package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/worldcup-system/models"
	"github.com/Dosada05/worldcup-system/repositories"
)

type WorldService interface {
	Create(ctx context.Context, ownerID int, name string) (*models.World, error)
	GetByID(ctx context.Context, id int) (*models.World, error)
	ListByOwner(ctx context.Context, ownerID int) ([]*models.World, error)
	// ReplaceRankings перезаписывает переопределения рейтингов мира.
	// Коды стран валидируются по справочнику.
	ReplaceRankings(ctx context.Context, worldID, callerID int, rankings []models.CountryRanking) (*models.World, error)
}

type worldService struct {
	worldRepo repositories.WorldRepository
}

func NewWorldService(worldRepo repositories.WorldRepository) WorldService {
	return &worldService{worldRepo: worldRepo}
}

func (s *worldService) Create(ctx context.Context, ownerID int, name string) (*models.World, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: world name is required", ErrValidationFailed)
	}
	world := &models.World{OwnerID: ownerID, Name: name}
	if err := s.worldRepo.Create(ctx, world); err != nil {
		return nil, err
	}
	return world, nil
}

func (s *worldService) GetByID(ctx context.Context, id int) (*models.World, error) {
	world, err := s.worldRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrWorldNotFound) {
			return nil, ErrWorldNotFound
		}
		return nil, err
	}
	return world, nil
}

func (s *worldService) ListByOwner(ctx context.Context, ownerID int) ([]*models.World, error) {
	return s.worldRepo.ListByOwner(ctx, ownerID)
}

func (s *worldService) ReplaceRankings(ctx context.Context, worldID, callerID int, rankings []models.CountryRanking) (*models.World, error) {
	world, err := s.GetByID(ctx, worldID)
	if err != nil {
		return nil, err
	}
	if world.OwnerID != callerID {
		return nil, ErrForbiddenOperation
	}

	for _, ranking := range rankings {
		if _, ok := models.FindCountry(ranking.CountryCode); !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCountryCode, ranking.CountryCode)
		}
		if ranking.Rank <= 0 {
			return nil, fmt.Errorf("%w: rank for %s must be positive", ErrValidationFailed, ranking.CountryCode)
		}
	}

	if err := s.worldRepo.ReplaceRankings(ctx, worldID, rankings); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, worldID)
}
