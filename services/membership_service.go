package services

import (
	"context"
	"errors"

	"github.com/Dosada05/worldcup-system/models"
	"github.com/Dosada05/worldcup-system/repositories"
)

// MembershipService - тонкий слой вокруг уровня подписки пользователя.
// Проверка доступа живёт в middleware, не в ядре симуляции.
type MembershipService interface {
	Upgrade(ctx context.Context, userID int, tier models.MembershipTier) (*models.User, error)
}

type membershipService struct {
	userRepo repositories.UserRepository
}

func NewMembershipService(userRepo repositories.UserRepository) MembershipService {
	return &membershipService{userRepo: userRepo}
}

func (s *membershipService) Upgrade(ctx context.Context, userID int, tier models.MembershipTier) (*models.User, error) {
	switch tier {
	case models.TierFree, models.TierPro:
	default:
		return nil, ErrMembershipInvalidTier
	}

	if err := s.userRepo.UpdateTier(ctx, userID, tier); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}
