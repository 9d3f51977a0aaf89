package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Dosada05/worldcup-system/models"
	"github.com/Dosada05/worldcup-system/repositories"
	"github.com/Dosada05/worldcup-system/storage"
)

type UserService interface {
	GetProfile(ctx context.Context, userID int) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int, input UpdateProfileInput) (*models.User, error)
	UploadAvatar(ctx context.Context, userID int, contentType string, reader io.Reader) (*models.User, error)
}

type UpdateProfileInput struct {
	Nickname *string `json:"nickname"`
	Email    *string `json:"email"`
}

type userService struct {
	userRepo repositories.UserRepository
	uploader storage.FileUploader
}

func NewUserService(userRepo repositories.UserRepository, uploader storage.FileUploader) UserService {
	return &userService{
		userRepo: userRepo,
		uploader: uploader,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	s.populateAvatarURL(user)
	user.PasswordHash = ""
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID int, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if input.Nickname != nil {
		user.Nickname = *input.Nickname
	}
	if input.Email != nil {
		user.Email = *input.Email
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserEmailConflict) {
			return nil, ErrAuthEmailTaken
		}
		return nil, err
	}
	s.populateAvatarURL(user)
	user.PasswordHash = ""
	return user, nil
}

func (s *userService) UploadAvatar(ctx context.Context, userID int, contentType string, reader io.Reader) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	key := fmt.Sprintf("avatars/%d", userID)
	result, err := s.uploader.Upload(ctx, key, contentType, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to upload avatar: %w", err)
	}

	if err := s.userRepo.UpdateAvatarKey(ctx, userID, &result.Key); err != nil {
		return nil, err
	}
	user.AvatarKey = &result.Key
	s.populateAvatarURL(user)
	user.PasswordHash = ""
	return user, nil
}

func (s *userService) populateAvatarURL(user *models.User) {
	if user == nil || user.AvatarKey == nil || *user.AvatarKey == "" || s.uploader == nil {
		return
	}
	if url := s.uploader.GetPublicURL(*user.AvatarKey); url != "" {
		user.AvatarURL = &url
	}
}
