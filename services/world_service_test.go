package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Dosada05/worldcup-system/models"
)

func TestWorldReplaceRankings(t *testing.T) {
	worlds := newFakeWorldRepo()
	service := NewWorldService(worlds)
	ctx := context.Background()

	world, err := service.Create(ctx, 1, "alt history")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := service.ReplaceRankings(ctx, world.ID, 1, []models.CountryRanking{
		{CountryCode: "QAT", Rank: 1},
		{CountryCode: "ARG", Rank: 40},
	})
	if err != nil {
		t.Fatalf("ReplaceRankings: %v", err)
	}
	if len(updated.CountryRankings) != 2 {
		t.Fatalf("expected 2 rankings, got %d", len(updated.CountryRankings))
	}

	// Полная перезапись, не дозапись.
	updated, err = service.ReplaceRankings(ctx, world.ID, 1, []models.CountryRanking{
		{CountryCode: "BRA", Rank: 3},
	})
	if err != nil {
		t.Fatalf("second ReplaceRankings: %v", err)
	}
	if len(updated.CountryRankings) != 1 || updated.CountryRankings[0].CountryCode != "BRA" {
		t.Fatalf("rankings must be replaced wholesale, got %+v", updated.CountryRankings)
	}
}

func TestWorldReplaceRankingsValidation(t *testing.T) {
	worlds := newFakeWorldRepo()
	service := NewWorldService(worlds)
	ctx := context.Background()

	world, err := service.Create(ctx, 1, "alt history")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := service.ReplaceRankings(ctx, world.ID, 2, nil); !errors.Is(err, ErrForbiddenOperation) {
		t.Errorf("foreign owner: expected ErrForbiddenOperation, got %v", err)
	}
	if _, err := service.ReplaceRankings(ctx, world.ID, 1, []models.CountryRanking{{CountryCode: "XXX", Rank: 1}}); !errors.Is(err, ErrUnknownCountryCode) {
		t.Errorf("unknown country: expected ErrUnknownCountryCode, got %v", err)
	}
	if _, err := service.ReplaceRankings(ctx, world.ID, 1, []models.CountryRanking{{CountryCode: "QAT", Rank: 0}}); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("zero rank: expected ErrValidationFailed, got %v", err)
	}
	if _, err := service.ReplaceRankings(ctx, 99, 1, nil); !errors.Is(err, ErrWorldNotFound) {
		t.Errorf("missing world: expected ErrWorldNotFound, got %v", err)
	}
}

func TestUploadAvatar(t *testing.T) {
	users := newFakeUserRepo(&models.User{ID: 5, Nickname: "pele", Email: "p@e.le"})
	uploader := newFakeUploader()
	service := NewUserService(users, uploader)
	ctx := context.Background()

	user, err := service.UploadAvatar(ctx, 5, "image/jpeg", strings.NewReader("jpeg-bytes"))
	if err != nil {
		t.Fatalf("UploadAvatar: %v", err)
	}
	if user.AvatarURL == nil || !strings.Contains(*user.AvatarURL, "avatars/5") {
		t.Errorf("avatar URL not populated: %v", user.AvatarURL)
	}
	if _, err := service.UploadAvatar(ctx, 99, "image/jpeg", strings.NewReader("x")); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
