package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Dosada05/worldcup-system/models"
)

func TestRegisterAndLogin(t *testing.T) {
	users := newFakeUserRepo()
	service := NewAuthService(users)
	ctx := context.Background()

	user, err := service.Register(ctx, RegisterInput{
		Nickname: "pele",
		Email:    "pele@example.com",
		Password: "secret-password",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID == 0 {
		t.Error("registered user must get an ID")
	}
	if user.Role != models.RolePlayer || user.Tier != models.TierFree {
		t.Errorf("new user role/tier = %s/%s, want player/free", user.Role, user.Tier)
	}
	if user.PasswordHash != "" {
		t.Error("password hash must not leave the service")
	}

	logged, err := service.Login(ctx, LoginInput{Email: "pele@example.com", Password: "secret-password"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if logged.ID != user.ID {
		t.Errorf("logged in as user %d, want %d", logged.ID, user.ID)
	}
}

func TestRegisterValidation(t *testing.T) {
	users := newFakeUserRepo()
	service := NewAuthService(users)
	ctx := context.Background()

	if _, err := service.Register(ctx, RegisterInput{Nickname: "a", Email: "a@b.c", Password: "short"}); !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("expected ErrPasswordTooShort, got %v", err)
	}

	input := RegisterInput{Nickname: "pele", Email: "pele@example.com", Password: "secret-password"}
	if _, err := service.Register(ctx, input); err != nil {
		t.Fatalf("Register: %v", err)
	}
	input.Nickname = "pele2"
	if _, err := service.Register(ctx, input); !errors.Is(err, ErrAuthEmailTaken) {
		t.Errorf("expected ErrAuthEmailTaken, got %v", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	users := newFakeUserRepo()
	service := NewAuthService(users)
	ctx := context.Background()

	if _, err := service.Register(ctx, RegisterInput{Nickname: "pele", Email: "pele@example.com", Password: "secret-password"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := service.Login(ctx, LoginInput{Email: "pele@example.com", Password: "wrong-password"}); !errors.Is(err, ErrAuthInvalidCredentials) {
		t.Errorf("wrong password: expected ErrAuthInvalidCredentials, got %v", err)
	}
	if _, err := service.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "secret-password"}); !errors.Is(err, ErrAuthInvalidCredentials) {
		t.Errorf("unknown email: expected ErrAuthInvalidCredentials, got %v", err)
	}
}

func TestMembershipUpgrade(t *testing.T) {
	users := newFakeUserRepo(&models.User{ID: 1, Nickname: "pele", Email: "p@e.le", Tier: models.TierFree, Role: models.RolePlayer})
	service := NewMembershipService(users)
	ctx := context.Background()

	user, err := service.Upgrade(ctx, 1, models.TierPro)
	if err != nil {
		t.Fatalf("Upgrade: %v", err)
	}
	if user.Tier != models.TierPro {
		t.Errorf("tier = %s, want pro", user.Tier)
	}

	if _, err := service.Upgrade(ctx, 1, models.MembershipTier("platinum")); !errors.Is(err, ErrMembershipInvalidTier) {
		t.Errorf("expected ErrMembershipInvalidTier, got %v", err)
	}
	if _, err := service.Upgrade(ctx, 99, models.TierPro); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
