package models

import "time"

type UserRole string

const (
	RolePlayer UserRole = "player"
	RoleAdmin  UserRole = "admin"
)

// MembershipTier - уровень подписки пользователя. Симуляция доступна
// только платным уровням, чтение - всем.
type MembershipTier string

const (
	TierFree MembershipTier = "free"
	TierPro  MembershipTier = "pro"
)

type User struct {
	ID           int            `json:"id" db:"id"`
	Nickname     string         `json:"nickname" db:"nickname"`
	Email        string         `json:"email" db:"email"`
	PasswordHash string         `json:"-" db:"password_hash"`
	Role         UserRole       `json:"role" db:"role"`
	Tier         MembershipTier `json:"tier" db:"tier"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`

	AvatarKey *string `json:"-" db:"avatar_key"`
	AvatarURL *string `json:"avatar_url,omitempty" db:"-"`
}
