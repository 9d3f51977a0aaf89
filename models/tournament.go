package models

import "time"

// TournamentStatus представляет статусы турнира, соответствующие ENUM в БД.
type TournamentStatus string

const (
	StatusDraft      TournamentStatus = "draft"
	StatusDraw       TournamentStatus = "draw"
	StatusGroupStage TournamentStatus = "group_stage"
	StatusCompleted  TournamentStatus = "completed"
	StatusCanceled   TournamentStatus = "canceled"
)

// Tournament представляет один розыгрыш чемпионата мира.
type Tournament struct {
	ID              int              `json:"id" db:"id"`
	Name            string           `json:"name" db:"name"`
	OwnerID         int              `json:"owner_id" db:"owner_id"`
	WorldID         *int             `json:"world_id,omitempty" db:"world_id"`
	HostCountryCode string           `json:"host_country_code" db:"host_country_code"`
	MaxTeams        int              `json:"max_teams" db:"max_teams"`
	Status          TournamentStatus `json:"status" db:"status"`
	CreatedAt       time.Time        `json:"created_at" db:"created_at"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`

	// Опциональные связанные сущности (не мапятся напрямую)
	World *World `json:"world,omitempty" db:"-"`
	Teams []Team `json:"teams,omitempty" db:"-"`
}
