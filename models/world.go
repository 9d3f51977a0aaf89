package models

import "time"

// World - постоянный "мир" пользователя. Турниры могут ссылаться на мир,
// чтобы наследовать его переопределения рейтингов стран.
type World struct {
	ID        int       `json:"id" db:"id"`
	OwnerID   int       `json:"owner_id" db:"owner_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	CountryRankings []CountryRanking `json:"country_rankings,omitempty" db:"-"`
}

// CountryRanking overrides the global ranking of one country inside a world.
type CountryRanking struct {
	ID          int    `json:"id" db:"id"`
	WorldID     int    `json:"world_id" db:"world_id"`
	CountryCode string `json:"country_code" db:"country_code"`
	Rank        int    `json:"rank" db:"rank"`
}
