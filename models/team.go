package models

import "time"

// Team - страна, заявленная в конкретный турнир. Код страны уникален
// в пределах турнира; ровно одна команда является хозяйкой.
type Team struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	CountryCode  string    `json:"country_code" db:"country_code"`
	Name         string    `json:"name" db:"name"`
	Ranking      int       `json:"ranking" db:"ranking"`
	IsHost       bool      `json:"is_host" db:"is_host"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
