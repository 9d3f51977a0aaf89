package models

// Pot - посевная корзина жеребьёвки. Номера 1-4, до восьми команд в каждой.
// Корзины пересоздаются целиком при каждой генерации.
type Pot struct {
	ID           int   `json:"id" db:"id"`
	TournamentID int   `json:"tournament_id" db:"tournament_id"`
	Number       int   `json:"number" db:"number"`
	TeamIDs      []int `json:"team_ids" db:"team_ids"`

	Teams []Team `json:"teams,omitempty" db:"-"`
}
