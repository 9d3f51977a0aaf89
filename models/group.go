package models

// GroupCapacity - ровно четыре команды в группе.
const GroupCapacity = 4

// GroupLetters enumerates the eight group identifiers in draw order.
var GroupLetters = []string{"A", "B", "C", "D", "E", "F", "G", "H"}

// Group - группа A-H. Порядок TeamIDs - это порядок жеребьёвки внутри группы.
type Group struct {
	ID           int    `json:"id" db:"id"`
	TournamentID int    `json:"tournament_id" db:"tournament_id"`
	Letter       string `json:"letter" db:"letter"`
	TeamIDs      []int  `json:"team_ids" db:"team_ids"`
	IsComplete   bool   `json:"is_complete" db:"is_complete"`

	Teams []Team `json:"teams,omitempty" db:"-"`
}
