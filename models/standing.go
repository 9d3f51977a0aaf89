package models

import "time"

// QualificationMark показывает, куда команда выходит с текущей позиции.
type QualificationMark string

const (
	QualifiedNone    QualificationMark = "none"
	QualifiedRound16 QualificationMark = "round16"
)

// Standing - накопленная статистика команды в групповом этапе.
// Позиция и отметка квалификации пересчитываются для всей группы
// после каждого сыгранного матча.
type Standing struct {
	ID             int               `json:"id" db:"id"`
	TournamentID   int               `json:"tournament_id" db:"tournament_id"`
	GroupID        int               `json:"group_id" db:"group_id"`
	TeamID         int               `json:"team_id" db:"team_id"`
	Played         int               `json:"played" db:"played"`
	Won            int               `json:"won" db:"won"`
	Drawn          int               `json:"drawn" db:"drawn"`
	Lost           int               `json:"lost" db:"lost"`
	GoalsFor       int               `json:"goals_for" db:"goals_for"`
	GoalsAgainst   int               `json:"goals_against" db:"goals_against"`
	GoalDifference int               `json:"goal_difference" db:"goal_difference"`
	Points         int               `json:"points" db:"points"`
	Position       int               `json:"position" db:"position"`
	QualifiedFor   QualificationMark `json:"qualified_for" db:"qualified_for"`
	UpdatedAt      time.Time         `json:"updated_at" db:"updated_at"`

	Team        *Team  `json:"team,omitempty" db:"-"`
	GroupLetter string `json:"group_letter,omitempty" db:"-"`
}
