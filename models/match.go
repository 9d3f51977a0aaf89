package models

import "time"

type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "scheduled"
	MatchStatusCompleted MatchStatus = "completed"
)

// Match - матч группового этапа. Шесть матчей на группу, по два в каждом
// из трёх туров. Переход scheduled → completed одностороннний.
type Match struct {
	ID           int         `json:"id" db:"id"`
	TournamentID int         `json:"tournament_id" db:"tournament_id"`
	GroupID      int         `json:"group_id" db:"group_id"`
	Matchday     int         `json:"matchday" db:"matchday"`
	HomeTeamID   int         `json:"home_team_id" db:"home_team_id"`
	AwayTeamID   int         `json:"away_team_id" db:"away_team_id"`
	HomeScore    *int        `json:"home_score,omitempty" db:"home_score"`
	AwayScore    *int        `json:"away_score,omitempty" db:"away_score"`
	Status       MatchStatus `json:"status" db:"status"`
	SimulatedAt  *time.Time  `json:"simulated_at,omitempty" db:"simulated_at"`
}
