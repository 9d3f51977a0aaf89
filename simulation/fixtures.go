package simulation

import "fmt"

const (
	MatchdayCount      = 3
	FixturesPerGroup   = 6
	TeamsPerGroup      = 4
	MatchesPerMatchday = 2
)

// roundRobinPairs - фиксированное покрытие всех C(4,2) пар: каждая команда
// играет в каждом из трёх туров ровно один раз.
var roundRobinPairs = [FixturesPerGroup][2]int{
	{0, 1}, {2, 3}, // matchday 1
	{0, 2}, {1, 3}, // matchday 2
	{0, 3}, {1, 2}, // matchday 3
}

// Fixture - одна запланированная пара внутри группы.
type Fixture struct {
	HomeTeamID int
	AwayTeamID int
	Matchday   int
}

// GroupFixtures строит шесть матчей кругового турнира для группы из
// четырёх команд в их текущем (жеребьёвочном) порядке.
func GroupFixtures(teamIDs []int) ([]Fixture, error) {
	if len(teamIDs) != TeamsPerGroup {
		return nil, fmt.Errorf("group must have exactly %d teams, got %d", TeamsPerGroup, len(teamIDs))
	}
	fixtures := make([]Fixture, 0, FixturesPerGroup)
	for i, pair := range roundRobinPairs {
		fixtures = append(fixtures, Fixture{
			HomeTeamID: teamIDs[pair[0]],
			AwayTeamID: teamIDs[pair[1]],
			Matchday:   i/MatchesPerMatchday + 1,
		})
	}
	return fixtures, nil
}
