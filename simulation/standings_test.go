package simulation

import (
	"math/rand"
	"testing"

	"github.com/Dosada05/worldcup-system/models"
)

func freshGroupStandings() []*models.Standing {
	rows := make([]*models.Standing, 0, 4)
	for i := 0; i < 4; i++ {
		rows = append(rows, &models.Standing{
			TeamID:       i + 1,
			Position:     i + 1,
			QualifiedFor: models.QualifiedNone,
		})
	}
	return rows
}

func TestApplyResultOutcomes(t *testing.T) {
	cases := []struct {
		name                 string
		homeScore, awayScore int
		homePoints           int
		awayPoints           int
	}{
		{"home win", 2, 0, 3, 0},
		{"away win", 1, 3, 0, 3},
		{"draw", 1, 1, 1, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			home := &models.Standing{TeamID: 1}
			away := &models.Standing{TeamID: 2}
			ApplyResult(home, away, tc.homeScore, tc.awayScore)

			if home.Points != tc.homePoints || away.Points != tc.awayPoints {
				t.Errorf("points: got %d/%d, want %d/%d", home.Points, away.Points, tc.homePoints, tc.awayPoints)
			}
			if home.Played != 1 || away.Played != 1 {
				t.Errorf("played: got %d/%d", home.Played, away.Played)
			}
			if home.GoalsFor != tc.homeScore || home.GoalsAgainst != tc.awayScore {
				t.Errorf("home goals: %d:%d", home.GoalsFor, home.GoalsAgainst)
			}
			if home.GoalDifference != tc.homeScore-tc.awayScore {
				t.Errorf("home goal difference: %d", home.GoalDifference)
			}
		})
	}
}

// После произвольной последовательности матчей счётчики обязаны сходиться:
// points == 3*won + drawn, played == won+drawn+lost, позиции - перестановка 1..4.
func TestStandingsConsistencyUnderRandomFixtures(t *testing.T) {
	rng := rand.New(rand.NewSource(9))

	for trial := 0; trial < 50; trial++ {
		rows := freshGroupStandings()
		byTeam := map[int]*models.Standing{}
		for _, row := range rows {
			byTeam[row.TeamID] = row
		}

		fixtures, err := GroupFixtures([]int{1, 2, 3, 4})
		if err != nil {
			t.Fatal(err)
		}
		// Play a random prefix of the schedule in random order.
		rng.Shuffle(len(fixtures), func(i, j int) { fixtures[i], fixtures[j] = fixtures[j], fixtures[i] })
		played := fixtures[:rng.Intn(len(fixtures))+1]

		for _, f := range played {
			home, away := SimulateScore(rng)
			ApplyResult(byTeam[f.HomeTeamID], byTeam[f.AwayTeamID], home, away)
			RankGroup(rows)
		}

		totalPlayed := 0
		positions := map[int]bool{}
		for _, row := range rows {
			if row.Points != 3*row.Won+row.Drawn {
				t.Fatalf("team %d: points %d != 3*%d+%d", row.TeamID, row.Points, row.Won, row.Drawn)
			}
			if row.Played != row.Won+row.Drawn+row.Lost {
				t.Fatalf("team %d: played %d != %d+%d+%d", row.TeamID, row.Played, row.Won, row.Drawn, row.Lost)
			}
			if row.GoalDifference != row.GoalsFor-row.GoalsAgainst {
				t.Fatalf("team %d: goal difference mismatch", row.TeamID)
			}
			positions[row.Position] = true
			totalPlayed += row.Played
		}
		if totalPlayed != 2*len(played) {
			t.Fatalf("total played %d, want %d", totalPlayed, 2*len(played))
		}
		for p := 1; p <= 4; p++ {
			if !positions[p] {
				t.Fatalf("positions are not a permutation of 1..4: %v", positions)
			}
		}
	}
}

func TestRankGroupOrderingAndQualification(t *testing.T) {
	rows := []*models.Standing{
		{TeamID: 1, Points: 4, GoalDifference: 1, GoalsFor: 3},
		{TeamID: 2, Points: 6, GoalDifference: 2, GoalsFor: 4},
		{TeamID: 3, Points: 4, GoalDifference: 1, GoalsFor: 5},
		{TeamID: 4, Points: 1, GoalDifference: -4, GoalsFor: 1},
	}
	RankGroup(rows)

	wantOrder := []int{2, 3, 1, 4} // goals-for breaks the 4pt/+1gd tie
	for i, want := range wantOrder {
		if rows[i].TeamID != want {
			t.Fatalf("position %d: team %d, want %d", i+1, rows[i].TeamID, want)
		}
		if rows[i].Position != i+1 {
			t.Errorf("position field %d, want %d", rows[i].Position, i+1)
		}
	}
	if rows[0].QualifiedFor != models.QualifiedRound16 || rows[1].QualifiedFor != models.QualifiedRound16 {
		t.Error("top two must be marked for round16")
	}
	if rows[2].QualifiedFor != models.QualifiedNone || rows[3].QualifiedFor != models.QualifiedNone {
		t.Error("bottom two must carry no qualification mark")
	}
}

// Полное равенство по всем трём ключам разрешается стабильным порядком,
// без дополнительных критериев.
func TestRankGroupStableOnFullTie(t *testing.T) {
	rows := []*models.Standing{
		{TeamID: 7, Points: 3, GoalDifference: 0, GoalsFor: 2},
		{TeamID: 8, Points: 3, GoalDifference: 0, GoalsFor: 2},
	}
	RankGroup(rows)
	if rows[0].TeamID != 7 || rows[1].TeamID != 8 {
		t.Errorf("full tie must keep stable order, got %d,%d", rows[0].TeamID, rows[1].TeamID)
	}
}
