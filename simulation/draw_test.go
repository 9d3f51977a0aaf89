package simulation

import (
	"math/rand"
	"testing"
)

func TestPlanPotDrawHostGoesToGroupA(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	teamIDs := []int{10, 20, 30, 40, 50, 60, 70, 80}
	const hostID = 50

	for i := 0; i < 100; i++ {
		placements := PlanPotDraw(rng, 1, teamIDs, hostID)
		if len(placements) != len(teamIDs) {
			t.Fatalf("expected %d placements, got %d", len(teamIDs), len(placements))
		}
		if placements[0].TeamID != hostID || placements[0].Group != 0 {
			t.Fatalf("host must be the first placement into group A, got %+v", placements[0])
		}
		// Remaining pot-1 teams fill groups B..H cyclically, one per group.
		seenGroups := map[int]int{0: 1}
		for _, p := range placements[1:] {
			if p.Group == 0 {
				t.Fatalf("non-host pot-1 team placed into group A: %+v", p)
			}
			seenGroups[p.Group]++
		}
		for g := 0; g < GroupCount; g++ {
			if seenGroups[g] != 1 {
				t.Fatalf("group %d received %d pot-1 teams", g, seenGroups[g])
			}
		}
	}
}

func TestPlanPotDrawWithoutHostStartsAtGroupA(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	teamIDs := []int{1, 2, 3, 4, 5, 6, 7, 8}

	placements := PlanPotDraw(rng, 2, teamIDs, 0)

	seenGroups := map[int]bool{}
	seenTeams := map[int]bool{}
	for i, p := range placements {
		if p.Group != i%GroupCount {
			t.Errorf("placement %d: expected group %d, got %d", i, i%GroupCount, p.Group)
		}
		seenGroups[p.Group] = true
		seenTeams[p.TeamID] = true
	}
	if len(seenGroups) != GroupCount || len(seenTeams) != len(teamIDs) {
		t.Errorf("expected all teams across all groups, got %d groups, %d teams", len(seenGroups), len(seenTeams))
	}
}

func TestPlanPotDrawShortPot(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	placements := PlanPotDraw(rng, 4, []int{100, 200, 300}, 0)
	if len(placements) != 3 {
		t.Fatalf("expected 3 placements, got %d", len(placements))
	}
	for i, p := range placements {
		if p.Group != i {
			t.Errorf("short pot should still distribute cyclically from group A, placement %d into group %d", i, p.Group)
		}
	}
}

func TestPlanPotDrawShuffles(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	teamIDs := []int{1, 2, 3, 4, 5, 6, 7, 8}

	varied := false
	first := PlanPotDraw(rng, 2, teamIDs, 0)
	for i := 0; i < 50 && !varied; i++ {
		next := PlanPotDraw(rng, 2, teamIDs, 0)
		for j := range next {
			if next[j].TeamID != first[j].TeamID {
				varied = true
				break
			}
		}
	}
	if !varied {
		t.Error("50 draws produced identical orderings, shuffle looks broken")
	}
}

func TestSpliceAt(t *testing.T) {
	members := []int{1, 2, 3}

	cases := []struct {
		idx  int
		want []int
	}{
		{0, []int{9, 1, 2, 3}},
		{1, []int{1, 9, 2, 3}},
		{3, []int{1, 2, 3, 9}},
		{-1, []int{9, 1, 2, 3}}, // clamped
		{10, []int{1, 2, 3, 9}}, // clamped
	}
	for _, tc := range cases {
		got := SpliceAt(members, 9, tc.idx)
		if len(got) != len(tc.want) {
			t.Fatalf("idx %d: got %v, want %v", tc.idx, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("idx %d: got %v, want %v", tc.idx, got, tc.want)
				break
			}
		}
	}

	// Original slice must stay untouched.
	if members[0] != 1 || members[1] != 2 || members[2] != 3 {
		t.Errorf("SpliceAt mutated its input: %v", members)
	}
}

func TestRandomInsertIndexBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 1000; i++ {
		idx := RandomInsertIndex(rng, 3)
		if idx < 0 || idx > 3 {
			t.Fatalf("insert index %d out of [0,3]", idx)
		}
	}
}
