package simulation

import "math/rand"

// GroupCount - восемь групп, A-H.
const GroupCount = 8

// Placement - одно назначение команды в группу (индекс 0 == группа A).
// Позиция внутри группы выбирается отдельно при вставке, см. SpliceAt.
type Placement struct {
	TeamID int
	Group  int
}

// PlanPotDraw строит план жеребьёвки одной корзины: перемешивает команды
// (Fisher-Yates) и раскладывает их по группам циклически.
//
// Для корзины 1 с хозяйкой: хозяйка уходит в группу A, остальные команды
// раскладываются начиная с группы B. Во всех остальных случаях раскладка
// идёт с группы A. Порядок плана - это порядок последовательных вставок.
func PlanPotDraw(rng *rand.Rand, potNumber int, teamIDs []int, hostTeamID int) []Placement {
	shuffled := make([]int, len(teamIDs))
	copy(shuffled, teamIDs)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	placements := make([]Placement, 0, len(shuffled))

	offset := 0
	if potNumber == 1 && hostTeamID != 0 {
		for i, id := range shuffled {
			if id == hostTeamID {
				shuffled = append(shuffled[:i], shuffled[i+1:]...)
				placements = append(placements, Placement{TeamID: hostTeamID, Group: 0})
				offset = 1 // остальные команды корзины 1 начинают с группы B
				break
			}
		}
	}

	for i, id := range shuffled {
		placements = append(placements, Placement{TeamID: id, Group: (i + offset) % GroupCount})
	}
	return placements
}

// SpliceAt возвращает новый срез участников с teamID, вставленным на
// позицию idx. Случайная позиция вставки убирает смещение порядка
// внутри группы.
func SpliceAt(members []int, teamID, idx int) []int {
	if idx < 0 {
		idx = 0
	}
	if idx > len(members) {
		idx = len(members)
	}
	out := make([]int, 0, len(members)+1)
	out = append(out, members[:idx]...)
	out = append(out, teamID)
	out = append(out, members[idx:]...)
	return out
}

// RandomInsertIndex - равномерный индекс вставки среди текущих участников.
func RandomInsertIndex(rng *rand.Rand, memberCount int) int {
	return rng.Intn(memberCount + 1)
}
