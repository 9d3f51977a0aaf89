package simulation

import "math/rand"

// Scoreline - один правдоподобный счёт с относительным весом.
type Scoreline struct {
	Home   int
	Away   int
	Weight int
}

// scorelines - дискретное распределение из 24 исходов. Веса смещены к
// низким счетам (1-0, 0-1, 1-1 - самые вероятные, 5-0 - наименее).
// Веса плоские: сила команд здесь намеренно не учитывается.
var scorelines = []Scoreline{
	{0, 0, 8},
	{1, 0, 10}, {0, 1, 10},
	{1, 1, 10},
	{2, 0, 7}, {0, 2, 7},
	{2, 1, 8}, {1, 2, 8},
	{2, 2, 6},
	{3, 0, 4}, {0, 3, 4},
	{3, 1, 5}, {1, 3, 5},
	{3, 2, 3}, {2, 3, 3},
	{3, 3, 2},
	{4, 0, 2}, {0, 4, 2},
	{4, 1, 2}, {1, 4, 2},
	{4, 2, 1}, {2, 4, 1},
	{5, 0, 1}, {0, 5, 1},
}

var totalScoreWeight int

func init() {
	for _, s := range scorelines {
		totalScoreWeight += s.Weight
	}
}

// SimulateScore разыгрывает счёт матча рулеткой по накопленным весам.
func SimulateScore(rng *rand.Rand) (home, away int) {
	roll := rng.Intn(totalScoreWeight)
	for _, s := range scorelines {
		roll -= s.Weight
		if roll < 0 {
			return s.Home, s.Away
		}
	}
	// Недостижимо: веса покрывают весь диапазон roll.
	last := scorelines[len(scorelines)-1]
	return last.Home, last.Away
}
