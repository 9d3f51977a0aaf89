package simulation

import (
	"sort"

	"github.com/Dosada05/worldcup-system/models"
)

const (
	PotCount    = 4
	PotCapacity = 8
)

// AllocatePots разбивает команды на четыре посевные корзины по рейтингу.
// Хозяйка турнира всегда занимает зарезервированное место в корзине 1,
// остальные распределяются по возрастанию разрешённого рейтинга.
//
// The function tolerates any team count: fewer than 32 teams produce smaller
// pots, zero teams produce four empty pots so the UI can still render the
// draw board.
func AllocatePots(teams []models.Team, hostCountryCode string, overrides map[string]int) [PotCount][]int {
	var pots [PotCount][]int
	for i := range pots {
		pots[i] = []int{}
	}

	var host *models.Team
	rest := make([]models.Team, 0, len(teams))
	for i := range teams {
		if host == nil && teams[i].CountryCode == hostCountryCode {
			host = &teams[i]
			continue
		}
		rest = append(rest, teams[i])
	}

	// Stable sort keeps insertion order for equal ranks.
	sort.SliceStable(rest, func(i, j int) bool {
		return ResolveRank(rest[i], overrides) < ResolveRank(rest[j], overrides)
	})

	if host != nil {
		pots[0] = append(pots[0], host.ID)
	}
	for i, team := range rest {
		pot := (i + 1) / PotCapacity
		if host == nil {
			pot = i / PotCapacity
		}
		if pot >= PotCount {
			break // заявка больше 32 команд не сеется
		}
		pots[pot] = append(pots[pot], team.ID)
	}
	return pots
}
