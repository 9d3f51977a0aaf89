package simulation

import "github.com/Dosada05/worldcup-system/models"

// UnrankedRank - сентинел для команд без рейтинга, сортируется последним.
const UnrankedRank = 999

// ResolveRank returns the seeding rank for a team. A world-level override for
// the team's country wins over the team's intrinsic ranking. Never fails:
// unranked teams get UnrankedRank.
func ResolveRank(team models.Team, overrides map[string]int) int {
	if overrides != nil {
		if rank, ok := overrides[team.CountryCode]; ok {
			return rank
		}
	}
	if team.Ranking > 0 {
		return team.Ranking
	}
	return UnrankedRank
}

// RankingOverrides собирает переопределения мира в map по коду страны.
func RankingOverrides(world *models.World) map[string]int {
	if world == nil || len(world.CountryRankings) == 0 {
		return nil
	}
	overrides := make(map[string]int, len(world.CountryRankings))
	for _, cr := range world.CountryRankings {
		overrides[cr.CountryCode] = cr.Rank
	}
	return overrides
}
