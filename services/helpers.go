package services

import (
	"github.com/Dosada05/worldcup-system/models"
)

// --- Общие хелперы ---

func isValidStatusTransition(current, next models.TournamentStatus) bool {
	if current == next {
		return true
	}
	allowedTransitions := map[models.TournamentStatus][]models.TournamentStatus{
		models.StatusDraft:      {models.StatusDraw, models.StatusCanceled},
		models.StatusDraw:       {models.StatusGroupStage, models.StatusCanceled},
		models.StatusGroupStage: {models.StatusCompleted, models.StatusCanceled},
		models.StatusCompleted:  {},
		models.StatusCanceled:   {},
	}
	for _, allowedNextStatus := range allowedTransitions[current] {
		if next == allowedNextStatus {
			return true
		}
	}
	return false
}

func teamsByID(teams []models.Team) map[int]models.Team {
	byID := make(map[int]models.Team, len(teams))
	for _, team := range teams {
		byID[team.ID] = team
	}
	return byID
}

// assignedTeamIDs собирает все команды, уже размещённые в группах.
func assignedTeamIDs(groups []*models.Group) map[int]bool {
	assigned := make(map[int]bool)
	for _, group := range groups {
		for _, id := range group.TeamIDs {
			assigned[id] = true
		}
	}
	return assigned
}

func populateGroupTeams(groups []*models.Group, byID map[int]models.Team) {
	for _, group := range groups {
		group.Teams = make([]models.Team, 0, len(group.TeamIDs))
		for _, id := range group.TeamIDs {
			if team, ok := byID[id]; ok {
				group.Teams = append(group.Teams, team)
			}
		}
	}
}

func populatePotTeams(pots []*models.Pot, byID map[int]models.Team) {
	for _, pot := range pots {
		pot.Teams = make([]models.Team, 0, len(pot.TeamIDs))
		for _, id := range pot.TeamIDs {
			if team, ok := byID[id]; ok {
				pot.Teams = append(pot.Teams, team)
			}
		}
	}
}
