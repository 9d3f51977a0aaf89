package simulation

import (
	"sort"

	"github.com/Dosada05/worldcup-system/models"
)

const (
	pointsWin  = 3
	pointsDraw = 1

	// QualifyingPositions - первые две позиции выходят в 1/8 финала.
	QualifyingPositions = 2
)

// ApplyResult применяет завершённый матч к строкам обеих команд.
// Позиции после этого пересчитывает RankGroup - для всей группы,
// а не только для двух затронутых команд.
func ApplyResult(home, away *models.Standing, homeScore, awayScore int) {
	applySide(home, homeScore, awayScore)
	applySide(away, awayScore, homeScore)
}

func applySide(s *models.Standing, scored, conceded int) {
	s.Played++
	s.GoalsFor += scored
	s.GoalsAgainst += conceded
	s.GoalDifference = s.GoalsFor - s.GoalsAgainst
	switch {
	case scored > conceded:
		s.Won++
		s.Points += pointsWin
	case scored == conceded:
		s.Drawn++
		s.Points += pointsDraw
	default:
		s.Lost++
	}
}

// RankGroup пересортировывает строки группы по (очки, разница, забитые)
// по убыванию и проставляет позиции и отметки квалификации. Дополнительных
// критериев (личные встречи, fair play) нет: равенство по всем трём ключам
// разрешается стабильным порядком.
func RankGroup(rows []*models.Standing) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		if rows[i].GoalDifference != rows[j].GoalDifference {
			return rows[i].GoalDifference > rows[j].GoalDifference
		}
		return rows[i].GoalsFor > rows[j].GoalsFor
	})
	for i, row := range rows {
		row.Position = i + 1
		if row.Position <= QualifyingPositions {
			row.QualifiedFor = models.QualifiedRound16
		} else {
			row.QualifiedFor = models.QualifiedNone
		}
	}
}
