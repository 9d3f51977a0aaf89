package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/Dosada05/worldcup-system/models"
	"github.com/Dosada05/worldcup-system/repositories"
	"github.com/Dosada05/worldcup-system/simulation"
)

type MatchService interface {
	// GenerateFixtures создаёт расписание группового этапа и нулевые
	// строки таблиц. Требует восемь укомплектованных групп.
	GenerateFixtures(ctx context.Context, tournamentID int) ([]*models.Match, error)
	ListMatches(ctx context.Context, tournamentID int, matchday *int) ([]*models.Match, error)
	SimulateMatch(ctx context.Context, tournamentID, matchID int) (*models.Match, error)
	SimulateMatchday(ctx context.Context, tournamentID, matchday int) ([]*models.Match, error)
	GetStandings(ctx context.Context, tournamentID int) ([]*models.Standing, error)
}

type matchService struct {
	tx             TxRunner // транзакции матч+таблицы
	tournamentRepo repositories.TournamentRepository
	groupRepo      repositories.GroupRepository
	teamRepo       repositories.TeamRepository
	matchRepo      repositories.MatchRepository
	standingRepo   repositories.StandingRepository
	hub            *simulation.Hub
	locker         *TournamentLocker
	logger         *slog.Logger
}

func NewMatchService(
	tx TxRunner,
	tournamentRepo repositories.TournamentRepository,
	groupRepo repositories.GroupRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	standingRepo repositories.StandingRepository,
	hub *simulation.Hub,
	locker *TournamentLocker,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		tx:             tx,
		tournamentRepo: tournamentRepo,
		groupRepo:      groupRepo,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		standingRepo:   standingRepo,
		hub:            hub,
		locker:         locker,
		logger:         logger,
	}
}

func (s *matchService) GenerateFixtures(ctx context.Context, tournamentID int) ([]*models.Match, error) {
	unlock := s.locker.Lock(tournamentID)
	defer unlock()

	if err := s.checkTournament(ctx, tournamentID); err != nil {
		return nil, err
	}

	groups, err := s.groupRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, ErrGroupsNotInitialized
	}

	matches := make([]*models.Match, 0, len(groups)*simulation.FixturesPerGroup)
	standings := make([]*models.Standing, 0, len(groups)*models.GroupCapacity)
	for _, group := range groups {
		fixtures, err := simulation.GroupFixtures(group.TeamIDs)
		if err != nil {
			// Ошибка называет конкретную неукомплектованную группу.
			return nil, fmt.Errorf("%w: group %s has %d of %d teams",
				ErrGroupIncomplete, group.Letter, len(group.TeamIDs), models.GroupCapacity)
		}
		for _, fixture := range fixtures {
			matches = append(matches, &models.Match{
				TournamentID: tournamentID,
				GroupID:      group.ID,
				Matchday:     fixture.Matchday,
				HomeTeamID:   fixture.HomeTeamID,
				AwayTeamID:   fixture.AwayTeamID,
			})
		}
		// Стартовая позиция - порядок жеребьёвки; осмысленной она станет
		// после первых сыгранных матчей.
		for i, teamID := range group.TeamIDs {
			standings = append(standings, &models.Standing{
				TournamentID: tournamentID,
				GroupID:      group.ID,
				TeamID:       teamID,
				Position:     i + 1,
				QualifiedFor: models.QualifiedNone,
			})
		}
	}

	// Перегенерация деструктивна: старое расписание и таблицы уходят целиком.
	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.matchRepo.DeleteByTournament(ctx, exec, tournamentID); err != nil {
			return err
		}
		if err := s.standingRepo.DeleteByTournament(ctx, exec, tournamentID); err != nil {
			return err
		}
		if err := s.matchRepo.BatchCreate(ctx, exec, matches); err != nil {
			return err
		}
		return s.standingRepo.BatchCreate(ctx, exec, standings)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("fixtures generated",
		slog.Int("tournament_id", tournamentID),
		slog.Int("matches", len(matches)))
	s.hub.BroadcastToRoom(simulation.TournamentRoom(tournamentID), simulation.EventFixturesCreated, matches)
	return matches, nil
}

func (s *matchService) ListMatches(ctx context.Context, tournamentID int, matchday *int) ([]*models.Match, error) {
	if err := s.checkTournament(ctx, tournamentID); err != nil {
		return nil, err
	}
	if matchday != nil && (*matchday < 1 || *matchday > simulation.MatchdayCount) {
		return nil, ErrInvalidMatchday
	}
	return s.matchRepo.ListByTournament(ctx, nil, tournamentID, matchday, nil)
}

func (s *matchService) SimulateMatch(ctx context.Context, tournamentID, matchID int) (*models.Match, error) {
	unlock := s.locker.Lock(tournamentID)
	defer unlock()

	if err := s.checkTournament(ctx, tournamentID); err != nil {
		return nil, err
	}

	match, err := s.matchRepo.GetByID(ctx, nil, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	if match.TournamentID != tournamentID {
		return nil, ErrMatchTournamentMismatch
	}

	simulated, err := s.simulateOne(ctx, newRNG(), match)
	if err != nil {
		return nil, err
	}

	s.hub.BroadcastToRoom(simulation.TournamentRoom(tournamentID), simulation.EventMatchSimulated, simulated)
	s.broadcastStandings(ctx, tournamentID)
	return simulated, nil
}

// SimulateMatchday симулирует все незавершённые матчи тура. Уже сыгранные
// матчи пропускаются молча.
func (s *matchService) SimulateMatchday(ctx context.Context, tournamentID, matchday int) ([]*models.Match, error) {
	if matchday < 1 || matchday > simulation.MatchdayCount {
		return nil, ErrInvalidMatchday
	}

	unlock := s.locker.Lock(tournamentID)
	defer unlock()

	if err := s.checkTournament(ctx, tournamentID); err != nil {
		return nil, err
	}

	matches, err := s.matchRepo.ListByTournament(ctx, nil, tournamentID, &matchday, nil)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, ErrFixturesNotGenerated
	}

	rng := newRNG()
	result := make([]*models.Match, 0, len(matches))
	for _, match := range matches {
		if match.Status == models.MatchStatusCompleted {
			result = append(result, match)
			continue
		}
		simulated, err := s.simulateOne(ctx, rng, match)
		if err != nil {
			return nil, err
		}
		result = append(result, simulated)
	}

	s.logger.Info("matchday simulated",
		slog.Int("tournament_id", tournamentID),
		slog.Int("matchday", matchday))
	s.hub.BroadcastToRoom(simulation.TournamentRoom(tournamentID), simulation.EventMatchSimulated, result)
	s.broadcastStandings(ctx, tournamentID)
	return result, nil
}

func (s *matchService) GetStandings(ctx context.Context, tournamentID int) ([]*models.Standing, error) {
	if err := s.checkTournament(ctx, tournamentID); err != nil {
		return nil, err
	}

	standings, err := s.standingRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, err
	}

	groups, err := s.groupRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, err
	}
	letterOf := make(map[int]string, len(groups))
	for _, group := range groups {
		letterOf[group.ID] = group.Letter
	}
	teams, err := s.teamRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, err
	}
	byID := teamsByID(teams)

	for _, standing := range standings {
		standing.GroupLetter = letterOf[standing.GroupID]
		if team, ok := byID[standing.TeamID]; ok {
			teamCopy := team
			standing.Team = &teamCopy
		}
	}
	return standings, nil
}

// simulateOne разыгрывает счёт и в одной транзакции завершает матч,
// применяет результат к обеим командам и пересчитывает позиции всей группы.
func (s *matchService) simulateOne(ctx context.Context, rng *rand.Rand, match *models.Match) (*models.Match, error) {
	if match.Status == models.MatchStatusCompleted {
		return nil, ErrMatchAlreadyCompleted
	}

	homeScore, awayScore := simulation.SimulateScore(rng)
	simulatedAt := time.Now()

	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.matchRepo.Complete(ctx, exec, match.ID, homeScore, awayScore, simulatedAt); err != nil {
			if errors.Is(err, repositories.ErrMatchNotFound) {
				// Гонку со вторым запросом проигрывает этот: матч уже завершён.
				return ErrMatchAlreadyCompleted
			}
			return err
		}

		rows, err := s.standingRepo.ListByGroup(ctx, exec, match.GroupID)
		if err != nil {
			return err
		}
		var home, away *models.Standing
		for _, row := range rows {
			switch row.TeamID {
			case match.HomeTeamID:
				home = row
			case match.AwayTeamID:
				away = row
			}
		}
		if home == nil || away == nil {
			return fmt.Errorf("standings rows missing for match %d", match.ID)
		}

		simulation.ApplyResult(home, away, homeScore, awayScore)
		simulation.RankGroup(rows)

		for _, row := range rows {
			if err := s.standingRepo.Update(ctx, exec, row); err != nil {
				return fmt.Errorf("failed to update standing for team %d: %w", row.TeamID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	match.HomeScore = &homeScore
	match.AwayScore = &awayScore
	match.Status = models.MatchStatusCompleted
	match.SimulatedAt = &simulatedAt
	return match, nil
}

func (s *matchService) broadcastStandings(ctx context.Context, tournamentID int) {
	standings, err := s.standingRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		s.logger.Error("failed to load standings for broadcast",
			slog.Int("tournament_id", tournamentID), slog.Any("error", err))
		return
	}
	s.hub.BroadcastToRoom(simulation.TournamentRoom(tournamentID), simulation.EventStandingsUpdated, standings)
}

func (s *matchService) checkTournament(ctx context.Context, tournamentID int) error {
	if _, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return err
	}
	return nil
}
