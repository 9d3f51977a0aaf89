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
	"golang.org/x/sync/errgroup"
)

// DrawBoard - агрегат для отрисовки экрана жеребьёвки.
type DrawBoard struct {
	Pots   []*models.Pot   `json:"pots"`
	Groups []*models.Group `json:"groups"`
	Teams  []models.Team   `json:"teams"`
}

type DrawService interface {
	GeneratePots(ctx context.Context, tournamentID int) ([]*models.Pot, error)
	GetPots(ctx context.Context, tournamentID int) ([]*models.Pot, error)
	InitializeGroups(ctx context.Context, tournamentID int) ([]*models.Group, error)
	DrawAll(ctx context.Context, tournamentID int) ([]*models.Group, error)
	DrawPot(ctx context.Context, tournamentID, potNumber int) ([]*models.Group, error)
	DrawTeam(ctx context.Context, tournamentID, teamID int, groupLetter string) ([]*models.Group, error)
	ClearDraw(ctx context.Context, tournamentID int) ([]*models.Group, error)
	GetBoard(ctx context.Context, tournamentID int) (*DrawBoard, error)
}

type drawService struct {
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	worldRepo      repositories.WorldRepository
	potRepo        repositories.PotRepository
	groupRepo      repositories.GroupRepository
	hub            *simulation.Hub
	locker         *TournamentLocker
	logger         *slog.Logger
}

func NewDrawService(
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	worldRepo repositories.WorldRepository,
	potRepo repositories.PotRepository,
	groupRepo repositories.GroupRepository,
	hub *simulation.Hub,
	locker *TournamentLocker,
	logger *slog.Logger,
) DrawService {
	return &drawService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		worldRepo:      worldRepo,
		potRepo:        potRepo,
		groupRepo:      groupRepo,
		hub:            hub,
		locker:         locker,
		logger:         logger,
	}
}

// newRNG - некриптографический генератор, засеваемый на каждый вызов.
// Воспроизводимость жеребьёвки не требуется.
func newRNG() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// GeneratePots пересоздаёт посевные корзины целиком. Отсутствие команд не
// ошибка: четыре пустых корзины позволяют отрисовать пустой экран жеребьёвки.
func (s *drawService) GeneratePots(ctx context.Context, tournamentID int) ([]*models.Pot, error) {
	unlock := s.locker.Lock(tournamentID)
	defer unlock()

	tournament, err := s.getTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, err
	}

	overrides, err := s.rankingOverrides(ctx, tournament)
	if err != nil {
		return nil, err
	}

	allocated := simulation.AllocatePots(teams, tournament.HostCountryCode, overrides)
	pots := make([]*models.Pot, 0, simulation.PotCount)
	for i, teamIDs := range allocated {
		pots = append(pots, &models.Pot{
			TournamentID: tournamentID,
			Number:       i + 1,
			TeamIDs:      teamIDs,
		})
	}

	if err := s.potRepo.Replace(ctx, tournamentID, pots); err != nil {
		return nil, fmt.Errorf("failed to persist pots: %w", err)
	}
	populatePotTeams(pots, teamsByID(teams))

	s.logger.Info("pots generated",
		slog.Int("tournament_id", tournamentID),
		slog.Int("teams", len(teams)))
	s.hub.BroadcastToRoom(simulation.TournamentRoom(tournamentID), simulation.EventPotsGenerated, pots)
	return pots, nil
}

func (s *drawService) GetPots(ctx context.Context, tournamentID int) ([]*models.Pot, error) {
	if _, err := s.getTournament(ctx, tournamentID); err != nil {
		return nil, err
	}
	pots, err := s.potRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, err
	}
	teams, err := s.teamRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, err
	}
	populatePotTeams(pots, teamsByID(teams))
	return pots, nil
}

func (s *drawService) InitializeGroups(ctx context.Context, tournamentID int) ([]*models.Group, error) {
	unlock := s.locker.Lock(tournamentID)
	defer unlock()

	if _, err := s.getTournament(ctx, tournamentID); err != nil {
		return nil, err
	}
	if err := s.groupRepo.EnsureForTournament(ctx, tournamentID); err != nil {
		return nil, err
	}
	return s.loadGroups(ctx, tournamentID)
}

// DrawAll проводит полную жеребьёвку: корзины в порядке номеров, группы
// очищаются перед раскладкой.
func (s *drawService) DrawAll(ctx context.Context, tournamentID int) ([]*models.Group, error) {
	unlock := s.locker.Lock(tournamentID)
	defer unlock()

	if _, err := s.getTournament(ctx, tournamentID); err != nil {
		return nil, err
	}

	pots, err := s.potRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, err
	}
	if len(pots) == 0 {
		return nil, ErrNoPotsGenerated
	}

	if err := s.groupRepo.EnsureForTournament(ctx, tournamentID); err != nil {
		return nil, err
	}
	if err := s.groupRepo.ClearAll(ctx, tournamentID); err != nil {
		return nil, err
	}
	groups, err := s.groupRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, err
	}
	hostID := hostTeamID(teams)

	rng := newRNG()
	for _, pot := range pots {
		if err := s.drawPotIntoGroups(ctx, rng, pot, hostID, groups); err != nil {
			return nil, err
		}
	}

	populateGroupTeams(groups, teamsByID(teams))
	s.logger.Info("full draw completed", slog.Int("tournament_id", tournamentID))
	s.hub.BroadcastToRoom(simulation.TournamentRoom(tournamentID), simulation.EventDrawUpdated, groups)
	return groups, nil
}

// DrawPot проводит жеребьёвку одной корзины (инкрементальный вариант).
func (s *drawService) DrawPot(ctx context.Context, tournamentID, potNumber int) ([]*models.Group, error) {
	if potNumber < 1 || potNumber > simulation.PotCount {
		return nil, ErrInvalidPotNumber
	}

	unlock := s.locker.Lock(tournamentID)
	defer unlock()

	if _, err := s.getTournament(ctx, tournamentID); err != nil {
		return nil, err
	}

	pots, err := s.potRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, err
	}
	if len(pots) == 0 {
		return nil, ErrNoPotsGenerated
	}
	var pot *models.Pot
	for _, p := range pots {
		if p.Number == potNumber {
			pot = p
			break
		}
	}
	if pot == nil {
		return nil, ErrNoPotsGenerated
	}

	if err := s.groupRepo.EnsureForTournament(ctx, tournamentID); err != nil {
		return nil, err
	}
	groups, err := s.groupRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, err
	}

	assigned := assignedTeamIDs(groups)
	for _, teamID := range pot.TeamIDs {
		if assigned[teamID] {
			return nil, fmt.Errorf("%w: pot %d", ErrPotAlreadyDrawn, potNumber)
		}
	}

	teams, err := s.teamRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, err
	}

	if err := s.drawPotIntoGroups(ctx, newRNG(), pot, hostTeamID(teams), groups); err != nil {
		return nil, err
	}

	populateGroupTeams(groups, teamsByID(teams))
	s.hub.BroadcastToRoom(simulation.TournamentRoom(tournamentID), simulation.EventDrawUpdated, groups)
	return groups, nil
}

// DrawTeam - ручное размещение команды. Вставка в конец, без случайности:
// это явное действие пользователя.
func (s *drawService) DrawTeam(ctx context.Context, tournamentID, teamID int, groupLetter string) ([]*models.Group, error) {
	unlock := s.locker.Lock(tournamentID)
	defer unlock()

	if _, err := s.getTournament(ctx, tournamentID); err != nil {
		return nil, err
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	if team.TournamentID != tournamentID {
		return nil, ErrTeamNotFound
	}

	groups, err := s.groupRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, ErrGroupsNotInitialized
	}
	if assignedTeamIDs(groups)[teamID] {
		return nil, fmt.Errorf("%w: team %s", ErrTeamAlreadyDrawn, team.CountryCode)
	}

	var target *models.Group
	for _, group := range groups {
		if group.Letter == groupLetter {
			target = group
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("%w: group %q", ErrGroupNotFound, groupLetter)
	}
	if len(target.TeamIDs) >= models.GroupCapacity {
		return nil, fmt.Errorf("%w: group %s", ErrGroupFull, target.Letter)
	}

	target.TeamIDs = append(target.TeamIDs, teamID)
	target.IsComplete = len(target.TeamIDs) == models.GroupCapacity
	if err := s.groupRepo.UpdateMembers(ctx, nil, target.ID, target.TeamIDs, target.IsComplete); err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, err
	}
	populateGroupTeams(groups, teamsByID(teams))
	s.hub.BroadcastToRoom(simulation.TournamentRoom(tournamentID), simulation.EventDrawUpdated, groups)
	return groups, nil
}

// ClearDraw опустошает все группы, не трогая сами записи групп.
func (s *drawService) ClearDraw(ctx context.Context, tournamentID int) ([]*models.Group, error) {
	unlock := s.locker.Lock(tournamentID)
	defer unlock()

	if _, err := s.getTournament(ctx, tournamentID); err != nil {
		return nil, err
	}
	if err := s.groupRepo.ClearAll(ctx, tournamentID); err != nil {
		return nil, err
	}
	groups, err := s.loadGroups(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	s.hub.BroadcastToRoom(simulation.TournamentRoom(tournamentID), simulation.EventDrawCleared, groups)
	return groups, nil
}

// GetBoard собирает корзины, группы и команды параллельно.
func (s *drawService) GetBoard(ctx context.Context, tournamentID int) (*DrawBoard, error) {
	if _, err := s.getTournament(ctx, tournamentID); err != nil {
		return nil, err
	}

	board := &DrawBoard{}
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		pots, err := s.potRepo.ListByTournament(gCtx, nil, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to load pots: %w", err)
		}
		board.Pots = pots
		return nil
	})
	g.Go(func() error {
		groups, err := s.groupRepo.ListByTournament(gCtx, nil, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to load groups: %w", err)
		}
		board.Groups = groups
		return nil
	})
	g.Go(func() error {
		teams, err := s.teamRepo.ListByTournament(gCtx, nil, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to load teams: %w", err)
		}
		board.Teams = teams
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	byID := teamsByID(board.Teams)
	populatePotTeams(board.Pots, byID)
	populateGroupTeams(board.Groups, byID)
	return board, nil
}

// drawPotIntoGroups раскладывает одну корзину по плану. Каждое размещение -
// отдельная запись состава группы: читаем текущих участников, вклиниваем
// команду на случайную позицию, пишем обратно.
func (s *drawService) drawPotIntoGroups(ctx context.Context, rng *rand.Rand, pot *models.Pot, hostID int, groups []*models.Group) error {
	plan := simulation.PlanPotDraw(rng, pot.Number, pot.TeamIDs, hostID)
	for _, placement := range plan {
		if placement.Group >= len(groups) {
			return fmt.Errorf("%w: index %d", ErrGroupNotFound, placement.Group)
		}
		group := groups[placement.Group]
		if len(group.TeamIDs) >= models.GroupCapacity {
			return fmt.Errorf("%w: group %s", ErrGroupFull, group.Letter)
		}

		idx := simulation.RandomInsertIndex(rng, len(group.TeamIDs))
		group.TeamIDs = simulation.SpliceAt(group.TeamIDs, placement.TeamID, idx)
		group.IsComplete = len(group.TeamIDs) == models.GroupCapacity

		if err := s.groupRepo.UpdateMembers(ctx, nil, group.ID, group.TeamIDs, group.IsComplete); err != nil {
			return fmt.Errorf("failed to place team %d into group %s: %w", placement.TeamID, group.Letter, err)
		}
	}
	return nil
}

func (s *drawService) loadGroups(ctx context.Context, tournamentID int) ([]*models.Group, error) {
	groups, err := s.groupRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, err
	}
	teams, err := s.teamRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, err
	}
	populateGroupTeams(groups, teamsByID(teams))
	return groups, nil
}

func (s *drawService) getTournament(ctx context.Context, tournamentID int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return tournament, nil
}

func (s *drawService) rankingOverrides(ctx context.Context, tournament *models.Tournament) (map[string]int, error) {
	if tournament.WorldID == nil {
		return nil, nil
	}
	world, err := s.worldRepo.GetByID(ctx, *tournament.WorldID)
	if err != nil {
		if errors.Is(err, repositories.ErrWorldNotFound) {
			// Мир мог быть удалён, падать из-за этого не нужно:
			// посев продолжится по глобальным рейтингам.
			return nil, nil
		}
		return nil, err
	}
	return simulation.RankingOverrides(world), nil
}

func hostTeamID(teams []models.Team) int {
	for _, team := range teams {
		if team.IsHost {
			return team.ID
		}
	}
	return 0
}
