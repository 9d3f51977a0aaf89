package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Dosada05/worldcup-system/models"
	"github.com/Dosada05/worldcup-system/repositories"
	"github.com/Dosada05/worldcup-system/storage"
)

const defaultMaxTeams = 32

type TournamentService interface {
	Create(ctx context.Context, ownerID int, input CreateTournamentInput) (*models.Tournament, error)
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	ListByOwner(ctx context.Context, ownerID int) ([]*models.Tournament, error)
	Delete(ctx context.Context, id, callerID int) error
	UpdateStatus(ctx context.Context, id, callerID int, status models.TournamentStatus) (*models.Tournament, error)
	UploadLogo(ctx context.Context, id, callerID int, contentType string, reader io.Reader) (*models.Tournament, error)

	AddTeam(ctx context.Context, tournamentID, callerID int, countryCode string) (*models.Team, error)
	AutoFillTeams(ctx context.Context, tournamentID, callerID int) ([]models.Team, error)
	ListTeams(ctx context.Context, tournamentID int) ([]models.Team, error)
	RemoveTeam(ctx context.Context, tournamentID, teamID, callerID int) error
}

type CreateTournamentInput struct {
	Name            string `json:"name"`
	HostCountryCode string `json:"host_country_code"`
	MaxTeams        int    `json:"max_teams"`
	WorldID         *int   `json:"world_id"`
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	worldRepo      repositories.WorldRepository
	uploader       storage.FileUploader
	logger         *slog.Logger
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	worldRepo repositories.WorldRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		worldRepo:      worldRepo,
		uploader:       uploader,
		logger:         logger,
	}
}

func (s *tournamentService) Create(ctx context.Context, ownerID int, input CreateTournamentInput) (*models.Tournament, error) {
	if input.Name == "" {
		return nil, ErrTournamentNameRequired
	}
	hostCountry, ok := models.FindCountry(input.HostCountryCode)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCountryCode, input.HostCountryCode)
	}
	maxTeams := input.MaxTeams
	if maxTeams <= 0 {
		maxTeams = defaultMaxTeams
	}
	if input.WorldID != nil {
		if _, err := s.worldRepo.GetByID(ctx, *input.WorldID); err != nil {
			if errors.Is(err, repositories.ErrWorldNotFound) {
				return nil, ErrWorldNotFound
			}
			return nil, err
		}
	}

	tournament := &models.Tournament{
		Name:            input.Name,
		OwnerID:         ownerID,
		WorldID:         input.WorldID,
		HostCountryCode: hostCountry.Code,
		MaxTeams:        maxTeams,
		Status:          models.StatusDraft,
	}
	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		return nil, err
	}

	// Хозяйка заявляется сразу при создании турнира.
	host := &models.Team{
		TournamentID: tournament.ID,
		CountryCode:  hostCountry.Code,
		Name:         hostCountry.Name,
		Ranking:      hostCountry.Ranking,
		IsHost:       true,
	}
	if err := s.teamRepo.Create(ctx, host); err != nil {
		return nil, fmt.Errorf("failed to enter host team: %w", err)
	}
	tournament.Teams = []models.Team{*host}

	s.logger.Info("tournament created",
		slog.Int("tournament_id", tournament.ID),
		slog.String("host", hostCountry.Code))
	return tournament, nil
}

func (s *tournamentService) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	teams, err := s.teamRepo.ListByTournament(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	tournament.Teams = teams

	if tournament.WorldID != nil {
		world, err := s.worldRepo.GetByID(ctx, *tournament.WorldID)
		if err == nil {
			tournament.World = world
		} else if !errors.Is(err, repositories.ErrWorldNotFound) {
			return nil, err
		}
	}

	s.populateLogoURL(tournament)
	return tournament, nil
}

func (s *tournamentService) ListByOwner(ctx context.Context, ownerID int) ([]*models.Tournament, error) {
	tournaments, err := s.tournamentRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for _, t := range tournaments {
		s.populateLogoURL(t)
	}
	return tournaments, nil
}

func (s *tournamentService) Delete(ctx context.Context, id, callerID int) error {
	tournament, err := s.tournamentRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return err
	}
	if tournament.OwnerID != callerID {
		return ErrForbiddenOperation
	}
	return s.tournamentRepo.Delete(ctx, id)
}

func (s *tournamentService) UpdateStatus(ctx context.Context, id, callerID int, status models.TournamentStatus) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	if tournament.OwnerID != callerID {
		return nil, ErrForbiddenOperation
	}
	if !isValidStatusTransition(tournament.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, tournament.Status, status)
	}
	if err := s.tournamentRepo.UpdateStatus(ctx, nil, id, status); err != nil {
		return nil, err
	}
	tournament.Status = status
	return tournament, nil
}

func (s *tournamentService) UploadLogo(ctx context.Context, id, callerID int, contentType string, reader io.Reader) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	if tournament.OwnerID != callerID {
		return nil, ErrForbiddenOperation
	}

	key := fmt.Sprintf("tournaments/%d/logo", id)
	result, err := s.uploader.Upload(ctx, key, contentType, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to upload tournament logo: %w", err)
	}
	if err := s.tournamentRepo.UpdateLogoKey(ctx, id, &result.Key); err != nil {
		return nil, err
	}
	tournament.LogoKey = &result.Key
	s.populateLogoURL(tournament)
	return tournament, nil
}

// AddTeam заявляет одну страну. Заявка изменяема только в статусе draft.
func (s *tournamentService) AddTeam(ctx context.Context, tournamentID, callerID int, countryCode string) (*models.Team, error) {
	tournament, err := s.editableTournament(ctx, tournamentID, callerID)
	if err != nil {
		return nil, err
	}

	country, ok := models.FindCountry(countryCode)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCountryCode, countryCode)
	}

	count, err := s.teamRepo.CountByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if count >= tournament.MaxTeams {
		return nil, ErrTournamentFull
	}

	team := &models.Team{
		TournamentID: tournamentID,
		CountryCode:  country.Code,
		Name:         country.Name,
		Ranking:      country.Ranking,
		IsHost:       country.Code == tournament.HostCountryCode,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamCountryConflict) {
			return nil, ErrTeamCountryConflict
		}
		return nil, err
	}
	return team, nil
}

// AutoFillTeams добивает заявку лучшими странами справочника до maxTeams.
func (s *tournamentService) AutoFillTeams(ctx context.Context, tournamentID, callerID int) ([]models.Team, error) {
	tournament, err := s.editableTournament(ctx, tournamentID, callerID)
	if err != nil {
		return nil, err
	}

	existing, err := s.teamRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, err
	}
	entered := make(map[string]bool, len(existing))
	for _, team := range existing {
		entered[team.CountryCode] = true
	}

	for _, country := range models.Countries {
		if len(existing) >= tournament.MaxTeams {
			break
		}
		if entered[country.Code] {
			continue
		}
		team := &models.Team{
			TournamentID: tournamentID,
			CountryCode:  country.Code,
			Name:         country.Name,
			Ranking:      country.Ranking,
			IsHost:       country.Code == tournament.HostCountryCode,
		}
		if err := s.teamRepo.Create(ctx, team); err != nil {
			return nil, fmt.Errorf("autofill failed for %s: %w", country.Code, err)
		}
		existing = append(existing, *team)
		entered[country.Code] = true
	}
	return existing, nil
}

func (s *tournamentService) ListTeams(ctx context.Context, tournamentID int) ([]models.Team, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return s.teamRepo.ListByTournament(ctx, nil, tournamentID)
}

func (s *tournamentService) RemoveTeam(ctx context.Context, tournamentID, teamID, callerID int) error {
	if _, err := s.editableTournament(ctx, tournamentID, callerID); err != nil {
		return err
	}
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return err
	}
	if team.TournamentID != tournamentID {
		return ErrTeamNotFound
	}
	if team.IsHost {
		return ErrHostCannotBeRemoved
	}
	return s.teamRepo.Delete(ctx, teamID)
}

// editableTournament загружает турнир и проверяет, что заявку ещё можно менять.
func (s *tournamentService) editableTournament(ctx context.Context, tournamentID, callerID int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	if tournament.OwnerID != callerID {
		return nil, ErrForbiddenOperation
	}
	if tournament.Status != models.StatusDraft {
		return nil, ErrTournamentNotDraft
	}
	return tournament, nil
}

func (s *tournamentService) populateLogoURL(t *models.Tournament) {
	if t == nil || t.LogoKey == nil || *t.LogoKey == "" || s.uploader == nil {
		return
	}
	if url := s.uploader.GetPublicURL(*t.LogoKey); url != "" {
		t.LogoURL = &url
	}
}
