package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/worldcup-system/models"
	"github.com/lib/pq"
)

var (
	ErrTeamNotFound        = errors.New("team not found")
	ErrTeamCountryConflict = errors.New("country is already entered in this tournament")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.Team, error)
	Delete(ctx context.Context, id int) error
	CountByTournament(ctx context.Context, tournamentID int) (int, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (tournament_id, country_code, name, ranking, is_host)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		team.TournamentID,
		team.CountryCode,
		team.Name,
		team.Ranking,
		team.IsHost,
	).Scan(&team.ID, &team.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			if pqErr.Constraint == "teams_tournament_id_country_code_key" {
				return ErrTeamCountryConflict
			}
		}
		return err
	}
	return nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `
		SELECT id, tournament_id, country_code, name, ranking, is_host, created_at
		FROM teams
		WHERE id = $1`

	var team models.Team
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&team.ID, &team.TournamentID, &team.CountryCode,
		&team.Name, &team.Ranking, &team.IsHost, &team.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to scan team: %w", err)
	}
	return &team, nil
}

func (r *postgresTeamRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.Team, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, tournament_id, country_code, name, ranking, is_host, created_at
		FROM teams
		WHERE tournament_id = $1
		ORDER BY id`

	rows, err := executor.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		var team models.Team
		if err := rows.Scan(
			&team.ID, &team.TournamentID, &team.CountryCode,
			&team.Name, &team.Ranking, &team.IsHost, &team.CreatedAt,
		); err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

func (r *postgresTeamRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) CountByTournament(ctx context.Context, tournamentID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM teams WHERE tournament_id = $1`, tournamentID).Scan(&count)
	return count, err
}
