package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/worldcup-system/models"
)

var ErrStandingNotFound = errors.New("standing not found")

type StandingRepository interface {
	BatchCreate(ctx context.Context, exec SQLExecutor, standings []*models.Standing) error
	GetByTeam(ctx context.Context, exec SQLExecutor, tournamentID, teamID int) (*models.Standing, error)
	ListByGroup(ctx context.Context, exec SQLExecutor, groupID int) ([]*models.Standing, error)
	// ListByTournament возвращает таблицы, отсортированные по букве группы,
	// затем по позиции.
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]*models.Standing, error)
	Update(ctx context.Context, exec SQLExecutor, standing *models.Standing) error
	DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) error
}

type postgresStandingRepository struct {
	db *sql.DB
}

func NewPostgresStandingRepository(db *sql.DB) StandingRepository {
	return &postgresStandingRepository{db: db}
}

func (r *postgresStandingRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresStandingRepository) BatchCreate(ctx context.Context, exec SQLExecutor, standings []*models.Standing) error {
	if len(standings) == 0 {
		return nil
	}
	executor := r.getExecutor(exec)

	query := `
		INSERT INTO standings
		    (tournament_id, group_id, team_id, played, won, drawn, lost,
		     goals_for, goals_against, goal_difference, points, position, qualified_for, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id`
	for _, s := range standings {
		if s.UpdatedAt.IsZero() {
			s.UpdatedAt = time.Now()
		}
		err := executor.QueryRowContext(ctx, query,
			s.TournamentID, s.GroupID, s.TeamID, s.Played, s.Won, s.Drawn, s.Lost,
			s.GoalsFor, s.GoalsAgainst, s.GoalDifference, s.Points, s.Position,
			s.QualifiedFor, s.UpdatedAt,
		).Scan(&s.ID)
		if err != nil {
			return fmt.Errorf("BatchCreate failed for team %d: %w", s.TeamID, err)
		}
	}
	return nil
}

func (r *postgresStandingRepository) scanStanding(rowScanner interface{ Scan(...interface{}) error }) (*models.Standing, error) {
	var s models.Standing
	err := rowScanner.Scan(
		&s.ID, &s.TournamentID, &s.GroupID, &s.TeamID, &s.Played, &s.Won, &s.Drawn, &s.Lost,
		&s.GoalsFor, &s.GoalsAgainst, &s.GoalDifference, &s.Points, &s.Position,
		&s.QualifiedFor, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStandingNotFound
		}
		return nil, err
	}
	return &s, nil
}

const standingColumns = `
	id, tournament_id, group_id, team_id, played, won, drawn, lost,
	goals_for, goals_against, goal_difference, points, position, qualified_for, updated_at`

func (r *postgresStandingRepository) GetByTeam(ctx context.Context, exec SQLExecutor, tournamentID, teamID int) (*models.Standing, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + standingColumns + `
		FROM standings
		WHERE tournament_id = $1 AND team_id = $2`
	return r.scanStanding(executor.QueryRowContext(ctx, query, tournamentID, teamID))
}

func (r *postgresStandingRepository) ListByGroup(ctx context.Context, exec SQLExecutor, groupID int) ([]*models.Standing, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + standingColumns + `
		FROM standings
		WHERE group_id = $1
		ORDER BY position, team_id`
	return r.queryStandings(ctx, executor, query, groupID)
}

func (r *postgresStandingRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]*models.Standing, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT s.id, s.tournament_id, s.group_id, s.team_id, s.played, s.won, s.drawn, s.lost,
		       s.goals_for, s.goals_against, s.goal_difference, s.points, s.position, s.qualified_for, s.updated_at
		FROM standings s
		JOIN groups g ON s.group_id = g.id
		WHERE s.tournament_id = $1
		ORDER BY g.letter, s.position, s.team_id`
	return r.queryStandings(ctx, executor, query, tournamentID)
}

func (r *postgresStandingRepository) queryStandings(ctx context.Context, executor SQLExecutor, query string, args ...interface{}) ([]*models.Standing, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	standings := make([]*models.Standing, 0)
	for rows.Next() {
		s, errScan := r.scanStanding(rows)
		if errScan != nil {
			return nil, errScan
		}
		standings = append(standings, s)
	}
	return standings, rows.Err()
}

func (r *postgresStandingRepository) Update(ctx context.Context, exec SQLExecutor, standing *models.Standing) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE standings SET
			played = $1, won = $2, drawn = $3, lost = $4,
			goals_for = $5, goals_against = $6, goal_difference = $7,
			points = $8, position = $9, qualified_for = $10, updated_at = NOW()
		WHERE id = $11`
	result, err := executor.ExecContext(ctx, query,
		standing.Played, standing.Won, standing.Drawn, standing.Lost,
		standing.GoalsFor, standing.GoalsAgainst, standing.GoalDifference,
		standing.Points, standing.Position, standing.QualifiedFor,
		standing.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrStandingNotFound)
}

func (r *postgresStandingRepository) DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) error {
	executor := r.getExecutor(exec)
	_, err := executor.ExecContext(ctx, `DELETE FROM standings WHERE tournament_id = $1`, tournamentID)
	return err
}
