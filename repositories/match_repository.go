package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dosada05/worldcup-system/models"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository interface {
	BatchCreate(ctx context.Context, exec SQLExecutor, matches []*models.Match) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error)
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int, matchday *int, status *models.MatchStatus) ([]*models.Match, error)
	// Complete переводит матч в completed и фиксирует счёт. Возвращает
	// ErrMatchNotFound, если матч уже завершён - переход односторонний.
	Complete(ctx context.Context, exec SQLExecutor, matchID, homeScore, awayScore int, simulatedAt time.Time) error
	DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresMatchRepository) BatchCreate(ctx context.Context, exec SQLExecutor, matches []*models.Match) error {
	if len(matches) == 0 {
		return nil
	}
	executor := r.getExecutor(exec)

	query := `
		INSERT INTO matches (tournament_id, group_id, matchday, home_team_id, away_team_id, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	for _, match := range matches {
		match.Status = models.MatchStatusScheduled
		err := executor.QueryRowContext(ctx, query,
			match.TournamentID, match.GroupID, match.Matchday,
			match.HomeTeamID, match.AwayTeamID, match.Status,
		).Scan(&match.ID)
		if err != nil {
			return fmt.Errorf("BatchCreate failed for matchday %d pairing %d-%d: %w",
				match.Matchday, match.HomeTeamID, match.AwayTeamID, err)
		}
	}
	return nil
}

func (r *postgresMatchRepository) scanMatch(rowScanner interface{ Scan(...interface{}) error }) (*models.Match, error) {
	var m models.Match
	err := rowScanner.Scan(
		&m.ID, &m.TournamentID, &m.GroupID, &m.Matchday,
		&m.HomeTeamID, &m.AwayTeamID, &m.HomeScore, &m.AwayScore,
		&m.Status, &m.SimulatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, tournament_id, group_id, matchday, home_team_id, away_team_id,
		       home_score, away_score, status, simulated_at
		FROM matches
		WHERE id = $1`
	return r.scanMatch(executor.QueryRowContext(ctx, query, id))
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int, matchday *int, status *models.MatchStatus) ([]*models.Match, error) {
	executor := r.getExecutor(exec)

	queryBuilder := strings.Builder{}
	queryBuilder.WriteString(`
		SELECT id, tournament_id, group_id, matchday, home_team_id, away_team_id,
		       home_score, away_score, status, simulated_at
		FROM matches
		WHERE tournament_id = $1`)
	args := []interface{}{tournamentID}
	if matchday != nil {
		args = append(args, *matchday)
		queryBuilder.WriteString(fmt.Sprintf(" AND matchday = $%d", len(args)))
	}
	if status != nil {
		args = append(args, *status)
		queryBuilder.WriteString(fmt.Sprintf(" AND status = $%d", len(args)))
	}
	queryBuilder.WriteString(" ORDER BY group_id, matchday, id")

	rows, err := executor.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		m, errScan := r.scanMatch(rows)
		if errScan != nil {
			return nil, errScan
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (r *postgresMatchRepository) Complete(ctx context.Context, exec SQLExecutor, matchID, homeScore, awayScore int, simulatedAt time.Time) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `
		UPDATE matches
		SET home_score = $1, away_score = $2, status = $3, simulated_at = $4
		WHERE id = $5 AND status = $6`,
		homeScore, awayScore, models.MatchStatusCompleted, simulatedAt,
		matchID, models.MatchStatusScheduled,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) error {
	executor := r.getExecutor(exec)
	_, err := executor.ExecContext(ctx, `DELETE FROM matches WHERE tournament_id = $1`, tournamentID)
	return err
}
