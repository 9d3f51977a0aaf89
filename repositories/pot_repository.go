package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/worldcup-system/models"
	"github.com/lib/pq"
)

var ErrPotsNotFound = errors.New("pots not found")

type PotRepository interface {
	// Replace удаляет прежние корзины турнира и записывает новые -
	// генерация корзин всегда деструктивна.
	Replace(ctx context.Context, tournamentID int, pots []*models.Pot) error
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]*models.Pot, error)
	DeleteByTournament(ctx context.Context, tournamentID int) error
}

type postgresPotRepository struct {
	db *sql.DB
}

func NewPostgresPotRepository(db *sql.DB) PotRepository {
	return &postgresPotRepository{db: db}
}

func (r *postgresPotRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresPotRepository) Replace(ctx context.Context, tournamentID int, pots []*models.Pot) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Replace pots failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pots WHERE tournament_id = $1`, tournamentID); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO pots (tournament_id, number, team_ids)
		VALUES ($1, $2, $3)
		RETURNING id`)
	if err != nil {
		return fmt.Errorf("Replace pots failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, pot := range pots {
		if err := stmt.QueryRowContext(ctx, tournamentID, pot.Number, pq.Array(pot.TeamIDs)).Scan(&pot.ID); err != nil {
			return fmt.Errorf("Replace pots failed for pot %d: %w", pot.Number, err)
		}
		pot.TournamentID = tournamentID
	}
	return tx.Commit()
}

func (r *postgresPotRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]*models.Pot, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, tournament_id, number, team_ids
		FROM pots
		WHERE tournament_id = $1
		ORDER BY number`

	rows, err := executor.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pots := make([]*models.Pot, 0, 4)
	for rows.Next() {
		var pot models.Pot
		var teamIDs pq.Int64Array
		if err := rows.Scan(&pot.ID, &pot.TournamentID, &pot.Number, &teamIDs); err != nil {
			return nil, err
		}
		pot.TeamIDs = make([]int, len(teamIDs))
		for i, id := range teamIDs {
			pot.TeamIDs[i] = int(id)
		}
		pots = append(pots, &pot)
	}
	return pots, rows.Err()
}

func (r *postgresPotRepository) DeleteByTournament(ctx context.Context, tournamentID int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM pots WHERE tournament_id = $1`, tournamentID)
	return err
}
