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
	ErrTournamentNotFound     = errors.New("tournament not found")
	ErrTournamentNameConflict = errors.New("tournament name conflict")
	ErrTournamentWorldInvalid = errors.New("tournament world conflict or invalid")
)

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Tournament, error)
	ListByOwner(ctx context.Context, ownerID int) ([]*models.Tournament, error)
	UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.TournamentStatus) error
	UpdateLogoKey(ctx context.Context, id int, key *string) error
	Delete(ctx context.Context, id int) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTournamentRepository) Create(ctx context.Context, tournament *models.Tournament) error {
	query := `
		INSERT INTO tournaments (name, owner_id, world_id, host_country_code, max_teams, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		tournament.Name,
		tournament.OwnerID,
		tournament.WorldID,
		tournament.HostCountryCode,
		tournament.MaxTeams,
		tournament.Status,
	).Scan(&tournament.ID, &tournament.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505": // unique_violation
				if pqErr.Constraint == "tournaments_owner_id_name_key" {
					return ErrTournamentNameConflict
				}
			case "23503": // foreign_key_violation
				if pqErr.Constraint == "tournaments_world_id_fkey" {
					return ErrTournamentWorldInvalid
				}
			}
		}
		return err
	}
	return nil
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Tournament, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, name, owner_id, world_id, host_country_code, max_teams, status, logo_key, created_at
		FROM tournaments
		WHERE id = $1`

	var t models.Tournament
	err := executor.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.OwnerID, &t.WorldID, &t.HostCountryCode,
		&t.MaxTeams, &t.Status, &t.LogoKey, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to scan tournament: %w", err)
	}
	return &t, nil
}

func (r *postgresTournamentRepository) ListByOwner(ctx context.Context, ownerID int) ([]*models.Tournament, error) {
	query := `
		SELECT id, name, owner_id, world_id, host_country_code, max_teams, status, logo_key, created_at
		FROM tournaments
		WHERE owner_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]*models.Tournament, 0)
	for rows.Next() {
		var t models.Tournament
		if err := rows.Scan(
			&t.ID, &t.Name, &t.OwnerID, &t.WorldID, &t.HostCountryCode,
			&t.MaxTeams, &t.Status, &t.LogoKey, &t.CreatedAt,
		); err != nil {
			return nil, err
		}
		tournaments = append(tournaments, &t)
	}
	return tournaments, rows.Err()
}

func (r *postgresTournamentRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.TournamentStatus) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `UPDATE tournaments SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) UpdateLogoKey(ctx context.Context, id int, key *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE tournaments SET logo_key = $1 WHERE id = $2`, key, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, id int) error {
	// Команды, корзины, группы, матчи и таблицы удаляются каскадом по FK.
	result, err := r.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}
