package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/worldcup-system/models"
	"github.com/lib/pq"
)

var ErrGroupNotFound = errors.New("group not found")

type GroupRepository interface {
	// EnsureForTournament создаёт восемь пустых групп A-H, если их ещё нет.
	EnsureForTournament(ctx context.Context, tournamentID int) error
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]*models.Group, error)
	GetByLetter(ctx context.Context, exec SQLExecutor, tournamentID int, letter string) (*models.Group, error)
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Group, error)
	// UpdateMembers перезаписывает состав и флаг заполненности одной группы -
	// единица атомарности жеребьёвки (одна вставка = одна запись).
	UpdateMembers(ctx context.Context, exec SQLExecutor, groupID int, teamIDs []int, isComplete bool) error
	// ClearAll опустошает все группы турнира, не удаляя сами записи.
	ClearAll(ctx context.Context, tournamentID int) error
}

type postgresGroupRepository struct {
	db *sql.DB
}

func NewPostgresGroupRepository(db *sql.DB) GroupRepository {
	return &postgresGroupRepository{db: db}
}

func (r *postgresGroupRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresGroupRepository) EnsureForTournament(ctx context.Context, tournamentID int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("EnsureForTournament failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO groups (tournament_id, letter, team_ids, is_complete)
		VALUES ($1, $2, $3, FALSE)
		ON CONFLICT (tournament_id, letter) DO NOTHING`)
	if err != nil {
		return fmt.Errorf("EnsureForTournament failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, letter := range models.GroupLetters {
		if _, err := stmt.ExecContext(ctx, tournamentID, letter, pq.Array([]int{})); err != nil {
			return fmt.Errorf("EnsureForTournament failed for group %s: %w", letter, err)
		}
	}
	return tx.Commit()
}

func (r *postgresGroupRepository) scanGroup(rowScanner interface{ Scan(...interface{}) error }) (*models.Group, error) {
	var g models.Group
	var teamIDs pq.Int64Array
	err := rowScanner.Scan(&g.ID, &g.TournamentID, &g.Letter, &teamIDs, &g.IsComplete)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	g.TeamIDs = make([]int, len(teamIDs))
	for i, id := range teamIDs {
		g.TeamIDs[i] = int(id)
	}
	return &g, nil
}

func (r *postgresGroupRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]*models.Group, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, tournament_id, letter, team_ids, is_complete
		FROM groups
		WHERE tournament_id = $1
		ORDER BY letter`

	rows, err := executor.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := make([]*models.Group, 0, len(models.GroupLetters))
	for rows.Next() {
		g, errScan := r.scanGroup(rows)
		if errScan != nil {
			return nil, errScan
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (r *postgresGroupRepository) GetByLetter(ctx context.Context, exec SQLExecutor, tournamentID int, letter string) (*models.Group, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, tournament_id, letter, team_ids, is_complete
		FROM groups
		WHERE tournament_id = $1 AND letter = $2`
	return r.scanGroup(executor.QueryRowContext(ctx, query, tournamentID, letter))
}

func (r *postgresGroupRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Group, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, tournament_id, letter, team_ids, is_complete
		FROM groups
		WHERE id = $1`
	return r.scanGroup(executor.QueryRowContext(ctx, query, id))
}

func (r *postgresGroupRepository) UpdateMembers(ctx context.Context, exec SQLExecutor, groupID int, teamIDs []int, isComplete bool) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx,
		`UPDATE groups SET team_ids = $1, is_complete = $2 WHERE id = $3`,
		pq.Array(teamIDs), isComplete, groupID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGroupNotFound)
}

func (r *postgresGroupRepository) ClearAll(ctx context.Context, tournamentID int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE groups SET team_ids = $1, is_complete = FALSE WHERE tournament_id = $2`,
		pq.Array([]int{}), tournamentID,
	)
	return err
}
