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
	ErrWorldNotFound        = errors.New("world not found")
	ErrWorldRankingConflict = errors.New("world already has a ranking for this country")
)

type WorldRepository interface {
	Create(ctx context.Context, world *models.World) error
	GetByID(ctx context.Context, id int) (*models.World, error)
	ListByOwner(ctx context.Context, ownerID int) ([]*models.World, error)
	// ReplaceRankings перезаписывает переопределения рейтингов мира целиком.
	ReplaceRankings(ctx context.Context, worldID int, rankings []models.CountryRanking) error
	ListRankings(ctx context.Context, worldID int) ([]models.CountryRanking, error)
}

type postgresWorldRepository struct {
	db *sql.DB
}

func NewPostgresWorldRepository(db *sql.DB) WorldRepository {
	return &postgresWorldRepository{db: db}
}

func (r *postgresWorldRepository) Create(ctx context.Context, world *models.World) error {
	query := `
		INSERT INTO worlds (owner_id, name)
		VALUES ($1, $2)
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query, world.OwnerID, world.Name).Scan(&world.ID, &world.CreatedAt)
}

func (r *postgresWorldRepository) GetByID(ctx context.Context, id int) (*models.World, error) {
	query := `
		SELECT id, owner_id, name, created_at
		FROM worlds
		WHERE id = $1`
	var world models.World
	err := r.db.QueryRowContext(ctx, query, id).Scan(&world.ID, &world.OwnerID, &world.Name, &world.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWorldNotFound
		}
		return nil, fmt.Errorf("failed to scan world: %w", err)
	}

	rankings, err := r.ListRankings(ctx, world.ID)
	if err != nil {
		return nil, err
	}
	world.CountryRankings = rankings
	return &world, nil
}

func (r *postgresWorldRepository) ListByOwner(ctx context.Context, ownerID int) ([]*models.World, error) {
	query := `
		SELECT id, owner_id, name, created_at
		FROM worlds
		WHERE owner_id = $1
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	worlds := make([]*models.World, 0)
	for rows.Next() {
		var w models.World
		if err := rows.Scan(&w.ID, &w.OwnerID, &w.Name, &w.CreatedAt); err != nil {
			return nil, err
		}
		worlds = append(worlds, &w)
	}
	return worlds, rows.Err()
}

func (r *postgresWorldRepository) ReplaceRankings(ctx context.Context, worldID int, rankings []models.CountryRanking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ReplaceRankings failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM country_rankings WHERE world_id = $1`, worldID); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO country_rankings (world_id, country_code, rank)
		VALUES ($1, $2, $3)`)
	if err != nil {
		return fmt.Errorf("ReplaceRankings failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, ranking := range rankings {
		if _, err := stmt.ExecContext(ctx, worldID, ranking.CountryCode, ranking.Rank); err != nil {
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
				return ErrWorldRankingConflict
			}
			return fmt.Errorf("ReplaceRankings failed for country %s: %w", ranking.CountryCode, err)
		}
	}
	return tx.Commit()
}

func (r *postgresWorldRepository) ListRankings(ctx context.Context, worldID int) ([]models.CountryRanking, error) {
	query := `
		SELECT id, world_id, country_code, rank
		FROM country_rankings
		WHERE world_id = $1
		ORDER BY rank`
	rows, err := r.db.QueryContext(ctx, query, worldID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rankings := make([]models.CountryRanking, 0)
	for rows.Next() {
		var cr models.CountryRanking
		if err := rows.Scan(&cr.ID, &cr.WorldID, &cr.CountryCode, &cr.Rank); err != nil {
			return nil, err
		}
		rankings = append(rankings, cr)
	}
	return rankings, rows.Err()
}
