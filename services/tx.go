package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dosada05/worldcup-system/repositories"
)

// TxRunner исполняет функцию внутри одной транзакции, выдавая ей
// SQLExecutor для передачи в репозитории.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error
}

type sqlTxRunner struct {
	db *sql.DB
}

func NewSQLTxRunner(db *sql.DB) TxRunner {
	return &sqlTxRunner{db: db}
}

func (r *sqlTxRunner) WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
