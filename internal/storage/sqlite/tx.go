package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// withTx runs fn inside a transaction and commits when fn returns nil.
//
// The deferred Rollback runs on every exit path: after an error, after a
// panic unwinding through fn, and after a successful Commit (where it is a
// no-op returning sql.ErrTxDone). Either way the connection goes back to the
// pool in its default auto-commit mode before withTx returns.
func (s *SQLiteStore) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
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
