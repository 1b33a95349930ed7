package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Queryer is implemented by both *sqlx.DB and *sqlx.Tx, so repositories can
// be bound to a transaction with the same code.
type Queryer = sqlx.ExtContext

// get loads a single row into dest, turning sql.ErrNoRows into ErrNotFound.
func get(ctx context.Context, q Queryer, dest interface{}, what string, query string, args ...interface{}) error {
	if err := sqlx.GetContext(ctx, q, dest, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%s: %w", what, ErrNotFound)
		}
		return fmt.Errorf("failed to get %s: %w", what, err)
	}
	return nil
}

// insert runs a named INSERT and returns the new row id.
func insert(ctx context.Context, q Queryer, what string, query string, arg interface{}) (int64, error) {
	result, err := sqlx.NamedExecContext(ctx, q, query, arg)
	if err != nil {
		if isDuplicate(err) {
			return 0, fmt.Errorf("%s already exists: %w", what, ErrConflict)
		}
		return 0, fmt.Errorf("failed to create %s: %w", what, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get id of new %s: %w", what, err)
	}
	return id, nil
}

// update runs a named UPDATE addressed by :id. When no row changed it tells
// a missing row (ErrNotFound) from a stale revision (ErrConflict). A zero
// revision means the caller did not ask for a revision check.
func update(ctx context.Context, q Queryer, what, table string, id, revision int64, query string, arg interface{}) error {
	result, err := sqlx.NamedExecContext(ctx, q, query, arg)
	if err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("%s: %w", what, ErrConflict)
		}
		return fmt.Errorf("failed to update %s: %w", what, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected > 0 {
		return nil
	}

	var n int
	if err := sqlx.GetContext(ctx, q, &n, fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE id = ?", table), id); err != nil {
		return fmt.Errorf("failed to check %s: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
	}
	if revision == 0 {
		return nil
	}
	return fmt.Errorf("%s %d was modified concurrently: %w", what, id, ErrConflict)
}

// exec runs a positional statement addressed to the row id of table.
// MySQL reports unchanged rows as unaffected, so a zero count is checked
// against the table before reporting ErrNotFound.
func exec(ctx context.Context, q Queryer, what, table string, id int64, query string, args ...interface{}) error {
	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", what, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected > 0 {
		return nil
	}
	var n int
	if err := sqlx.GetContext(ctx, q, &n, fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE id = ?", table), id); err != nil {
		return fmt.Errorf("failed to check %s: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
	}
	return nil
}

func selectRows(ctx context.Context, q Queryer, dest interface{}, query string, args ...interface{}) error {
	return sqlx.SelectContext(ctx, q, dest, query, args...)
}
