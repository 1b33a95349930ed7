package data

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

var (
	// ErrNotFound is returned when an identifier does not resolve to a row.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned for slug collisions that cannot be resolved
	// and for updates carrying a stale revision.
	ErrConflict = errors.New("conflict")
)

// StorageError wraps a failed database operation.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// isDuplicate reports whether err is a unique constraint violation.
func isDuplicate(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}
	// SQLite reports "UNIQUE constraint failed: table.column".
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
