// Package reconcile deletes uploaded files that no database row refers to.
package reconcile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"
	"wonders-cms/internal/logger"

	"github.com/jmoiron/sqlx"
)

var (
	// ErrAlreadyRunning is returned when a run is requested while another
	// one is in progress.
	ErrAlreadyRunning = errors.New("reconcile already running")
	// ErrNoReferences aborts a run whose snapshot found no file references.
	// An empty set usually means a wrong database, and sweeping would wipe
	// every upload.
	ErrNoReferences = errors.New("no file references found")
)

// filenamePattern matches upload base names inside any text value.
var filenamePattern = regexp.MustCompile(`(?i)\b[\w-]+\.(jpg|jpeg|png|webp|gif|mp4|mov|webm)\b`)

// Report describes one reconcile run.
type Report struct {
	Started    time.Time `json:"started"`
	Finished   time.Time `json:"finished"`
	Referenced int       `json:"referenced"`
	// Deleted lists removed files relative to the upload root.
	Deleted []string `json:"deleted"`
	Failed  []string `json:"failed,omitempty"`
	Aborted bool     `json:"aborted"`
}

// Reconciler compares the upload tree with the names referenced in the database.
//
// Files are matched by base name only: an upload is kept when its name
// appears anywhere in the database, whatever its directory.
type Reconciler struct {
	db   *sqlx.DB
	root string
	log  logger.Logger
	mu   sync.Mutex
	now  func() time.Time
}

// New creates a Reconciler for the upload tree at root.
func New(db *sqlx.DB, root string, log logger.Logger) *Reconciler {
	return &Reconciler{
		db:   db,
		root: root,
		log:  log.With(map[string]interface{}{"component": "reconcile"}),
		now:  time.Now,
	}
}

// Run takes a snapshot of the referenced names and deletes every regular
// file below the root whose base name is not in it.
func (r *Reconciler) Run(ctx context.Context) (*Report, error) {
	if !r.mu.TryLock() {
		return nil, ErrAlreadyRunning
	}
	defer r.mu.Unlock()

	report := &Report{Started: r.now(), Deleted: []string{}}
	referenced, err := r.References(ctx)
	if err != nil {
		return nil, err
	}
	report.Referenced = len(referenced)
	r.log.Info(fmt.Sprintf("Collected %d referenced file names", len(referenced)))

	if len(referenced) == 0 {
		report.Aborted = true
		report.Finished = r.now()
		r.log.Warn("No file references found, cleanup aborted")
		return report, ErrNoReferences
	}

	err = filepath.WalkDir(r.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == r.root {
				return fs.SkipDir
			}
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if _, ok := referenced[strings.ToLower(d.Name())]; ok {
			return nil
		}

		rel, _ := filepath.Rel(r.root, path)
		if err := os.Remove(path); err != nil {
			r.log.Error(err, "Failed to delete orphan "+rel)
			report.Failed = append(report.Failed, rel)
			return nil
		}
		r.log.Info("Deleted orphan " + rel)
		report.Deleted = append(report.Deleted, filepath.ToSlash(rel))
		return nil
	})
	report.Finished = r.now()
	if err != nil {
		return report, fmt.Errorf("failed to walk %s: %w", r.root, err)
	}
	r.log.Info(fmt.Sprintf("Cleanup finished, %d files deleted", len(report.Deleted)))
	return report, nil
}

// References returns the lowercased file names found in every text value of
// every table, read inside one read-only transaction.
func (r *Reconciler) References(ctx context.Context) (map[string]struct{}, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to begin snapshot: %w", err)
	}
	defer tx.Rollback()

	tables, err := listTables(ctx, tx)
	if err != nil {
		return nil, err
	}

	referenced := make(map[string]struct{})
	for _, table := range tables {
		if err := collect(ctx, tx, table, referenced); err != nil {
			return nil, err
		}
	}
	return referenced, nil
}

func listTables(ctx context.Context, tx *sqlx.Tx) ([]string, error) {
	var query string
	switch tx.DriverName() {
	case "mysql":
		query = `SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_SCHEMA = DATABASE() AND TABLE_TYPE = 'BASE TABLE'`
	case "sqlite3", "sqlite":
		query = `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`
	default:
		return nil, fmt.Errorf("unsupported driver %q", tx.DriverName())
	}
	var tables []string
	if err := tx.SelectContext(ctx, &tables, query); err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	return tables, nil
}

func collect(ctx context.Context, tx *sqlx.Tx, table string, into map[string]struct{}) error {
	rows, err := tx.QueryxContext(ctx, "SELECT * FROM `"+strings.ReplaceAll(table, "`", "")+"`")
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", table, err)
		}
		for _, v := range values {
			var text string
			switch v := v.(type) {
			case string:
				text = v
			case []byte:
				text = string(v)
			default:
				continue
			}
			for _, m := range filenamePattern.FindAllString(text, -1) {
				into[strings.ToLower(m)] = struct{}{}
			}
		}
	}
	return rows.Err()
}
