package service

import (
	"context"
	"wonders-cms/internal/data"
	"wonders-cms/internal/logger"
	"wonders-cms/internal/slug"
	"wonders-cms/internal/storage"

	"github.com/jmoiron/sqlx"
	"github.com/microcosm-cc/bluemonday"
)

// FileRemover deletes stored uploads. Failures are logged, never returned.
type FileRemover interface {
	RemoveAll(files []storage.File)
}

// Deps are the collaborators shared by all services.
type Deps struct {
	DB      *sqlx.DB
	Cascade *data.Cascade
	Files   FileRemover
	Log     logger.Logger
}

type base struct {
	db        *sqlx.DB
	cascade   *data.Cascade
	files     FileRemover
	log       logger.Logger
	sanitizer *bluemonday.Policy
}

func newBase(d Deps, component string) base {
	log := d.Log
	if log == nil {
		log = logger.Nop()
	}
	return base{
		db:      d.DB,
		cascade: d.Cascade,
		files:   d.Files,
		log:     log.With(map[string]interface{}{"component": component}),
		// UGCPolicy allows basic formatting while stripping scripts and handlers.
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// delete runs the cascade for e and removes the released files once the
// transaction has committed.
func (b *base) delete(ctx context.Context, e *data.Entity, id int64) error {
	res, err := b.cascade.Delete(ctx, e, id)
	if err != nil {
		return err
	}
	b.files.RemoveAll(res.Files)
	return nil
}

// release removes files superseded by a committed update.
func (b *base) release(files ...storage.File) {
	var stale []storage.File
	for _, f := range files {
		if f.Name != "" {
			stale = append(stale, f)
		}
	}
	if len(stale) > 0 {
		b.files.RemoveAll(stale)
	}
}

// replace returns the value to store for a file column and the file it
// supersedes. An empty upload keeps the current file.
func replace(dir, current, upload string) (string, storage.File) {
	if upload == "" || upload == current {
		return current, storage.File{}
	}
	return upload, storage.File{Dir: dir, Name: current}
}

// uniqueSlug derives the slug of name and makes it unique in table.
func uniqueSlug(ctx context.Context, q data.Queryer, table, field, name string, excludeID int64) (string, error) {
	s := slug.Make(name)
	if s == "" {
		return "", invalid(field, "must contain letters or digits")
	}
	return data.UniqueSlug(ctx, q, table, s, excludeID)
}

// slugOrEmpty is used for tables whose slugs are informative and not unique.
func slugOrEmpty(name string) string {
	return slug.Make(name)
}
