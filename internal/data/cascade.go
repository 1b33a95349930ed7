package data

import (
	"context"
	"errors"
	"fmt"
	"wonders-cms/internal/storage"

	"github.com/jmoiron/sqlx"
)

// FileColumn is a column holding the base name of an uploaded file kept in Dir.
type FileColumn struct {
	Column string
	Dir    string
}

// Link is a join table. Rows whose ParentKey matches the parent id name the
// child ids in ChildKey. A Link on the entity's own table (ParentKey "id")
// describes a row that owns the row it points at.
type Link struct {
	Table     string
	ParentKey string
	ChildKey  string
}

// Ref is a column of a join table pointing at an entity. Matching join rows
// are removed together with the entity.
type Ref struct {
	Table  string
	Column string
}

// Child describes rows that must be removed together with their parent.
// Exactly one of ForeignKey and Through is set.
type Child struct {
	Entity *Entity
	// ForeignKey is the column of Entity.Table referencing the parent id.
	ForeignKey string
	Through    *Link
}

// Entity describes a table, the files its rows own and the rows depending on it.
type Entity struct {
	Name     string
	Table    string
	Files    []FileColumn
	Children []Child
	Refs     []Ref
}

// Removal is the outcome of a committed cascade.
type Removal struct {
	// Rows counts deleted rows per table.
	Rows map[string]int64
	// Files are the uploads owned by the deleted rows. They are still on
	// disk; callers remove them once the transaction has committed.
	Files []storage.File
}

// Cascade deletes an entity together with everything that depends on it.
type Cascade struct {
	db *sqlx.DB
}

// NewCascade creates a cascade resolver on db.
func NewCascade(db *sqlx.DB) *Cascade {
	return &Cascade{db: db}
}

// Delete removes the row id of e and all dependent rows in one transaction,
// children before parents. A missing root yields ErrNotFound without writes;
// any failure rolls the whole removal back and is returned as *StorageError.
func (c *Cascade) Delete(ctx context.Context, e *Entity, id int64) (*Removal, error) {
	var res *Removal
	err := WithTx(ctx, c.db, func(tx *sqlx.Tx) error {
		var err error
		res, err = c.DeleteTx(ctx, tx, e, id)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		var se *StorageError
		if errors.As(err, &se) {
			return nil, err
		}
		return nil, &StorageError{Op: "delete " + e.Name, Err: err}
	}
	return res, nil
}

// DeleteTx is Delete inside a caller-owned transaction.
func (c *Cascade) DeleteTx(ctx context.Context, tx *sqlx.Tx, e *Entity, id int64) (*Removal, error) {
	var n int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE id = ?", e.Table)
	if err := tx.GetContext(ctx, &n, query, id); err != nil {
		return nil, &StorageError{Op: "delete " + e.Name, Err: err}
	}
	if n == 0 {
		return nil, fmt.Errorf("%s %d: %w", e.Name, id, ErrNotFound)
	}

	res := &Removal{Rows: make(map[string]int64)}
	if err := remove(ctx, tx, e, []int64{id}, res); err != nil {
		return nil, &StorageError{Op: "delete " + e.Name, Err: err}
	}
	return res, nil
}

func remove(ctx context.Context, tx *sqlx.Tx, e *Entity, ids []int64, res *Removal) error {
	if len(ids) == 0 {
		return nil
	}

	for _, child := range e.Children {
		childIDs, err := dependents(ctx, tx, e, child, ids)
		if err != nil {
			return err
		}
		if child.Through != nil && child.Through.Table != e.Table {
			if err := execIn(ctx, tx, "DELETE FROM %s WHERE %s IN (?)", child.Through.Table, child.Through.ParentKey, ids); err != nil {
				return err
			}
		}
		if err := remove(ctx, tx, child.Entity, childIDs, res); err != nil {
			return err
		}
	}

	for _, ref := range e.Refs {
		if err := execIn(ctx, tx, "DELETE FROM %s WHERE %s IN (?)", ref.Table, ref.Column, ids); err != nil {
			return err
		}
	}

	files, err := ownedFiles(ctx, tx, e, ids)
	if err != nil {
		return err
	}

	query, args, err := sqlx.In(fmt.Sprintf("DELETE FROM %s WHERE id IN (?)", e.Table), ids)
	if err != nil {
		return err
	}
	result, err := tx.ExecContext(ctx, tx.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", e.Table, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	res.Rows[e.Table] += affected
	res.Files = append(res.Files, files...)
	return nil
}

func dependents(ctx context.Context, tx *sqlx.Tx, parent *Entity, child Child, ids []int64) ([]int64, error) {
	var query string
	switch {
	case child.Through != nil:
		query = fmt.Sprintf("SELECT DISTINCT %s FROM %s WHERE %s IN (?)",
			child.Through.ChildKey, child.Through.Table, child.Through.ParentKey)
	case child.ForeignKey != "":
		query = fmt.Sprintf("SELECT id FROM %s WHERE %s IN (?)", child.Entity.Table, child.ForeignKey)
	default:
		return nil, fmt.Errorf("child %s of %s has no link", child.Entity.Name, parent.Name)
	}

	query, args, err := sqlx.In(query, ids)
	if err != nil {
		return nil, err
	}
	var childIDs []int64
	if err := tx.SelectContext(ctx, &childIDs, tx.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("resolve %s of %s: %w", child.Entity.Name, parent.Name, err)
	}
	return childIDs, nil
}

func ownedFiles(ctx context.Context, tx *sqlx.Tx, e *Entity, ids []int64) ([]storage.File, error) {
	var files []storage.File
	for _, fc := range e.Files {
		query, args, err := sqlx.In(fmt.Sprintf("SELECT %s FROM %s WHERE id IN (?)", fc.Column, e.Table), ids)
		if err != nil {
			return nil, err
		}
		var names []*string
		if err := tx.SelectContext(ctx, &names, tx.Rebind(query), args...); err != nil {
			return nil, fmt.Errorf("collect %s.%s: %w", e.Table, fc.Column, err)
		}
		for _, name := range names {
			if name != nil && *name != "" {
				files = append(files, storage.File{Dir: fc.Dir, Name: *name})
			}
		}
	}
	return files, nil
}

func execIn(ctx context.Context, tx *sqlx.Tx, format, table, column string, ids []int64) error {
	query, args, err := sqlx.In(fmt.Sprintf(format, table, column), ids)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	return nil
}

// Entity descriptions of the content model.
var (
	JelajahiPageEntity = &Entity{
		Name:  "page",
		Table: "jelajahi_pages",
		Files: []FileColumn{{Column: "cover_image", Dir: storage.DirJelajahi}},
		Refs:  []Ref{{Table: "jelajahi_wisata", Column: "page_id"}},
	}

	JelajahiCategoryEntity = &Entity{
		Name:  "category",
		Table: "jelajahi_kategori",
		Files: []FileColumn{{Column: "gambar", Dir: storage.DirJelajahi}},
		Children: []Child{{
			Entity:  JelajahiPageEntity,
			Through: &Link{Table: "jelajahi_wisata", ParentKey: "kategori_id", ChildKey: "page_id"},
		}},
	}

	// JelajahiRelationEntity removes a relation and the page it points at.
	JelajahiRelationEntity = &Entity{
		Name:  "relation",
		Table: "jelajahi_wisata",
		Children: []Child{{
			Entity:  JelajahiPageEntity,
			Through: &Link{Table: "jelajahi_wisata", ParentKey: "id", ChildKey: "page_id"},
		}},
	}

	KulinerItemVideoEntity = &Entity{
		Name:  "item video",
		Table: "kuliner_item_videos",
		Files: []FileColumn{{Column: "filename", Dir: storage.DirKulinerItemVideos}},
	}

	KulinerPageEntity = &Entity{
		Name:  "kuliner page",
		Table: "kuliner_pages",
		Files: []FileColumn{{Column: "cover_image", Dir: storage.DirKulinerPages}},
	}

	KulinerItemEntity = &Entity{
		Name:  "item",
		Table: "kuliner_item",
		Files: []FileColumn{
			{Column: "gambar", Dir: storage.DirKulinerItems},
			{Column: "vertical_video", Dir: storage.DirKulinerItemVideos},
		},
		Children: []Child{
			{Entity: KulinerItemVideoEntity, ForeignKey: "item_id"},
			{Entity: KulinerPageEntity, ForeignKey: "item_id"},
		},
	}

	KulinerCategoryEntity = &Entity{
		Name:  "kuliner category",
		Table: "kuliner_kategori",
		Files: []FileColumn{
			{Column: "hero_small", Dir: storage.DirKulinerKategori},
			{Column: "hero_large", Dir: storage.DirKulinerKategori},
		},
		Children: []Child{{Entity: KulinerItemEntity, ForeignKey: "kategori_id"}},
	}

	HomeVideoEntity = &Entity{
		Name:  "home video",
		Table: "home_videos",
		Files: []FileColumn{{Column: "video", Dir: storage.DirHomeVideos}},
	}

	PopularEventEntity = &Entity{
		Name:  "popular event",
		Table: "popular_events",
		Files: []FileColumn{{Column: "image", Dir: storage.DirEvent}},
	}

	GridEventEntity = &Entity{
		Name:  "grid event",
		Table: "grid_events",
		Files: []FileColumn{{Column: "image", Dir: storage.DirEvent}},
	}

	WisataHeroEntity = &Entity{
		Name:  "wisata hero",
		Table: "wisata",
		Files: []FileColumn{{Column: "image", Dir: storage.DirWisataHero}},
	}

	WisataCardEntity = &Entity{
		Name:  "wisata card",
		Table: "wisata_cards",
		Files: []FileColumn{{Column: "image", Dir: storage.DirWisataCards}},
	}

	WisataPageEntity = &Entity{
		Name:  "wisata page",
		Table: "jlj_wisata",
		Files: []FileColumn{{Column: "cover_image", Dir: storage.DirWisataPages}},
	}

	ActivityEntity = &Entity{
		Name:  "activity",
		Table: "things_to_do_activity",
		Files: []FileColumn{{Column: "image", Dir: storage.DirThingsToDo}},
	}
)
