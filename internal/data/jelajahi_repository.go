package data

import (
	"context"
	"fmt"
)

const (
	jelajahiCategoryColumns = `id, nama, slug, deskripsi, intro_text, gambar, wilayah, revision, created_at, updated_at`
	pageColumns             = `id, title, slug, content, lat, lng, cover_image, revision, created_at, updated_at`
)

// JelajahiRepository stores exploration categories, pages and the relations
// between them.
type JelajahiRepository struct {
	db Queryer
}

// NewJelajahiRepository creates a JelajahiRepository on a database or transaction.
func NewJelajahiRepository(db Queryer) *JelajahiRepository {
	return &JelajahiRepository{db: db}
}

// ListCategories returns all categories, newest first.
func (r *JelajahiRepository) ListCategories(ctx context.Context) ([]*JelajahiCategory, error) {
	categories := []*JelajahiCategory{}
	query := `SELECT ` + jelajahiCategoryColumns + ` FROM jelajahi_kategori ORDER BY id DESC`
	if err := selectRows(ctx, r.db, &categories, query); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// CategoryBySlug retrieves a category by its slug.
func (r *JelajahiRepository) CategoryBySlug(ctx context.Context, slug string) (*JelajahiCategory, error) {
	var c JelajahiCategory
	query := `SELECT ` + jelajahiCategoryColumns + ` FROM jelajahi_kategori WHERE slug = ?`
	if err := get(ctx, r.db, &c, "category "+slug, query, slug); err != nil {
		return nil, err
	}
	return &c, nil
}

// CategoryByID retrieves a category by its id.
func (r *JelajahiRepository) CategoryByID(ctx context.Context, id int64) (*JelajahiCategory, error) {
	var c JelajahiCategory
	query := `SELECT ` + jelajahiCategoryColumns + ` FROM jelajahi_kategori WHERE id = ?`
	if err := get(ctx, r.db, &c, fmt.Sprintf("category %d", id), query, id); err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateCategory inserts c and returns its id.
func (r *JelajahiRepository) CreateCategory(ctx context.Context, c *JelajahiCategory) (int64, error) {
	query := `INSERT INTO jelajahi_kategori (nama, slug, deskripsi, intro_text, gambar, wilayah)
		VALUES (:nama, :slug, :deskripsi, :intro_text, :gambar, :wilayah)`
	return insert(ctx, r.db, "category", query, c)
}

// UpdateCategory writes c. A non-zero c.Revision must match the stored one.
func (r *JelajahiRepository) UpdateCategory(ctx context.Context, c *JelajahiCategory) error {
	query := `UPDATE jelajahi_kategori SET nama = :nama, slug = :slug, deskripsi = :deskripsi,
		intro_text = :intro_text, gambar = :gambar, wilayah = :wilayah,
		revision = revision + 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = :id AND (:revision = 0 OR revision = :revision)`
	return update(ctx, r.db, "category", "jelajahi_kategori", c.ID, c.Revision, query, c)
}

// ListPages returns all pages, newest first.
func (r *JelajahiRepository) ListPages(ctx context.Context) ([]*Page, error) {
	pages := []*Page{}
	query := `SELECT ` + pageColumns + ` FROM jelajahi_pages ORDER BY id DESC`
	if err := selectRows(ctx, r.db, &pages, query); err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	return pages, nil
}

// PageBySlug retrieves a page by its slug.
func (r *JelajahiRepository) PageBySlug(ctx context.Context, slug string) (*Page, error) {
	var p Page
	query := `SELECT ` + pageColumns + ` FROM jelajahi_pages WHERE slug = ?`
	if err := get(ctx, r.db, &p, "page "+slug, query, slug); err != nil {
		return nil, err
	}
	return &p, nil
}

// PageByID retrieves a page by its id.
func (r *JelajahiRepository) PageByID(ctx context.Context, id int64) (*Page, error) {
	var p Page
	query := `SELECT ` + pageColumns + ` FROM jelajahi_pages WHERE id = ?`
	if err := get(ctx, r.db, &p, fmt.Sprintf("page %d", id), query, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePage inserts p and returns its id.
func (r *JelajahiRepository) CreatePage(ctx context.Context, p *Page) (int64, error) {
	query := `INSERT INTO jelajahi_pages (title, slug, content, lat, lng, cover_image)
		VALUES (:title, :slug, :content, :lat, :lng, :cover_image)`
	return insert(ctx, r.db, "page", query, p)
}

// UpdatePage writes p. A non-zero p.Revision must match the stored one.
func (r *JelajahiRepository) UpdatePage(ctx context.Context, p *Page) error {
	query := `UPDATE jelajahi_pages SET title = :title, slug = :slug, content = :content,
		lat = :lat, lng = :lng, cover_image = :cover_image,
		revision = revision + 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = :id AND (:revision = 0 OR revision = :revision)`
	return update(ctx, r.db, "page", "jelajahi_pages", p.ID, p.Revision, query, p)
}

// SetPageCover replaces the cover image of page id.
func (r *JelajahiRepository) SetPageCover(ctx context.Context, id int64, name string) error {
	query := `UPDATE jelajahi_pages SET cover_image = ?, revision = revision + 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	return exec(ctx, r.db, "page", "jelajahi_pages", id, query, name, id)
}

// RelationsByCategory lists the pages of a category in display order.
func (r *JelajahiRepository) RelationsByCategory(ctx context.Context, categoryID int64) ([]*RelationView, error) {
	views := []*RelationView{}
	query := `SELECT w.id, w.kategori_id, w.page_id, w.order_index, p.title, p.slug, p.cover_image
		FROM jelajahi_wisata w
		JOIN jelajahi_pages p ON p.id = w.page_id
		WHERE w.kategori_id = ?
		ORDER BY w.order_index ASC, w.id ASC`
	if err := selectRows(ctx, r.db, &views, query, categoryID); err != nil {
		return nil, fmt.Errorf("failed to list relations of category %d: %w", categoryID, err)
	}
	return views, nil
}

// RelationByID retrieves a relation row.
func (r *JelajahiRepository) RelationByID(ctx context.Context, id int64) (*Relation, error) {
	var rel Relation
	query := `SELECT id, kategori_id, page_id, order_index, created_at FROM jelajahi_wisata WHERE id = ?`
	if err := get(ctx, r.db, &rel, fmt.Sprintf("relation %d", id), query, id); err != nil {
		return nil, err
	}
	return &rel, nil
}

// CreateRelation links a page to a category.
func (r *JelajahiRepository) CreateRelation(ctx context.Context, rel *Relation) (int64, error) {
	query := `INSERT INTO jelajahi_wisata (kategori_id, page_id, order_index) VALUES (:kategori_id, :page_id, :order_index)`
	return insert(ctx, r.db, "relation", query, rel)
}

// SetRelationOrder moves a relation to a new position.
func (r *JelajahiRepository) SetRelationOrder(ctx context.Context, id int64, order int) error {
	query := `UPDATE jelajahi_wisata SET order_index = ? WHERE id = ?`
	return exec(ctx, r.db, "relation", "jelajahi_wisata", id, query, order, id)
}
