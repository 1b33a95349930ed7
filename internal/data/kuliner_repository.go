package data

import (
	"context"
	"fmt"
)

const (
	kulinerCategoryColumns = `id, nama, slug, deskripsi, intro_text, hero_small, hero_large, revision, created_at, updated_at`
	kulinerItemColumns     = `id, kategori_id, nama, slug, deskripsi, gambar, vertical_video, is_signature, revision, created_at, updated_at`
	kulinerPageColumns     = `id, item_id, title, slug, content, lat, lng, cover_image, revision, created_at, updated_at`
)

// KulinerRepository stores culinary categories, items, item videos and pages.
type KulinerRepository struct {
	db Queryer
}

// NewKulinerRepository creates a KulinerRepository on a database or transaction.
func NewKulinerRepository(db Queryer) *KulinerRepository {
	return &KulinerRepository{db: db}
}

func (r *KulinerRepository) ListCategories(ctx context.Context) ([]*KulinerCategory, error) {
	categories := []*KulinerCategory{}
	query := `SELECT ` + kulinerCategoryColumns + ` FROM kuliner_kategori ORDER BY id ASC`
	if err := selectRows(ctx, r.db, &categories, query); err != nil {
		return nil, fmt.Errorf("failed to list kuliner categories: %w", err)
	}
	return categories, nil
}

func (r *KulinerRepository) CategoryBySlug(ctx context.Context, slug string) (*KulinerCategory, error) {
	var c KulinerCategory
	query := `SELECT ` + kulinerCategoryColumns + ` FROM kuliner_kategori WHERE slug = ?`
	if err := get(ctx, r.db, &c, "kuliner category "+slug, query, slug); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *KulinerRepository) CategoryByID(ctx context.Context, id int64) (*KulinerCategory, error) {
	var c KulinerCategory
	query := `SELECT ` + kulinerCategoryColumns + ` FROM kuliner_kategori WHERE id = ?`
	if err := get(ctx, r.db, &c, fmt.Sprintf("kuliner category %d", id), query, id); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *KulinerRepository) CreateCategory(ctx context.Context, c *KulinerCategory) (int64, error) {
	query := `INSERT INTO kuliner_kategori (nama, slug, deskripsi, intro_text, hero_small, hero_large)
		VALUES (:nama, :slug, :deskripsi, :intro_text, :hero_small, :hero_large)`
	return insert(ctx, r.db, "kuliner category", query, c)
}

// UpdateCategory writes the text fields and heroes of c.
func (r *KulinerRepository) UpdateCategory(ctx context.Context, c *KulinerCategory) error {
	query := `UPDATE kuliner_kategori SET nama = :nama, slug = :slug, deskripsi = :deskripsi,
		intro_text = :intro_text, hero_small = :hero_small, hero_large = :hero_large,
		revision = revision + 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = :id AND (:revision = 0 OR revision = :revision)`
	return update(ctx, r.db, "kuliner category", "kuliner_kategori", c.ID, c.Revision, query, c)
}

// ItemsByCategory lists the items of a category, signature dishes first.
func (r *KulinerRepository) ItemsByCategory(ctx context.Context, categoryID int64) ([]*KulinerItem, error) {
	items := []*KulinerItem{}
	query := `SELECT ` + kulinerItemColumns + ` FROM kuliner_item WHERE kategori_id = ? ORDER BY is_signature DESC, id ASC`
	if err := selectRows(ctx, r.db, &items, query, categoryID); err != nil {
		return nil, fmt.Errorf("failed to list items of category %d: %w", categoryID, err)
	}
	return items, nil
}

func (r *KulinerRepository) ItemByID(ctx context.Context, id int64) (*KulinerItem, error) {
	var it KulinerItem
	query := `SELECT ` + kulinerItemColumns + ` FROM kuliner_item WHERE id = ?`
	if err := get(ctx, r.db, &it, fmt.Sprintf("item %d", id), query, id); err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *KulinerRepository) ItemBySlug(ctx context.Context, slug string) (*KulinerItem, error) {
	var it KulinerItem
	query := `SELECT ` + kulinerItemColumns + ` FROM kuliner_item WHERE slug = ?`
	if err := get(ctx, r.db, &it, "item "+slug, query, slug); err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *KulinerRepository) CreateItem(ctx context.Context, it *KulinerItem) (int64, error) {
	query := `INSERT INTO kuliner_item (kategori_id, nama, slug, deskripsi, gambar, vertical_video, is_signature)
		VALUES (:kategori_id, :nama, :slug, :deskripsi, :gambar, :vertical_video, :is_signature)`
	return insert(ctx, r.db, "item", query, it)
}

func (r *KulinerRepository) UpdateItem(ctx context.Context, it *KulinerItem) error {
	query := `UPDATE kuliner_item SET kategori_id = :kategori_id, nama = :nama, slug = :slug,
		deskripsi = :deskripsi, gambar = :gambar, is_signature = :is_signature,
		revision = revision + 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = :id AND (:revision = 0 OR revision = :revision)`
	return update(ctx, r.db, "item", "kuliner_item", it.ID, it.Revision, query, it)
}

// SetItemVideo replaces the primary vertical video of an item. An empty
// name clears it.
func (r *KulinerRepository) SetItemVideo(ctx context.Context, id int64, name string) error {
	query := `UPDATE kuliner_item SET vertical_video = ?, revision = revision + 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	return exec(ctx, r.db, "item", "kuliner_item", id, query, name, id)
}

func (r *KulinerRepository) ItemVideos(ctx context.Context, itemID int64) ([]*KulinerItemVideo, error) {
	videos := []*KulinerItemVideo{}
	query := `SELECT id, item_id, filename, created_at FROM kuliner_item_videos WHERE item_id = ? ORDER BY id ASC`
	if err := selectRows(ctx, r.db, &videos, query, itemID); err != nil {
		return nil, fmt.Errorf("failed to list videos of item %d: %w", itemID, err)
	}
	return videos, nil
}

func (r *KulinerRepository) ItemVideoByID(ctx context.Context, id int64) (*KulinerItemVideo, error) {
	var v KulinerItemVideo
	query := `SELECT id, item_id, filename, created_at FROM kuliner_item_videos WHERE id = ?`
	if err := get(ctx, r.db, &v, fmt.Sprintf("item video %d", id), query, id); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *KulinerRepository) AddItemVideo(ctx context.Context, v *KulinerItemVideo) (int64, error) {
	query := `INSERT INTO kuliner_item_videos (item_id, filename) VALUES (:item_id, :filename)`
	return insert(ctx, r.db, "item video", query, v)
}

func (r *KulinerRepository) PageBySlug(ctx context.Context, slug string) (*KulinerPage, error) {
	var p KulinerPage
	query := `SELECT ` + kulinerPageColumns + ` FROM kuliner_pages WHERE slug = ?`
	if err := get(ctx, r.db, &p, "kuliner page "+slug, query, slug); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *KulinerRepository) PageByID(ctx context.Context, id int64) (*KulinerPage, error) {
	var p KulinerPage
	query := `SELECT ` + kulinerPageColumns + ` FROM kuliner_pages WHERE id = ?`
	if err := get(ctx, r.db, &p, fmt.Sprintf("kuliner page %d", id), query, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// PagesByItem lists the detail pages of an item.
func (r *KulinerRepository) PagesByItem(ctx context.Context, itemID int64) ([]*KulinerPage, error) {
	pages := []*KulinerPage{}
	query := `SELECT ` + kulinerPageColumns + ` FROM kuliner_pages WHERE item_id = ? ORDER BY id ASC`
	if err := selectRows(ctx, r.db, &pages, query, itemID); err != nil {
		return nil, fmt.Errorf("failed to list pages of item %d: %w", itemID, err)
	}
	return pages, nil
}

func (r *KulinerRepository) CreatePage(ctx context.Context, p *KulinerPage) (int64, error) {
	query := `INSERT INTO kuliner_pages (item_id, title, slug, content, lat, lng, cover_image)
		VALUES (:item_id, :title, :slug, :content, :lat, :lng, :cover_image)`
	return insert(ctx, r.db, "kuliner page", query, p)
}

func (r *KulinerRepository) UpdatePage(ctx context.Context, p *KulinerPage) error {
	query := `UPDATE kuliner_pages SET item_id = :item_id, title = :title, slug = :slug, content = :content,
		lat = :lat, lng = :lng, cover_image = :cover_image,
		revision = revision + 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = :id AND (:revision = 0 OR revision = :revision)`
	return update(ctx, r.db, "kuliner page", "kuliner_pages", p.ID, p.Revision, query, p)
}

func (r *KulinerRepository) SetPageCover(ctx context.Context, id int64, name string) error {
	query := `UPDATE kuliner_pages SET cover_image = ?, revision = revision + 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	return exec(ctx, r.db, "kuliner page", "kuliner_pages", id, query, name, id)
}
