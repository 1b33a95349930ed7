package data

import (
	"context"
	"fmt"
)

const (
	wisataHeroColumns = `id, section_name, image, caption, created_at`
	wisataCardColumns = `id, title, slug, image, static_key, created_at`
	wisataPageColumns = `id, title, slug, category, cover_image, content, lat, lng, revision, created_at, updated_at`
)

// WisataRepository stores the tourism section: hero images, destination
// cards and detail pages.
type WisataRepository struct {
	db Queryer
}

func NewWisataRepository(db Queryer) *WisataRepository {
	return &WisataRepository{db: db}
}

func (r *WisataRepository) ListHeroes(ctx context.Context) ([]*WisataHero, error) {
	heroes := []*WisataHero{}
	query := `SELECT ` + wisataHeroColumns + ` FROM wisata ORDER BY id DESC`
	if err := selectRows(ctx, r.db, &heroes, query); err != nil {
		return nil, fmt.Errorf("failed to list wisata heroes: %w", err)
	}
	return heroes, nil
}

func (r *WisataRepository) CreateHero(ctx context.Context, h *WisataHero) (int64, error) {
	query := `INSERT INTO wisata (section_name, image, caption) VALUES (:section_name, :image, :caption)`
	return insert(ctx, r.db, "wisata hero", query, h)
}

func (r *WisataRepository) ListCards(ctx context.Context) ([]*WisataCard, error) {
	cards := []*WisataCard{}
	query := `SELECT ` + wisataCardColumns + ` FROM wisata_cards ORDER BY id ASC`
	if err := selectRows(ctx, r.db, &cards, query); err != nil {
		return nil, fmt.Errorf("failed to list wisata cards: %w", err)
	}
	return cards, nil
}

func (r *WisataRepository) CardByID(ctx context.Context, id int64) (*WisataCard, error) {
	var c WisataCard
	query := `SELECT ` + wisataCardColumns + ` FROM wisata_cards WHERE id = ?`
	if err := get(ctx, r.db, &c, fmt.Sprintf("wisata card %d", id), query, id); err != nil {
		return nil, err
	}
	return &c, nil
}

// CardByStaticKey finds the card occupying a fixed layout slot.
func (r *WisataRepository) CardByStaticKey(ctx context.Context, key string) (*WisataCard, error) {
	var c WisataCard
	query := `SELECT ` + wisataCardColumns + ` FROM wisata_cards WHERE static_key = ?`
	if err := get(ctx, r.db, &c, "wisata card "+key, query, key); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *WisataRepository) CreateCard(ctx context.Context, c *WisataCard) (int64, error) {
	query := `INSERT INTO wisata_cards (title, slug, image, static_key) VALUES (:title, :slug, :image, :static_key)`
	return insert(ctx, r.db, "wisata card", query, c)
}

func (r *WisataRepository) UpdateCard(ctx context.Context, c *WisataCard) error {
	query := `UPDATE wisata_cards SET title = :title, slug = :slug, image = :image WHERE id = :id`
	return update(ctx, r.db, "wisata card", "wisata_cards", c.ID, 0, query, c)
}

func (r *WisataRepository) ListPages(ctx context.Context) ([]*WisataPage, error) {
	pages := []*WisataPage{}
	query := `SELECT ` + wisataPageColumns + ` FROM jlj_wisata ORDER BY id DESC`
	if err := selectRows(ctx, r.db, &pages, query); err != nil {
		return nil, fmt.Errorf("failed to list wisata pages: %w", err)
	}
	return pages, nil
}

func (r *WisataRepository) PageBySlug(ctx context.Context, slug string) (*WisataPage, error) {
	var p WisataPage
	query := `SELECT ` + wisataPageColumns + ` FROM jlj_wisata WHERE slug = ?`
	if err := get(ctx, r.db, &p, "wisata page "+slug, query, slug); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *WisataRepository) PageByID(ctx context.Context, id int64) (*WisataPage, error) {
	var p WisataPage
	query := `SELECT ` + wisataPageColumns + ` FROM jlj_wisata WHERE id = ?`
	if err := get(ctx, r.db, &p, fmt.Sprintf("wisata page %d", id), query, id); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *WisataRepository) CreatePage(ctx context.Context, p *WisataPage) (int64, error) {
	query := `INSERT INTO jlj_wisata (title, slug, category, cover_image, content, lat, lng)
		VALUES (:title, :slug, :category, :cover_image, :content, :lat, :lng)`
	return insert(ctx, r.db, "wisata page", query, p)
}

func (r *WisataRepository) UpdatePage(ctx context.Context, p *WisataPage) error {
	query := `UPDATE jlj_wisata SET title = :title, slug = :slug, category = :category,
		cover_image = :cover_image, content = :content, lat = :lat, lng = :lng,
		revision = revision + 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = :id AND (:revision = 0 OR revision = :revision)`
	return update(ctx, r.db, "wisata page", "jlj_wisata", p.ID, p.Revision, query, p)
}

func (r *WisataRepository) SetPageCover(ctx context.Context, id int64, name string) error {
	query := `UPDATE jlj_wisata SET cover_image = ?, revision = revision + 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	return exec(ctx, r.db, "wisata page", "jlj_wisata", id, query, name, id)
}
