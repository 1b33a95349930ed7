package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const (
	activityColumns = `id, title, slug, subtitle, description, image, detail_slug, order_index, created_at`
	heroColumns     = `id, page, title, subtitle, image, updated_at`
)

// ActivityRepository stores things-to-do activities and the per-page heroes.
type ActivityRepository struct {
	db Queryer
}

func NewActivityRepository(db Queryer) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) List(ctx context.Context) ([]*Activity, error) {
	activities := []*Activity{}
	query := `SELECT ` + activityColumns + ` FROM things_to_do_activity ORDER BY order_index ASC, id ASC`
	if err := selectRows(ctx, r.db, &activities, query); err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}

func (r *ActivityRepository) ByID(ctx context.Context, id int64) (*Activity, error) {
	var a Activity
	query := `SELECT ` + activityColumns + ` FROM things_to_do_activity WHERE id = ?`
	if err := get(ctx, r.db, &a, fmt.Sprintf("activity %d", id), query, id); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ActivityRepository) NextOrder(ctx context.Context) (int, error) {
	var next int
	if err := get(ctx, r.db, &next, "activity order", `SELECT COALESCE(MAX(order_index), 0) + 1 FROM things_to_do_activity`); err != nil {
		return 0, err
	}
	return next, nil
}

func (r *ActivityRepository) Create(ctx context.Context, a *Activity) (int64, error) {
	query := `INSERT INTO things_to_do_activity (title, slug, subtitle, description, image, detail_slug, order_index)
		VALUES (:title, :slug, :subtitle, :description, :image, :detail_slug, :order_index)`
	return insert(ctx, r.db, "activity", query, a)
}

func (r *ActivityRepository) Update(ctx context.Context, a *Activity) error {
	query := `UPDATE things_to_do_activity SET title = :title, slug = :slug, subtitle = :subtitle,
		description = :description, image = :image, detail_slug = :detail_slug, order_index = :order_index
		WHERE id = :id`
	return update(ctx, r.db, "activity", "things_to_do_activity", a.ID, 0, query, a)
}

// HeroByPage returns the hero of a site page.
func (r *ActivityRepository) HeroByPage(ctx context.Context, page string) (*Hero, error) {
	var h Hero
	query := `SELECT ` + heroColumns + ` FROM heros WHERE page = ?`
	if err := get(ctx, r.db, &h, "hero "+page, query, page); err != nil {
		return nil, err
	}
	return &h, nil
}

// UpsertHero stores h under h.Page and returns the image it replaced, if any.
func (r *ActivityRepository) UpsertHero(ctx context.Context, h *Hero) (string, error) {
	var previous string
	err := sqlx.GetContext(ctx, r.db, &previous, `SELECT image FROM heros WHERE page = ?`, h.Page)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err := insert(ctx, r.db, "hero", `INSERT INTO heros (page, title, subtitle, image) VALUES (:page, :title, :subtitle, :image)`, h)
		return "", err
	case err != nil:
		return "", fmt.Errorf("failed to get hero %s: %w", h.Page, err)
	}

	query := `UPDATE heros SET title = :title, subtitle = :subtitle, image = :image, updated_at = CURRENT_TIMESTAMP WHERE page = :page`
	if _, err := sqlx.NamedExecContext(ctx, r.db, query, h); err != nil {
		return "", fmt.Errorf("failed to update hero %s: %w", h.Page, err)
	}
	return previous, nil
}
