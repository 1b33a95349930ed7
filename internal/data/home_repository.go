package data

import (
	"context"
	"fmt"
)

const homeVideoColumns = `id, title, caption, slug, video, sort_order, created_at`

// HomeRepository stores the landing page videos.
type HomeRepository struct {
	db Queryer
}

func NewHomeRepository(db Queryer) *HomeRepository {
	return &HomeRepository{db: db}
}

// List returns the videos in display order.
func (r *HomeRepository) List(ctx context.Context) ([]*HomeVideo, error) {
	videos := []*HomeVideo{}
	query := `SELECT ` + homeVideoColumns + ` FROM home_videos ORDER BY sort_order ASC, id ASC`
	if err := selectRows(ctx, r.db, &videos, query); err != nil {
		return nil, fmt.Errorf("failed to list home videos: %w", err)
	}
	return videos, nil
}

func (r *HomeRepository) ByID(ctx context.Context, id int64) (*HomeVideo, error) {
	var v HomeVideo
	query := `SELECT ` + homeVideoColumns + ` FROM home_videos WHERE id = ?`
	if err := get(ctx, r.db, &v, fmt.Sprintf("home video %d", id), query, id); err != nil {
		return nil, err
	}
	return &v, nil
}

// NextSortOrder returns the position after the last video.
func (r *HomeRepository) NextSortOrder(ctx context.Context) (int, error) {
	var next int
	if err := get(ctx, r.db, &next, "home video order", `SELECT COALESCE(MAX(sort_order), 0) + 1 FROM home_videos`); err != nil {
		return 0, err
	}
	return next, nil
}

func (r *HomeRepository) Create(ctx context.Context, v *HomeVideo) (int64, error) {
	query := `INSERT INTO home_videos (title, caption, slug, video, sort_order)
		VALUES (:title, :caption, :slug, :video, :sort_order)`
	return insert(ctx, r.db, "home video", query, v)
}

func (r *HomeRepository) SetSortOrder(ctx context.Context, id int64, order int) error {
	return exec(ctx, r.db, "home video", "home_videos", id, `UPDATE home_videos SET sort_order = ? WHERE id = ?`, order, id)
}
