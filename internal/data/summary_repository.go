package data

import (
	"context"
)

// SummaryRepository computes the dashboard counters.
type SummaryRepository struct {
	db Queryer
}

func NewSummaryRepository(db Queryer) *SummaryRepository {
	return &SummaryRepository{db: db}
}

// Summary counts the rows of every content table.
func (r *SummaryRepository) Summary(ctx context.Context) (*Summary, error) {
	var s Summary
	query := `SELECT
		(SELECT COUNT(*) FROM jelajahi_kategori) AS jelajahi_categories,
		(SELECT COUNT(*) FROM jelajahi_pages) AS jelajahi_pages,
		(SELECT COUNT(*) FROM kuliner_kategori) AS kuliner_categories,
		(SELECT COUNT(*) FROM kuliner_item) AS kuliner_items,
		(SELECT COUNT(*) FROM popular_events) + (SELECT COUNT(*) FROM grid_events) AS events,
		(SELECT COUNT(*) FROM home_videos) AS home_videos,
		(SELECT COUNT(*) FROM jlj_wisata) AS wisata_pages,
		(SELECT COUNT(*) FROM things_to_do_activity) AS activities`
	if err := get(ctx, r.db, &s, "summary", query); err != nil {
		return nil, err
	}
	return &s, nil
}
