package data

import (
	"context"
	"fmt"
)

const (
	popularEventColumns = `id, title, subtitle, date, location, image, size, speed, created_at`
	gridEventColumns    = `id, title, category, date, location, image, created_at`
)

// EventRepository stores popular and grid events.
type EventRepository struct {
	db Queryer
}

func NewEventRepository(db Queryer) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) ListPopular(ctx context.Context) ([]*PopularEvent, error) {
	events := []*PopularEvent{}
	query := `SELECT ` + popularEventColumns + ` FROM popular_events ORDER BY id DESC`
	if err := selectRows(ctx, r.db, &events, query); err != nil {
		return nil, fmt.Errorf("failed to list popular events: %w", err)
	}
	return events, nil
}

func (r *EventRepository) PopularByID(ctx context.Context, id int64) (*PopularEvent, error) {
	var e PopularEvent
	query := `SELECT ` + popularEventColumns + ` FROM popular_events WHERE id = ?`
	if err := get(ctx, r.db, &e, fmt.Sprintf("popular event %d", id), query, id); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EventRepository) CreatePopular(ctx context.Context, e *PopularEvent) (int64, error) {
	query := `INSERT INTO popular_events (title, subtitle, date, location, image, size, speed)
		VALUES (:title, :subtitle, :date, :location, :image, :size, :speed)`
	return insert(ctx, r.db, "popular event", query, e)
}

func (r *EventRepository) UpdatePopular(ctx context.Context, e *PopularEvent) error {
	query := `UPDATE popular_events SET title = :title, subtitle = :subtitle, date = :date,
		location = :location, image = :image, size = :size, speed = :speed WHERE id = :id`
	return update(ctx, r.db, "popular event", "popular_events", e.ID, 0, query, e)
}

func (r *EventRepository) ListGrid(ctx context.Context) ([]*GridEvent, error) {
	events := []*GridEvent{}
	query := `SELECT ` + gridEventColumns + ` FROM grid_events ORDER BY id DESC`
	if err := selectRows(ctx, r.db, &events, query); err != nil {
		return nil, fmt.Errorf("failed to list grid events: %w", err)
	}
	return events, nil
}

func (r *EventRepository) GridByID(ctx context.Context, id int64) (*GridEvent, error) {
	var e GridEvent
	query := `SELECT ` + gridEventColumns + ` FROM grid_events WHERE id = ?`
	if err := get(ctx, r.db, &e, fmt.Sprintf("grid event %d", id), query, id); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EventRepository) CreateGrid(ctx context.Context, e *GridEvent) (int64, error) {
	query := `INSERT INTO grid_events (title, category, date, location, image)
		VALUES (:title, :category, :date, :location, :image)`
	return insert(ctx, r.db, "grid event", query, e)
}

func (r *EventRepository) UpdateGrid(ctx context.Context, e *GridEvent) error {
	query := `UPDATE grid_events SET title = :title, category = :category, date = :date,
		location = :location, image = :image WHERE id = :id`
	return update(ctx, r.db, "grid event", "grid_events", e.ID, 0, query, e)
}
