package service

import (
	"context"
	"wonders-cms/internal/data"
	"wonders-cms/internal/storage"

	"github.com/jmoiron/sqlx"
)

type PopularEventInput struct {
	Title    string `json:"title" validate:"required,max=255"`
	Subtitle string `json:"subtitle"`
	Date     string `json:"date"`
	Location string `json:"location"`
	Image    string `json:"image"`
	Size     string `json:"size"`
	Speed    string `json:"speed"`
}

type GridEventInput struct {
	Title    string `json:"title" validate:"required,max=255"`
	Category string `json:"category"`
	Date     string `json:"date"`
	Location string `json:"location"`
	Image    string `json:"image"`
}

// EventService manages popular and grid events.
type EventService struct {
	base
}

func NewEventService(d Deps) *EventService {
	return &EventService{base: newBase(d, "event")}
}

func (s *EventService) ListPopular(ctx context.Context) ([]*data.PopularEvent, error) {
	return data.NewEventRepository(s.db).ListPopular(ctx)
}

func (s *EventService) CreatePopular(ctx context.Context, in PopularEventInput) (int64, error) {
	if err := check(in); err != nil {
		return 0, err
	}
	if in.Image == "" {
		return 0, invalid("image", "is required")
	}
	return data.NewEventRepository(s.db).CreatePopular(ctx, &data.PopularEvent{
		Title:    in.Title,
		Subtitle: in.Subtitle,
		Date:     in.Date,
		Location: in.Location,
		Image:    in.Image,
		Size:     in.Size,
		Speed:    in.Speed,
	})
}

func (s *EventService) UpdatePopular(ctx context.Context, id int64, in PopularEventInput) error {
	if err := check(in); err != nil {
		return err
	}
	var stale storage.File
	err := data.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := data.NewEventRepository(tx)
		e, err := repo.PopularByID(ctx, id)
		if err != nil {
			return err
		}
		e.Title, e.Subtitle, e.Date = in.Title, in.Subtitle, in.Date
		e.Location, e.Size, e.Speed = in.Location, in.Size, in.Speed
		e.Image, stale = replace(storage.DirEvent, e.Image, in.Image)
		return repo.UpdatePopular(ctx, e)
	})
	if err != nil {
		return err
	}
	s.release(stale)
	return nil
}

func (s *EventService) DeletePopular(ctx context.Context, id int64) error {
	return s.delete(ctx, data.PopularEventEntity, id)
}

func (s *EventService) ListGrid(ctx context.Context) ([]*data.GridEvent, error) {
	return data.NewEventRepository(s.db).ListGrid(ctx)
}

func (s *EventService) CreateGrid(ctx context.Context, in GridEventInput) (int64, error) {
	if err := check(in); err != nil {
		return 0, err
	}
	if in.Image == "" {
		return 0, invalid("image", "is required")
	}
	return data.NewEventRepository(s.db).CreateGrid(ctx, &data.GridEvent{
		Title:    in.Title,
		Category: in.Category,
		Date:     in.Date,
		Location: in.Location,
		Image:    in.Image,
	})
}

func (s *EventService) UpdateGrid(ctx context.Context, id int64, in GridEventInput) error {
	if err := check(in); err != nil {
		return err
	}
	var stale storage.File
	err := data.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := data.NewEventRepository(tx)
		e, err := repo.GridByID(ctx, id)
		if err != nil {
			return err
		}
		e.Title, e.Category, e.Date, e.Location = in.Title, in.Category, in.Date, in.Location
		e.Image, stale = replace(storage.DirEvent, e.Image, in.Image)
		return repo.UpdateGrid(ctx, e)
	})
	if err != nil {
		return err
	}
	s.release(stale)
	return nil
}

func (s *EventService) DeleteGrid(ctx context.Context, id int64) error {
	return s.delete(ctx, data.GridEventEntity, id)
}
