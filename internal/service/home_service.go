package service

import (
	"context"
	"wonders-cms/internal/data"

	"github.com/jmoiron/sqlx"
)

type HomeVideoInput struct {
	Title   string `json:"title" validate:"required,max=255"`
	Caption string `json:"caption"`
	Video   string `json:"video" validate:"required"`
}

// HomeService manages the landing page videos.
type HomeService struct {
	base
}

func NewHomeService(d Deps) *HomeService {
	return &HomeService{base: newBase(d, "home")}
}

func (s *HomeService) List(ctx context.Context) ([]*data.HomeVideo, error) {
	return data.NewHomeRepository(s.db).List(ctx)
}

// Create appends a video to the landing page. A jelajahi page with the
// same slug is created alongside when none exists, so every video links to
// a detail article.
func (s *HomeService) Create(ctx context.Context, in HomeVideoInput) (int64, error) {
	if err := check(in); err != nil {
		return 0, err
	}
	var id int64
	err := data.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := data.NewHomeRepository(tx)
		slug, err := uniqueSlug(ctx, tx, "home_videos", "title", in.Title, 0)
		if err != nil {
			return err
		}
		order, err := repo.NextSortOrder(ctx)
		if err != nil {
			return err
		}
		id, err = repo.Create(ctx, &data.HomeVideo{
			Title:     in.Title,
			Caption:   in.Caption,
			Slug:      slug,
			Video:     in.Video,
			SortOrder: order,
		})
		if err != nil {
			return err
		}
		_, err = s.ensurePage(ctx, tx, slug, in.Title, in.Caption)
		return err
	})
	return id, err
}

// Reorder assigns positions 1..n following ids.
func (s *HomeService) Reorder(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return invalid("ids", "is required")
	}
	return data.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := data.NewHomeRepository(tx)
		for i, id := range ids {
			if err := repo.SetSortOrder(ctx, id, i+1); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *HomeService) Delete(ctx context.Context, id int64) error {
	return s.delete(ctx, data.HomeVideoEntity, id)
}
