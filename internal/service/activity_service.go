package service

import (
	"context"
	"wonders-cms/internal/data"
	"wonders-cms/internal/storage"

	"github.com/jmoiron/sqlx"
)

type ActivityInput struct {
	Title       string `json:"title" validate:"required,max=255"`
	Subtitle    string `json:"subtitle" validate:"max=255"`
	Description string `json:"description"`
	Image       string `json:"image"`
	OrderIndex  *int   `json:"order_index"`
}

type HeroInput struct {
	Title    string `json:"title" validate:"max=255"`
	Subtitle string `json:"subtitle" validate:"max=255"`
	Image    string `json:"image"`
}

// ActivityService manages things-to-do activities and page heroes.
type ActivityService struct {
	base
}

func NewActivityService(d Deps) *ActivityService {
	return &ActivityService{base: newBase(d, "activity")}
}

func (s *ActivityService) List(ctx context.Context) ([]*data.Activity, error) {
	return data.NewActivityRepository(s.db).List(ctx)
}

// Create inserts an activity together with the jelajahi page holding its
// article. The activity keeps the page slug in detail_slug.
func (s *ActivityService) Create(ctx context.Context, in ActivityInput) (int64, error) {
	if err := check(in); err != nil {
		return 0, err
	}
	if in.Image == "" {
		return 0, invalid("image", "is required")
	}
	var id int64
	err := data.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := data.NewActivityRepository(tx)
		slug, err := uniqueSlug(ctx, tx, "things_to_do_activity", "title", in.Title, 0)
		if err != nil {
			return err
		}
		order := 0
		if in.OrderIndex != nil {
			order = *in.OrderIndex
		} else if order, err = repo.NextOrder(ctx); err != nil {
			return err
		}
		detail, err := s.ensurePage(ctx, tx, slug, in.Title, in.Description)
		if err != nil {
			return err
		}
		id, err = repo.Create(ctx, &data.Activity{
			Title:       in.Title,
			Slug:        slug,
			Subtitle:    in.Subtitle,
			Description: s.sanitizer.Sanitize(in.Description),
			Image:       in.Image,
			DetailSlug:  detail,
			OrderIndex:  order,
		})
		return err
	})
	return id, err
}

func (s *ActivityService) Update(ctx context.Context, id int64, in ActivityInput) error {
	if err := check(in); err != nil {
		return err
	}
	var stale storage.File
	err := data.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := data.NewActivityRepository(tx)
		a, err := repo.ByID(ctx, id)
		if err != nil {
			return err
		}
		if a.Slug, err = uniqueSlug(ctx, tx, "things_to_do_activity", "title", in.Title, id); err != nil {
			return err
		}
		a.Title = in.Title
		a.Subtitle = in.Subtitle
		a.Description = s.sanitizer.Sanitize(in.Description)
		if in.OrderIndex != nil {
			a.OrderIndex = *in.OrderIndex
		}
		a.Image, stale = replace(storage.DirThingsToDo, a.Image, in.Image)
		return repo.Update(ctx, a)
	})
	if err != nil {
		return err
	}
	s.release(stale)
	return nil
}

// Delete removes the activity. Its detail page is an ordinary jelajahi page
// and stays.
func (s *ActivityService) Delete(ctx context.Context, id int64) error {
	return s.delete(ctx, data.ActivityEntity, id)
}

func (s *ActivityService) Hero(ctx context.Context, page string) (*data.Hero, error) {
	return data.NewActivityRepository(s.db).HeroByPage(ctx, page)
}

// SetHero creates or replaces the hero of a site page.
func (s *ActivityService) SetHero(ctx context.Context, page string, in HeroInput) error {
	if err := check(in); err != nil {
		return err
	}
	if page == "" {
		return invalid("page", "is required")
	}
	var stale storage.File
	err := data.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := data.NewActivityRepository(tx)
		h := &data.Hero{Page: page, Title: in.Title, Subtitle: in.Subtitle, Image: in.Image}
		if in.Image == "" {
			// Text-only updates keep the current image.
			current, err := repo.HeroByPage(ctx, page)
			if err == nil {
				h.Image = current.Image
			}
		}
		previous, err := repo.UpsertHero(ctx, h)
		if err != nil {
			return err
		}
		if previous != h.Image {
			stale = storage.File{Dir: storage.DirHero, Name: previous}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.release(stale)
	return nil
}
