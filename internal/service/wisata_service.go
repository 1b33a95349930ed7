package service

import (
	"context"
	"errors"
	"wonders-cms/internal/data"
	"wonders-cms/internal/storage"

	"github.com/jmoiron/sqlx"
)

type WisataHeroInput struct {
	SectionName string `json:"section_name" validate:"max=255"`
	Caption     string `json:"caption"`
	Image       string `json:"image" validate:"required"`
}

type WisataCardInput struct {
	Title string `json:"title" validate:"required,max=255"`
	Image string `json:"image"`
	// StaticKey addresses a fixed layout slot; creating a card for an
	// occupied slot updates the existing card.
	StaticKey string `json:"static_key" validate:"max=64"`
}

type WisataPageInput struct {
	Title      string   `json:"title" validate:"required,max=255"`
	Category   string   `json:"category" validate:"max=255"`
	Content    string   `json:"content"`
	Lat        *float64 `json:"lat" validate:"omitempty,latitude"`
	Lng        *float64 `json:"lng" validate:"omitempty,longitude"`
	CoverImage string   `json:"cover_image"`
	Revision   int64    `json:"revision"`
}

// WisataService manages the tourism section.
type WisataService struct {
	base
}

func NewWisataService(d Deps) *WisataService {
	return &WisataService{base: newBase(d, "wisata")}
}

func (s *WisataService) repo() *data.WisataRepository {
	return data.NewWisataRepository(s.db)
}

func (s *WisataService) ListHeroes(ctx context.Context) ([]*data.WisataHero, error) {
	return s.repo().ListHeroes(ctx)
}

func (s *WisataService) CreateHero(ctx context.Context, in WisataHeroInput) (int64, error) {
	if err := check(in); err != nil {
		return 0, err
	}
	return s.repo().CreateHero(ctx, &data.WisataHero{SectionName: in.SectionName, Caption: in.Caption, Image: in.Image})
}

func (s *WisataService) DeleteHero(ctx context.Context, id int64) error {
	return s.delete(ctx, data.WisataHeroEntity, id)
}

func (s *WisataService) ListCards(ctx context.Context) ([]*data.WisataCard, error) {
	return s.repo().ListCards(ctx)
}

// SaveCard creates a card, or updates the card holding in.StaticKey.
func (s *WisataService) SaveCard(ctx context.Context, in WisataCardInput) (int64, error) {
	if err := check(in); err != nil {
		return 0, err
	}
	var (
		id    int64
		stale storage.File
	)
	err := data.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := data.NewWisataRepository(tx)
		if in.StaticKey != "" {
			c, err := repo.CardByStaticKey(ctx, in.StaticKey)
			switch {
			case err == nil:
				id = c.ID
				c.Title = in.Title
				c.Slug = slugOrEmpty(in.Title)
				c.Image, stale = replace(storage.DirWisataCards, c.Image, in.Image)
				return repo.UpdateCard(ctx, c)
			case !errors.Is(err, data.ErrNotFound):
				return err
			}
		}
		if in.Image == "" {
			return invalid("image", "is required")
		}
		card := &data.WisataCard{Title: in.Title, Slug: slugOrEmpty(in.Title), Image: in.Image}
		if in.StaticKey != "" {
			key := in.StaticKey
			card.StaticKey = &key
		}
		var err error
		id, err = repo.CreateCard(ctx, card)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.release(stale)
	return id, nil
}

func (s *WisataService) UpdateCard(ctx context.Context, id int64, in WisataCardInput) error {
	if err := check(in); err != nil {
		return err
	}
	var stale storage.File
	err := data.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := data.NewWisataRepository(tx)
		c, err := repo.CardByID(ctx, id)
		if err != nil {
			return err
		}
		c.Title = in.Title
		c.Slug = slugOrEmpty(in.Title)
		c.Image, stale = replace(storage.DirWisataCards, c.Image, in.Image)
		return repo.UpdateCard(ctx, c)
	})
	if err != nil {
		return err
	}
	s.release(stale)
	return nil
}

func (s *WisataService) DeleteCard(ctx context.Context, id int64) error {
	return s.delete(ctx, data.WisataCardEntity, id)
}

// DeleteCardByStaticKey empties a fixed layout slot.
func (s *WisataService) DeleteCardByStaticKey(ctx context.Context, key string) error {
	c, err := s.repo().CardByStaticKey(ctx, key)
	if err != nil {
		return err
	}
	return s.delete(ctx, data.WisataCardEntity, c.ID)
}

func (s *WisataService) ListPages(ctx context.Context) ([]*data.WisataPage, error) {
	return s.repo().ListPages(ctx)
}

func (s *WisataService) PageBySlug(ctx context.Context, slug string) (*data.WisataPage, error) {
	return s.repo().PageBySlug(ctx, slug)
}

func (s *WisataService) CreatePage(ctx context.Context, in WisataPageInput) (int64, error) {
	if err := check(in); err != nil {
		return 0, err
	}
	var id int64
	err := data.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		slug, err := uniqueSlug(ctx, tx, "jlj_wisata", "title", in.Title, 0)
		if err != nil {
			return err
		}
		id, err = data.NewWisataRepository(tx).CreatePage(ctx, &data.WisataPage{
			Title:      in.Title,
			Slug:       slug,
			Category:   in.Category,
			CoverImage: in.CoverImage,
			Content:    s.sanitizer.Sanitize(in.Content),
			Lat:        in.Lat,
			Lng:        in.Lng,
		})
		return err
	})
	return id, err
}

func (s *WisataService) UpdatePage(ctx context.Context, id int64, in WisataPageInput) error {
	if err := check(in); err != nil {
		return err
	}
	var stale storage.File
	err := data.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := data.NewWisataRepository(tx)
		p, err := repo.PageByID(ctx, id)
		if err != nil {
			return err
		}
		if p.Slug, err = uniqueSlug(ctx, tx, "jlj_wisata", "title", in.Title, id); err != nil {
			return err
		}
		p.Title = in.Title
		p.Category = in.Category
		p.Content = s.sanitizer.Sanitize(in.Content)
		p.Lat, p.Lng = in.Lat, in.Lng
		p.CoverImage, stale = replace(storage.DirWisataPages, p.CoverImage, in.CoverImage)
		p.Revision = in.Revision
		return repo.UpdatePage(ctx, p)
	})
	if err != nil {
		return err
	}
	s.release(stale)
	return nil
}

func (s *WisataService) SetPageCover(ctx context.Context, id int64, name string) error {
	if name == "" {
		return invalid("cover_image", "is required")
	}
	var stale storage.File
	err := data.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := data.NewWisataRepository(tx)
		p, err := repo.PageByID(ctx, id)
		if err != nil {
			return err
		}
		_, stale = replace(storage.DirWisataPages, p.CoverImage, name)
		return repo.SetPageCover(ctx, id, name)
	})
	if err != nil {
		return err
	}
	s.release(stale)
	return nil
}

func (s *WisataService) DeletePage(ctx context.Context, id int64) error {
	return s.delete(ctx, data.WisataPageEntity, id)
}
