package service

import (
	"context"
	"wonders-cms/internal/data"
	"wonders-cms/internal/storage"

	"github.com/jmoiron/sqlx"
)

type KulinerCategoryInput struct {
	Name        string `json:"nama" validate:"required,max=255"`
	Description string `json:"deskripsi"`
	IntroText   string `json:"intro_text"`
	HeroSmall   string `json:"hero_small"`
	HeroLarge   string `json:"hero_large"`
	Revision    int64  `json:"revision"`
}

type KulinerItemInput struct {
	CategoryID  int64  `json:"kategori_id" validate:"required"`
	Name        string `json:"nama" validate:"required,max=255"`
	Description string `json:"deskripsi"`
	Image       string `json:"gambar"`
	IsSignature bool   `json:"is_signature"`
	Revision    int64  `json:"revision"`
}

type KulinerPageInput struct {
	ItemID     *int64   `json:"item_id"`
	Title      string   `json:"title" validate:"required,max=255"`
	Content    string   `json:"content"`
	Lat        *float64 `json:"lat" validate:"omitempty,latitude"`
	Lng        *float64 `json:"lng" validate:"omitempty,longitude"`
	CoverImage string   `json:"cover_image"`
	Revision   int64    `json:"revision"`
}

// KulinerCategoryDetail is a culinary category with its items.
type KulinerCategoryDetail struct {
	*data.KulinerCategory
	Items []*data.KulinerItem `json:"items"`
}

// KulinerService manages culinary categories, items, item videos and pages.
type KulinerService struct {
	base
}

func NewKulinerService(d Deps) *KulinerService {
	return &KulinerService{base: newBase(d, "kuliner")}
}

func (s *KulinerService) repo() *data.KulinerRepository {
	return data.NewKulinerRepository(s.db)
}

func (s *KulinerService) ListCategories(ctx context.Context) ([]*data.KulinerCategory, error) {
	return s.repo().ListCategories(ctx)
}

func (s *KulinerService) CategoryBySlug(ctx context.Context, slug string) (*KulinerCategoryDetail, error) {
	c, err := s.repo().CategoryBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	items, err := s.repo().ItemsByCategory(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	return &KulinerCategoryDetail{KulinerCategory: c, Items: items}, nil
}

func (s *KulinerService) CreateCategory(ctx context.Context, in KulinerCategoryInput) (int64, error) {
	if err := check(in); err != nil {
		return 0, err
	}
	var id int64
	err := data.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		slug, err := uniqueSlug(ctx, tx, "kuliner_kategori", "nama", in.Name, 0)
		if err != nil {
			return err
		}
		id, err = data.NewKulinerRepository(tx).CreateCategory(ctx, &data.KulinerCategory{
			Name:        in.Name,
			Slug:        slug,
			Description: in.Description,
			IntroText:   in.IntroText,
			HeroSmall:   in.HeroSmall,
			HeroLarge:   in.HeroLarge,
		})
		return err
	})
	return id, err
}

func (s *KulinerService) UpdateCategory(ctx context.Context, id int64, in KulinerCategoryInput) error {
	if err := check(in); err != nil {
		return err
	}
	var staleSmall, staleLarge storage.File
	err := data.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := data.NewKulinerRepository(tx)
		c, err := repo.CategoryByID(ctx, id)
		if err != nil {
			return err
		}
		if c.Slug, err = uniqueSlug(ctx, tx, "kuliner_kategori", "nama", in.Name, id); err != nil {
			return err
		}
		c.Name = in.Name
		c.Description = in.Description
		c.IntroText = in.IntroText
		c.HeroSmall, staleSmall = replace(storage.DirKulinerKategori, c.HeroSmall, in.HeroSmall)
		c.HeroLarge, staleLarge = replace(storage.DirKulinerKategori, c.HeroLarge, in.HeroLarge)
		c.Revision = in.Revision
		return repo.UpdateCategory(ctx, c)
	})
	if err != nil {
		return err
	}
	s.release(staleSmall, staleLarge)
	return nil
}

// SetCategoryHero replaces either or both hero images of a category.
func (s *KulinerService) SetCategoryHero(ctx context.Context, id int64, small, large string) error {
	if small == "" && large == "" {
		return invalid("hero_small", "at least one hero image is required")
	}
	var staleSmall, staleLarge storage.File
	err := data.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := data.NewKulinerRepository(tx)
		c, err := repo.CategoryByID(ctx, id)
		if err != nil {
			return err
		}
		c.HeroSmall, staleSmall = replace(storage.DirKulinerKategori, c.HeroSmall, small)
		c.HeroLarge, staleLarge = replace(storage.DirKulinerKategori, c.HeroLarge, large)
		c.Revision = 0
		return repo.UpdateCategory(ctx, c)
	})
	if err != nil {
		return err
	}
	s.release(staleSmall, staleLarge)
	return nil
}

// DeleteCategory removes a category with its items, their videos and pages.
func (s *KulinerService) DeleteCategory(ctx context.Context, id int64) error {
	return s.delete(ctx, data.KulinerCategoryEntity, id)
}

func (s *KulinerService) ItemsByCategory(ctx context.Context, categoryID int64) ([]*data.KulinerItem, error) {
	if _, err := s.repo().CategoryByID(ctx, categoryID); err != nil {
		return nil, err
	}
	return s.repo().ItemsByCategory(ctx, categoryID)
}

func (s *KulinerService) CreateItem(ctx context.Context, in KulinerItemInput) (int64, error) {
	if err := check(in); err != nil {
		return 0, err
	}
	var id int64
	err := data.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := data.NewKulinerRepository(tx)
		if _, err := repo.CategoryByID(ctx, in.CategoryID); err != nil {
			return err
		}
		slug, err := uniqueSlug(ctx, tx, "kuliner_item", "nama", in.Name, 0)
		if err != nil {
			return err
		}
		id, err = repo.CreateItem(ctx, &data.KulinerItem{
			CategoryID:  in.CategoryID,
			Name:        in.Name,
			Slug:        slug,
			Description: in.Description,
			Image:       in.Image,
			IsSignature: in.IsSignature,
		})
		return err
	})
	return id, err
}

func (s *KulinerService) UpdateItem(ctx context.Context, id int64, in KulinerItemInput) error {
	if err := check(in); err != nil {
		return err
	}
	var stale storage.File
	err := data.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := data.NewKulinerRepository(tx)
		it, err := repo.ItemByID(ctx, id)
		if err != nil {
			return err
		}
		if in.CategoryID != it.CategoryID {
			if _, err := repo.CategoryByID(ctx, in.CategoryID); err != nil {
				return err
			}
		}
		if it.Slug, err = uniqueSlug(ctx, tx, "kuliner_item", "nama", in.Name, id); err != nil {
			return err
		}
		it.CategoryID = in.CategoryID
		it.Name = in.Name
		it.Description = in.Description
		it.IsSignature = in.IsSignature
		it.Image, stale = replace(storage.DirKulinerItems, it.Image, in.Image)
		it.Revision = in.Revision
		return repo.UpdateItem(ctx, it)
	})
	if err != nil {
		return err
	}
	s.release(stale)
	return nil
}

// SetItemVideo replaces the primary vertical video of an item. An empty
// name clears it.
func (s *KulinerService) SetItemVideo(ctx context.Context, id int64, name string) error {
	var stale storage.File
	err := data.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := data.NewKulinerRepository(tx)
		it, err := repo.ItemByID(ctx, id)
		if err != nil {
			return err
		}
		if it.VerticalVideo != name {
			stale = storage.File{Dir: storage.DirKulinerItemVideos, Name: it.VerticalVideo}
		}
		return repo.SetItemVideo(ctx, id, name)
	})
	if err != nil {
		return err
	}
	s.release(stale)
	return nil
}

func (s *KulinerService) ItemVideos(ctx context.Context, itemID int64) ([]*data.KulinerItemVideo, error) {
	if _, err := s.repo().ItemByID(ctx, itemID); err != nil {
		return nil, err
	}
	return s.repo().ItemVideos(ctx, itemID)
}

func (s *KulinerService) AddItemVideo(ctx context.Context, itemID int64, name string) (int64, error) {
	if name == "" {
		return 0, invalid("video", "is required")
	}
	var id int64
	err := data.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := data.NewKulinerRepository(tx)
		if _, err := repo.ItemByID(ctx, itemID); err != nil {
			return err
		}
		var err error
		id, err = repo.AddItemVideo(ctx, &data.KulinerItemVideo{ItemID: itemID, Filename: name})
		return err
	})
	return id, err
}

func (s *KulinerService) DeleteItemVideo(ctx context.Context, videoID int64) error {
	return s.delete(ctx, data.KulinerItemVideoEntity, videoID)
}

// DeleteItem removes an item with its videos and pages.
func (s *KulinerService) DeleteItem(ctx context.Context, id int64) error {
	return s.delete(ctx, data.KulinerItemEntity, id)
}

func (s *KulinerService) PageBySlug(ctx context.Context, slug string) (*data.KulinerPage, error) {
	return s.repo().PageBySlug(ctx, slug)
}

func (s *KulinerService) PagesByItem(ctx context.Context, itemID int64) ([]*data.KulinerPage, error) {
	if _, err := s.repo().ItemByID(ctx, itemID); err != nil {
		return nil, err
	}
	return s.repo().PagesByItem(ctx, itemID)
}

func (s *KulinerService) CreatePage(ctx context.Context, in KulinerPageInput) (int64, error) {
	if err := check(in); err != nil {
		return 0, err
	}
	var id int64
	err := data.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := data.NewKulinerRepository(tx)
		if in.ItemID != nil {
			if _, err := repo.ItemByID(ctx, *in.ItemID); err != nil {
				return err
			}
		}
		slug, err := uniqueSlug(ctx, tx, "kuliner_pages", "title", in.Title, 0)
		if err != nil {
			return err
		}
		id, err = repo.CreatePage(ctx, &data.KulinerPage{
			ItemID:     in.ItemID,
			Title:      in.Title,
			Slug:       slug,
			Content:    s.sanitizer.Sanitize(in.Content),
			Lat:        in.Lat,
			Lng:        in.Lng,
			CoverImage: in.CoverImage,
		})
		return err
	})
	return id, err
}

func (s *KulinerService) UpdatePage(ctx context.Context, id int64, in KulinerPageInput) error {
	if err := check(in); err != nil {
		return err
	}
	var stale storage.File
	err := data.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := data.NewKulinerRepository(tx)
		p, err := repo.PageByID(ctx, id)
		if err != nil {
			return err
		}
		if in.ItemID != nil {
			if _, err := repo.ItemByID(ctx, *in.ItemID); err != nil {
				return err
			}
			p.ItemID = in.ItemID
		}
		if p.Slug, err = uniqueSlug(ctx, tx, "kuliner_pages", "title", in.Title, id); err != nil {
			return err
		}
		p.Title = in.Title
		p.Content = s.sanitizer.Sanitize(in.Content)
		p.Lat, p.Lng = in.Lat, in.Lng
		p.CoverImage, stale = replace(storage.DirKulinerPages, p.CoverImage, in.CoverImage)
		p.Revision = in.Revision
		return repo.UpdatePage(ctx, p)
	})
	if err != nil {
		return err
	}
	s.release(stale)
	return nil
}

func (s *KulinerService) SetPageCover(ctx context.Context, id int64, name string) error {
	if name == "" {
		return invalid("cover_image", "is required")
	}
	var stale storage.File
	err := data.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := data.NewKulinerRepository(tx)
		p, err := repo.PageByID(ctx, id)
		if err != nil {
			return err
		}
		_, stale = replace(storage.DirKulinerPages, p.CoverImage, name)
		return repo.SetPageCover(ctx, id, name)
	})
	if err != nil {
		return err
	}
	s.release(stale)
	return nil
}

func (s *KulinerService) DeletePage(ctx context.Context, id int64) error {
	return s.delete(ctx, data.KulinerPageEntity, id)
}
