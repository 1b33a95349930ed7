package service

import (
	"context"
	"errors"
	"fmt"
	"wonders-cms/internal/data"
	"wonders-cms/internal/storage"

	"github.com/jmoiron/sqlx"
)

// CategoryInput carries the editable fields of a jelajahi category.
type CategoryInput struct {
	Name        string `json:"nama" validate:"required,max=255"`
	Description string `json:"deskripsi"`
	IntroText   string `json:"intro_text"`
	Region      string `json:"wilayah" validate:"max=255"`
	// Image is the name of a freshly stored upload; empty keeps the current one.
	Image    string `json:"gambar"`
	Revision int64  `json:"revision"`
}

// PageInput carries the editable fields of a jelajahi page. When CategoryID
// is set on create, the page is linked to that category.
type PageInput struct {
	Title      string   `json:"title" validate:"required,max=255"`
	Content    string   `json:"content"`
	Lat        *float64 `json:"lat" validate:"omitempty,latitude"`
	Lng        *float64 `json:"lng" validate:"omitempty,longitude"`
	CoverImage string   `json:"cover_image"`
	CategoryID *int64   `json:"kategori_id"`
	OrderIndex int      `json:"order_index"`
	Revision   int64    `json:"revision"`
}

// CategoryDetail is a category with its pages in display order.
type CategoryDetail struct {
	*data.JelajahiCategory
	Pages []*data.RelationView `json:"pages"`
}

// JelajahiService manages exploration categories and pages.
type JelajahiService struct {
	base
}

func NewJelajahiService(d Deps) *JelajahiService {
	return &JelajahiService{base: newBase(d, "jelajahi")}
}

func (s *JelajahiService) repo() *data.JelajahiRepository {
	return data.NewJelajahiRepository(s.db)
}

func (s *JelajahiService) ListCategories(ctx context.Context) ([]*data.JelajahiCategory, error) {
	return s.repo().ListCategories(ctx)
}

// CategoryBySlug returns a category and the pages related to it.
func (s *JelajahiService) CategoryBySlug(ctx context.Context, slug string) (*CategoryDetail, error) {
	c, err := s.repo().CategoryBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	pages, err := s.repo().RelationsByCategory(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	return &CategoryDetail{JelajahiCategory: c, Pages: pages}, nil
}

func (s *JelajahiService) CreateCategory(ctx context.Context, in CategoryInput) (int64, error) {
	if err := check(in); err != nil {
		return 0, err
	}
	var id int64
	err := data.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		slug, err := uniqueSlug(ctx, tx, "jelajahi_kategori", "nama", in.Name, 0)
		if err != nil {
			return err
		}
		id, err = data.NewJelajahiRepository(tx).CreateCategory(ctx, &data.JelajahiCategory{
			Name:        in.Name,
			Slug:        slug,
			Description: in.Description,
			IntroText:   in.IntroText,
			Region:      in.Region,
			Image:       in.Image,
		})
		return err
	})
	return id, err
}

// UpdateCategory rewrites a category. A new image supersedes the old one,
// which is removed after the update commits.
func (s *JelajahiService) UpdateCategory(ctx context.Context, id int64, in CategoryInput) error {
	if err := check(in); err != nil {
		return err
	}
	var stale storage.File
	err := data.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := data.NewJelajahiRepository(tx)
		c, err := repo.CategoryByID(ctx, id)
		if err != nil {
			return err
		}
		if c.Slug, err = uniqueSlug(ctx, tx, "jelajahi_kategori", "nama", in.Name, id); err != nil {
			return err
		}
		c.Name = in.Name
		c.Description = in.Description
		c.IntroText = in.IntroText
		c.Region = in.Region
		c.Image, stale = replace(storage.DirJelajahi, c.Image, in.Image)
		c.Revision = in.Revision
		return repo.UpdateCategory(ctx, c)
	})
	if err != nil {
		return err
	}
	s.release(stale)
	return nil
}

// DeleteCategory removes a category, its relations and the pages they point at.
func (s *JelajahiService) DeleteCategory(ctx context.Context, id int64) error {
	return s.delete(ctx, data.JelajahiCategoryEntity, id)
}

func (s *JelajahiService) ListPages(ctx context.Context) ([]*data.Page, error) {
	return s.repo().ListPages(ctx)
}

func (s *JelajahiService) PageBySlug(ctx context.Context, slug string) (*data.Page, error) {
	return s.repo().PageBySlug(ctx, slug)
}

// RelationsByCategory lists the pages of a category.
func (s *JelajahiService) RelationsByCategory(ctx context.Context, categoryID int64) ([]*data.RelationView, error) {
	if _, err := s.repo().CategoryByID(ctx, categoryID); err != nil {
		return nil, err
	}
	return s.repo().RelationsByCategory(ctx, categoryID)
}

// CreatePage inserts a page and, when in.CategoryID is set, its relation
// row, both in one transaction.
func (s *JelajahiService) CreatePage(ctx context.Context, in PageInput) (int64, error) {
	if err := check(in); err != nil {
		return 0, err
	}
	var id int64
	err := data.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		var err error
		id, err = s.createPage(ctx, tx, in)
		return err
	})
	return id, err
}

func (s *JelajahiService) createPage(ctx context.Context, tx *sqlx.Tx, in PageInput) (int64, error) {
	repo := data.NewJelajahiRepository(tx)
	if in.CategoryID != nil {
		if _, err := repo.CategoryByID(ctx, *in.CategoryID); err != nil {
			return 0, err
		}
	}
	slug, err := uniqueSlug(ctx, tx, "jelajahi_pages", "title", in.Title, 0)
	if err != nil {
		return 0, err
	}
	id, err := repo.CreatePage(ctx, &data.Page{
		Title:      in.Title,
		Slug:       slug,
		Content:    s.sanitizer.Sanitize(in.Content),
		Lat:        in.Lat,
		Lng:        in.Lng,
		CoverImage: in.CoverImage,
	})
	if err != nil {
		return 0, err
	}
	if in.CategoryID != nil {
		rel := &data.Relation{CategoryID: *in.CategoryID, PageID: id, OrderIndex: in.OrderIndex}
		if _, err := repo.CreateRelation(ctx, rel); err != nil {
			return 0, err
		}
	}
	return id, nil
}

// UpdatePage rewrites a page. The slug follows the title.
func (s *JelajahiService) UpdatePage(ctx context.Context, id int64, in PageInput) error {
	if err := check(in); err != nil {
		return err
	}
	var stale storage.File
	err := data.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		var err error
		stale, err = s.updatePage(ctx, tx, id, in)
		return err
	})
	if err != nil {
		return err
	}
	s.release(stale)
	return nil
}

func (s *JelajahiService) updatePage(ctx context.Context, tx *sqlx.Tx, id int64, in PageInput) (storage.File, error) {
	repo := data.NewJelajahiRepository(tx)
	p, err := repo.PageByID(ctx, id)
	if err != nil {
		return storage.File{}, err
	}
	if p.Slug, err = uniqueSlug(ctx, tx, "jelajahi_pages", "title", in.Title, id); err != nil {
		return storage.File{}, err
	}
	var stale storage.File
	p.Title = in.Title
	p.Content = s.sanitizer.Sanitize(in.Content)
	p.Lat, p.Lng = in.Lat, in.Lng
	p.CoverImage, stale = replace(storage.DirJelajahi, p.CoverImage, in.CoverImage)
	p.Revision = in.Revision
	return stale, repo.UpdatePage(ctx, p)
}

// SetPageCover replaces the cover image of a page.
func (s *JelajahiService) SetPageCover(ctx context.Context, id int64, name string) error {
	if name == "" {
		return invalid("cover_image", "is required")
	}
	var stale storage.File
	err := data.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := data.NewJelajahiRepository(tx)
		p, err := repo.PageByID(ctx, id)
		if err != nil {
			return err
		}
		_, stale = replace(storage.DirJelajahi, p.CoverImage, name)
		return repo.SetPageCover(ctx, id, name)
	})
	if err != nil {
		return err
	}
	s.release(stale)
	return nil
}

// DeletePage removes a page and every relation pointing at it.
func (s *JelajahiService) DeletePage(ctx context.Context, id int64) error {
	return s.delete(ctx, data.JelajahiPageEntity, id)
}

// CreateWisata creates a page inside a category. Both the category and the
// cover image are mandatory.
func (s *JelajahiService) CreateWisata(ctx context.Context, in PageInput) (int64, error) {
	if in.CategoryID == nil {
		return 0, invalid("kategori_id", "is required")
	}
	if in.CoverImage == "" {
		return 0, invalid("cover_image", "is required")
	}
	return s.CreatePage(ctx, in)
}

// UpdateWisata rewrites the page behind a relation and moves the relation
// to in.OrderIndex.
func (s *JelajahiService) UpdateWisata(ctx context.Context, relationID int64, in PageInput) error {
	if err := check(in); err != nil {
		return err
	}
	var stale storage.File
	err := data.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := data.NewJelajahiRepository(tx)
		rel, err := repo.RelationByID(ctx, relationID)
		if err != nil {
			return err
		}
		if stale, err = s.updatePage(ctx, tx, rel.PageID, in); err != nil {
			return err
		}
		return repo.SetRelationOrder(ctx, relationID, in.OrderIndex)
	})
	if err != nil {
		return err
	}
	s.release(stale)
	return nil
}

// DeleteWisata removes a relation together with its page.
func (s *JelajahiService) DeleteWisata(ctx context.Context, relationID int64) error {
	return s.delete(ctx, data.JelajahiRelationEntity, relationID)
}

// ensurePage makes sure a jelajahi page with the given slug exists and
// returns its slug. It runs inside the caller's transaction.
func (b *base) ensurePage(ctx context.Context, tx *sqlx.Tx, slug, title, content string) (string, error) {
	repo := data.NewJelajahiRepository(tx)
	p, err := repo.PageBySlug(ctx, slug)
	if err == nil {
		return p.Slug, nil
	}
	if !errors.Is(err, data.ErrNotFound) {
		return "", err
	}
	unique, err := data.UniqueSlug(ctx, tx, "jelajahi_pages", slug, 0)
	if err != nil {
		return "", err
	}
	if _, err := repo.CreatePage(ctx, &data.Page{Title: title, Slug: unique, Content: b.sanitizer.Sanitize(content)}); err != nil {
		return "", fmt.Errorf("failed to create detail page %s: %w", unique, err)
	}
	return unique, nil
}
