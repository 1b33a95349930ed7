//go:build integration

package service

import (
	"context"
	"errors"
	"testing"
	"wonders-cms/internal/data"
)

func TestJelajahiService_UpdateCategoryReplacesImage(t *testing.T) {
	deps, files := setupServiceTest(t)
	svc := NewJelajahiService(deps)
	ctx := context.Background()

	id, err := svc.CreateCategory(ctx, CategoryInput{Name: "Wisata Alam", Image: "old.jpg"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = svc.UpdateCategory(ctx, id, CategoryInput{Name: "Wisata Alam Aceh", Image: "new.jpg"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c, err := data.NewJelajahiRepository(deps.DB).CategoryByID(ctx, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Image != "new.jpg" {
		t.Errorf("expected image new.jpg, got %s", c.Image)
	}
	if c.Slug != "wisata-alam-aceh" {
		t.Errorf("expected slug to follow the name, got %s", c.Slug)
	}
	if !sameNames(files.names(), []string{"old.jpg"}) {
		t.Errorf("expected old.jpg to be removed, got %v", files.names())
	}
}

func TestJelajahiService_UpdateWithoutImageKeepsFile(t *testing.T) {
	deps, files := setupServiceTest(t)
	svc := NewJelajahiService(deps)
	ctx := context.Background()

	id, _ := svc.CreateCategory(ctx, CategoryInput{Name: "Budaya", Image: "keep.jpg"})
	if err := svc.UpdateCategory(ctx, id, CategoryInput{Name: "Budaya", Region: "Banda Aceh"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files.names()) != 0 {
		t.Errorf("expected no removals, got %v", files.names())
	}
}

func TestJelajahiService_StaleRevisionKeepsOldFile(t *testing.T) {
	deps, files := setupServiceTest(t)
	svc := NewJelajahiService(deps)
	ctx := context.Background()

	id, _ := svc.CreateCategory(ctx, CategoryInput{Name: "Sejarah", Image: "old.jpg"})
	if err := svc.UpdateCategory(ctx, id, CategoryInput{Name: "Sejarah", Revision: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := svc.UpdateCategory(ctx, id, CategoryInput{Name: "Sejarah", Image: "new.jpg", Revision: 1})
	if !errors.Is(err, data.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if len(files.names()) != 0 {
		t.Errorf("expected no removals after a failed update, got %v", files.names())
	}
}

func TestJelajahiService_DeleteCategoryRemovesFilesAfterCommit(t *testing.T) {
	deps, files := setupServiceTest(t)
	svc := NewJelajahiService(deps)
	ctx := context.Background()

	catID, _ := svc.CreateCategory(ctx, CategoryInput{Name: "Wisata Alam", Image: "cat.jpg"})
	if _, err := svc.CreateWisata(ctx, PageInput{Title: "Pantai Indah", CategoryID: &catID, CoverImage: "pantai.jpg"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.PageBySlug(ctx, "pantai-indah"); err != nil {
		t.Fatalf("expected page before delete: %v", err)
	}
	if err := svc.DeleteCategory(ctx, catID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.PageBySlug(ctx, "pantai-indah"); !errors.Is(err, data.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if !sameNames(files.names(), []string{"cat.jpg", "pantai.jpg"}) {
		t.Errorf("unexpected removals: %v", files.names())
	}
	if err := svc.DeleteCategory(ctx, catID); !errors.Is(err, data.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestJelajahiService_Validation(t *testing.T) {
	deps, _ := setupServiceTest(t)
	svc := NewJelajahiService(deps)
	ctx := context.Background()

	tests := []struct {
		name  string
		in    PageInput
		field string
	}{
		{"missing title", PageInput{}, "title"},
		{"title without letters", PageInput{Title: "!!!"}, "title"},
		{"wisata without category", PageInput{Title: "Pantai", CoverImage: "a.jpg"}, "kategori_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if tt.field == "kategori_id" {
				_, err = svc.CreateWisata(ctx, tt.in)
			} else {
				_, err = svc.CreatePage(ctx, tt.in)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != tt.field {
				t.Errorf("expected field %s, got %s", tt.field, ve.Field)
			}
		})
	}

	missing := int64(99)
	if _, err := svc.CreatePage(ctx, PageInput{Title: "Pantai", CategoryID: &missing}); !errors.Is(err, data.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown category, got %v", err)
	}
	if n := count(t, deps.DB, "SELECT COUNT(*) FROM jelajahi_pages"); n != 0 {
		t.Errorf("expected no pages, got %d", n)
	}
}

func TestJelajahiService_DuplicateTitlesGetSuffix(t *testing.T) {
	deps, _ := setupServiceTest(t)
	svc := NewJelajahiService(deps)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.CreatePage(ctx, PageInput{Title: "Pantai Indah"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	for _, slug := range []string{"pantai-indah", "pantai-indah-2", "pantai-indah-3"} {
		if _, err := svc.PageBySlug(ctx, slug); err != nil {
			t.Errorf("expected page %s: %v", slug, err)
		}
	}
}

func TestJelajahiService_UpdateWisata(t *testing.T) {
	deps, files := setupServiceTest(t)
	svc := NewJelajahiService(deps)
	ctx := context.Background()

	catID, _ := svc.CreateCategory(ctx, CategoryInput{Name: "Alam"})
	if _, err := svc.CreateWisata(ctx, PageInput{Title: "Air Terjun", CategoryID: &catID, CoverImage: "a.jpg"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rels, err := svc.RelationsByCategory(ctx, catID)
	if err != nil || len(rels) != 1 {
		t.Fatalf("expected one relation, got %d (%v)", len(rels), err)
	}

	err = svc.UpdateWisata(ctx, rels[0].ID, PageInput{Title: "Air Terjun Suhom", CoverImage: "b.jpg", OrderIndex: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rels, _ = svc.RelationsByCategory(ctx, catID)
	if rels[0].Slug != "air-terjun-suhom" || rels[0].OrderIndex != 4 || rels[0].CoverImage != "b.jpg" {
		t.Errorf("unexpected relation after update: %+v", rels[0])
	}
	if !sameNames(files.names(), []string{"a.jpg"}) {
		t.Errorf("expected a.jpg to be removed, got %v", files.names())
	}

	if err := svc.DeleteWisata(ctx, rels[0].ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := count(t, deps.DB, "SELECT COUNT(*) FROM jelajahi_pages"); n != 0 {
		t.Errorf("expected the page to be deleted with its relation, got %d pages", n)
	}
}
