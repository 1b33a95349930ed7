package handler

import (
	"net/http"
	"wonders-cms/internal/middleware"
	"wonders-cms/internal/service"
	"wonders-cms/internal/storage"

	"github.com/go-chi/chi/v5"
)

// KulinerHandler serves culinary categories, items, their videos and pages.
type KulinerHandler struct {
	svc   *service.KulinerService
	files Files
}

func NewKulinerHandler(svc *service.KulinerService, files Files) *KulinerHandler {
	return &KulinerHandler{svc: svc, files: files}
}

func (h *KulinerHandler) listCategories(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	categories, err := h.svc.ListCategories(r.Context())
	return respond(w, r, categories, err)
}

func (h *KulinerHandler) categoryBySlug(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	category, err := h.svc.CategoryBySlug(r.Context(), chi.URLParam(r, "slug"))
	return respond(w, r, category, err)
}

func (h *KulinerHandler) saveCategoryHeroes(r *http.Request, up *uploads, in *service.KulinerCategoryInput) *middleware.AppError {
	var appErr *middleware.AppError
	if in.HeroSmall, appErr = up.Save(r, "hero_small", storage.DirKulinerKategori, storage.KindImage); appErr != nil {
		return appErr
	}
	if in.HeroLarge, appErr = up.Save(r, "hero_large", storage.DirKulinerKategori, storage.KindImage); appErr != nil {
		up.Discard()
		return appErr
	}
	return nil
}

func kulinerCategoryInput(f *form) service.KulinerCategoryInput {
	return service.KulinerCategoryInput{
		Name:        f.String("nama"),
		Description: f.Raw("deskripsi"),
		IntroText:   f.Raw("intro_text"),
		Revision:    f.Int64("revision"),
	}
}

func (h *KulinerHandler) createCategory(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	f, up, appErr := h.files.begin(r)
	if appErr != nil {
		return appErr
	}
	in := kulinerCategoryInput(f)
	if appErr := f.Err(); appErr != nil {
		return appErr
	}
	if appErr := h.saveCategoryHeroes(r, up, &in); appErr != nil {
		return appErr
	}
	id, err := h.svc.CreateCategory(r.Context(), in)
	if err != nil {
		return up.fail(err)
	}
	return created(w, r, id)
}

func (h *KulinerHandler) updateCategory(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := parseID(r, "id")
	if appErr != nil {
		return appErr
	}
	f, up, appErr := h.files.begin(r)
	if appErr != nil {
		return appErr
	}
	in := kulinerCategoryInput(f)
	if appErr := f.Err(); appErr != nil {
		return appErr
	}
	if appErr := h.saveCategoryHeroes(r, up, &in); appErr != nil {
		return appErr
	}
	if err := h.svc.UpdateCategory(r.Context(), id, in); err != nil {
		return up.fail(err)
	}
	return ok(w, r, "Category updated")
}

func (h *KulinerHandler) setCategoryHero(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := parseID(r, "id")
	if appErr != nil {
		return appErr
	}
	_, up, appErr := h.files.begin(r)
	if appErr != nil {
		return appErr
	}
	var in service.KulinerCategoryInput
	if appErr := h.saveCategoryHeroes(r, up, &in); appErr != nil {
		return appErr
	}
	if err := h.svc.SetCategoryHero(r.Context(), id, in.HeroSmall, in.HeroLarge); err != nil {
		return up.fail(err)
	}
	return ok(w, r, "Hero updated")
}

func (h *KulinerHandler) deleteCategory(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := parseID(r, "id")
	if appErr != nil {
		return appErr
	}
	if err := h.svc.DeleteCategory(r.Context(), id); err != nil {
		return middleware.FromError(err)
	}
	return ok(w, r, "Category and its items deleted")
}

func (h *KulinerHandler) itemsByCategory(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	categoryID, appErr := parseID(r, "kategoriID")
	if appErr != nil {
		return appErr
	}
	items, err := h.svc.ItemsByCategory(r.Context(), categoryID)
	return respond(w, r, items, err)
}

func itemInput(f *form) service.KulinerItemInput {
	return service.KulinerItemInput{
		CategoryID:  f.Int64("kategori_id"),
		Name:        f.String("nama"),
		Description: f.Raw("deskripsi"),
		IsSignature: f.Bool("is_signature"),
		Revision:    f.Int64("revision"),
	}
}

func (h *KulinerHandler) createItem(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	f, up, appErr := h.files.begin(r)
	if appErr != nil {
		return appErr
	}
	in := itemInput(f)
	if appErr := f.Err(); appErr != nil {
		return appErr
	}
	if in.Image, appErr = up.Save(r, "gambar", storage.DirKulinerItems, storage.KindImage); appErr != nil {
		return appErr
	}
	id, err := h.svc.CreateItem(r.Context(), in)
	if err != nil {
		return up.fail(err)
	}
	return created(w, r, id)
}

func (h *KulinerHandler) updateItem(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := parseID(r, "id")
	if appErr != nil {
		return appErr
	}
	f, up, appErr := h.files.begin(r)
	if appErr != nil {
		return appErr
	}
	in := itemInput(f)
	if appErr := f.Err(); appErr != nil {
		return appErr
	}
	if in.Image, appErr = up.Save(r, "gambar", storage.DirKulinerItems, storage.KindImage); appErr != nil {
		return appErr
	}
	if err := h.svc.UpdateItem(r.Context(), id, in); err != nil {
		return up.fail(err)
	}
	return ok(w, r, "Item updated")
}

func (h *KulinerHandler) setItemVideo(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := parseID(r, "id")
	if appErr != nil {
		return appErr
	}
	_, up, appErr := h.files.begin(r)
	if appErr != nil {
		return appErr
	}
	name, appErr := up.Save(r, "vertical_video", storage.DirKulinerItemVideos, storage.KindVideo)
	if appErr != nil {
		return appErr
	}
	if name == "" {
		return invalidField("vertical_video", "is required")
	}
	if err := h.svc.SetItemVideo(r.Context(), id, name); err != nil {
		return up.fail(err)
	}
	middleware.WriteJSON(w, r, http.StatusOK, map[string]string{"message": "Video updated", "vertical_video": name})
	return nil
}

func (h *KulinerHandler) clearItemVideo(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := parseID(r, "id")
	if appErr != nil {
		return appErr
	}
	if err := h.svc.SetItemVideo(r.Context(), id, ""); err != nil {
		return middleware.FromError(err)
	}
	return ok(w, r, "Video removed")
}

func (h *KulinerHandler) itemVideos(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := parseID(r, "id")
	if appErr != nil {
		return appErr
	}
	videos, err := h.svc.ItemVideos(r.Context(), id)
	return respond(w, r, videos, err)
}

func (h *KulinerHandler) addItemVideo(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := parseID(r, "id")
	if appErr != nil {
		return appErr
	}
	_, up, appErr := h.files.begin(r)
	if appErr != nil {
		return appErr
	}
	name, appErr := up.Save(r, "video", storage.DirKulinerItemVideos, storage.KindVideo)
	if appErr != nil {
		return appErr
	}
	videoID, err := h.svc.AddItemVideo(r.Context(), id, name)
	if err != nil {
		return up.fail(err)
	}
	return created(w, r, videoID)
}

func (h *KulinerHandler) deleteItemVideo(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := parseID(r, "videoID")
	if appErr != nil {
		return appErr
	}
	if err := h.svc.DeleteItemVideo(r.Context(), id); err != nil {
		return middleware.FromError(err)
	}
	return ok(w, r, "Video deleted")
}

func (h *KulinerHandler) deleteItem(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := parseID(r, "id")
	if appErr != nil {
		return appErr
	}
	if err := h.svc.DeleteItem(r.Context(), id); err != nil {
		return middleware.FromError(err)
	}
	return ok(w, r, "Item deleted")
}

func (h *KulinerHandler) pageBySlug(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	page, err := h.svc.PageBySlug(r.Context(), chi.URLParam(r, "slug"))
	return respond(w, r, page, err)
}

func (h *KulinerHandler) pagesByItem(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	itemID, appErr := parseID(r, "itemID")
	if appErr != nil {
		return appErr
	}
	pages, err := h.svc.PagesByItem(r.Context(), itemID)
	return respond(w, r, pages, err)
}

func kulinerPageInput(f *form) service.KulinerPageInput {
	return service.KulinerPageInput{
		ItemID:   f.OptInt64("item_id"),
		Title:    f.String("title"),
		Content:  f.Raw("content"),
		Lat:      f.OptFloat("lat"),
		Lng:      f.OptFloat("lng"),
		Revision: f.Int64("revision"),
	}
}

func (h *KulinerHandler) createPage(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	f, up, appErr := h.files.begin(r)
	if appErr != nil {
		return appErr
	}
	in := kulinerPageInput(f)
	if appErr := f.Err(); appErr != nil {
		return appErr
	}
	if in.CoverImage, appErr = up.Save(r, "cover_image", storage.DirKulinerPages, storage.KindImage); appErr != nil {
		return appErr
	}
	id, err := h.svc.CreatePage(r.Context(), in)
	if err != nil {
		return up.fail(err)
	}
	return created(w, r, id)
}

func (h *KulinerHandler) updatePage(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := parseID(r, "id")
	if appErr != nil {
		return appErr
	}
	f, up, appErr := h.files.begin(r)
	if appErr != nil {
		return appErr
	}
	in := kulinerPageInput(f)
	if appErr := f.Err(); appErr != nil {
		return appErr
	}
	if in.CoverImage, appErr = up.Save(r, "cover_image", storage.DirKulinerPages, storage.KindImage); appErr != nil {
		return appErr
	}
	if err := h.svc.UpdatePage(r.Context(), id, in); err != nil {
		return up.fail(err)
	}
	return ok(w, r, "Page updated")
}

func (h *KulinerHandler) setPageCover(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := parseID(r, "id")
	if appErr != nil {
		return appErr
	}
	_, up, appErr := h.files.begin(r)
	if appErr != nil {
		return appErr
	}
	name, appErr := up.Save(r, "cover_image", storage.DirKulinerPages, storage.KindImage)
	if appErr != nil {
		return appErr
	}
	if err := h.svc.SetPageCover(r.Context(), id, name); err != nil {
		return up.fail(err)
	}
	middleware.WriteJSON(w, r, http.StatusOK, map[string]string{"message": "Cover updated", "cover_image": name})
	return nil
}

func (h *KulinerHandler) deletePage(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := parseID(r, "id")
	if appErr != nil {
		return appErr
	}
	if err := h.svc.DeletePage(r.Context(), id); err != nil {
		return middleware.FromError(err)
	}
	return ok(w, r, "Page deleted")
}
