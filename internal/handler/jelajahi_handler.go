package handler

import (
	"net/http"
	"wonders-cms/internal/middleware"
	"wonders-cms/internal/service"
	"wonders-cms/internal/storage"

	"github.com/go-chi/chi/v5"
)

// JelajahiHandler serves exploration categories, pages and their relations.
type JelajahiHandler struct {
	svc   *service.JelajahiService
	files Files
}

func NewJelajahiHandler(svc *service.JelajahiService, files Files) *JelajahiHandler {
	return &JelajahiHandler{svc: svc, files: files}
}

func (h *JelajahiHandler) listCategories(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	categories, err := h.svc.ListCategories(r.Context())
	return respond(w, r, categories, err)
}

func (h *JelajahiHandler) categoryBySlug(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	category, err := h.svc.CategoryBySlug(r.Context(), chi.URLParam(r, "slug"))
	return respond(w, r, category, err)
}

func categoryInput(f *form) service.CategoryInput {
	return service.CategoryInput{
		Name:        f.String("nama"),
		Description: f.Raw("deskripsi"),
		IntroText:   f.Raw("intro_text"),
		Region:      f.String("wilayah"),
		Revision:    f.Int64("revision"),
	}
}

func (h *JelajahiHandler) createCategory(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	f, up, appErr := h.files.begin(r)
	if appErr != nil {
		return appErr
	}
	in := categoryInput(f)
	if appErr := f.Err(); appErr != nil {
		return appErr
	}
	if in.Image, appErr = up.Save(r, "gambar", storage.DirJelajahi, storage.KindImage); appErr != nil {
		return appErr
	}
	id, err := h.svc.CreateCategory(r.Context(), in)
	if err != nil {
		return up.fail(err)
	}
	return created(w, r, id)
}

func (h *JelajahiHandler) updateCategory(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := parseID(r, "id")
	if appErr != nil {
		return appErr
	}
	f, up, appErr := h.files.begin(r)
	if appErr != nil {
		return appErr
	}
	in := categoryInput(f)
	if appErr := f.Err(); appErr != nil {
		return appErr
	}
	if in.Image, appErr = up.Save(r, "gambar", storage.DirJelajahi, storage.KindImage); appErr != nil {
		return appErr
	}
	if err := h.svc.UpdateCategory(r.Context(), id, in); err != nil {
		return up.fail(err)
	}
	return ok(w, r, "Category updated")
}

func (h *JelajahiHandler) deleteCategory(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := parseID(r, "id")
	if appErr != nil {
		return appErr
	}
	if err := h.svc.DeleteCategory(r.Context(), id); err != nil {
		return middleware.FromError(err)
	}
	return ok(w, r, "Category and related pages deleted")
}

func (h *JelajahiHandler) listPages(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	pages, err := h.svc.ListPages(r.Context())
	return respond(w, r, pages, err)
}

func (h *JelajahiHandler) pageBySlug(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	page, err := h.svc.PageBySlug(r.Context(), chi.URLParam(r, "slug"))
	return respond(w, r, page, err)
}

func pageInput(f *form) service.PageInput {
	return service.PageInput{
		Title:      f.String("title"),
		Content:    f.Raw("content"),
		Lat:        f.OptFloat("lat"),
		Lng:        f.OptFloat("lng"),
		CategoryID: f.OptInt64("kategori_id"),
		OrderIndex: f.Int("order_index"),
		Revision:   f.Int64("revision"),
	}
}

func (h *JelajahiHandler) createPage(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	f, up, appErr := h.files.begin(r)
	if appErr != nil {
		return appErr
	}
	in := pageInput(f)
	if appErr := f.Err(); appErr != nil {
		return appErr
	}
	if in.CoverImage, appErr = up.Save(r, "cover_image", storage.DirJelajahi, storage.KindImage); appErr != nil {
		return appErr
	}
	id, err := h.svc.CreatePage(r.Context(), in)
	if err != nil {
		return up.fail(err)
	}
	return created(w, r, id)
}

func (h *JelajahiHandler) updatePage(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := parseID(r, "id")
	if appErr != nil {
		return appErr
	}
	f, up, appErr := h.files.begin(r)
	if appErr != nil {
		return appErr
	}
	in := pageInput(f)
	if appErr := f.Err(); appErr != nil {
		return appErr
	}
	if in.CoverImage, appErr = up.Save(r, "cover_image", storage.DirJelajahi, storage.KindImage); appErr != nil {
		return appErr
	}
	if err := h.svc.UpdatePage(r.Context(), id, in); err != nil {
		return up.fail(err)
	}
	return ok(w, r, "Page updated")
}

func (h *JelajahiHandler) setPageCover(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := parseID(r, "id")
	if appErr != nil {
		return appErr
	}
	_, up, appErr := h.files.begin(r)
	if appErr != nil {
		return appErr
	}
	name, appErr := up.Save(r, "cover_image", storage.DirJelajahi, storage.KindImage)
	if appErr != nil {
		return appErr
	}
	if err := h.svc.SetPageCover(r.Context(), id, name); err != nil {
		return up.fail(err)
	}
	middleware.WriteJSON(w, r, http.StatusOK, map[string]string{"message": "Cover updated", "cover_image": name})
	return nil
}

func (h *JelajahiHandler) deletePage(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := parseID(r, "id")
	if appErr != nil {
		return appErr
	}
	if err := h.svc.DeletePage(r.Context(), id); err != nil {
		return middleware.FromError(err)
	}
	return ok(w, r, "Page deleted")
}

func (h *JelajahiHandler) wisataByCategory(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	categoryID, appErr := parseID(r, "kategoriID")
	if appErr != nil {
		return appErr
	}
	relations, err := h.svc.RelationsByCategory(r.Context(), categoryID)
	return respond(w, r, relations, err)
}

func (h *JelajahiHandler) createWisata(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	f, up, appErr := h.files.begin(r)
	if appErr != nil {
		return appErr
	}
	in := pageInput(f)
	if appErr := f.Err(); appErr != nil {
		return appErr
	}
	if in.CoverImage, appErr = up.Save(r, "cover_image", storage.DirJelajahi, storage.KindImage); appErr != nil {
		return appErr
	}
	id, err := h.svc.CreateWisata(r.Context(), in)
	if err != nil {
		return up.fail(err)
	}
	return created(w, r, id)
}

func (h *JelajahiHandler) updateWisata(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := parseID(r, "id")
	if appErr != nil {
		return appErr
	}
	f, up, appErr := h.files.begin(r)
	if appErr != nil {
		return appErr
	}
	in := pageInput(f)
	if appErr := f.Err(); appErr != nil {
		return appErr
	}
	if in.CoverImage, appErr = up.Save(r, "cover_image", storage.DirJelajahi, storage.KindImage); appErr != nil {
		return appErr
	}
	if err := h.svc.UpdateWisata(r.Context(), id, in); err != nil {
		return up.fail(err)
	}
	return ok(w, r, "Wisata updated")
}

func (h *JelajahiHandler) deleteWisata(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := parseID(r, "id")
	if appErr != nil {
		return appErr
	}
	if err := h.svc.DeleteWisata(r.Context(), id); err != nil {
		return middleware.FromError(err)
	}
	return ok(w, r, "Wisata deleted")
}
