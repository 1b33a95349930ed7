package handler

import (
	"net/http"
	"wonders-cms/internal/middleware"
	"wonders-cms/internal/service"
	"wonders-cms/internal/storage"

	"github.com/go-chi/chi/v5"
)

// WisataHandler serves the tourism hero images, cards and detail pages.
type WisataHandler struct {
	svc   *service.WisataService
	files Files
}

func NewWisataHandler(svc *service.WisataService, files Files) *WisataHandler {
	return &WisataHandler{svc: svc, files: files}
}

func (h *WisataHandler) listHeroes(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	heroes, err := h.svc.ListHeroes(r.Context())
	return respond(w, r, heroes, err)
}

func (h *WisataHandler) createHero(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	f, up, appErr := h.files.begin(r)
	if appErr != nil {
		return appErr
	}
	in := service.WisataHeroInput{
		SectionName: f.String("section_name"),
		Caption:     f.String("caption"),
	}
	if in.Image, appErr = up.Save(r, "image", storage.DirWisataHero, storage.KindImage); appErr != nil {
		return appErr
	}
	id, err := h.svc.CreateHero(r.Context(), in)
	if err != nil {
		return up.fail(err)
	}
	return created(w, r, id)
}

func (h *WisataHandler) deleteHero(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := parseID(r, "id")
	if appErr != nil {
		return appErr
	}
	if err := h.svc.DeleteHero(r.Context(), id); err != nil {
		return middleware.FromError(err)
	}
	return ok(w, r, "Hero deleted")
}

func (h *WisataHandler) listCards(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	cards, err := h.svc.ListCards(r.Context())
	return respond(w, r, cards, err)
}

func cardInput(f *form) service.WisataCardInput {
	return service.WisataCardInput{
		Title:     f.String("title"),
		StaticKey: f.String("static_key"),
	}
}

// saveCard creates a card, or updates the card occupying static_key.
func (h *WisataHandler) saveCard(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	f, up, appErr := h.files.begin(r)
	if appErr != nil {
		return appErr
	}
	in := cardInput(f)
	if in.Image, appErr = up.Save(r, "image", storage.DirWisataCards, storage.KindImage); appErr != nil {
		return appErr
	}
	id, err := h.svc.SaveCard(r.Context(), in)
	if err != nil {
		return up.fail(err)
	}
	return created(w, r, id)
}

func (h *WisataHandler) updateCard(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := parseID(r, "id")
	if appErr != nil {
		return appErr
	}
	f, up, appErr := h.files.begin(r)
	if appErr != nil {
		return appErr
	}
	in := cardInput(f)
	if in.Image, appErr = up.Save(r, "image", storage.DirWisataCards, storage.KindImage); appErr != nil {
		return appErr
	}
	if err := h.svc.UpdateCard(r.Context(), id, in); err != nil {
		return up.fail(err)
	}
	return ok(w, r, "Card updated")
}

func (h *WisataHandler) deleteCard(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := parseID(r, "id")
	if appErr != nil {
		return appErr
	}
	if err := h.svc.DeleteCard(r.Context(), id); err != nil {
		return middleware.FromError(err)
	}
	return ok(w, r, "Card deleted")
}

func (h *WisataHandler) deleteCardByStaticKey(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if err := h.svc.DeleteCardByStaticKey(r.Context(), chi.URLParam(r, "key")); err != nil {
		return middleware.FromError(err)
	}
	return ok(w, r, "Card deleted")
}

func (h *WisataHandler) listPages(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	pages, err := h.svc.ListPages(r.Context())
	return respond(w, r, pages, err)
}

func (h *WisataHandler) pageBySlug(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	page, err := h.svc.PageBySlug(r.Context(), chi.URLParam(r, "slug"))
	return respond(w, r, page, err)
}

func wisataPageInput(f *form) service.WisataPageInput {
	return service.WisataPageInput{
		Title:    f.String("title"),
		Category: f.String("category"),
		Content:  f.Raw("content"),
		Lat:      f.OptFloat("lat"),
		Lng:      f.OptFloat("lng"),
		Revision: f.Int64("revision"),
	}
}

func (h *WisataHandler) createPage(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	f, up, appErr := h.files.begin(r)
	if appErr != nil {
		return appErr
	}
	in := wisataPageInput(f)
	if appErr := f.Err(); appErr != nil {
		return appErr
	}
	if in.CoverImage, appErr = up.Save(r, "cover_image", storage.DirWisataPages, storage.KindImage); appErr != nil {
		return appErr
	}
	id, err := h.svc.CreatePage(r.Context(), in)
	if err != nil {
		return up.fail(err)
	}
	return created(w, r, id)
}

func (h *WisataHandler) updatePage(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := parseID(r, "id")
	if appErr != nil {
		return appErr
	}
	f, up, appErr := h.files.begin(r)
	if appErr != nil {
		return appErr
	}
	in := wisataPageInput(f)
	if appErr := f.Err(); appErr != nil {
		return appErr
	}
	if in.CoverImage, appErr = up.Save(r, "cover_image", storage.DirWisataPages, storage.KindImage); appErr != nil {
		return appErr
	}
	if err := h.svc.UpdatePage(r.Context(), id, in); err != nil {
		return up.fail(err)
	}
	return ok(w, r, "Page updated")
}

func (h *WisataHandler) setPageCover(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := parseID(r, "id")
	if appErr != nil {
		return appErr
	}
	_, up, appErr := h.files.begin(r)
	if appErr != nil {
		return appErr
	}
	name, appErr := up.Save(r, "cover_image", storage.DirWisataPages, storage.KindImage)
	if appErr != nil {
		return appErr
	}
	if err := h.svc.SetPageCover(r.Context(), id, name); err != nil {
		return up.fail(err)
	}
	middleware.WriteJSON(w, r, http.StatusOK, map[string]string{"message": "Cover updated", "cover_image": name})
	return nil
}

func (h *WisataHandler) deletePage(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := parseID(r, "id")
	if appErr != nil {
		return appErr
	}
	if err := h.svc.DeletePage(r.Context(), id); err != nil {
		return middleware.FromError(err)
	}
	return ok(w, r, "Page deleted")
}
