package handler

import (
	"net/http"
	"wonders-cms/internal/middleware"
	"wonders-cms/internal/service"
	"wonders-cms/internal/storage"

	"github.com/go-chi/chi/v5"
)

// ActivityHandler serves things-to-do activities and the page heroes.
type ActivityHandler struct {
	svc   *service.ActivityService
	files Files
}

func NewActivityHandler(svc *service.ActivityService, files Files) *ActivityHandler {
	return &ActivityHandler{svc: svc, files: files}
}

func (h *ActivityHandler) list(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	activities, err := h.svc.List(r.Context())
	return respond(w, r, activities, err)
}

func activityInput(f *form) service.ActivityInput {
	return service.ActivityInput{
		Title:       f.String("title"),
		Subtitle:    f.String("subtitle"),
		Description: f.Raw("description"),
		OrderIndex:  f.OptInt("order_index"),
	}
}

func (h *ActivityHandler) create(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	f, up, appErr := h.files.begin(r)
	if appErr != nil {
		return appErr
	}
	in := activityInput(f)
	if appErr := f.Err(); appErr != nil {
		return appErr
	}
	if in.Image, appErr = up.Save(r, "image", storage.DirThingsToDo, storage.KindImage); appErr != nil {
		return appErr
	}
	id, err := h.svc.Create(r.Context(), in)
	if err != nil {
		return up.fail(err)
	}
	return created(w, r, id)
}

func (h *ActivityHandler) update(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := parseID(r, "id")
	if appErr != nil {
		return appErr
	}
	f, up, appErr := h.files.begin(r)
	if appErr != nil {
		return appErr
	}
	in := activityInput(f)
	if appErr := f.Err(); appErr != nil {
		return appErr
	}
	if in.Image, appErr = up.Save(r, "image", storage.DirThingsToDo, storage.KindImage); appErr != nil {
		return appErr
	}
	if err := h.svc.Update(r.Context(), id, in); err != nil {
		return up.fail(err)
	}
	return ok(w, r, "Activity updated")
}

func (h *ActivityHandler) delete(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := parseID(r, "id")
	if appErr != nil {
		return appErr
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		return middleware.FromError(err)
	}
	return ok(w, r, "Activity deleted")
}

func (h *ActivityHandler) hero(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	hero, err := h.svc.Hero(r.Context(), chi.URLParam(r, "page"))
	return respond(w, r, hero, err)
}

func (h *ActivityHandler) setHero(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	f, up, appErr := h.files.begin(r)
	if appErr != nil {
		return appErr
	}
	in := service.HeroInput{
		Title:    f.String("title"),
		Subtitle: f.String("subtitle"),
	}
	if in.Image, appErr = up.Save(r, "image", storage.DirHero, storage.KindImage); appErr != nil {
		return appErr
	}
	if err := h.svc.SetHero(r.Context(), chi.URLParam(r, "page"), in); err != nil {
		return up.fail(err)
	}
	return ok(w, r, "Hero updated")
}
