package handler

import (
	"net/http"
	"wonders-cms/internal/middleware"
	"wonders-cms/internal/service"
	"wonders-cms/internal/storage"
)

// EventHandler serves popular and grid events.
type EventHandler struct {
	svc   *service.EventService
	files Files
}

func NewEventHandler(svc *service.EventService, files Files) *EventHandler {
	return &EventHandler{svc: svc, files: files}
}

func (h *EventHandler) listPopular(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	events, err := h.svc.ListPopular(r.Context())
	return respond(w, r, events, err)
}

func popularInput(f *form) service.PopularEventInput {
	return service.PopularEventInput{
		Title:    f.String("title"),
		Subtitle: f.String("subtitle"),
		Date:     f.String("date"),
		Location: f.String("location"),
		Size:     f.String("size"),
		Speed:    f.String("speed"),
	}
}

func (h *EventHandler) createPopular(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	f, up, appErr := h.files.begin(r)
	if appErr != nil {
		return appErr
	}
	in := popularInput(f)
	if in.Image, appErr = up.Save(r, "image", storage.DirEvent, storage.KindImage); appErr != nil {
		return appErr
	}
	id, err := h.svc.CreatePopular(r.Context(), in)
	if err != nil {
		return up.fail(err)
	}
	return created(w, r, id)
}

func (h *EventHandler) updatePopular(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := parseID(r, "id")
	if appErr != nil {
		return appErr
	}
	f, up, appErr := h.files.begin(r)
	if appErr != nil {
		return appErr
	}
	in := popularInput(f)
	if in.Image, appErr = up.Save(r, "image", storage.DirEvent, storage.KindImage); appErr != nil {
		return appErr
	}
	if err := h.svc.UpdatePopular(r.Context(), id, in); err != nil {
		return up.fail(err)
	}
	return ok(w, r, "Event updated")
}

func (h *EventHandler) deletePopular(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := parseID(r, "id")
	if appErr != nil {
		return appErr
	}
	if err := h.svc.DeletePopular(r.Context(), id); err != nil {
		return middleware.FromError(err)
	}
	return ok(w, r, "Event deleted")
}

func (h *EventHandler) listGrid(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	events, err := h.svc.ListGrid(r.Context())
	return respond(w, r, events, err)
}

func gridInput(f *form) service.GridEventInput {
	return service.GridEventInput{
		Title:    f.String("title"),
		Category: f.String("category"),
		Date:     f.String("date"),
		Location: f.String("location"),
	}
}

func (h *EventHandler) createGrid(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	f, up, appErr := h.files.begin(r)
	if appErr != nil {
		return appErr
	}
	in := gridInput(f)
	if in.Image, appErr = up.Save(r, "image", storage.DirEvent, storage.KindImage); appErr != nil {
		return appErr
	}
	id, err := h.svc.CreateGrid(r.Context(), in)
	if err != nil {
		return up.fail(err)
	}
	return created(w, r, id)
}

func (h *EventHandler) updateGrid(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := parseID(r, "id")
	if appErr != nil {
		return appErr
	}
	f, up, appErr := h.files.begin(r)
	if appErr != nil {
		return appErr
	}
	in := gridInput(f)
	if in.Image, appErr = up.Save(r, "image", storage.DirEvent, storage.KindImage); appErr != nil {
		return appErr
	}
	if err := h.svc.UpdateGrid(r.Context(), id, in); err != nil {
		return up.fail(err)
	}
	return ok(w, r, "Event updated")
}

func (h *EventHandler) deleteGrid(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := parseID(r, "id")
	if appErr != nil {
		return appErr
	}
	if err := h.svc.DeleteGrid(r.Context(), id); err != nil {
		return middleware.FromError(err)
	}
	return ok(w, r, "Event deleted")
}
