package handler

import (
	"net/http"
	"wonders-cms/internal/middleware"
	"wonders-cms/internal/service"
	"wonders-cms/internal/storage"
)

// HomeHandler serves the landing page videos.
type HomeHandler struct {
	svc   *service.HomeService
	files Files
}

func NewHomeHandler(svc *service.HomeService, files Files) *HomeHandler {
	return &HomeHandler{svc: svc, files: files}
}

func (h *HomeHandler) list(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	videos, err := h.svc.List(r.Context())
	return respond(w, r, videos, err)
}

func (h *HomeHandler) create(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	f, up, appErr := h.files.begin(r)
	if appErr != nil {
		return appErr
	}
	in := service.HomeVideoInput{
		Title:   f.String("title"),
		Caption: f.String("caption"),
	}
	if in.Video, appErr = up.Save(r, "video", storage.DirHomeVideos, storage.KindVideo); appErr != nil {
		return appErr
	}
	id, err := h.svc.Create(r.Context(), in)
	if err != nil {
		return up.fail(err)
	}
	return created(w, r, id)
}

type reorderRequest struct {
	IDs []int64 `json:"ids"`
}

func (h *HomeHandler) reorder(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req reorderRequest
	if appErr := decodeJSON(r, &req); appErr != nil {
		return appErr
	}
	if err := h.svc.Reorder(r.Context(), req.IDs); err != nil {
		return middleware.FromError(err)
	}
	return ok(w, r, "Order updated")
}

func (h *HomeHandler) delete(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := parseID(r, "id")
	if appErr != nil {
		return appErr
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		return middleware.FromError(err)
	}
	return ok(w, r, "Video deleted")
}
