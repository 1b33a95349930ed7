package handler

import (
	"net/http"
	"wonders-cms/internal/middleware"
	"wonders-cms/internal/storage"
)

// Files configures where handlers keep uploaded files.
type Files struct {
	Store   *storage.Store
	MaxSize int64
}

// begin parses the request form and starts tracking its uploads.
func (f Files) begin(r *http.Request) (*form, *uploads, *middleware.AppError) {
	fm, appErr := newForm(r, f.MaxSize)
	if appErr != nil {
		return nil, nil, appErr
	}
	return fm, &uploads{store: f.Store}, nil
}

// UploadHandler stores images embedded in rich text editors.
type UploadHandler struct {
	files Files
	dir   string
}

// NewUploadHandler creates an UploadHandler writing into dir.
func NewUploadHandler(files Files, dir string) *UploadHandler {
	return &UploadHandler{files: files, dir: dir}
}

// editorImage stores the "image" field and answers with its public URL.
func (h *UploadHandler) editorImage(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	_, up, appErr := h.files.begin(r)
	if appErr != nil {
		return appErr
	}
	name, appErr := up.Save(r, "image", h.dir, storage.KindImage)
	if appErr != nil {
		return appErr
	}
	if name == "" {
		return invalidField("image", "is required")
	}
	middleware.WriteJSON(w, r, http.StatusCreated, map[string]string{"url": storage.URL(h.dir, name)})
	return nil
}
