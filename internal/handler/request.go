package handler

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"wonders-cms/internal/middleware"
	"wonders-cms/internal/service"
	"wonders-cms/internal/storage"

	"github.com/go-chi/chi/v5"
)

// defaultMaxUpload bounds multipart bodies when no limit is configured.
const defaultMaxUpload = 64 << 20

func invalidField(field, message string) *middleware.AppError {
	return middleware.FromError(&service.ValidationError{Field: field, Message: message})
}

// parseID reads a positive integer URL parameter.
func parseID(r *http.Request, param string) (int64, *middleware.AppError) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		return 0, invalidField(param, "must be a positive integer")
	}
	return id, nil
}

// decodeJSON reads a JSON request body into v.
func decodeJSON(r *http.Request, v interface{}) *middleware.AppError {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return middleware.FromError(&service.ValidationError{Message: "invalid JSON body"})
	}
	return nil
}

// form reads fields of a multipart or urlencoded request. Parse errors on
// typed fields are kept in err and reported once by the handler.
type form struct {
	r   *http.Request
	err *middleware.AppError
}

func newForm(r *http.Request, maxSize int64) (*form, *middleware.AppError) {
	if maxSize <= 0 {
		maxSize = defaultMaxUpload
	}
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	var err error
	if mediaType == "multipart/form-data" {
		r.Body = http.MaxBytesReader(nil, r.Body, maxSize)
		err = r.ParseMultipartForm(32 << 20)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &middleware.AppError{Error: err, Message: "Upload too large", Code: http.StatusRequestEntityTooLarge}
		}
		return nil, invalidField("", "invalid form body")
	}
	return &form{r: r}, nil
}

func (f *form) String(field string) string {
	return strings.TrimSpace(f.r.FormValue(field))
}

// Raw returns a field without trimming, for rich text.
func (f *form) Raw(field string) string {
	return f.r.FormValue(field)
}

func (f *form) Bool(field string) bool {
	switch strings.ToLower(f.String(field)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

func (f *form) Int64(field string) int64 {
	v := f.OptInt64(field)
	if v == nil {
		return 0
	}
	return *v
}

func (f *form) OptInt64(field string) *int64 {
	s := f.String(field)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		f.fail(field, "must be an integer")
		return nil
	}
	return &v
}

func (f *form) Int(field string) int {
	return int(f.Int64(field))
}

func (f *form) OptInt(field string) *int {
	v := f.OptInt64(field)
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}

func (f *form) OptFloat(field string) *float64 {
	s := f.String(field)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		f.fail(field, "must be a number")
		return nil
	}
	return &v
}

func (f *form) fail(field, message string) {
	if f.err == nil {
		f.err = invalidField(field, message)
	}
}

// Err returns the first field parse error.
func (f *form) Err() *middleware.AppError {
	return f.err
}

// uploads stores files attached to a request and discards them again when
// the operation using them fails.
type uploads struct {
	store *storage.Store
	saved []storage.File
}

// Save stores the file in field, if any, and returns its generated name.
// A request without the field yields "".
func (u *uploads) Save(r *http.Request, field, dir string, kind storage.Kind) (string, *middleware.AppError) {
	if r.MultipartForm == nil || len(r.MultipartForm.File[field]) == 0 {
		return "", nil
	}
	name, err := u.store.Save(r.MultipartForm.File[field][0], dir, kind)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedType) {
			return "", invalidField(field, err.Error())
		}
		return "", middleware.FromError(err)
	}
	u.saved = append(u.saved, storage.File{Dir: dir, Name: name})
	return name, nil
}

// Discard removes every file stored for this request.
func (u *uploads) Discard() {
	u.store.RemoveAll(u.saved)
	u.saved = nil
}

// fail discards the request's uploads and maps err.
func (u *uploads) fail(err error) *middleware.AppError {
	u.Discard()
	return middleware.FromError(err)
}

// created answers 201 with the new id.
func created(w http.ResponseWriter, r *http.Request, id int64) *middleware.AppError {
	middleware.WriteJSON(w, r, http.StatusCreated, map[string]interface{}{"message": "Created", "id": id})
	return nil
}

func ok(w http.ResponseWriter, r *http.Request, message string) *middleware.AppError {
	middleware.WriteJSON(w, r, http.StatusOK, map[string]string{"message": message})
	return nil
}

func respond(w http.ResponseWriter, r *http.Request, v interface{}, err error) *middleware.AppError {
	if err != nil {
		return middleware.FromError(err)
	}
	middleware.WriteJSON(w, r, http.StatusOK, v)
	return nil
}
