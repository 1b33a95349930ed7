package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"wonders-cms/internal/auth"
	"wonders-cms/internal/data"
	"wonders-cms/internal/logger"
	"wonders-cms/internal/service"
	"wonders-cms/internal/storage"
)

// AppError represents a custom error type for the application.
type AppError struct {
	Error   error
	Message string
	Code    int
}

// AppHandler is a custom handler function type that returns an AppError.
type AppHandler func(http.ResponseWriter, *http.Request) *AppError

// FromError maps service and data errors to an AppError:
// validation and unsupported uploads are 400, unknown ids 404, bad
// credentials 401, conflicts 409 and anything else 500.
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return &AppError{Error: err, Message: ve.Error(), Code: http.StatusBadRequest}
	case errors.Is(err, storage.ErrUnsupportedType):
		return &AppError{Error: err, Message: "Unsupported file type", Code: http.StatusBadRequest}
	case errors.Is(err, data.ErrNotFound):
		return &AppError{Error: err, Message: "Not found", Code: http.StatusNotFound}
	case errors.Is(err, service.ErrUnauthorized):
		return &AppError{Error: err, Message: "Invalid credentials", Code: http.StatusUnauthorized}
	case errors.Is(err, auth.ErrInvalidToken):
		return &AppError{Error: err, Message: "Invalid or expired token", Code: http.StatusUnauthorized}
	case errors.Is(err, data.ErrConflict):
		return &AppError{Error: err, Message: "Conflict: the record was changed or the slug is taken", Code: http.StatusConflict}
	default:
		return &AppError{Error: err, Message: "Internal server error", Code: http.StatusInternalServerError}
	}
}

// Error is a middleware that converts handler errors into JSON error
// responses of the form {"message": "..."}.
func Error(log logger.Logger) func(AppHandler) http.Handler {
	return func(next AppHandler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					err, ok := rec.(error)
					if !ok {
						err = fmt.Errorf("%v", rec)
					}
					log.Error(err, "Panic recovered")
					WriteError(w, r, http.StatusInternalServerError, "Internal server error")
				}
			}()

			appErr := next(w, r)
			if appErr == nil {
				return
			}
			if appErr.Code >= http.StatusInternalServerError {
				log.Error(appErr.Error, appErr.Message)
			} else if appErr.Error != nil {
				log.Debug(appErr.Message + ": " + appErr.Error.Error())
			}
			WriteError(w, r, appErr.Code, appErr.Message)
		})
	}
}

// WriteError writes {"message": msg} with the status code.
func WriteError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	WriteJSON(w, r, code, map[string]string{"message": msg})
}

// WriteJSON encodes v as the response body. Responses are indented when
// the request asked for pretty output.
func WriteJSON(w http.ResponseWriter, r *http.Request, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	if r != nil && IsPretty(r.Context()) {
		enc.SetIndent("", "  ")
	}
	_ = enc.Encode(v)
}
