package handler

import (
	"context"
	"net/http"
	"wonders-cms/internal/data"
	"wonders-cms/internal/middleware"
	"wonders-cms/internal/service"
	"wonders-cms/internal/storage"
)

// Authenticator is the part of the auth service the handlers use.
type Authenticator interface {
	Login(ctx context.Context, in service.LoginInput) (*service.Session, error)
	Profile(ctx context.Context, adminID int64) (*data.Admin, error)
	UpdateProfile(ctx context.Context, adminID int64, in service.ProfileInput) error
	ChangePassword(ctx context.Context, adminID int64, in service.PasswordInput) error
}

// AuthHandler serves admin login and profile endpoints.
type AuthHandler struct {
	auth  Authenticator
	files Files
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(a Authenticator, files Files) *AuthHandler {
	return &AuthHandler{auth: a, files: files}
}

// login exchanges email and password for a bearer token.
func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var in service.LoginInput
	if appErr := decodeJSON(r, &in); appErr != nil {
		return appErr
	}
	session, err := h.auth.Login(r.Context(), in)
	return respond(w, r, session, err)
}

// currentAdmin returns the id of the authenticated admin.
func currentAdmin(r *http.Request) (int64, *middleware.AppError) {
	userInfo := middleware.GetUserInfo(r.Context())
	if !userInfo.IsAdmin() {
		return 0, middleware.FromError(service.ErrUnauthorized)
	}
	return userInfo.AdminID, nil
}

func (h *AuthHandler) profile(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	adminID, appErr := currentAdmin(r)
	if appErr != nil {
		return appErr
	}
	admin, err := h.auth.Profile(r.Context(), adminID)
	return respond(w, r, admin, err)
}

func (h *AuthHandler) updateProfile(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	adminID, appErr := currentAdmin(r)
	if appErr != nil {
		return appErr
	}
	f, up, appErr := h.files.begin(r)
	if appErr != nil {
		return appErr
	}
	in := service.ProfileInput{
		Name:  f.String("name"),
		Email: f.String("email"),
	}
	if in.Avatar, appErr = up.Save(r, "avatar", storage.DirAdmin, storage.KindImage); appErr != nil {
		return appErr
	}
	if err := h.auth.UpdateProfile(r.Context(), adminID, in); err != nil {
		return up.fail(err)
	}
	return ok(w, r, "Profile updated")
}

func (h *AuthHandler) changePassword(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	adminID, appErr := currentAdmin(r)
	if appErr != nil {
		return appErr
	}
	var in service.PasswordInput
	if appErr := decodeJSON(r, &in); appErr != nil {
		return appErr
	}
	if err := h.auth.ChangePassword(r.Context(), adminID, in); err != nil {
		return middleware.FromError(err)
	}
	return ok(w, r, "Password changed")
}

// DashboardHandler serves the admin dashboard counters.
type DashboardHandler struct {
	svc *service.DashboardService
}

func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) summary(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	summary, err := h.svc.Summary(r.Context())
	return respond(w, r, summary, err)
}
