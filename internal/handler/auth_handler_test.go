//go:build unit

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"wonders-cms/internal/auth"
	"wonders-cms/internal/data"
	"wonders-cms/internal/logger"
	"wonders-cms/internal/middleware"
	"wonders-cms/internal/service"
)

// mockAuthenticator is a mock implementation of the Authenticator interface.
type mockAuthenticator struct {
	LoginFunc          func(ctx context.Context, in service.LoginInput) (*service.Session, error)
	ProfileFunc        func(ctx context.Context, adminID int64) (*data.Admin, error)
	UpdateProfileFunc  func(ctx context.Context, adminID int64, in service.ProfileInput) error
	ChangePasswordFunc func(ctx context.Context, adminID int64, in service.PasswordInput) error
}

var _ Authenticator = (*mockAuthenticator)(nil)

func (m *mockAuthenticator) Login(ctx context.Context, in service.LoginInput) (*service.Session, error) {
	return m.LoginFunc(ctx, in)
}

func (m *mockAuthenticator) Profile(ctx context.Context, adminID int64) (*data.Admin, error) {
	return m.ProfileFunc(ctx, adminID)
}

func (m *mockAuthenticator) UpdateProfile(ctx context.Context, adminID int64, in service.ProfileInput) error {
	return m.UpdateProfileFunc(ctx, adminID, in)
}

func (m *mockAuthenticator) ChangePassword(ctx context.Context, adminID int64, in service.PasswordInput) error {
	return m.ChangePasswordFunc(ctx, adminID, in)
}

func TestLoginHandler(t *testing.T) {
	mock := &mockAuthenticator{
		LoginFunc: func(ctx context.Context, in service.LoginInput) (*service.Session, error) {
			if in.Email == "admin@example.com" && in.Password == "secret123" {
				return &service.Session{Token: "tok", ExpiresAt: time.Now().Add(time.Hour), Admin: &data.Admin{ID: 1}}, nil
			}
			return nil, service.ErrUnauthorized
		},
	}
	h := NewAuthHandler(mock, Files{})
	handler := middleware.Error(logger.Nop())(h.login)

	testCases := []struct {
		name       string
		body       string
		wantStatus int
		wantToken  string
	}{
		{"valid credentials", `{"email":"admin@example.com","password":"secret123"}`, http.StatusOK, "tok"},
		{"wrong password", `{"email":"admin@example.com","password":"nope"}`, http.StatusUnauthorized, ""},
		{"malformed body", `{"email":`, http.StatusBadRequest, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/admin/auth/login", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tc.wantStatus {
				t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, tc.wantStatus)
			}
			if tc.wantToken != "" {
				var session service.Session
				if err := json.Unmarshal(rr.Body.Bytes(), &session); err != nil {
					t.Fatalf("invalid body: %v", err)
				}
				if session.Token != tc.wantToken {
					t.Errorf("got token %q, want %q", session.Token, tc.wantToken)
				}
			}
		})
	}
}

func TestProfileHandler(t *testing.T) {
	mock := &mockAuthenticator{
		ProfileFunc: func(ctx context.Context, adminID int64) (*data.Admin, error) {
			return &data.Admin{ID: adminID, Name: "Admin", Email: "admin@example.com", Password: "hash"}, nil
		},
	}
	h := NewAuthHandler(mock, Files{})
	handler := middleware.Error(logger.Nop())(h.profile)

	t.Run("anonymous caller", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest("GET", "/admin/auth/profile", nil))
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("got status %d, want %d", rr.Code, http.StatusUnauthorized)
		}
	})

	t.Run("admin caller", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin/auth/profile", nil)
		req = req.WithContext(middleware.SetUserInfo(req.Context(), &middleware.UserInfo{Subject: auth.RoleAdmin, AdminID: 5}))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("got status %d, want %d", rr.Code, http.StatusOK)
		}
		if strings.Contains(rr.Body.String(), "hash") {
			t.Error("password hash leaked into the response")
		}
		var admin data.Admin
		if err := json.Unmarshal(rr.Body.Bytes(), &admin); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if admin.ID != 5 {
			t.Errorf("got admin id %d, want 5", admin.ID)
		}
	})
}

func TestChangePasswordHandler(t *testing.T) {
	var got service.PasswordInput
	mock := &mockAuthenticator{
		ChangePasswordFunc: func(ctx context.Context, adminID int64, in service.PasswordInput) error {
			got = in
			if in.Current != "old-password" {
				return &service.ValidationError{Field: "current_password", Message: "does not match"}
			}
			return nil
		},
	}
	h := NewAuthHandler(mock, Files{})
	handler := middleware.Error(logger.Nop())(h.changePassword)

	send := func(body string) int {
		req := httptest.NewRequest("PUT", "/admin/auth/change-password", strings.NewReader(body))
		req = req.WithContext(middleware.SetUserInfo(req.Context(), &middleware.UserInfo{Subject: auth.RoleAdmin, AdminID: 1}))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code
	}

	if code := send(`{"current_password":"old-password","new_password":"new-password"}`); code != http.StatusOK {
		t.Errorf("got status %d, want %d", code, http.StatusOK)
	}
	if got.New != "new-password" {
		t.Errorf("got new password %q", got.New)
	}
	if code := send(`{"current_password":"wrong","new_password":"new-password"}`); code != http.StatusBadRequest {
		t.Errorf("got status %d, want %d", code, http.StatusBadRequest)
	}
}
