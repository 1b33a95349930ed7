//go:build unit

package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"wonders-cms/internal/auth"
	"wonders-cms/internal/data"
	"wonders-cms/internal/logger"
	"wonders-cms/internal/service"
	"wonders-cms/internal/storage"
)

func TestFromError(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"validation", &service.ValidationError{Field: "nama", Message: "is required"}, http.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("create: %w", &service.ValidationError{Field: "title"}), http.StatusBadRequest},
		{"unsupported upload", fmt.Errorf("%w: text/plain", storage.ErrUnsupportedType), http.StatusBadRequest},
		{"not found", fmt.Errorf("category 9: %w", data.ErrNotFound), http.StatusNotFound},
		{"bad credentials", service.ErrUnauthorized, http.StatusUnauthorized},
		{"bad token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"conflict", fmt.Errorf("update: %w", data.ErrConflict), http.StatusConflict},
		{"storage", &data.StorageError{Op: "delete category", Err: errors.New("disk full")}, http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			appErr := FromError(tc.err)
			if appErr == nil {
				t.Fatal("expected an AppError")
			}
			if appErr.Code != tc.wantCode {
				t.Errorf("got code %d, want %d", appErr.Code, tc.wantCode)
			}
			if appErr.Message == "" {
				t.Error("expected a message")
			}
		})
	}

	if FromError(nil) != nil {
		t.Error("expected nil for a nil error")
	}
}

func TestErrorMiddleware(t *testing.T) {
	errMw := Error(logger.Nop())

	t.Run("renders AppError as JSON", func(t *testing.T) {
		h := errMw(func(w http.ResponseWriter, r *http.Request) *AppError {
			return &AppError{Error: errors.New("boom"), Message: "Not found", Code: http.StatusNotFound}
		})
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

		if rr.Code != http.StatusNotFound {
			t.Errorf("got status %d, want %d", rr.Code, http.StatusNotFound)
		}
		var body map[string]string
		if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid JSON body: %v", err)
		}
		if body["message"] != "Not found" {
			t.Errorf("got message %q", body["message"])
		}
	})

	t.Run("recovers panics", func(t *testing.T) {
		h := errMw(func(w http.ResponseWriter, r *http.Request) *AppError {
			panic("unexpected")
		})
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

		if rr.Code != http.StatusInternalServerError {
			t.Errorf("got status %d, want %d", rr.Code, http.StatusInternalServerError)
		}
	})

	t.Run("passes through success", func(t *testing.T) {
		h := errMw(func(w http.ResponseWriter, r *http.Request) *AppError {
			WriteJSON(w, r, http.StatusCreated, map[string]int64{"id": 7})
			return nil
		})
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest("POST", "/", nil))

		if rr.Code != http.StatusCreated {
			t.Errorf("got status %d, want %d", rr.Code, http.StatusCreated)
		}
		if got := rr.Body.String(); got != "{\"id\":7}\n" {
			t.Errorf("got body %q", got)
		}
	})
}

func TestSettingsMiddleware(t *testing.T) {
	h := SettingsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, r, http.StatusOK, map[string]int{"a": 1})
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/?pretty=true", nil))
	if got := rr.Body.String(); got != "{\n  \"a\": 1\n}\n" {
		t.Errorf("got pretty body %q", got)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
	if got := rr.Body.String(); got != "{\"a\":1}\n" {
		t.Errorf("got compact body %q", got)
	}
}

func TestRateLimit(t *testing.T) {
	h := RateLimit(60, 2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(addr string) int {
		req := httptest.NewRequest("POST", "/admin/auth/login", nil)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr.Code
	}

	if code := send("10.0.0.1:1234"); code != http.StatusOK {
		t.Fatalf("first request: got %d", code)
	}
	if code := send("10.0.0.1:1235"); code != http.StatusOK {
		t.Fatalf("second request: got %d", code)
	}
	if code := send("10.0.0.1:1236"); code != http.StatusTooManyRequests {
		t.Errorf("third request: got %d, want %d", code, http.StatusTooManyRequests)
	}
	if code := send("10.0.0.2:1234"); code != http.StatusOK {
		t.Errorf("other client: got %d, want %d", code, http.StatusOK)
	}
}

func TestRateLimitDisabled(t *testing.T) {
	h := RateLimit(0, 0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	for i := 0; i < 20; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest("POST", "/", nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("request %d: got %d", i, rr.Code)
		}
	}
}

// mockEnforcer allows the listed subject/method pairs.
type mockEnforcer struct {
	allow map[string]bool
	err   error
}

var _ Enforcer = (*mockEnforcer)(nil)

func (m *mockEnforcer) Enforce(rvals ...interface{}) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.allow[fmt.Sprintf("%v %v", rvals[0], rvals[2])], nil
}

func TestAuthorizer(t *testing.T) {
	tokens, err := auth.NewTokenIssuer("test-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	valid, _, err := tokens.Issue(42)
	if err != nil {
		t.Fatal(err)
	}
	enforcer := &mockEnforcer{allow: map[string]bool{
		"anonymous GET": true,
		"admin GET":     true,
		"admin POST":    true,
	}}

	var seen *UserInfo
	h := Authorizer(enforcer, tokens, logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetUserInfo(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	testCases := []struct {
		name       string
		method     string
		header     string
		wantStatus int
		wantAdmin  bool
	}{
		{"anonymous read", "GET", "", http.StatusOK, false},
		{"anonymous write", "POST", "", http.StatusUnauthorized, false},
		{"admin write", "POST", "Bearer " + valid, http.StatusOK, true},
		{"admin forbidden", "DELETE", "Bearer " + valid, http.StatusForbidden, true},
		{"invalid token", "GET", "Bearer not-a-token", http.StatusUnauthorized, false},
		{"wrong scheme", "GET", "Basic abc", http.StatusUnauthorized, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(tc.method, "/jelajahi/kategori", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if rr.Code != tc.wantStatus {
				t.Errorf("got status %d, want %d", rr.Code, tc.wantStatus)
			}
			if tc.wantStatus == http.StatusOK {
				if seen == nil {
					t.Fatal("handler was not called")
				}
				if seen.IsAdmin() != tc.wantAdmin {
					t.Errorf("got admin %v, want %v", seen.IsAdmin(), tc.wantAdmin)
				}
				if tc.wantAdmin && seen.AdminID != 42 {
					t.Errorf("got admin id %d, want 42", seen.AdminID)
				}
			}
		})
	}
}

func TestAuthorizerEnforcerError(t *testing.T) {
	tokens, _ := auth.NewTokenIssuer("test-secret", time.Hour)
	h := Authorizer(&mockEnforcer{err: errors.New("adapter down")}, tokens, logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("got status %d, want %d", rr.Code, http.StatusInternalServerError)
	}
}
