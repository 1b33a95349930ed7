//go:build integration

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"wonders-cms/internal/auth"
	"wonders-cms/internal/config"
	"wonders-cms/internal/data"
	"wonders-cms/internal/logger"
	"wonders-cms/internal/middleware"
	"wonders-cms/internal/service"
	"wonders-cms/internal/storage"
	"wonders-cms/internal/testutil"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
)

// pngBytes is enough of a PNG for content sniffing.
var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 64)...)

type testApp struct {
	Router *chi.Mux
	DB     *sqlx.DB
	Store  *storage.Store
	Token  string
}

// setupIntegrationTest initializes a full application stack for testing.
func setupIntegrationTest(t *testing.T) *testApp {
	t.Helper()
	db := testutil.NewDB(t)
	log := logger.Nop()

	store := storage.New(t.TempDir(), log)
	if err := store.EnsureDirs(); err != nil {
		t.Fatalf("Failed to create upload dirs: %v", err)
	}

	enforcer, err := auth.NewMemoryEnforcer()
	if err != nil {
		t.Fatalf("Failed to create enforcer: %v", err)
	}
	auth.SeedDefaultPolicies(enforcer, log)

	tokens, err := auth.NewTokenIssuer("integration-secret", time.Hour)
	if err != nil {
		t.Fatalf("Failed to create token issuer: %v", err)
	}

	deps := service.Deps{DB: db, Cascade: data.NewCascade(db), Files: store, Log: log}
	authService := service.NewAuthService(deps, tokens)
	if err := authService.EnsureAdmin(context.Background(), config.AdminConfig{Name: "Admin", Email: "admin@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("Failed to seed admin: %v", err)
	}

	files := Files{Store: store}
	handlers := &Handlers{
		Auth:        NewAuthHandler(authService, files),
		Dashboard:   NewDashboardHandler(service.NewDashboardService(deps, nil, 0)),
		Upload:      NewUploadHandler(files, storage.DirEditor),
		Jelajahi:    NewJelajahiHandler(service.NewJelajahiService(deps), files),
		Kuliner:     NewKulinerHandler(service.NewKulinerService(deps), files),
		Home:        NewHomeHandler(service.NewHomeService(deps), files),
		Event:       NewEventHandler(service.NewEventService(deps), files),
		Wisata:      NewWisataHandler(service.NewWisataService(deps), files),
		Activity:    NewActivityHandler(service.NewActivityService(deps), files),
		UploadsRoot: store.Root(),
		DB:          db,
	}
	router := NewRouter(handlers,
		middleware.Authorizer(enforcer, tokens, log),
		middleware.Error(log),
		middleware.RateLimit(600, 100),
	)

	app := &testApp{Router: router, DB: db, Store: store}
	app.Token = app.login(t)
	return app
}

func (a *testApp) login(t *testing.T) string {
	t.Helper()
	body := `{"email":"admin@example.com","password":"secret123"}`
	rr := a.do(httptest.NewRequest("POST", "/admin/auth/login", strings.NewReader(body)), "")
	if rr.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rr.Code, rr.Body.String())
	}
	var session struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &session); err != nil {
		t.Fatalf("invalid login body: %v", err)
	}
	return session.Token
}

func (a *testApp) do(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	a.Router.ServeHTTP(rr, req)
	return rr
}

// multipartRequest builds a form with the given fields and, when fileField
// is set, one file upload.
func multipartRequest(t *testing.T, method, target string, fields map[string]string, fileField, fileName string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, fileName)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := io.Copy(fw, bytes.NewReader(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func createdID(t *testing.T, rr *httptest.ResponseRecorder) int64 {
	t.Helper()
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var body struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	return body.ID
}

func TestPantaiIndahScenario(t *testing.T) {
	app := setupIntegrationTest(t)

	rr := app.do(multipartRequest(t, "POST", "/jelajahi/kategori",
		map[string]string{"nama": "Wisata Alam", "wilayah": "Aceh Besar"}, "gambar", "alam.png", pngBytes), app.Token)
	categoryID := createdID(t, rr)

	rr = app.do(multipartRequest(t, "POST", "/jelajahi/wisata",
		map[string]string{"title": "Pantai Indah", "content": "<p>Pasir putih</p>", "kategori_id": fmt.Sprint(categoryID)},
		"cover_image", "pantai.png", pngBytes), app.Token)
	createdID(t, rr)

	rr = app.do(httptest.NewRequest("GET", "/jelajahi/pages/detail/pantai-indah", nil), "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected page to be readable, got %d: %s", rr.Code, rr.Body.String())
	}
	var page data.Page
	if err := json.Unmarshal(rr.Body.Bytes(), &page); err != nil {
		t.Fatalf("invalid page body: %v", err)
	}
	if page.CoverImage == "" || !app.Store.Exists(storage.DirJelajahi, page.CoverImage) {
		t.Fatalf("cover image %q was not stored", page.CoverImage)
	}

	rr = app.do(httptest.NewRequest("GET", "/jelajahi/kategori/wisata-alam", nil), "")
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "pantai-indah") {
		t.Fatalf("category should list the page, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = app.do(httptest.NewRequest("DELETE", fmt.Sprintf("/jelajahi/kategori/%d", categoryID), nil), app.Token)
	if rr.Code != http.StatusOK {
		t.Fatalf("delete failed: %d %s", rr.Code, rr.Body.String())
	}

	rr = app.do(httptest.NewRequest("GET", "/jelajahi/pages/detail/pantai-indah", nil), "")
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404 after cascade, got %d", rr.Code)
	}
	if app.Store.Exists(storage.DirJelajahi, page.CoverImage) {
		t.Error("cover image should be removed after the cascade")
	}

	var relations int
	if err := app.DB.Get(&relations, "SELECT COUNT(*) FROM jelajahi_wisata"); err != nil {
		t.Fatal(err)
	}
	if relations != 0 {
		t.Errorf("expected no relation rows, got %d", relations)
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	app := setupIntegrationTest(t)

	testCases := []struct {
		name       string
		method     string
		path       string
		token      string
		wantStatus int
	}{
		{"Anonymous can list categories", "GET", "/jelajahi/kategori", "", http.StatusOK},
		{"Anonymous can check health", "GET", "/healthz", "", http.StatusOK},
		{"Anonymous cannot create category", "POST", "/jelajahi/kategori", "", http.StatusUnauthorized},
		{"Anonymous cannot delete event", "DELETE", "/event/popular/1", "", http.StatusUnauthorized},
		{"Anonymous cannot read dashboard", "GET", "/admin/dashboard/summary", "", http.StatusUnauthorized},
		{"Bad token is rejected", "GET", "/jelajahi/kategori", "not-a-token", http.StatusUnauthorized},
		{"Admin can read dashboard", "GET", "/admin/dashboard/summary", app.Token, http.StatusOK},
		{"Admin gets 404 for unknown category", "DELETE", "/jelajahi/kategori/999", app.Token, http.StatusNotFound},
		{"Invalid id is a bad request", "DELETE", "/kuliner/item/abc", app.Token, http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rr := app.do(httptest.NewRequest(tc.method, tc.path, nil), tc.token)
			if rr.Code != tc.wantStatus {
				t.Errorf("got status %d, want %d: %s", rr.Code, tc.wantStatus, rr.Body.String())
			}
		})
	}
}

func TestCreateCategoryValidation(t *testing.T) {
	app := setupIntegrationTest(t)

	rr := app.do(multipartRequest(t, "POST", "/jelajahi/kategori", map[string]string{"deskripsi": "tanpa nama"}, "gambar", "x.png", pngBytes), app.Token)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rr.Code, rr.Body.String())
	}

	// The upload of a rejected request is discarded.
	var leftovers int
	if err := app.DB.Get(&leftovers, "SELECT COUNT(*) FROM jelajahi_kategori"); err != nil {
		t.Fatal(err)
	}
	if leftovers != 0 {
		t.Errorf("expected no category rows, got %d", leftovers)
	}
	entries, err := os.ReadDir(filepath.Join(app.Store.Root(), filepath.FromSlash(storage.DirJelajahi)))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected the upload to be discarded, found %v", entries)
	}
}

func TestUploadRejectsWrongType(t *testing.T) {
	app := setupIntegrationTest(t)

	rr := app.do(multipartRequest(t, "POST", "/upload/editor-image", nil, "image", "notes.png", []byte("just some text")), app.Token)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = app.do(multipartRequest(t, "POST", "/upload/editor-image", nil, "image", "ok.png", pngBytes), app.Token)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var body struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(body.URL, "/uploads/editor/") {
		t.Errorf("got url %q", body.URL)
	}

	rr = app.do(httptest.NewRequest("GET", body.URL, nil), "")
	if rr.Code != http.StatusOK {
		t.Errorf("expected the upload to be served, got %d", rr.Code)
	}
}
