package handler

import (
	"context"
	"net/http"
	"strings"
	"wonders-cms/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handlers groups every handler the router mounts.
type Handlers struct {
	Auth      *AuthHandler
	Dashboard *DashboardHandler
	Upload    *UploadHandler
	Jelajahi  *JelajahiHandler
	Kuliner   *KulinerHandler
	Home      *HomeHandler
	Event     *EventHandler
	Wisata    *WisataHandler
	Activity  *ActivityHandler
	// UploadsRoot is served read-only under /uploads.
	UploadsRoot string
	DB          Pinger
}

// NewRouter creates and configures a new chi router.
// Every route passes the authorization middleware; public reads are granted
// to the anonymous role by policy.
func NewRouter(h *Handlers, authzMiddleware func(http.Handler) http.Handler, errorMiddleware func(middleware.AppHandler) http.Handler, loginLimiter func(http.Handler) http.Handler) *chi.Mux {
	r := chi.NewRouter()

	// A good base middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.SettingsMiddleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, r, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	e := errorMiddleware

	r.Group(func(r chi.Router) {
		r.Use(authzMiddleware)

		r.Method("GET", "/healthz", e(h.health))
		r.Handle("/uploads/*", staticFiles(h.UploadsRoot))
		r.Method("POST", "/upload/editor-image", e(h.Upload.editorImage))

		r.Route("/admin", func(r chi.Router) {
			r.With(loginLimiter).Method("POST", "/auth/login", e(h.Auth.login))
			r.Method("GET", "/auth/profile", e(h.Auth.profile))
			r.Method("PUT", "/auth/profile", e(h.Auth.updateProfile))
			r.Method("PUT", "/auth/change-password", e(h.Auth.changePassword))
			r.Method("GET", "/dashboard/summary", e(h.Dashboard.summary))
		})

		r.Route("/jelajahi", func(r chi.Router) {
			j := h.Jelajahi
			r.Route("/kategori", func(r chi.Router) {
				r.Method("GET", "/", e(j.listCategories))
				r.Method("GET", "/{slug}", e(j.categoryBySlug))
				r.Method("POST", "/", e(j.createCategory))
				r.Method("PUT", "/{id}", e(j.updateCategory))
				r.Method("DELETE", "/{id}", e(j.deleteCategory))
			})
			r.Route("/pages", func(r chi.Router) {
				r.Method("GET", "/", e(j.listPages))
				r.Method("GET", "/detail/{slug}", e(j.pageBySlug))
				r.Method("POST", "/", e(j.createPage))
				r.Method("POST", "/upload-editor-image", e(h.Upload.editorImage))
				r.Method("PUT", "/{id}", e(j.updatePage))
				r.Method("PUT", "/{id}/hero", e(j.setPageCover))
				r.Method("DELETE", "/{id}", e(j.deletePage))
			})
			r.Route("/wisata", func(r chi.Router) {
				r.Method("GET", "/kategori/{kategoriID}", e(j.wisataByCategory))
				r.Method("POST", "/", e(j.createWisata))
				r.Method("PUT", "/{id}", e(j.updateWisata))
				r.Method("DELETE", "/{id}", e(j.deleteWisata))
			})
		})

		r.Route("/kuliner", func(r chi.Router) {
			k := h.Kuliner
			r.Route("/kategori", func(r chi.Router) {
				r.Method("GET", "/", e(k.listCategories))
				r.Method("GET", "/{slug}", e(k.categoryBySlug))
				r.Method("POST", "/", e(k.createCategory))
				r.Method("PUT", "/{id}", e(k.updateCategory))
				r.Method("PUT", "/{id}/hero", e(k.setCategoryHero))
				r.Method("DELETE", "/{id}", e(k.deleteCategory))
			})
			r.Route("/item", func(r chi.Router) {
				r.Method("GET", "/kategori/{kategoriID}", e(k.itemsByCategory))
				r.Method("GET", "/{id}/videos", e(k.itemVideos))
				r.Method("POST", "/", e(k.createItem))
				r.Method("PUT", "/{id}", e(k.updateItem))
				r.Method("PUT", "/{id}/video", e(k.setItemVideo))
				r.Method("DELETE", "/{id}/video", e(k.clearItemVideo))
				r.Method("POST", "/{id}/videos", e(k.addItemVideo))
				r.Method("DELETE", "/videos/{videoID}", e(k.deleteItemVideo))
				r.Method("DELETE", "/{id}", e(k.deleteItem))
			})
			r.Route("/pages", func(r chi.Router) {
				r.Method("GET", "/detail/{slug}", e(k.pageBySlug))
				r.Method("GET", "/by-item/{itemID}", e(k.pagesByItem))
				r.Method("POST", "/", e(k.createPage))
				r.Method("PUT", "/{id}", e(k.updatePage))
				r.Method("PUT", "/{id}/hero", e(k.setPageCover))
				r.Method("DELETE", "/{id}", e(k.deletePage))
			})
		})

		r.Route("/home", func(r chi.Router) {
			r.Method("GET", "/", e(h.Home.list))
			r.Method("POST", "/", e(h.Home.create))
			r.Method("PUT", "/reorder", e(h.Home.reorder))
			r.Method("DELETE", "/{id}", e(h.Home.delete))
		})

		r.Route("/event", func(r chi.Router) {
			ev := h.Event
			r.Route("/popular", func(r chi.Router) {
				r.Method("GET", "/", e(ev.listPopular))
				r.Method("POST", "/", e(ev.createPopular))
				r.Method("PUT", "/{id}", e(ev.updatePopular))
				r.Method("DELETE", "/{id}", e(ev.deletePopular))
			})
			r.Route("/grid", func(r chi.Router) {
				r.Method("GET", "/", e(ev.listGrid))
				r.Method("POST", "/", e(ev.createGrid))
				r.Method("PUT", "/{id}", e(ev.updateGrid))
				r.Method("DELETE", "/{id}", e(ev.deleteGrid))
			})
		})

		r.Route("/wisata", func(r chi.Router) {
			ws := h.Wisata
			r.Route("/hero", func(r chi.Router) {
				r.Method("GET", "/", e(ws.listHeroes))
				r.Method("POST", "/", e(ws.createHero))
				r.Method("DELETE", "/{id}", e(ws.deleteHero))
			})
			r.Route("/cards", func(r chi.Router) {
				r.Method("GET", "/", e(ws.listCards))
				r.Method("POST", "/", e(ws.saveCard))
				r.Method("PUT", "/{id}", e(ws.updateCard))
				r.Method("DELETE", "/static/{key}", e(ws.deleteCardByStaticKey))
				r.Method("DELETE", "/{id}", e(ws.deleteCard))
			})
			r.Route("/detail", func(r chi.Router) {
				r.Method("GET", "/", e(ws.listPages))
				r.Method("GET", "/detail/{slug}", e(ws.pageBySlug))
				r.Method("POST", "/", e(ws.createPage))
				r.Method("PUT", "/{id}", e(ws.updatePage))
				r.Method("PUT", "/{id}/hero", e(ws.setPageCover))
				r.Method("DELETE", "/{id}", e(ws.deletePage))
			})
		})

		r.Route("/things-to-do/activity", func(r chi.Router) {
			a := h.Activity
			r.Method("GET", "/", e(a.list))
			r.Method("POST", "/", e(a.create))
			r.Method("PUT", "/{id}", e(a.update))
			r.Method("DELETE", "/{id}", e(a.delete))
		})

		r.Method("GET", "/hero/{page}", e(h.Activity.hero))
		r.Method("PUT", "/hero/{page}", e(h.Activity.setHero))
	})

	return r
}

func (h *Handlers) health(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if h.DB != nil {
		if err := h.DB.PingContext(r.Context()); err != nil {
			return &middleware.AppError{Error: err, Message: "Database unavailable", Code: http.StatusServiceUnavailable}
		}
	}
	middleware.WriteJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	return nil
}

// staticFiles serves stored uploads without directory listings.
func staticFiles(root string) http.Handler {
	files := http.StripPrefix("/uploads/", http.FileServer(http.Dir(root)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			middleware.WriteError(w, r, http.StatusNotFound, "Not found")
			return
		}
		files.ServeHTTP(w, r)
	})
}
