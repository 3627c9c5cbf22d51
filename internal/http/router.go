package http

import (
	"net/http"

	"linksaver/internal/auth"
	"linksaver/internal/bookmark"
	"linksaver/internal/config"
	"linksaver/internal/http/handler"
	mw "linksaver/internal/http/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Deps carries the constructed services. main wires the GORM-backed set;
// tests wire in-memory stores behind the same interfaces.
type Deps struct {
	Accounts  *auth.Accounts
	JWT       *auth.JWT
	Bookmarks *bookmark.Service
	Log       *zap.Logger
}

func NewRouter(cfg config.Config, d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	ah := &handler.AuthHandler{Accounts: d.Accounts, JWT: d.JWT, Log: d.Log}
	r.Post("/register", ah.Register)
	r.Post("/login", ah.Login)

	me := &handler.MeHandler{}
	r.With(auth.RequireAuth(d.JWT)).Get("/me", me.Me)

	bh := &handler.BookmarkHandler{Svc: d.Bookmarks, Log: d.Log}
	r.Route("/bookmarks", func(r chi.Router) {
		r.Use(auth.RequireAuth(d.JWT))

		r.Get("/", bh.List)
		r.Post("/", bh.Create)
		r.Post("/reorder", bh.Reorder)

		r.Get("/{id}", bh.Get)
		r.Put("/{id}", bh.Update)
		r.Delete("/{id}", bh.Delete)
	})

	return r
}
