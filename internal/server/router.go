package server

import (
	"net/http"

	"ap-merch-web/internal/builder"
	"ap-merch-web/internal/server/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shouni/gcp-kit/auth"
)

// NewRouter は、ミドルウェアとルーティングを統合した http.Handler を構築します。
func NewRouter(h *builder.AppHandlers) http.Handler {
	r := chi.NewRouter()

	setupCommonMiddleware(r)
	setupRoutes(r, h.Auth, h.Web)

	return r
}

func setupCommonMiddleware(r *chi.Mux) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.CleanPath)
}

func setupRoutes(r chi.Router, authHandler *auth.Handler, webHandler *handlers.Handler) {
	// --- 公開ルート ---
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	// --- OAuth2 認証フロー (ログイン有効時のみ) ---
	if authHandler != nil {
		r.Route("/auth", func(r chi.Router) {
			r.Get("/login", authHandler.Login)
			r.Get("/callback", authHandler.Callback)
		})
	}

	// --- Web UI ---
	r.Group(func(r chi.Router) {
		if authHandler != nil {
			r.Use(authHandler.Middleware)
		}

		r.Get("/", webHandler.Index)

		r.Route("/actions", func(r chi.Router) {
			r.Post("/niche", webHandler.HandleNiche)
			r.Post("/catalog", webHandler.HandleCatalog)
			r.Post("/seed", webHandler.HandleSeed)
			r.Post("/idea", webHandler.HandleIdea)
			r.Post("/image", webHandler.HandleImage)
			r.Post("/publish", webHandler.HandlePublish)
			r.Post("/reset", webHandler.HandleReset)
		})
	})
}
