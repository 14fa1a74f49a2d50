package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"toptop/internal/handler"
	"toptop/internal/httputil"
	"toptop/internal/logger"
	authmw "toptop/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	VideoHandler   *handler.VideoHandler
	LikeHandler    *handler.LikeHandler
	FollowHandler  *handler.FollowHandler
	CommentHandler *handler.CommentHandler
	AccountHandler *handler.AccountHandler
	MediaHandler   *handler.MediaHandler // nil when no object store is configured
	JWTSecret      string
	AccountSyncer  authmw.AccountSyncer
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(&logger.RequestLogger{Logger: logrus.StandardLogger()}))
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	optional := authmw.OptionalAuthMiddleware(cfg.JWTSecret, cfg.AccountSyncer)
	required := authmw.AuthMiddleware(cfg.JWTSecret, cfg.AccountSyncer)

	// Public routes
	r.Get("/videos/{id}/likes/count", cfg.VideoHandler.LikeCount)
	r.Get("/videos/{id}/comments", cfg.CommentHandler.List)
	r.Get("/search", cfg.AccountHandler.Search)

	// Public routes personalised when a viewer is present
	r.Group(func(r chi.Router) {
		r.Use(optional)

		r.Get("/videos/for-you", cfg.VideoHandler.ForYou)
		r.Get("/videos/{id}", cfg.VideoHandler.GetByID)
		r.Get("/accounts/suggested", cfg.AccountHandler.Suggested)
		r.Get("/accounts/{id}", cfg.AccountHandler.GetProfile)
	})

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(required)

		r.Get("/videos/following", cfg.VideoHandler.Following)
		r.Post("/videos", cfg.VideoHandler.Create)
		r.Post("/likes/toggle", cfg.LikeHandler.Toggle)
		r.Post("/follows/toggle", cfg.FollowHandler.Toggle)
		r.Post("/comments", cfg.CommentHandler.Post)

		if cfg.MediaHandler != nil {
			r.Post("/media/videos/presign", cfg.MediaHandler.PresignVideo)
			r.Post("/media/covers", cfg.MediaHandler.UploadCover)
		}
	})

	return r
}
