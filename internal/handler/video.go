package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"toptop/internal/httputil"
	"toptop/internal/model"
	"toptop/internal/service"
	"toptop/internal/transport/http/middleware"
)

type VideoHandler struct {
	feedService  *service.FeedService
	videoService *service.VideoService
}

func NewVideoHandler(feedService *service.FeedService, videoService *service.VideoService) *VideoHandler {
	return &VideoHandler{
		feedService:  feedService,
		videoService: videoService,
	}
}

// ForYou handles GET /videos/for-you?cursor=
func (h *VideoHandler) ForYou(w http.ResponseWriter, r *http.Request) {
	h.feed(w, r, model.ScopeAll)
}

// Following handles GET /videos/following?cursor=
func (h *VideoHandler) Following(w http.ResponseWriter, r *http.Request) {
	h.feed(w, r, model.ScopeFollowing)
}

func (h *VideoHandler) feed(w http.ResponseWriter, r *http.Request, scope model.Scope) {
	cursor, err := parseCursor(r)
	if err != nil {
		httputil.WriteDomainError(w, "VideoHandler", err)
		return
	}

	page, err := h.feedService.GetPage(r.Context(), scope, middleware.Viewer(r.Context()), cursor)
	if err != nil {
		httputil.WriteDomainError(w, "VideoHandler", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, page)
}

// Create handles POST /videos
func (h *VideoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateVideoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	video, err := h.videoService.Create(r.Context(), middleware.Viewer(r.Context()), req)
	if err != nil {
		httputil.WriteDomainError(w, "VideoHandler", err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, video)
}

// GetByID handles GET /videos/{id}
func (h *VideoHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	video, err := h.videoService.GetByID(r.Context(), chi.URLParam(r, "id"), middleware.Viewer(r.Context()))
	if err != nil {
		httputil.WriteDomainError(w, "VideoHandler", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, video)
}

// LikeCount handles GET /videos/{id}/likes/count
func (h *VideoHandler) LikeCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.videoService.LikeCount(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteDomainError(w, "VideoHandler", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, count)
}
