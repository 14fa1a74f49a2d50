package handler

import (
	"net/http"
	"strings"

	"toptop/internal/httputil"
	"toptop/internal/model"
	"toptop/internal/service"
	"toptop/internal/transport/http/middleware"
)

type LikeHandler struct {
	likeService *service.LikeService
}

func NewLikeHandler(likeService *service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// Toggle handles POST /likes/toggle. isLiked is the desired state.
func (h *LikeHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req model.ToggleLikeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ack, err := h.likeService.Toggle(r.Context(), middleware.Viewer(r.Context()), strings.TrimSpace(req.VideoID), req.IsLiked)
	if err != nil {
		httputil.WriteDomainError(w, "LikeHandler", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, ack)
}
