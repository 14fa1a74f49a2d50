package handler

import (
	"net/http"
	"strings"

	"toptop/internal/httputil"
	"toptop/internal/model"
	"toptop/internal/service"
	"toptop/internal/transport/http/middleware"
)

type FollowHandler struct {
	followService *service.FollowService
}

func NewFollowHandler(followService *service.FollowService) *FollowHandler {
	return &FollowHandler{
		followService: followService,
	}
}

// Toggle handles POST /follows/toggle. isFollowed is the desired state.
func (h *FollowHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req model.ToggleFollowRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ack, err := h.followService.Toggle(r.Context(), middleware.Viewer(r.Context()), strings.TrimSpace(req.FollowingID), req.IsFollowed)
	if err != nil {
		httputil.WriteDomainError(w, "FollowHandler", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, ack)
}
