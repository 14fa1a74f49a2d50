package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"toptop/internal/httputil"
	"toptop/internal/model"
	"toptop/internal/service"
	"toptop/internal/transport/http/middleware"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// List handles GET /videos/{id}/comments
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	comments, err := h.commentService.List(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteDomainError(w, "CommentHandler", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, comments)
}

// Post handles POST /comments
func (h *CommentHandler) Post(w http.ResponseWriter, r *http.Request) {
	var req model.PostCommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.commentService.Post(r.Context(), middleware.Viewer(r.Context()), strings.TrimSpace(req.VideoID), req.Content)
	if err != nil {
		httputil.WriteDomainError(w, "CommentHandler", err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, comment)
}
