package handler

import (
	"errors"
	"net/http"
	"strings"

	"toptop/internal/httputil"
	"toptop/internal/model"
	"toptop/internal/service"
	"toptop/internal/transport/http/middleware"
)

type MediaHandler struct {
	mediaService *service.MediaService
}

func NewMediaHandler(mediaService *service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// PresignVideo handles POST /media/videos/presign
// The client PUTs the video to uploadURL, then sends publicURL as videoURL in POST /videos.
func (h *MediaHandler) PresignVideo(w http.ResponseWriter, r *http.Request) {
	if middleware.Viewer(r.Context()) == nil {
		httputil.WriteDomainError(w, "MediaHandler", model.ErrUnauthorized)
		return
	}

	var req model.PresignVideoUploadRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ContentType = strings.TrimSpace(req.ContentType)
	if req.ContentType == "" {
		httputil.WriteBadRequest(w, "contentType is required")
		return
	}

	res, err := h.mediaService.PresignVideoUpload(r.Context(), req)
	if err != nil {
		httputil.WriteDomainError(w, "MediaHandler", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, res)
}

// UploadCover handles POST /media/covers (multipart field "cover").
func (h *MediaHandler) UploadCover(w http.ResponseWriter, r *http.Request) {
	if middleware.Viewer(r.Context()) == nil {
		httputil.WriteDomainError(w, "MediaHandler", model.ErrUnauthorized)
		return
	}

	maxFormSize := int64(model.MaxCoverSizeBytes) + 1024*1024 // allow form overhead
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, http.ErrNotMultipart):
			httputil.WriteBadRequest(w, "Content-Type must be multipart/form-data")
		case errors.As(err, &tooLarge), strings.Contains(err.Error(), "request body too large"):
			httputil.WriteDomainError(w, "MediaHandler", model.ErrFileTooLarge)
		default:
			httputil.WriteBadRequest(w, "Invalid form data")
		}
		return
	}

	file, header, err := r.FormFile("cover")
	if err != nil {
		httputil.WriteBadRequest(w, "cover file is required")
		return
	}
	defer file.Close()

	res, err := h.mediaService.UploadCover(r.Context(), file, header)
	if err != nil {
		httputil.WriteDomainError(w, "MediaHandler", err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, res)
}
