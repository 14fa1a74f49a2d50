package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/webp" // register webp decoder for covers

	domain "toptop/internal/model"
	"toptop/internal/storage"
)

// MediaService moves media into the object store. Video bytes go straight
// from the client to the bucket through a presigned URL.
type MediaService struct {
	store     storage.ObjectStore
	publicURL string
}

func NewMediaService(store storage.ObjectStore, publicURL string) *MediaService {
	return &MediaService{
		store:     store,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}
}

func (s *MediaService) PresignVideoUpload(ctx context.Context, req domain.PresignVideoUploadRequest) (*domain.PresignVideoUploadResponse, error) {
	contentType := normalizeContentType(req.ContentType)
	ext, ok := domain.VideoExtension(contentType)
	if !ok {
		return nil, domain.ErrInvalidVideoType
	}
	if req.FileSize < 0 || req.FileSize > domain.MaxVideoSizeBytes {
		return nil, domain.ErrFileTooLarge
	}

	key := fmt.Sprintf("%s/%s%s", domain.VideoFolder, uuid.NewString(), ext)
	expires := domain.PresignExpirySecs * time.Second

	uploadURL, err := s.store.PresignPut(ctx, key, contentType, expires)
	if err != nil {
		return nil, err
	}

	logrus.Debugf("[MediaService] Presigned video upload key=%s", key)
	return &domain.PresignVideoUploadResponse{
		UploadURL:  uploadURL,
		PublicURL:  s.objectURL(key),
		Key:        key,
		ExpiresInS: domain.PresignExpirySecs,
	}, nil
}

// UploadCover enforces size/type, fits the image within the cover bounds and uploads a JPEG.
func (s *MediaService) UploadCover(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*domain.UploadResult, error) {
	data, _, err := readAndValidateImage(file, header, domain.MaxCoverSizeBytes)
	if err != nil {
		return nil, err
	}

	jpegBytes, err := fitToJPEG(data, domain.CoverMaxWidth, domain.CoverMaxHeight, 85)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s/%s%s", domain.CoverFolder, uuid.NewString(), domain.CoverExt)
	if err := s.store.Put(ctx, key, jpegBytes, domain.ContentTypeJPEG, domain.MediaCacheControl); err != nil {
		return nil, err
	}

	return &domain.UploadResult{URL: s.objectURL(key), Key: key}, nil
}

func (s *MediaService) objectURL(key string) string {
	return fmt.Sprintf("%s/%s", s.publicURL, key)
}

func normalizeContentType(contentType string) string {
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}

// readAndValidateImage loads the upload into memory with size and type checks.
func readAndValidateImage(file multipart.File, header *multipart.FileHeader, maxSize int64) ([]byte, string, error) {
	if header.Size > maxSize {
		return nil, "", domain.ErrFileTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > maxSize {
		return nil, "", domain.ErrFileTooLarge
	}

	contentType := normalizeContentType(header.Header.Get("Content-Type"))
	if (contentType == "" || contentType == "application/octet-stream") && len(data) > 0 {
		contentType = normalizeContentType(http.DetectContentType(data[:min(len(data), 512)]))
	}
	if !domain.IsAllowedImageType(contentType) {
		return nil, "", domain.ErrInvalidImageType
	}

	return data, contentType, nil
}

// fitToJPEG shrinks the image to fit within width x height, keeping aspect ratio.
// Smaller images are left at their size.
func fitToJPEG(data []byte, width, height, quality int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, domain.ErrInvalidImage
	}

	b := img.Bounds()
	if b.Dx() > width || b.Dy() > height {
		img = imaging.Fit(img, width, height, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
