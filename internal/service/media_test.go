package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toptop/internal/model"
)

type putCall struct {
	key          string
	body         []byte
	contentType  string
	cacheControl string
}

type mockObjectStore struct {
	presignErr error
	puts       []putCall
}

func (m *mockObjectStore) Put(_ context.Context, key string, body []byte, contentType, cacheControl string) error {
	m.puts = append(m.puts, putCall{key, body, contentType, cacheControl})
	return nil
}

func (m *mockObjectStore) PresignPut(_ context.Context, key, _ string, _ time.Duration) (string, error) {
	if m.presignErr != nil {
		return "", m.presignErr
	}
	return "https://upload.example.com/" + key + "?sig=x", nil
}

// memFile satisfies multipart.File over an in-memory buffer.
type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func uploadOf(t *testing.T, data []byte, contentType string) (multipart.File, *multipart.FileHeader) {
	t.Helper()
	header := &multipart.FileHeader{
		Filename: "cover",
		Size:     int64(len(data)),
		Header:   textproto.MIMEHeader{},
	}
	if contentType != "" {
		header.Header.Set("Content-Type", contentType)
	}
	return memFile{bytes.NewReader(data)}, header
}

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 7 {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestMediaService_PresignVideoUpload(t *testing.T) {
	svc := NewMediaService(&mockObjectStore{}, "https://media.example.com/")

	res, err := svc.PresignVideoUpload(context.Background(), model.PresignVideoUploadRequest{
		ContentType: "video/mp4; codecs=avc1",
		FileSize:    20 << 20,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(res.Key, "videos/"))
	assert.True(t, strings.HasSuffix(res.Key, ".mp4"))
	assert.Equal(t, "https://media.example.com/"+res.Key, res.PublicURL)
	assert.Contains(t, res.UploadURL, res.Key)
	assert.Equal(t, model.PresignExpirySecs, res.ExpiresInS)
}

func TestMediaService_PresignVideoUploadValidation(t *testing.T) {
	svc := NewMediaService(&mockObjectStore{}, "https://media.example.com")
	ctx := context.Background()

	_, err := svc.PresignVideoUpload(ctx, model.PresignVideoUploadRequest{ContentType: "image/png"})
	assert.ErrorIs(t, err, model.ErrInvalidVideoType)

	_, err = svc.PresignVideoUpload(ctx, model.PresignVideoUploadRequest{ContentType: "video/webm", FileSize: model.MaxVideoSizeBytes + 1})
	assert.ErrorIs(t, err, model.ErrFileTooLarge)
}

func TestMediaService_PresignPropagatesStoreError(t *testing.T) {
	svc := NewMediaService(&mockObjectStore{presignErr: errors.New("boom")}, "https://media.example.com")

	_, err := svc.PresignVideoUpload(context.Background(), model.PresignVideoUploadRequest{ContentType: "video/quicktime"})
	require.Error(t, err)
	assert.Equal(t, model.KindInternal, model.KindOf(err))
}

func TestMediaService_UploadCoverFitsWithinBounds(t *testing.T) {
	store := &mockObjectStore{}
	svc := NewMediaService(store, "https://media.example.com")
	file, header := uploadOf(t, pngOf(t, 1440, 1440), "image/png")

	res, err := svc.UploadCover(context.Background(), file, header)
	require.NoError(t, err)

	require.Len(t, store.puts, 1)
	put := store.puts[0]
	assert.Equal(t, res.Key, put.key)
	assert.True(t, strings.HasPrefix(put.key, "covers/"))
	assert.Equal(t, model.ContentTypeJPEG, put.contentType)
	assert.Equal(t, model.MediaCacheControl, put.cacheControl)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(put.body))
	require.NoError(t, err)
	assert.Equal(t, 720, cfg.Width)
	assert.Equal(t, 720, cfg.Height)
}

func TestMediaService_UploadCoverKeepsSmallImages(t *testing.T) {
	store := &mockObjectStore{}
	svc := NewMediaService(store, "https://media.example.com")
	file, header := uploadOf(t, pngOf(t, 300, 400), "")

	_, err := svc.UploadCover(context.Background(), file, header)
	require.NoError(t, err)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(store.puts[0].body))
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.Width)
	assert.Equal(t, 400, cfg.Height)
}

func TestMediaService_UploadCoverValidation(t *testing.T) {
	svc := NewMediaService(&mockObjectStore{}, "https://media.example.com")
	ctx := context.Background()

	file, header := uploadOf(t, []byte("plain text"), "text/plain")
	_, err := svc.UploadCover(ctx, file, header)
	assert.ErrorIs(t, err, model.ErrInvalidImageType)

	file, header = uploadOf(t, []byte("not really a png"), "image/png")
	_, err = svc.UploadCover(ctx, file, header)
	assert.ErrorIs(t, err, model.ErrInvalidImage)

	file, header = uploadOf(t, pngOf(t, 10, 10), "image/png")
	header.Size = model.MaxCoverSizeBytes + 1
	_, err = svc.UploadCover(ctx, file, header)
	assert.ErrorIs(t, err, model.ErrFileTooLarge)
}
