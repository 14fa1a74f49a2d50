package model

const (
	MaxCoverSizeBytes = 5 * 1024 * 1024
	MaxVideoSizeBytes = 100 * 1024 * 1024
	CoverMaxWidth     = 720
	CoverMaxHeight    = 1280
	CoverFolder       = "covers"
	VideoFolder       = "videos"
	CoverExt          = ".jpg"
	MediaCacheControl = "public, max-age=31536000" // 1 year
	PresignExpirySecs = 15 * 60
)

// Supported content types for upload validation
const (
	ContentTypeJPEG = "image/jpeg"
	ContentTypePNG  = "image/png"
	ContentTypeGIF  = "image/gif"
	ContentTypeWebP = "image/webp"

	ContentTypeMP4       = "video/mp4"
	ContentTypeWebM      = "video/webm"
	ContentTypeQuickTime = "video/quicktime"
)

var allowedImageTypes = map[string]struct{}{
	ContentTypeJPEG: {},
	ContentTypePNG:  {},
	ContentTypeGIF:  {},
	ContentTypeWebP: {},
}

// Video extension per accepted type, used for object keys.
var allowedVideoTypes = map[string]string{
	ContentTypeMP4:       ".mp4",
	ContentTypeWebM:      ".webm",
	ContentTypeQuickTime: ".mov",
}

var (
	ErrFileTooLarge     = newError(KindInvalidArgument, "file too large")
	ErrInvalidImageType = newError(KindInvalidArgument, "invalid image type")
	ErrInvalidVideoType = newError(KindInvalidArgument, "invalid video type")
	ErrInvalidImage     = newError(KindInvalidArgument, "file is not a decodable image")
)

// UploadResult represents the uploaded object location.
// Key is the object key inside the bucket.
type UploadResult struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// PresignVideoUploadRequest asks for a direct-upload URL.
// The client PUTs bytes to UploadURL, then sends PublicURL as videoURL in POST /videos.
type PresignVideoUploadRequest struct {
	ContentType string `json:"contentType"`
	FileSize    int64  `json:"fileSize"`
}

type PresignVideoUploadResponse struct {
	UploadURL  string `json:"uploadURL"`
	PublicURL  string `json:"publicURL"`
	Key        string `json:"key"`
	ExpiresInS int    `json:"expiresIn"`
}

// IsAllowedImageType reports if the provided content type is supported
func IsAllowedImageType(contentType string) bool {
	_, ok := allowedImageTypes[contentType]
	return ok
}

// VideoExtension returns the key extension for an accepted video type.
func VideoExtension(contentType string) (string, bool) {
	ext, ok := allowedVideoTypes[contentType]
	return ext, ok
}
