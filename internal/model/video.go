package model

import "time"

// Video is a published short video.
type Video struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"userId"`
	Caption     string    `db:"caption" json:"caption"`
	VideoURL    string    `db:"video_url" json:"videoURL"`
	CoverURL    string    `db:"cover_url" json:"coverURL"`
	VideoWidth  int       `db:"video_width" json:"videoWidth"`
	VideoHeight int       `db:"video_height" json:"videoHeight"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	Seq         int64     `db:"seq" json:"-"`
}

// FeedVideo is a video decorated with engagement data for one viewer.
type FeedVideo struct {
	Video
	Author       AccountSummary `json:"author"`
	LikeCount    int            `json:"likeCount"`
	CommentCount int            `json:"commentCount"`
	LikedByMe    bool           `json:"likedByMe"`
	FollowedByMe bool           `json:"followedByMe"`
}

// FeedPage is one window of a feed. NextCursor is nil on the last page.
type FeedPage struct {
	Items      []FeedVideo `json:"items"`
	NextCursor *int        `json:"nextCursor"`
}

// Scope selects the candidate set for a feed.
type Scope string

const (
	ScopeAll       Scope = "for-you"
	ScopeFollowing Scope = "following"
)

// CreateVideoRequest is the body of POST /videos.
type CreateVideoRequest struct {
	Caption     string `json:"caption"`
	VideoURL    string `json:"videoURL"`
	CoverURL    string `json:"coverURL"`
	VideoWidth  int    `json:"videoWidth"`
	VideoHeight int    `json:"videoHeight"`
}

// LikeCount is the body of GET /videos/{id}/likes/count.
type LikeCount struct {
	Count int `json:"count"`
}

const (
	FeedPageSize     = 10
	MaxCaptionLength = 2200
)

var (
	ErrVideoNotFound     = newError(KindNotFound, "video not found")
	ErrCaptionRequired   = newError(KindInvalidArgument, "caption is required")
	ErrCaptionTooLong    = newError(KindInvalidArgument, "caption too long")
	ErrInvalidVideoURL   = newError(KindInvalidArgument, "videoURL must be an absolute http(s) URL")
	ErrInvalidCoverURL   = newError(KindInvalidArgument, "coverURL must be an absolute http(s) URL")
	ErrInvalidDimensions = newError(KindInvalidArgument, "videoWidth and videoHeight must be positive")
	ErrVideoIDRequired   = newError(KindInvalidArgument, "videoId is required")
)
