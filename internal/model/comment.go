package model

import "time"

// Comment is a single entry in a video's thread.
type Comment struct {
	ID        string         `db:"id" json:"id"`
	VideoID   string         `db:"video_id" json:"videoId"`
	UserID    string         `db:"user_id" json:"-"`
	Content   string         `db:"content" json:"content"`
	CreatedAt time.Time      `db:"created_at" json:"createdAt"`
	Seq       int64          `db:"seq" json:"-"`
	Author    AccountSummary `json:"user"`
}

// PostCommentRequest is the body of POST /comments.
type PostCommentRequest struct {
	VideoID string `json:"videoId"`
	Content string `json:"content"`
}

// Measured in Unicode code points after trimming.
const MaxCommentLength = 5000

var (
	ErrContentRequired = newError(KindInvalidArgument, "comment content is required")
	ErrContentTooLong  = newError(KindInvalidArgument, "comment content too long")
)
