package repository

import (
	"context"

	"toptop/internal/model"
)

type AccountRepository interface {
	// Upsert creates the account or refreshes name/image from identity claims.
	Upsert(ctx context.Context, id, name string, image *string) error
	GetByID(ctx context.Context, id string) (*model.Account, error)
	Exists(ctx context.Context, id string) (bool, error)
	// GetSummaries batch-loads authors keyed by account id.
	GetSummaries(ctx context.Context, ids []string) (map[string]model.AccountSummary, error)
	Suggested(ctx context.Context, excludeID *string, limit int) ([]model.AccountListItem, error)
	Search(ctx context.Context, query string, limit int) ([]model.AccountListItem, error)
}

type VideoRepository interface {
	Create(ctx context.Context, video *model.Video) error
	GetByID(ctx context.Context, id string) (*model.Video, error)
	Exists(ctx context.Context, id string) (bool, error)
	// ListPage returns up to limit videos in feed order starting at offset.
	// ScopeFollowing restricts to accounts followed by viewerID.
	ListPage(ctx context.Context, scope model.Scope, viewerID *string, offset, limit int) ([]model.Video, error)
	ListByUser(ctx context.Context, userID string) ([]model.ProfileVideo, error)
	Search(ctx context.Context, query string, limit int) ([]model.SearchVideo, error)
}

type LikeRepository interface {
	Create(ctx context.Context, userID, videoID string) error
	Delete(ctx context.Context, userID, videoID string) error
	// CheckLikes checks which videos the user has liked
	CheckLikes(ctx context.Context, userID string, videoIDs []string) (map[string]bool, error)
	CountByVideos(ctx context.Context, videoIDs []string) (map[string]int, error)
}

type FollowRepository interface {
	Create(ctx context.Context, followerID, followingID string) error
	Delete(ctx context.Context, followerID, followingID string) error
	CheckFollows(ctx context.Context, followerID string, followingIDs []string) (map[string]bool, error)
	Counts(ctx context.Context, accountID string) (*model.FollowCounts, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	// ListByVideo returns the thread newest first with authors joined.
	ListByVideo(ctx context.Context, videoID string) ([]model.Comment, error)
	CountByVideos(ctx context.Context, videoIDs []string) (map[string]int, error)
}
