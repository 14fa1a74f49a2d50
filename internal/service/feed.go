package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"toptop/internal/model"
	"toptop/internal/repository"
)

// FeedService serves offset-paginated feeds, newest first.
type FeedService struct {
	videoRepo  repository.VideoRepository
	engagement *EngagementService
}

func NewFeedService(videoRepo repository.VideoRepository, engagement *EngagementService) *FeedService {
	return &FeedService{videoRepo: videoRepo, engagement: engagement}
}

// GetPage returns one page of scope starting at cursor (nil means 0).
//
// One extra row is fetched to detect whether another page exists. NextCursor
// is cursor+FeedPageSize only when it does, so a short or empty page ends
// pagination. Offsets are not snapshot-stable: inserts between calls can
// shift items across page boundaries.
func (s *FeedService) GetPage(ctx context.Context, scope model.Scope, viewerID *string, cursor *int) (*model.FeedPage, error) {
	if scope != model.ScopeAll && scope != model.ScopeFollowing {
		return nil, model.ErrInvalidScope
	}
	if scope == model.ScopeFollowing && viewerID == nil {
		return nil, model.ErrUnauthorized
	}

	offset := 0
	if cursor != nil {
		if *cursor < 0 {
			return nil, model.ErrInvalidCursor
		}
		offset = *cursor
	}

	videos, err := s.videoRepo.ListPage(ctx, scope, viewerID, offset, model.FeedPageSize+1)
	if err != nil {
		return nil, errors.Wrapf(err, "list %s feed", scope)
	}

	var next *int
	if len(videos) > model.FeedPageSize {
		videos = videos[:model.FeedPageSize]
		n := offset + model.FeedPageSize
		next = &n
	}

	items, err := s.engagement.Annotate(ctx, videos, viewerID)
	if err != nil {
		return nil, err
	}

	logrus.Debugf("[FeedService] Served page scope=%s offset=%d items=%d more=%t", scope, offset, len(items), next != nil)
	return &model.FeedPage{Items: items, NextCursor: next}, nil
}
