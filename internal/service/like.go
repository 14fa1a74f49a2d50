package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"toptop/internal/model"
	"toptop/internal/repository"
)

// LikeService applies an explicit desired like state.
type LikeService struct {
	likeRepo  repository.LikeRepository
	videoRepo repository.VideoRepository
}

func NewLikeService(likeRepo repository.LikeRepository, videoRepo repository.VideoRepository) *LikeService {
	return &LikeService{likeRepo: likeRepo, videoRepo: videoRepo}
}

// Toggle inserts (desired=true) or deletes (desired=false) exactly one row.
// Because the caller states the target state, a concurrent duplicate surfaces
// as ErrAlreadyLiked or ErrNotLiked instead of silently flipping twice.
func (s *LikeService) Toggle(ctx context.Context, viewerID *string, videoID string, desired bool) (*model.Ack, error) {
	if viewerID == nil {
		return nil, model.ErrUnauthorized
	}
	if videoID == "" {
		return nil, model.ErrVideoIDRequired
	}

	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if video.UserID == *viewerID {
		return nil, model.ErrCannotLikeOwnVideo
	}

	if desired {
		err = s.likeRepo.Create(ctx, *viewerID, videoID)
	} else {
		err = s.likeRepo.Delete(ctx, *viewerID, videoID)
	}
	if err != nil {
		return nil, err
	}

	logrus.Infof("[LikeService] Like set user=%s video=%s liked=%t", *viewerID, videoID, desired)
	return model.OK(), nil
}
