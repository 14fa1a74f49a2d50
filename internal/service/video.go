package service

import (
	"context"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"toptop/internal/model"
	"toptop/internal/repository"
)

type VideoService struct {
	videoRepo  repository.VideoRepository
	likeRepo   repository.LikeRepository
	engagement *EngagementService
}

func NewVideoService(
	videoRepo repository.VideoRepository,
	likeRepo repository.LikeRepository,
	engagement *EngagementService,
) *VideoService {
	return &VideoService{
		videoRepo:  videoRepo,
		likeRepo:   likeRepo,
		engagement: engagement,
	}
}

// Create publishes a video whose media was already uploaded.
func (s *VideoService) Create(ctx context.Context, viewerID *string, req model.CreateVideoRequest) (*model.FeedVideo, error) {
	if viewerID == nil {
		return nil, model.ErrUnauthorized
	}

	caption := strings.TrimSpace(req.Caption)
	if caption == "" {
		return nil, model.ErrCaptionRequired
	}
	if utf8.RuneCountInString(caption) > model.MaxCaptionLength {
		return nil, model.ErrCaptionTooLong
	}
	if !isHTTPURL(req.VideoURL) {
		return nil, model.ErrInvalidVideoURL
	}
	if !isHTTPURL(req.CoverURL) {
		return nil, model.ErrInvalidCoverURL
	}
	if req.VideoWidth <= 0 || req.VideoHeight <= 0 {
		return nil, model.ErrInvalidDimensions
	}

	video := &model.Video{
		ID:          uuid.NewString(),
		UserID:      *viewerID,
		Caption:     caption,
		VideoURL:    req.VideoURL,
		CoverURL:    req.CoverURL,
		VideoWidth:  req.VideoWidth,
		VideoHeight: req.VideoHeight,
	}
	if err := s.videoRepo.Create(ctx, video); err != nil {
		return nil, err
	}

	logrus.Infof("[VideoService] Video created id=%s user=%s", video.ID, video.UserID)

	annotated, err := s.engagement.Annotate(ctx, []model.Video{*video}, viewerID)
	if err != nil {
		return nil, err
	}
	return &annotated[0], nil
}

func (s *VideoService) GetByID(ctx context.Context, id string, viewerID *string) (*model.FeedVideo, error) {
	video, err := s.videoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	annotated, err := s.engagement.Annotate(ctx, []model.Video{*video}, viewerID)
	if err != nil {
		return nil, err
	}
	return &annotated[0], nil
}

func (s *VideoService) LikeCount(ctx context.Context, id string) (*model.LikeCount, error) {
	exists, err := s.videoRepo.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrVideoNotFound
	}

	counts, err := s.likeRepo.CountByVideos(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	return &model.LikeCount{Count: counts[id]}, nil
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
