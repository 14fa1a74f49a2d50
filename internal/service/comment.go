package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"toptop/internal/model"
	"toptop/internal/repository"
)

// CommentService posts and lists a video's comments, newest first.
type CommentService struct {
	commentRepo repository.CommentRepository
	videoRepo   repository.VideoRepository
	engagement  *EngagementService
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	videoRepo repository.VideoRepository,
	engagement *EngagementService,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		videoRepo:   videoRepo,
		engagement:  engagement,
	}
}

// List returns the whole thread newest first.
func (s *CommentService) List(ctx context.Context, videoID string) ([]model.Comment, error) {
	if err := s.requireVideo(ctx, videoID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	for i := range comments {
		comments[i].Author = withHandle(comments[i].Author)
	}
	return comments, nil
}

// Post validates and stores the trimmed text.
func (s *CommentService) Post(ctx context.Context, viewerID *string, videoID, text string) (*model.Comment, error) {
	if viewerID == nil {
		return nil, model.ErrUnauthorized
	}

	content := strings.TrimSpace(text)
	if content == "" {
		return nil, model.ErrContentRequired
	}
	if utf8.RuneCountInString(content) > model.MaxCommentLength {
		return nil, model.ErrContentTooLong
	}

	if err := s.requireVideo(ctx, videoID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		ID:      uuid.NewString(),
		VideoID: videoID,
		UserID:  *viewerID,
		Content: content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	authors, err := s.engagement.Authors(ctx, []string{*viewerID})
	if err != nil {
		return nil, err
	}
	comment.Author = authors[*viewerID]
	return comment, nil
}

func (s *CommentService) requireVideo(ctx context.Context, videoID string) error {
	if videoID == "" {
		return model.ErrVideoIDRequired
	}
	exists, err := s.videoRepo.Exists(ctx, videoID)
	if err != nil {
		return errors.Wrap(err, "check video")
	}
	if !exists {
		return model.ErrVideoNotFound
	}
	return nil
}
