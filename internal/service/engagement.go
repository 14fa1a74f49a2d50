package service

import (
	"context"

	"github.com/pkg/errors"

	"toptop/internal/model"
	"toptop/internal/repository"
	"toptop/internal/textutil"
)

// EngagementService decorates videos with counts, authors and viewer flags.
// Every lookup is one batch query keyed by the full id set.
type EngagementService struct {
	accountRepo repository.AccountRepository
	likeRepo    repository.LikeRepository
	followRepo  repository.FollowRepository
	commentRepo repository.CommentRepository
}

func NewEngagementService(
	accountRepo repository.AccountRepository,
	likeRepo repository.LikeRepository,
	followRepo repository.FollowRepository,
	commentRepo repository.CommentRepository,
) *EngagementService {
	return &EngagementService{
		accountRepo: accountRepo,
		likeRepo:    likeRepo,
		followRepo:  followRepo,
		commentRepo: commentRepo,
	}
}

// Annotate preserves input order. Anonymous viewers get false flags and
// no personalised queries are issued for them.
func (s *EngagementService) Annotate(ctx context.Context, videos []model.Video, viewerID *string) ([]model.FeedVideo, error) {
	out := make([]model.FeedVideo, len(videos))
	if len(videos) == 0 {
		return out, nil
	}

	videoIDs := make([]string, len(videos))
	ownerIDs := make([]string, 0, len(videos))
	seenOwner := make(map[string]bool, len(videos))
	for i, v := range videos {
		videoIDs[i] = v.ID
		if !seenOwner[v.UserID] {
			seenOwner[v.UserID] = true
			ownerIDs = append(ownerIDs, v.UserID)
		}
	}

	authors, err := s.Authors(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}
	likeCounts, err := s.likeRepo.CountByVideos(ctx, videoIDs)
	if err != nil {
		return nil, errors.Wrap(err, "count likes")
	}
	commentCounts, err := s.commentRepo.CountByVideos(ctx, videoIDs)
	if err != nil {
		return nil, errors.Wrap(err, "count comments")
	}

	liked := map[string]bool{}
	followed := map[string]bool{}
	if viewerID != nil {
		if liked, err = s.likeRepo.CheckLikes(ctx, *viewerID, videoIDs); err != nil {
			return nil, errors.Wrap(err, "check likes")
		}
		if followed, err = s.followRepo.CheckFollows(ctx, *viewerID, ownerIDs); err != nil {
			return nil, errors.Wrap(err, "check follows")
		}
	}

	for i, v := range videos {
		out[i] = model.FeedVideo{
			Video:        v,
			Author:       authors[v.UserID],
			LikeCount:    likeCounts[v.ID],
			CommentCount: commentCounts[v.ID],
			LikedByMe:    liked[v.ID],
			FollowedByMe: followed[v.UserID],
		}
	}
	return out, nil
}

// Authors batch-loads account summaries with their handles filled in.
func (s *EngagementService) Authors(ctx context.Context, ids []string) (map[string]model.AccountSummary, error) {
	authors, err := s.accountRepo.GetSummaries(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "load authors")
	}
	for id, a := range authors {
		authors[id] = withHandle(a)
	}
	return authors, nil
}

func withHandle(a model.AccountSummary) model.AccountSummary {
	a.Handle = textutil.Handle(a.Name)
	return a
}
