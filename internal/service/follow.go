package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"toptop/internal/model"
	"toptop/internal/repository"
)

// FollowService applies an explicit desired follow state.
type FollowService struct {
	followRepo  repository.FollowRepository
	accountRepo repository.AccountRepository
}

func NewFollowService(followRepo repository.FollowRepository, accountRepo repository.AccountRepository) *FollowService {
	return &FollowService{followRepo: followRepo, accountRepo: accountRepo}
}

// Toggle inserts (desired=true) or deletes (desired=false) exactly one row.
func (s *FollowService) Toggle(ctx context.Context, viewerID *string, targetID string, desired bool) (*model.Ack, error) {
	if viewerID == nil {
		return nil, model.ErrUnauthorized
	}
	if targetID == "" {
		return nil, model.ErrFollowingRequired
	}
	if targetID == *viewerID {
		return nil, model.ErrCannotFollowSelf
	}

	exists, err := s.accountRepo.Exists(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrAccountNotFound
	}

	if desired {
		err = s.followRepo.Create(ctx, *viewerID, targetID)
	} else {
		err = s.followRepo.Delete(ctx, *viewerID, targetID)
	}
	if err != nil {
		return nil, err
	}

	logrus.Infof("[FollowService] Follow set follower=%s following=%s followed=%t", *viewerID, targetID, desired)
	return model.OK(), nil
}
