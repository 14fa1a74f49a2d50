package service

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"toptop/internal/model"
	"toptop/internal/repository"
)

// SyncGate remembers accounts whose row was recently written. Implemented by redis.SyncMarker.
type SyncGate interface {
	Synced(ctx context.Context, accountID string) (bool, error)
	MarkSynced(ctx context.Context, accountID string) error
}

// AccountService keeps account rows in step with identity claims and serves profiles.
type AccountService struct {
	accountRepo repository.AccountRepository
	followRepo  repository.FollowRepository
	videoRepo   repository.VideoRepository
	gate        SyncGate // nil means always sync
}

func NewAccountService(
	accountRepo repository.AccountRepository,
	followRepo repository.FollowRepository,
	videoRepo repository.VideoRepository,
	gate SyncGate,
) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		followRepo:  followRepo,
		videoRepo:   videoRepo,
		gate:        gate,
	}
}

// Sync writes the identity provider's claims into the account row.
// The row exists when Sync returns nil. Concurrent first requests may both
// upsert; the upsert is idempotent. When the gate is unavailable the upsert runs anyway.
func (s *AccountService) Sync(ctx context.Context, id model.Identity) error {
	if strings.TrimSpace(id.Subject) == "" {
		return model.ErrInvalidIdentity
	}

	if s.gate != nil {
		synced, err := s.gate.Synced(ctx, id.Subject)
		if err != nil {
			logrus.Warnf("[AccountService] Sync gate unavailable, syncing anyway account=%s err=%v", id.Subject, err)
		} else if synced {
			return nil
		}
	}

	if err := s.accountRepo.Upsert(ctx, id.Subject, id.Name, id.Picture); err != nil {
		return errors.Wrap(err, "sync account")
	}

	if s.gate != nil {
		if err := s.gate.MarkSynced(ctx, id.Subject); err != nil {
			logrus.Warnf("[AccountService] Failed to set sync marker account=%s err=%v", id.Subject, err)
		}
	}

	logrus.Debugf("[AccountService] Account synced id=%s", id.Subject)
	return nil
}

func (s *AccountService) GetProfile(ctx context.Context, id string, viewerID *string) (*model.Profile, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	counts, err := s.followRepo.Counts(ctx, id)
	if err != nil {
		return nil, err
	}

	videos, err := s.videoRepo.ListByUser(ctx, id)
	if err != nil {
		return nil, err
	}

	followedByMe := false
	if viewerID != nil && *viewerID != id {
		followed, err := s.followRepo.CheckFollows(ctx, *viewerID, []string{id})
		if err != nil {
			return nil, err
		}
		followedByMe = followed[id]
	}

	return &model.Profile{
		AccountSummary: withHandle(model.AccountSummary{ID: account.ID, Name: account.Name, Image: account.Image}),
		FollowerCount:  counts.Followers,
		FollowingCount: counts.Following,
		FollowedByMe:   followedByMe,
		Videos:         videos,
	}, nil
}

// Suggested lists accounts to follow, never including the viewer.
func (s *AccountService) Suggested(ctx context.Context, viewerID *string) ([]model.AccountListItem, error) {
	items, err := s.accountRepo.Suggested(ctx, viewerID, model.SuggestedAccountsLimit)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].AccountSummary = withHandle(items[i].AccountSummary)
	}
	return items, nil
}
