package service

import (
	"context"
	"strings"

	"toptop/internal/model"
	"toptop/internal/repository"
)

type SearchService struct {
	accountRepo repository.AccountRepository
	videoRepo   repository.VideoRepository
}

func NewSearchService(accountRepo repository.AccountRepository, videoRepo repository.VideoRepository) *SearchService {
	return &SearchService{accountRepo: accountRepo, videoRepo: videoRepo}
}

// Search matches account names and video captions as case-insensitive substrings.
func (s *SearchService) Search(ctx context.Context, q string) (*model.SearchResult, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, model.ErrQueryRequired
	}

	accounts, err := s.accountRepo.Search(ctx, q, model.SearchLimit)
	if err != nil {
		return nil, err
	}
	videos, err := s.videoRepo.Search(ctx, q, model.SearchLimit)
	if err != nil {
		return nil, err
	}

	for i := range accounts {
		accounts[i].AccountSummary = withHandle(accounts[i].AccountSummary)
	}
	for i := range videos {
		videos[i].Author = withHandle(videos[i].Author)
	}
	return &model.SearchResult{Accounts: accounts, Videos: videos}, nil
}
