package service

import (
	"fmt"
	"testing"
	"time"

	"toptop/internal/repository/repotest"
)

var baseTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// testEnv wires every service to one in-memory store.
type testEnv struct {
	store      *repotest.Store
	engagement *EngagementService
	feed       *FeedService
	likes      *LikeService
	follows    *FollowService
	comments   *CommentService
	videos     *VideoService
	accounts   *AccountService
	search     *SearchService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := repotest.NewStore()

	tick := 0
	store.Now = func() time.Time {
		tick++
		return baseTime.Add(time.Duration(tick) * time.Second)
	}

	engagement := NewEngagementService(store.Accounts(), store.Likes(), store.Follows(), store.Comments())
	return &testEnv{
		store:      store,
		engagement: engagement,
		feed:       NewFeedService(store.Videos(), engagement),
		likes:      NewLikeService(store.Likes(), store.Videos()),
		follows:    NewFollowService(store.Follows(), store.Accounts()),
		comments:   NewCommentService(store.Comments(), store.Videos(), engagement),
		videos:     NewVideoService(store.Videos(), store.Likes(), engagement),
		accounts:   NewAccountService(store.Accounts(), store.Follows(), store.Videos(), nil),
		search:     NewSearchService(store.Accounts(), store.Videos()),
	}
}

// seedVideos creates n videos for owner, v1 oldest. Returns ids in creation order.
func (e *testEnv) seedVideos(owner string, n int) []string {
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("%s-v%d", owner, i+1)
		e.store.AddVideo(id, owner, baseTime.Add(time.Duration(i+1)*time.Minute))
		ids[i] = id
	}
	return ids
}

func ptr[T any](v T) *T {
	return &v
}
