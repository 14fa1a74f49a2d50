package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toptop/internal/model"
)

func pageIDs(page *model.FeedPage) []string {
	ids := make([]string, len(page.Items))
	for i, item := range page.Items {
		ids[i] = item.ID
	}
	return ids
}

func TestFeedService_FifteenVideosSplitIntoTwoPages(t *testing.T) {
	// ARRANGE: 15 videos, created in order v1..v15
	env := newTestEnv(t)
	env.store.AddAccount("alice", "Alice")
	ids := env.seedVideos("alice", 15)
	ctx := context.Background()

	// ACT: first page
	first, err := env.feed.GetPage(ctx, model.ScopeAll, nil, nil)
	require.NoError(t, err)

	// ASSERT: newest ten, cursor points at the next window
	want := []string{ids[14], ids[13], ids[12], ids[11], ids[10], ids[9], ids[8], ids[7], ids[6], ids[5]}
	assert.Equal(t, want, pageIDs(first))
	require.NotNil(t, first.NextCursor)
	assert.Equal(t, 10, *first.NextCursor)

	// ACT: second page
	second, err := env.feed.GetPage(ctx, model.ScopeAll, nil, first.NextCursor)
	require.NoError(t, err)

	// ASSERT: remaining five and no further cursor
	assert.Equal(t, []string{ids[4], ids[3], ids[2], ids[1], ids[0]}, pageIDs(second))
	assert.Nil(t, second.NextCursor)
}

func TestFeedService_PaginationVisitsEveryVideoOnce(t *testing.T) {
	env := newTestEnv(t)
	env.store.AddAccount("alice", "Alice")
	env.store.AddAccount("bob", "Bob")
	env.seedVideos("alice", 13)
	env.seedVideos("bob", 14)
	ctx := context.Background()

	seen := map[string]bool{}
	var order []model.FeedVideo
	var cursor *int
	for pages := 0; ; pages++ {
		require.Less(t, pages, 10, "pagination did not terminate")
		page, err := env.feed.GetPage(ctx, model.ScopeAll, nil, cursor)
		require.NoError(t, err)
		for _, item := range page.Items {
			assert.False(t, seen[item.ID], "duplicate %s", item.ID)
			seen[item.ID] = true
			order = append(order, item)
		}
		if page.NextCursor == nil {
			break
		}
		cursor = page.NextCursor
	}

	assert.Len(t, seen, 27)
	for i := 1; i < len(order); i++ {
		prev, cur := order[i-1], order[i]
		assert.False(t, cur.CreatedAt.After(prev.CreatedAt), "feed not newest first at %d", i)
	}
}

func TestFeedService_TiesFollowInsertionOrder(t *testing.T) {
	env := newTestEnv(t)
	env.store.AddAccount("alice", "Alice")
	env.store.AddVideo("first", "alice", baseTime)
	env.store.AddVideo("second", "alice", baseTime)
	env.store.AddVideo("third", "alice", baseTime)

	page, err := env.feed.GetPage(context.Background(), model.ScopeAll, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"third", "second", "first"}, pageIDs(page))
}

func TestFeedService_ExactlyOnePageHasNoCursor(t *testing.T) {
	env := newTestEnv(t)
	env.store.AddAccount("alice", "Alice")
	env.seedVideos("alice", model.FeedPageSize)

	page, err := env.feed.GetPage(context.Background(), model.ScopeAll, nil, nil)
	require.NoError(t, err)
	assert.Len(t, page.Items, model.FeedPageSize)
	assert.Nil(t, page.NextCursor)
}

func TestFeedService_EmptyFeed(t *testing.T) {
	env := newTestEnv(t)

	page, err := env.feed.GetPage(context.Background(), model.ScopeAll, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
	assert.Nil(t, page.NextCursor)
}

func TestFeedService_CursorPastEnd(t *testing.T) {
	env := newTestEnv(t)
	env.store.AddAccount("alice", "Alice")
	env.seedVideos("alice", 3)

	page, err := env.feed.GetPage(context.Background(), model.ScopeAll, nil, ptr(50))
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Nil(t, page.NextCursor)
}

func TestFeedService_FollowingOnlyShowsFollowedAccounts(t *testing.T) {
	// ARRANGE: viewer follows bob but not carol
	env := newTestEnv(t)
	ctx := context.Background()
	env.store.AddAccount("viewer", "Viewer")
	env.store.AddAccount("bob", "Bob")
	env.store.AddAccount("carol", "Carol")
	bobVideos := env.seedVideos("bob", 3)
	env.seedVideos("carol", 4)
	_, err := env.follows.Toggle(ctx, ptr("viewer"), "bob", true)
	require.NoError(t, err)

	// ACT
	page, err := env.feed.GetPage(ctx, model.ScopeFollowing, ptr("viewer"), nil)
	require.NoError(t, err)

	// ASSERT
	assert.Equal(t, []string{bobVideos[2], bobVideos[1], bobVideos[0]}, pageIDs(page))
	for _, item := range page.Items {
		assert.Equal(t, "bob", item.UserID)
		assert.True(t, item.FollowedByMe)
	}
	assert.Nil(t, page.NextCursor)
}

func TestFeedService_FollowingRequiresViewer(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.feed.GetPage(context.Background(), model.ScopeFollowing, nil, nil)
	assert.Equal(t, model.KindUnauthorized, model.KindOf(err))
}

func TestFeedService_RejectsNegativeCursor(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.feed.GetPage(context.Background(), model.ScopeAll, nil, ptr(-1))
	assert.ErrorIs(t, err, model.ErrInvalidCursor)
}

func TestFeedService_RejectsUnknownScope(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.feed.GetPage(context.Background(), model.Scope("trending"), nil, nil)
	assert.Equal(t, model.KindInvalidArgument, model.KindOf(err))
}
