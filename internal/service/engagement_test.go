package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toptop/internal/model"
)

func TestEngagementService_AnnotateForViewer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.store.AddAccount("owner", "Nguyễn Văn A")
	env.store.AddAccount("viewer", "Viewer")
	liked := env.store.AddVideo("liked", "owner", baseTime)
	other := env.store.AddVideo("other", "owner", baseTime)

	_, err := env.likes.Toggle(ctx, ptr("viewer"), "liked", true)
	require.NoError(t, err)
	_, err = env.comments.Post(ctx, ptr("viewer"), "other", "nice")
	require.NoError(t, err)

	out, err := env.engagement.Annotate(ctx, []model.Video{liked, other}, ptr("viewer"))
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "liked", out[0].ID)
	assert.True(t, out[0].LikedByMe)
	assert.Equal(t, 1, out[0].LikeCount)
	assert.Equal(t, 0, out[0].CommentCount)

	assert.Equal(t, "other", out[1].ID)
	assert.False(t, out[1].LikedByMe)
	assert.Equal(t, 0, out[1].LikeCount)
	assert.Equal(t, 1, out[1].CommentCount)

	assert.False(t, out[0].FollowedByMe)
	assert.Equal(t, "nguyenvana", out[0].Author.Handle)
}

func TestEngagementService_AnonymousViewerGetsNoPersonalisedData(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.store.AddAccount("owner", "Owner")
	env.store.AddAccount("fan", "Fan")
	v := env.store.AddVideo("v", "owner", baseTime)
	_, err := env.likes.Toggle(ctx, ptr("fan"), "v", true)
	require.NoError(t, err)
	_, err = env.follows.Toggle(ctx, ptr("fan"), "owner", true)
	require.NoError(t, err)

	out, err := env.engagement.Annotate(ctx, []model.Video{v}, nil)
	require.NoError(t, err)

	assert.False(t, out[0].LikedByMe)
	assert.False(t, out[0].FollowedByMe)
	assert.Equal(t, 1, out[0].LikeCount)
	assert.Zero(t, env.store.Calls("Likes.CheckLikes"))
	assert.Zero(t, env.store.Calls("Follows.CheckFollows"))
}

func TestEngagementService_OneBatchQueryPerLookup(t *testing.T) {
	env := newTestEnv(t)
	env.store.AddAccount("a", "A")
	env.store.AddAccount("b", "B")
	var videos []model.Video
	for _, id := range env.seedVideos("a", 5) {
		v, err := env.store.Videos().GetByID(context.Background(), id)
		require.NoError(t, err)
		videos = append(videos, *v)
	}
	for _, id := range env.seedVideos("b", 5) {
		v, err := env.store.Videos().GetByID(context.Background(), id)
		require.NoError(t, err)
		videos = append(videos, *v)
	}

	out, err := env.engagement.Annotate(context.Background(), videos, ptr("a"))
	require.NoError(t, err)
	require.Len(t, out, 10)

	for i := range videos {
		assert.Equal(t, videos[i].ID, out[i].ID, "order not preserved")
	}
	for _, name := range []string{
		"Accounts.GetSummaries",
		"Likes.CountByVideos",
		"Comments.CountByVideos",
		"Likes.CheckLikes",
		"Follows.CheckFollows",
	} {
		assert.Equal(t, 1, env.store.Calls(name), name)
	}
}

func TestEngagementService_EmptyInput(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.engagement.Annotate(context.Background(), nil, ptr("viewer"))
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Zero(t, env.store.Calls("Likes.CountByVideos"))
}
