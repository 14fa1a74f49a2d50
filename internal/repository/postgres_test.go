package repository

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toptop/internal/database"
	"toptop/internal/model"
)

// setupTestDB connects to TEST_DATABASE_URL, applies the schema and truncates all tables.
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping Postgres integration test")
	}

	db, err := database.Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	require.NoError(t, database.Migrate(ctx, db))
	_, err = db.ExecContext(ctx, `TRUNCATE comments, likes, follows, videos, accounts`)
	require.NoError(t, err)
	return db
}

func seedVideo(t *testing.T, repo VideoRepository, userID string) *model.Video {
	t.Helper()
	v := &model.Video{
		ID:          uuid.NewString(),
		UserID:      userID,
		Caption:     "clip",
		VideoURL:    "https://cdn.example.com/v.mp4",
		CoverURL:    "https://cdn.example.com/c.jpg",
		VideoWidth:  720,
		VideoHeight: 1280,
	}
	require.NoError(t, repo.Create(context.Background(), v))
	return v
}

func TestPostgres_LikeRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	accounts := NewAccountRepository(db)
	videos := NewVideoRepository(db)
	likes := NewLikeRepository(db)

	require.NoError(t, accounts.Upsert(ctx, "owner", "Owner", nil))
	require.NoError(t, accounts.Upsert(ctx, "fan", "Fan", nil))
	v := seedVideo(t, videos, "owner")

	require.NoError(t, likes.Create(ctx, "fan", v.ID))
	assert.Equal(t, model.ErrAlreadyLiked, likes.Create(ctx, "fan", v.ID))

	counts, err := likes.CountByVideos(ctx, []string{v.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, counts[v.ID])

	liked, err := likes.CheckLikes(ctx, "fan", []string{v.ID})
	require.NoError(t, err)
	assert.True(t, liked[v.ID])

	require.NoError(t, likes.Delete(ctx, "fan", v.ID))
	assert.Equal(t, model.ErrNotLiked, likes.Delete(ctx, "fan", v.ID))
	assert.Equal(t, model.ErrVideoNotFound, likes.Create(ctx, "fan", uuid.NewString()))
	assert.Equal(t, model.ErrViewerNotRegistered, likes.Create(ctx, "stranger", v.ID))
}

func TestPostgres_FollowConstraints(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	accounts := NewAccountRepository(db)
	follows := NewFollowRepository(db)

	require.NoError(t, accounts.Upsert(ctx, "a", "A", nil))
	require.NoError(t, accounts.Upsert(ctx, "b", "B", nil))

	assert.Equal(t, model.ErrCannotFollowSelf, follows.Create(ctx, "a", "a"))
	assert.Equal(t, model.ErrAccountNotFound, follows.Create(ctx, "a", "ghost"))
	assert.Equal(t, model.ErrViewerNotRegistered, follows.Create(ctx, "ghost", "a"))
	require.NoError(t, follows.Create(ctx, "a", "b"))
	assert.Equal(t, model.ErrAlreadyFollowing, follows.Create(ctx, "a", "b"))

	counts, err := follows.Counts(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Followers)
	assert.Equal(t, 0, counts.Following)
}

func TestPostgres_ListPageOrdersByInsertionOnTies(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	accounts := NewAccountRepository(db)
	videos := NewVideoRepository(db)

	require.NoError(t, accounts.Upsert(ctx, "owner", "Owner", nil))
	var ids []string
	for i := 0; i < 3; i++ {
		ids = append(ids, seedVideo(t, videos, "owner").ID)
	}
	_, err := db.ExecContext(ctx, `UPDATE videos SET created_at = '2024-01-01T00:00:00Z'`)
	require.NoError(t, err)

	page, err := videos.ListPage(ctx, model.ScopeAll, nil, 0, 10)
	require.NoError(t, err)
	require.Len(t, page, 3)
	assert.Equal(t, []string{ids[2], ids[1], ids[0]}, []string{page[0].ID, page[1].ID, page[2].ID})
}

func TestPostgres_CommentsJoinAuthor(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	accounts := NewAccountRepository(db)
	videos := NewVideoRepository(db)
	comments := NewCommentRepository(db)

	require.NoError(t, accounts.Upsert(ctx, "owner", "Owner", nil))
	v := seedVideo(t, videos, "owner")

	c := &model.Comment{ID: uuid.NewString(), VideoID: v.ID, UserID: "owner", Content: "first"}
	require.NoError(t, comments.Create(ctx, c))

	list, err := comments.ListByVideo(ctx, v.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Owner", list[0].Author.Name)
	assert.Equal(t, "first", list[0].Content)

	stray := &model.Comment{ID: uuid.NewString(), VideoID: v.ID, UserID: "stranger", Content: "hi"}
	assert.Equal(t, model.ErrViewerNotRegistered, comments.Create(ctx, stray))
	missing := &model.Comment{ID: uuid.NewString(), VideoID: uuid.NewString(), UserID: "owner", Content: "hi"}
	assert.Equal(t, model.ErrVideoNotFound, comments.Create(ctx, missing))
}

func TestPostgres_SearchEscapesWildcards(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	accounts := NewAccountRepository(db)

	require.NoError(t, accounts.Upsert(ctx, "a", "100% real", nil))
	require.NoError(t, accounts.Upsert(ctx, "b", "100 percent", nil))

	found, err := accounts.Search(ctx, "100%", 20)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "a", found[0].ID)
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, `%50\%\_off\\%`, containsPattern(`50%_off\`))
}
