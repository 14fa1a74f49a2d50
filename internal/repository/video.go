package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"toptop/internal/model"
)

const videoColumns = `v.id, v.seq, v.user_id, v.caption, v.video_url, v.cover_url, v.video_width, v.video_height, v.created_at`

type videoRepository struct {
	db *sqlx.DB
}

func NewVideoRepository(db *sqlx.DB) VideoRepository {
	return &videoRepository{db: db}
}

// Create inserts the video and fills in Seq and CreatedAt.
func (r *videoRepository) Create(ctx context.Context, v *model.Video) error {
	query := `
		INSERT INTO videos (id, user_id, caption, video_url, cover_url, video_width, video_height)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING seq, created_at
	`
	row := r.db.QueryRowxContext(ctx, query, v.ID, v.UserID, v.Caption, v.VideoURL, v.CoverURL, v.VideoWidth, v.VideoHeight)
	if err := row.Scan(&v.Seq, &v.CreatedAt); err != nil {
		if pqCode(err) == pqForeignKeyViolation {
			return foreignKeyError(err, fkVideoUser, model.ErrAccountNotFound)
		}
		return errors.Wrap(err, "insert video")
	}
	return nil
}

func (r *videoRepository) GetByID(ctx context.Context, id string) (*model.Video, error) {
	var v model.Video
	err := r.db.GetContext(ctx, &v, `SELECT `+videoColumns+` FROM videos v WHERE v.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrVideoNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get video")
	}
	return &v, nil
}

func (r *videoRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM videos WHERE id = $1)`, id)
	if err != nil {
		return false, errors.Wrap(err, "check video existence")
	}
	return exists, nil
}

// ListPage windows the feed by offset. Ties on created_at fall back to insertion order.
func (r *videoRepository) ListPage(ctx context.Context, scope model.Scope, viewerID *string, offset, limit int) ([]model.Video, error) {
	var query string
	var args []interface{}

	switch scope {
	case model.ScopeAll:
		query = `
			SELECT ` + videoColumns + `
			FROM videos v
			ORDER BY v.created_at DESC, v.seq DESC
			LIMIT $1 OFFSET $2
		`
		args = []interface{}{limit, offset}
	case model.ScopeFollowing:
		if viewerID == nil {
			return nil, model.ErrUnauthorized
		}
		query = `
			SELECT ` + videoColumns + `
			FROM videos v
			WHERE v.user_id IN (SELECT following_id FROM follows WHERE follower_id = $1)
			ORDER BY v.created_at DESC, v.seq DESC
			LIMIT $2 OFFSET $3
		`
		args = []interface{}{*viewerID, limit, offset}
	default:
		return nil, model.ErrInvalidScope
	}

	videos := []model.Video{}
	if err := r.db.SelectContext(ctx, &videos, query, args...); err != nil {
		return nil, errors.Wrapf(err, "list %s page", scope)
	}
	return videos, nil
}

func (r *videoRepository) ListByUser(ctx context.Context, userID string) ([]model.ProfileVideo, error) {
	query := `
		SELECT id, cover_url, caption, created_at
		FROM videos
		WHERE user_id = $1
		ORDER BY created_at DESC, seq DESC
	`
	videos := []model.ProfileVideo{}
	if err := r.db.SelectContext(ctx, &videos, query, userID); err != nil {
		return nil, errors.Wrap(err, "list videos by user")
	}
	return videos, nil
}

// Search matches captions. The author is joined into the author.* columns.
func (r *videoRepository) Search(ctx context.Context, q string, limit int) ([]model.SearchVideo, error) {
	query := `
		SELECT ` + videoColumns + `,
		       a.id AS "author.id", a.name AS "author.name", a.image AS "author.image"
		FROM videos v
		JOIN accounts a ON a.id = v.user_id
		WHERE v.caption ILIKE $1
		ORDER BY v.created_at DESC, v.seq DESC
		LIMIT $2
	`
	videos := []model.SearchVideo{}
	if err := r.db.SelectContext(ctx, &videos, query, containsPattern(q), limit); err != nil {
		return nil, errors.Wrap(err, "search videos")
	}
	return videos, nil
}
