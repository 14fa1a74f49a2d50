package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"toptop/internal/model"
)

type likeRepository struct {
	db *sqlx.DB
}

func NewLikeRepository(db *sqlx.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Create inserts exactly one like row. The unique key turns a duplicate into ErrAlreadyLiked.
func (r *likeRepository) Create(ctx context.Context, userID, videoID string) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO likes (user_id, video_id) VALUES ($1, $2)`, userID, videoID)
	switch pqCode(err) {
	case "":
	case pqUniqueViolation:
		return model.ErrAlreadyLiked
	case pqForeignKeyViolation:
		return foreignKeyError(err, fkLikeUser, model.ErrVideoNotFound)
	}
	if err != nil {
		return errors.Wrap(err, "insert like")
	}
	return nil
}

func (r *likeRepository) Delete(ctx context.Context, userID, videoID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM likes WHERE user_id = $1 AND video_id = $2`, userID, videoID)
	if err != nil {
		return errors.Wrap(err, "delete like")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "get rows affected")
	}
	if rows == 0 {
		return model.ErrNotLiked
	}
	return nil
}

func (r *likeRepository) CheckLikes(ctx context.Context, userID string, videoIDs []string) (map[string]bool, error) {
	result := make(map[string]bool)
	if len(videoIDs) == 0 {
		return result, nil
	}

	var liked []string
	err := r.db.SelectContext(ctx, &liked, `SELECT video_id FROM likes WHERE user_id = $1 AND video_id = ANY($2)`, userID, pq.Array(videoIDs))
	if err != nil {
		return nil, errors.Wrap(err, "check likes")
	}
	for _, id := range liked {
		result[id] = true
	}
	return result, nil
}

func (r *likeRepository) CountByVideos(ctx context.Context, videoIDs []string) (map[string]int, error) {
	return countByVideo(ctx, r.db, "likes", videoIDs)
}

type videoCount struct {
	VideoID string `db:"video_id"`
	Count   int    `db:"count"`
}

// countByVideo runs one grouped COUNT over table for the given video ids.
// Ids with no rows are absent from the map.
func countByVideo(ctx context.Context, db *sqlx.DB, table string, videoIDs []string) (map[string]int, error) {
	result := make(map[string]int, len(videoIDs))
	if len(videoIDs) == 0 {
		return result, nil
	}

	query := `SELECT video_id, COUNT(*) AS count FROM ` + table + ` WHERE video_id = ANY($1) GROUP BY video_id`
	var rows []videoCount
	if err := db.SelectContext(ctx, &rows, query, pq.Array(videoIDs)); err != nil {
		return nil, errors.Wrapf(err, "count %s", table)
	}
	for _, row := range rows {
		result[row.VideoID] = row.Count
	}
	return result, nil
}
