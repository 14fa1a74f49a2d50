package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"toptop/internal/model"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create inserts the comment and fills in Seq and CreatedAt.
func (r *commentRepository) Create(ctx context.Context, c *model.Comment) error {
	query := `
		INSERT INTO comments (id, video_id, user_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING seq, created_at
	`
	row := r.db.QueryRowxContext(ctx, query, c.ID, c.VideoID, c.UserID, c.Content)
	if err := row.Scan(&c.Seq, &c.CreatedAt); err != nil {
		if pqCode(err) == pqForeignKeyViolation {
			return foreignKeyError(err, fkCommentUser, model.ErrVideoNotFound)
		}
		return errors.Wrap(err, "insert comment")
	}
	return nil
}

func (r *commentRepository) ListByVideo(ctx context.Context, videoID string) ([]model.Comment, error) {
	query := `
		SELECT c.id, c.seq, c.video_id, c.user_id, c.content, c.created_at,
		       a.id AS "author.id", a.name AS "author.name", a.image AS "author.image"
		FROM comments c
		JOIN accounts a ON a.id = c.user_id
		WHERE c.video_id = $1
		ORDER BY c.created_at DESC, c.seq DESC
	`
	comments := []model.Comment{}
	if err := r.db.SelectContext(ctx, &comments, query, videoID); err != nil {
		return nil, errors.Wrap(err, "list comments")
	}
	return comments, nil
}

func (r *commentRepository) CountByVideos(ctx context.Context, videoIDs []string) (map[string]int, error) {
	return countByVideo(ctx, r.db, "comments", videoIDs)
}
