package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"toptop/internal/model"
)

type followRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(ctx context.Context, followerID, followingID string) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO follows (follower_id, following_id) VALUES ($1, $2)`, followerID, followingID)
	switch pqCode(err) {
	case "":
	case pqUniqueViolation:
		return model.ErrAlreadyFollowing
	case pqForeignKeyViolation:
		return foreignKeyError(err, fkFollowFollower, model.ErrAccountNotFound)
	case pqCheckViolation:
		return model.ErrCannotFollowSelf
	}
	if err != nil {
		return errors.Wrap(err, "insert follow")
	}
	return nil
}

func (r *followRepository) Delete(ctx context.Context, followerID, followingID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM follows WHERE follower_id = $1 AND following_id = $2`, followerID, followingID)
	if err != nil {
		return errors.Wrap(err, "delete follow")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "get rows affected")
	}
	if rows == 0 {
		return model.ErrNotFollowing
	}
	return nil
}

func (r *followRepository) CheckFollows(ctx context.Context, followerID string, followingIDs []string) (map[string]bool, error) {
	result := make(map[string]bool)
	if len(followingIDs) == 0 {
		return result, nil
	}

	var followed []string
	query := `SELECT following_id FROM follows WHERE follower_id = $1 AND following_id = ANY($2)`
	if err := r.db.SelectContext(ctx, &followed, query, followerID, pq.Array(followingIDs)); err != nil {
		return nil, errors.Wrap(err, "check follows")
	}
	for _, id := range followed {
		result[id] = true
	}
	return result, nil
}

func (r *followRepository) Counts(ctx context.Context, accountID string) (*model.FollowCounts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM follows WHERE following_id = $1) AS followers,
			(SELECT COUNT(*) FROM follows WHERE follower_id = $1) AS following
	`
	var counts model.FollowCounts
	if err := r.db.GetContext(ctx, &counts, query, accountID); err != nil {
		return nil, errors.Wrap(err, "count follows")
	}
	return &counts, nil
}
