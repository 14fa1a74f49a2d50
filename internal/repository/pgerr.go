package repository

import (
	"strings"

	"github.com/lib/pq"
	"github.com/pkg/errors"

	"toptop/internal/model"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqCheckViolation      = "23514"
)

// Foreign keys named in schema.sql.
const (
	fkVideoUser      = "videos_user_id_fkey"
	fkLikeUser       = "likes_user_id_fkey"
	fkFollowFollower = "follows_follower_id_fkey"
	fkCommentUser    = "comments_user_id_fkey"
)

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func pqConstraint(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	return ""
}

// foreignKeyError reports a violation of viewerFK as an unregistered viewer.
// Any other foreign key violation becomes otherwise.
func foreignKeyError(err error, viewerFK string, otherwise error) error {
	if pqConstraint(err) == viewerFK {
		return model.ErrViewerNotRegistered
	}
	return otherwise
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching q literally as a substring.
func containsPattern(q string) string {
	return "%" + likeEscaper.Replace(q) + "%"
}
