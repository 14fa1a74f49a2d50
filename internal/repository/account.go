package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"toptop/internal/model"
)

type accountRepository struct {
	db *sqlx.DB
}

func NewAccountRepository(db *sqlx.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Upsert(ctx context.Context, id, name string, image *string) error {
	query := `
		INSERT INTO accounts (id, name, image)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, image = EXCLUDED.image
	`
	if _, err := r.db.ExecContext(ctx, query, id, name, image); err != nil {
		return errors.Wrap(err, "upsert account")
	}
	return nil
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*model.Account, error) {
	var account model.Account
	err := r.db.GetContext(ctx, &account, `SELECT id, name, image, created_at FROM accounts WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrAccountNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get account")
	}
	return &account, nil
}

func (r *accountRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM accounts WHERE id = $1)`, id)
	if err != nil {
		return false, errors.Wrap(err, "check account existence")
	}
	return exists, nil
}

func (r *accountRepository) GetSummaries(ctx context.Context, ids []string) (map[string]model.AccountSummary, error) {
	result := make(map[string]model.AccountSummary, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var rows []model.AccountSummary
	err := r.db.SelectContext(ctx, &rows, `SELECT id, name, image FROM accounts WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, errors.Wrap(err, "get account summaries")
	}
	for _, row := range rows {
		result[row.ID] = row
	}
	return result, nil
}

func (r *accountRepository) Suggested(ctx context.Context, excludeID *string, limit int) ([]model.AccountListItem, error) {
	query := `
		SELECT a.id, a.name, a.image,
		       (SELECT COUNT(*) FROM follows f WHERE f.following_id = a.id) AS follower_count
		FROM accounts a
		WHERE $1::text IS NULL OR a.id <> $1
		ORDER BY a.created_at DESC, a.id
		LIMIT $2
	`
	items := []model.AccountListItem{}
	if err := r.db.SelectContext(ctx, &items, query, excludeID, limit); err != nil {
		return nil, errors.Wrap(err, "list suggested accounts")
	}
	return items, nil
}

func (r *accountRepository) Search(ctx context.Context, q string, limit int) ([]model.AccountListItem, error) {
	query := `
		SELECT a.id, a.name, a.image,
		       (SELECT COUNT(*) FROM follows f WHERE f.following_id = a.id) AS follower_count
		FROM accounts a
		WHERE a.name ILIKE $1
		ORDER BY a.created_at DESC, a.id
		LIMIT $2
	`
	items := []model.AccountListItem{}
	if err := r.db.SelectContext(ctx, &items, query, containsPattern(q), limit); err != nil {
		return nil, errors.Wrap(err, "search accounts")
	}
	return items, nil
}
