package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	syncKeyPrefix = "account:synced:"
	// DefaultSyncTTL bounds how stale a profile name or avatar can get.
	DefaultSyncTTL = 10 * time.Minute
)

// SyncMarker records which accounts had their identity claims written recently,
// so authenticated requests do not upsert the account row every time.
type SyncMarker struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewSyncMarker(rdb redis.Cmdable, ttl time.Duration) *SyncMarker {
	if ttl <= 0 {
		ttl = DefaultSyncTTL
	}
	return &SyncMarker{rdb: rdb, ttl: ttl}
}

func syncKey(accountID string) string {
	return syncKeyPrefix + accountID
}

// Synced reports whether the account row was written within the TTL.
func (m *SyncMarker) Synced(ctx context.Context, accountID string) (bool, error) {
	n, err := m.rdb.Exists(ctx, syncKey(accountID)).Result()
	if err != nil {
		return false, fmt.Errorf("check sync marker: %w", err)
	}
	return n > 0, nil
}

// MarkSynced must only be called once the account row is committed.
func (m *SyncMarker) MarkSynced(ctx context.Context, accountID string) error {
	if err := m.rdb.Set(ctx, syncKey(accountID), 1, m.ttl).Err(); err != nil {
		return fmt.Errorf("set sync marker: %w", err)
	}
	return nil
}
