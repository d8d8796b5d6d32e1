package cache

import (
	"bookmarks_service/internal/models"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const listKeyPrefix = "bookmarks:"

// ListCache keeps per-owner bookmark list snapshots in Redis. Entries expire
// after the configured TTL; a missing entry means the caller must go to the
// store. The store stays the source of truth, last write wins on populate.
type ListCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewListCache(rdb *redis.Client, ttl time.Duration) *ListCache {
	return &ListCache{
		rdb: rdb,
		ttl: ttl,
	}
}

// Get returns the cached list for the owner. The second result reports
// whether a live entry was found.
func (c *ListCache) Get(ctx context.Context, ownerID int64) ([]models.Bookmark, bool, error) {
	const op = "cache.Get"

	data, err := c.rdb.Get(ctx, listKey(ownerID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	var bookmarks []models.Bookmark
	if err := json.Unmarshal(data, &bookmarks); err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	return bookmarks, true, nil
}

func (c *ListCache) Set(ctx context.Context, ownerID int64, bookmarks []models.Bookmark) error {
	const op = "cache.Set"

	data, err := json.Marshal(bookmarks)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := c.rdb.Set(ctx, listKey(ownerID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Invalidate evicts the owner's entry so the next read recomputes from the
// store. Called after every bookmark mutation.
func (c *ListCache) Invalidate(ctx context.Context, ownerID int64) error {
	const op = "cache.Invalidate"

	if err := c.rdb.Del(ctx, listKey(ownerID)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func listKey(ownerID int64) string {
	return listKeyPrefix + strconv.FormatInt(ownerID, 10)
}
