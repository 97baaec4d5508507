// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// page.go provides a Valkey-backed cache of rendered public pages.
// A cached page is served until its TTL lapses or it is revalidated,
// which bounds how stale content may be after an edit in the CMS.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// pageKeyPrefix is the Valkey key prefix for cached pages.
	pageKeyPrefix = "page:"

	// DefaultPageTTL is the revalidation window for rendered pages.
	DefaultPageTTL = 60 * time.Second

	// ContactPageTTL is the longer window for the mostly static contact page.
	ContactPageTTL = time.Hour
)

// PageCache manages full-page HTML caching in Valkey. A nil *PageCache
// is valid and caches nothing, so callers need not check whether Valkey
// is configured.
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPageCache creates a new page cache backed by the given Valkey client.
// It returns nil when client is nil.
func NewPageCache(client *redis.Client, ttl time.Duration) *PageCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = DefaultPageTTL
	}
	return &PageCache{client: client, ttl: ttl}
}

// TTL returns the default time a page stays cached.
func (pc *PageCache) TTL() time.Duration {
	if pc == nil {
		return 0
	}
	return pc.ttl
}

// Key normalizes a request path into a cache key: "/menu/" and "/menu"
// share an entry, and the root path is "/".
func Key(path string) string {
	path = strings.TrimRight(path, "/")
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

// Get retrieves cached HTML for a path.
func (pc *PageCache) Get(ctx context.Context, path string) ([]byte, bool) {
	if pc == nil {
		return nil, false
	}
	key := Key(path)
	val, err := pc.client.Get(ctx, pageKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("page cache get error", "path", key, "error", err)
		return nil, false
	}
	slog.Debug("page cache hit", "path", key)
	return val, true
}

// Set stores rendered HTML for a path with the default TTL.
func (pc *PageCache) Set(ctx context.Context, path string, html []byte) {
	if pc == nil {
		return
	}
	pc.SetWithTTL(ctx, path, html, pc.ttl)
}

// SetWithTTL stores rendered HTML for a path with an explicit TTL.
func (pc *PageCache) SetWithTTL(ctx context.Context, path string, html []byte, ttl time.Duration) {
	if pc == nil {
		return
	}
	if ttl <= 0 {
		ttl = pc.ttl
	}
	key := Key(path)
	if err := pc.client.Set(ctx, pageKeyPrefix+key, html, ttl).Err(); err != nil {
		slog.Warn("page cache set error", "path", key, "error", err)
	}
}

// Invalidate removes a single page from the cache.
func (pc *PageCache) Invalidate(ctx context.Context, path string) {
	if pc == nil {
		return
	}
	key := Key(path)
	if err := pc.client.Del(ctx, pageKeyPrefix+key).Err(); err != nil {
		slog.Warn("page cache invalidate error", "path", key, "error", err)
		return
	}
	slog.Debug("page cache invalidated", "path", key)
}

// InvalidateAll removes all cached pages by scanning for the prefix.
// It returns the number of entries deleted.
func (pc *PageCache) InvalidateAll(ctx context.Context) int {
	if pc == nil {
		return 0
	}
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := pc.client.Scan(ctx, cursor, pageKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("page cache scan error", "error", err)
			return deleted
		}
		if len(keys) > 0 {
			if err := pc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("page cache bulk delete error", "error", err)
			} else {
				deleted += len(keys)
			}
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("page cache fully cleared", "deleted", deleted)
	}
	return deleted
}
