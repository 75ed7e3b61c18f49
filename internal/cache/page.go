// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// page.go provides a Valkey-backed cache of rendered storefront pages.
// The homepage, product detail pages, and recipe pages are stored as
// HTML so repeat visits skip the database and template execution. The
// filtered catalog page is never cached: its output depends on the query.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// pageKeyPrefix is the Valkey key prefix for cached pages.
	pageKeyPrefix = "page:"

	// DefaultPageTTL is how long a rendered page stays cached.
	DefaultPageTTL = 5 * time.Minute
)

// PageCache manages full-page HTML caching in Valkey. A nil *PageCache is
// valid and caches nothing, so the storefront runs without Valkey.
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPageCache creates a new page cache backed by the given Valkey client.
func NewPageCache(client *redis.Client, ttl time.Duration) *PageCache {
	if ttl == 0 {
		ttl = DefaultPageTTL
	}
	return &PageCache{client: client, ttl: ttl}
}

// Get retrieves cached HTML for a page key.
func (pc *PageCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if pc == nil {
		return nil, false
	}
	val, err := pc.client.Get(ctx, pageKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("page cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("page cache hit", "key", key)
	return val, true
}

// Set stores rendered HTML for a page key with the configured TTL.
func (pc *PageCache) Set(ctx context.Context, key string, html []byte) {
	if pc == nil {
		return
	}
	if err := pc.client.Set(ctx, pageKeyPrefix+key, html, pc.ttl).Err(); err != nil {
		slog.Warn("page cache set error", "key", key, "error", err)
	}
}

// Invalidate removes the given page keys.
func (pc *PageCache) Invalidate(ctx context.Context, keys ...string) {
	if pc == nil || len(keys) == 0 {
		return
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = pageKeyPrefix + k
	}
	if err := pc.client.Del(ctx, full...).Err(); err != nil {
		slog.Warn("page cache invalidate error", "keys", keys, "error", err)
		return
	}
	slog.Debug("page cache invalidated", "keys", keys)
}

// InvalidateHomepage removes the cached homepage.
func (pc *PageCache) InvalidateHomepage(ctx context.Context) {
	pc.Invalidate(ctx, HomepageKey())
}

// InvalidateAll removes all cached pages by scanning for the prefix.
// Used when a category changes, since any product page shows its name.
func (pc *PageCache) InvalidateAll(ctx context.Context) {
	if pc == nil {
		return
	}
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := pc.client.Scan(ctx, cursor, pageKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("page cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := pc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("page cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("page cache fully cleared", "deleted", deleted)
	}
}

// HomepageKey returns the cache key for the homepage.
func HomepageKey() string { return "_home" }

// ProductKey returns the cache key for a product detail page.
func ProductKey(slug string) string { return "producto:" + slug }

// RecipeKey returns the cache key for a recipe page.
func RecipeKey(slug string) string { return "receta:" + slug }

// RecipeIndexKey returns the cache key for the recipe list.
func RecipeIndexKey() string { return "_recetas" }
