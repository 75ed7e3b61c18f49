// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// category.go caches the category list with product counts. Every catalog
// page, the browse state, and the terminal client need it, and it only
// changes when an admin edits the catalog.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"reposteria/internal/models"
)

const (
	categoriesKey = "catalog:categories"

	// DefaultCategoryTTL bounds how stale product counts may get.
	DefaultCategoryTTL = 10 * time.Minute
)

// CategoryLoader fetches the category list from the source of truth.
type CategoryLoader func(ctx context.Context) ([]models.Category, error)

// CategoryCache serves the category list from Valkey, falling back to the
// loader on a miss. Concurrent misses share a single load. With a nil
// client every call goes to the loader, still collapsed.
type CategoryCache struct {
	client *redis.Client
	ttl    time.Duration
	load   CategoryLoader
	group  singleflight.Group
}

// NewCategoryCache creates a category cache. client may be nil.
func NewCategoryCache(client *redis.Client, ttl time.Duration, load CategoryLoader) *CategoryCache {
	if ttl == 0 {
		ttl = DefaultCategoryTTL
	}
	return &CategoryCache{client: client, ttl: ttl, load: load}
}

// List returns the cached categories, loading them on a miss.
func (cc *CategoryCache) List(ctx context.Context) ([]models.Category, error) {
	if cats, ok := cc.get(ctx); ok {
		return cats, nil
	}

	v, err, shared := cc.group.Do(categoriesKey, func() (any, error) {
		cats, err := cc.load(ctx)
		if err != nil {
			return nil, err
		}
		cc.set(ctx, cats)
		return cats, nil
	})
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	if shared {
		slog.Debug("category load shared")
	}
	return v.([]models.Category), nil
}

// Invalidate drops the cached list so the next List reloads it.
func (cc *CategoryCache) Invalidate(ctx context.Context) {
	cc.group.Forget(categoriesKey)
	if cc.client == nil {
		return
	}
	if err := cc.client.Del(ctx, categoriesKey).Err(); err != nil {
		slog.Warn("category cache invalidate error", "error", err)
	}
}

func (cc *CategoryCache) get(ctx context.Context) ([]models.Category, bool) {
	if cc.client == nil {
		return nil, false
	}
	raw, err := cc.client.Get(ctx, categoriesKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("category cache get error", "error", err)
		return nil, false
	}
	var cats []models.Category
	if err := json.Unmarshal(raw, &cats); err != nil {
		slog.Warn("category cache decode error", "error", err)
		return nil, false
	}
	return cats, true
}

func (cc *CategoryCache) set(ctx context.Context, cats []models.Category) {
	if cc.client == nil {
		return
	}
	raw, err := json.Marshal(cats)
	if err != nil {
		slog.Warn("category cache encode error", "error", err)
		return
	}
	if err := cc.client.Set(ctx, categoriesKey, raw, cc.ttl).Err(); err != nil {
		slog.Warn("category cache set error", "error", err)
	}
}
