// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"io"

	"github.com/google/uuid"

	"reposteria/internal/catalog"
	"reposteria/internal/models"
	"reposteria/internal/store"
)

// The interfaces below are the narrow slices of the stores and caches each
// handler group uses. The concrete types in store, cache and storage
// satisfy them; tests substitute in-memory fakes.

// CategorySource lists categories with product counts (cache.CategoryCache).
type CategorySource interface {
	List(ctx context.Context) ([]models.Category, error)
}

// CategoryInvalidator drops the cached category list (cache.CategoryCache).
type CategoryInvalidator interface {
	Invalidate(ctx context.Context)
}

// ProductReader is the storefront's view of the product store.
type ProductReader interface {
	catalog.Searcher
	ListFeatured(ctx context.Context, limit int) ([]models.Product, error)
	FindBySlug(ctx context.Context, slug string) (*models.Product, error)
}

// RecipeReader serves published recipes.
type RecipeReader interface {
	ListPublished(ctx context.Context) ([]models.Recipe, error)
	FindPublishedBySlug(ctx context.Context, slug string) (*models.Recipe, error)
}

// BannerReader serves the active homepage banners.
type BannerReader interface {
	ListActive(ctx context.Context) ([]models.Banner, error)
}

// BrandReader lists brands.
type BrandReader interface {
	List(ctx context.Context) ([]models.Brand, error)
}

// CategoryRepository is the admin view of the category store.
type CategoryRepository interface {
	ListWithCounts(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	Create(ctx context.Context, c *models.Category) (*models.Category, error)
	Update(ctx context.Context, c *models.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	NextSortOrder(ctx context.Context) (int, error)
}

// ProductRepository is the admin view of the product store.
type ProductRepository interface {
	List(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) (*models.Product, error)
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)
}

// RecipeRepository is the admin view of the recipe store.
type RecipeRepository interface {
	List(ctx context.Context) ([]models.Recipe, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	Create(ctx context.Context, r *models.Recipe) (*models.Recipe, error)
	Update(ctx context.Context, r *models.Recipe) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BannerRepository is the admin view of the banner store.
type BannerRepository interface {
	List(ctx context.Context) ([]models.Banner, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Banner, error)
	Create(ctx context.Context, b *models.Banner) (*models.Banner, error)
	Update(ctx context.Context, b *models.Banner) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BrandRepository is the admin view of the brand store.
type BrandRepository interface {
	List(ctx context.Context) ([]models.Brand, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Brand, error)
	Create(ctx context.Context, b *models.Brand) (*models.Brand, error)
	Update(ctx context.Context, b *models.Brand) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CacheLog records and lists cache invalidations (store.CacheLogStore).
type CacheLog interface {
	Log(ctx context.Context, entityType string, entityID uuid.UUID, action string)
	Recent(ctx context.Context, limit int) ([]store.CacheLogEntry, error)
}

// ImageStore uploads catalog images (storage.Client).
type ImageStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	FileURL(key string) string
}

// ImageVariant is one resized rendition of an uploaded image.
type ImageVariant struct {
	Name        string
	Width       int
	Height      int
	Data        []byte
	ContentType string
}

// ImageResizer produces display variants of an uploaded image.
type ImageResizer interface {
	Variants(original []byte) ([]ImageVariant, error)
}
