// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the storefront. Handlers
// are grouped by concern (public pages, public JSON API, admin JSON API)
// and receive their dependencies through the handler struct.
package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"reposteria/internal/cache"
	"reposteria/internal/models"
	"reposteria/internal/storage"
)

// uploadKinds are the accepted values of the upload "kind" field. Each
// becomes the top-level folder of the object key.
var uploadKinds = map[string]bool{
	"products":   true,
	"categories": true,
	"banners":    true,
	"brands":     true,
	"recipes":    true,
}

// Admin groups the admin JSON API handlers and their dependencies. Every
// write invalidates the cached pages it affects and records the
// invalidation in the cache log.
type Admin struct {
	categories    CategoryRepository
	products      ProductRepository
	recipes       RecipeRepository
	banners       BannerRepository
	brands        BrandRepository
	images        ImageStore
	resizer       ImageResizer
	pageCache     *cache.PageCache
	categoryCache CategoryInvalidator
	cacheLog      CacheLog
}

// NewAdmin creates a new Admin handler group. images may be nil when
// object storage is not configured; uploads then answer 503.
func NewAdmin(categories CategoryRepository, products ProductRepository, recipes RecipeRepository, banners BannerRepository, brands BrandRepository, images ImageStore, pageCache *cache.PageCache, categoryCache CategoryInvalidator, cacheLog CacheLog) *Admin {
	return &Admin{
		categories:    categories,
		products:      products,
		recipes:       recipes,
		banners:       banners,
		brands:        brands,
		images:        images,
		pageCache:     pageCache,
		categoryCache: categoryCache,
		cacheLog:      cacheLog,
	}
}

// WithResizer makes uploads also store the resized variants produced by r.
func (a *Admin) WithResizer(r ImageResizer) *Admin {
	a.resizer = r
	return a
}

// --- Categories ---

type categoryInput struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	ImageURL    *string `json:"image_url"`
	SortOrder   *int    `json:"sort_order"`
}

func (in categoryInput) apply(c *models.Category) string {
	c.Name = strings.TrimSpace(in.Name)
	c.Slug = slugOrName(in.Slug, in.Name)
	c.Description = strings.TrimSpace(in.Description)
	c.ImageURL = optional(in.ImageURL)
	if in.SortOrder != nil {
		c.SortOrder = *in.SortOrder
	}
	return firstError(
		validateName("Name", c.Name),
		validateSlug(c.Slug),
		validateText("Description", c.Description, maxDescriptionLen),
		validateURL("Image URL", c.ImageURL),
	)
}

// CategoriesList returns all categories with product counts.
func (a *Admin) CategoriesList(w http.ResponseWriter, r *http.Request) {
	items, err := a.categories.ListWithCounts(r.Context())
	if err != nil {
		a.writeStoreError(w, "list categories", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(items))
}

// CategoryGet returns one category.
func (a *Admin) CategoryGet(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	c, err := a.categories.FindByID(r.Context(), id)
	if err != nil {
		a.writeStoreError(w, "find category", err)
		return
	}
	if c == nil {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// CategoryCreate creates a category. Without sort_order it is appended last.
func (a *Admin) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var in categoryInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	c := &models.Category{}
	if msg := in.apply(c); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if in.SortOrder == nil {
		next, err := a.categories.NextSortOrder(ctx)
		if err != nil {
			a.writeStoreError(w, "next category sort order", err)
			return
		}
		c.SortOrder = next
	}

	created, err := a.categories.Create(ctx, c)
	if err != nil {
		a.writeStoreError(w, "create category", err)
		return
	}
	a.invalidateCategories(ctx, created.ID, "create")
	writeJSON(w, http.StatusCreated, created)
}

// CategoryUpdate replaces a category's fields.
func (a *Admin) CategoryUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	c, err := a.categories.FindByID(ctx, id)
	if err != nil {
		a.writeStoreError(w, "find category", err)
		return
	}
	if c == nil {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}

	var in categoryInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := in.apply(c); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if err := a.categories.Update(ctx, c); err != nil {
		a.writeStoreError(w, "update category", err)
		return
	}
	a.invalidateCategories(ctx, c.ID, "update")
	writeJSON(w, http.StatusOK, c)
}

// CategoryDelete deletes a category. Categories that still have products
// are refused with 409.
func (a *Admin) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	c, err := a.categories.FindByID(ctx, id)
	if err != nil {
		a.writeStoreError(w, "find category", err)
		return
	}
	if c == nil {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}
	if err := a.categories.Delete(ctx, id); err != nil {
		a.writeStoreError(w, "delete category", err)
		return
	}
	a.invalidateCategories(ctx, id, "delete")
	w.WriteHeader(http.StatusNoContent)
}

// --- Products ---

type productInput struct {
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Available   *bool    `json:"available"`
	ImageURL    *string  `json:"image_url"`
	CategoryID  string   `json:"category_id"`
	BrandID     *string  `json:"brand_id"`
	Featured    bool     `json:"featured"`
}

func (in productInput) apply(p *models.Product) string {
	p.Name = strings.TrimSpace(in.Name)
	p.Slug = slugOrName(in.Slug, in.Name)
	p.Description = strings.TrimSpace(in.Description)
	p.ImageURL = optional(in.ImageURL)
	p.Featured = in.Featured
	if in.Available != nil {
		p.Available = *in.Available
	}
	if in.Price == nil {
		return "Price is required."
	}
	p.Price = *in.Price

	categoryID, err := uuid.Parse(strings.TrimSpace(in.CategoryID))
	if err != nil {
		return "Category is required."
	}
	p.CategoryID = categoryID

	p.BrandID = nil
	if b := optional(in.BrandID); b != nil {
		brandID, err := uuid.Parse(*b)
		if err != nil {
			return "Brand id is invalid."
		}
		p.BrandID = &brandID
	}

	if msg := firstError(
		validateName("Name", p.Name),
		validateSlug(p.Slug),
		validatePrice(p.Price),
		validateText("Description", p.Description, maxDescriptionLen),
		validateURL("Image URL", p.ImageURL),
	); msg != "" {
		return msg
	}
	if err := p.Validate(); err != nil {
		return err.Error()
	}
	return ""
}

// ProductsList returns every product, available or not.
func (a *Admin) ProductsList(w http.ResponseWriter, r *http.Request) {
	items, err := a.products.List(r.Context())
	if err != nil {
		a.writeStoreError(w, "list products", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(items))
}

// ProductGet returns one product.
func (a *Admin) ProductGet(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	p, err := a.products.FindByID(r.Context(), id)
	if err != nil {
		a.writeStoreError(w, "find product", err)
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// ProductCreate creates a product. New products are available unless the
// body says otherwise.
func (a *Admin) ProductCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var in productInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p := &models.Product{Available: true}
	if msg := in.apply(p); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if taken, err := a.products.SlugExists(ctx, p.Slug, nil); err != nil {
		a.writeStoreError(w, "check product slug", err)
		return
	} else if taken {
		writeError(w, http.StatusConflict, "slug already in use")
		return
	}

	created, err := a.products.Create(ctx, p)
	if err != nil {
		a.writeStoreError(w, "create product", err)
		return
	}
	a.invalidateProduct(ctx, created.ID, "create", created.Slug)
	writeJSON(w, http.StatusCreated, created)
}

// ProductUpdate replaces a product's fields.
func (a *Admin) ProductUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	p, err := a.products.FindByID(ctx, id)
	if err != nil {
		a.writeStoreError(w, "find product", err)
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	oldSlug := p.Slug

	var in productInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := in.apply(p); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if taken, err := a.products.SlugExists(ctx, p.Slug, &p.ID); err != nil {
		a.writeStoreError(w, "check product slug", err)
		return
	} else if taken {
		writeError(w, http.StatusConflict, "slug already in use")
		return
	}

	if err := a.products.Update(ctx, p); err != nil {
		a.writeStoreError(w, "update product", err)
		return
	}
	a.invalidateProduct(ctx, p.ID, "update", oldSlug, p.Slug)
	writeJSON(w, http.StatusOK, p)
}

// ProductDelete deletes a product.
func (a *Admin) ProductDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	p, err := a.products.FindByID(ctx, id)
	if err != nil {
		a.writeStoreError(w, "find product", err)
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	if err := a.products.Delete(ctx, id); err != nil {
		a.writeStoreError(w, "delete product", err)
		return
	}
	a.invalidateProduct(ctx, id, "delete", p.Slug)
	w.WriteHeader(http.StatusNoContent)
}

// --- Uploads ---

// Upload stores a multipart image ("file" field) in object storage under
// the folder named by the "kind" field and returns its public URL.
func (a *Admin) Upload(w http.ResponseWriter, r *http.Request) {
	if a.images == nil {
		writeError(w, http.StatusServiceUnavailable, "object storage is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, storage.MaxImageSize+1<<20)
	if err := r.ParseMultipartForm(storage.MaxImageSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "image too large (max 8 MB)")
			return
		}
		writeError(w, http.StatusBadRequest, "multipart form with a file field is required")
		return
	}
	defer r.MultipartForm.RemoveAll()

	kind := r.FormValue("kind")
	if !uploadKinds[kind] {
		writeError(w, http.StatusBadRequest, "kind must be one of products, categories, banners, brands, recipes")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	if header.Size > storage.MaxImageSize {
		writeError(w, http.StatusRequestEntityTooLarge, "image too large (max 8 MB)")
		return
	}
	data, err := io.ReadAll(io.LimitReader(file, storage.MaxImageSize+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read file")
		return
	}
	if len(data) > storage.MaxImageSize {
		writeError(w, http.StatusRequestEntityTooLarge, "image too large (max 8 MB)")
		return
	}

	// Sniff the bytes instead of trusting the client's Content-Type.
	contentType := http.DetectContentType(data)
	ext, ok := storage.ImageExtension(contentType)
	if !ok {
		writeError(w, http.StatusUnsupportedMediaType, "only JPEG, PNG, WebP and GIF images are accepted")
		return
	}

	key := storage.NewImageKey(kind, ext)
	if err := a.images.Upload(r.Context(), key, contentType, bytes.NewReader(data), int64(len(data))); err != nil {
		slog.Error("s3 upload failed", "error", err, "key", key)
		writeError(w, http.StatusBadGateway, "upload failed")
		return
	}

	slog.Info("image uploaded", "key", key, "size", len(data), "type", contentType)
	resp := map[string]any{
		"key":          key,
		"url":          a.images.FileURL(key),
		"content_type": contentType,
		"size":         len(data),
	}
	if variants := a.uploadVariants(r.Context(), key, data); len(variants) > 0 {
		resp["variants"] = variants
	}
	writeJSON(w, http.StatusCreated, resp)
}

// uploadVariants stores the resized renditions next to the original as
// "<key stem>-<name><ext>" and returns their URLs by name. The original
// upload already succeeded, so failures here are only logged.
func (a *Admin) uploadVariants(ctx context.Context, key string, data []byte) map[string]string {
	if a.resizer == nil {
		return nil
	}
	variants, err := a.resizer.Variants(data)
	if err != nil {
		slog.Warn("image variants failed", "error", err, "key", key)
		return nil
	}

	stem := strings.TrimSuffix(key, path.Ext(key))
	urls := make(map[string]string, len(variants))
	for _, v := range variants {
		ext, ok := storage.ImageExtension(v.ContentType)
		if !ok {
			continue
		}
		vkey := stem + "-" + v.Name + ext
		if err := a.images.Upload(ctx, vkey, v.ContentType, bytes.NewReader(v.Data), int64(len(v.Data))); err != nil {
			slog.Warn("image variant upload failed", "error", err, "key", vkey)
			continue
		}
		urls[v.Name] = a.images.FileURL(vkey)
	}
	return urls
}

// --- Cache log ---

// CacheLogList returns the most recent cache invalidations (?limit=, max 200).
func (a *Admin) CacheLogList(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, 200)
	}
	entries, err := a.cacheLog.Recent(r.Context(), limit)
	if err != nil {
		a.writeStoreError(w, "list cache log", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(entries))
}

// --- Cache invalidation helpers ---

// invalidateCategories drops the category list and every cached page,
// since product pages and the homepage show category names.
func (a *Admin) invalidateCategories(ctx context.Context, id uuid.UUID, action string) {
	if a.categoryCache != nil {
		a.categoryCache.Invalidate(ctx)
	}
	a.pageCache.InvalidateAll(ctx)
	a.cacheLog.Log(ctx, "category", id, action)
}

// invalidateProduct drops the product's pages (old and new slug), the
// homepage and the category counts.
func (a *Admin) invalidateProduct(ctx context.Context, id uuid.UUID, action string, slugs ...string) {
	keys := []string{cache.HomepageKey()}
	for _, s := range slugs {
		keys = append(keys, cache.ProductKey(s))
	}
	a.pageCache.Invalidate(ctx, keys...)
	if a.categoryCache != nil {
		a.categoryCache.Invalidate(ctx)
	}
	a.cacheLog.Log(ctx, "product", id, action)
}

// invalidateRecipe drops the recipe's pages and the recipe index.
func (a *Admin) invalidateRecipe(ctx context.Context, id uuid.UUID, action string, slugs ...string) {
	keys := []string{cache.RecipeIndexKey()}
	for _, s := range slugs {
		keys = append(keys, cache.RecipeKey(s))
	}
	a.pageCache.Invalidate(ctx, keys...)
	a.cacheLog.Log(ctx, "recipe", id, action)
}

// invalidateHomepage drops the homepage, which is the only page showing
// banners and brands.
func (a *Admin) invalidateHomepage(ctx context.Context, entityType string, id uuid.UUID, action string) {
	a.pageCache.InvalidateHomepage(ctx)
	a.cacheLog.Log(ctx, entityType, id, action)
}

// writeStoreError maps store errors to HTTP statuses. Unknown errors are
// logged and reported as 500.
func (a *Admin) writeStoreError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, models.ErrDuplicate):
		writeError(w, http.StatusConflict, "slug already in use")
	case errors.Is(err, models.ErrInUse):
		writeError(w, http.StatusConflict, "still in use")
	case errors.Is(err, models.ErrInvalidReference):
		writeError(w, http.StatusBadRequest, "referenced category or brand does not exist")
	default:
		slog.Error(op+" failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// nonNil makes empty lists encode as [] instead of null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
