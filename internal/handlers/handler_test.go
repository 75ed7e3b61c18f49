// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides in-memory fakes of the stores and caches so the
// handlers can be exercised with httptest without PostgreSQL or Valkey.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"reposteria/internal/catalog"
	"reposteria/internal/models"
	"reposteria/internal/render"
	"reposteria/internal/store"
)

var errBoom = errors.New("boom")

// memRepo is a goroutine-safe in-memory table keyed by id, in insertion order.
type memRepo[T any] struct {
	mu    sync.Mutex
	order []uuid.UUID
	items map[uuid.UUID]T
	idOf  func(*T) *uuid.UUID

	// err, when set, is returned by every method.
	err error
	// writeErr, when set, is returned by Create, Update and Delete.
	writeErr error
}

func newMemRepo[T any](idOf func(*T) *uuid.UUID) *memRepo[T] {
	return &memRepo[T]{items: make(map[uuid.UUID]T), idOf: idOf}
}

func (m *memRepo[T]) add(v T) T {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.idOf(&v)
	if *id == uuid.Nil {
		*id = uuid.New()
	}
	m.order = append(m.order, *id)
	m.items[*id] = v
	return v
}

func (m *memRepo[T]) all() []T {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]T, 0, len(m.order))
	for _, id := range m.order {
		if v, ok := m.items[id]; ok {
			out = append(out, v)
		}
	}
	return out
}

func (m *memRepo[T]) get(id uuid.UUID) (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[id]
	return v, ok
}

func (m *memRepo[T]) List(_ context.Context) ([]T, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.all(), nil
}

func (m *memRepo[T]) FindByID(_ context.Context, id uuid.UUID) (*T, error) {
	if m.err != nil {
		return nil, m.err
	}
	v, ok := m.get(id)
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (m *memRepo[T]) Create(_ context.Context, v *T) (*T, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.writeErr != nil {
		return nil, m.writeErr
	}
	*m.idOf(v) = uuid.Nil
	created := m.add(*v)
	return &created, nil
}

func (m *memRepo[T]) Update(_ context.Context, v *T) error {
	if m.err != nil {
		return m.err
	}
	if m.writeErr != nil {
		return m.writeErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[*m.idOf(v)] = *v
	return nil
}

func (m *memRepo[T]) Delete(_ context.Context, id uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	if m.writeErr != nil {
		return m.writeErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

// --- Categories ---

type fakeCategories struct {
	*memRepo[models.Category]
	invalidations int
}

func newFakeCategories(items ...models.Category) *fakeCategories {
	f := &fakeCategories{memRepo: newMemRepo(func(c *models.Category) *uuid.UUID { return &c.ID })}
	for _, c := range items {
		f.add(c)
	}
	return f
}

func (f *fakeCategories) ListWithCounts(ctx context.Context) ([]models.Category, error) {
	return f.List(ctx)
}

func (f *fakeCategories) NextSortOrder(_ context.Context) (int, error) {
	next := 0
	for _, c := range f.all() {
		if c.SortOrder >= next {
			next = c.SortOrder + 1
		}
	}
	return next, nil
}

func (f *fakeCategories) Invalidate(_ context.Context) {
	f.mu.Lock()
	f.invalidations++
	f.mu.Unlock()
}

// --- Products ---

type fakeProducts struct {
	*memRepo[models.Product]

	searchMu sync.Mutex
	searches []catalog.Criteria
	// searchErr, when set, fails SearchProducts.
	searchErr error
}

func newFakeProducts(items ...models.Product) *fakeProducts {
	f := &fakeProducts{memRepo: newMemRepo(func(p *models.Product) *uuid.UUID { return &p.ID })}
	for _, p := range items {
		f.add(p)
	}
	return f
}

// SearchProducts filters the in-memory products the way the SQL search does.
func (f *fakeProducts) SearchProducts(_ context.Context, c catalog.Criteria) ([]models.Product, error) {
	f.searchMu.Lock()
	f.searches = append(f.searches, c)
	f.searchMu.Unlock()
	if f.searchErr != nil {
		return nil, f.searchErr
	}

	out := []models.Product{}
	for _, p := range f.all() {
		if c.Query != nil && !strings.Contains(strings.ToLower(p.Name+" "+p.Description), strings.ToLower(*c.Query)) {
			continue
		}
		if c.CategoryID != nil && p.CategoryID.String() != *c.CategoryID {
			continue
		}
		if c.PriceMin != nil && p.Price < *c.PriceMin {
			continue
		}
		if c.PriceMax != nil && p.Price > *c.PriceMax {
			continue
		}
		if c.AvailableOnly && !p.Available {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeProducts) searchCalls() []catalog.Criteria {
	f.searchMu.Lock()
	defer f.searchMu.Unlock()
	return append([]catalog.Criteria(nil), f.searches...)
}

func (f *fakeProducts) ListFeatured(_ context.Context, limit int) ([]models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Product
	for _, p := range f.all() {
		if p.Featured && p.Available && len(out) < limit {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProducts) FindBySlug(_ context.Context, slug string) (*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.all() {
		if p.Slug == slug {
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakeProducts) SlugExists(_ context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	for _, p := range f.all() {
		if p.Slug == slug && (excludeID == nil || p.ID != *excludeID) {
			return true, nil
		}
	}
	return false, nil
}

// --- Recipes, banners, brands ---

type fakeRecipes struct{ *memRepo[models.Recipe] }

func newFakeRecipes(items ...models.Recipe) *fakeRecipes {
	f := &fakeRecipes{newMemRepo(func(r *models.Recipe) *uuid.UUID { return &r.ID })}
	for _, r := range items {
		f.add(r)
	}
	return f
}

func (f *fakeRecipes) ListPublished(_ context.Context) ([]models.Recipe, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Recipe
	for _, r := range f.all() {
		if r.Published {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRecipes) FindPublishedBySlug(_ context.Context, slug string) (*models.Recipe, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, r := range f.all() {
		if r.Slug == slug && r.Published {
			return &r, nil
		}
	}
	return nil, nil
}

type fakeBanners struct{ *memRepo[models.Banner] }

func newFakeBanners(items ...models.Banner) *fakeBanners {
	f := &fakeBanners{newMemRepo(func(b *models.Banner) *uuid.UUID { return &b.ID })}
	for _, b := range items {
		f.add(b)
	}
	return f
}

func (f *fakeBanners) ListActive(_ context.Context) ([]models.Banner, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Banner
	for _, b := range f.all() {
		if b.Active {
			out = append(out, b)
		}
	}
	return out, nil
}

func newFakeBrands(items ...models.Brand) *memRepo[models.Brand] {
	f := newMemRepo(func(b *models.Brand) *uuid.UUID { return &b.ID })
	for _, b := range items {
		f.add(b)
	}
	return f
}

// --- Cache log and images ---

type fakeCacheLog struct {
	mu      sync.Mutex
	entries []store.CacheLogEntry
}

func (f *fakeCacheLog) Log(_ context.Context, entityType string, entityID uuid.UUID, action string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, store.CacheLogEntry{
		ID:         int64(len(f.entries) + 1),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
	})
}

func (f *fakeCacheLog) Recent(_ context.Context, limit int) ([]store.CacheLogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]store.CacheLogEntry, 0, limit)
	for i := len(f.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.entries[i])
	}
	return out, nil
}

func (f *fakeCacheLog) actions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, e := range f.entries {
		out = append(out, e.EntityType+":"+e.Action)
	}
	return out
}

type fakeImages struct {
	mu      sync.Mutex
	uploads map[string][]byte
	err     error
}

func (f *fakeImages) Upload(_ context.Context, key, _ string, body io.Reader, _ int64) error {
	if f.err != nil {
		return f.err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploads == nil {
		f.uploads = make(map[string][]byte)
	}
	f.uploads[key] = data
	return nil
}

func (f *fakeImages) FileURL(key string) string {
	return "https://cdn.example.com/" + key
}

// --- Fixtures ---

var (
	chocolatesID = uuid.MustParse("6f1c1f36-8f0b-4d7e-9a51-1b0f8e7d2a10")
	moldesID     = uuid.MustParse("0b7e9f62-2c44-4f55-8d0e-7a6e0c3b9d21")
)

const testWhatsApp = "+54 9 11 5555-0000"

func fixtureCategories() []models.Category {
	return []models.Category{
		{ID: chocolatesID, Name: "Chocolates", Slug: "chocolates", SortOrder: 0, ProductCount: 2},
		{ID: moldesID, Name: "Moldes", Slug: "moldes", SortOrder: 1, ProductCount: 1},
	}
}

func fixtureProducts() []models.Product {
	return []models.Product{
		{Name: "Chocolate semiamargo", Slug: "chocolate-semiamargo", Price: 9800, Available: true, CategoryID: chocolatesID, CategoryName: "Chocolates", Featured: true},
		{Name: "Chocolate blanco", Slug: "chocolate-blanco", Price: 7500, Available: false, CategoryID: chocolatesID, CategoryName: "Chocolates"},
		{Name: "Molde savarin", Slug: "molde-savarin", Price: 4500, Available: true, CategoryID: moldesID, CategoryName: "Moldes"},
	}
}

// env bundles the handler groups wired to fresh fakes.
type env struct {
	categories *fakeCategories
	products   *fakeProducts
	recipes    *fakeRecipes
	banners    *fakeBanners
	brands     *memRepo[models.Brand]
	cacheLog   *fakeCacheLog
	images     *fakeImages

	public *Public
	api    *API
	admin  *Admin
}

func newEnv(t *testing.T) *env {
	t.Helper()

	renderer, err := render.New(true, render.Site{Name: "Dulce Insumo", WhatsAppNumber: testWhatsApp})
	require.NoError(t, err)

	e := &env{
		categories: newFakeCategories(fixtureCategories()...),
		products:   newFakeProducts(fixtureProducts()...),
		recipes: newFakeRecipes(
			models.Recipe{Title: "Brownie", Slug: "brownie", Ingredients: "- 200 g chocolate", Steps: "1. Hornear", Published: true},
			models.Recipe{Title: "Borrador", Slug: "borrador"},
		),
		banners:  newFakeBanners(models.Banner{Title: "Llegó el cacao", ImageURL: "https://cdn.example.com/b.jpg", Active: true}),
		brands:   newFakeBrands(models.Brand{Name: "Fenix", Slug: "fenix"}),
		cacheLog: &fakeCacheLog{},
		images:   &fakeImages{},
	}
	e.public = NewPublic(renderer, e.categories, e.products, e.recipes, e.banners, e.brands, nil, testWhatsApp, 300*time.Millisecond)
	e.api = NewAPI(e.categories, e.products)
	e.admin = NewAdmin(e.categories, e.products, e.recipes, e.banners, e.brands, e.images, nil, e.categories, e.cacheLog)
	return e
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// jsonRequest builds a request with a JSON body.
func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if s, ok := body.(string); ok {
		buf.WriteString(s)
	} else {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// decode unmarshals a recorded JSON response.
func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), "body: %s", rr.Body.String())
	return v
}
