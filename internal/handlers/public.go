// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"reposteria/internal/cache"
	"reposteria/internal/catalog"
	"reposteria/internal/models"
	"reposteria/internal/render"
	"reposteria/internal/whatsapp"
)

// featuredLimit caps the homepage "Destacados" grid.
const featuredLimit = 8

// Public groups handlers for the storefront pages. Detail pages and the
// homepage go through the L2 Valkey page cache; the catalog page depends
// on its query string and is always rendered fresh.
type Public struct {
	renderer   *render.Renderer
	categories CategorySource
	products   ProductReader
	recipes    RecipeReader
	banners    BannerReader
	brands     BrandReader
	pageCache  *cache.PageCache
	whatsApp   string
	debounce   time.Duration
}

// NewPublic creates a new Public handler group. pageCache may be nil, which
// disables page caching.
func NewPublic(renderer *render.Renderer, categories CategorySource, products ProductReader, recipes RecipeReader, banners BannerReader, brands BrandReader, pageCache *cache.PageCache, whatsAppNumber string, debounce time.Duration) *Public {
	return &Public{
		renderer:   renderer,
		categories: categories,
		products:   products,
		recipes:    recipes,
		banners:    banners,
		brands:     brands,
		pageCache:  pageCache,
		whatsApp:   whatsAppNumber,
		debounce:   debounce,
	}
}

// Homepage renders banners, categories, featured products and brands.
// The four lists load in parallel.
func (p *Public) Homepage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if p.serveCached(w, r, cache.HomepageKey()) {
		return
	}

	var (
		banners    []models.Banner
		categories []models.Category
		featured   []models.Product
		brands     []models.Brand
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { banners, err = p.banners.ListActive(gctx); return })
	g.Go(func() (err error) { categories, err = p.categories.List(gctx); return })
	g.Go(func() (err error) { featured, err = p.products.ListFeatured(gctx, featuredLimit); return })
	g.Go(func() (err error) { brands, err = p.brands.List(gctx); return })
	if err := g.Wait(); err != nil {
		slog.Error("load homepage failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.renderCached(w, r, cache.HomepageKey(), "home", &render.PageData{
		Section: "inicio",
		Data: map[string]any{
			"Banners":    banners,
			"Categories": categories,
			"Featured":   featured,
			"Brands":     brands,
		},
	})
}

// Catalog renders /productos. The query string is the URL mirror of the
// filter state: it is parsed fail-safe, the search runs only when a filter
// is active, and HTMX requests get just the results fragment plus the
// canonical URL to push.
func (p *Public) Catalog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	categories, err := p.categories.List(ctx)
	if err != nil {
		slog.Error("list categories failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	filters := catalog.NewFilters(catalog.InitialFiltersFromValues(r.URL.Query()), categories)
	state := filters.Snapshot()
	view := searchView(ctx, p.products, state, categories)

	if render.IsHTMX(r) {
		w.Header().Set("HX-Push-Url", catalogURL(view.QueryString))
	}

	p.renderer.Page(w, r, "catalog", &render.PageData{
		Title:   "Productos",
		Section: "productos",
		Data: map[string]any{
			"View":       view,
			"RawPrice":   filters.RawPrice(),
			"DebounceMs": p.debounce.Milliseconds(),
		},
	})
}

// searchView runs the search for an active state and selects the render
// state. A failed search degrades to the empty state.
func searchView(ctx context.Context, searcher catalog.Searcher, state catalog.FilterState, categories []models.Category) catalog.View {
	var products []models.Product
	if state.IsActive() {
		var err error
		products, err = searcher.SearchProducts(ctx, state.Criteria())
		if err != nil {
			slog.Warn("product search failed", "error", err, "query", state.QueryString())
			products = nil
		}
	}
	return catalog.SelectView(state, false, products, categories)
}

// catalogURL is the canonical catalog address for a filter query string.
func catalogURL(queryString string) string {
	if queryString == "" {
		return "/productos"
	}
	return "/productos?" + queryString
}

// Product renders a product detail page with a WhatsApp order link.
func (p *Public) Product(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slugParam := chi.URLParam(r, "slug")
	key := cache.ProductKey(slugParam)

	if p.serveCached(w, r, key) {
		return
	}

	product, err := p.products.FindBySlug(ctx, slugParam)
	if err != nil {
		slog.Error("find product by slug failed", "error", err, "slug", slugParam)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if product == nil {
		p.renderer.NotFound(w, r)
		return
	}

	p.renderCached(w, r, key, "product", &render.PageData{
		Title:       product.Name,
		Description: product.Description,
		Section:     "productos",
		Data: map[string]any{
			"Product":  product,
			"OrderURL": whatsapp.OrderLink(p.whatsApp, *product, 1),
		},
	})
}

// Category redirects /categorias/{slug} to the catalog filtered by that
// category, so category pages share the catalog's URL mirror.
func (p *Public) Category(w http.ResponseWriter, r *http.Request) {
	slugParam := chi.URLParam(r, "slug")

	categories, err := p.categories.List(r.Context())
	if err != nil {
		slog.Error("list categories failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	for _, c := range categories {
		if c.Slug == slugParam {
			v := url.Values{catalog.ParamCategory: {c.ID.String()}}
			http.Redirect(w, r, "/productos?"+v.Encode(), http.StatusFound)
			return
		}
	}
	p.renderer.NotFound(w, r)
}

// Recipes renders the published recipe list.
func (p *Public) Recipes(w http.ResponseWriter, r *http.Request) {
	if p.serveCached(w, r, cache.RecipeIndexKey()) {
		return
	}

	recipes, err := p.recipes.ListPublished(r.Context())
	if err != nil {
		slog.Error("list published recipes failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.renderCached(w, r, cache.RecipeIndexKey(), "recipes", &render.PageData{
		Title:   "Recetas",
		Section: "recetas",
		Data:    map[string]any{"Recipes": recipes},
	})
}

// Recipe renders a single published recipe.
func (p *Public) Recipe(w http.ResponseWriter, r *http.Request) {
	slugParam := chi.URLParam(r, "slug")
	key := cache.RecipeKey(slugParam)

	if p.serveCached(w, r, key) {
		return
	}

	rec, err := p.recipes.FindPublishedBySlug(r.Context(), slugParam)
	if err != nil {
		slog.Error("find recipe by slug failed", "error", err, "slug", slugParam)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if rec == nil {
		p.renderer.NotFound(w, r)
		return
	}

	p.renderCached(w, r, key, "recipe", &render.PageData{
		Title:       rec.Title,
		Description: rec.Summary,
		Section:     "recetas",
		Data:        map[string]any{"Recipe": rec},
	})
}

// Contact redirects to the store's WhatsApp chat.
func (p *Public) Contact(w http.ResponseWriter, r *http.Request) {
	link := whatsapp.ContactLink(p.whatsApp, "Hola! Tengo una consulta.")
	if link == "" {
		p.renderer.NotFound(w, r)
		return
	}
	http.Redirect(w, r, link, http.StatusFound)
}

// NotFound renders the storefront 404 page.
func (p *Public) NotFound(w http.ResponseWriter, r *http.Request) {
	p.renderer.NotFound(w, r)
}

// serveCached writes a cached full page. HTMX requests bypass the cache
// since they want a fragment.
func (p *Public) serveCached(w http.ResponseWriter, r *http.Request, key string) bool {
	if render.IsHTMX(r) {
		return false
	}
	cached, ok := p.pageCache.Get(r.Context(), key)
	if !ok {
		return false
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(cached)
	return true
}

// renderCached renders a page, stores full-page output in the L2 cache and
// writes it.
func (p *Public) renderCached(w http.ResponseWriter, r *http.Request, key, name string, data *render.PageData) {
	if render.IsHTMX(r) {
		p.renderer.Page(w, r, name, data)
		return
	}

	rendered, err := p.renderer.Render(name, data)
	if err != nil {
		slog.Error("render page failed", "error", err, "template", name)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	p.pageCache.Set(r.Context(), key, rendered)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(rendered)
}
