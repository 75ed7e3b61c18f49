// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"reposteria/internal/catalog"
	"reposteria/internal/models"
)

// API serves the public JSON endpoints the live catalog clients use.
type API struct {
	categories CategorySource
	products   catalog.Searcher
}

// NewAPI creates the public JSON API handler group.
func NewAPI(categories CategorySource, products catalog.Searcher) *API {
	return &API{categories: categories, products: products}
}

// SearchResponse is the body of GET /api/products/search.
type SearchResponse struct {
	State        catalog.ViewState `json:"state"`
	CountText    string            `json:"count_text,omitempty"`
	CategoryName string            `json:"category_name,omitempty"`
	Products     []models.Product  `json:"products"`
	QueryString  string            `json:"query_string"`
}

// Categories returns every category with its product count.
func (a *API) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := a.categories.List(r.Context())
	if err != nil {
		slog.Error("list categories failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not list categories")
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}

// SearchProducts accepts the catalog URL parameters (q, category, mode,
// price, inStock), applies the same fail-safe parsing as the catalog page
// and returns the selected view. An inactive filter returns the browse
// state without searching. Unlike the page, a failed search is reported as
// 502 so clients can tell it from a genuine empty result.
func (a *API) SearchProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	categories, err := a.categories.List(ctx)
	if err != nil {
		slog.Error("list categories failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not list categories")
		return
	}

	state := catalog.NewFilters(catalog.InitialFiltersFromValues(r.URL.Query()), categories).Snapshot()

	var products []models.Product
	if state.IsActive() {
		products, err = a.products.SearchProducts(ctx, state.Criteria())
		if err != nil {
			slog.Warn("product search failed", "error", err, "query", state.QueryString())
			writeError(w, http.StatusBadGateway, "search failed")
			return
		}
	}

	view := catalog.SelectView(state, false, products, categories)
	writeJSON(w, http.StatusOK, SearchResponse{
		State:        view.State,
		CountText:    view.CountText,
		CategoryName: view.CategoryName,
		Products:     view.Products,
		QueryString:  view.QueryString,
	})
}
