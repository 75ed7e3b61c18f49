// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"reposteria/internal/models"
)

func TestResultCountText(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "1 producto encontrado"},
		{0, "0 productos encontrados"},
		{2, "2 productos encontrados"},
		{37, "37 productos encontrados"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, ResultCountText(tt.n))
	}
}

func TestSelectView(t *testing.T) {
	cats := testCategories()
	idle := FilterState{PriceMode: PriceModeNone}
	active := FilterState{Query: "choc", PriceMode: PriceModeNone}
	some := []models.Product{product("Chocolate amargo")}

	tests := []struct {
		name     string
		state    FilterState
		loading  bool
		products []models.Product
		want     ViewState
	}{
		{name: "idle browses", state: idle, want: ViewBrowse},
		{name: "idle wins over loading", state: idle, loading: true, want: ViewBrowse},
		{name: "idle ignores leftover products", state: idle, products: some, want: ViewBrowse},
		{name: "loading hides results", state: active, loading: true, products: some, want: ViewLoading},
		{name: "no products", state: active, want: ViewEmpty},
		{name: "products", state: active, products: some, want: ViewResults},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := SelectView(tt.state, tt.loading, tt.products, cats)
			require.Equal(t, tt.want, v.State)
			require.NotNil(t, v.Products)
			if tt.want == ViewResults {
				require.Equal(t, tt.products, v.Products)
				require.Equal(t, "1 producto encontrado", v.CountText)
			} else {
				require.Empty(t, v.Products)
				require.Empty(t, v.CountText)
			}
		})
	}
}

func TestSelectViewPreservesOrder(t *testing.T) {
	products := []models.Product{product("Azúcar"), product("Batidor"), product("Cacao")}
	v := SelectView(FilterState{AvailableOnly: true, PriceMode: PriceModeNone}, false, products, nil)
	require.Equal(t, ViewResults, v.State)
	require.Equal(t, "3 productos encontrados", v.CountText)
	for i := range products {
		require.Equal(t, products[i].Name, v.Products[i].Name)
	}
}

func TestViewEmptyMessage(t *testing.T) {
	cats := testCategories()

	tests := []struct {
		name  string
		state FilterState
		want  string
	}{
		{
			name:  "query and category",
			state: FilterState{Query: " choc ", CategoryID: cats[1].ID.String(), PriceMode: PriceModeNone},
			want:  `No encontramos productos para "choc" en Moldes.`,
		},
		{
			name:  "query only",
			state: FilterState{Query: "xyz", PriceMode: PriceModeNone},
			want:  `No encontramos productos para "xyz".`,
		},
		{
			name:  "filters only",
			state: FilterState{PriceMode: PriceModeMax, Price: ptr(1.0)},
			want:  "No encontramos productos.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := SelectView(tt.state, false, nil, cats)
			require.Equal(t, ViewEmpty, v.State)
			require.Equal(t, tt.want, v.EmptyMessage())
		})
	}
}
