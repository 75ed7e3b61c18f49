// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"fmt"
	"strings"

	"reposteria/internal/models"
)

// ViewState is what the result area shows. The states are mutually
// exclusive and are chosen in the order they are declared.
type ViewState string

const (
	// ViewBrowse shows every category as a card; no filter is active.
	ViewBrowse ViewState = "browse"
	// ViewLoading shows a loading indicator instead of stale results.
	ViewLoading ViewState = "loading"
	// ViewEmpty shows a no-results message plus category chips.
	ViewEmpty ViewState = "empty"
	// ViewResults shows the result count and the product grid.
	ViewResults ViewState = "results"
)

// View is everything needed to draw the result area for one moment.
type View struct {
	State      ViewState         `json:"state"`
	Filters    FilterState       `json:"-"`
	Input      string            `json:"-"`
	Categories []models.Category `json:"categories,omitempty"`
	Products   []models.Product  `json:"products"`

	// CategoryName is the selected category's name, when known.
	CategoryName string `json:"category_name,omitempty"`
	CountText    string `json:"count_text,omitempty"`
	QueryString  string `json:"query_string"`
}

// SelectView picks the render state for a filter snapshot. Products are
// kept in the order the searcher returned them.
func SelectView(state FilterState, loading bool, products []models.Product, categories []models.Category) View {
	v := View{
		Filters:     state,
		Input:       state.Query,
		Categories:  categories,
		QueryString: state.QueryString(),
	}
	if c := models.FindCategory(categories, state.CategoryID); c != nil {
		v.CategoryName = c.Name
	}

	switch {
	case !state.IsActive():
		v.State = ViewBrowse
	case loading:
		v.State = ViewLoading
	case len(products) == 0:
		v.State = ViewEmpty
	default:
		v.State = ViewResults
		v.Products = products
		v.CountText = ResultCountText(len(products))
	}
	if v.Products == nil {
		v.Products = []models.Product{}
	}
	return v
}

// ResultCountText returns "1 producto encontrado" or "N productos encontrados".
func ResultCountText(n int) string {
	if n == 1 {
		return "1 producto encontrado"
	}
	return fmt.Sprintf("%d productos encontrados", n)
}

// EmptyMessage echoes the active query and category back to the shopper.
func (v View) EmptyMessage() string {
	var b strings.Builder
	b.WriteString("No encontramos productos")
	if q := strings.TrimSpace(v.Filters.Query); q != "" {
		fmt.Fprintf(&b, " para \"%s\"", q)
	}
	if v.CategoryName != "" {
		fmt.Fprintf(&b, " en %s", v.CategoryName)
	}
	b.WriteString(".")
	return b.String()
}
