// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog implements the searchable storefront catalog: a filter
// state holder mirrored to URL parameters, a debounced free-text query, a
// remote search executor that discards stale responses, and the selection
// of what the result area should show.
//
// The same filter rules are used by the server-rendered catalog page and by
// the live Catalog session that drives interactive clients.
package catalog

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"reposteria/internal/models"
)

// URL parameter names mirrored from the filter state.
const (
	ParamQuery    = "q"
	ParamCategory = "category"
	ParamMode     = "mode"
	ParamPrice    = "price"
	ParamInStock  = "inStock"
)

// PriceMode selects whether the price value is a lower or an upper bound.
type PriceMode string

const (
	PriceModeNone PriceMode = "none"
	PriceModeMin  PriceMode = "min"
	PriceModeMax  PriceMode = "max"
)

// ParsePriceMode maps a raw mode string to a PriceMode. Anything other than
// "min" or "max" (including "none" and "") yields PriceModeNone and ok=false
// for unknown values, so callers can tell a deliberate "none" from garbage.
func ParsePriceMode(s string) (PriceMode, bool) {
	switch PriceMode(strings.ToLower(strings.TrimSpace(s))) {
	case PriceModeMin:
		return PriceModeMin, true
	case PriceModeMax:
		return PriceModeMax, true
	case PriceModeNone, "":
		return PriceModeNone, true
	default:
		return PriceModeNone, false
	}
}

// FilterState is an immutable snapshot of the four filter dimensions.
// CategoryID is empty when no category is selected. A price bound needs
// both a mode and a price: PriceMode is PriceModeNone whenever Price is nil
// and the other way around.
type FilterState struct {
	Query         string
	CategoryID    string
	PriceMode     PriceMode
	Price         *float64
	AvailableOnly bool
}

// IsActive reports whether any filter dimension differs from its default.
func (s FilterState) IsActive() bool {
	return strings.TrimSpace(s.Query) != "" ||
		s.CategoryID != "" ||
		(s.PriceMode != PriceModeNone && s.PriceMode != "" && s.Price != nil) ||
		s.AvailableOnly
}

// Equal compares two snapshots by value. Queries compare trimmed, since
// surrounding blanks never reach the search.
func (s FilterState) Equal(o FilterState) bool {
	if strings.TrimSpace(s.Query) != strings.TrimSpace(o.Query) || s.CategoryID != o.CategoryID ||
		s.PriceMode != o.PriceMode || s.AvailableOnly != o.AvailableOnly {
		return false
	}
	if (s.Price == nil) != (o.Price == nil) {
		return false
	}
	return s.Price == nil || *s.Price == *o.Price
}

// Criteria is the request shape sent to the Searcher.
type Criteria struct {
	// Query is nil (not "") when the trimmed text is empty.
	Query      *string `json:"query,omitempty"`
	CategoryID *string `json:"categoryId"`
	// PriceMin and PriceMax are mutually exclusive.
	PriceMin      *float64 `json:"priceMin"`
	PriceMax      *float64 `json:"priceMax"`
	AvailableOnly bool     `json:"availableOnly"`
}

// Criteria converts the snapshot into a search request.
func (s FilterState) Criteria() Criteria {
	var c Criteria
	if q := strings.TrimSpace(s.Query); q != "" {
		c.Query = &q
	}
	if s.CategoryID != "" {
		id := s.CategoryID
		c.CategoryID = &id
	}
	if s.Price != nil {
		p := *s.Price
		switch s.PriceMode {
		case PriceModeMin:
			c.PriceMin = &p
		case PriceModeMax:
			c.PriceMax = &p
		}
	}
	c.AvailableOnly = s.AvailableOnly
	return c
}

// Values mirrors the snapshot into URL parameters, omitting every
// parameter that sits at its default so an idle state encodes to nothing.
func (s FilterState) Values() url.Values {
	v := url.Values{}
	if q := strings.TrimSpace(s.Query); q != "" {
		v.Set(ParamQuery, q)
	}
	if s.CategoryID != "" {
		v.Set(ParamCategory, s.CategoryID)
	}
	if (s.PriceMode == PriceModeMin || s.PriceMode == PriceModeMax) && s.Price != nil {
		v.Set(ParamMode, string(s.PriceMode))
		v.Set(ParamPrice, strconv.FormatFloat(*s.Price, 'f', -1, 64))
	}
	if s.AvailableOnly {
		v.Set(ParamInStock, "1")
	}
	return v
}

// QueryString returns the encoded URL parameters without a leading "?".
func (s FilterState) QueryString() string {
	return s.Values().Encode()
}

// InitialFilters seeds a filter holder, typically from a deep link. Values
// are untrusted: anything malformed degrades to "no filter" on that dimension.
type InitialFilters struct {
	Query      string
	CategoryID string
	PriceMode  string
	Price      *float64
	InStock    bool
}

// InitialFiltersFromValues reads the mirrored URL parameters. An
// unparseable price is treated as absent.
func InitialFiltersFromValues(v url.Values) InitialFilters {
	in := InitialFilters{
		Query:      v.Get(ParamQuery),
		CategoryID: strings.TrimSpace(v.Get(ParamCategory)),
		PriceMode:  v.Get(ParamMode),
	}
	if raw := strings.TrimSpace(v.Get(ParamPrice)); raw != "" {
		if p, err := strconv.ParseFloat(raw, 64); err == nil {
			in.Price = &p
		}
	}
	switch strings.ToLower(v.Get(ParamInStock)) {
	case "1", "true", "yes", "on":
		in.InStock = true
	}
	return in
}

// Filters is the mutable holder behind a FilterState. It keeps the raw
// price the user typed even while no price mode is selected, so choosing
// a mode later turns that value into a filter immediately.
type Filters struct {
	query         string
	categoryID    string
	priceMode     PriceMode
	price         *float64
	availableOnly bool
}

// NewFilters builds a holder from initial values. Unknown price modes,
// negative or non-finite prices, and category ids absent from a non-empty
// categories list are dropped instead of being passed downstream. A mode
// whose price was dropped falls back to PriceModeNone.
func NewFilters(in InitialFilters, categories []models.Category) *Filters {
	f := &Filters{priceMode: PriceModeNone}
	f.SetQuery(in.Query)
	if in.CategoryID != "" && (len(categories) == 0 || models.FindCategory(categories, in.CategoryID) != nil) {
		f.categoryID = in.CategoryID
	}
	if mode, ok := ParsePriceMode(in.PriceMode); ok {
		f.priceMode = mode
	}
	f.SetPrice(in.Price)
	if f.price == nil {
		f.priceMode = PriceModeNone
	}
	f.availableOnly = in.InStock
	return f
}

// Query returns the raw, undebounced query text.
func (f *Filters) Query() string { return f.query }

// RawPrice returns the stored price input regardless of the price mode.
func (f *Filters) RawPrice() *float64 { return f.price }

func (f *Filters) SetQuery(text string) { f.query = text }

// SetCategory replaces the selected category. An empty id clears it.
// Other dimensions are left untouched.
func (f *Filters) SetCategory(id string) { f.categoryID = strings.TrimSpace(id) }

// SetPriceMode selects the price bound. Unknown modes clear it.
func (f *Filters) SetPriceMode(mode PriceMode) {
	m, _ := ParsePriceMode(string(mode))
	f.priceMode = m
}

// SetPrice stores the price input. Nil, negative, NaN, and infinite values
// clear it.
func (f *Filters) SetPrice(p *float64) { f.price = sanitizePrice(p) }

func (f *Filters) SetAvailableOnly(on bool) { f.availableOnly = on }

// Reset clears every dimension.
func (f *Filters) Reset() { *f = Filters{priceMode: PriceModeNone} }

// Snapshot captures the current state. A mode without a price, or a price
// without a mode, is no price filter at all. The raw inputs stay stored so
// completing the pair later applies it.
func (f *Filters) Snapshot() FilterState {
	s := FilterState{
		Query:         f.query,
		CategoryID:    f.categoryID,
		PriceMode:     PriceModeNone,
		AvailableOnly: f.availableOnly,
	}
	if f.priceMode != PriceModeNone && f.price != nil {
		p := *f.price
		s.PriceMode = f.priceMode
		s.Price = &p
	}
	return s
}

// PriceMode returns the selected mode, even while no price is set.
func (f *Filters) PriceMode() PriceMode { return f.priceMode }

func sanitizePrice(p *float64) *float64 {
	if p == nil || math.IsNaN(*p) || math.IsInf(*p, 0) || *p < 0 {
		return nil
	}
	v := *p
	return &v
}
