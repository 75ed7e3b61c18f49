// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"
	"sync"
	"time"

	"reposteria/internal/models"
)

// Options configures a live Catalog.
type Options struct {
	// Debounce is the quiet interval for query text. Zero means DefaultDebounce.
	Debounce time.Duration

	// OnView receives every new View. Calls are serialized and each one
	// reflects state at least as new as the previous call. The callback
	// must not call back into the Catalog synchronously.
	OnView func(View)

	// OnURL receives the mirrored query string whenever the effective
	// filter state changes.
	OnURL func(query string)
}

// Catalog is a live, interactive catalog session: it owns the filter
// holder, debounces query text, runs searches through an Executor, and
// publishes Views as they change. Create one per shopper session and
// Close it when the session ends.
type Catalog struct {
	categories []models.Category
	debouncer  *Debouncer
	exec       *Executor
	onView     func(View)
	onURL      func(string)

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	filters   *Filters
	effective string // debounced query text
	issued    FilterState
	closed    bool

	publishMu sync.Mutex
	lastURL   string
}

// New starts a session seeded from initial. A non-empty initial query is
// effective immediately. A mount with no active filter issues no search.
func New(searcher Searcher, categories []models.Category, initial InitialFilters, opts Options) *Catalog {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	ctx, cancel := context.WithCancel(context.Background())

	c := &Catalog{
		categories: categories,
		debouncer:  NewDebouncer(opts.Debounce),
		onView:     opts.OnView,
		onURL:      opts.OnURL,
		ctx:        ctx,
		cancel:     cancel,
		filters:    NewFilters(initial, categories),
	}
	c.exec = NewExecutor(searcher, c.publish)
	c.effective = c.filters.Query()

	c.mu.Lock()
	c.issued = c.stateLocked()
	c.exec.Run(c.ctx, c.issued)
	c.mu.Unlock()

	c.publish()
	return c
}

// Categories returns the category list the session was created with.
func (c *Catalog) Categories() []models.Category { return c.categories }

// SetQuery stores the raw text immediately and makes it effective once
// typing pauses for the debounce interval.
func (c *Catalog) SetQuery(text string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.filters.SetQuery(text)
	c.mu.Unlock()

	c.debouncer.Debounce(func() { c.applyQuery(text) })
	c.publish()
}

// SetCategory selects a category; an empty id clears the selection.
func (c *Catalog) SetCategory(id string) {
	c.update(func(f *Filters) { f.SetCategory(id) })
}

// SetPriceMode selects the price bound.
func (c *Catalog) SetPriceMode(mode PriceMode) {
	c.update(func(f *Filters) { f.SetPriceMode(mode) })
}

// SetPrice stores the price value. Invalid values clear it.
func (c *Catalog) SetPrice(p *float64) {
	c.update(func(f *Filters) { f.SetPrice(p) })
}

// SetAvailableOnly toggles the in-stock filter.
func (c *Catalog) SetAvailableOnly(on bool) {
	c.update(func(f *Filters) { f.SetAvailableOnly(on) })
}

// Clear resets every filter, including pending query text, immediately.
func (c *Catalog) Clear() {
	c.debouncer.Cancel()
	c.update(func(f *Filters) {
		f.Reset()
		c.effective = ""
	})
}

// State returns the effective filter snapshot.
func (c *Catalog) State() FilterState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// RawPrice returns the stored price input, even while no mode is selected.
func (c *Catalog) RawPrice() *float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters.RawPrice()
}

// QueryString returns the URL parameters for the effective state.
func (c *Catalog) QueryString() string {
	return c.State().QueryString()
}

// View returns the current render state.
func (c *Catalog) View() View {
	c.mu.Lock()
	state := c.issued
	input := c.filters.Query()
	c.mu.Unlock()

	loading, products := c.exec.Snapshot()
	v := SelectView(state, loading, products, c.categories)
	v.Input = input
	return v
}

// Close stops the session: pending query text is dropped, in-flight
// searches are invalidated, and no callback fires afterwards.
func (c *Catalog) Close() {
	// Holding publishMu lets a publish already past its closed check finish
	// before the flag flips.
	c.publishMu.Lock()
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		c.publishMu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()
	c.publishMu.Unlock()

	c.debouncer.Stop()
	c.cancel()
	c.exec.Close()
}

func (c *Catalog) applyQuery(text string) {
	c.update(func(*Filters) { c.effective = text })
}

// update mutates the filters and, when the effective snapshot changed,
// issues a new search and publishes the resulting view.
func (c *Catalog) update(mutate func(*Filters)) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	mutate(c.filters)
	state := c.stateLocked()
	changed := !state.Equal(c.issued)
	if changed {
		c.issued = state
		c.exec.Run(c.ctx, state)
	}
	c.mu.Unlock()

	if changed {
		c.publish()
	}
}

func (c *Catalog) stateLocked() FilterState {
	s := c.filters.Snapshot()
	s.Query = c.effective
	return s
}

// publish delivers the current view and URL to the callbacks.
func (c *Catalog) publish() {
	c.publishMu.Lock()
	defer c.publishMu.Unlock()

	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return
	}

	v := c.View()
	if c.onURL != nil && v.QueryString != c.lastURL {
		c.lastURL = v.QueryString
		c.onURL(v.QueryString)
	}
	if c.onView != nil {
		c.onView(v)
	}
}
