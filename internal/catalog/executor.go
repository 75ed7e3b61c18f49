// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"
	"log/slog"
	"sync"

	"reposteria/internal/models"
)

// Searcher runs a filtered product query against the data store. Results
// are ordered by name ascending.
type Searcher interface {
	SearchProducts(ctx context.Context, c Criteria) ([]models.Product, error)
}

// SearcherFunc adapts a plain function to the Searcher interface.
type SearcherFunc func(ctx context.Context, c Criteria) ([]models.Product, error)

func (f SearcherFunc) SearchProducts(ctx context.Context, c Criteria) ([]models.Product, error) {
	return f(ctx, c)
}

// Executor issues searches for filter snapshots and keeps only the result
// of the most recently issued one. Each Run bumps a generation counter; a
// response whose generation is no longer current is dropped, regardless of
// the order responses arrive in. The previous request's context is also
// cancelled, but that is advisory: the generation check is what guarantees
// ordering.
type Executor struct {
	searcher Searcher
	onSettle func()

	mu       sync.Mutex
	gen      uint64
	cancel   context.CancelFunc
	loading  bool
	products []models.Product
	closed   bool

	wg sync.WaitGroup
}

// NewExecutor creates an executor. onSettle, if non-nil, is called from the
// request goroutine after a current result has been applied. It is never
// called for discarded responses.
func NewExecutor(searcher Searcher, onSettle func()) *Executor {
	return &Executor{searcher: searcher, onSettle: onSettle}
}

// Run starts a search for state and returns its generation. An inactive
// state issues no request: it clears the previous results and invalidates
// anything still in flight.
func (e *Executor) Run(ctx context.Context, state FilterState) uint64 {
	e.mu.Lock()
	if e.closed {
		gen := e.gen
		e.mu.Unlock()
		return gen
	}

	e.gen++
	gen := e.gen
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}

	if !state.IsActive() {
		e.loading = false
		e.products = nil
		e.mu.Unlock()
		return gen
	}

	reqCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.loading = true
	criteria := state.Criteria()
	e.wg.Add(1)
	e.mu.Unlock()

	go func() {
		defer e.wg.Done()
		defer cancel()
		products, err := e.searcher.SearchProducts(reqCtx, criteria)
		e.settle(gen, products, err)
	}()

	return gen
}

// settle applies a response if it still belongs to the current generation.
func (e *Executor) settle(gen uint64, products []models.Product, err error) {
	e.mu.Lock()
	if gen != e.gen {
		e.mu.Unlock()
		slog.Debug("stale catalog search discarded", "generation", gen)
		return
	}

	e.loading = false
	e.cancel = nil
	if err != nil {
		slog.Warn("catalog search failed", "generation", gen, "error", err)
		e.products = nil
	} else {
		e.products = products
	}
	e.mu.Unlock()

	if e.onSettle != nil {
		e.onSettle()
	}
}

// Snapshot returns the loading flag and the products of the current
// generation. The slice must not be modified.
func (e *Executor) Snapshot() (loading bool, products []models.Product) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loading, e.products
}

// Generation returns the generation of the most recent Run.
func (e *Executor) Generation() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gen
}

// Close invalidates and cancels any in-flight request, rejects future
// runs, and waits for request goroutines to return.
func (e *Executor) Close() {
	e.mu.Lock()
	e.closed = true
	e.gen++
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.loading = false
	e.mu.Unlock()

	e.wg.Wait()
}
