// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package tui is a terminal catalog browser. It drives a live
// catalog.Catalog against a storefront's search API: typing is debounced,
// stale responses are dropped by the catalog, and every published view is
// handed to the Bubble Tea loop through a one-slot channel.
package tui

import (
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"reposteria/internal/catalog"
	"reposteria/internal/models"
)

// field is the focused filter control.
type field int

const (
	fieldQuery field = iota
	fieldCategory
	fieldMode
	fieldPrice
	fieldStock
	fieldCount
)

var priceModes = []catalog.PriceMode{catalog.PriceModeNone, catalog.PriceModeMin, catalog.PriceModeMax}

// viewMsg carries a view published by the catalog.
type viewMsg catalog.View

// Options configures a Model.
type Options struct {
	// Debounce is the quiet interval for query text.
	Debounce time.Duration
	// BaseURL is the storefront address used for the share link.
	BaseURL string
}

// Model is the Bubble Tea model of the catalog browser.
type Model struct {
	catalog *catalog.Catalog
	sink    *viewSink
	baseURL string

	view     catalog.View
	focus    field
	query    textinput.Model
	price    textinput.Model
	category int // index into the category choices, 0 is "all"
	mode     int // index into priceModes
	inStock  bool
	spinner  spinner.Model

	width  int
	height int
}

// New starts a catalog session seeded from initial and returns its model.
// Call Close when the program exits.
func New(searcher catalog.Searcher, categories []models.Category, initial catalog.InitialFilters, opts Options) *Model {
	sink := newViewSink()

	query := textinput.New()
	query.Prompt = ""
	query.Placeholder = "Chocolate, moldes, fondant..."
	query.CharLimit = 100
	query.Width = 40
	query.Focus()

	price := textinput.New()
	price.Prompt = ""
	price.Placeholder = "monto"
	price.CharLimit = 12
	price.Width = 12

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = accentStyle

	m := &Model{
		sink:    sink,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		query:   query,
		price:   price,
		spinner: sp,
	}
	m.catalog = catalog.New(searcher, categories, initial, catalog.Options{
		Debounce: opts.Debounce,
		OnView:   sink.push,
	})

	// Mirror the sanitized initial filters in the controls.
	m.view = m.catalog.View()
	state := m.catalog.State()
	m.query.SetValue(m.view.Input)
	m.query.CursorEnd()
	if p := m.catalog.RawPrice(); p != nil {
		m.price.SetValue(strconv.FormatFloat(*p, 'f', -1, 64))
	}
	for i, c := range categories {
		if c.ID.String() == state.CategoryID {
			m.category = i + 1
		}
	}
	for i, mode := range priceModes {
		if mode == state.PriceMode {
			m.mode = i
		}
	}
	m.inStock = state.AvailableOnly
	return m
}

// Close ends the catalog session and releases a pending waitForView.
func (m *Model) Close() {
	m.catalog.Close()
	m.sink.close()
}

// Init starts the cursor blink, the spinner and the view listener.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.waitForView())
}

// waitForView blocks until the catalog publishes a view.
func (m *Model) waitForView() tea.Cmd {
	return func() tea.Msg {
		v, ok := m.sink.next()
		if !ok {
			return nil
		}
		return viewMsg(v)
	}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case viewMsg:
		m.view = catalog.View(msg)
		slog.Debug("catalog view", "state", m.view.State, "query", m.view.QueryString, "products", len(m.view.Products))
		return m, m.waitForView()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.Close()
		return m, tea.Quit
	case "tab", "down":
		return m, m.setFocus((m.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)
	case "ctrl+r":
		m.clear()
		return m, nil
	}

	switch m.focus {
	case fieldQuery:
		var cmd tea.Cmd
		before := m.query.Value()
		m.query, cmd = m.query.Update(msg)
		if v := m.query.Value(); v != before {
			m.catalog.SetQuery(v)
		}
		return m, cmd

	case fieldPrice:
		var cmd tea.Cmd
		before := m.price.Value()
		m.price, cmd = m.price.Update(msg)
		if v := m.price.Value(); v != before {
			m.catalog.SetPrice(parsePrice(v))
		}
		return m, cmd

	case fieldCategory:
		if step := arrowStep(msg); step != 0 {
			n := len(m.catalog.Categories()) + 1
			m.category = (m.category + step + n) % n
			m.catalog.SetCategory(m.categoryID())
		}

	case fieldMode:
		if step := arrowStep(msg); step != 0 {
			n := len(priceModes)
			m.mode = (m.mode + step + n) % n
			m.catalog.SetPriceMode(priceModes[m.mode])
		}

	case fieldStock:
		switch msg.String() {
		case " ", "space", "enter", "left", "right":
			m.inStock = !m.inStock
			m.catalog.SetAvailableOnly(m.inStock)
		}
	}
	return m, nil
}

// setFocus moves focus and the text cursor to f.
func (m *Model) setFocus(f field) tea.Cmd {
	m.focus = f
	m.query.Blur()
	m.price.Blur()
	switch f {
	case fieldQuery:
		return m.query.Focus()
	case fieldPrice:
		return m.price.Focus()
	}
	return nil
}

// clear resets every control and the catalog filters.
func (m *Model) clear() {
	m.query.SetValue("")
	m.price.SetValue("")
	m.category = 0
	m.mode = 0
	m.inStock = false
	m.catalog.Clear()
}

func (m *Model) categoryID() string {
	if m.category == 0 {
		return ""
	}
	return m.catalog.Categories()[m.category-1].ID.String()
}

// ShareURL is the storefront address of the current filters.
func (m *Model) ShareURL() string {
	if m.view.QueryString == "" {
		return m.baseURL + "/productos"
	}
	return m.baseURL + "/productos?" + m.view.QueryString
}

func arrowStep(msg tea.KeyMsg) int {
	switch msg.String() {
	case "right", " ", "space", "enter":
		return 1
	case "left":
		return -1
	}
	return 0
}

// parsePrice reads the price field. Anything that is not a number clears
// the price; the catalog drops negative and non-finite values itself.
func parsePrice(s string) *float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// viewSink hands views from catalog goroutines to the Bubble Tea loop.
// It holds only the newest view: an unread view is replaced, so the
// publisher never blocks.
type viewSink struct {
	ch   chan catalog.View
	done chan struct{}
	once sync.Once
}

func newViewSink() *viewSink {
	return &viewSink{ch: make(chan catalog.View, 1), done: make(chan struct{})}
}

// push stores v, replacing an unread view. Calls are serialized by the
// catalog.
func (s *viewSink) push(v catalog.View) {
	select {
	case <-s.ch:
	default:
	}
	select {
	case s.ch <- v:
	default:
	}
}

// next waits for a view. It reports false once the sink is closed.
func (s *viewSink) next() (catalog.View, bool) {
	select {
	case v := <-s.ch:
		return v, true
	case <-s.done:
		return catalog.View{}, false
	}
}

func (s *viewSink) close() {
	s.once.Do(func() { close(s.done) })
}
