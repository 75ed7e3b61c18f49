// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the storefront.
// It supports full-page and HTMX partial rendering, automatically detecting
// the request type via the HX-Request header.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strconv"
	"strings"

	"reposteria/internal/markdown"
	"reposteria/internal/recipe"
	"reposteria/internal/whatsapp"
)

//go:embed templates/store/*.html
var storeFS embed.FS

// sharedTemplates are parsed into every page alongside the base layout.
var sharedTemplates = []string{"templates/store/base.html", "templates/store/partials.html"}

// fragments maps a page to the block sent for HTMX requests. Pages not
// listed send their "content" block.
var fragments = map[string]string{
	"catalog": "results",
}

// Site holds store-wide values every page needs.
type Site struct {
	Name           string
	WhatsAppNumber string
}

// PageData holds all data passed to storefront templates.
type PageData struct {
	Title       string         // Page title for the <title> tag
	Description string         // Meta description
	Section     string         // Active nav section: "inicio", "productos", "recetas"
	Site        Site           // Filled in by the renderer
	Data        map[string]any // Page-specific data
}

// Renderer handles template parsing and execution for storefront pages.
type Renderer struct {
	templates map[string]*template.Template
	funcMap   template.FuncMap
	site      Site
}

// New creates a Renderer by parsing every page template from the embedded
// filesystem, each paired with the base layout and shared partials. When
// devMode is true, pages load Tailwind from its CDN; otherwise they use the
// compiled stylesheet served at /static/.
func New(devMode bool, site Site) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		site:      site,
	}
	r.funcMap = template.FuncMap{
		"activeClass": func(current, target string) string {
			if current == target {
				return "font-semibold text-amber-800"
			}
			return "text-stone-600 hover:text-amber-800"
		},
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"isDev": func() bool {
			return devMode
		},
		"price": whatsapp.FormatPrice,
		// priceValue formats the raw price for a number input.
		"priceValue": func(p *float64) string {
			if p == nil {
				return ""
			}
			return strconv.FormatFloat(*p, 'f', -1, 64)
		},
		"productCount": func(n int) string {
			if n == 1 {
				return "1 producto"
			}
			return strconv.Itoa(n) + " productos"
		},
		"contactLink": func() string {
			return whatsapp.ContactLink(site.WhatsAppNumber, "Hola! Tengo una consulta.")
		},
		"lines":    recipe.SplitLines,
		"markdown": markdown.Render,
		"seq": func(n int) []int {
			s := make([]int, n)
			for i := range s {
				s[i] = i
			}
			return s
		},
	}

	pages, err := fs.Glob(storeFS, "templates/store/*.html")
	if err != nil {
		return nil, fmt.Errorf("glob templates: %w", err)
	}

	for _, page := range pages {
		name := path.Base(page)
		if name == "base.html" || name == "partials.html" {
			continue
		}
		tmplName := strings.TrimSuffix(name, ".html")

		files := append([]string{}, sharedTemplates...)
		files = append(files, page)
		tmpl, err := template.New("base.html").Funcs(r.funcMap).ParseFS(storeFS, files...)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[tmplName] = tmpl
	}

	return r, nil
}

// Page renders a full storefront page or an HTMX fragment, depending on
// the request headers.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	rn.PageStatus(w, r, http.StatusOK, name, data)
}

// PageStatus is Page with an explicit status code.
func (rn *Renderer) PageStatus(w http.ResponseWriter, r *http.Request, status int, name string, data *PageData) {
	block := "base.html"
	if IsHTMX(r) {
		block = fragmentFor(name)
	}

	// Render into a buffer so a template error can still become a clean 500.
	body, err := rn.execute(name, block, data)
	if err != nil {
		slog.Error("render page failed", "error", err, "template", name, "block", block)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}

// Render returns the full page as bytes, for callers that cache output.
func (rn *Renderer) Render(name string, data *PageData) ([]byte, error) {
	return rn.execute(name, "base.html", data)
}

// Fragment returns only the HTMX fragment of a page.
func (rn *Renderer) Fragment(name string, data *PageData) ([]byte, error) {
	return rn.execute(name, fragmentFor(name), data)
}

// NotFound renders the storefront 404 page.
func (rn *Renderer) NotFound(w http.ResponseWriter, r *http.Request) {
	rn.PageStatus(w, r, http.StatusNotFound, "not_found", &PageData{Title: "Página no encontrada"})
}

func (rn *Renderer) execute(name, block string, data *PageData) ([]byte, error) {
	tmpl, ok := rn.templates[name]
	if !ok {
		return nil, fmt.Errorf("template %q not found", name)
	}
	if data == nil {
		data = &PageData{}
	}
	data.Site = rn.site

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, block, data); err != nil {
		return nil, fmt.Errorf("execute %s/%s: %w", name, block, err)
	}
	return buf.Bytes(), nil
}

func fragmentFor(name string) string {
	if block, ok := fragments[name]; ok {
		return block
	}
	return "content"
}

// IsHTMX returns true if the request was made by HTMX (has HX-Request header).
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
