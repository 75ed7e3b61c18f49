// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// storefront. Routes are grouped into public pages, the public JSON API
// and the token-protected admin API.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"reposteria/internal/handlers"
	"reposteria/internal/middleware"
	"reposteria/web"
)

// New creates the configured Chi router. searchLimiter may be nil, which
// leaves the JSON API unthrottled. An empty adminToken disables the admin
// API.
func New(public *handlers.Public, api *handlers.API, admin *handlers.Admin, searchLimiter *middleware.RateLimiter, adminToken string) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", healthHandler)
	r.Handle("/static/*", staticHandler())

	// Storefront pages.
	r.Get("/", public.Homepage)
	r.Get("/productos", public.Catalog)
	r.Get("/productos/{slug}", public.Product)
	r.Get("/categorias/{slug}", public.Category)
	r.Get("/recetas", public.Recipes)
	r.Get("/recetas/{slug}", public.Recipe)
	r.Get("/contacto", public.Contact)

	// Public JSON API for live catalog clients.
	r.Route("/api", func(r chi.Router) {
		if searchLimiter != nil {
			r.Use(searchLimiter.Middleware)
		}
		r.Get("/categories", api.Categories)
		r.Get("/products/search", api.SearchProducts)
	})

	// Admin JSON API.
	r.Route("/admin/api", func(r chi.Router) {
		r.Use(middleware.RequireAdminToken(adminToken))

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", admin.CategoriesList)
			r.Post("/", admin.CategoryCreate)
			r.Get("/{id}", admin.CategoryGet)
			r.Put("/{id}", admin.CategoryUpdate)
			r.Delete("/{id}", admin.CategoryDelete)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", admin.ProductsList)
			r.Post("/", admin.ProductCreate)
			r.Get("/{id}", admin.ProductGet)
			r.Put("/{id}", admin.ProductUpdate)
			r.Delete("/{id}", admin.ProductDelete)
		})

		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", admin.RecipesList)
			r.Post("/", admin.RecipeCreate)
			r.Get("/{id}", admin.RecipeGet)
			r.Put("/{id}", admin.RecipeUpdate)
			r.Delete("/{id}", admin.RecipeDelete)
		})

		r.Route("/banners", func(r chi.Router) {
			r.Get("/", admin.BannersList)
			r.Post("/", admin.BannerCreate)
			r.Put("/{id}", admin.BannerUpdate)
			r.Delete("/{id}", admin.BannerDelete)
		})

		r.Route("/brands", func(r chi.Router) {
			r.Get("/", admin.BrandsList)
			r.Post("/", admin.BrandCreate)
			r.Put("/{id}", admin.BrandUpdate)
			r.Delete("/{id}", admin.BrandDelete)
		})

		r.Post("/uploads", admin.Upload)
		r.Get("/cache-log", admin.CacheLogList)
	})

	r.NotFound(public.NotFound)

	return r
}

// staticHandler serves the embedded web/static tree under /static/.
func staticHandler() http.Handler {
	sub, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		panic("router: embedded static directory missing: " + err.Error())
	}
	return http.StripPrefix("/static/", http.FileServerFS(sub))
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
