// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"

	"reposteria/internal/models"
)

// --- Recipes ---

type recipeInput struct {
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Summary     string  `json:"summary"`
	Ingredients string  `json:"ingredients"`
	Steps       string  `json:"steps"`
	Body        string  `json:"body"`
	ImageURL    *string `json:"image_url"`
	Published   bool    `json:"published"`
}

func (in recipeInput) apply(rec *models.Recipe) string {
	rec.Title = strings.TrimSpace(in.Title)
	rec.Slug = slugOrName(in.Slug, in.Title)
	rec.Summary = strings.TrimSpace(in.Summary)
	rec.Ingredients = in.Ingredients
	rec.Steps = in.Steps
	rec.Body = in.Body
	rec.ImageURL = optional(in.ImageURL)
	rec.Published = in.Published
	return firstError(
		validateName("Title", rec.Title),
		validateSlug(rec.Slug),
		validateText("Summary", rec.Summary, maxDescriptionLen),
		validateText("Ingredients", rec.Ingredients, maxDescriptionLen),
		validateText("Steps", rec.Steps, maxRecipeBodyLen),
		validateText("Body", rec.Body, maxRecipeBodyLen),
		validateURL("Image URL", rec.ImageURL),
	)
}

// RecipesList returns every recipe, drafts included.
func (a *Admin) RecipesList(w http.ResponseWriter, r *http.Request) {
	items, err := a.recipes.List(r.Context())
	if err != nil {
		a.writeStoreError(w, "list recipes", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(items))
}

// RecipeGet returns one recipe.
func (a *Admin) RecipeGet(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	rec, err := a.recipes.FindByID(r.Context(), id)
	if err != nil {
		a.writeStoreError(w, "find recipe", err)
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "recipe not found")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// RecipeCreate creates a recipe.
func (a *Admin) RecipeCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var in recipeInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rec := &models.Recipe{}
	if msg := in.apply(rec); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	created, err := a.recipes.Create(ctx, rec)
	if err != nil {
		a.writeStoreError(w, "create recipe", err)
		return
	}
	a.invalidateRecipe(ctx, created.ID, "create", created.Slug)
	writeJSON(w, http.StatusCreated, created)
}

// RecipeUpdate replaces a recipe's fields.
func (a *Admin) RecipeUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	rec, err := a.recipes.FindByID(ctx, id)
	if err != nil {
		a.writeStoreError(w, "find recipe", err)
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "recipe not found")
		return
	}
	oldSlug := rec.Slug

	var in recipeInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := in.apply(rec); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if err := a.recipes.Update(ctx, rec); err != nil {
		a.writeStoreError(w, "update recipe", err)
		return
	}
	a.invalidateRecipe(ctx, rec.ID, "update", oldSlug, rec.Slug)
	writeJSON(w, http.StatusOK, rec)
}

// RecipeDelete deletes a recipe.
func (a *Admin) RecipeDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	rec, err := a.recipes.FindByID(ctx, id)
	if err != nil {
		a.writeStoreError(w, "find recipe", err)
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "recipe not found")
		return
	}
	if err := a.recipes.Delete(ctx, id); err != nil {
		a.writeStoreError(w, "delete recipe", err)
		return
	}
	a.invalidateRecipe(ctx, id, "delete", rec.Slug)
	w.WriteHeader(http.StatusNoContent)
}

// --- Banners ---

type bannerInput struct {
	Title     string  `json:"title"`
	Subtitle  string  `json:"subtitle"`
	ImageURL  string  `json:"image_url"`
	LinkURL   *string `json:"link_url"`
	SortOrder int     `json:"sort_order"`
	Active    bool    `json:"active"`
}

func (in bannerInput) apply(b *models.Banner) string {
	b.Title = strings.TrimSpace(in.Title)
	b.Subtitle = strings.TrimSpace(in.Subtitle)
	b.ImageURL = strings.TrimSpace(in.ImageURL)
	b.LinkURL = optional(in.LinkURL)
	b.SortOrder = in.SortOrder
	b.Active = in.Active
	if b.ImageURL == "" {
		return "Image URL is required."
	}
	return firstError(
		validateName("Title", b.Title),
		validateText("Subtitle", b.Subtitle, maxNameLen),
		validateURL("Image URL", &b.ImageURL),
		validateURL("Link URL", b.LinkURL),
	)
}

// BannersList returns every banner, inactive ones included.
func (a *Admin) BannersList(w http.ResponseWriter, r *http.Request) {
	items, err := a.banners.List(r.Context())
	if err != nil {
		a.writeStoreError(w, "list banners", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(items))
}

// BannerCreate creates a banner.
func (a *Admin) BannerCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var in bannerInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	b := &models.Banner{}
	if msg := in.apply(b); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	created, err := a.banners.Create(ctx, b)
	if err != nil {
		a.writeStoreError(w, "create banner", err)
		return
	}
	a.invalidateHomepage(ctx, "banner", created.ID, "create")
	writeJSON(w, http.StatusCreated, created)
}

// BannerUpdate replaces a banner's fields.
func (a *Admin) BannerUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	b, err := a.banners.FindByID(ctx, id)
	if err != nil {
		a.writeStoreError(w, "find banner", err)
		return
	}
	if b == nil {
		writeError(w, http.StatusNotFound, "banner not found")
		return
	}
	var in bannerInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := in.apply(b); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if err := a.banners.Update(ctx, b); err != nil {
		a.writeStoreError(w, "update banner", err)
		return
	}
	a.invalidateHomepage(ctx, "banner", b.ID, "update")
	writeJSON(w, http.StatusOK, b)
}

// BannerDelete deletes a banner.
func (a *Admin) BannerDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	b, err := a.banners.FindByID(ctx, id)
	if err != nil {
		a.writeStoreError(w, "find banner", err)
		return
	}
	if b == nil {
		writeError(w, http.StatusNotFound, "banner not found")
		return
	}
	if err := a.banners.Delete(ctx, id); err != nil {
		a.writeStoreError(w, "delete banner", err)
		return
	}
	a.invalidateHomepage(ctx, "banner", id, "delete")
	w.WriteHeader(http.StatusNoContent)
}

// --- Brands ---

type brandInput struct {
	Name    string  `json:"name"`
	Slug    string  `json:"slug"`
	LogoURL *string `json:"logo_url"`
	Website *string `json:"website"`
}

func (in brandInput) apply(b *models.Brand) string {
	b.Name = strings.TrimSpace(in.Name)
	b.Slug = slugOrName(in.Slug, in.Name)
	b.LogoURL = optional(in.LogoURL)
	b.Website = optional(in.Website)
	return firstError(
		validateName("Name", b.Name),
		validateSlug(b.Slug),
		validateURL("Logo URL", b.LogoURL),
		validateURL("Website", b.Website),
	)
}

// BrandsList returns every brand.
func (a *Admin) BrandsList(w http.ResponseWriter, r *http.Request) {
	items, err := a.brands.List(r.Context())
	if err != nil {
		a.writeStoreError(w, "list brands", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(items))
}

// BrandCreate creates a brand.
func (a *Admin) BrandCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var in brandInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	b := &models.Brand{}
	if msg := in.apply(b); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	created, err := a.brands.Create(ctx, b)
	if err != nil {
		a.writeStoreError(w, "create brand", err)
		return
	}
	a.invalidateHomepage(ctx, "brand", created.ID, "create")
	writeJSON(w, http.StatusCreated, created)
}

// BrandUpdate replaces a brand's fields.
func (a *Admin) BrandUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	b, err := a.brands.FindByID(ctx, id)
	if err != nil {
		a.writeStoreError(w, "find brand", err)
		return
	}
	if b == nil {
		writeError(w, http.StatusNotFound, "brand not found")
		return
	}
	var in brandInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := in.apply(b); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if err := a.brands.Update(ctx, b); err != nil {
		a.writeStoreError(w, "update brand", err)
		return
	}
	a.invalidateHomepage(ctx, "brand", b.ID, "update")
	writeJSON(w, http.StatusOK, b)
}

// BrandDelete deletes a brand. Its products keep existing without a brand.
func (a *Admin) BrandDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	b, err := a.brands.FindByID(ctx, id)
	if err != nil {
		a.writeStoreError(w, "find brand", err)
		return
	}
	if b == nil {
		writeError(w, http.StatusNotFound, "brand not found")
		return
	}
	if err := a.brands.Delete(ctx, id); err != nil {
		a.writeStoreError(w, "delete brand", err)
		return
	}
	a.invalidateHomepage(ctx, "brand", id, "delete")
	w.WriteHeader(http.StatusNoContent)
}
