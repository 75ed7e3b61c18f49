// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the catalog entities shared by the stores,
// handlers, and the storefront search core.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products on the storefront (e.g. "Chocolates", "Moldes").
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	ImageURL    *string   `json:"image_url,omitempty"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Virtual field populated by CategoryStore.ListWithCounts.
	ProductCount int `json:"product_count"`
}

// FindCategory returns the category with the given id from a list, or nil.
// The id is compared in its canonical string form so callers holding
// URL parameters don't need to parse it first.
func FindCategory(categories []Category, id string) *Category {
	for i := range categories {
		if categories[i].ID.String() == id {
			return &categories[i]
		}
	}
	return nil
}
