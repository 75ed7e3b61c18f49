// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a sellable catalog item. Price is in the store currency and
// is never negative; Available marks whether it can be ordered right now.
type Product struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	Available   bool       `json:"available"`
	ImageURL    *string    `json:"image_url,omitempty"`
	CategoryID  uuid.UUID  `json:"category_id"`
	BrandID     *uuid.UUID `json:"brand_id,omitempty"`
	Featured    bool       `json:"featured"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Virtual field joined from categories.
	CategoryName string `json:"category_name,omitempty"`
}

// Validate checks the invariants the database also enforces, so handlers
// can reject bad input before a round trip.
func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrNameRequired
	}
	if p.Price < 0 {
		return ErrPriceInvalid
	}
	if p.CategoryID == uuid.Nil {
		return ErrCategoryRequired
	}
	return nil
}
