// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Recipe is editorial content shown on the storefront. Ingredients and
// Steps are stored as newline-separated text; Body is Markdown.
type Recipe struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Summary     string    `json:"summary"`
	Ingredients string    `json:"ingredients"`
	Steps       string    `json:"steps"`
	Body        string    `json:"body"`
	ImageURL    *string   `json:"image_url,omitempty"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
