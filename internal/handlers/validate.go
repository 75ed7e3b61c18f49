// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"math"
	"net/url"
	"strings"
	"unicode/utf8"

	"reposteria/internal/slug"
)

// Validation limits for catalog fields.
const (
	maxNameLen        = 200
	maxSlugLen        = 200
	maxDescriptionLen = 5_000
	maxRecipeBodyLen  = 100_000
	maxURLLen         = 2_000
	maxPrice          = 100_000_000
)

// validateName checks a required display name or title.
func validateName(field, value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return field + " is required."
	}
	if utf8.RuneCountInString(value) > maxNameLen {
		return field + " is too long (max 200 characters)."
	}
	return ""
}

// validateSlug checks that a slug is already in canonical form.
func validateSlug(s string) string {
	if s == "" {
		return "Slug is required."
	}
	if utf8.RuneCountInString(s) > maxSlugLen {
		return "Slug is too long (max 200 characters)."
	}
	if slug.Generate(s) != s {
		return "Slug may only contain lowercase letters, digits and dashes."
	}
	return ""
}

// validatePrice checks a product price.
func validatePrice(p float64) string {
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		return "Price must be zero or positive."
	}
	if p > maxPrice {
		return "Price is too large."
	}
	return ""
}

// validateText checks an optional free-text field against a limit.
func validateText(field, value string, limit int) string {
	if utf8.RuneCountInString(value) > limit {
		return field + " is too long."
	}
	return ""
}

// validateURL checks an optional absolute http(s) URL or a site path.
func validateURL(field string, value *string) string {
	if value == nil || *value == "" {
		return ""
	}
	if len(*value) > maxURLLen {
		return field + " is too long."
	}
	if strings.HasPrefix(*value, "/") && !strings.HasPrefix(*value, "//") {
		return ""
	}
	u, err := url.Parse(*value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return field + " must be an http(s) URL or a path starting with /."
	}
	return ""
}

// firstError returns the first non-empty validation message.
func firstError(msgs ...string) string {
	for _, m := range msgs {
		if m != "" {
			return m
		}
	}
	return ""
}

// slugOrName returns the trimmed slug, or one generated from name.
func slugOrName(s, name string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return slug.Generate(name)
	}
	return s
}

// optional turns an empty string into nil.
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
