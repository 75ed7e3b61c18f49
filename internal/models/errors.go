// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "errors"

// Validation and persistence errors shared by the store and the handlers.
// Callers match them with errors.Is.
var (
	ErrNameRequired     = errors.New("name is required")
	ErrPriceInvalid     = errors.New("price must be zero or positive")
	ErrCategoryRequired = errors.New("category is required")

	// ErrDuplicate means a unique column (usually the slug) is already taken.
	ErrDuplicate = errors.New("already exists")
	// ErrInUse means the row is still referenced, e.g. a category with products.
	ErrInUse = errors.New("still in use")
	// ErrInvalidReference means a foreign key points at a missing row.
	ErrInvalidReference = errors.New("referenced row does not exist")
)
