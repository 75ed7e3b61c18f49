// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"reposteria/internal/models"
)

// BrandStore manages the brands shown in the homepage strip.
type BrandStore struct {
	db *sql.DB
}

// NewBrandStore returns a new BrandStore.
func NewBrandStore(db *sql.DB) *BrandStore {
	return &BrandStore{db: db}
}

const brandColumns = `id, name, slug, logo_url, website, created_at, updated_at`

func scanBrand(scanner interface{ Scan(...any) error }) (*models.Brand, error) {
	var b models.Brand
	if err := scanner.Scan(&b.ID, &b.Name, &b.Slug, &b.LogoURL, &b.Website, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns all brands ordered by name.
func (s *BrandStore) List(ctx context.Context) ([]models.Brand, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+brandColumns+` FROM brands ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	var items []models.Brand
	for rows.Next() {
		b, err := scanBrand(rows)
		if err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		items = append(items, *b)
	}
	return items, rows.Err()
}

// FindByID retrieves a brand by ID. Returns nil if not found.
func (s *BrandStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Brand, error) {
	b, err := scanBrand(s.db.QueryRowContext(ctx, `SELECT `+brandColumns+` FROM brands WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find brand by id: %w", err)
	}
	return b, nil
}

// Create inserts a new brand and returns it.
func (s *BrandStore) Create(ctx context.Context, b *models.Brand) (*models.Brand, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO brands (name, slug, logo_url, website)
		VALUES ($1, $2, $3, $4)
		RETURNING `+brandColumns,
		b.Name, b.Slug, b.LogoURL, b.Website,
	)
	result, err := scanBrand(row)
	if err != nil {
		return nil, fmt.Errorf("create brand: %w", constraintError(err, models.ErrInvalidReference))
	}
	return result, nil
}

// Update modifies an existing brand.
func (s *BrandStore) Update(ctx context.Context, b *models.Brand) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE brands SET name = $1, slug = $2, logo_url = $3, website = $4, updated_at = NOW()
		WHERE id = $5
	`, b.Name, b.Slug, b.LogoURL, b.Website, b.ID)
	if err != nil {
		return fmt.Errorf("update brand: %w", constraintError(err, models.ErrInvalidReference))
	}
	return nil
}

// Delete removes a brand by ID. Products keep existing with no brand.
func (s *BrandStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM brands WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete brand: %w", constraintError(err, models.ErrInUse))
	}
	return nil
}
