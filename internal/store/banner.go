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

// BannerStore manages homepage banners.
type BannerStore struct {
	db *sql.DB
}

// NewBannerStore returns a new BannerStore.
func NewBannerStore(db *sql.DB) *BannerStore {
	return &BannerStore{db: db}
}

const bannerColumns = `id, title, subtitle, image_url, link_url, sort_order, active, created_at, updated_at`

func scanBanner(scanner interface{ Scan(...any) error }) (*models.Banner, error) {
	var b models.Banner
	err := scanner.Scan(
		&b.ID, &b.Title, &b.Subtitle, &b.ImageURL, &b.LinkURL,
		&b.SortOrder, &b.Active, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *BannerStore) list(ctx context.Context, query string) ([]models.Banner, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Banner
	for rows.Next() {
		b, err := scanBanner(rows)
		if err != nil {
			return nil, fmt.Errorf("scan banner: %w", err)
		}
		items = append(items, *b)
	}
	return items, rows.Err()
}

// List returns all banners in display order.
func (s *BannerStore) List(ctx context.Context) ([]models.Banner, error) {
	items, err := s.list(ctx, `SELECT `+bannerColumns+` FROM banners ORDER BY sort_order, created_at`)
	if err != nil {
		return nil, fmt.Errorf("list banners: %w", err)
	}
	return items, nil
}

// ListActive returns the banners shown on the homepage carousel.
func (s *BannerStore) ListActive(ctx context.Context) ([]models.Banner, error) {
	items, err := s.list(ctx, `SELECT `+bannerColumns+` FROM banners WHERE active = TRUE ORDER BY sort_order, created_at`)
	if err != nil {
		return nil, fmt.Errorf("list active banners: %w", err)
	}
	return items, nil
}

// FindByID retrieves a banner by ID. Returns nil if not found.
func (s *BannerStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Banner, error) {
	b, err := scanBanner(s.db.QueryRowContext(ctx, `SELECT `+bannerColumns+` FROM banners WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find banner by id: %w", err)
	}
	return b, nil
}

// Create inserts a new banner and returns it.
func (s *BannerStore) Create(ctx context.Context, b *models.Banner) (*models.Banner, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO banners (title, subtitle, image_url, link_url, sort_order, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+bannerColumns,
		b.Title, b.Subtitle, b.ImageURL, b.LinkURL, b.SortOrder, b.Active,
	)
	result, err := scanBanner(row)
	if err != nil {
		return nil, fmt.Errorf("create banner: %w", constraintError(err, models.ErrInvalidReference))
	}
	return result, nil
}

// Update modifies an existing banner.
func (s *BannerStore) Update(ctx context.Context, b *models.Banner) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE banners SET
			title = $1, subtitle = $2, image_url = $3, link_url = $4,
			sort_order = $5, active = $6, updated_at = NOW()
		WHERE id = $7
	`, b.Title, b.Subtitle, b.ImageURL, b.LinkURL, b.SortOrder, b.Active, b.ID)
	if err != nil {
		return fmt.Errorf("update banner: %w", constraintError(err, models.ErrInvalidReference))
	}
	return nil
}

// Delete removes a banner by ID.
func (s *BannerStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM banners WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete banner: %w", constraintError(err, models.ErrInUse))
	}
	return nil
}
