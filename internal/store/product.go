// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"reposteria/internal/catalog"
	"reposteria/internal/models"
)

// ProductStore handles product queries, including the filtered catalog
// search used by the storefront.
type ProductStore struct {
	db *sql.DB
}

// NewProductStore creates a new ProductStore with the given database connection.
func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

// productSelect joins the category name onto every product row.
const productSelect = `
	SELECT p.id, p.name, p.slug, p.description, p.price, p.available,
	       p.image_url, p.category_id, p.brand_id, p.featured,
	       p.created_at, p.updated_at, COALESCE(c.name, '')
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id`

const productColumns = `id, name, slug, description, price, available, image_url, category_id, brand_id, featured, created_at, updated_at`

func scanProduct(scanner interface{ Scan(...any) error }) (*models.Product, error) {
	var p models.Product
	err := scanner.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.Available,
		&p.ImageURL, &p.CategoryID, &p.BrandID, &p.Featured,
		&p.CreatedAt, &p.UpdatedAt, &p.CategoryName,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// scanProductRow scans a RETURNING row, which carries no category name.
func scanProductRow(scanner interface{ Scan(...any) error }) (*models.Product, error) {
	var p models.Product
	err := scanner.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.Available,
		&p.ImageURL, &p.CategoryID, &p.BrandID, &p.Featured,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProductStore) queryProducts(ctx context.Context, query string, args ...any) ([]models.Product, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// SearchProducts returns the products matching every set criterion,
// ordered by name ascending. A category id that is not a valid UUID
// matches nothing.
func (s *ProductStore) SearchProducts(ctx context.Context, c catalog.Criteria) ([]models.Product, error) {
	where, args, ok := buildSearchWhere(c)
	if !ok {
		return []models.Product{}, nil
	}
	query := productSelect
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY p.name ASC, p.id"

	items, err := s.queryProducts(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return items, nil
}

// buildSearchWhere turns criteria into a WHERE clause with numbered
// placeholders. ok is false when the criteria can never match.
func buildSearchWhere(c catalog.Criteria) (where string, args []any, ok bool) {
	var conds []string
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if c.Query != nil {
		if q := strings.TrimSpace(*c.Query); q != "" {
			p := arg("%" + escapeLike(q) + "%")
			conds = append(conds, "(p.name ILIKE "+p+" OR p.description ILIKE "+p+")")
		}
	}
	if c.CategoryID != nil {
		id, err := uuid.Parse(*c.CategoryID)
		if err != nil {
			return "", nil, false
		}
		conds = append(conds, "p.category_id = "+arg(id))
	}
	if c.PriceMin != nil {
		conds = append(conds, "p.price >= "+arg(*c.PriceMin))
	}
	if c.PriceMax != nil {
		conds = append(conds, "p.price <= "+arg(*c.PriceMax))
	}
	if c.AvailableOnly {
		conds = append(conds, "p.available = TRUE")
	}
	return strings.Join(conds, " AND "), args, true
}

// escapeLike escapes the LIKE wildcards so user text matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// List returns every product ordered by name.
func (s *ProductStore) List(ctx context.Context) ([]models.Product, error) {
	items, err := s.queryProducts(ctx, productSelect+" ORDER BY p.name ASC")
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return items, nil
}

// ListFeatured returns up to limit available featured products for the homepage.
func (s *ProductStore) ListFeatured(ctx context.Context, limit int) ([]models.Product, error) {
	items, err := s.queryProducts(ctx,
		productSelect+" WHERE p.featured = TRUE AND p.available = TRUE ORDER BY p.updated_at DESC LIMIT $1",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list featured products: %w", err)
	}
	return items, nil
}

// FindByID retrieves a product by its UUID. Returns nil if not found.
func (s *ProductStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, err := scanProduct(s.db.QueryRowContext(ctx, productSelect+" WHERE p.id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by id: %w", err)
	}
	return p, nil
}

// FindBySlug retrieves a product by slug. Returns nil if not found.
func (s *ProductStore) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	p, err := scanProduct(s.db.QueryRowContext(ctx, productSelect+" WHERE p.slug = $1", slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by slug: %w", err)
	}
	return p, nil
}

// Create inserts a new product and returns it.
func (s *ProductStore) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO products (name, slug, description, price, available, image_url,
		                      category_id, brand_id, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+productColumns,
		p.Name, p.Slug, p.Description, p.Price, p.Available, p.ImageURL,
		p.CategoryID, p.BrandID, p.Featured,
	)
	result, err := scanProductRow(row)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", constraintError(err, models.ErrInvalidReference))
	}
	return result, nil
}

// Update modifies an existing product.
func (s *ProductStore) Update(ctx context.Context, p *models.Product) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE products SET
			name = $1, slug = $2, description = $3, price = $4, available = $5,
			image_url = $6, category_id = $7, brand_id = $8, featured = $9,
			updated_at = NOW()
		WHERE id = $10
	`, p.Name, p.Slug, p.Description, p.Price, p.Available,
		p.ImageURL, p.CategoryID, p.BrandID, p.Featured, p.ID)
	if err != nil {
		return fmt.Errorf("update product: %w", constraintError(err, models.ErrInvalidReference))
	}
	return nil
}

// Delete removes a product by ID.
func (s *ProductStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete product: %w", constraintError(err, models.ErrInUse))
	}
	return nil
}

// SlugExists checks whether a product slug is taken, optionally excluding
// one product (for updates).
func (s *ProductStore) SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	var exists bool
	var err error
	if excludeID != nil {
		err = s.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM products WHERE slug = $1 AND id != $2)`, slug, *excludeID,
		).Scan(&exists)
	} else {
		err = s.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM products WHERE slug = $1)`, slug,
		).Scan(&exists)
	}
	if err != nil {
		return false, fmt.Errorf("check product slug: %w", err)
	}
	return exists, nil
}
