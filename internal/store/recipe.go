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

// RecipeStore handles recipe database operations.
type RecipeStore struct {
	db *sql.DB
}

// NewRecipeStore creates a new RecipeStore.
func NewRecipeStore(db *sql.DB) *RecipeStore {
	return &RecipeStore{db: db}
}

const recipeColumns = `id, title, slug, summary, ingredients, steps, body, image_url, published, created_at, updated_at`

func scanRecipe(scanner interface{ Scan(...any) error }) (*models.Recipe, error) {
	var r models.Recipe
	err := scanner.Scan(
		&r.ID, &r.Title, &r.Slug, &r.Summary, &r.Ingredients, &r.Steps,
		&r.Body, &r.ImageURL, &r.Published, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *RecipeStore) list(ctx context.Context, query string) ([]models.Recipe, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		items = append(items, *r)
	}
	return items, rows.Err()
}

// List returns every recipe, newest first.
func (s *RecipeStore) List(ctx context.Context) ([]models.Recipe, error) {
	items, err := s.list(ctx, `SELECT `+recipeColumns+` FROM recipes ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return items, nil
}

// ListPublished returns published recipes, newest first.
func (s *RecipeStore) ListPublished(ctx context.Context) ([]models.Recipe, error) {
	items, err := s.list(ctx, `SELECT `+recipeColumns+` FROM recipes WHERE published = TRUE ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list published recipes: %w", err)
	}
	return items, nil
}

// FindByID retrieves a recipe by ID. Returns nil if not found.
func (s *RecipeStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	r, err := scanRecipe(s.db.QueryRowContext(ctx, `SELECT `+recipeColumns+` FROM recipes WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find recipe by id: %w", err)
	}
	return r, nil
}

// FindPublishedBySlug retrieves a published recipe by slug. Returns nil if
// not found or still a draft.
func (s *RecipeStore) FindPublishedBySlug(ctx context.Context, slug string) (*models.Recipe, error) {
	r, err := scanRecipe(s.db.QueryRowContext(ctx,
		`SELECT `+recipeColumns+` FROM recipes WHERE slug = $1 AND published = TRUE`, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find recipe by slug: %w", err)
	}
	return r, nil
}

// Create inserts a new recipe and returns it.
func (s *RecipeStore) Create(ctx context.Context, r *models.Recipe) (*models.Recipe, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO recipes (title, slug, summary, ingredients, steps, body, image_url, published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+recipeColumns,
		r.Title, r.Slug, r.Summary, r.Ingredients, r.Steps, r.Body, r.ImageURL, r.Published,
	)
	result, err := scanRecipe(row)
	if err != nil {
		return nil, fmt.Errorf("create recipe: %w", constraintError(err, models.ErrInvalidReference))
	}
	return result, nil
}

// Update modifies an existing recipe.
func (s *RecipeStore) Update(ctx context.Context, r *models.Recipe) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE recipes SET
			title = $1, slug = $2, summary = $3, ingredients = $4, steps = $5,
			body = $6, image_url = $7, published = $8, updated_at = NOW()
		WHERE id = $9
	`, r.Title, r.Slug, r.Summary, r.Ingredients, r.Steps, r.Body, r.ImageURL, r.Published, r.ID)
	if err != nil {
		return fmt.Errorf("update recipe: %w", constraintError(err, models.ErrInvalidReference))
	}
	return nil
}

// Delete removes a recipe by ID.
func (s *RecipeStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete recipe: %w", constraintError(err, models.ErrInUse))
	}
	return nil
}
