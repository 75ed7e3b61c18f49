// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"

	"reposteria/internal/database"
	"reposteria/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "reposteria")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "reposteria")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// createTestCategory inserts a category and removes it (and its products)
// when the test finishes.
func createTestCategory(t *testing.T, db *sql.DB, name, slug string) *models.Category {
	t.Helper()
	c, err := NewCategoryStore(db).Create(context.Background(), &models.Category{Name: name, Slug: slug})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM products WHERE category_id = $1", c.ID)
		db.Exec("DELETE FROM categories WHERE id = $1", c.ID)
	})
	return c
}

// createTestProduct inserts a product. It is removed with its category.
func createTestProduct(t *testing.T, db *sql.DB, p models.Product) *models.Product {
	t.Helper()
	created, err := NewProductStore(db).Create(context.Background(), &p)
	if err != nil {
		t.Fatalf("create product %q: %v", p.Slug, err)
	}
	return created
}
