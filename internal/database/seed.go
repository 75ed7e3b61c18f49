// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"reposteria/internal/slug"
)

type seedProduct struct {
	name        string
	description string
	price       float64
	available   bool
	featured    bool
	brand       string
}

type seedCategory struct {
	name        string
	description string
	products    []seedProduct
}

var seedBrands = []string{"Fleibor", "Mapsa", "Águila", "Ballina"}

var seedCategories = []seedCategory{
	{
		name:        "Chocolates",
		description: "Coberturas, baños y chips para repostería.",
		products: []seedProduct{
			{name: "Cobertura Semiamarga 1 kg", description: "Chocolate cobertura semiamargo en barra.", price: 9800, available: true, featured: true, brand: "Águila"},
			{name: "Chips de Chocolate 500 g", description: "Chips que no se derriten en el horno.", price: 4300, available: true, brand: "Águila"},
			{name: "Chocolate Blanco Repostero", description: "Tableta de chocolate blanco para fundir.", price: 3500, available: false, brand: "Águila"},
			{name: "Cacao Amargo en Polvo", description: "Cacao alcalino 100% puro.", price: 2800, available: true},
			{name: "Baño de Moldeo Leche", description: "Chocolate con leche para bombones.", price: 5200, available: true, featured: true},
		},
	},
	{
		name:        "Moldes",
		description: "Moldes de aluminio, silicona y desmontables.",
		products: []seedProduct{
			{name: "Molde Desmontable 24 cm", description: "Aluminio con base removible.", price: 7600, available: true, featured: true, brand: "Mapsa"},
			{name: "Molde Savarin 22 cm", description: "Molde de aro para savarin y budín.", price: 6100, available: true, brand: "Mapsa"},
			{name: "Placa de Silicona 12 Cupcakes", description: "Silicona apta horno y freezer.", price: 5400, available: true},
			{name: "Molde Corazón Antiadherente", description: "Ideal para tortas de aniversario.", price: 6900, available: false, brand: "Mapsa"},
			{name: "Budinera Aluminio 30 cm", description: "Budinera rectangular reforzada.", price: 3900, available: true},
			{name: "Molde Bombones Policarbonato", description: "21 cavidades semiesfera.", price: 8800, available: true},
			{name: "Tartera Ondulada 28 cm", description: "Tartera de borde ondulado con fondo suelto.", price: 5600, available: true},
			{name: "Aro Emplatador Set x3", description: "Acero inoxidable, tres medidas.", price: 4700, available: true},
		},
	},
	{
		name:        "Decoración",
		description: "Fondant, colorantes, sprinkles y velas.",
		products: []seedProduct{
			{name: "Pasta Ballina Blanca 1 kg", description: "Pasta para cubrir tortas.", price: 4200, available: true, featured: true, brand: "Ballina"},
			{name: "Colorante en Gel Rojo", description: "Colorante concentrado en gel.", price: 1500, available: true, brand: "Fleibor"},
			{name: "Sprinkles Arcoíris 100 g", description: "Granas de colores para decorar.", price: 900, available: true, brand: "Fleibor"},
			{name: "Velas Números Doradas", description: "Velas metalizadas del 0 al 9.", price: 750, available: false},
		},
	},
	{
		name:        "Utensilios",
		description: "Mangas, picos, espátulas y batidores.",
		products: []seedProduct{
			{name: "Manga Pastelera Descartable x10", description: "Mangas de 40 cm.", price: 2100, available: true},
			{name: "Pico 1M Estrella Abierta", description: "Pico de acero para rosetones.", price: 1300, available: true},
			{name: "Espátula Acodada 25 cm", description: "Espátula de acero con mango plástico.", price: 3300, available: true, featured: true},
			{name: "Batidor de Alambre 30 cm", description: "Batidor manual reforzado.", price: 2600, available: true},
		},
	},
}

type seedRecipe struct {
	title       string
	summary     string
	ingredients string
	steps       string
	body        string
}

var seedRecipes = []seedRecipe{
	{
		title:   "Brownie Húmedo",
		summary: "El brownie clásico, húmedo por dentro y crocante arriba.",
		ingredients: "200 g de cobertura semiamarga\n150 g de manteca\n" +
			"3 huevos\n200 g de azúcar\n80 g de harina 0000\n1 pizca de sal",
		steps: "1. Fundir el chocolate con la manteca a baño María.\n" +
			"2. Batir los huevos con el azúcar hasta blanquear.\n" +
			"3. Integrar el chocolate y luego la harina tamizada con la sal.\n" +
			"4. Hornear 25 minutos a 180 °C en molde de 24 cm.",
		body: "Para un corte prolijo, dejalo enfriar **por completo** antes de desmoldar.",
	},
	{
		title:       "Bombones Rellenos de Dulce de Leche",
		summary:     "Bombones templados con relleno cremoso.",
		ingredients: "300 g de baño de moldeo leche\n200 g de dulce de leche repostero",
		steps: "- Templar el chocolate.\n- Encamisar el molde de policarbonato.\n" +
			"- Rellenar con dulce de leche y tapar.\n- Refrigerar 20 minutos y desmoldar.",
		body: "El molde tiene que estar **limpio y seco**: cualquier gota de agua arruina el templado.",
	},
}

// Seed populates an empty catalog with development data. It does nothing
// when any category already exists.
func Seed(db *sql.DB) error {
	ctx := context.Background()

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}
	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed begin tx: %w", err)
	}
	defer tx.Rollback()

	brandIDs := make(map[string]uuid.UUID, len(seedBrands))
	for _, name := range seedBrands {
		var id uuid.UUID
		err := tx.QueryRowContext(ctx,
			`INSERT INTO brands (name, slug) VALUES ($1, $2) RETURNING id`,
			name, slug.Generate(name),
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("seed brand %q: %w", name, err)
		}
		brandIDs[name] = id
	}

	var products int
	for i, c := range seedCategories {
		var catID uuid.UUID
		err := tx.QueryRowContext(ctx,
			`INSERT INTO categories (name, slug, description, sort_order) VALUES ($1, $2, $3, $4) RETURNING id`,
			c.name, slug.Generate(c.name), c.description, i,
		).Scan(&catID)
		if err != nil {
			return fmt.Errorf("seed category %q: %w", c.name, err)
		}

		for _, p := range c.products {
			var brandID *uuid.UUID
			if id, ok := brandIDs[p.brand]; ok {
				brandID = &id
			}
			_, err := tx.ExecContext(ctx, `
				INSERT INTO products (name, slug, description, price, available, category_id, brand_id, featured)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			`, p.name, slug.Generate(p.name), p.description, p.price, p.available, catID, brandID, p.featured)
			if err != nil {
				return fmt.Errorf("seed product %q: %w", p.name, err)
			}
			products++
		}
	}

	for _, r := range seedRecipes {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO recipes (title, slug, summary, ingredients, steps, body, published)
			VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		`, r.title, slug.Generate(r.title), r.summary, r.ingredients, r.steps, r.body)
		if err != nil {
			return fmt.Errorf("seed recipe %q: %w", r.title, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO banners (title, subtitle, image_url, link_url, sort_order)
		VALUES ($1, $2, $3, $4, 0)
	`, "Todo para tu repostería", "Chocolates, moldes y decoración en un solo lugar.",
		"/static/img/banner-principal.jpg", "/productos")
	if err != nil {
		return fmt.Errorf("seed banner: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded",
		"categories", len(seedCategories),
		"products", products,
		"recipes", len(seedRecipes),
	)
	return nil
}
