// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestProductValidate(t *testing.T) {
	cat := uuid.New()
	tests := []struct {
		name    string
		product Product
		want    error
	}{
		{"valid", Product{Name: "Cacao amargo", Price: 4200, CategoryID: cat}, nil},
		{"free item", Product{Name: "Muestra", Price: 0, CategoryID: cat}, nil},
		{"missing name", Product{Price: 10, CategoryID: cat}, ErrNameRequired},
		{"negative price", Product{Name: "Molde", Price: -1, CategoryID: cat}, ErrPriceInvalid},
		{"missing category", Product{Name: "Molde", Price: 10}, ErrCategoryRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.product.Validate()
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}
