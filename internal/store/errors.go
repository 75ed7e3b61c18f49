// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"reposteria/internal/models"
)

// Postgres SQLSTATE codes the stores translate.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// constraintError maps unique and foreign key violations to model errors,
// keeping the driver error in the chain. onForeignKey picks the sentinel
// for a foreign key failure: inserts point at a missing row, deletes are
// blocked by a row that still references this one.
func constraintError(err error, onForeignKey error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return fmt.Errorf("%w: %w", models.ErrDuplicate, err)
	case pgForeignKeyViolation:
		return fmt.Errorf("%w: %w", onForeignKey, err)
	}
	return err
}
