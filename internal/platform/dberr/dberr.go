// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
)

// Wrap inspects a database error and converts it into an [apperr.AppError].
//
// The resource name is used for NOT_FOUND messages ("Genre not found") and the
// action names the failing operation in the logged cause.
//
// # Classification
//
//   - pgx.ErrNoRows            → NotFound(resource)
//   - 23503 foreign_key_violation → Conflict (a reference changed under us)
//   - 23505 unique_violation      → Conflict
//   - anything else               → Internal
func Wrap(err error, resource, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	// 2. Constraint violations carry a SQLSTATE
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case pgerrcode.ForeignKeyViolation:
			return apperr.Conflict(resource+" is referenced by other records", fmt.Errorf("%s: %w", action, err))
		case pgerrcode.UniqueViolation:
			return apperr.Conflict(resource+" already exists", fmt.Errorf("%s: %w", action, err))
		}
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}
