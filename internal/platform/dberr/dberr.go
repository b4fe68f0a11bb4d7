// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Darigraye/MEPHI-practice/internal/platform/apperr"
)

// ErrNotFound is returned when a queried row doesn't exist.
var ErrNotFound = apperr.NotFound("Resource")

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
//
// The action names the failed operation and travels in the cause for logging.
//
//   - pgx.ErrNoRows           -> NOT_FOUND
//   - 23505 unique_violation  -> CONFLICT
//   - 23503 foreign_key       -> VALIDATION_ERROR
//   - 23514 check_violation   -> VALIDATION_ERROR
//   - anything else           -> INTERNAL_ERROR
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	cause := fmt.Errorf("%s: %w", action, err)

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound.WithCause(cause)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict("Record already exists: " + pgErr.ConstraintName).WithCause(cause)
		case pgerrcode.ForeignKeyViolation:
			return apperr.ValidationError("Referenced record does not exist").WithCause(cause)
		case pgerrcode.CheckViolation:
			return apperr.ValidationError("Value violates a check constraint").WithCause(cause)
		}
	}

	return apperr.Internal(cause)
}

// NotFound is like [Wrap] but names the missing resource.
func NotFound(err error, action, resource string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource).WithCause(fmt.Errorf("%s: %w", action, err))
	}
	return Wrap(err, action)
}

// IsUniqueViolation reports whether err is a Postgres unique_violation,
// optionally restricted to the named constraints.
func IsUniqueViolation(err error, constraints ...string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return false
	}
	if len(constraints) == 0 {
		return true
	}
	for _, name := range constraints {
		if pgErr.ConstraintName == name {
			return true
		}
	}
	return false
}
