// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package dberr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/Darigraye/MEPHI-practice/internal/platform/apperr"
	"github.com/Darigraye/MEPHI-practice/internal/platform/dberr"
)

func pgError(code, constraint string) error {
	return fmt.Errorf("exec: %w", &pgconn.PgError{Code: code, ConstraintName: constraint})
}

/*
TestWrap maps driver errors onto application error codes.
*/
func TestWrap(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"no_rows", pgx.ErrNoRows, apperr.CodeNotFound},
		{"unique", pgError(pgerrcode.UniqueViolation, "al_user_login_key"), apperr.CodeConflict},
		{"foreign_key", pgError(pgerrcode.ForeignKeyViolation, "al_user_category_fkey"), apperr.CodeValidation},
		{"check", pgError(pgerrcode.CheckViolation, "al_patient_sex_check"), apperr.CodeValidation},
		{"other", errors.New("connection reset"), apperr.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := dberr.Wrap(tt.err, "test_action")
			assert.True(t, apperr.HasCode(wrapped, tt.code))
			assert.ErrorIs(t, wrapped, tt.err)
		})
	}

	assert.NoError(t, dberr.Wrap(nil, "noop"))
}

/*
TestIsUniqueViolation checks constraint filtering.
*/
func TestIsUniqueViolation(t *testing.T) {
	err := pgError(pgerrcode.UniqueViolation, "al_user_login_key")

	assert.True(t, dberr.IsUniqueViolation(err))
	assert.True(t, dberr.IsUniqueViolation(err, "al_user_login_key"))
	assert.False(t, dberr.IsUniqueViolation(err, "al_user_email_key"))
	assert.False(t, dberr.IsUniqueViolation(errors.New("boom")))
}

/*
TestNotFound names the missing resource.
*/
func TestNotFound(t *testing.T) {
	err := dberr.NotFound(pgx.ErrNoRows, "get_patient", "Patient")
	ae := apperr.As(err)
	if assert.NotNil(t, ae) {
		assert.Equal(t, "Patient not found", ae.Message)
	}
}
