// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

// Package uuidv7 wraps google/uuid to generate time-ordered UUIDv7 values.
//
// User and session primary keys are UUIDv7 so that they sort by creation time
// in PostgreSQL B-tree indexes.
package uuidv7

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
//
// It panics only if the OS random source is unavailable.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuidv7: failed to generate UUID: " + err.Error())
	}

	return id.String()
}

// Valid reports whether s parses as a UUID of any version.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
