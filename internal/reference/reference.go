// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

/*
Package reference manages the laboratory dictionaries shared by clinical
records.

# Dictionaries

  - marker:         immunophenotyping markers (CD34, CD117, ...)
  - medication:     medications referenced by immunophenotyping rows
  - cell_type:      cell types assigned to annotated images
  - characteristic: morphological characteristics attached to images

All four live in one versioned table (al_term) keyed by (kind, code). The
code is the slug of the transliterated name, so "Лимфоцит" is addressed as
"limfocit".
*/
package reference

import (
	"strings"

	"github.com/Darigraye/MEPHI-practice/internal/versioning"
)

// Kind names a dictionary.
type Kind string

const (
	KindMarker         Kind = "marker"
	KindMedication     Kind = "medication"
	KindCellType       Kind = "cell_type"
	KindCharacteristic Kind = "characteristic"
)

// Kinds lists every dictionary in display order.
var Kinds = []Kind{KindMarker, KindMedication, KindCellType, KindCharacteristic}

// Valid reports whether k names a known dictionary.
func (k Kind) Valid() bool {
	switch k {
	case KindMarker, KindMedication, KindCellType, KindCharacteristic:
		return true
	}
	return false
}

// ParseKind accepts the path form of a kind, where "cell-type" and
// "cell_type" are equivalent.
func ParseKind(s string) (Kind, bool) {
	kind := Kind(strings.ReplaceAll(strings.ToLower(s), "-", "_"))
	return kind, kind.Valid()
}

// Term is one dictionary entry.
type Term struct {
	ID          int64  `json:"id"`
	Kind        Kind   `json:"kind"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`

	versioning.Record
}

// BusinessFields implements [versioning.Versioned]. Order: kind, name, description.
func (term *Term) BusinessFields() []any {
	return []any{string(term.Kind), term.Name, term.Description}
}

// # Limits

const (
	MaxNameLength = 255
	MaxCodeLength = 128
)

// # Field Identifiers

const (
	FieldKind        = "kind"
	FieldCode        = "code"
	FieldName        = "name"
	FieldDescription = "description"
	FieldID          = "id"
)

// journalSender identifies this package in al_log.
const journalSender = "reference"
