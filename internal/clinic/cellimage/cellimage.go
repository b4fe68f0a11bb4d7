// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

/*
Package cellimage stores annotated microscope images of cells.

The image itself lives elsewhere; a row carries its opaque storage key, the
cell type it shows, free-text annotation and a set of characteristic terms.
Rows are versioned; the hash covers research id, cell type id, image key and
annotation.
*/
package cellimage

import (
	"github.com/Darigraye/MEPHI-practice/internal/versioning"
)

// CellImage is one annotated image taken during a research.
type CellImage struct {
	ID                int64   `json:"id"`
	ResearchID        int64   `json:"research_id"`
	CellTypeID        int64   `json:"cell_type_id"`
	ImageKey          string  `json:"image_key"`
	Annotation        string  `json:"annotation"`
	CharacteristicIDs []int64 `json:"characteristic_ids"`
	CreatedBy         string  `json:"created_by"`

	versioning.Record
}

// BusinessFields implements [versioning.Versioned].
func (image *CellImage) BusinessFields() []any {
	return []any{image.ResearchID, image.CellTypeID, image.ImageKey, image.Annotation}
}

const (
	MaxImageKeyLength   = 512
	MaxAnnotationLength = 10000

	// ConstraintImageKey guards against registering one stored image twice.
	ConstraintImageKey = "al_cell_image_image_key_key"
)

const (
	FieldID                = "id"
	FieldResearchID        = "research_id"
	FieldCellTypeID        = "cell_type_id"
	FieldImageKey          = "image_key"
	FieldAnnotation        = "annotation"
	FieldCharacteristicIDs = "characteristic_ids"
)

const journalSender = "cell_image"
