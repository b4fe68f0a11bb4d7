// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

// Package cellimagetest provides an in-memory cell image store for tests.
package cellimagetest

import (
	"context"
	"slices"
	"sync"

	"github.com/Darigraye/MEPHI-practice/internal/clinic/cellimage"
	"github.com/Darigraye/MEPHI-practice/internal/platform/apperr"
	"github.com/Darigraye/MEPHI-practice/pkg/pagination"
)

// Images is an in-memory [cellimage.Repository].
type Images struct {
	mu   sync.Mutex
	rows []*cellimage.CellImage
}

func NewImages() *Images {
	return &Images{}
}

func clone(image *cellimage.CellImage) *cellimage.CellImage {
	copied := *image
	copied.CharacteristicIDs = slices.Clone(image.CharacteristicIDs)
	return &copied
}

func (images *Images) Create(_ context.Context, image *cellimage.CellImage) error {
	images.mu.Lock()
	defer images.mu.Unlock()

	for _, existing := range images.rows {
		if existing.ImageKey == image.ImageKey {
			return apperr.Conflict("Record already exists: " + cellimage.ConstraintImageKey)
		}
	}
	image.ID = int64(len(images.rows) + 1)
	images.rows = append(images.rows, clone(image))
	return nil
}

func (images *Images) FindByID(_ context.Context, id int64) (*cellimage.CellImage, error) {
	images.mu.Lock()
	defer images.mu.Unlock()
	for _, image := range images.rows {
		if image.ID == id {
			return clone(image), nil
		}
	}
	return nil, apperr.NotFound("Cell image")
}

func (images *Images) ListByResearch(_ context.Context, researchID int64, page pagination.Params) ([]*cellimage.CellImage, int, error) {
	images.mu.Lock()
	defer images.mu.Unlock()

	var matched []*cellimage.CellImage
	for _, image := range images.rows {
		if image.ResearchID == researchID {
			matched = append(matched, clone(image))
		}
	}

	return pagination.Window(matched, page), len(matched), nil
}
