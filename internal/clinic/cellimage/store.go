// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package cellimage

import (
	"context"

	"github.com/Darigraye/MEPHI-practice/pkg/pagination"
)

// Repository defines the persistence contract for cell images.
type Repository interface {
	// Create stores the image and its characteristic links atomically.
	Create(context context.Context, image *CellImage) error
	FindByID(context context.Context, id int64) (*CellImage, error)
	ListByResearch(context context.Context, researchID int64, page pagination.Params) ([]*CellImage, int, error)
}
