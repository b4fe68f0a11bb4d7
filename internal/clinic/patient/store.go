// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package patient

import (
	"context"

	"github.com/Darigraye/MEPHI-practice/pkg/pagination"
)

// Repository defines the persistence contract for patients.
type Repository interface {

	// Create inserts a stamped patient and sets its ID.
	Create(context context.Context, patient *Patient) error

	FindByID(context context.Context, id int64) (*Patient, error)
	FindByHistoryNumber(context context.Context, number int64) (*Patient, error)

	// List returns current patients ordered by last and first name.
	// page.Search matches any name component.
	List(context context.Context, page pagination.Params) ([]*Patient, int, error)
}
