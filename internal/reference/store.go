// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package reference

import (
	"context"

	"github.com/Darigraye/MEPHI-practice/pkg/pagination"
)

// Repository defines the persistence contract for dictionary terms.
type Repository interface {

	// Create inserts a stamped term. A duplicate (kind, code) is a Conflict.
	Create(context context.Context, term *Term) error

	// FindByID returns the current version of a term.
	FindByID(context context.Context, id int64) (*Term, error)

	// FindByCode returns the current version of a term within a dictionary.
	FindByCode(context context.Context, kind Kind, code string) (*Term, error)

	// FindByIDs returns the current terms among ids, in any order. Unknown ids are skipped.
	FindByIDs(context context.Context, ids []int64) ([]*Term, error)

	// List returns a page of current terms of one kind ordered by name.
	// page.Search filters on name and code.
	List(context context.Context, kind Kind, page pagination.Params) ([]*Term, int, error)
}
