// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package research

import (
	"context"

	"github.com/Darigraye/MEPHI-practice/pkg/pagination"
)

// Repository defines the persistence contract for research and its children.
type Repository interface {
	Create(context context.Context, research *Research) error
	FindByID(context context.Context, id int64) (*Research, error)

	// ListByPatient returns a patient's current researches, newest first.
	ListByPatient(context context.Context, patientID int64, page pagination.Params) ([]*Research, int, error)

	CreateDiagnosis(context context.Context, diagnosis *Diagnosis) error
	ListDiagnoses(context context.Context, researchID int64) ([]*Diagnosis, error)

	CreateImmunophenotyping(context context.Context, row *Immunophenotyping) error
	ListImmunophenotyping(context context.Context, researchID int64) ([]*Immunophenotyping, error)
}
