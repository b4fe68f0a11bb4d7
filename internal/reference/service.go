// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package reference

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Darigraye/MEPHI-practice/internal/platform/apperr"
	"github.com/Darigraye/MEPHI-practice/internal/platform/validate"
	"github.com/Darigraye/MEPHI-practice/internal/system"
	"github.com/Darigraye/MEPHI-practice/internal/versioning"
	"github.com/Darigraye/MEPHI-practice/pkg/pagination"
	"github.com/Darigraye/MEPHI-practice/pkg/slice"
	"github.com/Darigraye/MEPHI-practice/pkg/slug"
)

// Service implements dictionary use cases.
type Service struct {
	repository Repository
	journal    *system.Journal
	now        func() time.Time
}

func NewService(repository Repository, journal *system.Journal) *Service {
	return &Service{repository: repository, journal: journal, now: time.Now}
}

// WithClock replaces the time source used for stamps and dates.
func (service *Service) WithClock(now func() time.Time) *Service {
	service.now = now
	return service
}

// CreateTermInput holds a new dictionary entry.
type CreateTermInput struct {
	Kind        Kind
	Name        string
	Description string
}

/*
CreateTerm validates, stamps and stores a term.

The code is derived from the name; two names that slug to the same code in
one dictionary conflict.
*/
func (service *Service) CreateTerm(context context.Context, input CreateTermInput) (*Term, error) {
	term := &Term{
		Kind:        input.Kind,
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
	}
	term.Code = slug.From(term.Name)

	validator := &validate.Validator{}
	validator.Custom(FieldKind, !term.Kind.Valid(), "must be one of marker, medication, cell_type, characteristic").
		Required(FieldName, term.Name).
		MaxLen(FieldName, term.Name, MaxNameLength).
		Custom(FieldName, term.Name != "" && term.Code == "", "must contain a letter or digit").
		MaxLen(FieldCode, term.Code, MaxCodeLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	term.Record = versioning.StampEntity(service.now(), term)

	err := service.journal.Track(context, journalSender, "create_term", func() (string, error) {
		if err := service.repository.Create(context, term); err != nil {
			return "", err
		}
		return fmt.Sprintf("kind=%s code=%s", term.Kind, term.Code), nil
	})
	if err != nil {
		if apperr.As(err) != nil {
			return nil, err
		}
		return nil, fmt.Errorf("reference_service_create_term_failed: %w", err)
	}

	return term, nil
}

// GetTerm returns a term by id.
func (service *Service) GetTerm(context context.Context, id int64) (*Term, error) {
	return service.repository.FindByID(context, id)
}

// GetTermByCode returns a term of the given kind by code.
func (service *Service) GetTermByCode(context context.Context, kind Kind, code string) (*Term, error) {
	if !kind.Valid() {
		return nil, apperr.NotFound("Dictionary")
	}
	return service.repository.FindByCode(context, kind, strings.ToLower(strings.TrimSpace(code)))
}

// ListTerms returns a page of terms of one kind.
func (service *Service) ListTerms(context context.Context, kind Kind, page pagination.Params) ([]*Term, int, error) {
	if !kind.Valid() {
		return nil, 0, apperr.NotFound("Dictionary")
	}

	terms, total, err := service.repository.List(context, kind, page)
	if err != nil {
		return nil, 0, fmt.Errorf("reference_service_list_terms_failed: %w", err)
	}
	return terms, total, nil
}

/*
RequireKind checks that every id names a current term of the given kind.

It is used by clinical services before they store references. field names
the request field reported in the validation error.
*/
func (service *Service) RequireKind(context context.Context, field string, kind Kind, ids ...int64) error {
	ids = slice.Unique(ids)
	if len(ids) == 0 {
		return nil
	}

	terms, err := service.repository.FindByIDs(context, ids)
	if err != nil {
		return fmt.Errorf("reference_service_require_kind_failed: %w", err)
	}

	found := make(map[int64]Kind, len(terms))
	for _, term := range terms {
		found[term.ID] = term.Kind
	}

	for _, id := range ids {
		if found[id] != kind {
			return validate.FieldError(field, fmt.Sprintf("term %d is not a %s", id, kind))
		}
	}
	return nil
}
