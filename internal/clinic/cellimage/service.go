// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package cellimage

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Darigraye/MEPHI-practice/internal/clinic/research"
	"github.com/Darigraye/MEPHI-practice/internal/platform/apperr"
	"github.com/Darigraye/MEPHI-practice/internal/platform/ctxutil"
	"github.com/Darigraye/MEPHI-practice/internal/platform/dberr"
	"github.com/Darigraye/MEPHI-practice/internal/platform/validate"
	"github.com/Darigraye/MEPHI-practice/internal/reference"
	"github.com/Darigraye/MEPHI-practice/internal/system"
	"github.com/Darigraye/MEPHI-practice/internal/versioning"
	"github.com/Darigraye/MEPHI-practice/pkg/pagination"
	"github.com/Darigraye/MEPHI-practice/pkg/slice"
)

// ResearchLookup resolves researches. Satisfied by [*research.Service].
type ResearchLookup interface {
	Find(context context.Context, id int64) (*research.Research, error)
}

// TermChecker verifies dictionary references. Satisfied by [*reference.Service].
type TermChecker interface {
	RequireKind(context context.Context, field string, kind reference.Kind, ids ...int64) error
}

// Service implements cell image use cases.
type Service struct {
	repository Repository
	researches ResearchLookup
	terms      TermChecker
	journal    *system.Journal
	now        func() time.Time
}

func NewService(repository Repository, researches ResearchLookup, terms TermChecker, journal *system.Journal) *Service {
	return &Service{repository: repository, researches: researches, terms: terms, journal: journal, now: time.Now}
}

// WithClock replaces the time source used for stamps and dates.
func (service *Service) WithClock(now func() time.Time) *Service {
	service.now = now
	return service
}

// CreateInput holds a new annotated image.
type CreateInput struct {
	ResearchID        int64
	CellTypeID        int64
	ImageKey          string
	Annotation        string
	CharacteristicIDs []int64
}

/*
Create validates, stamps and stores an annotated image.

Returns:
  - *CellImage: Stored image with its change stamp
  - err: ValidationError (unknown research or wrong term kinds), Conflict
    (image key already registered) or storage errors
*/
func (service *Service) Create(context context.Context, input CreateInput) (*CellImage, error) {
	image := &CellImage{
		ResearchID:        input.ResearchID,
		CellTypeID:        input.CellTypeID,
		ImageKey:          strings.TrimSpace(input.ImageKey),
		Annotation:        strings.TrimSpace(input.Annotation),
		CharacteristicIDs: slice.Unique(input.CharacteristicIDs),
	}
	if image.CharacteristicIDs == nil {
		image.CharacteristicIDs = []int64{}
	}
	slices.Sort(image.CharacteristicIDs)

	validator := &validate.Validator{}
	validator.Custom(FieldResearchID, image.ResearchID <= 0, "must be a positive integer").
		Custom(FieldCellTypeID, image.CellTypeID <= 0, "must be a positive integer").
		Required(FieldImageKey, image.ImageKey).
		MaxLen(FieldImageKey, image.ImageKey, MaxImageKeyLength).
		MaxLen(FieldAnnotation, image.Annotation, MaxAnnotationLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.researches.Find(context, image.ResearchID); err != nil {
		if apperr.IsNotFound(err) {
			return nil, validate.FieldError(FieldResearchID, "does not exist")
		}
		return nil, fmt.Errorf("cellimage_service_find_research_failed: %w", err)
	}

	if err := service.terms.RequireKind(context, FieldCellTypeID, reference.KindCellType, image.CellTypeID); err != nil {
		return nil, err
	}
	if err := service.terms.RequireKind(context, FieldCharacteristicIDs, reference.KindCharacteristic, image.CharacteristicIDs...); err != nil {
		return nil, err
	}

	image.CreatedBy = ctxutil.GetActorLogin(context)
	image.Record = versioning.StampEntity(service.now(), image)

	err := service.journal.Track(context, journalSender, "create_cell_image", func() (string, error) {
		if err := service.repository.Create(context, image); err != nil {
			return "", err
		}
		return fmt.Sprintf("research_id=%d image_key=%s", image.ResearchID, image.ImageKey), nil
	})
	if err != nil {
		if dberr.IsUniqueViolation(err, ConstraintImageKey) {
			return nil, apperr.Conflict("Image is already registered").WithCause(err)
		}
		if apperr.As(err) != nil {
			return nil, err
		}
		return nil, fmt.Errorf("cellimage_service_create_failed: %w", err)
	}

	return image, nil
}

// Get returns a cell image by id.
func (service *Service) Get(context context.Context, id int64) (*CellImage, error) {
	return service.repository.FindByID(context, id)
}

// ListByResearch returns a page of a research's images in upload order.
func (service *Service) ListByResearch(context context.Context, researchID int64, page pagination.Params) ([]*CellImage, int, error) {
	if _, err := service.researches.Find(context, researchID); err != nil {
		return nil, 0, err
	}

	images, total, err := service.repository.ListByResearch(context, researchID, page)
	if err != nil {
		return nil, 0, fmt.Errorf("cellimage_service_list_failed: %w", err)
	}
	return images, total, nil
}
