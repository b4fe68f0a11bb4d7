// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package patient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Darigraye/MEPHI-practice/internal/platform/apperr"
	"github.com/Darigraye/MEPHI-practice/internal/platform/ctxutil"
	"github.com/Darigraye/MEPHI-practice/internal/platform/dberr"
	"github.com/Darigraye/MEPHI-practice/internal/platform/validate"
	"github.com/Darigraye/MEPHI-practice/internal/system"
	"github.com/Darigraye/MEPHI-practice/internal/versioning"
	"github.com/Darigraye/MEPHI-practice/pkg/pagination"
)

// Service implements patient use cases.
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

// CreateInput holds a new patient as received from the client.
type CreateInput struct {
	HistoryNumber int64
	FirstName     string
	LastName      string
	Patronymic    string
	BirthDate     string // YYYY-MM-DD
	Sex           *int
}

func (input CreateInput) build(now time.Time) (*Patient, error) {
	patient := &Patient{
		HistoryNumber: input.HistoryNumber,
		FirstName:     strings.TrimSpace(input.FirstName),
		LastName:      strings.TrimSpace(input.LastName),
		Patronymic:    strings.TrimSpace(input.Patronymic),
	}

	validator := &validate.Validator{}
	validator.Custom(FieldHistoryNumber, patient.HistoryNumber <= 0, "must be a positive integer").
		Required(FieldFirstName, patient.FirstName).
		MaxLen(FieldFirstName, patient.FirstName, MaxNameLength).
		Required(FieldLastName, patient.LastName).
		MaxLen(FieldLastName, patient.LastName, MaxNameLength).
		MaxLen(FieldPatronymic, patient.Patronymic, MaxNameLength)

	birthDate, err := time.Parse(DateLayout, strings.TrimSpace(input.BirthDate))
	if err != nil {
		validator.Custom(FieldBirthDate, true, "must be a date in YYYY-MM-DD format")
	} else {
		patient.BirthDate = birthDate
		validator.NotFuture(FieldBirthDate, birthDate, now)
	}

	if input.Sex == nil {
		validator.Custom(FieldSex, true, "is required")
	} else {
		patient.Sex = Sex(*input.Sex)
		validator.Custom(FieldSex, !patient.Sex.Valid(), "must be 0 (female) or 1 (male)")
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}
	return patient, nil
}

/*
Create validates, stamps and stores a patient.

Returns:
  - *Patient: Stored patient with its change stamp
  - err: ValidationError, Conflict (history number taken) or storage errors
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Patient, error) {
	now := service.now().UTC()

	patient, err := input.build(now)
	if err != nil {
		return nil, err
	}

	patient.CreatedBy = ctxutil.GetActorLogin(context)
	patient.Record = versioning.StampEntity(now, patient)

	err = service.journal.Track(context, journalSender, "create_patient", func() (string, error) {
		if err := service.repository.Create(context, patient); err != nil {
			return "", err
		}
		return fmt.Sprintf("history_number=%d", patient.HistoryNumber), nil
	})
	if err != nil {
		if dberr.IsUniqueViolation(err, ConstraintHistoryNumber) {
			return nil, apperr.Conflict("Patient with this history number already exists").WithCause(err)
		}
		if apperr.As(err) != nil {
			return nil, err
		}
		return nil, fmt.Errorf("patient_service_create_failed: %w", err)
	}

	return patient, nil
}

// Get returns a patient by id.
func (service *Service) Get(context context.Context, id int64) (*Patient, error) {
	return service.repository.FindByID(context, id)
}

// GetByHistoryNumber returns a patient by history number.
func (service *Service) GetByHistoryNumber(context context.Context, number int64) (*Patient, error) {
	return service.repository.FindByHistoryNumber(context, number)
}

// List returns a page of patients.
func (service *Service) List(context context.Context, page pagination.Params) ([]*Patient, int, error) {
	patients, total, err := service.repository.List(context, page)
	if err != nil {
		return nil, 0, fmt.Errorf("patient_service_list_failed: %w", err)
	}
	return patients, total, nil
}
