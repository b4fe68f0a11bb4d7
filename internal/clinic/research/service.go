// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package research

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Darigraye/MEPHI-practice/internal/clinic/patient"
	"github.com/Darigraye/MEPHI-practice/internal/platform/apperr"
	"github.com/Darigraye/MEPHI-practice/internal/platform/ctxutil"
	"github.com/Darigraye/MEPHI-practice/internal/platform/validate"
	"github.com/Darigraye/MEPHI-practice/internal/reference"
	"github.com/Darigraye/MEPHI-practice/internal/system"
	"github.com/Darigraye/MEPHI-practice/internal/versioning"
	"github.com/Darigraye/MEPHI-practice/pkg/pagination"
)

// # Collaborators

// PatientLookup resolves patients. Satisfied by [*patient.Service].
type PatientLookup interface {
	Get(context context.Context, id int64) (*patient.Patient, error)
}

// TermChecker verifies dictionary references. Satisfied by [*reference.Service].
type TermChecker interface {
	RequireKind(context context.Context, field string, kind reference.Kind, ids ...int64) error
}

// Service implements research use cases.
type Service struct {
	repository Repository
	patients   PatientLookup
	terms      TermChecker
	journal    *system.Journal
	now        func() time.Time
}

func NewService(repository Repository, patients PatientLookup, terms TermChecker, journal *system.Journal) *Service {
	return &Service{repository: repository, patients: patients, terms: terms, journal: journal, now: time.Now}
}

// WithClock replaces the time source used for stamps and dates.
func (service *Service) WithClock(now func() time.Time) *Service {
	service.now = now
	return service
}

func (service *Service) track(context context.Context, action, op string, fn func() (string, error)) error {
	err := service.journal.Track(context, journalSender, action, fn)
	if err != nil && apperr.As(err) == nil {
		return fmt.Errorf("research_service_%s_failed: %w", op, err)
	}
	return err
}

// # Research

// CreateInput holds a new research.
type CreateInput struct {
	PatientID    int64
	ResearchDate string // YYYY-MM-DD
	Material     string
}

/*
Create validates, stamps and stores a research for an existing patient.

An unknown patient is reported as a validation error on patient_id.
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Research, error) {
	now := service.now().UTC()

	research := &Research{
		PatientID: input.PatientID,
		Material:  strings.TrimSpace(input.Material),
	}

	validator := &validate.Validator{}
	validator.Custom(FieldPatientID, research.PatientID <= 0, "must be a positive integer").
		Required(FieldMaterial, research.Material).
		MaxLen(FieldMaterial, research.Material, MaxMaterialLength)

	date, err := time.Parse(DateLayout, strings.TrimSpace(input.ResearchDate))
	if err != nil {
		validator.Custom(FieldResearchDate, true, "must be a date in YYYY-MM-DD format")
	} else {
		research.ResearchDate = date
		validator.NotFuture(FieldResearchDate, date, now)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.patients.Get(context, research.PatientID); err != nil {
		if apperr.IsNotFound(err) {
			return nil, validate.FieldError(FieldPatientID, "does not exist")
		}
		return nil, fmt.Errorf("research_service_find_patient_failed: %w", err)
	}

	research.CreatedBy = ctxutil.GetActorLogin(context)
	research.Record = versioning.StampEntity(now, research)

	err = service.track(context, "create_research", "create", func() (string, error) {
		if err := service.repository.Create(context, research); err != nil {
			return "", err
		}
		return fmt.Sprintf("patient_id=%d research_id=%d", research.PatientID, research.ID), nil
	})
	if err != nil {
		return nil, err
	}
	return research, nil
}

// Find returns the current research without its children.
func (service *Service) Find(context context.Context, id int64) (*Research, error) {
	return service.repository.FindByID(context, id)
}

// Get returns a research with its diagnoses and immunophenotyping rows.
func (service *Service) Get(context context.Context, id int64) (*Detail, error) {
	research, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	diagnoses, err := service.repository.ListDiagnoses(context, id)
	if err != nil {
		return nil, fmt.Errorf("research_service_list_diagnoses_failed: %w", err)
	}

	panel, err := service.repository.ListImmunophenotyping(context, id)
	if err != nil {
		return nil, fmt.Errorf("research_service_list_immunophenotyping_failed: %w", err)
	}

	return &Detail{Research: research, Diagnoses: diagnoses, Immunophenotyping: panel}, nil
}

// ListByPatient returns a page of a patient's researches.
func (service *Service) ListByPatient(context context.Context, patientID int64, page pagination.Params) ([]*Research, int, error) {
	if _, err := service.patients.Get(context, patientID); err != nil {
		return nil, 0, err
	}

	researches, total, err := service.repository.ListByPatient(context, patientID, page)
	if err != nil {
		return nil, 0, fmt.Errorf("research_service_list_failed: %w", err)
	}
	return researches, total, nil
}

// # Diagnoses

// AddDiagnosis records a conclusion for a research.
func (service *Service) AddDiagnosis(context context.Context, researchID int64, conclusion string) (*Diagnosis, error) {
	diagnosis := &Diagnosis{
		ResearchID:  researchID,
		Conclusion:  strings.TrimSpace(conclusion),
		DiagnosedAt: service.now().UTC(),
		CreatedBy:   ctxutil.GetActorLogin(context),
	}

	validator := &validate.Validator{}
	validator.Required(FieldConclusion, diagnosis.Conclusion).
		MaxLen(FieldConclusion, diagnosis.Conclusion, MaxConclusionLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.repository.FindByID(context, researchID); err != nil {
		return nil, err
	}

	err := service.track(context, "add_diagnosis", "add_diagnosis", func() (string, error) {
		if err := service.repository.CreateDiagnosis(context, diagnosis); err != nil {
			return "", err
		}
		return fmt.Sprintf("research_id=%d", researchID), nil
	})
	if err != nil {
		return nil, err
	}
	return diagnosis, nil
}

// # Immunophenotyping

// ImmunophenotypingInput holds one panel row.
type ImmunophenotypingInput struct {
	MarkerID        int64
	MedicationID    int64
	PositivePercent *int
}

/*
AddImmunophenotyping records the share of cells positive for a marker.

The marker must be a marker term, the medication a medication term, and the
percentage within 0..100.
*/
func (service *Service) AddImmunophenotyping(context context.Context, researchID int64, input ImmunophenotypingInput) (*Immunophenotyping, error) {
	validator := &validate.Validator{}
	validator.Custom(FieldMarkerID, input.MarkerID <= 0, "must be a positive integer").
		Custom(FieldMedicationID, input.MedicationID <= 0, "must be a positive integer")

	if input.PositivePercent == nil {
		validator.Custom(FieldPositivePercent, true, "is required")
	} else {
		validator.Range(FieldPositivePercent, *input.PositivePercent, 0, 100)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.repository.FindByID(context, researchID); err != nil {
		return nil, err
	}

	if err := service.terms.RequireKind(context, FieldMarkerID, reference.KindMarker, input.MarkerID); err != nil {
		return nil, err
	}
	if err := service.terms.RequireKind(context, FieldMedicationID, reference.KindMedication, input.MedicationID); err != nil {
		return nil, err
	}

	row := &Immunophenotyping{
		ResearchID:      researchID,
		MarkerID:        input.MarkerID,
		MedicationID:    input.MedicationID,
		PositivePercent: *input.PositivePercent,
	}

	err := service.track(context, "add_immunophenotyping", "add_immunophenotyping", func() (string, error) {
		if err := service.repository.CreateImmunophenotyping(context, row); err != nil {
			return "", err
		}
		return fmt.Sprintf("research_id=%d marker_id=%d", researchID, row.MarkerID), nil
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}
