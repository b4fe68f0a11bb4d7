// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

/*
Package research manages patient research: the sampled material, the
diagnoses concluded from it and the immunophenotyping panel.

A research is versioned; its hash covers patient id, research date and
material. Diagnoses and immunophenotyping rows are append-only children.
*/
package research

import (
	"time"

	"github.com/Darigraye/MEPHI-practice/internal/versioning"
)

// Research is one examination of a patient's material.
type Research struct {
	ID           int64     `json:"id"`
	PatientID    int64     `json:"patient_id"`
	ResearchDate time.Time `json:"research_date"`
	Material     string    `json:"material"`
	CreatedBy    string    `json:"created_by"`

	versioning.Record
}

// BusinessFields implements [versioning.Versioned].
func (research *Research) BusinessFields() []any {
	return []any{research.PatientID, research.ResearchDate, research.Material}
}

// Diagnosis is a conclusion drawn from a research.
type Diagnosis struct {
	ID          int64     `json:"id"`
	ResearchID  int64     `json:"research_id"`
	Conclusion  string    `json:"conclusion"`
	DiagnosedAt time.Time `json:"diagnosed_at"`
	CreatedBy   string    `json:"created_by"`
}

// Immunophenotyping is the share of cells positive for a marker under a medication.
type Immunophenotyping struct {
	ID              int64 `json:"id"`
	ResearchID      int64 `json:"research_id"`
	MarkerID        int64 `json:"marker_id"`
	MedicationID    int64 `json:"medication_id"`
	PositivePercent int   `json:"percent_positive_cells"`
}

// Detail is a research together with its children.
type Detail struct {
	*Research
	Diagnoses         []*Diagnosis         `json:"diagnoses"`
	Immunophenotyping []*Immunophenotyping `json:"immunophenotyping"`
}

// # Constraints

const (
	MaxMaterialLength   = 255
	MaxConclusionLength = 10000

	// DateLayout is the wire format of research dates.
	DateLayout = "2006-01-02"
)

// # Field Identifiers

const (
	FieldID              = "id"
	FieldPatientID       = "patient_id"
	FieldResearchDate    = "research_date"
	FieldMaterial        = "material"
	FieldConclusion      = "conclusion"
	FieldMarkerID        = "marker_id"
	FieldMedicationID    = "medication_id"
	FieldPositivePercent = "percent_positive_cells"
)

// journalSender identifies this package in al_log.
const journalSender = "research"
