// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

/*
Package patient manages versioned patient records.

Every patient is stamped on creation with a content hash over its business
fields in a fixed order:

	history number, first name, last name, patronymic, birth date, sex

The history number is the laboratory's external identifier and is unique.
*/
package patient

import (
	"time"

	"github.com/Darigraye/MEPHI-practice/internal/versioning"
)

// Sex is stored as 1 for male and 0 for female.
type Sex int16

const (
	SexFemale Sex = 0
	SexMale   Sex = 1
)

func (s Sex) Valid() bool {
	return s == SexFemale || s == SexMale
}

// Patient is a person whose material is researched.
type Patient struct {
	ID            int64     `json:"id"`
	HistoryNumber int64     `json:"history_number"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Patronymic    string    `json:"patronymic,omitempty"`
	BirthDate     time.Time `json:"birth_date"`
	Sex           Sex       `json:"sex"`
	CreatedBy     string    `json:"created_by"`

	versioning.Record
}

// BusinessFields implements [versioning.Versioned].
func (patient *Patient) BusinessFields() []any {
	return []any{
		patient.HistoryNumber,
		patient.FirstName,
		patient.LastName,
		patient.Patronymic,
		patient.BirthDate,
		int(patient.Sex),
	}
}

// # Constraints

const (
	MaxNameLength = 50

	// DateLayout is the wire format of birth dates.
	DateLayout = "2006-01-02"

	// ConstraintHistoryNumber guards al_patient.history_number.
	ConstraintHistoryNumber = "al_patient_history_number_key"
)

// # Field Identifiers

const (
	FieldID            = "id"
	FieldHistoryNumber = "history_number"
	FieldFirstName     = "first_name"
	FieldLastName      = "last_name"
	FieldPatronymic    = "patronymic"
	FieldBirthDate     = "birth_date"
	FieldSex           = "sex"
)

// journalSender identifies this package in al_log.
const journalSender = "patient"
