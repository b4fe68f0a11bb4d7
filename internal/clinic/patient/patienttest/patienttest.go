// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

// Package patienttest provides an in-memory patient store for tests.
package patienttest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/Darigraye/MEPHI-practice/internal/clinic/patient"
	"github.com/Darigraye/MEPHI-practice/internal/platform/apperr"
	"github.com/Darigraye/MEPHI-practice/pkg/pagination"
)

// Patients is an in-memory [patient.Repository].
type Patients struct {
	mu   sync.Mutex
	rows []*patient.Patient
}

func NewPatients() *Patients {
	return &Patients{}
}

func (patients *Patients) Create(_ context.Context, p *patient.Patient) error {
	patients.mu.Lock()
	defer patients.mu.Unlock()

	for _, existing := range patients.rows {
		if existing.HistoryNumber == p.HistoryNumber {
			return apperr.Conflict("Record already exists: " + patient.ConstraintHistoryNumber)
		}
	}
	p.ID = int64(len(patients.rows) + 1)
	clone := *p
	patients.rows = append(patients.rows, &clone)
	return nil
}

func (patients *Patients) find(match func(*patient.Patient) bool) (*patient.Patient, error) {
	patients.mu.Lock()
	defer patients.mu.Unlock()
	for _, p := range patients.rows {
		if match(p) {
			clone := *p
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Patient")
}

func (patients *Patients) FindByID(_ context.Context, id int64) (*patient.Patient, error) {
	return patients.find(func(p *patient.Patient) bool { return p.ID == id })
}

func (patients *Patients) FindByHistoryNumber(_ context.Context, number int64) (*patient.Patient, error) {
	return patients.find(func(p *patient.Patient) bool { return p.HistoryNumber == number })
}

func (patients *Patients) List(_ context.Context, page pagination.Params) ([]*patient.Patient, int, error) {
	patients.mu.Lock()
	defer patients.mu.Unlock()

	search := strings.ToLower(page.Search)
	var matched []*patient.Patient
	for _, p := range patients.rows {
		if search != "" {
			names := strings.ToLower(p.FirstName + " " + p.LastName + " " + p.Patronymic)
			if !strings.Contains(names, search) {
				continue
			}
		}
		clone := *p
		matched = append(matched, &clone)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].LastName != matched[j].LastName {
			return matched[i].LastName < matched[j].LastName
		}
		return matched[i].FirstName < matched[j].FirstName
	})

	return pagination.Window(matched, page), len(matched), nil
}
