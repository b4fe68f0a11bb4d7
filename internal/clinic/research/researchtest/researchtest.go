// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

// Package researchtest provides an in-memory research store for tests.
package researchtest

import (
	"context"
	"sort"
	"sync"

	"github.com/Darigraye/MEPHI-practice/internal/clinic/research"
	"github.com/Darigraye/MEPHI-practice/internal/platform/apperr"
	"github.com/Darigraye/MEPHI-practice/pkg/pagination"
)

// Researches is an in-memory [research.Repository].
type Researches struct {
	mu        sync.Mutex
	rows      []*research.Research
	diagnoses []*research.Diagnosis
	panel     []*research.Immunophenotyping
}

func NewResearches() *Researches {
	return &Researches{}
}

func (store *Researches) Create(_ context.Context, r *research.Research) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	r.ID = int64(len(store.rows) + 1)
	clone := *r
	store.rows = append(store.rows, &clone)
	return nil
}

func (store *Researches) FindByID(_ context.Context, id int64) (*research.Research, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	for _, r := range store.rows {
		if r.ID == id {
			clone := *r
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Research")
}

func (store *Researches) ListByPatient(_ context.Context, patientID int64, page pagination.Params) ([]*research.Research, int, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	var matched []*research.Research
	for _, r := range store.rows {
		if r.PatientID == patientID {
			clone := *r
			matched = append(matched, &clone)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].ResearchDate.Equal(matched[j].ResearchDate) {
			return matched[i].ResearchDate.After(matched[j].ResearchDate)
		}
		return matched[i].ID > matched[j].ID
	})

	return pagination.Window(matched, page), len(matched), nil
}

func (store *Researches) CreateDiagnosis(_ context.Context, diagnosis *research.Diagnosis) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	diagnosis.ID = int64(len(store.diagnoses) + 1)
	clone := *diagnosis
	store.diagnoses = append(store.diagnoses, &clone)
	return nil
}

func (store *Researches) ListDiagnoses(_ context.Context, researchID int64) ([]*research.Diagnosis, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	out := []*research.Diagnosis{}
	for _, diagnosis := range store.diagnoses {
		if diagnosis.ResearchID == researchID {
			clone := *diagnosis
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (store *Researches) CreateImmunophenotyping(_ context.Context, row *research.Immunophenotyping) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	row.ID = int64(len(store.panel) + 1)
	clone := *row
	store.panel = append(store.panel, &clone)
	return nil
}

func (store *Researches) ListImmunophenotyping(_ context.Context, researchID int64) ([]*research.Immunophenotyping, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	out := []*research.Immunophenotyping{}
	for _, row := range store.panel {
		if row.ResearchID == researchID {
			clone := *row
			out = append(out, &clone)
		}
	}
	return out, nil
}
