// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

// Package referencetest provides an in-memory dictionary for tests.
package referencetest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/Darigraye/MEPHI-practice/internal/platform/apperr"
	"github.com/Darigraye/MEPHI-practice/internal/reference"
	"github.com/Darigraye/MEPHI-practice/pkg/pagination"
)

// Terms is an in-memory [reference.Repository].
type Terms struct {
	mu    sync.Mutex
	terms []*reference.Term
}

func NewTerms() *Terms {
	return &Terms{}
}

func (terms *Terms) Create(_ context.Context, term *reference.Term) error {
	terms.mu.Lock()
	defer terms.mu.Unlock()

	for _, existing := range terms.terms {
		if existing.Kind == term.Kind && existing.Code == term.Code {
			return apperr.Conflict("Record already exists: al_term_kind_code_key")
		}
	}
	term.ID = int64(len(terms.terms) + 1)
	clone := *term
	terms.terms = append(terms.terms, &clone)
	return nil
}

func (terms *Terms) FindByID(_ context.Context, id int64) (*reference.Term, error) {
	terms.mu.Lock()
	defer terms.mu.Unlock()
	for _, term := range terms.terms {
		if term.ID == id {
			clone := *term
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Term")
}

func (terms *Terms) FindByCode(_ context.Context, kind reference.Kind, code string) (*reference.Term, error) {
	terms.mu.Lock()
	defer terms.mu.Unlock()
	for _, term := range terms.terms {
		if term.Kind == kind && term.Code == code {
			clone := *term
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Term")
}

func (terms *Terms) FindByIDs(_ context.Context, ids []int64) ([]*reference.Term, error) {
	terms.mu.Lock()
	defer terms.mu.Unlock()

	out := []*reference.Term{}
	for _, id := range ids {
		for _, term := range terms.terms {
			if term.ID == id {
				clone := *term
				out = append(out, &clone)
			}
		}
	}
	return out, nil
}

func (terms *Terms) List(_ context.Context, kind reference.Kind, page pagination.Params) ([]*reference.Term, int, error) {
	terms.mu.Lock()
	defer terms.mu.Unlock()

	search := strings.ToLower(page.Search)
	var matched []*reference.Term
	for _, term := range terms.terms {
		if term.Kind != kind {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(term.Name), search) && !strings.Contains(term.Code, search) {
			continue
		}
		clone := *term
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })

	return pagination.Window(matched, page), len(matched), nil
}

// Seed stores a term directly and returns its id.
func (terms *Terms) Seed(kind reference.Kind, code, name string) int64 {
	term := &reference.Term{Kind: kind, Code: code, Name: name}
	if err := terms.Create(context.Background(), term); err != nil {
		panic(err)
	}
	return term.ID
}
