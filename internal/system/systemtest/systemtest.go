// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

// Package systemtest provides an in-memory journal for tests of packages
// that write to al_log.
package systemtest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Darigraye/MEPHI-practice/internal/platform/apperr"
	"github.com/Darigraye/MEPHI-practice/internal/system"
	"github.com/Darigraye/MEPHI-practice/pkg/pagination"
)

// Logs is an in-memory [system.LogRepository].
type Logs struct {
	mu      sync.Mutex
	entries []system.LogEntry

	// Fail, when set, is returned by every Insert.
	Fail error
}

// NewJournal returns a journal backed by a fresh [Logs].
func NewJournal() (*system.Journal, *Logs) {
	logs := &Logs{}
	return system.NewJournal(logs), logs
}

func (logs *Logs) Insert(_ context.Context, entry *system.LogEntry) error {
	logs.mu.Lock()
	defer logs.mu.Unlock()

	if logs.Fail != nil {
		return logs.Fail
	}
	entry.ID = int64(len(logs.entries) + 1)
	entry.CreatedAt = time.Now().UTC()
	logs.entries = append(logs.entries, *entry)
	return nil
}

func (logs *Logs) List(_ context.Context, filter system.LogFilter, page pagination.Params) ([]*system.LogEntry, int, error) {
	logs.mu.Lock()
	defer logs.mu.Unlock()

	var matched []*system.LogEntry
	for i := len(logs.entries) - 1; i >= 0; i-- {
		entry := logs.entries[i]
		if filter.Sender != "" && entry.Sender != filter.Sender {
			continue
		}
		if filter.Login != "" && entry.Login != filter.Login {
			continue
		}
		if filter.Type != "" && entry.Type != filter.Type {
			continue
		}
		matched = append(matched, &entry)
	}

	return pagination.Window(matched, page), len(matched), nil
}

// Entries returns a copy of everything written so far, oldest first.
func (logs *Logs) Entries() []system.LogEntry {
	logs.mu.Lock()
	defer logs.mu.Unlock()
	return append([]system.LogEntry(nil), logs.entries...)
}

// Actions returns "<action>:<status>" for each entry, oldest first.
func (logs *Logs) Actions() []string {
	var out []string
	for _, entry := range logs.Entries() {
		out = append(out, entry.Action+":"+string(entry.Status))
	}
	return out
}

// Reset drops everything written so far.
func (logs *Logs) Reset() {
	logs.mu.Lock()
	defer logs.mu.Unlock()
	logs.entries = nil
}

// Parameters is an in-memory [system.ParameterRepository].
type Parameters struct {
	mu     sync.Mutex
	byName map[string]*system.Parameter
}

func NewParameters() *Parameters {
	return &Parameters{byName: map[string]*system.Parameter{}}
}

func (parameters *Parameters) FindByName(_ context.Context, name string) (*system.Parameter, error) {
	parameters.mu.Lock()
	defer parameters.mu.Unlock()
	if p, ok := parameters.byName[name]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, apperr.NotFound("Parameter")
}

func (parameters *Parameters) List(_ context.Context, activeOnly bool) ([]*system.Parameter, error) {
	parameters.mu.Lock()
	defer parameters.mu.Unlock()

	var out []*system.Parameter
	for _, p := range parameters.byName {
		if activeOnly && !p.IsActive {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (parameters *Parameters) Upsert(_ context.Context, parameter *system.Parameter) error {
	parameters.mu.Lock()
	defer parameters.mu.Unlock()
	if existing, ok := parameters.byName[parameter.Name]; ok {
		parameter.ID = existing.ID
	} else {
		parameter.ID = int64(len(parameters.byName) + 1)
	}
	clone := *parameter
	parameters.byName[parameter.Name] = &clone
	return nil
}
