// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package system

import (
	"context"

	"github.com/Darigraye/MEPHI-practice/pkg/pagination"
)

// LogRepository persists journal entries.
type LogRepository interface {
	// Insert appends entry and fills its ID and CreatedAt.
	Insert(context context.Context, entry *LogEntry) error

	// List returns a page of entries, newest first, and the total match count.
	List(context context.Context, filter LogFilter, page pagination.Params) ([]*LogEntry, int, error)
}

// ParameterRepository persists system parameters.
type ParameterRepository interface {
	FindByName(context context.Context, name string) (*Parameter, error)
	List(context context.Context, activeOnly bool) ([]*Parameter, error)

	// Upsert creates the parameter or replaces its value and flags.
	Upsert(context context.Context, parameter *Parameter) error
}
