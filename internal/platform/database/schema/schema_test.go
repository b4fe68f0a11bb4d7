// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Darigraye/MEPHI-practice/internal/platform/database/schema"
)

func TestVersionedTablesEndWithVersionColumns(t *testing.T) {
	for name, columns := range map[string][]string{
		schema.Patient.Table:   schema.Patient.Columns(),
		schema.Research.Table:  schema.Research.Columns(),
		schema.CellImage.Table: schema.CellImage.Columns(),
		schema.Term.Table:      schema.Term.Columns(),
	} {
		tail := columns[len(columns)-4:]
		assert.Equal(t, schema.Version.Columns(), tail, name)
	}
}

func TestQualified(t *testing.T) {
	assert.Equal(t, []string{"p.id", "p.sex"}, schema.Qualified("p", []string{"id", "sex"}))
}
