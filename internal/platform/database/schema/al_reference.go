// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package schema

// TermTable represents the 'al_term' dictionary table.
type TermTable struct {
	Table       string
	ID          string
	Kind        string
	Code        string
	Name        string
	Description string
}

// Term is the schema definition for al_term.
var Term = TermTable{
	Table:       "al_term",
	ID:          "id",
	Kind:        "kind",
	Code:        "code",
	Name:        "name",
	Description: "description",
}

func (t TermTable) Columns() []string {
	return append([]string{t.ID, t.Kind, t.Code, t.Name, t.Description}, Version.Columns()...)
}
