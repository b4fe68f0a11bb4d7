// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

/*
Package schema names the tables and columns of the al_* schema.

Stores build SQL from these descriptors instead of repeating string literals,
so a renamed column is a one-line change here:

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(schema.Patient.Columns(), ", "), schema.Patient.Table, schema.Patient.ID)
*/
package schema

// VersionColumns are the change-tracking columns shared by versioned tables.
type VersionColumns struct {
	ContentHash string
	ChangeState string
	ValidFrom   string
	ValidTo     string
}

// Version is the column set embedded by every versioned table.
var Version = VersionColumns{
	ContentHash: "content_hash",
	ChangeState: "change_state",
	ValidFrom:   "valid_from",
	ValidTo:     "valid_to",
}

// Columns returns the change-tracking columns in scan order.
func (v VersionColumns) Columns() []string {
	return []string{v.ContentHash, v.ChangeState, v.ValidFrom, v.ValidTo}
}

// Qualified prefixes every column with alias and a dot.
func Qualified(alias string, columns []string) []string {
	out := make([]string, len(columns))
	for i, column := range columns {
		out[i] = alias + "." + column
	}
	return out
}
