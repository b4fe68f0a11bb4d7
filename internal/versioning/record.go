// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

/*
Package versioning stamps business records with change-tracking metadata.

Every versioned row in the al_* schema carries four columns: content_hash,
change_state, valid_from and valid_to. [Record] holds them and is embedded by
composition in the entity structs:

	type Patient struct {
		ID int64
		...
		versioning.Record
	}

Before insert a service calls [Stamp] with the entity's business fields in
their fixed order. Only the initial stamp (ADDED, open-ended validity) is
produced today; superseding a version is left to a future history table.
*/
package versioning

import "time"

// Record is the change-tracking stamp shared by versioned entities.
type Record struct {
	ContentHash string      `json:"content_hash"`
	ChangeState ChangeState `json:"change_state"`
	ValidFrom   time.Time   `json:"valid_from"`
	ValidTo     *time.Time  `json:"valid_to"`
}

// Versioned is implemented by entities that can be stamped. BusinessFields
// returns the hashed fields in their fixed order.
type Versioned interface {
	BusinessFields() []any
}

// Stamp builds the initial stamp for a new record. It is pure: the same now
// and fields always yield the same Record.
func Stamp(now time.Time, fields ...any) Record {
	return Record{
		ContentHash: Hash(fields...),
		ChangeState: Added,
		ValidFrom:   now.UTC(),
		ValidTo:     nil,
	}
}

// StampEntity is [Stamp] over v.BusinessFields().
func StampEntity(now time.Time, v Versioned) Record {
	return Stamp(now, v.BusinessFields()...)
}

// Current reports whether the record version is still open.
func (r Record) Current() bool {
	return r.ValidTo == nil
}

// Matches reports whether fields hash to the stored content hash.
func (r Record) Matches(fields ...any) bool {
	return r.ContentHash == Hash(fields...)
}
