// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package versioning_test

import (
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Darigraye/MEPHI-practice/internal/versioning"
)

var hexDigest = regexp.MustCompile(`^[0-9a-f]{32}$`)

func birthDate() time.Time {
	return time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)
}

/*
TestHash_PatientDigest pins the digest of a reference patient tuple so that
a change in canonical rendering is caught immediately.
*/
func TestHash_PatientDigest(t *testing.T) {
	digest := versioning.Hash(42, "Anna", "Smirnova", "Ivanovna", birthDate(), 0)

	assert.Regexp(t, hexDigest, digest)
	assert.Equal(t, "0a29e394c3241da78238ae2bdf1af861", digest)

	// Date given as a string renders identically
	assert.Equal(t, digest, versioning.Hash(42, "Anna", "Smirnova", "Ivanovna", "1990-01-01", 0))
}

func TestHash_FieldChangeAltersDigest(t *testing.T) {
	base := versioning.Hash(42, "Anna", "Smirnova", "Ivanovna", birthDate(), 0)
	changed := versioning.Hash(43, "Anna", "Smirnova", "Ivanovna", birthDate(), 0)

	assert.Equal(t, "5720e0b9d601737aec6b1ccb352d2200", changed)
	assert.NotEqual(t, base, changed)
}

func TestHash_Empty(t *testing.T) {
	assert.Equal(t, "7f9c2ba4e88f827d616045507605853e", versioning.Hash())
	assert.Equal(t, versioning.Hash(), versioning.Hash(nil, ""))
}

func TestCanonical(t *testing.T) {
	withTime := time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC)
	var nilString *string
	text := "x"

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "Anna", "Anna"},
		{"nil string pointer", nilString, ""},
		{"string pointer", &text, "x"},
		{"int", 42, "42"},
		{"int64", int64(-7), "-7"},
		{"bool true", true, "1"},
		{"bool false", false, "0"},
		{"date", birthDate(), "1990-01-01"},
		{"timestamp", withTime, "2024-03-05T14:30:00Z"},
		{"stringer", versioning.Modified, "MODIFIED"},
		{"float fallback", 12.5, "12.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, versioning.Canonical(tt.in))
		})
	}
}

type fakePatient struct {
	history int64
	first   string
}

func (p fakePatient) BusinessFields() []any { return []any{p.history, p.first} }

/*
TestStamp verifies the initial stamp: ADDED, open validity and a hash over
the given fields. Stamp must be pure.
*/
func TestStamp(t *testing.T) {
	now := time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC)

	first := versioning.Stamp(now, 42, "Anna")
	second := versioning.Stamp(now, 42, "Anna")

	assert.Equal(t, first, second)
	assert.Equal(t, versioning.Added, first.ChangeState)
	assert.Equal(t, now, first.ValidFrom)
	assert.Nil(t, first.ValidTo)
	assert.True(t, first.Current())
	assert.True(t, first.Matches(42, "Anna"))
	assert.False(t, first.Matches(43, "Anna"))

	entity := versioning.StampEntity(now, fakePatient{history: 42, first: "Anna"})
	assert.Equal(t, first, entity)
}

func TestChangeState_Transitions(t *testing.T) {
	tests := []struct {
		from, to versioning.ChangeState
		ok       bool
	}{
		{versioning.Added, versioning.Modified, true},
		{versioning.Added, versioning.Deleted, true},
		{versioning.Modified, versioning.Modified, true},
		{versioning.Modified, versioning.Deleted, true},
		{versioning.Added, versioning.Added, false},
		{versioning.Deleted, versioning.Modified, false},
		{versioning.Deleted, versioning.Deleted, false},
		{versioning.ChangeState(9), versioning.Deleted, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.ok, tt.from.CanTransition(tt.to), "%s -> %s", tt.from, tt.to)

		next, err := tt.from.Transition(tt.to)
		if tt.ok {
			require.NoError(t, err)
			assert.Equal(t, tt.to, next)
		} else {
			require.Error(t, err)
			assert.Equal(t, tt.from, next)
		}
	}
}

func TestChangeState_Names(t *testing.T) {
	for _, state := range []versioning.ChangeState{versioning.Added, versioning.Modified, versioning.Deleted} {
		parsed, err := versioning.ParseChangeState(state.String())
		require.NoError(t, err)
		assert.Equal(t, state, parsed)
	}

	_, err := versioning.ParseChangeState("ARCHIVED")
	assert.Error(t, err)
	assert.False(t, versioning.ChangeState(3).Valid())
	assert.Equal(t, "ChangeState(3)", versioning.ChangeState(3).String())

	raw, err := json.Marshal(versioning.Record{ChangeState: versioning.Added})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"change_state":"ADDED"`)

	var decoded versioning.Record
	require.NoError(t, json.Unmarshal([]byte(`{"change_state":"DELETED"}`), &decoded))
	assert.Equal(t, versioning.Deleted, decoded.ChangeState)
	assert.Error(t, json.Unmarshal([]byte(`{"change_state":"ARCHIVED"}`), &decoded))
}
