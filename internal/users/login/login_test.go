// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package login_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Darigraye/MEPHI-practice/internal/platform/apperr"
	"github.com/Darigraye/MEPHI-practice/internal/users/login"
)

func TestPrefix(t *testing.T) {
	tests := []struct {
		name login.Name
		want string
	}{
		{login.Name{"Иван", "Иванов", "Иванович"}, "iii_"},
		{login.Name{"Anna", "Smirnova", "Ivanovna"}, "asi_"},
		{login.Name{"Пётр", "Щукин", "Юрьевич"}, "psj_"},
		{login.Name{"Йосиф", "Ёлкин", "Юрьевич"}, "jjj_"},
		{login.Name{"Иосиф", "Елкин", "Юрьевич"}, "iej_"},
		{login.Name{"Харитон", "Цой", "Яковлевич"}, "hcj_"},
		{login.Name{"7", "Ivanov", "Ivanovich"}, "7ii_"},
	}

	for _, tt := range tests {
		got, err := login.Prefix(tt.name)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
		assert.Len(t, got, login.PrefixLen)
	}
}

/*
TestPrefix_RejectsInvalidComponents ensures derivation stops before any lookup
when a component is empty or has no Latin initial.
*/
func TestPrefix_RejectsInvalidComponents(t *testing.T) {
	_, err := login.Prefix(login.Name{First: "Иван", Last: "Иванов", Patronymic: ""})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	details := apperr.As(err).Details
	require.Len(t, details, 1)
	assert.Equal(t, "patronymic", details[0].Field)

	_, err = login.Prefix(login.Name{First: "", Last: "  ", Patronymic: "-"})
	require.Error(t, err)
	assert.Len(t, apperr.As(err).Details, 3)
}

func TestNext(t *testing.T) {
	assert.Equal(t, "iii_1", login.Next("iii_", 0, false))
	assert.Equal(t, "iii_2", login.Next("iii_", 1, true))
	assert.Equal(t, "iii_10", login.Next("iii_", 9, true))
}

func TestValidAndSplit(t *testing.T) {
	assert.True(t, login.Valid("iii_1"))
	assert.True(t, login.Valid("7ii_42"))
	assert.False(t, login.Valid("iii_0"))
	assert.False(t, login.Valid("ii_1"))
	assert.False(t, login.Valid("III_1"))

	prefix, suffix, ok := login.Split("asi_17")
	require.True(t, ok)
	assert.Equal(t, "asi_", prefix)
	assert.Equal(t, 17, suffix)

	_, _, ok = login.Split("asi_x")
	assert.False(t, ok)
	_, _, ok = login.Split("as_1")
	assert.False(t, ok)
}
