// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

/*
Package login derives user logins from full names.

A login is the lower-cased Latin initials of first name, last name and
patronymic, an underscore, then a sequence number:

	Иван Иванов Иванович -> iii_1, iii_2, ...

The sequence is the highest suffix ever issued for the prefix plus one, so a
number is never reused even after the owning account is soft-deleted.
*/
package login

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Darigraye/MEPHI-practice/internal/platform/apperr"
	"github.com/Darigraye/MEPHI-practice/pkg/translit"
)

// PrefixLen is the length of "<i1><i2><i3>_". The suffix starts right after it.
const PrefixLen = 4

var loginPattern = regexp.MustCompile(`^[a-z0-9]{3}_[1-9][0-9]*$`)

// Name is the person-name tuple a login is derived from.
type Name struct {
	First      string
	Last       string
	Patronymic string
}

// Prefix returns "<i1><i2><i3>_" for name.
//
// Every component must be non-empty and transliterate to something starting
// with a Latin letter or digit; otherwise a validation error naming the
// offending fields is returned.
func Prefix(name Name) (string, error) {
	components := []struct {
		field string
		value string
	}{
		{"first_name", name.First},
		{"last_name", name.Last},
		{"patronymic", name.Patronymic},
	}

	var builder strings.Builder
	var details []apperr.FieldError

	for _, component := range components {
		if strings.TrimSpace(component.value) == "" {
			details = append(details, apperr.FieldError{Field: component.field, Message: "must not be empty"})
			continue
		}

		initial, ok := translit.Initial(component.value)
		if !ok {
			details = append(details, apperr.FieldError{Field: component.field, Message: "must start with a letter or digit"})
			continue
		}
		builder.WriteByte(initial)
	}

	if len(details) > 0 {
		return "", apperr.ValidationError("Cannot derive login from name", details...)
	}

	builder.WriteByte('_')
	return builder.String(), nil
}

// Next composes the login following max for prefix. When no login with the
// prefix exists (found is false) the sequence starts at 1.
func Next(prefix string, max int, found bool) string {
	if !found || max < 0 {
		return prefix + "1"
	}
	return prefix + strconv.Itoa(max+1)
}

// Valid reports whether s has the shape of a derived login.
func Valid(s string) bool {
	return loginPattern.MatchString(s)
}

// Split separates a login into its prefix and numeric suffix.
func Split(s string) (prefix string, suffix int, ok bool) {
	if len(s) <= PrefixLen || s[PrefixLen-1] != '_' {
		return "", 0, false
	}

	n, err := strconv.Atoi(s[PrefixLen:])
	if err != nil || n < 0 {
		return "", 0, false
	}
	return s[:PrefixLen], n, true
}
