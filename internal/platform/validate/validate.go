// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

/*
Package validate collects field-level input errors into one VALIDATION_ERROR.

A service builds a [Validator] per operation, chains the rules its input
needs and returns [Validator.Err]:

	validator := &validate.Validator{}
	validator.Required(FieldLastName, input.LastName).
		MaxLen(FieldLastName, input.LastName, MaxNameLength).
		NotFuture(FieldBirthDate, birthDate, now)
	if err := validator.Err(); err != nil {
		return nil, err
	}

Rules never short-circuit, so the client sees every failing field at once.
Stores do not validate; they rely on the database constraints.
*/
package validate

import (
	"fmt"
	"net/mail"
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Darigraye/MEPHI-practice/internal/platform/apperr"
)

// phoneRegex accepts Russian-style numbers: +7 (999) 123-45-67, 89991234567.
var phoneRegex = regexp.MustCompile(`^\+?\d{1}[-\s]?\(?\d{3}\)?[-\s]?\d{3}([-\s]?\d{2}){2}$`)

// ErrInvalidJSON is returned when a request body cannot be decoded.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

const messageRequired = "This field is required"

// Validator accumulates failures. Use one per operation; it is not safe for
// concurrent use.
type Validator struct {
	errs []apperr.FieldError
}

// # Text

// Required fails on empty or whitespace-only values.
func (v *Validator) Required(field, value string) *Validator {
	return v.Custom(field, strings.TrimSpace(value) == "", messageRequired)
}

// MaxLen counts characters, not bytes, so Cyrillic names get the full width
// of their varchar column.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	return v.Custom(field, utf8.RuneCountInString(value) > max, fmt.Sprintf("Maximum %d characters", max))
}

func (v *Validator) MinLen(field, value string, min int) *Validator {
	return v.Custom(field, utf8.RuneCountInString(value) < min, fmt.Sprintf("Minimum %d characters", min))
}

// MaxBytes bounds the encoded length, for values handed to byte-limited
// algorithms such as bcrypt.
func (v *Validator) MaxBytes(field, value string, max int) *Validator {
	return v.Custom(field, len(value) > max, fmt.Sprintf("Maximum %d bytes", max))
}

func (v *Validator) Email(field, value string) *Validator {
	_, err := mail.ParseAddress(value)
	return v.Custom(field, err != nil, "Must be a valid email address")
}

func (v *Validator) Phone(field, value string) *Validator {
	return v.Custom(field, !phoneRegex.MatchString(value), "Must be a valid phone number")
}

// OneOf fails unless value is one of allowed.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	return v.Custom(field, !slices.Contains(allowed, value), "Must be one of: "+strings.Join(allowed, ", "))
}

// # Numbers and dates

// Range is inclusive on both ends.
func (v *Validator) Range(field string, value, min, max int) *Validator {
	return v.Custom(field, value < min || value > max, fmt.Sprintf("Must be between %d and %d", min, max))
}

// NotFuture treats the zero time as missing.
func (v *Validator) NotFuture(field string, value, now time.Time) *Validator {
	switch {
	case value.IsZero():
		v.add(field, messageRequired)
	case value.After(now):
		v.add(field, "Must not be in the future")
	}
	return v
}

// # Result

// Custom records message for field when failed is true.
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns nil when every rule passed.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// FieldError is a single-field VALIDATION_ERROR.
func FieldError(field, message string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{Field: field, Message: message})
}
