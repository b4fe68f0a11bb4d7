// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

// Package slug generates ASCII codes from arbitrary Unicode strings.
//
// Reference terms are addressed by slug (e.g. "cd34" or "limfocit") so that
// codes stay stable and readable whatever script the term was entered in.
package slug

import (
	"regexp"
	"strings"

	"github.com/Darigraye/MEPHI-practice/pkg/translit"
)

var (
	// nonAlphanumeric matches any sequence of non-alphanumeric, non-hyphen characters.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9-]+`)
	// multiHyphen collapses multiple consecutive hyphens into one.
	multiHyphen = regexp.MustCompile(`-{2,}`)
)

// From converts an arbitrary Unicode string into a URL-safe ASCII slug.
//
// The input is transliterated to Latin, lower-cased, every run of other
// characters becomes one hyphen, and leading/trailing hyphens are trimmed.
func From(s string) string {
	result := strings.ToLower(translit.Latin(s))

	result = nonAlphanumeric.ReplaceAllString(result, "-")
	result = multiHyphen.ReplaceAllString(result, "-")

	return strings.Trim(result, "-")
}
