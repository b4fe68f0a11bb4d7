// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

/*
Package pagination carries page/limit navigation for list endpoints.

Handlers parse [Params] from the query string, stores translate them into
LIMIT/OFFSET, and the response envelope reports a [Meta] block next to the
data. In-memory stores used by tests cut their result sets with [Window] so
that they page exactly like the SQL ones.
*/
package pagination

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
	DefaultPage  = 1
)

// Params is a requested page. Page is 1-indexed.
type Params struct {
	Page   int
	Limit  int
	Search string
}

// Offset is the number of rows skipped before this page.
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the "meta" block of a paginated response.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta derives the page count from total and limit.
func NewMeta(page, limit, total int) Meta {
	meta := Meta{Page: page, Limit: limit, Total: total}
	if limit > 0 {
		meta.TotalPages = (total + limit - 1) / limit
	}
	return meta
}

// FromRequest reads "page", "limit" and "q" from the request URL.
func FromRequest(r *http.Request) Params {
	return FromQuery(r.URL.Query())
}

// FromQuery is [FromRequest] over already parsed values. Out of range or
// unparsable numbers fall back to [DefaultPage] and [DefaultLimit].
func FromQuery(query url.Values) Params {
	params := Params{
		Page:   positiveOr(query.Get("page"), DefaultPage),
		Limit:  positiveOr(query.Get("limit"), DefaultLimit),
		Search: strings.TrimSpace(query.Get("q")),
	}
	if params.Limit > MaxLimit {
		params.Limit = DefaultLimit
	}
	return params
}

// Window returns the slice of items that falls on page p. It never returns
// nil, so an empty page still encodes as a JSON array.
func Window[T any](items []T, p Params) []T {
	offset := p.Offset()
	if offset >= len(items) || p.Limit <= 0 {
		return []T{}
	}
	return items[offset:min(offset+p.Limit, len(items))]
}

func positiveOr(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
