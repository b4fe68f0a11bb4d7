// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Darigraye/MEPHI-practice/pkg/pagination"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		query string
		want  pagination.Params
	}{
		{"", pagination.Params{Page: 1, Limit: 20}},
		{"?page=3&limit=50", pagination.Params{Page: 3, Limit: 50}},
		{"?page=-1&limit=1000", pagination.Params{Page: 1, Limit: 20}},
		{"?page=abc&limit=x", pagination.Params{Page: 1, Limit: 20}},
		{"?q=%20Smirnova%20", pagination.Params{Page: 1, Limit: 20, Search: "Smirnova"}},
	}

	for _, tt := range tests {
		request := httptest.NewRequest("GET", "/api/v1/patients"+tt.query, nil)
		assert.Equal(t, tt.want, pagination.FromRequest(request), tt.query)
	}
}

func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, pagination.Params{Page: 3, Limit: 20}.Offset())
}

func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(2, 20, 41)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 0, pagination.NewMeta(1, 0, 10).TotalPages)
}

func TestWindow(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, pagination.Window(items, pagination.Params{Page: 1, Limit: 2}))
	assert.Equal(t, []int{5}, pagination.Window(items, pagination.Params{Page: 3, Limit: 2}))
	assert.Equal(t, []int{}, pagination.Window(items, pagination.Params{Page: 4, Limit: 2}))
	assert.Equal(t, []int{}, pagination.Window[int](nil, pagination.Params{Page: 1, Limit: 20}))
}

func TestFromQuery_LimitAboveMax(t *testing.T) {
	params := pagination.FromQuery(map[string][]string{"limit": {"101"}})
	assert.Equal(t, pagination.DefaultLimit, params.Limit)
}
