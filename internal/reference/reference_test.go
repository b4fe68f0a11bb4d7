// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package reference_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Darigraye/MEPHI-practice/internal/platform/apperr"
	"github.com/Darigraye/MEPHI-practice/internal/platform/ctxutil"
	"github.com/Darigraye/MEPHI-practice/internal/platform/sec"
	"github.com/Darigraye/MEPHI-practice/internal/reference"
	"github.com/Darigraye/MEPHI-practice/internal/reference/referencetest"
	"github.com/Darigraye/MEPHI-practice/internal/system/systemtest"
	"github.com/Darigraye/MEPHI-practice/internal/versioning"
	"github.com/Darigraye/MEPHI-practice/pkg/pagination"
)

func newService() (*reference.Service, *referencetest.Terms, *systemtest.Logs) {
	terms := referencetest.NewTerms()
	journal, logs := systemtest.NewJournal()
	return reference.NewService(terms, journal), terms, logs
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want reference.Kind
		ok   bool
	}{
		{"marker", reference.KindMarker, true},
		{"cell-type", reference.KindCellType, true},
		{"CELL_TYPE", reference.KindCellType, true},
		{"characteristic", reference.KindCharacteristic, true},
		{"diagnosis", "", false},
	}
	for _, tt := range tests {
		kind, ok := reference.ParseKind(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, kind)
		}
	}
}

/*
TestCreateTerm_StampsAndDerivesCode checks the slug code and the ADDED stamp
over (kind, name, description).
*/
func TestCreateTerm_StampsAndDerivesCode(t *testing.T) {
	service, _, logs := newService()

	term, err := service.CreateTerm(context.Background(), reference.CreateTermInput{
		Kind:        reference.KindCellType,
		Name:        " Лимфоцит ",
		Description: "Small lymphocyte",
	})
	require.NoError(t, err)

	assert.Equal(t, "limfocit", term.Code)
	assert.Equal(t, "Лимфоцит", term.Name)
	assert.Equal(t, versioning.Added, term.ChangeState)
	assert.True(t, term.Current())
	assert.Len(t, term.ContentHash, 32)
	assert.Equal(t, versioning.Hash("cell_type", "Лимфоцит", "Small lymphocyte"), term.ContentHash)
	assert.True(t, term.Matches(term.BusinessFields()...))

	assert.Equal(t, []string{"create_term:S", "create_term:F"}, logs.Actions())
}

func TestCreateTerm_Rejects(t *testing.T) {
	service, _, _ := newService()
	ctx := context.Background()

	_, err := service.CreateTerm(ctx, reference.CreateTermInput{Kind: "diagnosis", Name: "x"})
	assert.True(t, apperr.IsValidation(err))

	_, err = service.CreateTerm(ctx, reference.CreateTermInput{Kind: reference.KindMarker, Name: "  "})
	assert.True(t, apperr.IsValidation(err))

	_, err = service.CreateTerm(ctx, reference.CreateTermInput{Kind: reference.KindMarker, Name: "***"})
	assert.True(t, apperr.IsValidation(err))

	_, err = service.CreateTerm(ctx, reference.CreateTermInput{Kind: reference.KindMarker, Name: "CD34"})
	require.NoError(t, err)
	_, err = service.CreateTerm(ctx, reference.CreateTermInput{Kind: reference.KindMarker, Name: "cd 34"})
	assert.NoError(t, err, "cd-34 differs from cd34")
	_, err = service.CreateTerm(ctx, reference.CreateTermInput{Kind: reference.KindMarker, Name: "cd34"})
	assert.True(t, apperr.IsConflict(err))

	// Same code in another dictionary is fine.
	_, err = service.CreateTerm(ctx, reference.CreateTermInput{Kind: reference.KindMedication, Name: "CD34"})
	assert.NoError(t, err)
}

func TestRequireKind(t *testing.T) {
	service, terms, _ := newService()
	ctx := context.Background()

	marker := terms.Seed(reference.KindMarker, "cd34", "CD34")
	medication := terms.Seed(reference.KindMedication, "imatinib", "Imatinib")

	assert.NoError(t, service.RequireKind(ctx, "marker_id", reference.KindMarker, marker, marker))
	assert.NoError(t, service.RequireKind(ctx, "marker_id", reference.KindMarker))

	err := service.RequireKind(ctx, "marker_id", reference.KindMarker, medication)
	require.True(t, apperr.IsValidation(err))
	assert.Equal(t, "marker_id", apperr.As(err).Details[0].Field)

	err = service.RequireKind(ctx, "marker_id", reference.KindMarker, 999)
	assert.True(t, apperr.IsValidation(err))
}

func TestListTerms(t *testing.T) {
	service, terms, _ := newService()
	terms.Seed(reference.KindMarker, "cd34", "CD34")
	terms.Seed(reference.KindMarker, "cd117", "CD117")
	terms.Seed(reference.KindMedication, "imatinib", "Imatinib")

	list, total, err := service.ListTerms(context.Background(), reference.KindMarker, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, "CD117", list[0].Name)

	_, _, err = service.ListTerms(context.Background(), "unknown", pagination.Params{Page: 1, Limit: 10})
	assert.True(t, apperr.IsNotFound(err))
}

// # HTTP

func TestHandler(t *testing.T) {
	service, terms, _ := newService()
	router := reference.NewHandler(service).Routes()
	id := terms.Seed(reference.KindCellType, "blast", "Blast")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/cell-type", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"total":1`)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/cell_type/blast", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data reference.Term `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, id, envelope.Data.ID)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/unknown", nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/by-id/abc", nil))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandler_CreateRequiresResearcher(t *testing.T) {
	service, _, _ := newService()
	router := reference.NewHandler(service).Routes()

	post := func(role sec.UserRole) int {
		request := httptest.NewRequest(http.MethodPost, "/marker", strings.NewReader(`{"name":"CD117"}`))
		request = request.WithContext(ctxutil.WithAuthUser(request.Context(),
			&sec.AuthClaims{UserID: "u", Login: "abc_1", Role: string(role)}))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)
		return recorder.Code
	}

	assert.Equal(t, http.StatusForbidden, post(sec.RoleMember))
	assert.Equal(t, http.StatusCreated, post(sec.RoleResearcher))
	assert.Equal(t, http.StatusConflict, post(sec.RoleCurator))
}
