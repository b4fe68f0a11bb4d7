// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package patient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Darigraye/MEPHI-practice/internal/clinic/patient"
	"github.com/Darigraye/MEPHI-practice/internal/clinic/patient/patienttest"
	"github.com/Darigraye/MEPHI-practice/internal/platform/apperr"
	"github.com/Darigraye/MEPHI-practice/internal/platform/ctxutil"
	"github.com/Darigraye/MEPHI-practice/internal/platform/sec"
	"github.com/Darigraye/MEPHI-practice/internal/system/systemtest"
	"github.com/Darigraye/MEPHI-practice/internal/versioning"
	"github.com/Darigraye/MEPHI-practice/pkg/pagination"
	"github.com/Darigraye/MEPHI-practice/pkg/pointer"
)

func newService() (*patient.Service, *systemtest.Logs) {
	journal, logs := systemtest.NewJournal()
	return patient.NewService(patienttest.NewPatients(), journal), logs
}

func asResearcher(ctx context.Context) context.Context {
	return ctxutil.WithAuthUser(ctx, &sec.AuthClaims{UserID: "u-1", Login: "asi_1", Role: string(sec.RoleResearcher)})
}

func anna(history int64) patient.CreateInput {
	return patient.CreateInput{
		HistoryNumber: history,
		FirstName:     "Anna",
		LastName:      "Smirnova",
		Patronymic:    "Ivanovna",
		BirthDate:     "1990-01-01",
		Sex:           pointer.To(0),
	}
}

/*
TestCreate_StableDigest pins the content hash of a reference patient and
checks that a different history number changes it.
*/
func TestCreate_StableDigest(t *testing.T) {
	service, logs := newService()
	ctx := asResearcher(context.Background())

	created, err := service.Create(ctx, anna(42))
	require.NoError(t, err)

	assert.Equal(t, "0a29e394c3241da78238ae2bdf1af861", created.ContentHash)
	assert.Equal(t, versioning.Added, created.ChangeState)
	assert.Nil(t, created.ValidTo)
	assert.WithinDuration(t, time.Now(), created.ValidFrom, time.Minute)
	assert.Equal(t, "asi_1", created.CreatedBy)
	assert.Equal(t, int64(1), created.ID)

	other, err := service.Create(ctx, anna(43))
	require.NoError(t, err)
	assert.Equal(t, "5720e0b9d601737aec6b1ccb352d2200", other.ContentHash)

	assert.Equal(t, []string{
		"create_patient:S", "create_patient:F",
		"create_patient:S", "create_patient:F",
	}, logs.Actions())
}

func TestCreate_DuplicateHistoryNumber(t *testing.T) {
	service, _ := newService()
	ctx := asResearcher(context.Background())

	_, err := service.Create(ctx, anna(42))
	require.NoError(t, err)

	_, err = service.Create(ctx, anna(42))
	assert.True(t, apperr.IsConflict(err))
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*patient.CreateInput)
		field string
	}{
		{"history_number", func(in *patient.CreateInput) { in.HistoryNumber = 0 }, patient.FieldHistoryNumber},
		{"first_name", func(in *patient.CreateInput) { in.FirstName = "" }, patient.FieldFirstName},
		{"birth_date_format", func(in *patient.CreateInput) { in.BirthDate = "01.01.1990" }, patient.FieldBirthDate},
		{"birth_date_future", func(in *patient.CreateInput) {
			in.BirthDate = time.Now().AddDate(1, 0, 0).Format(patient.DateLayout)
		}, patient.FieldBirthDate},
		{"sex_missing", func(in *patient.CreateInput) { in.Sex = nil }, patient.FieldSex},
		{"sex_unknown", func(in *patient.CreateInput) { in.Sex = pointer.To(2) }, patient.FieldSex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, logs := newService()
			input := anna(42)
			tt.edit(&input)

			_, err := service.Create(asResearcher(context.Background()), input)
			require.True(t, apperr.IsValidation(err), "got %v", err)
			assert.Equal(t, tt.field, apperr.As(err).Details[0].Field)
			assert.Empty(t, logs.Entries())
		})
	}
}

func TestCreate_PatronymicIsOptional(t *testing.T) {
	service, _ := newService()
	input := anna(7)
	input.Patronymic = ""

	created, err := service.Create(asResearcher(context.Background()), input)
	require.NoError(t, err)
	assert.Equal(t, versioning.Hash(int64(7), "Anna", "Smirnova", "", created.BirthDate, 0), created.ContentHash)
}

func TestList_Search(t *testing.T) {
	service, _ := newService()
	ctx := asResearcher(context.Background())

	_, err := service.Create(ctx, anna(1))
	require.NoError(t, err)
	other := anna(2)
	other.FirstName, other.LastName, other.Patronymic = "Pyotr", "Ivanov", "Sergeevich"
	_, err = service.Create(ctx, other)
	require.NoError(t, err)

	all, total, err := service.List(ctx, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, "Ivanov", all[0].LastName)

	found, total, err := service.List(ctx, pagination.Params{Page: 1, Limit: 10, Search: "smirn"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, int64(1), found[0].HistoryNumber)
}

// # HTTP

func TestHandler(t *testing.T) {
	service, _ := newService()
	router := patient.NewHandler(service).Routes()

	serve := func(ctx context.Context, method, path, body string) *httptest.ResponseRecorder {
		request := httptest.NewRequest(method, path, strings.NewReader(body))
		request = request.WithContext(ctx)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)
		return recorder
	}

	researcher := asResearcher(context.Background())
	member := ctxutil.WithAuthUser(context.Background(), &sec.AuthClaims{UserID: "u-2", Login: "ppp_1", Role: string(sec.RoleMember)})

	body := `{"history_number":42,"first_name":"Anna","last_name":"Smirnova","patronymic":"Ivanovna","birth_date":"1990-01-01","sex":0}`

	assert.Equal(t, http.StatusUnauthorized, serve(context.Background(), http.MethodGet, "/", "").Code)
	assert.Equal(t, http.StatusForbidden, serve(member, http.MethodPost, "/", body).Code)

	recorder := serve(researcher, http.MethodPost, "/", body)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	assert.Contains(t, recorder.Body.String(), `"content_hash":"0a29e394c3241da78238ae2bdf1af861"`)
	assert.Contains(t, recorder.Body.String(), `"change_state":"ADDED"`)

	assert.Equal(t, http.StatusConflict, serve(researcher, http.MethodPost, "/", body).Code)

	recorder = serve(member, http.MethodGet, "/by-history/42", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"last_name":"Smirnova"`)

	assert.Equal(t, http.StatusNotFound, serve(member, http.MethodGet, "/99", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(member, http.MethodGet, "/abc", "").Code)
}
