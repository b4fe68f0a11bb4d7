// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package api_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Darigraye/MEPHI-practice/internal/api"
	"github.com/Darigraye/MEPHI-practice/internal/clinic/cellimage"
	"github.com/Darigraye/MEPHI-practice/internal/clinic/cellimage/cellimagetest"
	"github.com/Darigraye/MEPHI-practice/internal/clinic/patient"
	"github.com/Darigraye/MEPHI-practice/internal/clinic/patient/patienttest"
	"github.com/Darigraye/MEPHI-practice/internal/clinic/research"
	"github.com/Darigraye/MEPHI-practice/internal/clinic/research/researchtest"
	"github.com/Darigraye/MEPHI-practice/internal/platform/config"
	"github.com/Darigraye/MEPHI-practice/internal/platform/constants"
	"github.com/Darigraye/MEPHI-practice/internal/platform/sec"
	"github.com/Darigraye/MEPHI-practice/internal/reference"
	"github.com/Darigraye/MEPHI-practice/internal/reference/referencetest"
	"github.com/Darigraye/MEPHI-practice/internal/system"
	"github.com/Darigraye/MEPHI-practice/internal/system/systemtest"
	"github.com/Darigraye/MEPHI-practice/internal/users/account"
	"github.com/Darigraye/MEPHI-practice/internal/users/auth"
	"github.com/Darigraye/MEPHI-practice/internal/users/auth/authtest"
	"github.com/Darigraye/MEPHI-practice/internal/users/login"
)

type app struct {
	router *chi.Mux
	users  *authtest.Users
}

func newTokenService(t *testing.T) *sec.TokenService {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	privatePEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	publicDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	publicPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: publicDER})

	tokens, err := sec.NewTokenServiceFromPEM(privatePEM, publicPEM, constants.AuthIssuer)
	require.NoError(t, err)
	return tokens
}

func newApp(t *testing.T, deps api.HealthDependencies) *app {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := newTokenService(t)
	journal, logs := systemtest.NewJournal()

	users := authtest.NewUsers()
	sessions := authtest.NewSessions()
	authService := auth.NewService(users, authtest.NewCategories(), sessions, login.NewGenerator(users, nil), tokens, journal)

	terms := referencetest.NewTerms()
	terms.Seed(reference.KindCellType, "blast", "Blast")
	references := reference.NewService(terms, journal)

	patients := patient.NewService(patienttest.NewPatients(), journal)
	researches := research.NewService(researchtest.NewResearches(), patients, references, journal)
	images := cellimage.NewService(cellimagetest.NewImages(), researches, references, journal)

	liveness, readiness := api.NewHealthHandlers(deps, logger)

	router := api.NewRouter(ctx, &config.Config{Environment: "development"}, logger, tokens, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
		Account:   account.NewHandler(account.NewService(users, sessions, journal)),
		Patient:   patient.NewHandler(patients),
		Research:  research.NewHandler(researches),
		CellImage: cellimage.NewHandler(images),
		Reference: reference.NewHandler(references),
		System:    system.NewHandler(system.NewService(logs, systemtest.NewParameters(), journal)),
	})

	return &app{router: router, users: users}
}

func (a *app) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	request := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		request.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	a.router.ServeHTTP(recorder, request)
	return recorder
}

func (a *app) login(t *testing.T, userLogin string) string {
	t.Helper()

	recorder := a.do(t, http.MethodPost, "/api/v1/auth/login", "",
		`{"login":"`+userLogin+`","password":"correct-horse"}`)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var envelope struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope.Data.AccessToken
}

func TestHealthEndpoints(t *testing.T) {
	a := newApp(t, api.HealthDependencies{
		CheckDatabase: func(context.Context) error { return nil },
		CheckCache:    func(context.Context) error { return errors.New("connection refused") },
	})

	recorder := a.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = a.do(t, http.MethodGet, "/ready", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"status":"degraded"`)
	assert.Contains(t, recorder.Body.String(), `"name":"redis","ok":false`)
	assert.NotEmpty(t, recorder.Header().Get(constants.HeaderXRequestID))
}

/*
TestFlow walks a new account from registration to clinical records. Roles
are raised directly in the store between logins because the access token
carries the role.
*/
func TestFlow(t *testing.T) {
	a := newApp(t, api.HealthDependencies{})

	recorder := a.do(t, http.MethodPost, "/api/v1/auth/register", "",
		`{"first_name":"Иван","last_name":"Иванов","patronymic":"Иванович",`+
			`"email":"ivan@mephi.ru","phone_number":"+7 999 111 22 33","category_id":1,"password":"correct-horse"}`)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	assert.Contains(t, recorder.Body.String(), `"login":"iii_1"`)

	member := a.login(t, "iii_1")

	recorder = a.do(t, http.MethodGet, "/api/v1/users/me", member, "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"email":"ivan@mephi.ru"`)

	recorder = a.do(t, http.MethodGet, "/api/v1/users/iii_1", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "ivan@mephi.ru")

	patientBody := `{"history_number":42,"first_name":"Anna","last_name":"Smirnova","patronymic":"Ivanovna","birth_date":"1990-01-01","sex":0}`

	assert.Equal(t, http.StatusUnauthorized, a.do(t, http.MethodGet, "/api/v1/patients", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, a.do(t, http.MethodGet, "/api/v1/patients", "forged", "").Code)
	assert.Equal(t, http.StatusForbidden, a.do(t, http.MethodPost, "/api/v1/patients", member, patientBody).Code)

	a.users.SetRole("iii_1", sec.RoleResearcher)
	researcher := a.login(t, "iii_1")

	recorder = a.do(t, http.MethodPost, "/api/v1/patients", researcher, patientBody)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	assert.Contains(t, recorder.Body.String(), `"content_hash":"0a29e394c3241da78238ae2bdf1af861"`)
	assert.Contains(t, recorder.Body.String(), `"created_by":"iii_1"`)

	recorder = a.do(t, http.MethodPost, "/api/v1/researches", researcher,
		`{"patient_id":1,"research_date":"2025-03-14","material":"bone marrow"}`)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	recorder = a.do(t, http.MethodPost, "/api/v1/terms/characteristic", researcher, `{"name":"Ядрышки"}`)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	recorder = a.do(t, http.MethodPost, "/api/v1/cell-images", researcher,
		`{"research_id":1,"cell_type_id":1,"image_key":"slides/1.png","characteristic_ids":[2]}`)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	recorder = a.do(t, http.MethodGet, "/api/v1/terms/cell_type", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"code":"blast"`)

	assert.Equal(t, http.StatusUnauthorized, a.do(t, http.MethodGet, "/api/v1/system/logs", "", "").Code)
	assert.Equal(t, http.StatusForbidden, a.do(t, http.MethodGet, "/api/v1/system/logs", researcher, "").Code)

	a.users.SetRole("iii_1", sec.RoleAdmin)
	admin := a.login(t, "iii_1")

	recorder = a.do(t, http.MethodGet, "/api/v1/system/logs?sender=patient", admin, "")
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	assert.Contains(t, recorder.Body.String(), `"action":"create_patient"`)
	assert.Contains(t, recorder.Body.String(), `"login":"iii_1"`)
}
