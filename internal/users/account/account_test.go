// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package account_test

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
	"github.com/Darigraye/MEPHI-practice/internal/platform/constants"
	"github.com/Darigraye/MEPHI-practice/internal/platform/ctxutil"
	"github.com/Darigraye/MEPHI-practice/internal/platform/sec"
	"github.com/Darigraye/MEPHI-practice/internal/system/systemtest"
	"github.com/Darigraye/MEPHI-practice/internal/users/account"
	"github.com/Darigraye/MEPHI-practice/internal/users/auth"
	"github.com/Darigraye/MEPHI-practice/internal/users/auth/authtest"
	"github.com/Darigraye/MEPHI-practice/internal/users/login"
)

const password = "correct-horse"

type fixture struct {
	auth     *auth.Service
	account  *account.Service
	users    *authtest.Users
	sessions *authtest.Sessions
	journal  *systemtest.Logs
}

func newFixture() *fixture {
	users := authtest.NewUsers()
	sessions := authtest.NewSessions()
	journal, logs := systemtest.NewJournal()

	return &fixture{
		auth: auth.NewService(users, authtest.NewCategories(), sessions,
			login.NewGenerator(users, nil), authtest.Tokens{}, journal),
		account:  account.NewService(users, sessions, journal),
		users:    users,
		sessions: sessions,
		journal:  logs,
	}
}

// register creates Anna Smirnova and opens a session for her.
func (f *fixture) register(t *testing.T, email, phone string) (*auth.User, *auth.LoginSession) {
	t.Helper()
	ctx := context.Background()

	user, err := f.auth.Register(ctx, auth.RegisterInput{
		FirstName:  "Анна",
		LastName:   "Смирнова",
		Patronymic: "Ивановна",
		Email:      email,
		Phone:      phone,
		CategoryID: 2,
		Password:   password,
	})
	require.NoError(t, err)

	session, err := f.auth.Login(ctx, auth.LoginInput{Login: user.Login, Password: password})
	require.NoError(t, err)
	return user, session
}

func asUser(ctx context.Context, user *auth.User) context.Context {
	return ctxutil.WithAuthUser(ctx, &sec.AuthClaims{UserID: user.ID, Login: user.Login, Role: string(user.Role)})
}

// # Profile

func TestGetProfile(t *testing.T) {
	f := newFixture()
	user, _ := f.register(t, "anna@mephi.ru", "+7 999 000 11 22")

	profile, err := f.account.GetProfile(context.Background(), "ASI_1")
	require.NoError(t, err)
	assert.Equal(t, user.Login, profile.Login)
	assert.Equal(t, "staff", profile.CategoryName)

	_, err = f.account.GetProfile(context.Background(), "asi_2")
	assert.True(t, apperr.IsNotFound(err))

	_, err = f.account.GetProfile(context.Background(), "../etc")
	assert.True(t, apperr.IsNotFound(err))
}

func TestUpdateContacts(t *testing.T) {
	f := newFixture()
	user, _ := f.register(t, "anna@mephi.ru", "+7 999 000 11 22")
	other, _ := f.register(t, "other@mephi.ru", "+7 999 000 11 33")
	ctx := asUser(context.Background(), user)

	phone := "8 (999) 555-66-77"
	updated, err := f.account.UpdateContacts(ctx, user.ID, account.UpdateContactsInput{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, updated.Phone)
	assert.Equal(t, "anna@mephi.ru", updated.Email)

	taken := other.Email
	_, err = f.account.UpdateContacts(ctx, user.ID, account.UpdateContactsInput{Email: &taken})
	assert.True(t, apperr.IsConflict(err))

	bad := "nope"
	_, err = f.account.UpdateContacts(ctx, user.ID, account.UpdateContactsInput{Email: &bad})
	assert.True(t, apperr.IsValidation(err))

	assert.Contains(t, f.journal.Actions(), "update_contacts:F")
	assert.Equal(t, user.Login, f.journal.Entries()[len(f.journal.Entries())-1].Login)
}

// # Security

/*
TestChangePassword_RevokesOtherSessions keeps the presenting session and
revokes the rest.
*/
func TestChangePassword_RevokesOtherSessions(t *testing.T) {
	f := newFixture()
	user, current := f.register(t, "anna@mephi.ru", "+7 999 000 11 22")
	other, err := f.auth.Login(context.Background(), auth.LoginInput{Login: user.Login, Password: password})
	require.NoError(t, err)

	ctx := asUser(context.Background(), user)

	err = f.account.ChangePassword(ctx, user.ID, "wrong-password", "brand-new-pass", current.RefreshToken)
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))

	err = f.account.ChangePassword(ctx, user.ID, password, "short", current.RefreshToken)
	assert.True(t, apperr.IsValidation(err))

	require.NoError(t, f.account.ChangePassword(ctx, user.ID, password, "brand-new-pass", current.RefreshToken))
	assert.False(t, f.sessions.Revoked(current.SessionID))
	assert.True(t, f.sessions.Revoked(other.SessionID))

	_, err = f.auth.Login(context.Background(), auth.LoginInput{Login: user.Login, Password: "brand-new-pass"})
	assert.NoError(t, err)
}

/*
TestDeleteMe_KeepsLoginReserved deletes an account and registers a
namesake, who must get the next suffix.
*/
func TestDeleteMe_KeepsLoginReserved(t *testing.T) {
	f := newFixture()
	user, session := f.register(t, "anna@mephi.ru", "+7 999 000 11 22")
	ctx := asUser(context.Background(), user)

	assert.True(t, apperr.HasCode(f.account.DeleteMe(ctx, user.ID, "wrong-password"), apperr.CodeUnauthorized))
	require.NoError(t, f.account.DeleteMe(ctx, user.ID, password))
	assert.True(t, f.sessions.Revoked(session.SessionID))

	_, err := f.account.GetProfile(ctx, user.Login)
	assert.True(t, apperr.IsNotFound(err))

	next, _ := f.register(t, "anna2@mephi.ru", "+7 999 000 11 44")
	assert.Equal(t, "asi_2", next.Login)
}

// # Sessions

func TestSessions(t *testing.T) {
	f := newFixture()
	user, current := f.register(t, "anna@mephi.ru", "+7 999 000 11 22")
	other, err := f.auth.Login(context.Background(), auth.LoginInput{Login: user.Login, Password: password})
	require.NoError(t, err)
	ctx := context.Background()

	infos, err := f.account.ListSessions(ctx, user.ID, current.RefreshToken)
	require.NoError(t, err)
	require.Len(t, infos, 2)

	currentCount := 0
	for _, info := range infos {
		if info.IsCurrent {
			currentCount++
			assert.Equal(t, current.SessionID, info.ID)
		}
	}
	assert.Equal(t, 1, currentCount)

	require.NoError(t, f.account.RevokeSession(ctx, user.ID, other.SessionID))
	assert.Error(t, f.account.RevokeSession(ctx, "someone-else", current.SessionID))

	assert.True(t, apperr.HasCode(f.account.RevokeOtherSessions(ctx, user.ID, ""), apperr.CodeUnauthorized))
	require.NoError(t, f.account.RevokeOtherSessions(ctx, user.ID, current.RefreshToken))
	assert.False(t, f.sessions.Revoked(current.SessionID))
}

// # HTTP

func TestHandler_Profile(t *testing.T) {
	f := newFixture()
	user, _ := f.register(t, "anna@mephi.ru", "+7 999 000 11 22")
	router := account.NewHandler(f.account).Routes()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/"+user.Login, nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "anna@mephi.ru")

	var envelope struct {
		Data account.Profile `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, "asi_1", envelope.Data.Login)
	assert.Equal(t, "staff", envelope.Data.CategoryName)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestHandler_MeAndPassword(t *testing.T) {
	f := newFixture()
	user, session := f.register(t, "anna@mephi.ru", "+7 999 000 11 22")
	router := account.NewHandler(f.account).Routes()

	serve := func(method, path, body string) *httptest.ResponseRecorder {
		request := httptest.NewRequest(method, path, strings.NewReader(body))
		request = request.WithContext(asUser(request.Context(), user))
		request.AddCookie(&http.Cookie{Name: constants.RefreshTokenCookieName, Value: session.RefreshToken})
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)
		return recorder
	}

	recorder := serve(http.MethodGet, "/me", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "anna@mephi.ru")

	recorder = serve(http.MethodPatch, "/me", `{"email":"anna.s@mephi.ru"}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "anna.s@mephi.ru")

	recorder = serve(http.MethodPatch, "/me", `{"login":"mine"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = serve(http.MethodPost, "/me/password", `{"current_password":"correct-horse","new_password":"brand-new-pass"}`)
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = serve(http.MethodGet, "/me/sessions", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"is_current":true`)
}
