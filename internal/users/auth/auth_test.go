// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Darigraye/MEPHI-practice/internal/platform/apperr"
	"github.com/Darigraye/MEPHI-practice/internal/platform/constants"
	"github.com/Darigraye/MEPHI-practice/internal/platform/ctxutil"
	"github.com/Darigraye/MEPHI-practice/internal/platform/sec"
	"github.com/Darigraye/MEPHI-practice/internal/system/systemtest"
	"github.com/Darigraye/MEPHI-practice/internal/users/auth"
	"github.com/Darigraye/MEPHI-practice/internal/users/auth/authtest"
	"github.com/Darigraye/MEPHI-practice/internal/users/login"
)

type fixture struct {
	service  *auth.Service
	users    *authtest.Users
	sessions *authtest.Sessions
	journal  *systemtest.Logs
}

func newFixture() *fixture {
	return newLockedFixture(nil)
}

func newLockedFixture(locker login.PrefixLocker) *fixture {
	users := authtest.NewUsers()
	sessions := authtest.NewSessions()
	journal, logs := systemtest.NewJournal()

	service := auth.NewService(
		users,
		authtest.NewCategories(),
		sessions,
		login.NewGenerator(users, locker),
		authtest.Tokens{},
		journal,
	)
	return &fixture{service: service, users: users, sessions: sessions, journal: logs}
}

func ivan(email, phone string) auth.RegisterInput {
	return auth.RegisterInput{
		FirstName:  "Иван",
		LastName:   "Иванов",
		Patronymic: "Иванович",
		Email:      email,
		Phone:      phone,
		CategoryID: 1,
		Password:   "correct-horse",
	}
}

// # Registration

/*
TestRegister_DerivesSequentialLogins registers two namesakes and checks
the derived logins and the journal trail.
*/
func TestRegister_DerivesSequentialLogins(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.service.Register(ctx, ivan("ivan1@mephi.ru", "+7 999 111 22 33"))
	require.NoError(t, err)
	assert.Equal(t, "iii_1", first.Login)
	assert.Equal(t, sec.RoleMember, first.Role)
	assert.Equal(t, "student", first.CategoryName)
	assert.True(t, sec.CheckPasswordHash("correct-horse", first.PasswordHash))

	second, err := f.service.Register(ctx, ivan("ivan2@mephi.ru", "+7 999 111 22 34"))
	require.NoError(t, err)
	assert.Equal(t, "iii_2", second.Login)

	assert.Equal(t, []string{
		"register_user:S", "register_user:F",
		"register_user:S", "register_user:F",
	}, f.journal.Actions())
	assert.Equal(t, "login=iii_2", f.journal.Entries()[3].Description)
}

/*
TestRegister_DeletedLoginIsNotReused checks that soft-deleted users still
count toward the maximum suffix.
*/
func TestRegister_DeletedLoginIsNotReused(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.service.Register(ctx, ivan("ivan1@mephi.ru", "+7 999 111 22 33"))
	require.NoError(t, err)
	require.NoError(t, f.users.SoftDelete(ctx, first.ID))

	second, err := f.service.Register(ctx, ivan("ivan2@mephi.ru", "+7 999 111 22 34"))
	require.NoError(t, err)
	assert.Equal(t, "iii_2", second.Login)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*auth.RegisterInput)
		field string
	}{
		{"empty_patronymic", func(in *auth.RegisterInput) { in.Patronymic = "  " }, auth.FieldPatronymic},
		{"bad_email", func(in *auth.RegisterInput) { in.Email = "not-an-email" }, auth.FieldEmail},
		{"bad_phone", func(in *auth.RegisterInput) { in.Phone = "12345" }, auth.FieldPhone},
		{"short_password", func(in *auth.RegisterInput) { in.Password = "short" }, auth.FieldPassword},
		{"no_category", func(in *auth.RegisterInput) { in.CategoryID = 0 }, auth.FieldCategoryID},
		{"unknown_category", func(in *auth.RegisterInput) { in.CategoryID = 99 }, auth.FieldCategoryID},
		{"symbol_name", func(in *auth.RegisterInput) { in.LastName = "-" }, auth.FieldLastName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			input := ivan("ivan@mephi.ru", "+7 999 111 22 33")
			tt.edit(&input)

			_, err := f.service.Register(context.Background(), input)
			require.Error(t, err)
			require.True(t, apperr.IsValidation(err), "got %v", err)

			var fields []string
			for _, detail := range apperr.As(err).Details {
				fields = append(fields, detail.Field)
			}
			assert.Contains(t, fields, tt.field)
			assert.Empty(t, f.journal.Entries())
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.service.Register(ctx, ivan("ivan@mephi.ru", "+7 999 111 22 33"))
	require.NoError(t, err)

	_, err = f.service.Register(ctx, ivan("IVAN@mephi.ru", "+7 999 111 22 34"))
	assert.True(t, apperr.IsConflict(err))
}

func TestRegister_EmailLookupFailure(t *testing.T) {
	f := newFixture()
	storageDown := errors.New("connection refused")
	f.users.LookupErr = storageDown

	_, err := f.service.Register(context.Background(), ivan("ivan@mephi.ru", "+7 999 111 22 33"))
	require.ErrorIs(t, err, storageDown)
	assert.Nil(t, apperr.As(err))
	assert.Empty(t, f.journal.Entries())

	f.users.LookupErr = nil
	_, err = f.users.FindByEmail(context.Background(), "ivan@mephi.ru")
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestRegister_DuplicatePhoneIsJournalled checks that a storage conflict is
returned unchanged and recorded as an error row.
*/
func TestRegister_DuplicatePhoneIsJournalled(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.service.Register(ctx, ivan("ivan1@mephi.ru", "+7 999 111 22 33"))
	require.NoError(t, err)

	_, err = f.service.Register(ctx, ivan("ivan2@mephi.ru", "+7 999 111 22 33"))
	require.True(t, apperr.IsConflict(err))

	entries := f.journal.Entries()
	last := entries[len(entries)-1]
	assert.Equal(t, "E", string(last.Type))
	assert.Contains(t, last.Description, "al_user_phone_number_key")
}

/*
TestRegister_Concurrent registers namesakes in parallel behind the Redis
prefix lock and expects distinct logins.
*/
func TestRegister_Concurrent(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	f := newLockedFixture(login.NewRedisLocker(client, 5*time.Second))

	const workers = 8
	logins := make([]string, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			input := ivan("ivan"+string(rune('a'+i))+"@mephi.ru", "+7 999 111 22 "+string(rune('0'+i))+"0")
			user, err := f.service.Register(context.Background(), input)
			if assert.NoError(t, err) {
				logins[i] = user.Login
			}
		}()
	}
	wg.Wait()

	seen := map[string]bool{}
	for _, l := range logins {
		assert.False(t, seen[l], "duplicate login %s", l)
		seen[l] = true
	}
	assert.Len(t, seen, workers)
}

func TestPreviewLogin_DoesNotReserve(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	name := login.Name{First: "Анна", Last: "Смирнова", Patronymic: "Ивановна"}

	first, err := f.service.PreviewLogin(ctx, name)
	require.NoError(t, err)
	second, err := f.service.PreviewLogin(ctx, name)
	require.NoError(t, err)

	assert.Equal(t, "asi_1", first)
	assert.Equal(t, first, second)
}

// # Authentication

func TestLogin_ByLoginAndEmail(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	user, err := f.service.Register(ctx, ivan("ivan@mephi.ru", "+7 999 111 22 33"))
	require.NoError(t, err)

	for _, identifier := range []string{"iii_1", "IVAN@mephi.ru"} {
		session, err := f.service.Login(ctx, auth.LoginInput{Login: identifier, Password: "correct-horse"})
		require.NoError(t, err, identifier)
		assert.Equal(t, user.ID, session.User.ID)
		assert.Equal(t, "access."+user.ID+".iii_1.member", session.AccessToken)
		assert.NotEmpty(t, session.RefreshToken)
		assert.WithinDuration(t, time.Now().Add(auth.RefreshTokenTTL), session.RefreshTokenExpiresAt, time.Minute)
	}
}

func TestLogin_Rejects(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.service.Register(ctx, ivan("ivan@mephi.ru", "+7 999 111 22 33"))
	require.NoError(t, err)

	_, err = f.service.Login(ctx, auth.LoginInput{Login: "iii_1", Password: "wrong-password"})
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))

	_, err = f.service.Login(ctx, auth.LoginInput{Login: "zzz_1", Password: "correct-horse"})
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))
}

/*
TestRefreshSession_Rotates verifies that a refresh token works exactly once.
*/
func TestRefreshSession_Rotates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.service.Register(ctx, ivan("ivan@mephi.ru", "+7 999 111 22 33"))
	require.NoError(t, err)
	session, err := f.service.Login(ctx, auth.LoginInput{Login: "iii_1", Password: "correct-horse"})
	require.NoError(t, err)

	rotated, err := f.service.RefreshSession(ctx, session.RefreshToken, "test", "127.0.0.1")
	require.NoError(t, err)
	assert.NotEqual(t, session.RefreshToken, rotated.RefreshToken)
	assert.True(t, f.sessions.Revoked(session.SessionID))

	_, err = f.service.RefreshSession(ctx, session.RefreshToken, "test", "127.0.0.1")
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))
}

func TestLogout(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.service.Register(ctx, ivan("ivan@mephi.ru", "+7 999 111 22 33"))
	require.NoError(t, err)
	session, err := f.service.Login(ctx, auth.LoginInput{Login: "iii_1", Password: "correct-horse"})
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(ctx, session.RefreshToken))
	assert.True(t, f.sessions.Revoked(session.SessionID))

	// Unknown tokens are ignored.
	assert.NoError(t, f.service.Logout(ctx, "unknown"))
}

// # Categories

func TestCreateCategory(t *testing.T) {
	f := newFixture()
	ctx := ctxutil.WithAuthUser(context.Background(), &sec.AuthClaims{UserID: "u-1", Login: "adm_1", Role: string(sec.RoleAdmin)})

	category, err := f.service.CreateCategory(ctx, " postgraduate ", "PhD students")
	require.NoError(t, err)
	assert.Equal(t, "postgraduate", category.Name)
	assert.Equal(t, int64(3), category.ID)

	_, err = f.service.CreateCategory(ctx, "staff", "")
	assert.True(t, apperr.IsConflict(err))

	_, err = f.service.CreateCategory(ctx, "", "")
	assert.True(t, apperr.IsValidation(err))

	assert.Equal(t, "adm_1", f.journal.Entries()[0].Login)
}

// # HTTP

func TestHandler_RegisterAndLogin(t *testing.T) {
	f := newFixture()
	router := auth.NewHandler(f.service).Routes()

	body := `{"first_name":"Иван","last_name":"Иванов","patronymic":"Иванович",` +
		`"email":"ivan@mephi.ru","phone_number":"+7 999 111 22 33","category_id":2,"password":"correct-horse"}`
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var created struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
	assert.Equal(t, "iii_1", created.Data["login"])
	assert.Equal(t, "staff", created.Data["category_name"])
	assert.NotContains(t, recorder.Body.String(), "password")

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"login":"iii_1","password":"correct-horse"}`)))
	require.Equal(t, http.StatusOK, recorder.Code)

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, constants.RefreshTokenCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Contains(t, recorder.Body.String(), `"token_type":"Bearer"`)

	request := httptest.NewRequest(http.MethodPost, "/refresh", nil)
	request.AddCookie(cookies[0])
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestHandler_RegisterRejectsUnknownFields(t *testing.T) {
	f := newFixture()
	router := auth.NewHandler(f.service).Routes()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/register",
		strings.NewReader(`{"login":"chosen_by_me"}`)))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandler_LoginPreview(t *testing.T) {
	f := newFixture()
	router := auth.NewHandler(f.service).Routes()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet,
		"/login-preview?first_name=Ivan&last_name=Petrov&patronymic=Sergeevich", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"login":"ips_1"`)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/login-preview?first_name=Ivan", nil))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandler_CreateCategoryRequiresAdmin(t *testing.T) {
	f := newFixture()
	router := auth.NewHandler(f.service).Routes()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/categories",
		strings.NewReader(`{"name":"guest"}`)))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	request := httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(`{"name":"guest"}`))
	request = request.WithContext(ctxutil.WithAuthUser(request.Context(),
		&sec.AuthClaims{UserID: "u-2", Login: "mmm_1", Role: string(sec.RoleMember)}))
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}
