// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

// Package authtest provides in-memory repositories for the auth and account
// packages' tests.
package authtest

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Darigraye/MEPHI-practice/internal/platform/apperr"
	"github.com/Darigraye/MEPHI-practice/internal/platform/sec"
	"github.com/Darigraye/MEPHI-practice/internal/users/auth"
	"github.com/Darigraye/MEPHI-practice/internal/users/login"
)

// # Users

// Users is an in-memory [auth.UserRepository]. Deleted users keep their
// login reserved, as in al_user.
type Users struct {
	mu      sync.Mutex
	byID    map[string]*auth.User
	deleted map[string]bool

	// LookupErr, when set, is returned by every Find* call.
	LookupErr error
}

func NewUsers() *Users {
	return &Users{byID: map[string]*auth.User{}, deleted: map[string]bool{}}
}

func (users *Users) find(match func(*auth.User) bool) (*auth.User, error) {
	users.mu.Lock()
	defer users.mu.Unlock()

	if users.LookupErr != nil {
		return nil, users.LookupErr
	}
	for id, user := range users.byID {
		if !users.deleted[id] && match(user) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (users *Users) FindByID(_ context.Context, id string) (*auth.User, error) {
	return users.find(func(user *auth.User) bool { return user.ID == id })
}

func (users *Users) FindByLogin(_ context.Context, login string) (*auth.User, error) {
	return users.find(func(user *auth.User) bool { return user.Login == login })
}

func (users *Users) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	return users.find(func(user *auth.User) bool { return strings.EqualFold(user.Email, email) })
}

func (users *Users) Create(_ context.Context, user *auth.User) error {
	users.mu.Lock()
	defer users.mu.Unlock()

	for _, existing := range users.byID {
		switch {
		case existing.Login == user.Login:
			return login.ErrLoginTaken
		case existing.Email == user.Email:
			return apperr.Conflict("Record already exists: al_user_email_key")
		case existing.Phone == user.Phone:
			return apperr.Conflict("Record already exists: al_user_phone_number_key")
		}
	}

	now := time.Now().UTC()
	user.RegisteredAt, user.UpdatedAt = now, now
	clone := *user
	users.byID[user.ID] = &clone
	return nil
}

func (users *Users) MaxSuffix(_ context.Context, prefix string) (int, bool, error) {
	users.mu.Lock()
	defer users.mu.Unlock()

	max, found := 0, false
	for _, user := range users.byID {
		digits, ok := strings.CutPrefix(user.Login, prefix)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			continue
		}
		if !found || n > max {
			max, found = n, true
		}
	}
	return max, found, nil
}

func (users *Users) update(id string, fn func(*auth.User)) error {
	users.mu.Lock()
	defer users.mu.Unlock()

	user, ok := users.byID[id]
	if !ok || users.deleted[id] {
		return apperr.NotFound("User")
	}
	fn(user)
	user.UpdatedAt = time.Now().UTC()
	return nil
}

func (users *Users) UpdateContacts(_ context.Context, userID, email, phone string) error {
	return users.update(userID, func(user *auth.User) {
		user.Email, user.Phone = email, phone
	})
}

func (users *Users) UpdatePassword(_ context.Context, userID, newHash string) error {
	return users.update(userID, func(user *auth.User) {
		user.PasswordHash = newHash
	})
}

// SetRole changes the role of the user holding login. Roles are granted
// out of band in production.
func (users *Users) SetRole(login string, role sec.UserRole) {
	users.mu.Lock()
	defer users.mu.Unlock()
	for _, user := range users.byID {
		if user.Login == login {
			user.Role = role
		}
	}
}

func (users *Users) SoftDelete(_ context.Context, id string) error {
	users.mu.Lock()
	defer users.mu.Unlock()
	users.deleted[id] = true
	return nil
}

// # Categories

// Categories is an in-memory [auth.CategoryRepository].
type Categories struct {
	mu   sync.Mutex
	list []*auth.Category
}

// NewCategories returns a repository seeded like the first migration.
func NewCategories() *Categories {
	return &Categories{list: []*auth.Category{
		{ID: 1, Name: "student", Description: "Student"},
		{ID: 2, Name: "staff", Description: "Laboratory staff"},
	}}
}

func (categories *Categories) List(_ context.Context) ([]*auth.Category, error) {
	categories.mu.Lock()
	defer categories.mu.Unlock()
	return append([]*auth.Category(nil), categories.list...), nil
}

func (categories *Categories) FindByID(_ context.Context, id int64) (*auth.Category, error) {
	categories.mu.Lock()
	defer categories.mu.Unlock()
	for _, category := range categories.list {
		if category.ID == id {
			return category, nil
		}
	}
	return nil, apperr.NotFound("Category")
}

func (categories *Categories) Create(_ context.Context, category *auth.Category) error {
	categories.mu.Lock()
	defer categories.mu.Unlock()
	for _, existing := range categories.list {
		if existing.Name == category.Name {
			return apperr.Conflict("Record already exists: al_user_category_category_name_key")
		}
	}
	category.ID = int64(len(categories.list) + 1)
	categories.list = append(categories.list, category)
	return nil
}

// # Sessions

// Sessions is an in-memory [auth.SessionRepository].
type Sessions struct {
	mu   sync.Mutex
	byID map[string]*auth.Session
}

func NewSessions() *Sessions {
	return &Sessions{byID: map[string]*auth.Session{}}
}

func (sessions *Sessions) Create(_ context.Context, session *auth.Session) error {
	sessions.mu.Lock()
	defer sessions.mu.Unlock()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}
	clone := *session
	sessions.byID[session.ID] = &clone
	return nil
}

func (sessions *Sessions) active(session *auth.Session) bool {
	return !session.IsRevoked && session.ExpiresAt.After(time.Now())
}

func (sessions *Sessions) FindByTokenHash(_ context.Context, tokenHash string) (*auth.Session, error) {
	sessions.mu.Lock()
	defer sessions.mu.Unlock()
	for _, session := range sessions.byID {
		if session.TokenHash == tokenHash && sessions.active(session) {
			clone := *session
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Session")
}

func (sessions *Sessions) ListActive(_ context.Context, userID string) ([]*auth.Session, error) {
	sessions.mu.Lock()
	defer sessions.mu.Unlock()
	var out []*auth.Session
	for _, session := range sessions.byID {
		if session.UserID == userID && sessions.active(session) {
			clone := *session
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (sessions *Sessions) Revoke(_ context.Context, userID, sessionID string) error {
	sessions.mu.Lock()
	defer sessions.mu.Unlock()
	session, ok := sessions.byID[sessionID]
	if !ok || session.UserID != userID || session.IsRevoked {
		return apperr.NotFound("Session")
	}
	session.IsRevoked = true
	return nil
}

func (sessions *Sessions) RevokeAll(_ context.Context, userID string) error {
	return sessions.RevokeOthers(context.Background(), userID, "")
}

func (sessions *Sessions) RevokeOthers(_ context.Context, userID, currentSessionID string) error {
	sessions.mu.Lock()
	defer sessions.mu.Unlock()
	for id, session := range sessions.byID {
		if session.UserID == userID && id != currentSessionID {
			session.IsRevoked = true
		}
	}
	return nil
}

func (sessions *Sessions) DeleteExpired(_ context.Context) (int64, error) {
	sessions.mu.Lock()
	defer sessions.mu.Unlock()
	var removed int64
	for id, session := range sessions.byID {
		if !session.ExpiresAt.After(time.Now()) {
			delete(sessions.byID, id)
			removed++
		}
	}
	return removed, nil
}

// Revoked reports whether the session with id exists and is revoked.
func (sessions *Sessions) Revoked(id string) bool {
	sessions.mu.Lock()
	defer sessions.mu.Unlock()
	session, ok := sessions.byID[id]
	return ok && session.IsRevoked
}

// # Tokens

// Tokens is a [auth.TokenProvider] that returns predictable strings.
type Tokens struct{}

func (Tokens) GenerateAccessToken(userID, login, role string, _ time.Duration) (string, error) {
	return "access." + userID + "." + login + "." + role, nil
}
