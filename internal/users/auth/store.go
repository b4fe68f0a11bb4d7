// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package auth

import (
	"context"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	// FindByID returns the active account with the given ID.
	FindByID(context context.Context, id string) (*User, error)

	// FindByLogin returns the active account with the given login, category name included.
	FindByLogin(context context.Context, login string) (*User, error)

	// FindByEmail returns the active account with the given email.
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create inserts a new account.

		A duplicate login must surface as a unique violation on the login
		constraint (or login.ErrLoginTaken) so that derivation can retry.
	*/
	Create(context context.Context, user *User) error

	/*
		MaxSuffix returns the highest numeric login suffix issued for prefix,
		soft-deleted accounts included.
	*/
	MaxSuffix(context context.Context, prefix string) (int, bool, error)

	// UpdateContacts replaces email and phone.
	UpdateContacts(context context.Context, userID, email, phone string) error

	// UpdatePassword replaces only the password hash.
	UpdatePassword(context context.Context, userID, newHash string) error

	// SoftDelete marks the account deleted. The login stays reserved.
	SoftDelete(context context.Context, id string) error
}

// # Category Data Access

// CategoryRepository defines the data access contract for user categories.
type CategoryRepository interface {
	List(context context.Context) ([]*Category, error)
	FindByID(context context.Context, id int64) (*Category, error)
	Create(context context.Context, category *Category) error
}

// # Session Data Access

// SessionRepository defines the data access contract for refresh-token sessions.
type SessionRepository interface {
	Create(context context.Context, session *Session) error

	// FindByTokenHash returns the active, unexpired session matching tokenHash.
	FindByTokenHash(context context.Context, tokenHash string) (*Session, error)

	// ListActive returns the user's active sessions, newest first.
	ListActive(context context.Context, userID string) ([]*Session, error)

	Revoke(context context.Context, userID, sessionID string) error
	RevokeAll(context context.Context, userID string) error
	RevokeOthers(context context.Context, userID, currentSessionID string) error

	// DeleteExpired physically removes expired sessions and reports how many.
	DeleteExpired(context context.Context) (int64, error)
}
