// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

/*
Package account handles profile lookup, contact updates and session security
for registered users.

# Architecture

  - Entities: Profile, SessionInfo (DTOs over auth types).
  - Domain: This package depends on the auth package for User and Session and
    talks to storage through narrow views of the auth repositories.
  - Security: Password changes and account deletion revoke refresh sessions.
*/
package account

import (
	"context"
	"time"

	"github.com/Darigraye/MEPHI-practice/internal/users/auth"
)

// # Domain Entities

// Profile is the view of a user visible to other members.
// Contact details are omitted.
type Profile struct {
	Login        string    `json:"login"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Patronymic   string    `json:"patronymic,omitempty"`
	CategoryName string    `json:"category_name"`
	Role         string    `json:"role"`
	RegisteredAt time.Time `json:"registered_at"`
}

func profileOf(user *auth.User) *Profile {
	return &Profile{
		Login:        user.Login,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Patronymic:   user.Patronymic,
		CategoryName: user.CategoryName,
		Role:         string(user.Role),
		RegisteredAt: user.RegisteredAt,
	}
}

// SessionInfo is a session without its token hash.
type SessionInfo struct {
	ID        string    `json:"id"`
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	IsCurrent bool      `json:"is_current"`
}

// # Repository Contracts

// UserStore is the part of [auth.UserRepository] this package needs.
type UserStore interface {
	FindByID(context context.Context, id string) (*auth.User, error)
	FindByLogin(context context.Context, login string) (*auth.User, error)
	FindByEmail(context context.Context, email string) (*auth.User, error)
	UpdateContacts(context context.Context, userID, email, phone string) error
	UpdatePassword(context context.Context, userID, newHash string) error
	SoftDelete(context context.Context, id string) error
}

// SessionStore is the part of [auth.SessionRepository] this package needs.
type SessionStore interface {
	FindByTokenHash(context context.Context, tokenHash string) (*auth.Session, error)
	ListActive(context context.Context, userID string) ([]*auth.Session, error)
	Revoke(context context.Context, userID, sessionID string) error
	RevokeAll(context context.Context, userID string) error
	RevokeOthers(context context.Context, userID, currentSessionID string) error
}

// journalSender identifies this package in al_log.
const journalSender = "account"
