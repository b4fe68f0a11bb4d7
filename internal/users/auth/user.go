// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

/*
Package auth implements user registration, categories and session management.

A user never picks a login: it is derived from the full name by the login
package at registration time and is immutable afterwards.
*/
package auth

import (
	"time"

	"github.com/Darigraye/MEPHI-practice/internal/platform/sec"
	"github.com/Darigraye/MEPHI-practice/internal/users/login"
)

// # Domain Entities

// User represents a registered member of the laboratory.
type User struct {
	ID           string       `json:"id"`
	Login        string       `json:"login"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone_number"`
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	Patronymic   string       `json:"patronymic,omitempty"`
	CategoryID   int64        `json:"category_id"`
	CategoryName string       `json:"category_name,omitempty"`
	PasswordHash string       `json:"-"`
	Role         sec.UserRole `json:"role"`
	RegisteredAt time.Time    `json:"registered_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Name returns the person-name tuple the login was derived from.
func (user *User) Name() login.Name {
	return login.Name{First: user.FirstName, Last: user.LastName, Patronymic: user.Patronymic}
}

// Category groups users (students, staff, ...).
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Session represents an active refresh-token session.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"-"`
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	ExpiresAt time.Time `json:"expires_at"`
	IsRevoked bool      `json:"is_revoked"`
	CreatedAt time.Time `json:"created_at"`
}

// # Field Identifiers

const (
	FieldLogin           = "login"
	FieldEmail           = "email"
	FieldPhone           = "phone_number"
	FieldFirstName       = "first_name"
	FieldLastName        = "last_name"
	FieldPatronymic      = "patronymic"
	FieldCategoryID      = "category_id"
	FieldPassword        = "password"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldName            = "name"
	FieldAccessToken     = "access_token"
	FieldTokenType       = "token_type"
	FieldExpiresIn       = "expires_in"
	FieldUser            = "user"
)
