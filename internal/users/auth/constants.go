// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL is the duration a session/refresh token remains valid.
	RefreshTokenTTL = 30 * 24 * time.Hour

	// RefreshTokenLength is the byte length of the random refresh token.
	RefreshTokenLength = 32

	// MinPasswordLength applies to registration and password changes.
	MinPasswordLength = 8

	// MaxNameLength mirrors the al_user name columns.
	MaxNameLength = 50
)

// journalSender identifies this package in al_log.
const journalSender = "auth"
