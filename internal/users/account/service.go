// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/Darigraye/MEPHI-practice/internal/platform/apperr"
	"github.com/Darigraye/MEPHI-practice/internal/platform/sec"
	"github.com/Darigraye/MEPHI-practice/internal/platform/validate"
	"github.com/Darigraye/MEPHI-practice/internal/system"
	"github.com/Darigraye/MEPHI-practice/internal/users/auth"
	"github.com/Darigraye/MEPHI-practice/internal/users/login"
	"github.com/Darigraye/MEPHI-practice/pkg/pointer"
)

// # Service Layer

// Service orchestrates profile and session use cases.
type Service struct {
	userStore    UserStore
	sessionStore SessionStore
	journal      *system.Journal
}

// NewService constructs a new [Service] with its repository dependencies.
func NewService(users UserStore, sessions SessionStore, journal *system.Journal) *Service {
	return &Service{userStore: users, sessionStore: sessions, journal: journal}
}

// # Profile Management

/*
GetProfile returns the public profile of the user with the given login,
category name included.

A malformed login is reported as not found rather than as a validation
error, so the endpoint behaves like a plain lookup.
*/
func (service *Service) GetProfile(context context.Context, userLogin string) (*Profile, error) {
	userLogin = strings.ToLower(strings.TrimSpace(userLogin))
	if !login.Valid(userLogin) {
		return nil, apperr.NotFound("User")
	}

	user, err := service.userStore.FindByLogin(context, userLogin)
	if err != nil {
		return nil, fmt.Errorf("account_service_get_profile_failed: %w", err)
	}
	return profileOf(user), nil
}

// GetMe returns the full record of the authenticated user.
func (service *Service) GetMe(context context.Context, userID string) (*auth.User, error) {
	user, err := service.userStore.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_get_me_failed: %w", err)
	}
	return user, nil
}

// UpdateContactsInput holds the contact fields to change. Nil leaves a field as is.
type UpdateContactsInput struct {
	Email *string
	Phone *string
}

/*
UpdateContacts replaces the email and/or phone of a user.

Names are not editable: the login was derived from them.
*/
func (service *Service) UpdateContacts(context context.Context, userID string, input UpdateContactsInput) (*auth.User, error) {
	user, err := service.userStore.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_update_contacts_failed: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(pointer.Fallback(input.Email, user.Email)))
	phone := strings.TrimSpace(pointer.Fallback(input.Phone, user.Phone))

	validator := &validate.Validator{}
	validator.Required(auth.FieldEmail, email).
		Email(auth.FieldEmail, email).
		Required(auth.FieldPhone, phone).
		Phone(auth.FieldPhone, phone)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if email != user.Email {
		if owner, err := service.userStore.FindByEmail(context, email); err == nil && owner.ID != user.ID {
			return nil, apperr.Conflict("Email is already registered")
		}
	}

	err = service.journal.Track(context, journalSender, "update_contacts", func() (string, error) {
		return "login=" + user.Login, service.userStore.UpdateContacts(context, user.ID, email, phone)
	})
	if err != nil {
		if apperr.As(err) != nil {
			return nil, err
		}
		return nil, fmt.Errorf("account_service_update_contacts_failed: %w", err)
	}

	user.Email, user.Phone = email, phone
	return user, nil
}

// # Security

/*
ChangePassword verifies the current password, stores the new one and
revokes every other session of the user.

currentRefreshToken identifies the session to keep; when it is empty or
unknown, every session is revoked.
*/
func (service *Service) ChangePassword(context context.Context, userID, currentPassword, newPassword, currentRefreshToken string) error {
	validator := &validate.Validator{}
	validator.Required(auth.FieldCurrentPassword, currentPassword).
		Required(auth.FieldNewPassword, newPassword).
		MinLen(auth.FieldNewPassword, newPassword, auth.MinPasswordLength).
		MaxBytes(auth.FieldNewPassword, newPassword, sec.MaxPasswordBytes)
	if err := validator.Err(); err != nil {
		return err
	}

	user, err := service.userStore.FindByID(context, userID)
	if err != nil {
		return fmt.Errorf("account_service_change_password_failed: %w", err)
	}

	if !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("account_service_change_password_hash_failed: %w", err)
	}

	return service.journal.Track(context, journalSender, "change_password", func() (string, error) {
		if err := service.userStore.UpdatePassword(context, userID, hashedPassword); err != nil {
			return "", err
		}

		if current := service.currentSession(context, currentRefreshToken); current != nil && current.UserID == userID {
			return "login=" + user.Login, service.sessionStore.RevokeOthers(context, userID, current.ID)
		}
		return "login=" + user.Login, service.sessionStore.RevokeAll(context, userID)
	})
}

// DeleteMe soft-deletes the account after a password check and revokes all
// sessions. The login stays reserved.
func (service *Service) DeleteMe(context context.Context, userID, password string) error {
	user, err := service.userStore.FindByID(context, userID)
	if err != nil {
		return fmt.Errorf("account_service_delete_failed: %w", err)
	}

	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return apperr.Unauthorized("Password is incorrect")
	}

	return service.journal.Track(context, journalSender, "delete_account", func() (string, error) {
		if err := service.userStore.SoftDelete(context, userID); err != nil {
			return "", err
		}
		return "login=" + user.Login, service.sessionStore.RevokeAll(context, userID)
	})
}

// # Sessions

// ListSessions returns the user's active sessions, marking the one behind
// currentRefreshToken.
func (service *Service) ListSessions(context context.Context, userID, currentRefreshToken string) ([]*SessionInfo, error) {
	sessions, err := service.sessionStore.ListActive(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_list_sessions_failed: %w", err)
	}

	currentID := ""
	if current := service.currentSession(context, currentRefreshToken); current != nil {
		currentID = current.ID
	}

	infos := make([]*SessionInfo, 0, len(sessions))
	for _, session := range sessions {
		infos = append(infos, &SessionInfo{
			ID:        session.ID,
			UserAgent: session.UserAgent,
			IPAddress: session.IPAddress,
			CreatedAt: session.CreatedAt,
			ExpiresAt: session.ExpiresAt,
			IsCurrent: session.ID == currentID,
		})
	}
	return infos, nil
}

// RevokeSession revokes one of the user's sessions.
func (service *Service) RevokeSession(context context.Context, userID, sessionID string) error {
	if err := service.sessionStore.Revoke(context, userID, sessionID); err != nil {
		return fmt.Errorf("account_service_revoke_session_failed: %w", err)
	}
	return nil
}

// RevokeOtherSessions revokes every session except the current one.
func (service *Service) RevokeOtherSessions(context context.Context, userID, currentRefreshToken string) error {
	current := service.currentSession(context, currentRefreshToken)
	if current == nil || current.UserID != userID {
		return apperr.Unauthorized("Missing active session cookie")
	}

	if err := service.sessionStore.RevokeOthers(context, userID, current.ID); err != nil {
		return fmt.Errorf("account_service_revoke_others_failed: %w", err)
	}
	return nil
}

func (service *Service) currentSession(context context.Context, refreshToken string) *auth.Session {
	if refreshToken == "" {
		return nil
	}
	session, err := service.sessionStore.FindByTokenHash(context, sec.HashToken(refreshToken))
	if err != nil {
		return nil
	}
	return session
}
