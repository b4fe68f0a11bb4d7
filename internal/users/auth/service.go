// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Darigraye/MEPHI-practice/internal/platform/apperr"
	"github.com/Darigraye/MEPHI-practice/internal/platform/sec"
	"github.com/Darigraye/MEPHI-practice/internal/platform/validate"
	"github.com/Darigraye/MEPHI-practice/internal/system"
	"github.com/Darigraye/MEPHI-practice/internal/users/login"
	"github.com/Darigraye/MEPHI-practice/pkg/uuidv7"
)

// # Contracts & Types

// TokenProvider defines the contract for generating access tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	GenerateAccessToken(userID, login, role string, timeToLive time.Duration) (string, error)
}

// Service implements registration, authentication and category use cases.
type Service struct {
	userRepository     UserRepository
	categoryRepository CategoryRepository
	sessionRepository  SessionRepository
	generator          *login.Generator
	tokenProvider      TokenProvider
	journal            *system.Journal
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	categoryRepo CategoryRepository,
	sessionRepo SessionRepository,
	generator *login.Generator,
	tokenProv TokenProvider,
	journal *system.Journal,
) *Service {
	return &Service{
		userRepository:     userRepo,
		categoryRepository: categoryRepo,
		sessionRepository:  sessionRepo,
		generator:          generator,
		tokenProvider:      tokenProv,
		journal:            journal,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	FirstName  string
	LastName   string
	Patronymic string
	Email      string
	Phone      string
	CategoryID int64
	Password   string
}

func (input *RegisterInput) normalize() {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Patronymic = strings.TrimSpace(input.Patronymic)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Phone = strings.TrimSpace(input.Phone)
}

func (input *RegisterInput) name() login.Name {
	return login.Name{First: input.FirstName, Last: input.LastName, Patronymic: input.Patronymic}
}

func (input *RegisterInput) validate() error {
	validator := &validate.Validator{}
	validator.Required(FieldFirstName, input.FirstName).
		MaxLen(FieldFirstName, input.FirstName, MaxNameLength).
		Required(FieldLastName, input.LastName).
		MaxLen(FieldLastName, input.LastName, MaxNameLength).
		Required(FieldPatronymic, input.Patronymic).
		MaxLen(FieldPatronymic, input.Patronymic, MaxNameLength).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPhone, input.Phone).
		Phone(FieldPhone, input.Phone).
		Custom(FieldCategoryID, input.CategoryID <= 0, "must be a positive integer").
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength).
		MaxBytes(FieldPassword, input.Password, sec.MaxPasswordBytes)

	return validator.Err()
}

/*
Register validates, hashes, and persists a new user account.

The login is never chosen by the client: it is derived from the full name
and inserted under the generator's prefix lock, with re-derivation when a
concurrent registration wins the same value.

Returns:
  - *User: Created entity, login included
  - err: ValidationError, Conflict (email/phone taken) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	input.normalize()

	if err := input.validate(); err != nil {
		return nil, err
	}

	// Surface name problems before the journal and the lock get involved.
	if _, err := login.Prefix(input.name()); err != nil {
		return nil, err
	}

	category, err := service.categoryRepository.FindByID(context, input.CategoryID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, validate.FieldError(FieldCategoryID, "does not exist")
		}
		return nil, fmt.Errorf("auth_service_find_category_failed: %w", err)
	}

	switch _, err := service.userRepository.FindByEmail(context, input.Email); {
	case err == nil:
		return nil, apperr.Conflict("Email is already registered")
	case !apperr.IsNotFound(err):
		return nil, fmt.Errorf("auth_service_find_email_failed: %w", err)
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		ID:           uuidv7.New(),
		Email:        input.Email,
		Phone:        input.Phone,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Patronymic:   input.Patronymic,
		CategoryID:   category.ID,
		CategoryName: category.Name,
		PasswordHash: hashedPassword,
		Role:         sec.RoleMember,
	}

	err = service.journal.Track(context, journalSender, "register_user", func() (string, error) {
		assigned, err := service.generator.Assign(context, user.Name(), service.insertUser(user))
		if err != nil {
			return "", err
		}
		return "login=" + assigned, nil
	})
	if err != nil {
		if apperr.As(err) != nil {
			return nil, err
		}
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	return user, nil
}

// insertUser persists user under each candidate login the generator proposes.
func (service *Service) insertUser(user *User) login.InsertFunc {
	return func(ctx context.Context, candidate string) error {
		user.Login = candidate
		return service.userRepository.Create(ctx, user)
	}
}

// PreviewLogin returns the login the given name would receive right now.
// Nothing is reserved.
func (service *Service) PreviewLogin(context context.Context, name login.Name) (string, error) {
	return service.generator.Derive(context, name)
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login     string // login or email
	Password  string
	UserAgent string
	IPAddress string
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	SessionID             string
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *User
}

/*
Login validates user credentials and issues security tokens.

Identifiers containing '@' are looked up by email, anything else by login.
Unknown accounts and wrong passwords produce the same Unauthorized error.
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	identifier := strings.TrimSpace(input.Login)

	var user *User
	var err error
	if strings.Contains(identifier, "@") {
		user, err = service.userRepository.FindByEmail(context, strings.ToLower(identifier))
	} else {
		user, err = service.userRepository.FindByLogin(context, strings.ToLower(identifier))
	}
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	return service.openSession(context, user, input.UserAgent, input.IPAddress)
}

func (service *Service) openSession(context context.Context, user *User, userAgent, ipAddress string) (*LoginSession, error) {
	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Login, string(user.Role), AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	expiresAt := time.Now().UTC().Add(RefreshTokenTTL)
	session := &Session{
		ID:        uuidv7.New(),
		UserID:    user.ID,
		TokenHash: sec.HashToken(refreshToken),
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: expiresAt,
	}

	if err := service.sessionRepository.Create(context, session); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	return &LoginSession{
		SessionID:             session.ID,
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}

// Logout revokes the session behind refreshToken. Unknown tokens are ignored.
func (service *Service) Logout(context context.Context, refreshToken string) error {
	session, err := service.sessionRepository.FindByTokenHash(context, sec.HashToken(refreshToken))
	if err != nil {
		return nil
	}

	if err := service.sessionRepository.Revoke(context, session.UserID, session.ID); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}
	return nil
}

// # Session Management

/*
RefreshSession implements refresh token rotation.

The presented token is revoked before a new pair is issued, so a replayed
token is rejected.
*/
func (service *Service) RefreshSession(context context.Context, refreshToken, userAgent, ipAddress string) (*LoginSession, error) {
	session, err := service.sessionRepository.FindByTokenHash(context, sec.HashToken(refreshToken))
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	if err := service.sessionRepository.Revoke(context, session.UserID, session.ID); err != nil {
		return nil, fmt.Errorf("auth_service_refresh_revoke_failed: %w", err)
	}

	user, err := service.userRepository.FindByID(context, session.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("User not found or deleted")
	}

	return service.openSession(context, user, userAgent, ipAddress)
}

// PurgeExpiredSessions removes expired refresh sessions.
func (service *Service) PurgeExpiredSessions(context context.Context) (int64, error) {
	removed, err := service.sessionRepository.DeleteExpired(context)
	if err != nil {
		return 0, fmt.Errorf("auth_service_purge_sessions_failed: %w", err)
	}
	return removed, nil
}

// # Categories

// ListCategories returns every user category.
func (service *Service) ListCategories(context context.Context) ([]*Category, error) {
	categories, err := service.categoryRepository.List(context)
	if err != nil {
		return nil, fmt.Errorf("auth_service_list_categories_failed: %w", err)
	}
	return categories, nil
}

// CreateCategory adds a user category. Names are unique.
func (service *Service) CreateCategory(context context.Context, name, description string) (*Category, error) {
	category := &Category{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, category.Name).
		MaxLen(FieldName, category.Name, MaxNameLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	err := service.journal.Track(context, journalSender, "create_category", func() (string, error) {
		if err := service.categoryRepository.Create(context, category); err != nil {
			return "", err
		}
		return "category=" + category.Name, nil
	})
	if err != nil {
		if apperr.As(err) != nil {
			return nil, err
		}
		return nil, fmt.Errorf("auth_service_create_category_failed: %w", err)
	}

	return category, nil
}
