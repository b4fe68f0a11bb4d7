// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package auth

import (
	"context"
	"regexp"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Darigraye/MEPHI-practice/internal/platform/dberr"
	"github.com/Darigraye/MEPHI-practice/internal/platform/sec"
	"github.com/Darigraye/MEPHI-practice/internal/users/login"
	"github.com/Darigraye/MEPHI-practice/pkg/pointer"
)

// # User Repository

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

const userColumns = `
	u.id, u.login, u.email, u.phone_number, u.first_name, u.last_name, u.patronymic,
	u.user_category_id, c.category_name, u.password_hash, u.role, u.date_registrate, u.updated_at`

const userFrom = `
	FROM al_user u
	JOIN al_user_category c ON c.id = u.user_category_id`

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	var patronymic *string
	var role string

	err := row.Scan(
		&user.ID,
		&user.Login,
		&user.Email,
		&user.Phone,
		&user.FirstName,
		&user.LastName,
		&patronymic,
		&user.CategoryID,
		&user.CategoryName,
		&user.PasswordHash,
		&role,
		&user.RegisteredAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Patronymic = pointer.Val(patronymic)
	user.Role = sec.UserRole(role)
	return user, nil
}

func (repository *PostgresUserRepository) findOne(context context.Context, action, where string, arg any) (*User, error) {
	query := `SELECT ` + userColumns + userFrom + ` WHERE ` + where + ` AND u.deleted_at IS NULL`

	user, err := scanUser(repository.pool.QueryRow(context, query, arg))
	if err != nil {
		return nil, dberr.NotFound(err, action, "User")
	}
	return user, nil
}

func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	return repository.findOne(context, "find_user_by_id", "u.id = $1", id)
}

func (repository *PostgresUserRepository) FindByLogin(context context.Context, login string) (*User, error) {
	return repository.findOne(context, "find_user_by_login", "u.login = $1", login)
}

func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	return repository.findOne(context, "find_user_by_email", "lower(u.email) = lower($1)", email)
}

/*
Create inserts a new user row.

A duplicate login is returned as the raw unique violation so that
[login.IsTaken] recognizes it; everything else goes through [dberr.Wrap].
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO al_user (
			id, login, email, phone_number, first_name, last_name, patronymic,
			user_category_id, password_hash, role, date_registrate, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	now := time.Now().UTC()
	if user.RegisteredAt.IsZero() {
		user.RegisteredAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Login,
		user.Email,
		user.Phone,
		user.FirstName,
		user.LastName,
		pointer.NilIfZero(user.Patronymic),
		user.CategoryID,
		user.PasswordHash,
		string(user.Role),
		user.RegisteredAt,
		user.UpdatedAt,
	)

	if login.IsTaken(err) {
		return err
	}
	return dberr.Wrap(err, "create_user")
}

/*
MaxSuffix returns the highest numeric suffix among logins shaped
"<prefix><digits>". Soft-deleted users are deliberately included.
*/
func (repository *PostgresUserRepository) MaxSuffix(context context.Context, prefix string) (int, bool, error) {
	const query = `
		SELECT max(substring(login FROM $2::int)::bigint)
		FROM al_user
		WHERE login ~ $1`

	pattern := "^" + regexp.QuoteMeta(prefix) + "[0-9]+$"

	var max *int64
	if err := repository.pool.QueryRow(context, query, pattern, len(prefix)+1).Scan(&max); err != nil {
		return 0, false, dberr.Wrap(err, "max_login_suffix")
	}

	if max == nil {
		return 0, false, nil
	}
	return int(*max), true, nil
}

func (repository *PostgresUserRepository) UpdateContacts(context context.Context, userID, email, phone string) error {
	const query = `
		UPDATE al_user
		SET email = $2, phone_number = $3, updated_at = $4
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := repository.pool.Exec(context, query, userID, email, phone, time.Now().UTC())
	if err != nil {
		return dberr.Wrap(err, "update_user_contacts")
	}
	if tag.RowsAffected() == 0 {
		return dberr.NotFound(pgx.ErrNoRows, "update_user_contacts", "User")
	}
	return nil
}

func (repository *PostgresUserRepository) UpdatePassword(context context.Context, userID, newHash string) error {
	const query = `
		UPDATE al_user
		SET password_hash = $2, updated_at = $3
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := repository.pool.Exec(context, query, userID, newHash, time.Now().UTC())
	if err != nil {
		return dberr.Wrap(err, "update_user_password")
	}
	if tag.RowsAffected() == 0 {
		return dberr.NotFound(pgx.ErrNoRows, "update_user_password", "User")
	}
	return nil
}

func (repository *PostgresUserRepository) SoftDelete(context context.Context, id string) error {
	const query = "UPDATE al_user SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL"

	if _, err := repository.pool.Exec(context, query, id, time.Now().UTC()); err != nil {
		return dberr.Wrap(err, "soft_delete_user")
	}
	return nil
}

// # Category Repository

// PostgresCategoryRepository implements [CategoryRepository].
type PostgresCategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{pool: pool}
}

func (repository *PostgresCategoryRepository) List(context context.Context) ([]*Category, error) {
	const query = `SELECT id, category_name, description FROM al_user_category ORDER BY category_name`

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_categories")
	}

	categories, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Category, error) {
		category := &Category{}
		err := row.Scan(&category.ID, &category.Name, &category.Description)
		return category, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "scan_categories")
	}
	return categories, nil
}

func (repository *PostgresCategoryRepository) FindByID(context context.Context, id int64) (*Category, error) {
	const query = `SELECT id, category_name, description FROM al_user_category WHERE id = $1`

	category := &Category{}
	err := repository.pool.QueryRow(context, query, id).Scan(&category.ID, &category.Name, &category.Description)
	if err != nil {
		return nil, dberr.NotFound(err, "find_category", "Category")
	}
	return category, nil
}

func (repository *PostgresCategoryRepository) Create(context context.Context, category *Category) error {
	const query = `
		INSERT INTO al_user_category (category_name, description)
		VALUES ($1, $2)
		RETURNING id`

	if err := repository.pool.QueryRow(context, query, category.Name, category.Description).Scan(&category.ID); err != nil {
		return dberr.Wrap(err, "create_category")
	}
	return nil
}

// # Session Repository

// PostgresSessionRepository implements [SessionRepository].
type PostgresSessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{pool: pool}
}

const sessionColumns = `id, user_id, token_hash, user_agent, ip_address, expires_at, is_revoked, created_at`

func scanSession(row pgx.Row) (*Session, error) {
	session := &Session{}
	err := row.Scan(
		&session.ID,
		&session.UserID,
		&session.TokenHash,
		&session.UserAgent,
		&session.IPAddress,
		&session.ExpiresAt,
		&session.IsRevoked,
		&session.CreatedAt,
	)
	return session, err
}

func (repository *PostgresSessionRepository) Create(context context.Context, session *Session) error {
	const query = `INSERT INTO al_session (` + sessionColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}

	_, err := repository.pool.Exec(context, query,
		session.ID,
		session.UserID,
		session.TokenHash,
		session.UserAgent,
		session.IPAddress,
		session.ExpiresAt,
		session.IsRevoked,
		session.CreatedAt,
	)
	return dberr.Wrap(err, "create_session")
}

func (repository *PostgresSessionRepository) FindByTokenHash(context context.Context, tokenHash string) (*Session, error) {
	const query = `
		SELECT ` + sessionColumns + `
		FROM al_session
		WHERE token_hash = $1 AND is_revoked = FALSE AND expires_at > now()`

	session, err := scanSession(repository.pool.QueryRow(context, query, tokenHash))
	if err != nil {
		return nil, dberr.NotFound(err, "find_session", "Session")
	}
	return session, nil
}

func (repository *PostgresSessionRepository) ListActive(context context.Context, userID string) ([]*Session, error) {
	const query = `
		SELECT ` + sessionColumns + `
		FROM al_session
		WHERE user_id = $1 AND is_revoked = FALSE AND expires_at > now()
		ORDER BY created_at DESC`

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_sessions")
	}

	sessions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Session, error) {
		return scanSession(row)
	})
	if err != nil {
		return nil, dberr.Wrap(err, "scan_sessions")
	}
	return sessions, nil
}

func (repository *PostgresSessionRepository) Revoke(context context.Context, userID, sessionID string) error {
	const query = "UPDATE al_session SET is_revoked = TRUE WHERE id = $1 AND user_id = $2 AND is_revoked = FALSE"

	tag, err := repository.pool.Exec(context, query, sessionID, userID)
	if err != nil {
		return dberr.Wrap(err, "revoke_session")
	}
	if tag.RowsAffected() == 0 {
		return dberr.NotFound(pgx.ErrNoRows, "revoke_session", "Session")
	}
	return nil
}

func (repository *PostgresSessionRepository) RevokeAll(context context.Context, userID string) error {
	const query = "UPDATE al_session SET is_revoked = TRUE WHERE user_id = $1 AND is_revoked = FALSE"

	_, err := repository.pool.Exec(context, query, userID)
	return dberr.Wrap(err, "revoke_all_sessions")
}

func (repository *PostgresSessionRepository) RevokeOthers(context context.Context, userID, currentSessionID string) error {
	const query = "UPDATE al_session SET is_revoked = TRUE WHERE user_id = $1 AND id <> $2 AND is_revoked = FALSE"

	_, err := repository.pool.Exec(context, query, userID, currentSessionID)
	return dberr.Wrap(err, "revoke_other_sessions")
}

func (repository *PostgresSessionRepository) DeleteExpired(context context.Context) (int64, error) {
	tag, err := repository.pool.Exec(context, "DELETE FROM al_session WHERE expires_at <= now()")
	if err != nil {
		return 0, dberr.Wrap(err, "delete_expired_sessions")
	}
	return tag.RowsAffected(), nil
}
