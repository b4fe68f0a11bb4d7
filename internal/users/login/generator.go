// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package login

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Darigraye/MEPHI-practice/internal/platform/apperr"
	"github.com/Darigraye/MEPHI-practice/internal/platform/ctxutil"
	"github.com/Darigraye/MEPHI-practice/internal/platform/dberr"
)

// MaxDeriveAttempts bounds how often [Generator.Assign] re-derives after a
// uniqueness conflict on the login column.
const MaxDeriveAttempts = 5

// ConstraintLogin is the unique constraint guarding al_user.login.
const ConstraintLogin = "al_user_login_key"

// ErrLoginTaken may be returned by an insert callback that detects the
// conflict itself (for example an in-memory store).
var ErrLoginTaken = errors.New("login: already taken")

// SuffixSource reports the highest numeric suffix issued for a prefix.
// Soft-deleted accounts count. found is false if the prefix was never used.
type SuffixSource interface {
	MaxSuffix(ctx context.Context, prefix string) (max int, found bool, err error)
}

// InsertFunc persists a user under the proposed login.
type InsertFunc func(ctx context.Context, login string) error

// Generator derives logins and assigns them under a per-prefix lock.
type Generator struct {
	source SuffixSource
	locker PrefixLocker
}

// NewGenerator builds a Generator. A nil locker disables cross-instance
// locking; uniqueness is then enforced by the constraint and retry alone.
func NewGenerator(source SuffixSource, locker PrefixLocker) *Generator {
	if locker == nil {
		locker = NoopLocker{}
	}
	return &Generator{source: source, locker: locker}
}

// Derive returns the next free login for name without reserving it.
//
// Two calls with no insert in between return the same value.
func (generator *Generator) Derive(context context.Context, name Name) (string, error) {
	prefix, err := Prefix(name)
	if err != nil {
		return "", err
	}
	return generator.next(context, prefix)
}

func (generator *Generator) next(context context.Context, prefix string) (string, error) {
	max, found, err := generator.source.MaxSuffix(context, prefix)
	if err != nil {
		return "", fmt.Errorf("login_max_suffix_failed: %w", err)
	}
	return Next(prefix, max, found), nil
}

// Assign derives a login for name and hands it to insert.
//
// The prefix is locked for the duration. If insert reports a conflict on the
// login column the login is re-derived, up to [MaxDeriveAttempts] times. Any
// other insert error is returned unchanged.
func (generator *Generator) Assign(context context.Context, name Name, insert InsertFunc) (string, error) {
	prefix, err := Prefix(name)
	if err != nil {
		return "", err
	}

	logger := ctxutil.GetLogger(context)

	unlock, err := generator.locker.Lock(context, prefix)
	if err != nil {
		return "", err
	}
	defer unlock()

	for attempt := 1; attempt <= MaxDeriveAttempts; attempt++ {
		login, err := generator.next(context, prefix)
		if err != nil {
			return "", err
		}

		err = insert(context, login)
		if err == nil {
			logger.DebugContext(context, "login_assigned", slog.String("login", login), slog.Int("attempt", attempt))
			return login, nil
		}

		if !IsTaken(err) {
			return "", err
		}

		logger.WarnContext(context, "login_conflict_retry",
			slog.String("login", login),
			slog.Int("attempt", attempt),
		)
	}

	return "", apperr.Conflict("Could not allocate a unique login, try again").
		WithCause(fmt.Errorf("login_assign_failed: prefix %q after %d attempts", prefix, MaxDeriveAttempts))
}

// IsTaken reports whether err signals that the proposed login already exists.
func IsTaken(err error) bool {
	return errors.Is(err, ErrLoginTaken) || dberr.IsUniqueViolation(err, ConstraintLogin)
}
