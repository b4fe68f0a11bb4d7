// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

/*
Package ctxutil reads and writes the request-scoped values the middleware
chain attaches to a [context.Context]: the correlation id, the request
logger and the verified token claims.

Services never take these as parameters. Journal entries and created_by
columns are attributed through [GetActorLogin] instead.
*/
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/Darigraye/MEPHI-practice/internal/platform/ctxkey"
	"github.com/Darigraye/MEPHI-practice/internal/platform/sec"
)

// AnonymousActor is recorded for actions taken without a verified token.
const AnonymousActor = "anonymous"

// # Request Tracing

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID returns "" when the request went around the RequestID middleware.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger falls back to [slog.Default] so background code can log safely.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// # Identity & Access

func WithAuthUser(ctx context.Context, user *sec.AuthClaims) context.Context {
	return context.WithValue(ctx, ctxkey.KeyUser, user)
}

// GetAuthUser returns nil for anonymous requests.
func GetAuthUser(ctx context.Context) *sec.AuthClaims {
	claims, _ := ctx.Value(ctxkey.KeyUser).(*sec.AuthClaims)
	return claims
}

// GetActorLogin is the login written to al_log.login and created_by columns.
func GetActorLogin(ctx context.Context) string {
	if claims := GetAuthUser(ctx); claims != nil && claims.Login != "" {
		return claims.Login
	}
	return AnonymousActor
}

// HasRole reports whether the caller is authenticated with at least role.
func HasRole(ctx context.Context, role sec.UserRole) bool {
	claims := GetAuthUser(ctx)
	return claims != nil && sec.UserRole(claims.Role).AtLeast(role)
}
