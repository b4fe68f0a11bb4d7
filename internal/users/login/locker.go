// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package login

import (
	stdctx "context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Darigraye/MEPHI-practice/internal/platform/apperr"
	"github.com/Darigraye/MEPHI-practice/internal/platform/constants"
	"github.com/Darigraye/MEPHI-practice/internal/platform/ctxutil"
	"github.com/Darigraye/MEPHI-practice/internal/platform/sec"
)

// PrefixLocker serializes login derivation for one prefix across API instances.
// The returned unlock is safe to call once.
type PrefixLocker interface {
	Lock(context stdctx.Context, prefix string) (unlock func(), err error)
}

// NoopLocker never blocks.
type NoopLocker struct{}

// Lock implements [PrefixLocker].
func (NoopLocker) Lock(stdctx.Context, string) (func(), error) {
	return func() {}, nil
}

// pollInterval is the wait between SET NX attempts while the lock is held elsewhere.
const pollInterval = 25 * time.Millisecond

// releaseScript deletes the key only if it still holds our token, so an
// expired lock re-acquired by another instance is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// ErrLockTimeout is the cause attached when the lock could not be acquired in time.
var ErrLockTimeout = errors.New("login: prefix lock wait timed out")

// RedisLocker implements [PrefixLocker] with SET NX PX.
type RedisLocker struct {
	client redis.UniversalClient
	ttl    time.Duration
	wait   time.Duration
}

// NewRedisLocker builds a RedisLocker. ttl bounds how long a crashed holder
// keeps the lock; callers wait at most ttl for it.
func NewRedisLocker(client redis.UniversalClient, ttl time.Duration) *RedisLocker {
	return &RedisLocker{client: client, ttl: ttl, wait: ttl}
}

// Lock implements [PrefixLocker].
func (locker *RedisLocker) Lock(context stdctx.Context, prefix string) (func(), error) {
	key := constants.RedisPrefixLoginLock + prefix

	token, err := sec.GenerateSecureToken(16)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("login_lock_token_failed: %w", err))
	}

	deadline := time.Now().Add(locker.wait)

	for {
		acquired, err := locker.client.SetNX(context, key, token, locker.ttl).Result()
		if err != nil {
			return nil, apperr.ServiceUnavailable("Login service is temporarily unavailable").
				WithCause(fmt.Errorf("login_lock_failed: %w", err))
		}
		if acquired {
			break
		}

		if time.Now().After(deadline) {
			return nil, apperr.ServiceUnavailable("Login derivation is busy, try again").WithCause(ErrLockTimeout)
		}

		select {
		case <-context.Done():
			return nil, context.Err()
		case <-time.After(pollInterval):
		}
	}

	unlock := func() {
		// Release even if the request context was cancelled meanwhile
		releaseCtx, cancel := stdctx.WithTimeout(stdctx.WithoutCancel(context), time.Second)
		defer cancel()

		if err := releaseScript.Run(releaseCtx, locker.client, []string{key}, token).Err(); err != nil {
			ctxutil.GetLogger(context).WarnContext(context, "login_lock_release_failed",
				slog.String("prefix", prefix),
				slog.Any("error", err),
			)
		}
	}

	return unlock, nil
}
