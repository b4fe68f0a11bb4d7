// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package redis_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	platformredis "github.com/Darigraye/MEPHI-practice/internal/platform/redis"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewClient(t *testing.T) {
	server := miniredis.RunT(t)

	client, err := platformredis.NewClient(context.Background(), "redis://"+server.Addr()+"/0", discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Set(context.Background(), "login:lock:smi", "1", 0).Err())
	assert.True(t, server.Exists("login:lock:smi"))
}

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := platformredis.NewClient(context.Background(), "not-a-url", discardLogger())
	assert.ErrorContains(t, err, "invalid URL")
}

func TestPing_ServerGone(t *testing.T) {
	server := miniredis.RunT(t)

	client, err := platformredis.NewClient(context.Background(), "redis://"+server.Addr(), discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	server.Close()
	assert.Error(t, platformredis.Ping(context.Background(), client))
}
