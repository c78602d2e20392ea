package logging

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lines decodes every JSON log line written to buf.
func lines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		m := map[string]any{}
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m), sc.Text())
		out = append(out, m)
	}
	return out
}

func TestNewJSON_AllLevels(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewJSON(&buf, "debug")
	require.NoError(t, err)
	ctx := context.Background()

	log.Debug(ctx, "hashing", "algorithm", "bcrypt")
	log.Info(ctx, "Registered", "account_id", "a-1")
	log.Warn(ctx, "invalid token", "method", "GetProfile")
	log.Error(ctx, "request failed", "error", "db down")

	got := lines(t, &buf)
	require.Len(t, got, 4)

	want := []struct{ level, msg, key, val string }{
		{"DEBUG", "hashing", "algorithm", "bcrypt"},
		{"INFO", "Registered", "account_id", "a-1"},
		{"WARN", "invalid token", "method", "GetProfile"},
		{"ERROR", "request failed", "error", "db down"},
	}
	for i, w := range want {
		assert.Equal(t, w.level, got[i]["level"])
		assert.Equal(t, w.msg, got[i]["msg"])
		assert.Equal(t, w.val, got[i][w.key])
	}
}

func TestNewJSON_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewJSON(&buf, "warn")
	require.NoError(t, err)
	ctx := context.Background()

	log.Debug(ctx, "hidden")
	log.Info(ctx, "hidden")
	log.Warn(ctx, "shown")

	got := lines(t, &buf)
	require.Len(t, got, 1)
	assert.Equal(t, "shown", got[0]["msg"])
}

func TestNewJSON_RejectsUnknownLevel(t *testing.T) {
	_, err := NewJSON(&bytes.Buffer{}, "loud")
	assert.Error(t, err)
}

func TestWith_AddsAttributesToChildOnly(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewJSON(&buf, "info")
	require.NoError(t, err)
	ctx := context.Background()

	child := log.With("module", "grpc_server")
	child.Info(ctx, "Starting gRPC server", "address", ":50051")
	log.Info(ctx, "App stopped")

	got := lines(t, &buf)
	require.Len(t, got, 2)
	assert.Equal(t, "grpc_server", got[0]["module"])
	assert.Equal(t, ":50051", got[0]["address"])
	assert.NotContains(t, got[1], "module")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{" error ", slog.LevelError, false},
		{"trace", slog.LevelInfo, true},
	}
	for _, tc := range tests {
		got, err := ParseLevel(tc.in)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestNop_SatisfiesLogger(t *testing.T) {
	var l Logger = Nop{}
	assert.NotPanics(t, func() {
		l.With("k", "v").Info(context.Background(), "ignored")
		l.Debug(context.Background(), "ignored")
	})
}
