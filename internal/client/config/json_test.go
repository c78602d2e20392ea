package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "client.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestParseJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	base := func() *Config {
		return &Config{ServerEndpointAddr: "127.0.0.1:50051", TokenFile: "/home/me/token", RequestTimeout: 5 * time.Second}
	}

	tests := []struct {
		name string
		body string
		want *Config
	}{
		{
			name: "all keys",
			body: `{"server_endpoint_addr":"accounts.internal:443","token_file":"/tmp/tok","request_timeout":"10s"}`,
			want: &Config{ServerEndpointAddr: "accounts.internal:443", TokenFile: "/tmp/tok", RequestTimeout: 10 * time.Second},
		},
		{
			name: "missing keys keep current values",
			body: `{"request_timeout":2000000000}`,
			want: &Config{ServerEndpointAddr: "127.0.0.1:50051", TokenFile: "/home/me/token", RequestTimeout: 2 * time.Second},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = []string{"testbin", "-c", writeConfig(t, tt.body), "me"}

			cfg := base()
			parseJson(cfg)
			assert.Empty(t, cmp.Diff(tt.want, cfg))
		})
	}

	t.Run("no file flag leaves config alone", func(t *testing.T) {
		os.Args = []string{"testbin", "ping"}
		cfg := base()
		parseJson(cfg)
		assert.Empty(t, cmp.Diff(base(), cfg))
	})

	t.Run("unreadable file panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", filepath.Join(t.TempDir(), "missing.json")}
		assert.Panics(t, func() { parseJson(base()) })
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", writeConfig(t, `{ not json`)}
		assert.Panics(t, func() { parseJson(base()) })
	})
}
