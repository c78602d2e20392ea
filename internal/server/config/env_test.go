package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestParseEnv(t *testing.T) {
	t.Setenv("GRPC_ADDRESS", ":1")
	t.Setenv("HTTP_ADDRESS", ":2")
	t.Setenv("DATABASE_DSN", "memory")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("HASH_ALGORITHM", "argon2id")
	t.Setenv("BCRYPT_COST", "11")
	t.Setenv("DATABASE_CONNECT_TIMEOUT", "2s")
	t.Setenv("LOG_LEVEL", "error")

	cfg := defaults()
	parseEnv(cfg)

	assert.Empty(t, cmp.Diff(&Config{
		GRPCAddress:            ":1",
		HTTPAddress:            ":2",
		DatabaseDSN:            "memory",
		SecretKey:              "env-secret",
		HashAlgorithm:          "argon2id",
		BcryptCost:             11,
		DatabaseConnectTimeout: 2 * time.Second,
		LogLevel:               "error",
	}, cfg))
}

func TestParseEnv_UnsetKeepsValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "only-this")

	cfg := defaults()
	parseEnv(cfg)

	want := defaults()
	want.SecretKey = "only-this"
	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestParseEnv_MalformedPanics(t *testing.T) {
	t.Setenv("BCRYPT_COST", "lots")
	assert.Panics(t, func() { parseEnv(defaults()) })
}
