// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment variables and command-line
// flags, applied in that order.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/accounts/internal/cryptox"
	"github.com/dmitrijs2005/accounts/internal/logging"
	"golang.org/x/crypto/bcrypt"
)

// Config holds runtime settings for the account server.
//
// Fields:
//   - GRPCAddress / HTTPAddress: bind addresses of the two public endpoints.
//   - DatabaseDSN: postgres:// URL, "memory", or a SQLite file path.
//   - SecretKey: HMAC secret for signing JWTs (HS256). No default; required.
//   - HashAlgorithm / BcryptCost: password hashing settings.
//   - DatabaseConnectTimeout: how long to keep retrying the first connection.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	GRPCAddress            string        `env:"GRPC_ADDRESS"`
	HTTPAddress            string        `env:"HTTP_ADDRESS"`
	DatabaseDSN            string        `env:"DATABASE_DSN"`
	SecretKey              string        `env:"JWT_SECRET"`
	HashAlgorithm          string        `env:"HASH_ALGORITHM"`
	BcryptCost             int           `env:"BCRYPT_COST"`
	DatabaseConnectTimeout time.Duration `env:"DATABASE_CONNECT_TIMEOUT"`
	LogLevel               string        `env:"LOG_LEVEL"`
}

// LoadDefaults populates Config with development defaults. SecretKey is left
// empty on purpose so a forgotten secret stops the server from starting.
func (c *Config) LoadDefaults() {
	c.GRPCAddress = ":50051"
	c.HTTPAddress = ":3000"
	c.DatabaseDSN = "database.sqlite"
	c.HashAlgorithm = cryptox.AlgorithmBcrypt
	c.BcryptCost = cryptox.DefaultBcryptCost
	c.DatabaseConnectTimeout = 10 * time.Second
	c.LogLevel = "info"
}

// Validate reports settings the server cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if c.SecretKey == "" {
		errs = append(errs, errors.New("secret key is required (-s or JWT_SECRET)"))
	}
	switch c.HashAlgorithm {
	case cryptox.AlgorithmBcrypt:
		if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
			errs = append(errs, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost))
		}
	case cryptox.AlgorithmArgon2id:
	default:
		errs = append(errs, fmt.Errorf("unknown hash algorithm %q", c.HashAlgorithm))
	}
	if c.DatabaseDSN == "" {
		errs = append(errs, errors.New("database DSN is empty"))
	}
	if c.DatabaseConnectTimeout <= 0 {
		errs = append(errs, errors.New("database connect timeout must be positive"))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
