package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the account CLI.
type Config struct {
	ServerEndpointAddr string        `env:"ACCOUNTS_SERVER"`
	TokenFile          string        `env:"ACCOUNTS_TOKEN_FILE"`
	RequestTimeout     time.Duration `env:"ACCOUNTS_REQUEST_TIMEOUT"`
}

// LoadDefaults populates c with sensible defaults. The token lives under the
// user's config directory, or in the working directory when there is none.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.TokenFile = defaultTokenFile()
	c.RequestTimeout = 5 * time.Second
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".accounts-token"
	}
	return filepath.Join(dir, "accounts", "token")
}

// LoadConfig constructs a Config from defaults, then JSON, environment and
// flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg, os.Args[1:])
	return cfg
}
