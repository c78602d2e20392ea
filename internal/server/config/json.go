package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/accounts/internal/flagx"
	"github.com/dmitrijs2005/accounts/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations use
// timex.Duration so both "10s" and integer nanoseconds are accepted.
type JsonConfig struct {
	GRPCAddress            string         `json:"grpc_address"`
	HTTPAddress            string         `json:"http_address"`
	DatabaseDSN            string         `json:"database_dsn"`
	SecretKey              string         `json:"secret_key"`
	HashAlgorithm          string         `json:"hash_algorithm"`
	BcryptCost             int            `json:"bcrypt_cost"`
	DatabaseConnectTimeout timex.Duration `json:"database_connect_timeout"`
	LogLevel               string         `json:"log_level"`
}

// parseJson overlays values from the file named by -c or -config. Fields
// absent from the file keep their current value. An unreadable or invalid
// file panics.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.ConfigFilePath()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	setString(&config.GRPCAddress, c.GRPCAddress)
	setString(&config.HTTPAddress, c.HTTPAddress)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.HashAlgorithm, c.HashAlgorithm)
	setString(&config.LogLevel, c.LogLevel)
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	if c.DatabaseConnectTimeout.Duration != 0 {
		config.DatabaseConnectTimeout = c.DatabaseConnectTimeout.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
