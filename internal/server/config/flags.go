package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/accounts/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     gRPC bind address (e.g., ":50051")
//	-l string     HTTP bind address (e.g., ":3000")
//	-d string     database DSN
//	-s string     JWT HMAC secret key
//	-h string     password hash algorithm (bcrypt or argon2id)
//	-k int        bcrypt cost
//	-w duration   database connect timeout (e.g., "10s")
//	-v string     log level
//
// os.Args is first filtered down to these flags with flagx.FilterArgs, so
// -c/-config and unrelated arguments do not trip the parser.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-l", "-d", "-s", "-h", "-k", "-w", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.GRPCAddress, "a", config.GRPCAddress, "gRPC address and port to run server")
	fs.StringVar(&config.HTTPAddress, "l", config.HTTPAddress, "HTTP address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.HashAlgorithm, "h", config.HashAlgorithm, "password hash algorithm")
	fs.IntVar(&config.BcryptCost, "k", config.BcryptCost, "bcrypt cost")
	fs.DurationVar(&config.DatabaseConnectTimeout, "w", config.DatabaseConnectTimeout, "database connect timeout")
	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
