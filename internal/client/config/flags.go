package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/accounts/internal/flagx"
)

// Flags lists the flags owned by the client config, including -c/-config.
// The CLI uses it to tell flags apart from the command words.
var Flags = []string{"-a", "-t", "-i", "-c", "-config"}

// parseFlags applies -a (server address), -t (token file) and -i (request
// timeout in seconds) found in args. Other arguments are left to the CLI.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-t", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	fs.StringVar(&cfg.TokenFile, "t", cfg.TokenFile, "file the session token is stored in")
	timeout := fs.Int("i", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
