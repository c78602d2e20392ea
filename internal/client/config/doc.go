// Package config loads runtime configuration for the account CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Environment variables (ACCOUNTS_SERVER, ACCOUNTS_TOKEN_FILE,
//     ACCOUNTS_REQUEST_TIMEOUT).
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   address:port of the gRPC endpoint
//	-t string   file the session token is kept in
//	-i int      request timeout (seconds)
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "token_file": "/home/me/.config/accounts/token",
//	  "request_timeout": "5s"
//	}
package config
