// Package cli provides the account command-line client.
//
// Called with a command (register, login, me, update, delete, logout, ping)
// it runs that command once and exits. Called with none it starts a small
// REPL accepting the same commands. The session token returned by register
// and login is kept in a file so later invocations are authenticated.
package cli
