// Package repomanager owns the account store's lifecycle: it picks a backend
// from the DSN, verifies the connection, applies migrations and hands out
// repositories, optionally bound to a transaction.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/accounts/internal/server/repositories/accounts"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Accounts() accounts.Repository
	// WithTx runs fn with a repository whose calls share one transaction.
	// fn's error rolls the transaction back and is returned unchanged.
	WithTx(ctx context.Context, fn func(ctx context.Context, repo accounts.Repository) error) error
	Ping(ctx context.Context) error
	Close() error
}
