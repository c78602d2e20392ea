package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/accounts/internal/dbx"
	"github.com/dmitrijs2005/accounts/internal/server/migrations"
	"github.com/dmitrijs2005/accounts/internal/server/repositories/accounts"
	"github.com/pressly/goose/v3"
)

// SQLRepositoryManager serves both SQL backends; the dialect decides the
// repository flavour and the migration directory.
type SQLRepositoryManager struct {
	db           *sql.DB
	dialect      accounts.Dialect
	gooseDialect string
}

func newSQLRepositoryManager(db *sql.DB, d accounts.Dialect, gooseDialect string) *SQLRepositoryManager {
	return &SQLRepositoryManager{db: db, dialect: d, gooseDialect: gooseDialect}
}

// NewPostgresRepositoryManager wraps an open pgx-backed *sql.DB.
func NewPostgresRepositoryManager(db *sql.DB) *SQLRepositoryManager {
	return newSQLRepositoryManager(db, accounts.Postgres, "pgx")
}

// NewSQLiteRepositoryManager wraps an open modernc sqlite *sql.DB.
func NewSQLiteRepositoryManager(db *sql.DB) *SQLRepositoryManager {
	return newSQLRepositoryManager(db, accounts.SQLite, "sqlite3")
}

func (m *SQLRepositoryManager) Accounts() accounts.Repository {
	return accounts.NewSQLRepository(m.db, m.dialect)
}

func (m *SQLRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, repo accounts.Repository) error) error {
	return dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, accounts.NewSQLRepository(tx, m.dialect))
	})
}

func (m *SQLRepositoryManager) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

func (m *SQLRepositoryManager) Close() error {
	return m.db.Close()
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations for this dialect.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(m.gooseDialect); err != nil {
		return err
	}
	return gooseUpContext(ctx, m.db, m.dialect.Name)
}
