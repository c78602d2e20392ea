package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sethvargo/go-retry"
	_ "modernc.org/sqlite"
)

const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)

// Backend names the store a DSN selects:
//
//	postgres://... or postgresql://...   PostgreSQL via pgx
//	memory                               process memory, lost on exit
//	sqlite://<path> or any other value   SQLite database file
func Backend(dsn string) string {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return BackendPostgres
	case dsn == "memory" || dsn == "memory://":
		return BackendMemory
	default:
		return BackendSQLite
	}
}

// sqliteDSN turns a path into a modernc DSN with the pragmas the store
// relies on. Values that already carry a query string are kept as is.
func sqliteDSN(dsn string) string {
	path := strings.TrimPrefix(dsn, "sqlite://")
	if strings.Contains(path, "?") {
		return path
	}
	return path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

// Open builds the manager for dsn, waits up to connectTimeout for the
// database to answer and applies migrations.
func Open(ctx context.Context, dsn string, connectTimeout time.Duration) (RepositoryManager, error) {
	var m *SQLRepositoryManager

	switch Backend(dsn) {
	case BackendMemory:
		return NewMemoryRepositoryManager(), nil

	case BackendPostgres:
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("db open error: %w", err)
		}
		m = NewPostgresRepositoryManager(db)

	default:
		db, err := sql.Open("sqlite", sqliteDSN(dsn))
		if err != nil {
			return nil, fmt.Errorf("db open error: %w", err)
		}
		// SQLite has a single writer; one connection avoids SQLITE_BUSY.
		db.SetMaxOpenConns(1)
		m = NewSQLiteRepositoryManager(db)
	}

	if err := waitForDB(ctx, m, connectTimeout); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("db connect error: %w", err)
	}

	if err := m.RunMigrations(ctx); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}

func waitForDB(ctx context.Context, m RepositoryManager, timeout time.Duration) error {
	b := retry.WithMaxDuration(timeout, retry.NewExponential(100*time.Millisecond))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		if err := m.Ping(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}
