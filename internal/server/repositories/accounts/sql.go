package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dmitrijs2005/accounts/internal/common"
	"github.com/dmitrijs2005/accounts/internal/dbx"
	"github.com/dmitrijs2005/accounts/internal/server/models"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Dialect captures what differs between the SQL backends: placeholder
// syntax and how a unique-constraint violation is reported.
type Dialect struct {
	Name              string
	rebind            func(query string) string
	isUniqueViolation func(err error) bool
}

var numberedPlaceholder = regexp.MustCompile(`\$\d+`)

var Postgres = Dialect{
	Name:   "postgres",
	rebind: func(q string) string { return q },
	isUniqueViolation: func(err error) bool {
		var pgErr *pgconn.PgError
		return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
	},
}

// SQLite queries are written with $N placeholders and rewritten to "?";
// every query binds its arguments in placeholder order.
var SQLite = Dialect{
	Name:   "sqlite",
	rebind: func(q string) string { return numberedPlaceholder.ReplaceAllString(q, "?") },
	isUniqueViolation: func(err error) bool {
		var sqliteErr *sqlite.Error
		if !errors.As(err, &sqliteErr) {
			return false
		}
		// the primary code alone shows up when extended codes are off
		code := sqliteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			(code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(sqliteErr.Error(), "UNIQUE"))
	},
}

// SQLRepository implements Repository over dbx.DBTX (satisfied by *sql.DB
// or *sql.Tx). Uniqueness is the database's unique index on email.
type SQLRepository struct {
	db      dbx.DBTX
	dialect Dialect
	now     func() time.Time
}

func NewSQLRepository(db dbx.DBTX, d Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: d, now: time.Now}
}

func NewPostgresRepository(db dbx.DBTX) *SQLRepository {
	return NewSQLRepository(db, Postgres)
}

func NewSQLiteRepository(db dbx.DBTX) *SQLRepository {
	return NewSQLRepository(db, SQLite)
}

func (r *SQLRepository) Create(ctx context.Context, email, secret string) (*models.Account, error) {
	query := r.dialect.rebind(
		`INSERT INTO accounts (id, email, secret, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`)

	now := r.now().UTC()
	account := &models.Account{ID: uuid.NewString(), Email: email, Secret: secret}

	if _, err := r.db.ExecContext(ctx, query, account.ID, account.Email, account.Secret, now, now); err != nil {
		if r.dialect.isUniqueViolation(err) {
			return nil, common.ErrEmailTaken
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

func (r *SQLRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	query := r.dialect.rebind(
		`SELECT id, email, secret FROM accounts
		 WHERE email = $1`)

	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *SQLRepository) FindByID(ctx context.Context, id string) (*models.Account, error) {
	query := r.dialect.rebind(
		`SELECT id, email, secret FROM accounts
		 WHERE id = $1`)

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLRepository) Update(ctx context.Context, id string, patch models.AccountPatch) (*models.Account, error) {
	query := r.dialect.rebind(
		`UPDATE accounts
		 SET email = COALESCE($1, email), secret = COALESCE($2, secret), updated_at = $3
		 WHERE id = $4
		 RETURNING id, email, secret`)

	account, err := r.scanOne(r.db.QueryRowContext(ctx, query,
		nullable(patch.Email), nullable(patch.Secret), r.now().UTC(), id))
	if err != nil {
		if r.dialect.isUniqueViolation(err) {
			return nil, common.ErrEmailTaken
		}
		return nil, err
	}

	return account, nil
}

func (r *SQLRepository) DeleteByID(ctx context.Context, id string) error {
	query := r.dialect.rebind(
		`DELETE FROM accounts
		 WHERE id = $1`)

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *SQLRepository) scanOne(row *sql.Row) (*models.Account, error) {
	account := &models.Account{}
	if err := row.Scan(&account.ID, &account.Email, &account.Secret); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return account, nil
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
