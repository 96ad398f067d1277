package store

import (
	"context"
	"database/sql"
	"fmt"
	"gator/internal/config"
	"strings"
	"time"
)

// Repository implements domain.Store on top of database/sql. The same
// statements run against PostgreSQL and SQLite; both bind $N by position.
type Repository struct {
	db     *sql.DB
	driver string
}

func New(db *sql.DB, driver string) *Repository { return &Repository{db: db, driver: driver} }

// Open connects to the database named by driver and dsn, applies pending
// migrations and returns a ready repository.
func Open(ctx context.Context, driver, dsn string) (*Repository, error) {
	if driver == config.DriverSQLite {
		dsn = sqliteDSN(dsn)
	}
	if err := Migrate(driver, dsn); err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open %s database: %w", driver, err)
	}
	switch driver {
	case config.DriverSQLite:
		db.SetMaxOpenConns(1)
	default:
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not connect to %s database: %w", driver, err)
	}
	return New(db, driver), nil
}

func (r *Repository) Close() error { return r.db.Close() }

// sqliteDSN turns a plain file path into a modernc DSN with foreign keys on,
// a busy timeout and a lexically sortable time format. DSNs that already
// carry a query string are left alone.
func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}
	return path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"
}

func now() time.Time { return time.Now().UTC() }

type scanner interface {
	Scan(dest ...any) error
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}

// utcOrNil yields a bind value for an optional timestamp.
func utcOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func nullStringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
