// Package store owns the database handle shared by the task repository and
// the id allocator.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// DefaultOperationTimeout bounds a single store or allocator call.
const DefaultOperationTimeout = 5 * time.Second

// schema is applied statement by statement so it runs on both dialects.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS tasks (
    id         BIGINT PRIMARY KEY,
    name       TEXT NOT NULL,
    priority   TEXT NOT NULL DEFAULT 'Normal'
               CHECK (priority IN ('Normal', 'High')),
    status     TEXT NOT NULL DEFAULT 'NotStarted'
               CHECK (status IN ('NotStarted', 'Pending', 'InProgress', 'Completed')),
    due_date   BIGINT,
    created_at BIGINT NOT NULL,
    deleted    BOOLEAN
)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_due_date ON tasks(due_date)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_deleted ON tasks(deleted)`,
	`CREATE TABLE IF NOT EXISTS counters (
    name TEXT PRIMARY KEY,
    seq  BIGINT NOT NULL
)`,
}

// Config describes how to reach the database.
type Config struct {
	Dialect          Dialect
	DSN              string
	OperationTimeout time.Duration
	MaxOpenConns     int
}

// DB is a database handle that knows its dialect and per-operation timeout.
type DB struct {
	*sql.DB
	dialect Dialect
	timeout time.Duration
}

// Open connects to the database described by cfg and applies the schema.
func Open(ctx context.Context, cfg Config) (*DB, error) {
	if cfg.Dialect == "" {
		cfg.Dialect = DialectSQLite
	}
	if cfg.OperationTimeout <= 0 {
		cfg.OperationTimeout = DefaultOperationTimeout
	}

	dsn := cfg.DSN
	switch cfg.Dialect {
	case DialectSQLite:
		if dsn == "" {
			return nil, fmt.Errorf("sqlite database path is required")
		}
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		dsn = sqliteDSN(dsn)
		if cfg.MaxOpenConns == 0 {
			cfg.MaxOpenConns = 1
		}
	case DialectPostgres:
		if dsn == "" {
			return nil, fmt.Errorf("postgres DSN is required")
		}
		if cfg.MaxOpenConns == 0 {
			cfg.MaxOpenConns = 10
		}
	default:
		return nil, fmt.Errorf("unsupported dialect: %s", cfg.Dialect)
	}

	sqlDB, err := sql.Open(cfg.Dialect.driverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)

	db := &DB{DB: sqlDB, dialect: cfg.Dialect, timeout: cfg.OperationTimeout}

	initCtx, cancel := db.WithTimeout(ctx)
	defer cancel()

	if err := sqlDB.PingContext(initCtx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	for _, stmt := range schema {
		if _, err := sqlDB.ExecContext(initCtx, stmt); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("failed to initialize schema: %w", err)
		}
	}

	return db, nil
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_journal_mode=WAL&_busy_timeout=5000"
}

// Dialect returns the SQL dialect of the connection.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Timeout returns the per-operation timeout.
func (db *DB) Timeout() time.Duration {
	return db.timeout
}

// WithTimeout derives a context bounded by the per-operation timeout.
func (db *DB) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, db.timeout)
}

// Rebind rewrites ? placeholders into the dialect's form. Question marks
// inside single-quoted literals are left alone.
func (db *DB) Rebind(query string) string {
	if db.dialect != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	quoted := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			quoted = !quoted
			b.WriteByte(c)
		case c == '?' && !quoted:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// TimePrecision is the resolution timestamps keep in storage.
const TimePrecision = time.Microsecond

// EncodeTime converts a timestamp to its stored form, unix microseconds.
func EncodeTime(t time.Time) int64 {
	return t.UTC().UnixMicro()
}

// DecodeTime converts a stored timestamp back to UTC.
func DecodeTime(us int64) time.Time {
	return time.UnixMicro(us).UTC()
}
