package database

import (
	"fmt"

	"belutin-web/internal/config"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Open connects to the store selected by DB_DRIVER.
func Open(cfg *config.Config) (*sqlx.DB, error) {
	switch cfg.DBDriver {
	case "sqlite":
		return NewSQLite(cfg.SQLitePath)
	case "mysql", "":
		return NewMySQL(cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

func NewMySQL(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}

	// Connection pool settings
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}

	return db, nil
}

// NewSQLite opens a file-backed or, for ":memory:", a private in-memory store.
// SQLite allows a single writer, so the pool is capped at one connection.
func NewSQLite(path string) (*sqlx.DB, error) {
	dsn := ":memory:"
	if path != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)", path)
	}
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
