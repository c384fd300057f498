package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            INT AUTO_INCREMENT PRIMARY KEY,
		email         VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS opening_balance (
		id           BIGINT AUTO_INCREMENT PRIMARY KEY,
		account_code VARCHAR(16) NOT NULL,
		account_name VARCHAR(255) NOT NULL,
		debit        DECIMAL(20,2) NOT NULL DEFAULT 0,
		credit       DECIMAL(20,2) NOT NULL DEFAULT 0,
		created_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_opening_balance_code (account_code)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS general_journal (
		id          BIGINT AUTO_INCREMENT PRIMARY KEY,
		description VARCHAR(500) NOT NULL,
		date        VARCHAR(10) NOT NULL,
		`+"`lines`"+`     LONGTEXT NOT NULL,
		user_email  VARCHAR(255) NOT NULL,
		created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_general_journal_owner (user_email, date, id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS adjustment_journal (
		id          BIGINT AUTO_INCREMENT PRIMARY KEY,
		no          INT NOT NULL,
		date        VARCHAR(10) NOT NULL,
		description VARCHAR(500) NOT NULL,
		ref         VARCHAR(16) NOT NULL DEFAULT '',
		debit       DECIMAL(20,2) NOT NULL DEFAULT 0,
		credit      DECIMAL(20,2) NOT NULL DEFAULT 0,
		is_indent   TINYINT(1) NOT NULL DEFAULT 0,
		user_email  VARCHAR(255) NOT NULL,
		created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_adjustment_journal_owner (user_email, date, no, id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Amounts are TEXT in SQLite so decimals round-trip exactly.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS opening_balance (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		account_code TEXT NOT NULL,
		account_name TEXT NOT NULL,
		debit        TEXT NOT NULL DEFAULT '0',
		credit       TEXT NOT NULL DEFAULT '0',
		created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_opening_balance_code ON opening_balance(account_code)`,
	`CREATE TABLE IF NOT EXISTS general_journal (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		description TEXT NOT NULL,
		date        TEXT NOT NULL,
		lines       TEXT NOT NULL,
		user_email  TEXT NOT NULL,
		created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_general_journal_owner ON general_journal(user_email, date, id)`,
	`CREATE TABLE IF NOT EXISTS adjustment_journal (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		no          INTEGER NOT NULL,
		date        TEXT NOT NULL,
		description TEXT NOT NULL,
		ref         TEXT NOT NULL DEFAULT '',
		debit       TEXT NOT NULL DEFAULT '0',
		credit      TEXT NOT NULL DEFAULT '0',
		is_indent   INTEGER NOT NULL DEFAULT 0,
		user_email  TEXT NOT NULL,
		created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_adjustment_journal_owner ON adjustment_journal(user_email, date, no, id)`,
}

// Schema returns the DDL for the given sqlx driver name.
func Schema(driver string) ([]string, error) {
	switch driver {
	case "mysql":
		return mysqlSchema, nil
	case "sqlite":
		return sqliteSchema, nil
	}
	return nil, fmt.Errorf("no schema for driver %q", driver)
}

// Migrate creates the four ledger tables when they do not exist yet. It never
// alters or drops anything.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	stmts, err := Schema(db.DriverName())
	if err != nil {
		return err
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
