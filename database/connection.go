// database/connection.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gewnthar/phonemodels/config"
	_ "github.com/go-sql-driver/mysql" // MariaDB/MySQL driver
	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// OpenMySQL opens and pings a MySQL/MariaDB connection pool.
func OpenMySQL(cfg config.DatabaseConfig) (*sql.DB, error) {
	// DSN: username:password@protocol(address)/dbname?param=value
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
	)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// Configure connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Infof("Database: connected to MySQL %s:%s/%s", cfg.Host, cfg.Port, cfg.DBName)
	return db, nil
}

// OpenSQLite opens the SQLite database at path (":memory:" is allowed).
// The pool is pinned to a single connection so an in-memory database is shared by every statement.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database %s: %w", path, err)
	}
	return db, nil
}

// Close closes db and logs instead of failing.
func Close(db *sql.DB) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		log.Warnf("Database: failed to close connection: %v", err)
		return
	}
	log.Debug("Database connection closed.")
}
