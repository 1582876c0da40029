package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/northwind-labs/sitecms/internal/config"
	"github.com/northwind-labs/sitecms/pkg/debug"
)

// DB wraps sql.DB to provide additional functionality
type DB struct {
	*sql.DB
}

// New opens and pings a PostgreSQL connection pool
func New(cfg config.DatabaseConfig) (*DB, error) {
	debug.Info("Connecting to database %s:%d/%s", cfg.Host, cfg.Port, cfg.Name)

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	debug.Info("Successfully connected to database")
	return &DB{db}, nil
}

// Wrap adapts an existing *sql.DB, used by tests with sqlmock
func Wrap(db *sql.DB) *DB {
	return &DB{db}
}

// ExecContext executes a query with logging and error wrapping
func (db *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	debug.Debug("executing query: %s with args: %v", query, args)
	result, err := db.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	return result, nil
}

// QueryContext executes a query with logging and error wrapping
func (db *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	debug.Debug("executing query: %s with args: %v", query, args)
	rows, err := db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	return rows, nil
}

// QueryRowContext executes a query that returns a single row with logging
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	debug.Debug("executing query: %s with args: %v", query, args)
	return db.DB.QueryRowContext(ctx, query, args...)
}
