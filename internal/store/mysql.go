package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLBackend persists the snapshot as a single BLOB row.  The whole
// document is still written as one unit on every save; MySQL only provides
// durability, not per-record access.
type MySQLBackend struct {
	db *sql.DB
}

const snapshotRowName = "aquaflow"

// OpenMySQL connects to MySQL, verifies the connection and prepares the
// snapshot table.
func OpenMySQL(user, pass, host, port, name string) (*MySQLBackend, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS snapshots (
			name VARCHAR(64) NOT NULL PRIMARY KEY,
			doc LONGBLOB NOT NULL,
			updated_at DATETIME NOT NULL
		)`); err != nil {
		return nil, err
	}
	return &MySQLBackend{db: db}, nil
}

// Load reads the snapshot row.  No row means no snapshot exists yet.
func (b *MySQLBackend) Load(ctx context.Context) ([]byte, bool, error) {
	var doc []byte
	err := b.db.QueryRowContext(ctx,
		"SELECT doc FROM snapshots WHERE name=? LIMIT 1", snapshotRowName).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return doc, true, nil
}

// Save replaces the snapshot row.
func (b *MySQLBackend) Save(ctx context.Context, data []byte) error {
	_, err := b.db.ExecContext(ctx,
		"REPLACE INTO snapshots (name, doc, updated_at) VALUES (?,?,?)",
		snapshotRowName, data, time.Now().UTC())
	return err
}

// Close releases the underlying connection pool.
func (b *MySQLBackend) Close() error { return b.db.Close() }
