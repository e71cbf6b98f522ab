// Package sqlite provides SQLite-backed persistence for console credentials.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/louisbranch/assetdeck/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/assetdeck/internal/session"
	"github.com/louisbranch/assetdeck/internal/session/storage/sqlite/migrations"
)

// credentialSlot pins the table to a single row: one session per console.
const credentialSlot = 1

// Store provides SQLite-backed persistence for the session credentials.
type Store struct {
	sqlDB *sql.DB
}

// Open opens and migrates a credential store at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}
	if err := store.runMigrations(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Load reads the persisted credentials, reporting found=false when no
// session has been saved.
func (s *Store) Load(ctx context.Context) (session.Credentials, bool, error) {
	if s == nil || s.sqlDB == nil {
		return session.Credentials{}, false, fmt.Errorf("storage is not configured")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT token, profile_json FROM credentials WHERE slot = ?`,
		credentialSlot,
	)

	var creds session.Credentials
	if err := row.Scan(&creds.Token, &creds.ProfileJSON); err != nil {
		if err == sql.ErrNoRows {
			return session.Credentials{}, false, nil
		}
		return session.Credentials{}, false, fmt.Errorf("load credentials: %w", err)
	}
	return creds, true, nil
}

// Save replaces the persisted credentials. Token and profile are written in
// one statement so a failure can never leave a partial token behind.
func (s *Store) Save(ctx context.Context, creds session.Credentials) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(creds.Token) == "" {
		return fmt.Errorf("token is required")
	}
	if len(creds.ProfileJSON) == 0 {
		return fmt.Errorf("profile payload is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT OR REPLACE INTO credentials (slot, token, profile_json, saved_at)
		 VALUES (?, ?, ?, ?)`,
		credentialSlot,
		creds.Token,
		creds.ProfileJSON,
		time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	return nil
}

// Clear removes any persisted credentials. Clearing an empty store is a
// no-op.
func (s *Store) Clear(ctx context.Context) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM credentials WHERE slot = ?`, credentialSlot); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

// runMigrations applies embedded SQL migrations in filename order.
func (s *Store) runMigrations() error {
	return sqlitemigrate.ApplyMigrations(s.sqlDB, migrations.FS, "")
}
