// Package sqlite provides the SQLite-backed auth event log.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/connect-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/connect-cli/internal/core/domain"
	"github.com/custodia-labs/connect-cli/internal/core/ports/driven"
)

// defaultListLimit bounds List results when the caller passes 0.
const defaultListLimit = 100

// Ensure EventStore implements the interface.
var _ driven.EventStore = (*EventStore)(nil)

// EventStore records auth lifecycle events in a SQLite database.
type EventStore struct {
	db   *sql.DB
	path string
}

// NewEventStore creates an event store at the specified data directory.
// If dataDir is empty, defaults to ~/.connect/data.
func NewEventStore(dataDir string) (*EventStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".connect", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "events.db")

	// WAL mode keeps concurrent dashboard reads cheap while the CLI writes.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &EventStore{db: db, path: dbPath}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *EventStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *EventStore) Path() string {
	return s.path
}

// Append records one event.
func (s *EventStore) Append(ctx context.Context, event domain.AuthEvent) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO auth_events (id, connector, kind, detail, created_at) VALUES (?, ?, ?, ?, ?)`,
		event.ID, event.Connector, string(event.Kind), event.Detail, event.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert auth event: %w", err)
	}
	return nil
}

// List returns events newest first, optionally filtered by connector.
func (s *EventStore) List(ctx context.Context, connector string, limit int) ([]domain.AuthEvent, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := `SELECT id, connector, kind, detail, created_at FROM auth_events`
	args := []any{}
	if connector != "" {
		query += ` WHERE connector = ?`
		args = append(args, connector)
	}
	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query auth events: %w", err)
	}
	defer rows.Close()

	var events []domain.AuthEvent
	for rows.Next() {
		var (
			ev        domain.AuthEvent
			kind      string
			createdAt string
		)
		if err := rows.Scan(&ev.ID, &ev.Connector, &kind, &ev.Detail, &createdAt); err != nil {
			return nil, fmt.Errorf("scan auth event: %w", err)
		}
		ev.Kind = domain.AuthEventKind(kind)
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			ev.CreatedAt = ts
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// migrate applies embedded up-migrations that are newer than the recorded
// schema version.
func (s *EventStore) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}
	return nil
}
