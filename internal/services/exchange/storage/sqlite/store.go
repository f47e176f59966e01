package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/louisbranch/intercambio/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/intercambio/internal/services/exchange/domain"
	"github.com/louisbranch/intercambio/internal/services/exchange/storage"
	"github.com/louisbranch/intercambio/internal/services/exchange/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed persistence for exchange state.
type Store struct {
	sqlDB *sql.DB
}

// Open opens and migrates an exchange SQLite store.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}
	if err := sqlitemigrate.ApplyMigrations(context.Background(), sqlDB, migrations.FS, ""); err != nil {
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

// Load reads the stored document.
func (s *Store) Load(ctx context.Context) (domain.Document, bool, error) {
	if s == nil || s.sqlDB == nil {
		return domain.Document{}, false, fmt.Errorf("storage is not configured")
	}

	var updatedAt int64
	err := s.sqlDB.QueryRowContext(ctx, `SELECT updated_at FROM exchange_state WHERE id = 1`).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Document{}, false, nil
	}
	if err != nil {
		return domain.Document{}, false, fmt.Errorf("get exchange state: %w", err)
	}

	participants, err := s.listParticipants(ctx)
	if err != nil {
		return domain.Document{}, false, err
	}
	assignments, err := s.listAssignments(ctx)
	if err != nil {
		return domain.Document{}, false, err
	}
	return domain.Document{Participants: participants, Assignments: assignments}, true, nil
}

// Save replaces the stored document.
func (s *Store) Save(ctx context.Context, doc domain.Document) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM participants`); err != nil {
		return fmt.Errorf("clear participants: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM assignments`); err != nil {
		return fmt.Errorf("clear assignments: %w", err)
	}
	for i, name := range doc.Participants {
		if _, err := tx.ExecContext(ctx, `INSERT INTO participants (position, name) VALUES (?, ?)`, i, name); err != nil {
			return fmt.Errorf("put participant %q: %w", name, err)
		}
	}
	for giver, receiver := range doc.Assignments {
		if _, err := tx.ExecContext(ctx, `INSERT INTO assignments (giver, receiver) VALUES (?, ?)`, giver, receiver); err != nil {
			return fmt.Errorf("put assignment for %q: %w", giver, err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO exchange_state (id, updated_at) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET updated_at = excluded.updated_at`,
		time.Now().UTC().UnixMilli(),
	); err != nil {
		return fmt.Errorf("put exchange state: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

func (s *Store) listParticipants(ctx context.Context) ([]string, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT name FROM participants ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	participants := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		participants = append(participants, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate participants: %w", err)
	}
	return participants, nil
}

func (s *Store) listAssignments(ctx context.Context) (map[string]string, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT giver, receiver FROM assignments`)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	assignments := make(map[string]string)
	for rows.Next() {
		var giver, receiver string
		if err := rows.Scan(&giver, &receiver); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		assignments[giver] = receiver
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assignments: %w", err)
	}
	return assignments, nil
}

var _ storage.Store = (*Store)(nil)
