package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

const (
	driverName = "sqlite3"
)

// DB wraps a SQLite customers database used as a record source.
type DB struct {
	db   *sql.DB
	path string
}

// OpenDB opens (creating if needed) the SQLite database at path. An empty path
// resolves to the default data directory.
func OpenDB(ctx context.Context, path string) (*DB, error) {
	if strings.TrimSpace(path) == "" {
		resolved, err := DefaultDBPath()
		if err != nil {
			return nil, err
		}
		path = resolved
	}

	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &DB{db: db, path: path}
	if err := store.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Close releases DB resources.
func (s *DB) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *DB) Path() string {
	return s.path
}

// DefaultDBPath returns the customers database location under the user config dir.
func DefaultDBPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		base = os.Getenv("HOME")
		if base == "" {
			return "", fmt.Errorf("cannot resolve data dir: %w", err)
		}
	}
	dir := filepath.Join(base, "crmtable")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create db dir: %w", err)
	}
	return filepath.Join(dir, "customers.db"), nil
}

func (s *DB) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS customers (
            id INTEGER PRIMARY KEY,
            name TEXT NOT NULL,
            phone TEXT,
            email TEXT,
            score TEXT,
            last_message_at TEXT,
            added_by TEXT,
            avatar TEXT
        );`,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migrations: %w", err)
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("migrate: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migrations: %w", err)
	}
	return nil
}

// LoadRecords reads every customer ordered by id.
func (s *DB) LoadRecords(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, phone, email, score, last_message_at, added_by, avatar FROM customers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query customers: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("customers rows: %w", err)
	}
	return records, nil
}

// Count returns the number of stored customers.
func (s *DB) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return n, nil
}

// ReplaceRecords swaps the table contents for records in a single transaction.
func (s *DB) ReplaceRecords(ctx context.Context, records []Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM customers`); err != nil {
		tx.Rollback()
		return fmt.Errorf("clear customers: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO customers (id, name, phone, email, score, last_message_at, added_by, avatar) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()
	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, r.ID, r.Name, nullString(r.Phone), nullString(r.Email), nullString(r.Score), nullString(r.LastMessageAt), nullString(r.AddedBy), nullString(r.AvatarRef)); err != nil {
			tx.Rollback()
			if isUniqueConstraint(err) {
				return fmt.Errorf("%w: %d", ErrDuplicateID, r.ID)
			}
			return fmt.Errorf("insert customer %d: %w", r.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(rs rowScanner) (Record, error) {
	var r Record
	var phone, email, score, lastMessage, addedBy, avatar sql.NullString
	if err := rs.Scan(&r.ID, &r.Name, &phone, &email, &score, &lastMessage, &addedBy, &avatar); err != nil {
		return Record{}, err
	}
	r.Phone = nullStringToString(phone)
	r.Email = nullStringToString(email)
	r.Score = nullStringToString(score)
	r.LastMessageAt = nullStringToString(lastMessage)
	r.AddedBy = nullStringToString(addedBy)
	r.AvatarRef = nullStringToString(avatar)
	return r, nil
}

func nullStringToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func isUniqueConstraint(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "primary key")
}
