// Package store provides storage backends for SwiftAid.
//
// This file implements an SQLite-backed store for accounts, verification
// codes and emergency-call receipts.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "embed"

	"github.com/mattn/go-sqlite3"
	"github.com/nafisahi/swiftaid/internal/models"
)

// Constants for SQLite store configuration
const (
	// DefaultDirPermissions defines the default permissions for database directories
	DefaultDirPermissions = 0755
)

//go:embed migrations_sqlite.sql
var sqliteMigrations string

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store with the given DSN.
// The DSN should be a file path to the SQLite database file.
// If the directory doesn't exist, it will be created.
func NewSQLiteStore(opts ...Option) (*SQLiteStore, error) {
	// Apply options
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("NewSQLiteStore invoked", "DSN_set", cfg.DSN != "")

	// Determine DSN (required)
	dsn := cfg.DSN
	if dsn == "" {
		slog.Error("SQLiteStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	// Ensure the directory exists
	dir := filepath.Dir(dsn)
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		slog.Error("Failed to create database directory", "error", err, "dir", dir)
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	slog.Debug("SQLite database directory verified/created", "dir", dir)

	slog.Debug("Opening SQLite database connection")
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		slog.Error("Failed to open SQLite connection", "error", err)
		return nil, err
	}
	slog.Debug("SQLite database opened")

	if err := db.Ping(); err != nil {
		slog.Error("SQLite ping failed", "error", err)
		return nil, err
	}
	slog.Debug("SQLite ping successful")

	// Run migrations to ensure tables exist
	slog.Debug("Running SQLite migrations")
	if _, err := db.Exec(sqliteMigrations); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("SQLite migrations applied successfully")

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) CreateUser(u models.User) error {
	existing, err := s.GetUserByEmail(u.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		slog.Debug("SQLiteStore CreateUser rejected duplicate email", "email", u.Email)
		return ErrUserExists
	}
	_, err = s.db.Exec(`INSERT INTO users (id, email, display_name, phone_number, password_hash, verified, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, emailKey(u.Email), u.DisplayName, u.PhoneNumber, u.PasswordHash, u.Verified, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		// A concurrent signup can pass the pre-check and lose the insert.
		if isSQLiteUniqueViolation(err) {
			slog.Debug("SQLiteStore CreateUser lost insert race to duplicate email", "email", u.Email)
			return ErrUserExists
		}
		slog.Error("SQLiteStore CreateUser failed", "error", err, "email", u.Email)
		return fmt.Errorf("failed to insert user %s: %w", u.Email, err)
	}
	slog.Debug("SQLiteStore CreateUser succeeded", "id", u.ID, "email", u.Email)
	return nil
}

// isSQLiteUniqueViolation reports whether err is a UNIQUE (or primary key)
// constraint failure from the sqlite3 driver.
func isSQLiteUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}

func (s *SQLiteStore) GetUserByEmail(email string) (*models.User, error) {
	var u models.User
	err := s.db.QueryRow(`SELECT id, email, display_name, phone_number, password_hash, verified, created_at, updated_at FROM users WHERE email = ?`, emailKey(email)).
		Scan(&u.ID, &u.Email, &u.DisplayName, &u.PhoneNumber, &u.PasswordHash, &u.Verified, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		slog.Error("SQLiteStore GetUserByEmail failed", "error", err, "email", email)
		return nil, fmt.Errorf("failed to query user %s: %w", email, err)
	}
	return &u, nil
}

func (s *SQLiteStore) UpdateUser(u models.User) error {
	_, err := s.db.Exec(`UPDATE users SET display_name = ?, phone_number = ?, password_hash = ?, verified = ?, updated_at = ? WHERE email = ?`,
		u.DisplayName, u.PhoneNumber, u.PasswordHash, u.Verified, u.UpdatedAt, emailKey(u.Email))
	if err != nil {
		slog.Error("SQLiteStore UpdateUser failed", "error", err, "email", u.Email)
		return fmt.Errorf("failed to update user %s: %w", u.Email, err)
	}
	slog.Debug("SQLiteStore UpdateUser succeeded", "email", u.Email)
	return nil
}

func (s *SQLiteStore) DeleteUser(id string) error {
	_, err := s.db.Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		slog.Error("SQLiteStore DeleteUser failed", "error", err, "id", id)
		return fmt.Errorf("failed to delete user %s: %w", id, err)
	}
	slog.Debug("SQLiteStore DeleteUser succeeded", "id", id)
	return nil
}

func (s *SQLiteStore) SaveVerificationCode(vc models.VerificationCode) error {
	_, err := s.db.Exec(`INSERT INTO verification_codes (email, code, expires_at, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(email) DO UPDATE SET code = excluded.code, expires_at = excluded.expires_at, created_at = excluded.created_at`,
		emailKey(vc.Email), vc.Code, vc.ExpiresAt, vc.CreatedAt)
	if err != nil {
		slog.Error("SQLiteStore SaveVerificationCode failed", "error", err, "email", vc.Email)
		return fmt.Errorf("failed to save verification code for %s: %w", vc.Email, err)
	}
	slog.Debug("SQLiteStore SaveVerificationCode succeeded", "email", vc.Email)
	return nil
}

func (s *SQLiteStore) GetVerificationCode(email string) (*models.VerificationCode, error) {
	var vc models.VerificationCode
	err := s.db.QueryRow(`SELECT email, code, expires_at, created_at FROM verification_codes WHERE email = ?`, emailKey(email)).
		Scan(&vc.Email, &vc.Code, &vc.ExpiresAt, &vc.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		slog.Error("SQLiteStore GetVerificationCode failed", "error", err, "email", email)
		return nil, fmt.Errorf("failed to query verification code for %s: %w", email, err)
	}
	return &vc, nil
}

func (s *SQLiteStore) DeleteVerificationCode(email string) error {
	_, err := s.db.Exec(`DELETE FROM verification_codes WHERE email = ?`, emailKey(email))
	if err != nil {
		slog.Error("SQLiteStore DeleteVerificationCode failed", "error", err, "email", email)
		return fmt.Errorf("failed to delete verification code for %s: %w", email, err)
	}
	return nil
}

func (s *SQLiteStore) AddCallReceipt(r models.CallReceipt) error {
	_, err := s.db.Exec(`INSERT INTO call_receipts (number, placed_by, time) VALUES (?, ?, ?)`, r.Number, r.PlacedBy, r.Time)
	if err != nil {
		slog.Error("SQLiteStore AddCallReceipt failed", "error", err, "number", r.Number)
		return fmt.Errorf("failed to insert call receipt for %s: %w", r.Number, err)
	}
	slog.Debug("SQLiteStore AddCallReceipt succeeded", "number", r.Number)
	return nil
}

func (s *SQLiteStore) GetCallReceipts() ([]models.CallReceipt, error) {
	rows, err := s.db.Query(`SELECT number, placed_by, time FROM call_receipts`)
	if err != nil {
		slog.Error("SQLiteStore GetCallReceipts query failed", "error", err)
		return nil, fmt.Errorf("failed to query call receipts: %w", err)
	}
	defer rows.Close()

	var receipts []models.CallReceipt
	for rows.Next() {
		var r models.CallReceipt
		if err := rows.Scan(&r.Number, &r.PlacedBy, &r.Time); err != nil {
			slog.Error("SQLiteStore GetCallReceipts scan failed", "error", err)
			return nil, fmt.Errorf("failed to scan call receipt row: %w", err)
		}
		receipts = append(receipts, r)
	}
	if err := rows.Err(); err != nil {
		slog.Error("SQLiteStore GetCallReceipts rows iteration failed", "error", err)
		return nil, fmt.Errorf("failed to iterate call receipt rows: %w", err)
	}
	slog.Debug("SQLiteStore GetCallReceipts succeeded", "count", len(receipts))
	return receipts, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
