// Package store provides storage backends for SwiftAid.
//
// This file implements a PostgreSQL-backed store for accounts, verification
// codes and emergency-call receipts.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "embed"

	"github.com/lib/pq"
	"github.com/nafisahi/swiftaid/internal/models"
)

// Database connection pool configuration constants
const (
	// DefaultMaxOpenConns is the default maximum number of open connections to the database
	DefaultMaxOpenConns = 25
	// DefaultMaxIdleConns is the default maximum number of idle connections in the pool
	DefaultMaxIdleConns = 25
	// DefaultConnMaxLifetime is the default maximum amount of time a connection may be reused
	DefaultConnMaxLifetime = 5 * time.Minute
)

//go:embed migrations_postgres.sql
var postgresMigrations string

type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new Postgres store based on provided options.
func NewPostgresStore(opts ...Option) (*PostgresStore, error) {
	// Apply options
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("PostgresStore.NewPostgresStore: creating Postgres store", "DSN_set", cfg.DSN != "")
	// Determine DSN (required)
	dsn := cfg.DSN
	if dsn == "" {
		slog.Error("PostgresStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	slog.Debug("Opening Postgres database connection")
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		slog.Error("Failed to open Postgres connection", "error", err)
		return nil, err
	}
	slog.Debug("Postgres database opened")

	// Configure connection pool for better performance
	db.SetMaxOpenConns(DefaultMaxOpenConns)
	db.SetMaxIdleConns(DefaultMaxIdleConns)
	db.SetConnMaxLifetime(DefaultConnMaxLifetime)

	if err := db.Ping(); err != nil {
		slog.Error("Postgres ping failed", "error", err)
		return nil, err
	}
	slog.Debug("Postgres ping successful")

	// Run migrations to ensure tables exist
	slog.Debug("Running Postgres migrations")
	if _, err := db.Exec(postgresMigrations); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("Postgres migrations applied successfully")
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) CreateUser(u models.User) error {
	existing, err := s.GetUserByEmail(u.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		slog.Debug("PostgresStore CreateUser rejected duplicate email", "email", u.Email)
		return ErrUserExists
	}
	_, err = s.db.Exec(`INSERT INTO users (id, email, display_name, phone_number, password_hash, verified, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, emailKey(u.Email), u.DisplayName, u.PhoneNumber, u.PasswordHash, u.Verified, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		// A concurrent signup can pass the pre-check and lose the insert.
		if isPostgresUniqueViolation(err) {
			slog.Debug("PostgresStore CreateUser lost insert race to duplicate email", "email", u.Email)
			return ErrUserExists
		}
		slog.Error("PostgresStore CreateUser failed", "error", err, "email", u.Email)
		return fmt.Errorf("failed to insert user %s: %w", u.Email, err)
	}
	slog.Debug("PostgresStore CreateUser succeeded", "id", u.ID, "email", u.Email)
	return nil
}

// isPostgresUniqueViolation reports whether err is a unique_violation
// (SQLSTATE 23505) from the pq driver.
func isPostgresUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func (s *PostgresStore) GetUserByEmail(email string) (*models.User, error) {
	var u models.User
	err := s.db.QueryRow(`SELECT id, email, display_name, phone_number, password_hash, verified, created_at, updated_at FROM users WHERE email = $1`, emailKey(email)).
		Scan(&u.ID, &u.Email, &u.DisplayName, &u.PhoneNumber, &u.PasswordHash, &u.Verified, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		slog.Error("PostgresStore GetUserByEmail failed", "error", err, "email", email)
		return nil, fmt.Errorf("failed to query user %s: %w", email, err)
	}
	return &u, nil
}

func (s *PostgresStore) UpdateUser(u models.User) error {
	_, err := s.db.Exec(`UPDATE users SET display_name = $1, phone_number = $2, password_hash = $3, verified = $4, updated_at = $5 WHERE email = $6`,
		u.DisplayName, u.PhoneNumber, u.PasswordHash, u.Verified, u.UpdatedAt, emailKey(u.Email))
	if err != nil {
		slog.Error("PostgresStore UpdateUser failed", "error", err, "email", u.Email)
		return fmt.Errorf("failed to update user %s: %w", u.Email, err)
	}
	slog.Debug("PostgresStore UpdateUser succeeded", "email", u.Email)
	return nil
}

func (s *PostgresStore) DeleteUser(id string) error {
	_, err := s.db.Exec(`DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		slog.Error("PostgresStore DeleteUser failed", "error", err, "id", id)
		return fmt.Errorf("failed to delete user %s: %w", id, err)
	}
	slog.Debug("PostgresStore DeleteUser succeeded", "id", id)
	return nil
}

func (s *PostgresStore) SaveVerificationCode(vc models.VerificationCode) error {
	_, err := s.db.Exec(`INSERT INTO verification_codes (email, code, expires_at, created_at) VALUES ($1, $2, $3, $4)
		ON CONFLICT(email) DO UPDATE SET code = EXCLUDED.code, expires_at = EXCLUDED.expires_at, created_at = EXCLUDED.created_at`,
		emailKey(vc.Email), vc.Code, vc.ExpiresAt, vc.CreatedAt)
	if err != nil {
		slog.Error("PostgresStore SaveVerificationCode failed", "error", err, "email", vc.Email)
		return fmt.Errorf("failed to save verification code for %s: %w", vc.Email, err)
	}
	slog.Debug("PostgresStore SaveVerificationCode succeeded", "email", vc.Email)
	return nil
}

func (s *PostgresStore) GetVerificationCode(email string) (*models.VerificationCode, error) {
	var vc models.VerificationCode
	err := s.db.QueryRow(`SELECT email, code, expires_at, created_at FROM verification_codes WHERE email = $1`, emailKey(email)).
		Scan(&vc.Email, &vc.Code, &vc.ExpiresAt, &vc.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		slog.Error("PostgresStore GetVerificationCode failed", "error", err, "email", email)
		return nil, fmt.Errorf("failed to query verification code for %s: %w", email, err)
	}
	return &vc, nil
}

func (s *PostgresStore) DeleteVerificationCode(email string) error {
	_, err := s.db.Exec(`DELETE FROM verification_codes WHERE email = $1`, emailKey(email))
	if err != nil {
		slog.Error("PostgresStore DeleteVerificationCode failed", "error", err, "email", email)
		return fmt.Errorf("failed to delete verification code for %s: %w", email, err)
	}
	return nil
}

func (s *PostgresStore) AddCallReceipt(r models.CallReceipt) error {
	_, err := s.db.Exec(`INSERT INTO call_receipts (number, placed_by, time) VALUES ($1, $2, $3)`, r.Number, r.PlacedBy, r.Time)
	if err != nil {
		slog.Error("PostgresStore AddCallReceipt failed", "error", err, "number", r.Number)
		return fmt.Errorf("failed to insert call receipt for %s: %w", r.Number, err)
	}
	slog.Debug("PostgresStore AddCallReceipt succeeded", "number", r.Number)
	return nil
}

func (s *PostgresStore) GetCallReceipts() ([]models.CallReceipt, error) {
	rows, err := s.db.Query(`SELECT number, placed_by, time FROM call_receipts`)
	if err != nil {
		slog.Error("PostgresStore GetCallReceipts query failed", "error", err)
		return nil, fmt.Errorf("failed to query call receipts: %w", err)
	}
	defer rows.Close()
	var receipts []models.CallReceipt
	for rows.Next() {
		var r models.CallReceipt
		if err := rows.Scan(&r.Number, &r.PlacedBy, &r.Time); err != nil {
			slog.Error("PostgresStore GetCallReceipts scan failed", "error", err)
			return nil, fmt.Errorf("failed to scan call receipt row: %w", err)
		}
		receipts = append(receipts, r)
	}
	if err := rows.Err(); err != nil {
		slog.Error("PostgresStore GetCallReceipts rows iteration failed", "error", err)
		return nil, fmt.Errorf("failed to iterate call receipt rows: %w", err)
	}
	slog.Debug("PostgresStore GetCallReceipts succeeded", "count", len(receipts))
	return receipts, nil
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
