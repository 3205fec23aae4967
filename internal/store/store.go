// Package store provides storage backends for SwiftAid.
//
// It persists account records, issued verification codes and emergency-call
// receipts. Checklist and timer state is deliberately never stored; it lives
// only inside guidance sessions.
package store

import (
	"errors"
	"strings"
	"sync"

	"github.com/nafisahi/swiftaid/internal/models"
)

// Error variables shared by all backends.
var (
	// ErrUserExists is returned when creating a user whose email is taken.
	ErrUserExists = errors.New("a user with this email already exists")
)

// Store is the persistence interface consumed by the auth and telephony
// components. Lookups return (nil, nil) when the record is absent.
type Store interface {
	CreateUser(u models.User) error
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(u models.User) error
	DeleteUser(id string) error

	SaveVerificationCode(vc models.VerificationCode) error
	GetVerificationCode(email string) (*models.VerificationCode, error)
	DeleteVerificationCode(email string) error

	AddCallReceipt(r models.CallReceipt) error
	GetCallReceipts() ([]models.CallReceipt, error)

	Close() error
}

// Opts holds configuration options for store backends.
type Opts struct {
	DSN string
}

// Option defines a configuration option for store backends.
type Option func(*Opts)

// WithSQLiteDSN configures a SQLite database file path.
func WithSQLiteDSN(dsn string) Option {
	return func(o *Opts) { o.DSN = dsn }
}

// WithPostgresDSN configures a PostgreSQL connection string.
func WithPostgresDSN(dsn string) Option {
	return func(o *Opts) { o.DSN = dsn }
}

// DetectDSNType reports "postgres" for PostgreSQL connection strings and
// "sqlite" for anything else (treated as a file path).
func DetectDSNType(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		return "postgres"
	}
	return "sqlite"
}

// InMemoryStore is the non-persistent backend used in tests and when no DSN
// is configured.
type InMemoryStore struct {
	mu       sync.RWMutex
	users    map[string]models.User            // keyed by lowercased email
	codes    map[string]models.VerificationCode // keyed by lowercased email
	receipts []models.CallReceipt
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		users: make(map[string]models.User),
		codes: make(map[string]models.VerificationCode),
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser adds a new user, failing if the email is already registered.
func (s *InMemoryStore) CreateUser(u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := emailKey(u.Email)
	if _, exists := s.users[key]; exists {
		return ErrUserExists
	}
	s.users[key] = u
	return nil
}

// GetUserByEmail returns the user for an email, or nil when absent.
func (s *InMemoryStore) GetUserByEmail(email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[emailKey(email)]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// UpdateUser replaces the stored record for the user's email.
func (s *InMemoryStore) UpdateUser(u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[emailKey(u.Email)] = u
	return nil
}

// DeleteUser removes the user with the given ID, if present.
func (s *InMemoryStore) DeleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, u := range s.users {
		if u.ID == id {
			delete(s.users, key)
			return nil
		}
	}
	return nil
}

// SaveVerificationCode upserts the code for an email.
func (s *InMemoryStore) SaveVerificationCode(vc models.VerificationCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[emailKey(vc.Email)] = vc
	return nil
}

// GetVerificationCode returns the stored code for an email, or nil.
func (s *InMemoryStore) GetVerificationCode(email string) (*models.VerificationCode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vc, ok := s.codes[emailKey(email)]
	if !ok {
		return nil, nil
	}
	return &vc, nil
}

// DeleteVerificationCode removes the stored code for an email, if present.
func (s *InMemoryStore) DeleteVerificationCode(email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, emailKey(email))
	return nil
}

// AddCallReceipt records a placed emergency call.
func (s *InMemoryStore) AddCallReceipt(r models.CallReceipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.receipts = append(s.receipts, r)
	return nil
}

// GetCallReceipts returns all recorded emergency calls.
func (s *InMemoryStore) GetCallReceipts() ([]models.CallReceipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.CallReceipt, len(s.receipts))
	copy(out, s.receipts)
	return out, nil
}

// Close is a no-op for the in-memory store.
func (s *InMemoryStore) Close() error {
	return nil
}
