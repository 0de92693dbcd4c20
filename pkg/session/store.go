// Package session persists the dashboard client's logged-in state between
// runs: the bearer token, role and subscription fields, and the active
// chatbot. Values are string-typed key/value pairs, mirroring how the web
// dashboard keeps them, and are all cleared together on logout.
package session

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Keys for the persisted fields.
const (
	KeyToken               = "token"
	KeyUserRole            = "userRole"
	KeySubscriptionStatus  = "subscriptionStatus"
	KeySubscriptionEndDate = "subscriptionEndDate"
	KeyUserID              = "userId"
	KeyChatbotID           = "chatbotId"
	KeyChatbotSlug         = "chatbotSlug"
)

// ActiveStatus is the subscription status marker that passes the gate.
const ActiveStatus = "active"

// Snapshot is a typed view of the stored session.
type Snapshot struct {
	Token               string
	UserRole            string
	SubscriptionStatus  string
	SubscriptionEndDate string
	UserID              string
	ChatbotID           string
	ChatbotSlug         string
}

// Store manages session persistence using SQLite
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the session database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS session_values (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Set stores one value, replacing any previous one.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO session_values (key, value, updated_at)
		VALUES (?, ?, ?)
	`, key, value, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}
	return nil
}

// Get returns the stored value, or "" when the key is absent.
func (s *Store) Get(key string) (string, error) {
	row := s.db.QueryRow(`SELECT value FROM session_values WHERE key = ?`, key)

	var value string
	err := row.Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, nil
}

// Snapshot loads every session field at once.
func (s *Store) Snapshot() (*Snapshot, error) {
	rows, err := s.db.Query(`SELECT key, value FROM session_values`)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	defer rows.Close()

	snap := &Snapshot{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		switch key {
		case KeyToken:
			snap.Token = value
		case KeyUserRole:
			snap.UserRole = value
		case KeySubscriptionStatus:
			snap.SubscriptionStatus = value
		case KeySubscriptionEndDate:
			snap.SubscriptionEndDate = value
		case KeyUserID:
			snap.UserID = value
		case KeyChatbotID:
			snap.ChatbotID = value
		case KeyChatbotSlug:
			snap.ChatbotSlug = value
		}
	}
	return snap, rows.Err()
}

// SubscriptionExpired is the client-side gate check: true when the stored end
// date is absent, unparseable or in the past, or the status marker is not
// active. It mirrors the server's comparison but runs against stale local
// state until the next login refresh.
func (snap *Snapshot) SubscriptionExpired(now time.Time) bool {
	if snap.SubscriptionStatus != ActiveStatus {
		return true
	}
	if snap.SubscriptionEndDate == "" {
		return true
	}
	endDate, err := time.Parse(time.RFC3339, snap.SubscriptionEndDate)
	if err != nil {
		return true
	}
	return !endDate.After(now)
}

// Clear removes every stored field. Called on logout.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM session_values`); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
