package auth

import (
	"os"
	"strings"
	"testing"
)

// The repository queries raw column names, so every column it touches must
// exist in the migrated schema. AutoMigrate is never called; the SQL file is
// the only source of truth.
func TestMigrationCoversUserColumns(t *testing.T) {
	raw, err := os.ReadFile("../../../migrations/000001_init_schema.up.sql")
	if err != nil {
		t.Fatalf("failed to read migration: %v", err)
	}

	sql := string(raw)
	start := strings.Index(sql, "CREATE TABLE users (")
	if start < 0 {
		t.Fatal("migration does not create the users table")
	}
	end := strings.Index(sql[start:], ");")
	if end < 0 {
		t.Fatal("users table DDL is not terminated")
	}
	usersDDL := sql[start : start+end]

	columns := []string{
		"email",
		"password_hash",
		"name",
		"role",
		"subscription_status",
		"subscription_end_date",
		"is_active",
		"refresh_token",
		"refresh_token_expires_at",
		"last_login_at",
		"created_at",
		"updated_at",
	}
	for _, column := range columns {
		if !strings.Contains(usersDDL, column) {
			t.Errorf("users table is missing column %q used by the repository", column)
		}
	}
}
