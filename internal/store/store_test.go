// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"hackerthink/internal/database"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "hackerthink")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "hackerthink")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// cleanContents removes test content rows by slug. Call in t.Cleanup().
func cleanContents(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, slug := range slugs {
		db.Exec("DELETE FROM contents WHERE slug = $1", slug)
	}
}

// cleanBySlug removes rows from a slugged table. Call in t.Cleanup().
func cleanBySlug(t *testing.T, db *sql.DB, table string, slugs ...string) {
	t.Helper()
	for _, slug := range slugs {
		db.Exec("DELETE FROM "+table+" WHERE slug = $1", slug)
	}
}

func TestUpdateBuilderEmpty(t *testing.T) {
	var b updateBuilder
	if !b.Empty() {
		t.Error("fresh builder should be empty")
	}
	if b.NextIndex() != 1 {
		t.Errorf("NextIndex on fresh builder = %d, want 1", b.NextIndex())
	}
}

func TestUpdateBuilderIndices(t *testing.T) {
	var b updateBuilder
	b.Set("title", "new title")
	b.Set("status", "published")
	b.SetRaw("updated_at = NOW()")

	if b.Empty() {
		t.Error("builder with sets reported empty")
	}
	want := "title = $1, status = $2, updated_at = NOW()"
	if got := b.Clause(); got != want {
		t.Errorf("Clause() = %q, want %q", got, want)
	}
	if got := b.Args(); len(got) != 2 || got[0] != "new title" || got[1] != "published" {
		t.Errorf("Args() = %v", got)
	}
	// SetRaw consumes no parameter, so the WHERE placeholder is $3.
	if b.NextIndex() != 3 {
		t.Errorf("NextIndex() = %d, want 3", b.NextIndex())
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if IsUniqueViolation(nil) {
		t.Error("nil error reported as unique violation")
	}
	if IsUniqueViolation(sql.ErrNoRows) {
		t.Error("ErrNoRows reported as unique violation")
	}
}

// The two SQLSTATE classifiers must not shadow each other: a foreign-key
// violation is not a unique violation and vice versa.
func TestViolationClassifiers(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	fk := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"})

	if !IsUniqueViolation(unique) {
		t.Error("wrapped 23505 not classified as unique violation")
	}
	if IsUniqueViolation(fk) {
		t.Error("23503 misclassified as unique violation")
	}
	if !IsForeignKeyViolation(fk) {
		t.Error("wrapped 23503 not classified as foreign-key violation")
	}
	if IsForeignKeyViolation(unique) {
		t.Error("23505 misclassified as foreign-key violation")
	}
	if IsForeignKeyViolation(nil) || IsForeignKeyViolation(sql.ErrNoRows) {
		t.Error("non-pg errors classified as foreign-key violation")
	}
}
