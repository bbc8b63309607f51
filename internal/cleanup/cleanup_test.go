// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Integration tests for the media reconciliation pass. A real database is
// required for the media table; tests skip when PostgreSQL is unreachable.
// The filesystem side runs against a per-test temp directory.
package cleanup

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"hackerthink/internal/database"
	"hackerthink/internal/models"
	"hackerthink/internal/store"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "hackerthink")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "hackerthink")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
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
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// writeFile creates a file (and parents) under root with throwaway content.
func writeFile(t *testing.T, root, rel string) {
	t.Helper()
	abs := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(abs, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func insertMedia(t *testing.T, media *store.MediaStore, rel string) *models.Media {
	t.Helper()
	m, err := media.Create(&models.Media{
		Filename:     filepath.Base(rel),
		OriginalName: "original.jpg",
		Filepath:     rel,
		Kind:         models.MediaKindImages,
		MimeType:     "image/jpeg",
		SizeBytes:    1,
	})
	if err != nil {
		t.Fatalf("insert media row: %v", err)
	}
	t.Cleanup(func() { media.DeleteByID(m.ID) })
	return m
}

func TestRunReconcilesBothDirections(t *testing.T) {
	db := testDB(t)
	media := store.NewMediaStore(db)
	root := t.TempDir()

	// A healthy row: file exists and stays.
	writeFile(t, root, "uploads/images/keep.jpg")
	kept := insertMedia(t, media, "uploads/images/keep.jpg")

	// A stale row: no file behind it.
	stale := insertMedia(t, media, "uploads/images/vanished.jpg")

	// An orphan file: no row claims it.
	writeFile(t, root, "uploads/images/orphan.jpg")

	report, err := NewRunner(media, root, false).Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if report.RowsDeleted < 1 {
		t.Errorf("RowsDeleted = %d, want at least 1", report.RowsDeleted)
	}
	if report.FilesDeleted != 1 {
		t.Errorf("FilesDeleted = %d, want 1", report.FilesDeleted)
	}

	if got, _ := media.FindByID(stale.ID); got != nil {
		t.Error("stale row survived the run")
	}
	if got, _ := media.FindByID(kept.ID); got == nil {
		t.Error("healthy row was deleted")
	}
	if _, err := os.Stat(filepath.Join(root, "uploads/images/keep.jpg")); err != nil {
		t.Error("healthy file was removed")
	}
	if _, err := os.Stat(filepath.Join(root, "uploads/images/orphan.jpg")); !os.IsNotExist(err) {
		t.Error("orphan file survived the run")
	}
}

func TestRunDryRunTouchesNothing(t *testing.T) {
	db := testDB(t)
	media := store.NewMediaStore(db)
	root := t.TempDir()

	stale := insertMedia(t, media, "uploads/images/dry-vanished.jpg")
	writeFile(t, root, "uploads/images/dry-orphan.jpg")

	report, err := NewRunner(media, root, true).Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(report.MissingFiles) == 0 {
		t.Error("dry run did not report the missing file")
	}
	if len(report.OrphanFiles) != 1 {
		t.Errorf("OrphanFiles = %v, want one entry", report.OrphanFiles)
	}
	if report.RowsDeleted != 0 || report.FilesDeleted != 0 {
		t.Errorf("dry run deleted things: %+v", report)
	}

	if got, _ := media.FindByID(stale.ID); got == nil {
		t.Error("dry run removed the stale row")
	}
	if _, err := os.Stat(filepath.Join(root, "uploads/images/dry-orphan.jpg")); err != nil {
		t.Error("dry run removed the orphan file")
	}
}

func TestRunEmptyMediaRoot(t *testing.T) {
	db := testDB(t)
	media := store.NewMediaStore(db)

	// Media root that does not exist at all: nothing to do, no error.
	report, err := NewRunner(media, filepath.Join(t.TempDir(), "missing"), true).Run()
	if err != nil {
		t.Fatalf("Run on absent root: %v", err)
	}
	if report.FilesDeleted != 0 {
		t.Errorf("FilesDeleted = %d on absent root", report.FilesDeleted)
	}
}
