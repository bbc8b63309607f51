// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL is unavailable.
// The response cache, mailer, and S3 client stay nil: each handler
// treats them as optional.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"hackerthink/internal/config"
	"hackerthink/internal/database"
	"hackerthink/internal/middleware"
	"hackerthink/internal/session"
	"hackerthink/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
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
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testEnv holds the API and its backing stores for handler tests.
type testEnv struct {
	DB        *sql.DB
	Contents  *store.ContentStore
	Guests    *store.GuestStore
	Comments  *store.CommentStore
	API       *API
	MediaRoot string
}

// newTestEnv creates a complete test environment. MediaRoot points at a
// per-test temp directory so upload tests never touch real files.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)

	cfg := &config.Config{
		Env:       "testing",
		MediaRoot: t.TempDir(),
	}

	contents := store.NewContentStore(db)
	guests := store.NewGuestStore(db)
	comments := store.NewCommentStore(db)
	articleCats := store.NewArticleCategoryStore(db)
	tutorialCats := store.NewTutorialCategoryStore(db)
	newsCats := store.NewNewsCategoryStore(db)
	commands := store.NewCommandStore(db)
	products := store.NewProductStore(db)

	api := NewAPI(Deps{
		Config:   cfg,
		Users:    store.NewUserStore(db),
		Contents: contents,
		Taxonomy: store.NewTaxonomy(tutorialCats, newsCats, articleCats, commands, products),
		Guests:   guests,
		Media:    store.NewMediaStore(db),
		Commands: commands,
		Products: products,
		Glossary: store.NewGlossaryStore(db),
		Comments: comments,
		Labs:     store.NewLabProgressStore(db),
		SMTP:     store.NewSMTPConfigStore(db),
	})

	return &testEnv{
		DB:        db,
		Contents:  contents,
		Guests:    guests,
		Comments:  comments,
		API:       api,
		MediaRoot: cfg.MediaRoot,
	}
}

// testSession creates session data for an authenticated request.
func testSession(role string) *session.Data {
	return &session.Data{
		UserID:      uuid.New(),
		Email:       "editor@test.local",
		DisplayName: "Test Editor",
		Role:        role,
	}
}

// withSession attaches session data to a request.
func withSession(r *http.Request, sess *session.Data) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), middleware.SessionKey, sess))
}

// withChiParams attaches chi URL parameters to a request.
func withChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// cleanContents removes test content rows by slug.
func cleanContents(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, s := range slugs {
		db.Exec("DELETE FROM contents WHERE slug = $1", s)
	}
}
