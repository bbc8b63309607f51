// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the HackerThink JSON API.
// Handlers are grouped by concern on the API struct and receive their
// dependencies at construction.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"hackerthink/internal/cache"
	"hackerthink/internal/config"
	"hackerthink/internal/mailer"
	"hackerthink/internal/session"
	"hackerthink/internal/storage"
	"hackerthink/internal/store"
)

// maxBodyBytes caps JSON request bodies. Uploads have their own limit.
const maxBodyBytes = 1 << 20

// API groups all JSON API handlers and their dependencies. storageClient
// may be nil when S3 replication is not configured; respCache may be nil
// in tests.
type API struct {
	cfg       *config.Config
	sessions  *session.Store
	respCache *cache.ResponseCache

	users    *store.UserStore
	contents *store.ContentStore
	taxonomy *store.Taxonomy
	guests   *store.GuestStore
	media    *store.MediaStore
	commands *store.CommandStore
	products *store.ProductStore
	glossary *store.GlossaryStore
	comments *store.CommentStore
	labs     *store.LabProgressStore
	smtp     *store.SMTPConfigStore

	mail          *mailer.Mailer
	storageClient *storage.Client
}

// Deps bundles the API constructor arguments.
type Deps struct {
	Config    *config.Config
	Sessions  *session.Store
	RespCache *cache.ResponseCache

	Users    *store.UserStore
	Contents *store.ContentStore
	Taxonomy *store.Taxonomy
	Guests   *store.GuestStore
	Media    *store.MediaStore
	Commands *store.CommandStore
	Products *store.ProductStore
	Glossary *store.GlossaryStore
	Comments *store.CommentStore
	Labs     *store.LabProgressStore
	SMTP     *store.SMTPConfigStore

	Mailer  *mailer.Mailer
	Storage *storage.Client
}

// NewAPI creates the API handler group.
func NewAPI(d Deps) *API {
	return &API{
		cfg:           d.Config,
		sessions:      d.Sessions,
		respCache:     d.RespCache,
		users:         d.Users,
		contents:      d.Contents,
		taxonomy:      d.Taxonomy,
		guests:        d.Guests,
		media:         d.Media,
		commands:      d.Commands,
		products:      d.Products,
		glossary:      d.Glossary,
		comments:      d.Comments,
		labs:          d.Labs,
		smtp:          d.SMTP,
		mail:          d.Mailer,
		storageClient: d.Storage,
	}
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error body. Internal error detail never reaches
// the client; callers log it and pass a generic message here.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON reads a size-capped JSON body into dst, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("request body too large")
		}
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

// urlUUID parses the {id} route parameter.
func urlUUID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

// parseOptionalUUID parses a nullable UUID field. Nil or empty means absent.
func parseOptionalUUID(s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
