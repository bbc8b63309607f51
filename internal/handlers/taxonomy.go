// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"hackerthink/internal/cache"
	"hackerthink/internal/models"
	"hackerthink/internal/slug"
	"hackerthink/internal/store"
)

// TaxonomyList returns the merged category listing from all five sources,
// optionally filtered by ?content_type=. Each source reports its own
// status; a failed source yields an incomplete list that says so instead
// of pretending to be complete.
func (a *API) TaxonomyList(w http.ResponseWriter, r *http.Request) {
	filter := models.TaxonomyType(r.URL.Query().Get("content_type"))
	if filter != "" && !models.IsValidTaxonomyType(filter) {
		writeError(w, http.StatusBadRequest, "unknown content_type")
		return
	}

	cacheKey := cache.TaxonomyKey(string(filter))
	if a.respCache != nil {
		if body, ok := a.respCache.Get(r.Context(), cacheKey); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write(body)
			return
		}
	}

	result, err := a.taxonomy.Aggregate(filter)
	if err != nil {
		slog.Error("taxonomy aggregate failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	body, err := json.Marshal(result)
	if err != nil {
		slog.Error("taxonomy encode failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	// Only fully healthy responses are worth caching.
	if a.respCache != nil && !result.Partial() {
		a.respCache.Set(r.Context(), cacheKey, body)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

type categoryRequest struct {
	Name        string        `json:"name"`
	Slug        string        `json:"slug"`
	Description string        `json:"description"`
	ContentType taxonomyField `json:"content_type"`
	ParentID    *uuid.UUID    `json:"parent_id"`
}

// taxonomyField tolerates clients that send the content type with
// surrounding whitespace or uppercase.
type taxonomyField string

func (f taxonomyField) normalize() models.TaxonomyType {
	return models.TaxonomyType(strings.ToLower(strings.TrimSpace(string(f))))
}

// TaxonomyCreate adds a category to one of the table-backed sources.
// Commands and products have no category table — their categories are
// derived from tag arrays and cannot be created here.
func (a *API) TaxonomyCreate(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tt := req.ContentType.normalize()
	if !models.IsValidTaxonomyType(tt) {
		writeError(w, http.StatusBadRequest, "unknown content_type")
		return
	}
	cs := a.taxonomy.StoreFor(tt)
	if cs == nil {
		writeError(w, http.StatusBadRequest, "categories for this content_type are derived from tags and cannot be created")
		return
	}
	if msg := validateTitleSlug(req.Name, req.Slug); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if req.Slug == "" {
		req.Slug = slug.Generate(req.Name)
	}

	created, err := cs.Create(&models.Category{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		ParentID:    req.ParentID,
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			writeError(w, http.StatusConflict, "a category with this slug already exists")
			return
		}
		slog.Error("category create failed", "source", tt, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	a.invalidateTaxonomy(r)
	writeJSON(w, http.StatusCreated, map[string]any{"category": created})
}

// TaxonomyUpdate partially updates a category. IDs are not namespaced by
// source, so the owning table is discovered by probing.
func (a *API) TaxonomyUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	var upd store.CategoryUpdate
	if err := decodeJSON(w, r, &upd); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if upd.Name != nil {
		if msg := validateTitleSlug(*upd.Name, ""); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
	}

	cs, existing, err := a.taxonomy.FindOwner(id)
	if err != nil {
		slog.Error("category probe failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}

	updated, err := cs.UpdatePartial(id, &upd)
	if err != nil {
		if store.IsUniqueViolation(err) {
			writeError(w, http.StatusConflict, "a category with this slug already exists")
			return
		}
		slog.Error("category update failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}

	a.invalidateTaxonomy(r)
	writeJSON(w, http.StatusOK, map[string]any{"category": updated})
}

// TaxonomyDelete removes a category, probing the three tables in order to
// find the owner. Deletion is blocked while content still references the
// category.
func (a *API) TaxonomyDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	cs, existing, err := a.taxonomy.FindOwner(id)
	if err != nil {
		slog.Error("category probe failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}

	deleted, err := cs.Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrInUse) {
			writeError(w, http.StatusBadRequest, "category is still referenced by content")
			return
		}
		slog.Error("category delete failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}

	a.invalidateTaxonomy(r)
	writeJSON(w, http.StatusOK, map[string]string{"message": "category deleted"})
}

// invalidateTaxonomy drops every cached taxonomy and listing response.
// Category writes can shift counts across multiple filters, so the whole
// prefix goes.
func (a *API) invalidateTaxonomy(r *http.Request) {
	if a.respCache != nil {
		a.respCache.InvalidateAll(r.Context())
	}
}
