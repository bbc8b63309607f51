// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hackerthink/internal/cache"
	"hackerthink/internal/markdown"
	"hackerthink/internal/middleware"
	"hackerthink/internal/models"
	"hackerthink/internal/slug"
	"hackerthink/internal/store"
)

// urlContentType resolves the {type} route parameter. Route segments are
// plural ("articles", "lab-exercises"); stored type values are not.
func urlContentType(r *http.Request) (models.ContentType, bool) {
	return models.ContentTypeFromPath(chi.URLParam(r, "type"))
}

// renderBody fills BodyHTML from the markdown body. Web stories and lab
// exercises carry their payload in Blocks and keep Body as plain intro
// text, but the same rendering applies.
func renderBody(c *models.Content) {
	if c.Body == "" {
		return
	}
	html, err := markdown.ToHTML(c.Body)
	if err != nil {
		slog.Warn("markdown render failed", "content", c.ID, "error", err)
		return
	}
	c.BodyHTML = html
}

// ContentList returns items of one type, newest first. Unauthenticated
// callers see published items only; editors get drafts with ?drafts=1.
func (a *API) ContentList(w http.ResponseWriter, r *http.Request) {
	contentType, ok := urlContentType(r)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown content type")
		return
	}

	sess := middleware.SessionFromCtx(r.Context())
	includeDrafts := sess != nil && r.URL.Query().Get("drafts") == "1"

	cacheKey := cache.ListKey(string(contentType))
	if a.respCache != nil && !includeDrafts {
		if body, ok := a.respCache.Get(r.Context(), cacheKey); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write(body)
			return
		}
	}

	items, err := a.contents.List(contentType, includeDrafts)
	if err != nil {
		slog.Error("content list failed", "type", contentType, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if items == nil {
		items = []models.Content{}
	}

	body, err := json.Marshal(map[string]any{"items": items})
	if err != nil {
		slog.Error("content list encode failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if a.respCache != nil && !includeDrafts {
		a.respCache.Set(r.Context(), cacheKey, body)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// ContentGet returns one published item by slug, with the body rendered
// to HTML.
func (a *API) ContentGet(w http.ResponseWriter, r *http.Request) {
	contentType, ok := urlContentType(r)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown content type")
		return
	}

	item, err := a.contents.FindBySlug(contentType, chi.URLParam(r, "slug"))
	if err != nil {
		slog.Error("content lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if item == nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	renderBody(item)
	writeJSON(w, http.StatusOK, map[string]any{"item": item})
}

type contentRequest struct {
	Title           string               `json:"title"`
	Slug            string               `json:"slug"`
	Body            string               `json:"body"`
	Blocks          json.RawMessage      `json:"blocks"`
	Status          models.ContentStatus `json:"status"`
	CategoryID      *string              `json:"category_id"`
	GuestID         *string              `json:"guest_id"`
	MetaTitle       *string              `json:"meta_title"`
	MetaDescription *string              `json:"meta_description"`
	SchemaJSON      json.RawMessage      `json:"schema_json"`
}

// ContentCreate inserts a new item of the routed type. The slug is
// generated from the title when absent; a duplicate slug within the type
// is a conflict, reported by the unique constraint rather than a
// pre-insert check.
func (a *API) ContentCreate(w http.ResponseWriter, r *http.Request) {
	contentType, ok := urlContentType(r)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown content type")
		return
	}

	var req contentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := validateTitleSlug(req.Title, req.Slug); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if msg := validateBody(req.Body); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if req.Slug == "" {
		req.Slug = slug.Generate(req.Title)
	}
	if req.Status == "" {
		req.Status = models.ContentStatusDraft
	}
	if req.Status != models.ContentStatusDraft && req.Status != models.ContentStatusPublished {
		writeError(w, http.StatusBadRequest, "status must be draft or published")
		return
	}

	item := &models.Content{
		Type:            contentType,
		Title:           req.Title,
		Slug:            req.Slug,
		Body:            req.Body,
		Blocks:          req.Blocks,
		Status:          req.Status,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		SchemaJSON:      req.SchemaJSON,
	}
	var err error
	if item.CategoryID, err = parseOptionalUUID(req.CategoryID); err != nil {
		writeError(w, http.StatusBadRequest, "invalid category_id")
		return
	}
	if item.GuestID, err = parseOptionalUUID(req.GuestID); err != nil {
		writeError(w, http.StatusBadRequest, "invalid guest_id")
		return
	}

	created, err := a.contents.Create(item)
	if err != nil {
		if store.IsUniqueViolation(err) {
			writeError(w, http.StatusConflict, "an item with this slug already exists")
			return
		}
		if store.IsForeignKeyViolation(err) {
			writeError(w, http.StatusBadRequest, "referenced guest does not exist")
			return
		}
		slog.Error("content create failed", "type", contentType, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	a.invalidateTaxonomy(r)
	renderBody(created)
	writeJSON(w, http.StatusCreated, map[string]any{"item": created})
}

// ContentUpdate applies a partial update to one item. Publishing sets
// published_at exactly once; publishing again leaves the original
// timestamp untouched.
func (a *API) ContentUpdate(w http.ResponseWriter, r *http.Request) {
	contentType, ok := urlContentType(r)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown content type")
		return
	}
	id, err := urlUUID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var upd store.ContentUpdate
	if err := decodeJSON(w, r, &upd); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if upd.Title != nil {
		if msg := validateTitleSlug(*upd.Title, ""); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
	}
	if upd.Slug != nil {
		if msg := validateSlug(*upd.Slug); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
	}
	if upd.Body != nil {
		if msg := validateBody(*upd.Body); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
	}
	if upd.Status != nil &&
		*upd.Status != models.ContentStatusDraft && *upd.Status != models.ContentStatusPublished {
		writeError(w, http.StatusBadRequest, "status must be draft or published")
		return
	}

	updated, err := a.contents.UpdatePartial(id, contentType, &upd)
	if err != nil {
		if store.IsUniqueViolation(err) {
			writeError(w, http.StatusConflict, "an item with this slug already exists")
			return
		}
		if store.IsForeignKeyViolation(err) {
			writeError(w, http.StatusBadRequest, "referenced guest does not exist")
			return
		}
		slog.Error("content update failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	a.invalidateTaxonomy(r)
	renderBody(updated)
	writeJSON(w, http.StatusOK, map[string]any{"item": updated})
}

// ContentDelete removes one item of the routed type.
func (a *API) ContentDelete(w http.ResponseWriter, r *http.Request) {
	contentType, ok := urlContentType(r)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown content type")
		return
	}
	id, err := urlUUID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	deleted, err := a.contents.Delete(id, contentType)
	if err != nil {
		slog.Error("content delete failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	a.invalidateTaxonomy(r)
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}
