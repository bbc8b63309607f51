// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"hackerthink/internal/models"
	"hackerthink/internal/slug"
	"hackerthink/internal/store"
)

// GlossaryList returns all terms alphabetically.
func (a *API) GlossaryList(w http.ResponseWriter, r *http.Request) {
	terms, err := a.glossary.List()
	if err != nil {
		slog.Error("glossary list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if terms == nil {
		terms = []models.GlossaryTerm{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"terms": terms})
}

// GlossaryCreate adds a term.
func (a *API) GlossaryCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Term       string `json:"term"`
		Slug       string `json:"slug"`
		Definition string `json:"definition"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Term) == "" {
		writeError(w, http.StatusBadRequest, "term is required")
		return
	}
	if utf8.RuneCountInString(req.Definition) > maxDefLen {
		writeError(w, http.StatusBadRequest, "definition is too long (max 20,000 characters)")
		return
	}
	if req.Slug == "" {
		req.Slug = slug.Generate(req.Term)
	}

	created, err := a.glossary.Create(&models.GlossaryTerm{
		Term:       req.Term,
		Slug:       req.Slug,
		Definition: req.Definition,
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			writeError(w, http.StatusConflict, "a term with this slug already exists")
			return
		}
		slog.Error("glossary create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"term": created})
}

// GlossaryUpdate partially updates a term.
func (a *API) GlossaryUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid term id")
		return
	}
	var upd store.GlossaryUpdate
	if err := decodeJSON(w, r, &upd); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := a.glossary.UpdatePartial(id, upd)
	if err != nil {
		if store.IsUniqueViolation(err) {
			writeError(w, http.StatusConflict, "a term with this slug already exists")
			return
		}
		slog.Error("glossary update failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "term not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"term": updated})
}

// GlossaryDelete removes a term.
func (a *API) GlossaryDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid term id")
		return
	}
	deleted, err := a.glossary.Delete(id)
	if err != nil {
		slog.Error("glossary delete failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "term not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "term deleted"})
}
