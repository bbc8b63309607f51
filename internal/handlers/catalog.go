// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"hackerthink/internal/models"
	"hackerthink/internal/slug"
	"hackerthink/internal/store"
)

// --- Commands ---

// CommandList returns all commands, newest first.
func (a *API) CommandList(w http.ResponseWriter, r *http.Request) {
	items, err := a.commands.List()
	if err != nil {
		slog.Error("command list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if items == nil {
		items = []models.Command{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"commands": items})
}

// CommandCreate adds a command. Its categories are free-form tags: the
// taxonomy aggregator derives synthetic category entries from them.
func (a *API) CommandCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string   `json:"name"`
		Slug        string   `json:"slug"`
		Description string   `json:"description"`
		Code        string   `json:"code"`
		Categories  []string `json:"categories"`
		Published   bool     `json:"published"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := validateTitleSlug(req.Name, req.Slug); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if req.Slug == "" {
		req.Slug = slug.Generate(req.Name)
	}

	created, err := a.commands.Create(&models.Command{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Code:        req.Code,
		Categories:  req.Categories,
		Published:   req.Published,
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			writeError(w, http.StatusConflict, "a command with this slug already exists")
			return
		}
		slog.Error("command create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	a.invalidateTaxonomy(r)
	writeJSON(w, http.StatusCreated, map[string]any{"command": created})
}

// CommandUpdate partially updates a command.
func (a *API) CommandUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid command id")
		return
	}
	var upd store.CommandUpdate
	if err := decodeJSON(w, r, &upd); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := a.commands.UpdatePartial(id, &upd)
	if err != nil {
		if store.IsUniqueViolation(err) {
			writeError(w, http.StatusConflict, "a command with this slug already exists")
			return
		}
		slog.Error("command update failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "command not found")
		return
	}

	a.invalidateTaxonomy(r)
	writeJSON(w, http.StatusOK, map[string]any{"command": updated})
}

// CommandDelete removes a command.
func (a *API) CommandDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid command id")
		return
	}
	deleted, err := a.commands.Delete(id)
	if err != nil {
		slog.Error("command delete failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "command not found")
		return
	}
	a.invalidateTaxonomy(r)
	writeJSON(w, http.StatusOK, map[string]string{"message": "command deleted"})
}

// --- Products ---

// ProductList returns all products, newest first.
func (a *API) ProductList(w http.ResponseWriter, r *http.Request) {
	items, err := a.products.List()
	if err != nil {
		slog.Error("product list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if items == nil {
		items = []models.Product{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": items})
}

// ProductCreate adds a reviewed product.
func (a *API) ProductCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string   `json:"name"`
		Slug        string   `json:"slug"`
		Description string   `json:"description"`
		URL         string   `json:"url"`
		Categories  []string `json:"categories"`
		Published   bool     `json:"published"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := validateTitleSlug(req.Name, req.Slug); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if req.Slug == "" {
		req.Slug = slug.Generate(req.Name)
	}

	created, err := a.products.Create(&models.Product{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		URL:         req.URL,
		Categories:  req.Categories,
		Published:   req.Published,
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			writeError(w, http.StatusConflict, "a product with this slug already exists")
			return
		}
		slog.Error("product create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	a.invalidateTaxonomy(r)
	writeJSON(w, http.StatusCreated, map[string]any{"product": created})
}

// ProductUpdate partially updates a product.
func (a *API) ProductUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	var upd store.ProductUpdate
	if err := decodeJSON(w, r, &upd); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := a.products.UpdatePartial(id, &upd)
	if err != nil {
		if store.IsUniqueViolation(err) {
			writeError(w, http.StatusConflict, "a product with this slug already exists")
			return
		}
		slog.Error("product update failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}

	a.invalidateTaxonomy(r)
	writeJSON(w, http.StatusOK, map[string]any{"product": updated})
}

// ProductDelete removes a product.
func (a *API) ProductDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	deleted, err := a.products.Delete(id)
	if err != nil {
		slog.Error("product delete failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	a.invalidateTaxonomy(r)
	writeJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}
