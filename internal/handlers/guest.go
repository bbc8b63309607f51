// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"hackerthink/internal/models"
	"hackerthink/internal/slug"
	"hackerthink/internal/store"
)

// GuestList returns all interview guests.
func (a *API) GuestList(w http.ResponseWriter, r *http.Request) {
	guests, err := a.guests.List()
	if err != nil {
		slog.Error("guest list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if guests == nil {
		guests = []models.Guest{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"guests": guests})
}

// GuestGet returns one guest by id.
func (a *API) GuestGet(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid guest id")
		return
	}
	guest, err := a.guests.FindByID(id)
	if err != nil {
		slog.Error("guest lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if guest == nil {
		writeError(w, http.StatusNotFound, "guest not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"guest": guest})
}

// GuestCreate adds an interview guest.
func (a *API) GuestCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string            `json:"name"`
		Slug        string            `json:"slug"`
		Bio         string            `json:"bio"`
		SocialLinks map[string]string `json:"social_links"`
		Verified    bool              `json:"verified"`
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

	created, err := a.guests.Create(&models.Guest{
		Name:        req.Name,
		Slug:        req.Slug,
		Bio:         req.Bio,
		SocialLinks: req.SocialLinks,
		Verified:    req.Verified,
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			writeError(w, http.StatusConflict, "a guest with this slug already exists")
			return
		}
		slog.Error("guest create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"guest": created})
}

// GuestUpdate partially updates a guest.
func (a *API) GuestUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid guest id")
		return
	}
	var upd store.GuestUpdate
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

	updated, err := a.guests.UpdatePartial(id, &upd)
	if err != nil {
		if store.IsUniqueViolation(err) {
			writeError(w, http.StatusConflict, "a guest with this slug already exists")
			return
		}
		slog.Error("guest update failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "guest not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"guest": updated})
}

// GuestDelete removes a guest unless interviews still reference them.
func (a *API) GuestDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid guest id")
		return
	}

	deleted, err := a.guests.Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrInUse) {
			writeError(w, http.StatusBadRequest, "guest is still referenced by interviews")
			return
		}
		slog.Error("guest delete failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "guest not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "guest deleted"})
}
