// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"hackerthink/internal/middleware"
	"hackerthink/internal/models"
)

// LabProgressGet returns the authenticated user's progress in one lab
// exercise. Users who have not started get an empty progress object.
func (a *API) LabProgressGet(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	id, err := urlUUID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid exercise id")
		return
	}

	progress, err := a.labs.Find(sess.UserID, id)
	if err != nil {
		slog.Error("lab progress lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if progress == nil {
		progress = &models.LabProgress{
			UserID:         sess.UserID,
			ContentID:      id,
			CompletedSteps: []int{},
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"progress": progress})
}

// LabProgressSave replaces the authenticated user's step record for one
// lab exercise. The exercise must exist and be a lab exercise.
func (a *API) LabProgressSave(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	id, err := urlUUID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid exercise id")
		return
	}

	var req struct {
		CompletedSteps []int `json:"completed_steps"`
		Completed      bool  `json:"completed"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	for _, step := range req.CompletedSteps {
		if step < 0 {
			writeError(w, http.StatusBadRequest, "completed_steps must be non-negative indices")
			return
		}
	}

	exercise, err := a.contents.FindByID(id)
	if err != nil {
		slog.Error("lab exercise lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if exercise == nil || exercise.Type != models.ContentTypeLabExercise {
		writeError(w, http.StatusNotFound, "lab exercise not found")
		return
	}

	progress, err := a.labs.Save(sess.UserID, id, req.CompletedSteps, req.Completed)
	if err != nil {
		slog.Error("lab progress save failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"progress": progress})
}

// LabProgressList returns all of the authenticated user's lab progress,
// most recently touched first.
func (a *API) LabProgressList(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	items, err := a.labs.ListForUser(sess.UserID)
	if err != nil {
		slog.Error("lab progress list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if items == nil {
		items = []models.LabProgress{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"progress": items})
}
