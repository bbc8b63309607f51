// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"hackerthink/internal/models"
)

// CommentCreate accepts an anonymous comment submission. The raw content
// identifier is normalized into the UUID thread key: UUID-shaped IDs pass
// through, anything else (legacy numeric IDs) is hashed deterministically,
// so the same (type, id) pair always lands in the same thread. Comments
// start pending; a moderation notification goes out asynchronously.
func (a *API) CommentCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ContentID   string  `json:"content_id"`
		ContentType string  `json:"content_type"`
		AuthorName  string  `json:"author_name"`
		AuthorEmail string  `json:"author_email"`
		Body        string  `json:"body"`
		ParentID    *string `json:"parent_id"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ContentID == "" {
		writeError(w, http.StatusBadRequest, "content_id is required")
		return
	}
	if msg := validateComment(req.AuthorName, req.AuthorEmail, req.Body); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	parentID, err := parseOptionalUUID(req.ParentID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid parent_id")
		return
	}

	comment := &models.Comment{
		ContentID:   models.ThreadID(req.ContentType, req.ContentID),
		AuthorName:  req.AuthorName,
		AuthorEmail: req.AuthorEmail,
		Body:        req.Body,
		ParentID:    parentID,
	}

	created, err := a.comments.Create(comment)
	if err != nil {
		slog.Error("comment create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if a.mail != nil {
		go a.mail.NotifyComment(a.cfg.CommentNotifyTo, created)
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"comment": created,
		"message": "comment submitted for moderation",
	})
}

// CommentList returns the approved comments of one thread. The thread is
// addressed the same way submissions address it, so legacy numeric IDs
// resolve to the same UUID here.
func (a *API) CommentList(w http.ResponseWriter, r *http.Request) {
	rawID := r.URL.Query().Get("content_id")
	if rawID == "" {
		writeError(w, http.StatusBadRequest, "content_id is required")
		return
	}
	threadID := models.ThreadID(r.URL.Query().Get("content_type"), rawID)

	comments, err := a.comments.ListApproved(threadID)
	if err != nil {
		slog.Error("comment list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"comments": comments})
}

// CommentPending returns all comments awaiting moderation.
func (a *API) CommentPending(w http.ResponseWriter, r *http.Request) {
	comments, err := a.comments.ListPending()
	if err != nil {
		slog.Error("pending comment list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"comments": comments})
}

// CommentApprove publishes a pending comment.
func (a *API) CommentApprove(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	approved, err := a.comments.Approve(id)
	if err != nil {
		slog.Error("comment approve failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if approved == nil {
		writeError(w, http.StatusNotFound, "comment not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"comment": approved})
}

// CommentDelete removes a comment and its replies.
func (a *API) CommentDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	deleted, err := a.comments.Delete(id)
	if err != nil {
		slog.Error("comment delete failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "comment not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "comment deleted"})
}
