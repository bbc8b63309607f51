// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"hackerthink/internal/mailer"
	"hackerthink/internal/models"
)

// SMTPList returns the stored mail providers. Passwords are never
// serialized.
func (a *API) SMTPList(w http.ResponseWriter, r *http.Request) {
	configs, err := a.smtp.List()
	if err != nil {
		slog.Error("smtp list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if configs == nil {
		configs = []models.SMTPConfig{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"providers": configs})
}

// SMTPCreate stores a mail provider. The password is sealed with the
// encryption key before it touches the database.
func (a *API) SMTPCreate(w http.ResponseWriter, r *http.Request) {
	if a.cfg.EncryptionKey == "" {
		writeError(w, http.StatusServiceUnavailable, "ENCRYPTION_KEY is not configured")
		return
	}

	var req struct {
		Name      string `json:"name"`
		Host      string `json:"host"`
		Port      int    `json:"port"`
		Username  string `json:"username"`
		Password  string `json:"password"`
		FromEmail string `json:"from_email"`
		UseTLS    bool   `json:"use_tls"`
		IsDefault bool   `json:"is_default"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Host) == "" {
		writeError(w, http.StatusBadRequest, "name and host are required")
		return
	}
	if req.FromEmail == "" {
		writeError(w, http.StatusBadRequest, "from_email is required")
		return
	}
	if req.Port == 0 {
		req.Port = 587
	}

	cfg := &models.SMTPConfig{
		Name:      req.Name,
		Host:      req.Host,
		Port:      req.Port,
		Username:  req.Username,
		FromEmail: req.FromEmail,
		UseTLS:    req.UseTLS,
		IsDefault: req.IsDefault,
	}
	if req.Password != "" {
		enc, err := mailer.Encrypt([]byte(a.cfg.EncryptionKey), req.Password)
		if err != nil {
			slog.Error("smtp password encrypt failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		cfg.PasswordEnc = enc
	}

	created, err := a.smtp.Create(cfg)
	if err != nil {
		slog.Error("smtp create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"provider": created})
}

// SMTPSetDefault promotes one provider to default.
func (a *API) SMTPSetDefault(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid provider id")
		return
	}

	updated, err := a.smtp.SetDefault(id)
	if err != nil {
		slog.Error("smtp set default failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "provider not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"provider": updated})
}

// SMTPDelete removes a provider.
func (a *API) SMTPDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid provider id")
		return
	}
	deleted, err := a.smtp.Delete(id)
	if err != nil {
		slog.Error("smtp delete failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "provider not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "provider deleted"})
}
