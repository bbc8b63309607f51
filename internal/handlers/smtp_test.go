// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hackerthink/internal/config"
	"hackerthink/internal/mailer"
	"hackerthink/internal/models"
	"hackerthink/internal/store"
)

const smtpTestKey = "0123456789abcdef0123456789abcdef"

// smtpTestAPI builds an API with an encryption key configured; newTestEnv
// deliberately leaves it empty.
func smtpTestAPI(t *testing.T) (*API, *store.SMTPConfigStore) {
	t.Helper()
	db := testDB(t)
	smtp := store.NewSMTPConfigStore(db)
	t.Cleanup(func() {
		db.Exec("DELETE FROM smtp_configs WHERE name LIKE 'test-%'")
	})
	api := NewAPI(Deps{
		Config: &config.Config{Env: "testing", EncryptionKey: smtpTestKey},
		SMTP:   smtp,
	})
	return api, smtp
}

func TestSMTPCreateWithoutEncryptionKey(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/smtp-configs",
		strings.NewReader(`{"name": "test-main", "host": "mail.example.com", "from_email": "no-reply@example.com", "password": "hunter2"}`))
	rec := httptest.NewRecorder()
	env.API.SMTPCreate(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestSMTPCreateEncryptsPassword(t *testing.T) {
	api, smtp := smtpTestAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/smtp-configs",
		strings.NewReader(`{"name": "test-sealed", "host": "mail.example.com", "from_email": "no-reply@example.com", "password": "hunter2", "use_tls": true}`))
	rec := httptest.NewRecorder()
	api.SMTPCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "hunter2") {
		t.Error("plaintext password leaked into the response")
	}

	// The stored ciphertext decrypts back to the submitted password.
	configs, err := smtp.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var found bool
	for _, c := range configs {
		if c.Name != "test-sealed" {
			continue
		}
		found = true
		if c.Port != 587 {
			t.Errorf("default port = %d, want 587", c.Port)
		}
		plain, err := mailer.Decrypt([]byte(smtpTestKey), c.PasswordEnc)
		if err != nil {
			t.Fatalf("Decrypt: %v", err)
		}
		if plain != "hunter2" {
			t.Errorf("decrypted password = %q", plain)
		}
	}
	if !found {
		t.Fatal("created provider not listed")
	}
}

func TestSMTPListNeverSerializesPasswords(t *testing.T) {
	api, smtp := smtpTestAPI(t)

	enc, err := mailer.Encrypt([]byte(smtpTestKey), "s3cret")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if _, err := smtp.Create(&models.SMTPConfig{
		Name:        "test-hidden",
		Host:        "mail.example.com",
		Port:        587,
		FromEmail:   "no-reply@example.com",
		PasswordEnc: enc,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/smtp-configs", nil)
	rec := httptest.NewRecorder()
	api.SMTPList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	body := rec.Body.String()
	if strings.Contains(body, "s3cret") || strings.Contains(body, "password_enc") {
		t.Errorf("password material in list response: %s", body)
	}
}

func TestSMTPCreateValidation(t *testing.T) {
	api, _ := smtpTestAPI(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing name", `{"host": "mail.example.com", "from_email": "a@b.c"}`},
		{"missing host", `{"name": "test-x", "from_email": "a@b.c"}`},
		{"missing from_email", `{"name": "test-x", "host": "mail.example.com"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/smtp-configs", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			api.SMTPCreate(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}
