// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hackerthink/internal/models"
	"hackerthink/internal/session"
	"hackerthink/internal/store"
)

// multipartBody builds a multipart request body with a single file field.
func multipartBody(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// uploadUser creates a real user row so the uploaded_by foreign key holds.
func uploadUser(t *testing.T, env *testEnv) *session.Data {
	t.Helper()
	users := store.NewUserStore(env.DB)
	user, err := users.Create("media-test@test.local", "s3cret-pw", "Media Tester", models.RoleEditor)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	t.Cleanup(func() {
		env.DB.Exec("DELETE FROM media WHERE uploaded_by = $1", user.ID)
		users.Delete(user.ID)
	})
	return &session.Data{UserID: user.ID, Email: user.Email, Role: string(user.Role)}
}

func TestMediaUploadImage(t *testing.T) {
	env := newTestEnv(t)
	sess := uploadUser(t, env)

	body, contentType := multipartBody(t, "shot.png", pngBytes(t, 16, 16))
	req := httptest.NewRequest(http.MethodPost, "/api/media", body)
	req.Header.Set("Content-Type", contentType)
	req = withSession(req, sess)
	rec := httptest.NewRecorder()
	env.API.MediaUpload(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		ID       string `json:"id"`
		Filepath string `json:"filepath"`
		Filename string `json:"filename"`
		MimeType string `json:"mime_type"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ID == "" {
		t.Error("response missing media id")
	}
	if resp.MimeType != "image/png" {
		t.Errorf("sniffed mime = %q, want image/png", resp.MimeType)
	}
	if !strings.HasPrefix(filepath.ToSlash(resp.Filepath), "uploads/images/") {
		t.Errorf("filepath = %q, want uploads/images/ prefix", resp.Filepath)
	}
	if resp.Filename != "shot.png" {
		t.Errorf("original filename = %q", resp.Filename)
	}

	// The file on disk is the source of truth.
	if _, err := os.Stat(filepath.Join(env.MediaRoot, resp.Filepath)); err != nil {
		t.Errorf("uploaded file not on disk: %v", err)
	}
}

func TestMediaUploadRejectsUnknownType(t *testing.T) {
	env := newTestEnv(t)
	sess := uploadUser(t, env)

	// Binary garbage sniffs as application/octet-stream.
	body, contentType := multipartBody(t, "payload.bin", []byte{0x00, 0x01, 0x02, 0x03, 0xff, 0xfe})
	req := httptest.NewRequest(http.MethodPost, "/api/media", body)
	req.Header.Set("Content-Type", contentType)
	req = withSession(req, sess)
	rec := httptest.NewRecorder()
	env.API.MediaUpload(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "not allowed") {
		t.Errorf("body = %s", rec.Body.String())
	}

	// Nothing may hit the disk for a rejected upload.
	entries, _ := os.ReadDir(filepath.Join(env.MediaRoot, "uploads"))
	if len(entries) != 0 {
		t.Errorf("rejected upload left files behind: %v", entries)
	}
}

func TestMediaUploadNoFile(t *testing.T) {
	env := newTestEnv(t)
	sess := uploadUser(t, env)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("alt_text", "no file here")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/media", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req = withSession(req, sess)
	rec := httptest.NewRecorder()
	env.API.MediaUpload(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// A metadata insert failure must not fail the upload: the file is already
// on disk and the cleanup command reconciles the missing row. Forced here
// with a session whose user row does not exist, so the uploaded_by foreign
// key rejects the insert.
func TestMediaUploadSurvivesMetadataInsertFailure(t *testing.T) {
	env := newTestEnv(t)
	sess := testSession("editor")

	body, contentType := multipartBody(t, "orphan.png", pngBytes(t, 16, 16))
	req := httptest.NewRequest(http.MethodPost, "/api/media", body)
	req.Header.Set("Content-Type", contentType)
	req = withSession(req, sess)
	rec := httptest.NewRecorder()
	env.API.MediaUpload(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 despite insert failure; body %s", rec.Code, rec.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := resp["id"]; ok {
		t.Error("response carries an id although no row was inserted")
	}
	fp, _ := resp["filepath"].(string)
	if fp == "" {
		t.Fatal("response missing filepath")
	}
	if _, err := os.Stat(filepath.Join(env.MediaRoot, fp)); err != nil {
		t.Errorf("file missing from disk: %v", err)
	}
}
