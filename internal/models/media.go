// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MediaKind is the upload folder a file is classified into by MIME type.
type MediaKind string

const (
	MediaKindImages     MediaKind = "images"
	MediaKindDocuments  MediaKind = "documents"
	MediaKindWebStories MediaKind = "webstories"
)

// KindForMIME maps an accepted MIME type to its upload folder.
// Returns ("", false) for types that are not accepted at all.
func KindForMIME(mimeType string) (MediaKind, bool) {
	switch mimeType {
	case "image/jpeg", "image/png", "image/gif", "image/webp", "image/svg+xml":
		return MediaKindImages, true
	case "application/pdf", "text/plain; charset=utf-8", "text/plain":
		return MediaKindDocuments, true
	case "video/mp4", "video/webm", "audio/mpeg":
		return MediaKindWebStories, true
	}
	return "", false
}

// Media represents a file stored on local disk under the media root, with
// metadata in PostgreSQL. Filepath is relative to the media root; it is
// not guaranteed to exist on disk — the cleanup command reconciles drift.
type Media struct {
	ID           uuid.UUID  `json:"id"`
	Filename     string     `json:"filename"`
	OriginalName string     `json:"original_name"`
	Filepath     string     `json:"filepath"`
	Kind         MediaKind  `json:"kind"`
	MimeType     string     `json:"mime_type"`
	SizeBytes    int64      `json:"size_bytes"`
	ThumbPath    *string    `json:"thumb_path,omitempty"`
	AltText      *string    `json:"alt_text,omitempty"`
	Title        *string    `json:"title,omitempty"`
	Description  *string    `json:"description,omitempty"`
	UploadedBy   *uuid.UUID `json:"uploaded_by,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// IsImage returns true if the media item is an image type.
func (m *Media) IsImage() bool {
	return strings.HasPrefix(m.MimeType, "image/")
}

// HumanSize returns a human-readable file size string.
func (m *Media) HumanSize() string {
	const (
		kb = 1024
		mb = 1024 * kb
	)
	switch {
	case m.SizeBytes >= mb:
		return fmt.Sprintf("%.1f MB", float64(m.SizeBytes)/float64(mb))
	case m.SizeBytes >= kb:
		return fmt.Sprintf("%.0f KB", float64(m.SizeBytes)/float64(kb))
	default:
		return fmt.Sprintf("%d B", m.SizeBytes)
	}
}
