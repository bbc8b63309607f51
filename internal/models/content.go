// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ContentType distinguishes the editorial formats sharing the contents table.
type ContentType string

const (
	ContentTypeArticle     ContentType = "article"
	ContentTypeTutorial    ContentType = "tutorial"
	ContentTypeNews        ContentType = "news"
	ContentTypeInterview   ContentType = "interview"
	ContentTypeLabExercise ContentType = "lab_exercise"
	ContentTypeWebStory    ContentType = "web_story"
)

// ValidContentTypes lists every type served by the content API, in the
// order they appear in routes and admin listings.
var ValidContentTypes = []ContentType{
	ContentTypeArticle,
	ContentTypeTutorial,
	ContentTypeNews,
	ContentTypeInterview,
	ContentTypeLabExercise,
	ContentTypeWebStory,
}

// IsValidContentType reports whether t names a known content type.
func IsValidContentType(t ContentType) bool {
	for _, v := range ValidContentTypes {
		if v == t {
			return true
		}
	}
	return false
}

// contentTypePaths maps URL path segments to content types. Path segments
// are plural and hyphenated; the stored type values are not.
var contentTypePaths = map[string]ContentType{
	"articles":      ContentTypeArticle,
	"tutorials":     ContentTypeTutorial,
	"news":          ContentTypeNews,
	"interviews":    ContentTypeInterview,
	"lab-exercises": ContentTypeLabExercise,
	"web-stories":   ContentTypeWebStory,
}

// ContentTypeFromPath resolves a URL path segment like "lab-exercises" to
// its content type. Returns false for unknown segments.
func ContentTypeFromPath(segment string) (ContentType, bool) {
	t, ok := contentTypePaths[segment]
	return t, ok
}

// PathName returns the URL path segment serving this content type.
func (t ContentType) PathName() string {
	for seg, ct := range contentTypePaths {
		if ct == t {
			return seg
		}
	}
	return string(t)
}

// ContentStatus represents the publishing state of a content item.
type ContentStatus string

const (
	ContentStatusDraft     ContentStatus = "draft"
	ContentStatusPublished ContentStatus = "published"
)

// Content represents a single editorial item. Articles, tutorials, news,
// interviews, lab exercises and web stories share the same table,
// differentiated by the Type field. Blocks carries structured payloads
// (web story slides, lab exercise steps) as raw JSON.
type Content struct {
	ID              uuid.UUID       `json:"id"`
	Type            ContentType     `json:"type"`
	Title           string          `json:"title"`
	Slug            string          `json:"slug"`
	Body            string          `json:"body"`
	BodyHTML        string          `json:"body_html,omitempty"`
	Blocks          json.RawMessage `json:"blocks,omitempty"`
	Status          ContentStatus   `json:"status"`
	CategoryID      *uuid.UUID      `json:"category_id,omitempty"`
	GuestID         *uuid.UUID      `json:"guest_id,omitempty"`
	MetaTitle       *string         `json:"meta_title,omitempty"`
	MetaDescription *string         `json:"meta_description,omitempty"`
	SchemaJSON      json.RawMessage `json:"schema_json,omitempty"`
	PublishedAt     *time.Time      `json:"published_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	// Guest is populated on interview reads via a join. Never written.
	Guest *Guest `json:"guest,omitempty"`
}

// IsPublished returns true if the content item is in published status.
func (c *Content) IsPublished() bool {
	return c.Status == ContentStatusPublished
}
