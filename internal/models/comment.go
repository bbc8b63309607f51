// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// commentNamespace is the fixed UUIDv5 namespace for deriving comment
// thread identifiers. Changing it would detach every existing thread.
var commentNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// CommentStatus is the moderation state of a comment.
type CommentStatus string

const (
	CommentStatusPending  CommentStatus = "pending"
	CommentStatusApproved CommentStatus = "approved"
)

// Comment is a reader comment attached to a content item. AuthorEmail is
// stored for moderation but never serialized in public responses.
type Comment struct {
	ID          uuid.UUID     `json:"id"`
	ContentID   uuid.UUID     `json:"content_id"`
	AuthorName  string        `json:"author_name"`
	AuthorEmail string        `json:"-"`
	Body        string        `json:"body"`
	ParentID    *uuid.UUID    `json:"parent_id,omitempty"`
	Status      CommentStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
}

// ThreadID resolves a raw content identifier to the UUID comment threads
// key on. A UUID-shaped rawID is used as-is; anything else (legacy numeric
// IDs in particular) is deterministically hashed as a version-5 UUID over
// "<contentType>-<rawID>", so the same pair always yields the same thread.
func ThreadID(contentType, rawID string) uuid.UUID {
	if id, err := uuid.Parse(rawID); err == nil {
		return id
	}
	return uuid.NewSHA1(commentNamespace, []byte(contentType+"-"+rawID))
}
