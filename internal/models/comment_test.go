// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestThreadIDDeterministic(t *testing.T) {
	a := ThreadID("tutorial", "42")
	b := ThreadID("tutorial", "42")
	if a != b {
		t.Errorf("same input produced different thread IDs: %s vs %s", a, b)
	}
	if a == uuid.Nil {
		t.Error("thread ID is the nil UUID")
	}
	if a.Version() != 5 {
		t.Errorf("derived thread ID version = %d, want 5", a.Version())
	}
}

func TestThreadIDDistinguishesTypeAndID(t *testing.T) {
	base := ThreadID("tutorial", "42")
	if other := ThreadID("news", "42"); other == base {
		t.Error("different content types mapped to the same thread")
	}
	if other := ThreadID("tutorial", "43"); other == base {
		t.Error("different raw IDs mapped to the same thread")
	}
}

func TestThreadIDPassesUUIDThrough(t *testing.T) {
	id := uuid.New()
	if got := ThreadID("article", id.String()); got != id {
		t.Errorf("UUID-shaped ID was rehashed: got %s, want %s", got, id)
	}
}

// Author emails are moderation-only and must never leak through JSON.
func TestCommentJSONOmitsEmail(t *testing.T) {
	c := Comment{
		ID:          uuid.New(),
		AuthorName:  "eve",
		AuthorEmail: "eve@example.com",
		Body:        "nice writeup",
		Status:      CommentStatusApproved,
	}
	raw, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(raw), "eve@example.com") {
		t.Errorf("author email leaked into JSON: %s", raw)
	}
	if !strings.Contains(string(raw), `"author_name":"eve"`) {
		t.Errorf("author name missing from JSON: %s", raw)
	}
}
