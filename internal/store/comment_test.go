// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"hackerthink/internal/models"
)

func TestCommentModerationFlow(t *testing.T) {
	db := testDB(t)
	s := NewCommentStore(db)

	threadID := models.ThreadID("tutorial", "test-thread-9001")
	t.Cleanup(func() {
		db.Exec("DELETE FROM comments WHERE content_id = $1", threadID)
	})

	created, err := s.Create(&models.Comment{
		ContentID:   threadID,
		AuthorName:  "anon",
		AuthorEmail: "anon@example.com",
		Body:        "great walkthrough",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Status != models.CommentStatusPending {
		t.Errorf("new comment status = %q, want pending", created.Status)
	}

	// Pending comments stay out of the public listing.
	visible, err := s.ListApproved(threadID)
	if err != nil {
		t.Fatalf("ListApproved: %v", err)
	}
	if len(visible) != 0 {
		t.Errorf("pending comment is publicly visible")
	}

	approved, err := s.Approve(created.ID)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if approved == nil || approved.Status != models.CommentStatusApproved {
		t.Errorf("Approve = %+v", approved)
	}

	// Replies thread under their parent.
	reply, err := s.Create(&models.Comment{
		ContentID:   threadID,
		AuthorName:  "author",
		AuthorEmail: "author@example.com",
		Body:        "thanks!",
		ParentID:    &created.ID,
	})
	if err != nil {
		t.Fatalf("create reply: %v", err)
	}
	if _, err := s.Approve(reply.ID); err != nil {
		t.Fatalf("approve reply: %v", err)
	}

	visible, err = s.ListApproved(threadID)
	if err != nil {
		t.Fatalf("ListApproved: %v", err)
	}
	if len(visible) != 2 {
		t.Fatalf("got %d approved comments, want 2", len(visible))
	}
	// Oldest first, so the parent precedes the reply.
	if visible[0].ID != created.ID || visible[1].ParentID == nil || *visible[1].ParentID != created.ID {
		t.Errorf("thread order broken: %+v", visible)
	}

	ok, err := s.Delete(reply.ID)
	if err != nil || !ok {
		t.Fatalf("Delete = %v, %v", ok, err)
	}
}

func TestCommentApproveUnknownID(t *testing.T) {
	db := testDB(t)
	s := NewCommentStore(db)

	got, err := s.Approve(models.ThreadID("news", "test-never-created"))
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if got != nil {
		t.Errorf("approved a comment that does not exist: %+v", got)
	}
}
