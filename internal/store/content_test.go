// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"
	"time"

	"hackerthink/internal/models"
)

func TestContentCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewContentStore(db)
	t.Cleanup(func() { cleanContents(t, db, "test-scanning-basics") })

	created, err := s.Create(&models.Content{
		Type:   models.ContentTypeTutorial,
		Title:  "Test Scanning Basics",
		Slug:   "test-scanning-basics",
		Body:   "## Intro\nrun nmap",
		Status: models.ContentStatusDraft,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID.String() == "" || created.Slug != "test-scanning-basics" {
		t.Errorf("unexpected created row: %+v", created)
	}
	if created.PublishedAt != nil {
		t.Error("draft content must not have published_at set")
	}

	// Drafts are invisible to the public slug lookup.
	got, err := s.FindBySlug(models.ContentTypeTutorial, "test-scanning-basics")
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if got != nil {
		t.Error("FindBySlug returned a draft")
	}

	// But findable by ID.
	got, err = s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got == nil || got.Title != "Test Scanning Basics" {
		t.Errorf("FindByID = %+v", got)
	}
}

func TestContentPublishSetsPublishedAtOnce(t *testing.T) {
	db := testDB(t)
	s := NewContentStore(db)
	t.Cleanup(func() { cleanContents(t, db, "test-publish-once") })

	created, err := s.Create(&models.Content{
		Type:   models.ContentTypeArticle,
		Title:  "Test Publish Once",
		Slug:   "test-publish-once",
		Status: models.ContentStatusDraft,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	published := models.ContentStatusPublished
	first, err := s.UpdatePartial(created.ID, models.ContentTypeArticle, &ContentUpdate{Status: &published})
	if err != nil {
		t.Fatalf("first publish: %v", err)
	}
	if first == nil || first.PublishedAt == nil {
		t.Fatal("publish did not set published_at")
	}

	time.Sleep(10 * time.Millisecond)
	second, err := s.UpdatePartial(created.ID, models.ContentTypeArticle, &ContentUpdate{Status: &published})
	if err != nil {
		t.Fatalf("re-publish: %v", err)
	}
	if !second.PublishedAt.Equal(*first.PublishedAt) {
		t.Errorf("re-publish moved published_at: %v -> %v", first.PublishedAt, second.PublishedAt)
	}
}

func TestContentSlugUniquePerType(t *testing.T) {
	db := testDB(t)
	s := NewContentStore(db)
	t.Cleanup(func() { cleanContents(t, db, "test-shared-slug") })

	if _, err := s.Create(&models.Content{
		Type: models.ContentTypeNews, Title: "One", Slug: "test-shared-slug",
		Status: models.ContentStatusDraft,
	}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	// Same slug, same type: unique violation.
	_, err := s.Create(&models.Content{
		Type: models.ContentTypeNews, Title: "Two", Slug: "test-shared-slug",
		Status: models.ContentStatusDraft,
	})
	if !IsUniqueViolation(err) {
		t.Errorf("expected unique violation, got %v", err)
	}

	// Same slug, different type: allowed.
	if _, err := s.Create(&models.Content{
		Type: models.ContentTypeArticle, Title: "Three", Slug: "test-shared-slug",
		Status: models.ContentStatusDraft,
	}); err != nil {
		t.Errorf("same slug under a different type should insert: %v", err)
	}
}

func TestContentDelete(t *testing.T) {
	db := testDB(t)
	s := NewContentStore(db)

	created, err := s.Create(&models.Content{
		Type: models.ContentTypeWebStory, Title: "Gone Soon", Slug: "test-gone-soon",
		Status: models.ContentStatusDraft,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	ok, err := s.Delete(created.ID, models.ContentTypeWebStory)
	if err != nil || !ok {
		t.Fatalf("Delete = %v, %v", ok, err)
	}
	// Second delete finds nothing.
	ok, err = s.Delete(created.ID, models.ContentTypeWebStory)
	if err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	if ok {
		t.Error("second delete reported a match")
	}
}
