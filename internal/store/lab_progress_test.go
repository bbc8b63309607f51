// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"hackerthink/internal/models"
)

func TestLabProgressUpsert(t *testing.T) {
	db := testDB(t)
	users := NewUserStore(db)
	contents := NewContentStore(db)
	labs := NewLabProgressStore(db)

	t.Cleanup(func() {
		cleanContents(t, db, "test-lab-sqli")
		db.Exec("DELETE FROM users WHERE email = $1", "labtester@example.com")
	})

	user, err := users.Create("labtester@example.com", "s3cret-pass", "Lab Tester", models.RoleEditor)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	lab, err := contents.Create(&models.Content{
		Type: models.ContentTypeLabExercise, Title: "Test Lab SQLi", Slug: "test-lab-sqli",
		Status: models.ContentStatusPublished,
	})
	if err != nil {
		t.Fatalf("create lab: %v", err)
	}

	// No progress yet.
	got, err := labs.Find(user.ID, lab.ID)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got != nil {
		t.Errorf("found progress before any save: %+v", got)
	}

	first, err := labs.Save(user.ID, lab.ID, []int{0, 1}, false)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if len(first.CompletedSteps) != 2 || first.Completed {
		t.Errorf("first save = %+v", first)
	}

	// Second save for the same (user, exercise) replaces, not duplicates.
	second, err := labs.Save(user.ID, lab.ID, []int{0, 1, 2, 3}, true)
	if err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("upsert created a new row: %s vs %s", first.ID, second.ID)
	}
	if len(second.CompletedSteps) != 4 || !second.Completed {
		t.Errorf("second save = %+v", second)
	}

	list, err := labs.ListForUser(user.ID)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("got %d progress rows, want 1", len(list))
	}
}

func TestLabProgressNilSteps(t *testing.T) {
	db := testDB(t)
	users := NewUserStore(db)
	contents := NewContentStore(db)
	labs := NewLabProgressStore(db)

	t.Cleanup(func() {
		cleanContents(t, db, "test-lab-empty")
		db.Exec("DELETE FROM users WHERE email = $1", "labempty@example.com")
	})

	user, err := users.Create("labempty@example.com", "s3cret-pass", "Lab Empty", models.RoleEditor)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	lab, err := contents.Create(&models.Content{
		Type: models.ContentTypeLabExercise, Title: "Test Lab Empty", Slug: "test-lab-empty",
		Status: models.ContentStatusPublished,
	})
	if err != nil {
		t.Fatalf("create lab: %v", err)
	}

	saved, err := labs.Save(user.ID, lab.ID, nil, false)
	if err != nil {
		t.Fatalf("Save with nil steps: %v", err)
	}
	if saved.CompletedSteps == nil {
		t.Error("nil steps should round-trip as an empty array")
	}
	if len(saved.CompletedSteps) != 0 {
		t.Errorf("steps = %v, want empty", saved.CompletedSteps)
	}
}
