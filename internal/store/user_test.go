// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"hackerthink/internal/models"
)

func TestUserCreateAndPasswordCheck(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	email := "usertest@example.com"
	t.Cleanup(func() {
		db.Exec("DELETE FROM users WHERE email = $1", email)
	})

	user, err := s.Create(email, "correct horse battery", "User Test", models.RoleAuthor)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.Role != models.RoleAuthor {
		t.Errorf("role = %q", user.Role)
	}
	if user.PasswordHash == "correct horse battery" {
		t.Error("password stored in plaintext")
	}

	found, err := s.FindByEmail(email)
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if found == nil || found.ID != user.ID {
		t.Errorf("FindByEmail = %+v", found)
	}

	if !s.CheckPassword(found, "correct horse battery") {
		t.Error("correct password rejected")
	}
	if s.CheckPassword(found, "wrong password") {
		t.Error("wrong password accepted")
	}

	missing, err := s.FindByEmail("nobody@example.com")
	if err != nil {
		t.Fatalf("FindByEmail miss: %v", err)
	}
	if missing != nil {
		t.Errorf("found a user that does not exist: %+v", missing)
	}
}
