// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"hackerthink/internal/models"
)

// GuestStore manages interview guests.
type GuestStore struct {
	db *sql.DB
}

// NewGuestStore creates a new GuestStore.
func NewGuestStore(db *sql.DB) *GuestStore {
	return &GuestStore{db: db}
}

const guestColumns = `id, name, slug, bio, social_links, verified, created_at, updated_at`

func scanGuest(scanner interface{ Scan(...any) error }) (*models.Guest, error) {
	var g models.Guest
	var links []byte
	err := scanner.Scan(
		&g.ID, &g.Name, &g.Slug, &g.Bio, &links, &g.Verified,
		&g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(links, &g.SocialLinks); err != nil {
		return nil, fmt.Errorf("decode social links: %w", err)
	}
	return &g, nil
}

// List returns all guests ordered by name.
func (s *GuestStore) List() ([]models.Guest, error) {
	rows, err := s.db.Query(`SELECT ` + guestColumns + ` FROM guests ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	defer rows.Close()

	var items []models.Guest
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan guest: %w", err)
		}
		items = append(items, *g)
	}
	return items, rows.Err()
}

// FindByID retrieves a guest by ID. Returns nil if not found.
func (s *GuestStore) FindByID(id uuid.UUID) (*models.Guest, error) {
	row := s.db.QueryRow(`SELECT `+guestColumns+` FROM guests WHERE id = $1`, id)
	g, err := scanGuest(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find guest: %w", err)
	}
	return g, nil
}

// Create inserts a new guest and returns it. A duplicate slug surfaces as
// a unique violation.
func (s *GuestStore) Create(g *models.Guest) (*models.Guest, error) {
	links, err := json.Marshal(linksOrEmpty(g.SocialLinks))
	if err != nil {
		return nil, fmt.Errorf("encode social links: %w", err)
	}
	row := s.db.QueryRow(`
		INSERT INTO guests (name, slug, bio, social_links, verified)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+guestColumns,
		g.Name, g.Slug, g.Bio, links, g.Verified,
	)
	created, err := scanGuest(row)
	if err != nil {
		return nil, fmt.Errorf("create guest: %w", err)
	}
	return created, nil
}

// GuestUpdate carries the fields of a partial guest update.
type GuestUpdate struct {
	Name        *string            `json:"name"`
	Slug        *string            `json:"slug"`
	Bio         *string            `json:"bio"`
	SocialLinks *map[string]string `json:"social_links"`
	Verified    *bool              `json:"verified"`
}

// UpdatePartial applies a partial update. Returns nil if the id is unknown.
func (s *GuestStore) UpdatePartial(id uuid.UUID, upd *GuestUpdate) (*models.Guest, error) {
	var b updateBuilder
	if upd.Name != nil {
		b.Set("name", *upd.Name)
	}
	if upd.Slug != nil {
		b.Set("slug", *upd.Slug)
	}
	if upd.Bio != nil {
		b.Set("bio", *upd.Bio)
	}
	if upd.SocialLinks != nil {
		links, err := json.Marshal(linksOrEmpty(*upd.SocialLinks))
		if err != nil {
			return nil, fmt.Errorf("encode social links: %w", err)
		}
		b.Set("social_links", links)
	}
	if upd.Verified != nil {
		b.Set("verified", *upd.Verified)
	}
	b.SetRaw("updated_at = NOW()")

	row := s.db.QueryRow(fmt.Sprintf(`
		UPDATE guests SET %s WHERE id = $%d RETURNING %s`,
		b.Clause(), b.NextIndex(), guestColumns),
		append(b.Args(), id)...,
	)
	g, err := scanGuest(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update guest: %w", err)
	}
	return g, nil
}

// Delete removes a guest. Blocked with ErrInUse while any interview
// references the guest; check and delete share one transaction. Returns
// false if the id is unknown.
func (s *GuestStore) Delete(id uuid.UUID) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var refs int
	err = tx.QueryRow(`SELECT COUNT(*) FROM contents WHERE guest_id = $1`, id).Scan(&refs)
	if err != nil {
		return false, fmt.Errorf("count guest refs: %w", err)
	}
	if refs > 0 {
		return false, ErrInUse
	}

	res, err := tx.Exec(`DELETE FROM guests WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete guest: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete guest rows: %w", err)
	}
	if n == 0 {
		return false, nil
	}

	return true, tx.Commit()
}

// linksOrEmpty normalizes a nil map so the jsonb column stores {}.
func linksOrEmpty(links map[string]string) map[string]string {
	if links == nil {
		return map[string]string{}
	}
	return links
}
