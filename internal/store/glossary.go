// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"hackerthink/internal/models"
)

// GlossaryStore manages glossary terms.
type GlossaryStore struct {
	db *sql.DB
}

// NewGlossaryStore creates a new GlossaryStore.
func NewGlossaryStore(db *sql.DB) *GlossaryStore {
	return &GlossaryStore{db: db}
}

const glossaryColumns = `id, term, slug, definition, created_at, updated_at`

func scanGlossaryTerm(scanner interface{ Scan(...any) error }) (*models.GlossaryTerm, error) {
	var g models.GlossaryTerm
	err := scanner.Scan(&g.ID, &g.Term, &g.Slug, &g.Definition, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// List returns all terms in alphabetical order.
func (s *GlossaryStore) List() ([]models.GlossaryTerm, error) {
	rows, err := s.db.Query(`SELECT ` + glossaryColumns + ` FROM glossary_terms ORDER BY term`)
	if err != nil {
		return nil, fmt.Errorf("list glossary terms: %w", err)
	}
	defer rows.Close()

	var items []models.GlossaryTerm
	for rows.Next() {
		g, err := scanGlossaryTerm(rows)
		if err != nil {
			return nil, fmt.Errorf("scan glossary term: %w", err)
		}
		items = append(items, *g)
	}
	return items, rows.Err()
}

// FindByID returns one term, or nil if not found.
func (s *GlossaryStore) FindByID(id uuid.UUID) (*models.GlossaryTerm, error) {
	row := s.db.QueryRow(`SELECT `+glossaryColumns+` FROM glossary_terms WHERE id = $1`, id)
	g, err := scanGlossaryTerm(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find glossary term: %w", err)
	}
	return g, nil
}

// FindBySlug returns one term by slug, or nil if not found.
func (s *GlossaryStore) FindBySlug(slug string) (*models.GlossaryTerm, error) {
	row := s.db.QueryRow(`SELECT `+glossaryColumns+` FROM glossary_terms WHERE slug = $1`, slug)
	g, err := scanGlossaryTerm(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find glossary term: %w", err)
	}
	return g, nil
}

// Create inserts a term and returns it.
func (s *GlossaryStore) Create(g *models.GlossaryTerm) (*models.GlossaryTerm, error) {
	row := s.db.QueryRow(`
		INSERT INTO glossary_terms (term, slug, definition)
		VALUES ($1, $2, $3)
		RETURNING `+glossaryColumns,
		g.Term, g.Slug, g.Definition,
	)
	created, err := scanGlossaryTerm(row)
	if err != nil {
		return nil, fmt.Errorf("create glossary term: %w", err)
	}
	return created, nil
}

// GlossaryUpdate carries the fields of a partial glossary update.
type GlossaryUpdate struct {
	Term       *string `json:"term"`
	Slug       *string `json:"slug"`
	Definition *string `json:"definition"`
}

// UpdatePartial applies the non-nil fields of upd. Returns nil if the id is unknown.
func (s *GlossaryStore) UpdatePartial(id uuid.UUID, upd GlossaryUpdate) (*models.GlossaryTerm, error) {
	var b updateBuilder
	if upd.Term != nil {
		b.Set("term", *upd.Term)
	}
	if upd.Slug != nil {
		b.Set("slug", *upd.Slug)
	}
	if upd.Definition != nil {
		b.Set("definition", *upd.Definition)
	}
	if b.Empty() {
		return s.FindByID(id)
	}
	b.SetRaw("updated_at = NOW()")

	query := fmt.Sprintf(`UPDATE glossary_terms SET %s WHERE id = $%d RETURNING %s`,
		b.Clause(), b.NextIndex(), glossaryColumns)
	row := s.db.QueryRow(query, append(b.Args(), id)...)
	g, err := scanGlossaryTerm(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update glossary term: %w", err)
	}
	return g, nil
}

// Delete removes a term. Returns false if the id is unknown.
func (s *GlossaryStore) Delete(id uuid.UUID) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM glossary_terms WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete glossary term: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
