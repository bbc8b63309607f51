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

// ContentStore handles all content-related database operations. It serves
// every editorial type (articles, tutorials, news, interviews, lab
// exercises, web stories) through the unified contents table.
type ContentStore struct {
	db *sql.DB
}

// NewContentStore creates a new ContentStore with the given database connection.
func NewContentStore(db *sql.DB) *ContentStore {
	return &ContentStore{db: db}
}

const contentColumns = `c.id, c.type, c.title, c.slug, c.body, c.blocks, c.status,
	c.category_id, c.guest_id, c.meta_title, c.meta_description, c.schema_json,
	c.published_at, c.created_at, c.updated_at`

// guestJoinColumns are the nullable guest columns selected alongside
// content rows so interview reads carry their guest without a second query.
const guestJoinColumns = `g.id, g.name, g.slug, g.bio, g.social_links, g.verified,
	g.created_at, g.updated_at`

// guestNullColumns stand in for the guest join on INSERT/UPDATE RETURNING,
// where no join is available; scanContent sees them as an absent guest.
const guestNullColumns = `NULL::uuid, NULL::text, NULL::text, NULL::text,
	NULL::jsonb, NULL::boolean, NULL::timestamptz, NULL::timestamptz`

// scanContent scans one joined content+guest row.
func scanContent(scanner interface{ Scan(...any) error }) (*models.Content, error) {
	var c models.Content
	var blocks, schemaJSON []byte

	var gID uuid.NullUUID
	var gName, gSlug, gBio sql.NullString
	var gLinks []byte
	var gVerified sql.NullBool
	var gCreated, gUpdated sql.NullTime

	err := scanner.Scan(
		&c.ID, &c.Type, &c.Title, &c.Slug, &c.Body, &blocks, &c.Status,
		&c.CategoryID, &c.GuestID, &c.MetaTitle, &c.MetaDescription, &schemaJSON,
		&c.PublishedAt, &c.CreatedAt, &c.UpdatedAt,
		&gID, &gName, &gSlug, &gBio, &gLinks, &gVerified, &gCreated, &gUpdated,
	)
	if err != nil {
		return nil, err
	}

	c.Blocks = json.RawMessage(blocks)
	c.SchemaJSON = json.RawMessage(schemaJSON)

	if gID.Valid {
		g := &models.Guest{
			ID:        gID.UUID,
			Name:      gName.String,
			Slug:      gSlug.String,
			Bio:       gBio.String,
			Verified:  gVerified.Bool,
			CreatedAt: gCreated.Time,
			UpdatedAt: gUpdated.Time,
		}
		if len(gLinks) > 0 {
			if err := json.Unmarshal(gLinks, &g.SocialLinks); err != nil {
				return nil, fmt.Errorf("decode guest social links: %w", err)
			}
		}
		c.Guest = g
	}

	return &c, nil
}

// List returns content items of the given type, newest first. With
// includeDrafts false only published rows are returned (the public view).
func (s *ContentStore) List(contentType models.ContentType, includeDrafts bool) ([]models.Content, error) {
	query := `
		SELECT ` + contentColumns + `, ` + guestJoinColumns + `
		FROM contents c
		LEFT JOIN guests g ON g.id = c.guest_id
		WHERE c.type = $1`
	if !includeDrafts {
		query += ` AND c.status = 'published'`
	}
	query += ` ORDER BY c.created_at DESC`

	rows, err := s.db.Query(query, contentType)
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	defer rows.Close()

	var items []models.Content
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// FindByID retrieves a content item by its UUID. Returns nil if not found.
func (s *ContentStore) FindByID(id uuid.UUID) (*models.Content, error) {
	row := s.db.QueryRow(`
		SELECT `+contentColumns+`, `+guestJoinColumns+`
		FROM contents c
		LEFT JOIN guests g ON g.id = c.guest_id
		WHERE c.id = $1
	`, id)
	c, err := scanContent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find content by id: %w", err)
	}
	return c, nil
}

// FindBySlug retrieves a published content item of the given type by slug.
func (s *ContentStore) FindBySlug(contentType models.ContentType, slug string) (*models.Content, error) {
	row := s.db.QueryRow(`
		SELECT `+contentColumns+`, `+guestJoinColumns+`
		FROM contents c
		LEFT JOIN guests g ON g.id = c.guest_id
		WHERE c.type = $1 AND c.slug = $2 AND c.status = 'published'
	`, contentType, slug)
	c, err := scanContent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find content by slug: %w", err)
	}
	return c, nil
}

// Create inserts a new content item and returns it with the generated ID.
// Items created directly in published status get published_at immediately.
// A duplicate (type, slug) surfaces as a unique violation; callers check
// with IsUniqueViolation.
func (s *ContentStore) Create(c *models.Content) (*models.Content, error) {
	var blocks, schemaJSON any
	if len(c.Blocks) > 0 {
		blocks = []byte(c.Blocks)
	}
	if len(c.SchemaJSON) > 0 {
		schemaJSON = []byte(c.SchemaJSON)
	}

	row := s.db.QueryRow(`
		INSERT INTO contents AS c (type, title, slug, body, blocks, status,
			category_id, guest_id, meta_title, meta_description, schema_json,
			published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
			CASE WHEN $6 = 'published' THEN NOW() END)
		RETURNING `+contentColumns+`, `+guestNullColumns+`
	`, c.Type, c.Title, c.Slug, c.Body, blocks, c.Status,
		c.CategoryID, c.GuestID, c.MetaTitle, c.MetaDescription, schemaJSON,
	)
	created, err := scanContent(row)
	if err != nil {
		return nil, fmt.Errorf("create content: %w", err)
	}
	return created, nil
}

// ContentUpdate carries the fields of a partial update. Nil fields are
// absent from the request and stay untouched.
type ContentUpdate struct {
	Title           *string               `json:"title"`
	Slug            *string               `json:"slug"`
	Body            *string               `json:"body"`
	Blocks          json.RawMessage       `json:"blocks"`
	Status          *models.ContentStatus `json:"status"`
	CategoryID      *uuid.UUID            `json:"category_id"`
	GuestID         *uuid.UUID            `json:"guest_id"`
	MetaTitle       *string               `json:"meta_title"`
	MetaDescription *string               `json:"meta_description"`
	SchemaJSON      json.RawMessage       `json:"schema_json"`
}

// UpdatePartial applies a partial update to one content item. Only supplied
// fields enter the SET clause; updated_at is always bumped. A transition to
// published sets published_at exactly once — re-publishing never overwrites
// it (COALESCE guard). Returns the updated row, or nil if the id is unknown.
func (s *ContentStore) UpdatePartial(id uuid.UUID, contentType models.ContentType, upd *ContentUpdate) (*models.Content, error) {
	var b updateBuilder
	if upd.Title != nil {
		b.Set("title", *upd.Title)
	}
	if upd.Slug != nil {
		b.Set("slug", *upd.Slug)
	}
	if upd.Body != nil {
		b.Set("body", *upd.Body)
	}
	if len(upd.Blocks) > 0 {
		b.Set("blocks", []byte(upd.Blocks))
	}
	if upd.CategoryID != nil {
		b.Set("category_id", *upd.CategoryID)
	}
	if upd.GuestID != nil {
		b.Set("guest_id", *upd.GuestID)
	}
	if upd.MetaTitle != nil {
		b.Set("meta_title", *upd.MetaTitle)
	}
	if upd.MetaDescription != nil {
		b.Set("meta_description", *upd.MetaDescription)
	}
	if len(upd.SchemaJSON) > 0 {
		b.Set("schema_json", []byte(upd.SchemaJSON))
	}
	if upd.Status != nil {
		b.Set("status", *upd.Status)
		if *upd.Status == models.ContentStatusPublished {
			b.SetRaw("published_at = COALESCE(published_at, NOW())")
		}
	}
	b.SetRaw("updated_at = NOW()")

	query := fmt.Sprintf(`
		UPDATE contents AS c SET %s
		WHERE c.id = $%d AND c.type = $%d
		RETURNING `+contentColumns+`, `+guestNullColumns,
		b.Clause(), b.NextIndex(), b.NextIndex()+1)
	args := append(b.Args(), id, contentType)

	row := s.db.QueryRow(query, args...)
	c, err := scanContent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update content: %w", err)
	}
	return c, nil
}

// Delete removes a content item by ID and type. Returns false if no row matched.
func (s *ContentStore) Delete(id uuid.UUID, contentType models.ContentType) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM contents WHERE id = $1 AND type = $2`, id, contentType)
	if err != nil {
		return false, fmt.Errorf("delete content: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete content rows: %w", err)
	}
	return n > 0, nil
}

// CountByGuest returns the number of interviews referencing a guest.
func (s *ContentStore) CountByGuest(guestID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM contents WHERE guest_id = $1
	`, guestID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count content by guest: %w", err)
	}
	return count, nil
}

// CountByCategory returns the number of content rows of one type
// referencing a category, optionally published only.
func (s *ContentStore) CountByCategory(contentType models.ContentType, categoryID uuid.UUID, publishedOnly bool) (int, error) {
	query := `SELECT COUNT(*) FROM contents WHERE type = $1 AND category_id = $2`
	if publishedOnly {
		query += ` AND status = 'published'`
	}
	var count int
	if err := s.db.QueryRow(query, contentType, categoryID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count content by category: %w", err)
	}
	return count, nil
}
