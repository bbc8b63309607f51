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

// CategoryStore manages one of the per-type category tables. The table
// name is fixed at construction; every instance serves exactly one
// content type (articles, tutorials or news).
type CategoryStore struct {
	db          *sql.DB
	table       string
	contentType models.ContentType
	taxonomy    models.TaxonomyType
}

// NewArticleCategoryStore returns the store for article_categories.
func NewArticleCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db, table: "article_categories",
		contentType: models.ContentTypeArticle, taxonomy: models.TaxonomyArticles}
}

// NewTutorialCategoryStore returns the store for tutorial_categories.
func NewTutorialCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db, table: "tutorial_categories",
		contentType: models.ContentTypeTutorial, taxonomy: models.TaxonomyTutorials}
}

// NewNewsCategoryStore returns the store for news_categories.
func NewNewsCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db, table: "news_categories",
		contentType: models.ContentTypeNews, taxonomy: models.TaxonomyNews}
}

// TaxonomyType returns the source name this store contributes to the
// aggregated taxonomy.
func (s *CategoryStore) TaxonomyType() models.TaxonomyType {
	return s.taxonomy
}

const categoryColumns = `id, name, slug, description, parent_id, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.ParentID,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListWithCounts returns all categories with the number of published
// content rows referencing each, ordered by name. This is the taxonomy
// aggregator's per-source read.
func (s *CategoryStore) ListWithCounts() ([]models.TaxonomyCategory, error) {
	rows, err := s.db.Query(fmt.Sprintf(`
		SELECT c.id, c.name, c.slug, c.description, c.parent_id,
		       c.created_at, c.updated_at,
		       COUNT(ct.id) AS item_count
		FROM %s c
		LEFT JOIN contents ct ON ct.category_id = c.id
			AND ct.type = $1 AND ct.status = 'published'
		GROUP BY c.id
		ORDER BY c.name
	`, s.table), s.contentType)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.table, err)
	}
	defer rows.Close()

	var items []models.TaxonomyCategory
	for rows.Next() {
		var c models.Category
		var count int
		err := rows.Scan(
			&c.ID, &c.Name, &c.Slug, &c.Description, &c.ParentID,
			&c.CreatedAt, &c.UpdatedAt, &count,
		)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.table, err)
		}
		created, updated := c.CreatedAt, c.UpdatedAt
		items = append(items, models.TaxonomyCategory{
			ID:          c.ID.String(),
			Name:        c.Name,
			Slug:        c.Slug,
			Description: c.Description,
			ContentType: s.taxonomy,
			ItemCount:   count,
			ParentID:    c.ParentID,
			CreatedAt:   &created,
			UpdatedAt:   &updated,
		})
	}
	return items, rows.Err()
}

// FindByID retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) FindByID(id uuid.UUID) (*models.Category, error) {
	row := s.db.QueryRow(
		fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, categoryColumns, s.table), id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category in %s: %w", s.table, err)
	}
	return c, nil
}

// Create inserts a new category and returns it. A duplicate slug surfaces
// as a unique violation; callers check with IsUniqueViolation.
func (s *CategoryStore) Create(c *models.Category) (*models.Category, error) {
	row := s.db.QueryRow(fmt.Sprintf(`
		INSERT INTO %s (name, slug, description, parent_id)
		VALUES ($1, $2, $3, $4)
		RETURNING %s
	`, s.table, categoryColumns),
		c.Name, c.Slug, c.Description, c.ParentID,
	)
	created, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("create category in %s: %w", s.table, err)
	}
	return created, nil
}

// CategoryUpdate carries the fields of a partial category update.
type CategoryUpdate struct {
	Name        *string    `json:"name"`
	Slug        *string    `json:"slug"`
	Description *string    `json:"description"`
	ParentID    *uuid.UUID `json:"parent_id"`
}

// UpdatePartial applies a partial update. Returns nil if the id is unknown.
func (s *CategoryStore) UpdatePartial(id uuid.UUID, upd *CategoryUpdate) (*models.Category, error) {
	var b updateBuilder
	if upd.Name != nil {
		b.Set("name", *upd.Name)
	}
	if upd.Slug != nil {
		b.Set("slug", *upd.Slug)
	}
	if upd.Description != nil {
		b.Set("description", *upd.Description)
	}
	if upd.ParentID != nil {
		b.Set("parent_id", *upd.ParentID)
	}
	b.SetRaw("updated_at = NOW()")

	row := s.db.QueryRow(fmt.Sprintf(`
		UPDATE %s SET %s WHERE id = $%d RETURNING %s`,
		s.table, b.Clause(), b.NextIndex(), categoryColumns),
		append(b.Args(), id)...,
	)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update category in %s: %w", s.table, err)
	}
	return c, nil
}

// Delete removes a category. The delete is blocked with ErrInUse while any
// content row of this store's type references the category; the count check
// and the delete run in one transaction. Returns false if the id is unknown.
func (s *CategoryStore) Delete(id uuid.UUID) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var refs int
	err = tx.QueryRow(`
		SELECT COUNT(*) FROM contents WHERE type = $1 AND category_id = $2
	`, s.contentType, id).Scan(&refs)
	if err != nil {
		return false, fmt.Errorf("count category refs in %s: %w", s.table, err)
	}
	if refs > 0 {
		return false, ErrInUse
	}

	res, err := tx.Exec(fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, s.table), id)
	if err != nil {
		return false, fmt.Errorf("delete category in %s: %w", s.table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete category rows: %w", err)
	}
	if n == 0 {
		return false, nil
	}

	return true, tx.Commit()
}
