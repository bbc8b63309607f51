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

// CommandStore manages command/script listings.
type CommandStore struct {
	db *sql.DB
}

// NewCommandStore creates a new CommandStore.
func NewCommandStore(db *sql.DB) *CommandStore {
	return &CommandStore{db: db}
}

const commandColumns = `id, name, slug, description, code, categories, published, created_at, updated_at`

func scanCommand(scanner interface{ Scan(...any) error }) (*models.Command, error) {
	var c models.Command
	var cats []byte
	err := scanner.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.Code, &cats,
		&c.Published, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(cats, &c.Categories); err != nil {
		return nil, fmt.Errorf("decode command categories: %w", err)
	}
	return &c, nil
}

// List returns all commands, newest first.
func (s *CommandStore) List() ([]models.Command, error) {
	rows, err := s.db.Query(`SELECT ` + commandColumns + ` FROM commands ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list commands: %w", err)
	}
	defer rows.Close()

	var items []models.Command
	for rows.Next() {
		c, err := scanCommand(rows)
		if err != nil {
			return nil, fmt.Errorf("scan command: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// FindByID retrieves a command by ID. Returns nil if not found.
func (s *CommandStore) FindByID(id uuid.UUID) (*models.Command, error) {
	row := s.db.QueryRow(`SELECT `+commandColumns+` FROM commands WHERE id = $1`, id)
	c, err := scanCommand(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find command: %w", err)
	}
	return c, nil
}

// Create inserts a new command and returns it.
func (s *CommandStore) Create(c *models.Command) (*models.Command, error) {
	cats, err := json.Marshal(catsOrEmpty(c.Categories))
	if err != nil {
		return nil, fmt.Errorf("encode command categories: %w", err)
	}
	row := s.db.QueryRow(`
		INSERT INTO commands (name, slug, description, code, categories, published)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+commandColumns,
		c.Name, c.Slug, c.Description, c.Code, cats, c.Published,
	)
	created, err := scanCommand(row)
	if err != nil {
		return nil, fmt.Errorf("create command: %w", err)
	}
	return created, nil
}

// CommandUpdate carries the fields of a partial command update.
type CommandUpdate struct {
	Name        *string   `json:"name"`
	Slug        *string   `json:"slug"`
	Description *string   `json:"description"`
	Code        *string   `json:"code"`
	Categories  *[]string `json:"categories"`
	Published   *bool     `json:"published"`
}

// UpdatePartial applies a partial update. Returns nil if the id is unknown.
func (s *CommandStore) UpdatePartial(id uuid.UUID, upd *CommandUpdate) (*models.Command, error) {
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
	if upd.Code != nil {
		b.Set("code", *upd.Code)
	}
	if upd.Categories != nil {
		cats, err := json.Marshal(catsOrEmpty(*upd.Categories))
		if err != nil {
			return nil, fmt.Errorf("encode command categories: %w", err)
		}
		b.Set("categories", cats)
	}
	if upd.Published != nil {
		b.Set("published", *upd.Published)
	}
	b.SetRaw("updated_at = NOW()")

	row := s.db.QueryRow(fmt.Sprintf(`
		UPDATE commands SET %s WHERE id = $%d RETURNING %s`,
		b.Clause(), b.NextIndex(), commandColumns),
		append(b.Args(), id)...,
	)
	c, err := scanCommand(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update command: %w", err)
	}
	return c, nil
}

// Delete removes a command. Returns false if the id is unknown.
func (s *CommandStore) Delete(id uuid.UUID) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM commands WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete command: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// CategoryCounts returns the DISTINCT category values across published
// commands with the number of commands carrying each, sorted by name.
// The taxonomy aggregator derives its synthetic "cmd-N" entries from this.
func (s *CommandStore) CategoryCounts() ([]DerivedCategory, error) {
	return derivedCategories(s.db, "commands")
}

// ProductStore manages product listings.
type ProductStore struct {
	db *sql.DB
}

// NewProductStore creates a new ProductStore.
func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

const productColumns = `id, name, slug, description, url, categories, published, created_at, updated_at`

func scanProduct(scanner interface{ Scan(...any) error }) (*models.Product, error) {
	var p models.Product
	var cats []byte
	err := scanner.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.URL, &cats,
		&p.Published, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(cats, &p.Categories); err != nil {
		return nil, fmt.Errorf("decode product categories: %w", err)
	}
	return &p, nil
}

// List returns all products, newest first.
func (s *ProductStore) List() ([]models.Product, error) {
	rows, err := s.db.Query(`SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var items []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// FindByID retrieves a product by ID. Returns nil if not found.
func (s *ProductStore) FindByID(id uuid.UUID) (*models.Product, error) {
	row := s.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	return p, nil
}

// Create inserts a new product and returns it.
func (s *ProductStore) Create(p *models.Product) (*models.Product, error) {
	cats, err := json.Marshal(catsOrEmpty(p.Categories))
	if err != nil {
		return nil, fmt.Errorf("encode product categories: %w", err)
	}
	row := s.db.QueryRow(`
		INSERT INTO products (name, slug, description, url, categories, published)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+productColumns,
		p.Name, p.Slug, p.Description, p.URL, cats, p.Published,
	)
	created, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return created, nil
}

// ProductUpdate carries the fields of a partial product update.
type ProductUpdate struct {
	Name        *string   `json:"name"`
	Slug        *string   `json:"slug"`
	Description *string   `json:"description"`
	URL         *string   `json:"url"`
	Categories  *[]string `json:"categories"`
	Published   *bool     `json:"published"`
}

// UpdatePartial applies a partial update. Returns nil if the id is unknown.
func (s *ProductStore) UpdatePartial(id uuid.UUID, upd *ProductUpdate) (*models.Product, error) {
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
	if upd.URL != nil {
		b.Set("url", *upd.URL)
	}
	if upd.Categories != nil {
		cats, err := json.Marshal(catsOrEmpty(*upd.Categories))
		if err != nil {
			return nil, fmt.Errorf("encode product categories: %w", err)
		}
		b.Set("categories", cats)
	}
	if upd.Published != nil {
		b.Set("published", *upd.Published)
	}
	b.SetRaw("updated_at = NOW()")

	row := s.db.QueryRow(fmt.Sprintf(`
		UPDATE products SET %s WHERE id = $%d RETURNING %s`,
		b.Clause(), b.NextIndex(), productColumns),
		append(b.Args(), id)...,
	)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return p, nil
}

// Delete removes a product. Returns false if the id is unknown.
func (s *ProductStore) Delete(id uuid.UUID) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// CategoryCounts returns the DISTINCT category values across published
// products with per-value counts, sorted by name.
func (s *ProductStore) CategoryCounts() ([]DerivedCategory, error) {
	return derivedCategories(s.db, "products")
}

// DerivedCategory is one DISTINCT tag value pulled from a catalog table's
// categories array, with the number of published rows carrying it.
type DerivedCategory struct {
	Name  string
	Count int
}

// derivedCategories unnests the categories jsonb array of a catalog table
// and aggregates published rows per value.
func derivedCategories(db *sql.DB, table string) ([]DerivedCategory, error) {
	rows, err := db.Query(fmt.Sprintf(`
		SELECT t.name, COUNT(*) FROM (
			SELECT jsonb_array_elements_text(categories) AS name
			FROM %s WHERE published
		) t
		GROUP BY t.name
		ORDER BY t.name
	`, table))
	if err != nil {
		return nil, fmt.Errorf("derive categories from %s: %w", table, err)
	}
	defer rows.Close()

	var items []DerivedCategory
	for rows.Next() {
		var d DerivedCategory
		if err := rows.Scan(&d.Name, &d.Count); err != nil {
			return nil, fmt.Errorf("scan derived category: %w", err)
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

// catsOrEmpty normalizes a nil slice so the jsonb column stores [] rather
// than SQL NULL.
func catsOrEmpty(cats []string) []string {
	if cats == nil {
		return []string{}
	}
	return cats
}
