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

// MediaStore handles all media-metadata database operations. The files
// themselves live on local disk under the media root.
type MediaStore struct {
	db *sql.DB
}

// NewMediaStore creates a new MediaStore with the given database connection.
func NewMediaStore(db *sql.DB) *MediaStore {
	return &MediaStore{db: db}
}

const mediaColumns = `id, filename, original_name, filepath, kind, mime_type,
	size_bytes, thumb_path, alt_text, title, description, uploaded_by, created_at`

// scanMedia scans a media row from the result set.
func scanMedia(scanner interface{ Scan(...any) error }) (*models.Media, error) {
	var m models.Media
	err := scanner.Scan(
		&m.ID, &m.Filename, &m.OriginalName, &m.Filepath, &m.Kind, &m.MimeType,
		&m.SizeBytes, &m.ThumbPath, &m.AltText, &m.Title, &m.Description,
		&m.UploadedBy, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a new media record and returns it with the generated ID.
func (s *MediaStore) Create(m *models.Media) (*models.Media, error) {
	row := s.db.QueryRow(`
		INSERT INTO media (filename, original_name, filepath, kind, mime_type,
			size_bytes, thumb_path, alt_text, title, description, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+mediaColumns,
		m.Filename, m.OriginalName, m.Filepath, m.Kind, m.MimeType,
		m.SizeBytes, m.ThumbPath, m.AltText, m.Title, m.Description, m.UploadedBy,
	)
	created, err := scanMedia(row)
	if err != nil {
		return nil, fmt.Errorf("create media: %w", err)
	}
	return created, nil
}

// FindByID retrieves a single media record by its UUID.
func (s *MediaStore) FindByID(id uuid.UUID) (*models.Media, error) {
	row := s.db.QueryRow(`SELECT `+mediaColumns+` FROM media WHERE id = $1`, id)
	m, err := scanMedia(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find media by id: %w", err)
	}
	return m, nil
}

// List returns media items ordered by creation date, with pagination.
func (s *MediaStore) List(limit, offset int) ([]models.Media, error) {
	rows, err := s.db.Query(`
		SELECT `+mediaColumns+`
		FROM media
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	defer rows.Close()

	var items []models.Media
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, fmt.Errorf("scan media: %w", err)
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

// All returns every media row. Used by the cleanup command's full scan.
func (s *MediaStore) All() ([]models.Media, error) {
	rows, err := s.db.Query(`SELECT ` + mediaColumns + ` FROM media ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("scan media table: %w", err)
	}
	defer rows.Close()

	var items []models.Media
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, fmt.Errorf("scan media: %w", err)
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

// MediaUpdate carries the editable metadata fields.
type MediaUpdate struct {
	AltText     *string `json:"alt_text"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// UpdatePartial applies a metadata update. Returns nil if the id is unknown.
func (s *MediaStore) UpdatePartial(id uuid.UUID, upd *MediaUpdate) (*models.Media, error) {
	var b updateBuilder
	if upd.AltText != nil {
		b.Set("alt_text", *upd.AltText)
	}
	if upd.Title != nil {
		b.Set("title", *upd.Title)
	}
	if upd.Description != nil {
		b.Set("description", *upd.Description)
	}
	if b.Empty() {
		return s.FindByID(id)
	}

	row := s.db.QueryRow(fmt.Sprintf(`
		UPDATE media SET %s WHERE id = $%d RETURNING %s`,
		b.Clause(), b.NextIndex(), mediaColumns),
		append(b.Args(), id)...,
	)
	m, err := scanMedia(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update media: %w", err)
	}
	return m, nil
}

// Delete removes a media record and returns it so the caller can remove
// the file from disk. Returns nil if the id is unknown.
func (s *MediaStore) Delete(id uuid.UUID) (*models.Media, error) {
	row := s.db.QueryRow(`
		DELETE FROM media WHERE id = $1
		RETURNING `+mediaColumns, id)
	m, err := scanMedia(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete media: %w", err)
	}
	return m, nil
}

// DeleteMany removes a set of media rows in one transaction and returns
// the deleted rows for file cleanup. IDs with no row are skipped.
func (s *MediaStore) DeleteMany(ids []uuid.UUID) ([]models.Media, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var deleted []models.Media
	for _, id := range ids {
		row := tx.QueryRow(`DELETE FROM media WHERE id = $1 RETURNING `+mediaColumns, id)
		m, err := scanMedia(row)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("bulk delete media %s: %w", id, err)
		}
		deleted = append(deleted, *m)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit bulk delete: %w", err)
	}
	return deleted, nil
}

// DeleteByID removes a row without returning it. Used by the cleanup
// command after confirming the file is gone.
func (s *MediaStore) DeleteByID(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM media WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete media row: %w", err)
	}
	return nil
}

// Count returns the total number of media items.
func (s *MediaStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM media`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count media: %w", err)
	}
	return count, nil
}
