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

// CommentStore manages reader comments.
type CommentStore struct {
	db *sql.DB
}

// NewCommentStore creates a new CommentStore.
func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

const commentColumns = `id, content_id, author_name, author_email, body, parent_id, status, created_at`

func scanComment(scanner interface{ Scan(...any) error }) (*models.Comment, error) {
	var c models.Comment
	err := scanner.Scan(
		&c.ID, &c.ContentID, &c.AuthorName, &c.AuthorEmail, &c.Body,
		&c.ParentID, &c.Status, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a comment in pending state and returns it.
func (s *CommentStore) Create(c *models.Comment) (*models.Comment, error) {
	row := s.db.QueryRow(`
		INSERT INTO comments (content_id, author_name, author_email, body, parent_id, status)
		VALUES ($1, $2, $3, $4, $5, 'pending')
		RETURNING `+commentColumns,
		c.ContentID, c.AuthorName, c.AuthorEmail, c.Body, c.ParentID,
	)
	created, err := scanComment(row)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return created, nil
}

// ListApproved returns approved comments for one thread in chronological
// order. A reply always sorts after its parent, but grouping replies
// under their parents is left to the client.
func (s *CommentStore) ListApproved(contentID uuid.UUID) ([]models.Comment, error) {
	rows, err := s.db.Query(`
		SELECT `+commentColumns+`
		FROM comments
		WHERE content_id = $1 AND status = 'approved'
		ORDER BY created_at
	`, contentID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var items []models.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// ListPending returns all comments awaiting moderation, oldest first.
func (s *CommentStore) ListPending() ([]models.Comment, error) {
	rows, err := s.db.Query(`
		SELECT ` + commentColumns + `
		FROM comments
		WHERE status = 'pending'
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("list pending comments: %w", err)
	}
	defer rows.Close()

	var items []models.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// Approve flips a pending comment to approved. Returns nil if the id is unknown.
func (s *CommentStore) Approve(id uuid.UUID) (*models.Comment, error) {
	row := s.db.QueryRow(`
		UPDATE comments SET status = 'approved' WHERE id = $1
		RETURNING `+commentColumns, id)
	c, err := scanComment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("approve comment: %w", err)
	}
	return c, nil
}

// Delete removes a comment (replies cascade). Returns false if the id is unknown.
func (s *CommentStore) Delete(id uuid.UUID) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete comment: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
