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

// LabProgressStore tracks per-user lab exercise progress.
type LabProgressStore struct {
	db *sql.DB
}

// NewLabProgressStore creates a new LabProgressStore.
func NewLabProgressStore(db *sql.DB) *LabProgressStore {
	return &LabProgressStore{db: db}
}

const labProgressColumns = `id, user_id, content_id, completed_steps, completed, updated_at`

func scanLabProgress(scanner interface{ Scan(...any) error }) (*models.LabProgress, error) {
	var p models.LabProgress
	var steps []byte
	err := scanner.Scan(&p.ID, &p.UserID, &p.ContentID, &steps, &p.Completed, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(steps, &p.CompletedSteps); err != nil {
		return nil, fmt.Errorf("decode completed steps: %w", err)
	}
	return &p, nil
}

// Find returns the progress row for one user and exercise, or nil if the
// user has not started it.
func (s *LabProgressStore) Find(userID, contentID uuid.UUID) (*models.LabProgress, error) {
	row := s.db.QueryRow(`
		SELECT `+labProgressColumns+`
		FROM lab_progress
		WHERE user_id = $1 AND content_id = $2
	`, userID, contentID)
	p, err := scanLabProgress(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find lab progress: %w", err)
	}
	return p, nil
}

// Save upserts the progress for one user and exercise, replacing the
// recorded step set wholesale.
func (s *LabProgressStore) Save(userID, contentID uuid.UUID, steps []int, completed bool) (*models.LabProgress, error) {
	if steps == nil {
		steps = []int{}
	}
	encoded, err := json.Marshal(steps)
	if err != nil {
		return nil, fmt.Errorf("encode completed steps: %w", err)
	}
	row := s.db.QueryRow(`
		INSERT INTO lab_progress (user_id, content_id, completed_steps, completed)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, content_id)
		DO UPDATE SET completed_steps = EXCLUDED.completed_steps,
		              completed = EXCLUDED.completed,
		              updated_at = NOW()
		RETURNING `+labProgressColumns,
		userID, contentID, encoded, completed,
	)
	p, err := scanLabProgress(row)
	if err != nil {
		return nil, fmt.Errorf("save lab progress: %w", err)
	}
	return p, nil
}

// ListForUser returns all progress rows for one user, most recent first.
func (s *LabProgressStore) ListForUser(userID uuid.UUID) ([]models.LabProgress, error) {
	rows, err := s.db.Query(`
		SELECT `+labProgressColumns+`
		FROM lab_progress
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list lab progress: %w", err)
	}
	defer rows.Close()

	var items []models.LabProgress
	for rows.Next() {
		p, err := scanLabProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lab progress: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}
