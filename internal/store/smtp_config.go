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

// SMTPConfigStore manages stored outbound mail providers.
type SMTPConfigStore struct {
	db *sql.DB
}

// NewSMTPConfigStore creates a new SMTPConfigStore.
func NewSMTPConfigStore(db *sql.DB) *SMTPConfigStore {
	return &SMTPConfigStore{db: db}
}

const smtpConfigColumns = `id, name, host, port, username, password_enc, from_email, use_tls, is_default, created_at`

func scanSMTPConfig(scanner interface{ Scan(...any) error }) (*models.SMTPConfig, error) {
	var c models.SMTPConfig
	err := scanner.Scan(
		&c.ID, &c.Name, &c.Host, &c.Port, &c.Username, &c.PasswordEnc,
		&c.FromEmail, &c.UseTLS, &c.IsDefault, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all providers, default first.
func (s *SMTPConfigStore) List() ([]models.SMTPConfig, error) {
	rows, err := s.db.Query(`
		SELECT ` + smtpConfigColumns + `
		FROM smtp_configs
		ORDER BY is_default DESC, created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("list smtp configs: %w", err)
	}
	defer rows.Close()

	var items []models.SMTPConfig
	for rows.Next() {
		c, err := scanSMTPConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("scan smtp config: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// Default returns the provider flagged as default, or nil when none is set.
func (s *SMTPConfigStore) Default() (*models.SMTPConfig, error) {
	row := s.db.QueryRow(`SELECT ` + smtpConfigColumns + ` FROM smtp_configs WHERE is_default`)
	c, err := scanSMTPConfig(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find default smtp config: %w", err)
	}
	return c, nil
}

// FindByID returns one provider, or nil if not found.
func (s *SMTPConfigStore) FindByID(id uuid.UUID) (*models.SMTPConfig, error) {
	row := s.db.QueryRow(`SELECT `+smtpConfigColumns+` FROM smtp_configs WHERE id = $1`, id)
	c, err := scanSMTPConfig(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find smtp config: %w", err)
	}
	return c, nil
}

// Create inserts a provider. When c.IsDefault is set the previous default
// is demoted in the same transaction so the partial unique index holds.
func (s *SMTPConfigStore) Create(c *models.SMTPConfig) (*models.SMTPConfig, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("create smtp config: %w", err)
	}
	defer tx.Rollback()

	if c.IsDefault {
		if _, err := tx.Exec(`UPDATE smtp_configs SET is_default = FALSE WHERE is_default`); err != nil {
			return nil, fmt.Errorf("demote default smtp config: %w", err)
		}
	}

	row := tx.QueryRow(`
		INSERT INTO smtp_configs (name, host, port, username, password_enc, from_email, use_tls, is_default)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+smtpConfigColumns,
		c.Name, c.Host, c.Port, c.Username, c.PasswordEnc, c.FromEmail, c.UseTLS, c.IsDefault,
	)
	created, err := scanSMTPConfig(row)
	if err != nil {
		return nil, fmt.Errorf("create smtp config: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("create smtp config: %w", err)
	}
	return created, nil
}

// SetDefault promotes one provider to default, demoting any previous one.
// Returns nil if the id is unknown.
func (s *SMTPConfigStore) SetDefault(id uuid.UUID) (*models.SMTPConfig, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("set default smtp config: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE smtp_configs SET is_default = FALSE WHERE is_default`); err != nil {
		return nil, fmt.Errorf("demote default smtp config: %w", err)
	}
	row := tx.QueryRow(`
		UPDATE smtp_configs SET is_default = TRUE WHERE id = $1
		RETURNING `+smtpConfigColumns, id)
	c, err := scanSMTPConfig(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("set default smtp config: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("set default smtp config: %w", err)
	}
	return c, nil
}

// Delete removes a provider. Returns false if the id is unknown.
func (s *SMTPConfigStore) Delete(id uuid.UUID) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM smtp_configs WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete smtp config: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
