// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SMTPConfig is an outbound mail provider stored in the database.
// PasswordEnc holds the AES-256-CBC ciphertext (IV prepended); the
// plaintext never touches the table.
type SMTPConfig struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Host        string    `json:"host"`
	Port        int       `json:"port"`
	Username    string    `json:"username"`
	PasswordEnc []byte    `json:"-"`
	FromEmail   string    `json:"from_email"`
	UseTLS      bool      `json:"use_tls"`
	IsDefault   bool      `json:"is_default"`
	CreatedAt   time.Time `json:"created_at"`
}

// Addr returns the host:port dial address for the provider.
func (c *SMTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
