package models

import (
	"time"

	"github.com/google/uuid"
)

// GlossaryTerm is a single dictionary entry.
type GlossaryTerm struct {
	ID         uuid.UUID `json:"id"`
	Term       string    `json:"term"`
	Slug       string    `json:"slug"`
	Definition string    `json:"definition"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
