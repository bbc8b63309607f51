package models

import (
	"time"

	"github.com/google/uuid"
)

// LabProgress tracks a user's position in a lab exercise. One row per
// (user, exercise) pair; steps are recorded as completed step indices.
type LabProgress struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	ContentID      uuid.UUID `json:"content_id"`
	CompletedSteps []int     `json:"completed_steps"`
	Completed      bool      `json:"completed"`
	UpdatedAt      time.Time `json:"updated_at"`
}
