package models

import (
	"time"

	"github.com/google/uuid"
)

// Activity records a mutation the console issued against the backend,
// together with its outcome. Unlike the content entities, activity rows are
// console-owned and stored locally.
type Activity struct {
	ID         uuid.UUID `json:"id"`
	Action     string    `json:"action"`   // "create", "delete", "generate", "finalize"
	Resource   string    `json:"resource"` // "client", "category", "topic", "post"
	ResourceID string    `json:"resource_id"`
	Detail     string    `json:"detail"`
	Succeeded  bool      `json:"succeeded"`
	CreatedAt  time.Time `json:"created_at"`
}
