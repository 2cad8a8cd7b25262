package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/types"
)

// Draft is a saved resume bundle owned by one user
type Draft struct {
	ID        uuid.UUID    `json:"id"`
	OwnerID   uuid.UUID    `json:"owner_id"`
	Title     string       `json:"title"`
	Bundle    types.Bundle `json:"bundle"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// DraftSummary is a draft without its bundle, used in listings
type DraftSummary struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
