package models

import (
	"time"

	"github.com/google/uuid"
)

// Paper represents an academic paper in a user's collection
type Paper struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Author       string    `json:"author"`
	Year         int       `json:"year"`
	Tags         []string  `json:"tags"`
	Abstract     string    `json:"abstract,omitempty"`
	Favorite     bool      `json:"favorite"`
	DocumentPath *string   `json:"document_path,omitempty"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// PaperFilter holds the optional criteria for filtering papers.
// Criteria are conjunctive; a zero-value filter matches everything.
type PaperFilter struct {
	Year   *int   // exact match
	Tag    string // set membership in Tags
	Author string // case-insensitive substring
}
