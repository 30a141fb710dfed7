// Package documents is the metadata catalog for uploaded PDFs.
// Every read is scoped to the owning user in the same query as the reference lookup.
package documents

import (
	"time"

	"github.com/google/uuid"
)

// Document is the catalog record for one uploaded file.
// Ref is the opaque blob storage reference and is exposed to clients as file_id.
type Document struct {
	Ref         string    `json:"file_id"`
	UserID      uuid.UUID `json:"user_id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	PageCount   *int      `json:"page_count,omitempty"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// InsertCommand contains the data required to catalog a stored blob.
type InsertCommand struct {
	Ref         string
	UserID      uuid.UUID
	Filename    string
	ContentType string
	SizeBytes   int64
	PageCount   *int
}
