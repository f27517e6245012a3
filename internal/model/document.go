package model

import "time"

// Document represents one uploaded PDF in the system.
// This is a pure domain model with no database-specific dependencies or tags.
// BlobID is the object key in the blob store; it is distinct from the
// record's own primary key.
type Document struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Filename    string    `json:"filename"`
	Subject     string    `json:"subject"`
	BlobID      string    `json:"blob_id"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	UploadedAt  time.Time `json:"uploaded_at"`
}
