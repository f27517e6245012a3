package repository

import (
	"context"

	"pdfshelf/internal/model"
)

// DocumentRepository defines data access for documents using SQL queries only.
// No business logic here, strictly persistence operations.
type DocumentRepository interface {
	// Create inserts a new document record.
	// The caller provides required fields (e.g., ID, UploadedAt) according to the schema defaults.
	// Returns the stored document (may include values set by the DB).
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// FindByFilename returns the first document with the given original filename.
	// Used by the seeder to keep placeholder inserts idempotent.
	FindByFilename(ctx context.Context, filename string) (*model.Document, error)

	// List returns all documents ordered by upload time, newest first.
	List(ctx context.Context) ([]model.Document, error)

	// Count returns the total number of document rows.
	Count(ctx context.Context) (int, error)

	// Delete removes a document by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}
