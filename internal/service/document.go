package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"pdfshelf/internal/model"
	"pdfshelf/internal/repository"
	"pdfshelf/internal/storage"
)

var (
	ErrIDRequired      = errors.New("id is required")
	ErrNotFound        = errors.New("document not found")
	ErrFileRequired    = errors.New("pdf file is required")
	ErrNameRequired    = errors.New("name is required")
	ErrSubjectRequired = errors.New("subject is required")
	ErrNotPDF          = errors.New("file must be a PDF")
	ErrFileTooLarge    = errors.New("file exceeds the maximum upload size")
)

const (
	// MaxUploadSize is the upper bound for a single uploaded PDF.
	MaxUploadSize = 10 << 20 // 10 MiB

	// PDFContentType is the only MIME type accepted for uploads.
	PDFContentType = "application/pdf"
)

// UploadInput carries everything needed to store one uploaded PDF.
type UploadInput struct {
	Name        string
	Subject     string
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// DocumentService defines the use cases for handling PDF documents.
type DocumentService interface {
	// Upload validates the input, writes the content to the blob store,
	// saves metadata to the DB, and rolls back the blob if the DB save fails.
	Upload(ctx context.Context, in UploadInput) (*model.Document, error)

	// List returns all documents ordered by upload time, newest first.
	List(ctx context.Context) ([]model.Document, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id string) (*model.Document, error)

	// Open returns a document together with a reader over its blob content.
	// If the blob is missing from the store, a short placeholder payload
	// describing the record is returned instead of an error.
	Open(ctx context.Context, id string) (*model.Document, io.ReadCloser, error)

	// Delete removes a document by ID from both the blob store and the repository.
	Delete(ctx context.Context, id string) error

	// Count returns the total number of stored documents.
	Count(ctx context.Context) (int, error)
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store storage.Storage
	repo  repository.DocumentRepository
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository) DocumentService {
	return &documentService{store: store, repo: repo}
}

func (s *documentService) Upload(ctx context.Context, in UploadInput) (*model.Document, error) {
	if in.Reader == nil {
		return nil, ErrFileRequired
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(in.Subject) == "" {
		return nil, ErrSubjectRequired
	}
	if in.ContentType != PDFContentType {
		return nil, ErrNotPDF
	}
	if in.Size <= 0 {
		return nil, ErrFileRequired
	}
	if in.Size > MaxUploadSize {
		return nil, ErrFileTooLarge
	}

	key := "pdfs/" + uuid.New().String() + ".pdf"

	objInfo, err := s.store.Put(ctx, key, in.Reader, storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: in.ContentType,
		Metadata: map[string]string{
			"original-filename": in.Filename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	doc := &model.Document{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Filename:    in.Filename,
		Subject:     in.Subject,
		BlobID:      objInfo.Key,
		Size:        objInfo.Size,
		ContentType: in.ContentType,
		UploadedAt:  time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		// Rollback: delete the just-written blob so it does not leak
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *documentService) List(ctx context.Context) ([]model.Document, error) {
	return s.repo.List(ctx)
}

func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentService) Open(ctx context.Context, id string) (*model.Document, io.ReadCloser, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	rc, _, err := s.store.Get(ctx, doc.BlobID)
	if err != nil {
		if storage.IsNotFound(err) {
			return doc, io.NopCloser(strings.NewReader(placeholderPayload(doc))), nil
		}
		return nil, nil, fmt.Errorf("open blob: %w", err)
	}
	return doc, rc, nil
}

func (s *documentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	// Blob goes first so a failure cannot leave metadata pointing at
	// content that was already removed by a later retry.
	if err := s.store.Delete(ctx, doc.BlobID); err != nil {
		return fmt.Errorf("delete blob: %w", err)
	}
	return s.repo.Delete(ctx, id)
}

func (s *documentService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// placeholderPayload renders a stand-in body for a record whose blob is
// gone from the store. Served only as a fallback for demo data.
func placeholderPayload(doc *model.Document) string {
	return fmt.Sprintf("Placeholder for %q (subject: %s, file: %s).\nThe stored content for this record is unavailable.\n",
		doc.Name, doc.Subject, doc.Filename)
}
