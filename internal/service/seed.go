package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"pdfshelf/internal/model"
	"pdfshelf/internal/repository"
	"pdfshelf/internal/storage"
)

// seedDocument is one fixed placeholder record created on first startup.
type seedDocument struct {
	Name     string
	Filename string
	Subject  string
}

var seedDocuments = []seedDocument{
	{Name: "Algebra Basics", Filename: "algebra-basics.pdf", Subject: "Mathematics"},
	{Name: "Newton's Laws", Filename: "newtons-laws.pdf", Subject: "Physics"},
	{Name: "Periodic Table Guide", Filename: "periodic-table-guide.pdf", Subject: "Chemistry"},
	{Name: "Cell Structure Notes", Filename: "cell-structure-notes.pdf", Subject: "Biology"},
	{Name: "World War II Summary", Filename: "ww2-summary.pdf", Subject: "History"},
}

// Seeder inserts placeholder documents into an empty metadata table so a
// fresh deployment has something to list. Each record gets a freshly
// written text blob. Seeding is idempotent: records whose filename
// already exists are skipped, and a non-empty table skips seeding
// entirely.
type Seeder struct {
	store storage.Storage
	repo  repository.DocumentRepository
	loc   *time.Location
}

// NewSeeder constructs a Seeder.
func NewSeeder(store storage.Storage, repo repository.DocumentRepository, loc *time.Location) *Seeder {
	if loc == nil {
		loc = time.UTC
	}
	return &Seeder{store: store, repo: repo, loc: loc}
}

// Run executes the seeding pass. It is intended to be called once per
// process start, typically from a goroutine so request serving is never
// blocked on it.
func (s *Seeder) Run(ctx context.Context) error {
	start := time.Now()

	total, err := s.repo.Count(ctx)
	if err != nil {
		s.logEvent("seed_failed", "error", map[string]any{"error_message": err.Error()})
		return fmt.Errorf("count documents: %w", err)
	}
	if total > 0 {
		s.logEvent("seed_skip", "success", map[string]any{"existing_documents": total})
		return nil
	}

	inserted := 0
	for _, sd := range seedDocuments {
		created, err := s.seedOne(ctx, sd)
		if err != nil {
			s.logEvent("seed_failed", "error", map[string]any{
				"filename":      sd.Filename,
				"error_message": err.Error(),
			})
			return err
		}
		if created {
			inserted++
		}
	}

	s.logEvent("seed_success", "success", map[string]any{
		"inserted":    inserted,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return nil
}

// seedOne inserts a single placeholder document unless its filename is
// already present. Returns whether a record was created.
func (s *Seeder) seedOne(ctx context.Context, sd seedDocument) (bool, error) {
	_, err := s.repo.FindByFilename(ctx, sd.Filename)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("check existing filename %s: %w", sd.Filename, err)
	}

	body := fmt.Sprintf("Placeholder document: %s\nSubject: %s\n", sd.Name, sd.Subject)
	key := "pdfs/" + uuid.New().String() + ".pdf"

	objInfo, err := s.store.Put(ctx, key, strings.NewReader(body), storage.PutObjectOptions{
		Size:        int64(len(body)),
		ContentType: PDFContentType,
		Metadata: map[string]string{
			"original-filename": sd.Filename,
		},
	})
	if err != nil {
		return false, fmt.Errorf("write placeholder blob for %s: %w", sd.Filename, err)
	}

	doc := &model.Document{
		ID:          uuid.New().String(),
		Name:        sd.Name,
		Filename:    sd.Filename,
		Subject:     sd.Subject,
		BlobID:      objInfo.Key,
		Size:        objInfo.Size,
		ContentType: PDFContentType,
		UploadedAt:  time.Now().UTC(),
	}
	if _, err := s.repo.Create(ctx, doc); err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return false, fmt.Errorf("insert seed record %s: %v; rollback delete failed: %v", sd.Filename, err, delErr)
		}
		return false, fmt.Errorf("insert seed record %s: %w", sd.Filename, err)
	}
	return true, nil
}

func (s *Seeder) logEvent(event, status string, extra map[string]any) {
	data := map[string]any{
		"component": "seeder",
		"event":     event,
		"status":    status,
		"ts":        time.Now().In(s.loc).Format(time.RFC3339Nano),
	}
	if status == "error" {
		data["level"] = "error"
	} else {
		data["level"] = "info"
	}
	for k, v := range extra {
		data[k] = v
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal seed log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
