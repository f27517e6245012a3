package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"pdfshelf/internal/model"
)

var documentRows = []string{"id", "name", "filename", "subject", "blob_id", "size", "content_type", "uploaded_at"}

func TestDocumentPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	doc := &model.Document{
		ID:          "test-uuid",
		Name:        "Algebra Basics",
		Filename:    "algebra.pdf",
		Subject:     "Mathematics",
		BlobID:      "pdfs/blob-uuid.pdf",
		Size:        123,
		ContentType: "application/pdf",
		UploadedAt:  now,
	}

	rows := sqlmock.NewRows(documentRows).
		AddRow(doc.ID, doc.Name, doc.Filename, doc.Subject, doc.BlobID, doc.Size, doc.ContentType, doc.UploadedAt)

	mock.ExpectQuery("INSERT INTO documents").
		WithArgs(doc.ID, doc.Name, doc.Filename, doc.Subject, doc.BlobID, doc.Size, doc.ContentType, doc.UploadedAt).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, doc)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, doc.ID, result.ID)
	assert.Equal(t, doc.Subject, result.Subject)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(documentRows).
			AddRow("test-id", "Doc", "file.pdf", "Physics", "pdfs/key.pdf", 100, "application/pdf", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs("test-id").
			WillReturnRows(rows)

		doc, err := repo.FindByID(ctx, "test-id")

		assert.NoError(t, err)
		assert.NotNil(t, doc)
		assert.Equal(t, "test-id", doc.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		doc, err := repo.FindByID(ctx, "missing")

		assert.Error(t, err)
		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.Nil(t, doc)
	})
}

func TestDocumentPostgres_FindByFilename(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(documentRows).
			AddRow("test-id", "Doc", "algebra.pdf", "Mathematics", "pdfs/key.pdf", 100, "application/pdf", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM documents WHERE filename = ?").
			WithArgs("algebra.pdf").
			WillReturnRows(rows)

		doc, err := repo.FindByFilename(ctx, "algebra.pdf")

		assert.NoError(t, err)
		assert.Equal(t, "algebra.pdf", doc.Filename)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE filename = ?").
			WithArgs("missing.pdf").
			WillReturnError(sql.ErrNoRows)

		doc, err := repo.FindByFilename(ctx, "missing.pdf")

		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.Nil(t, doc)
	})
}

func TestDocumentPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		rows := sqlmock.NewRows(documentRows).
			AddRow("id-2", "Newer", "newer.pdf", "Physics", "pdfs/b.pdf", 200, "application/pdf", time.Now()).
			AddRow("id-1", "Older", "older.pdf", "History", "pdfs/a.pdf", 100, "application/pdf", time.Now().Add(-time.Hour))

		mock.ExpectQuery("SELECT (.+) FROM documents ORDER BY uploaded_at DESC").
			WillReturnRows(rows)

		items, err := repo.List(ctx)

		assert.NoError(t, err)
		assert.Len(t, items, 2)
		assert.Equal(t, "id-2", items[0].ID)
	})

	t.Run("empty", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents ORDER BY uploaded_at DESC").
			WillReturnRows(sqlmock.NewRows(documentRows))

		items, err := repo.List(ctx)

		assert.NoError(t, err)
		assert.NotNil(t, items)
		assert.Len(t, items, 0)
	})
}

func TestDocumentPostgres_Count(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM documents").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	total, err := repo.Count(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM documents WHERE id = ?").
		WithArgs("test-id").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Delete(ctx, "test-id")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
