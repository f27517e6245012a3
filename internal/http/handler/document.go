package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pdfshelf/internal/service"
)

// ListPDFs returns all document records, newest first. A failing list is
// treated as the metadata store being unreachable, distinct from an
// empty result.
func ListPDFs(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		docs, err := docSvc.List(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "document store unavailable")
		}
		return c.JSON(docs)
	}
}

// DownloadPDF streams a document's bytes as an attachment.
func DownloadPDF(docSvc service.DocumentService) fiber.Handler {
	return streamPDF(docSvc, "attachment")
}

// ViewPDF streams a document's bytes for inline display.
func ViewPDF(docSvc service.DocumentService) fiber.Handler {
	return streamPDF(docSvc, "inline")
}

func streamPDF(docSvc service.DocumentService, disposition string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		doc, rc, err := docSvc.Open(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		c.Set(fiber.HeaderContentType, service.PDFContentType)
		c.Set(fiber.HeaderContentDisposition, disposition+`; filename="`+doc.Filename+`"`)
		// fasthttp closes the stream when it implements io.Closer
		return c.SendStream(rc)
	}
}

// UploadPDF accepts a multipart form with a `pdf` file plus `name` and
// `subject` fields and stores the document. Admin-gated at the route.
func UploadPDF(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("pdf")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "pdf file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		doc, err := docSvc.Upload(c.UserContext(), service.UploadInput{
			Name:        c.FormValue("name"),
			Subject:     c.FormValue("subject"),
			Filename:    fh.Filename,
			ContentType: fh.Header.Get(fiber.HeaderContentType),
			Size:        fh.Size,
			Reader:      f,
		})
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNameRequired):
				return writeError(c, fiber.StatusBadRequest, "NAME_REQUIRED", "name is required")
			case errors.Is(err, service.ErrSubjectRequired):
				return writeError(c, fiber.StatusBadRequest, "SUBJECT_REQUIRED", "subject is required")
			case errors.Is(err, service.ErrNotPDF):
				return writeError(c, fiber.StatusBadRequest, "INVALID_FILE_TYPE", "only application/pdf uploads are accepted")
			case errors.Is(err, service.ErrFileTooLarge):
				return writeError(c, fiber.StatusBadRequest, "FILE_TOO_LARGE", "file exceeds the 10 MiB limit")
			case errors.Is(err, service.ErrFileRequired):
				return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "pdf file is required")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"message": "pdf uploaded",
			"pdf":     doc,
		})
	}
}

// DeletePDF removes a document and its blob. Admin-gated at the route.
func DeletePDF(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		if err := docSvc.Delete(c.UserContext(), id); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "pdf deleted",
		})
	}
}
