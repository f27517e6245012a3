package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"pdfshelf/internal/auth"
	"pdfshelf/internal/http/middleware"
	"pdfshelf/internal/service"
)

// RegisterRoutes attaches the API routes to the provided Fiber app.
// Admin-only routes are wrapped with the session gate before any
// service logic runs.
func RegisterRoutes(app *fiber.App, db *sql.DB, docSvc service.DocumentService, gate *auth.Gate) {
	api := app.Group("/api")

	api.Get("/health", HealthCheck(db, docSvc))
	api.Get("/healthz", LivenessProbe())

	api.Get("/pdfs", ListPDFs(docSvc))
	api.Get("/pdf/:id/download", DownloadPDF(docSvc))
	api.Get("/pdf/:id/view", ViewPDF(docSvc))

	admin := api.Group("/admin")
	admin.Post("/login", Login(gate))
	admin.Get("/check", Check(gate))
	admin.Post("/logout", Logout(gate))
	admin.Post("/upload", middleware.RequireAdmin(gate), UploadPDF(docSvc))
	admin.Delete("/pdf/:id", middleware.RequireAdmin(gate), DeletePDF(docSvc))
}
