package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pdfshelf/docs"
	"pdfshelf/internal/auth"
	"pdfshelf/internal/config"
	"pdfshelf/internal/database"
	"pdfshelf/internal/database/migration"
	handlers "pdfshelf/internal/http/handler"
	"pdfshelf/internal/http/middleware"
	otelinit "pdfshelf/internal/otel"
	"pdfshelf/internal/repository/postgres"
	"pdfshelf/internal/service"
	"pdfshelf/internal/storage"
)

// @title PDF Shelf API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	loc := time.UTC
	ctx := context.Background()

	shutdownTracing, err := otelinit.Init(ctx, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(shutdownCtx)
	}()

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Initialize the S3-compatible blob store bound to the configured bucket
	blobStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize blob store: %v", err)
	}

	docRepo := postgres.NewDocumentPostgres(db)
	docSvc := service.NewDocumentService(blobStore, docRepo)
	gate := auth.NewGate(cfg.Admin)

	// Seed placeholder documents without blocking request serving.
	// Requests arriving before this finishes see a partial or empty list.
	seeder := service.NewSeeder(blobStore, docRepo, loc)
	go func() {
		if err := seeder.Run(context.Background()); err != nil {
			log.Printf("seeding failed: %v", err)
		}
	}()

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		// Headroom above the 10 MiB upload cap for multipart framing
		BodyLimit: service.MaxUploadSize + 1<<20,
	})

	// Register global middleware
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())
	app.Use(encryptcookie.New(encryptcookie.Config{
		Key: auth.CookieKey(cfg.Admin.SessionSecret),
	}))

	promMw, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMw.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handlers.RegisterRoutes(app, db, docSvc, gate)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	// Static front-end
	app.Static("/", "./web")

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
