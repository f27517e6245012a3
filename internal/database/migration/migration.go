package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type step struct {
	name string
	sql  string
}

// Schema is applied in order on a fresh database. Every statement is
// idempotent so a concurrent or repeated run is harmless.
var steps = []step{
	{
		name: "create_extension_uuid_ossp",
		sql:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		name: "create_table_documents",
		sql: `CREATE TABLE IF NOT EXISTS documents (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name         TEXT        NOT NULL,
  filename     TEXT        NOT NULL,
  subject      TEXT        NOT NULL,
  blob_id      TEXT        NOT NULL UNIQUE,
  size         BIGINT      NOT NULL CHECK (size >= 0),
  content_type TEXT        NOT NULL,
  uploaded_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		name: "create_index_documents_filename",
		sql:  `CREATE INDEX IF NOT EXISTS idx_documents_filename ON documents (filename);`,
	},
	{
		name: "create_index_documents_subject",
		sql:  `CREATE INDEX IF NOT EXISTS idx_documents_subject ON documents (subject);`,
	},
	{
		name: "create_index_documents_uploaded_at",
		sql:  `CREATE INDEX IF NOT EXISTS idx_documents_uploaded_at ON documents (uploaded_at);`,
	},
}

// EnsureMigrated brings the schema up on first start. The documents
// table doubles as the sentinel: when it exists the whole pass is
// skipped, so deployments that already ran stay untouched.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	ml := migLogger{loc: loc, host: dbHost}
	start := time.Now()

	ml.event("db_migration_check", "starting", nil)

	var exists bool
	err := db.QueryRowContext(ctx, "SELECT to_regclass('public.documents') IS NOT NULL").Scan(&exists)
	if err != nil {
		ml.event("db_migration_failed", "error", map[string]any{
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}
	if exists {
		ml.event("db_migration_skip", "success", map[string]any{
			"msg":         "schema already exists, skipping migration",
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	for _, st := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, st.sql); err != nil {
			ml.event("db_migration_failed", "error", map[string]any{
				"migration_step": st.name,
				"error_message":  err.Error(),
				"duration_ms":    time.Since(start).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", st.name, err)
		}
		ml.event("db_migration_step", "success", map[string]any{
			"migration_step":   st.name,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	ml.event("db_migration_success", "success", map[string]any{
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return nil
}

type migLogger struct {
	loc  *time.Location
	host string
}

func (l migLogger) event(event, status string, extra map[string]any) {
	entry := map[string]any{
		"ts":        time.Now().In(l.loc).Format(time.RFC3339Nano),
		"component": "database",
		"event":     event,
		"status":    status,
		"db_host":   l.host,
		"level":     "info",
	}
	if status == "error" {
		entry["level"] = "error"
	}
	for k, v := range extra {
		entry[k] = v
	}

	b, err := json.Marshal(entry)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
