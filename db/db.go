package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// DB holds the database connection
var DB *sql.DB

const schema = `
CREATE TABLE IF NOT EXISTS pin_mappings (
	seq        BIGSERIAL,
	id         TEXT PRIMARY KEY,
	board_id   TEXT NOT NULL,
	part_id    TEXT NOT NULL,
	role       TEXT NOT NULL,
	pins       JSONB NOT NULL DEFAULT '[]'::jsonb,
	label      TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS pin_mappings_seq_idx ON pin_mappings (seq);
`

// InitDB opens the Postgres connection and makes sure the mapping table exists
func InitDB(ctx context.Context, connStr string) error {
	if connStr == "" {
		return fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}

	var err error
	DB, err = sql.Open("pgx", connStr)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	// Test the connection
	if err := DB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	log.Printf("✓ Database connection established successfully")
	return nil
}

// CloseDB closes the database connection
func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
