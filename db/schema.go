package db

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schemaDDL string

// Schema returns the canonical DDL of the tournament database.
func Schema() string {
	return schemaDDL
}

// EnsureSchema creates every table that does not exist yet. It is safe to run
// on every start-up; it never alters or drops existing tables.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
