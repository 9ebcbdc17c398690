// Package tests holds integration tests that need a real Postgres database.
// They are skipped unless DATABASE_URL is set.
package tests

import (
	"context"
	"database/sql"
	"fmt"
)

// TruncateLeadTables empties the lead tables for a clean test state.
func TruncateLeadTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, "TRUNCATE TABLE lead_status_history, leads RESTART IDENTITY CASCADE")
	if err != nil {
		return fmt.Errorf("truncate lead tables: %w", err)
	}
	return nil
}
