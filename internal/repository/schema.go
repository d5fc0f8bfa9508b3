package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// EnsureSchema creates the tables the server needs if they do not exist.
// Measurement columns are nullable: NULL means the respondent skipped or
// mangled that question and the value is excluded from aggregation.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS companies (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			display_name TEXT NOT NULL,
			access_code TEXT NOT NULL UNIQUE
		)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS respondents (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			company_id TEXT NOT NULL,
			region TEXT,
			department TEXT,
			employment_type TEXT,
			age_group TEXT,
			%s
		)`, realColumns(sentimentColumns)),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS capability_scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			company_id TEXT NOT NULL,
			region TEXT,
			department TEXT,
			employment_type TEXT,
			age_group TEXT,
			%s
		)`, realColumns(capabilityColumns)),
		`CREATE TABLE IF NOT EXISTS interventions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			category TEXT NOT NULL,
			dimension_id INTEGER NOT NULL,
			description TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_respondents_company ON respondents(company_id)`,
		`CREATE INDEX IF NOT EXISTS idx_capability_company ON capability_scores(company_id)`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func realColumns(names []string) string {
	cols := make([]string, len(names))
	for i, n := range names {
		cols[i] = n + " REAL"
	}
	return strings.Join(cols, ",\n\t\t\t")
}
