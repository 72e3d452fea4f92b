package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/database"
	"github.com/stretchr/testify/require"
)

// tables lists every table in reverse dependency order.
var tables = []string{
	"attendance_records",
	"office_locations",
	"leave_requests",
	"leave_types",
	"holidays",
	"shifts",
	"employees",
	"positions",
	"departments",
	"email_otps",
	"refresh_tokens",
	"users",
}

// NewTestDatabase connects to TEST_DATABASE_URL, applying the schema when it is
// missing, and truncates every table. The test is skipped without a database.
func NewTestDatabase(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 4, MinConns: 1})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, ensureSchema(ctx, db))
	require.NoError(t, truncateAllTables(ctx, db))
	return db
}

func ensureSchema(ctx context.Context, db *database.DB) error {
	var exists bool
	if err := db.QueryRow(ctx, `SELECT to_regclass('public.attendance_records') IS NOT NULL`).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return nil
	}

	_, file, _, _ := runtime.Caller(0)
	path := filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "db", "migrations", "000001_init.up.sql")
	schema, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}
	if _, err := db.Exec(ctx, string(schema)); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func truncateAllTables(ctx context.Context, db *database.DB) error {
	_, err := db.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", strings.Join(tables, ", ")))
	return err
}
