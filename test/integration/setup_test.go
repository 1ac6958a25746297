package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinic/clinic/internal/domain/patient"
	"github.com/clinic/clinic/internal/platform/db"
)

// testDB holds the shared database infrastructure for integration tests.
type testDB struct {
	Pool          *pgxpool.Pool
	ConnStr       string
	MigrationsDir string
}

// globalDB is the package-level test database, initialized once in TestMain.
var globalDB *testDB

func TestMain(m *testing.M) {
	ctx := context.Background()

	connStr, cleanup, err := startPostgres(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start postgres: %v\n", err)
		os.Exit(1)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		cleanup()
		fmt.Fprintf(os.Stderr, "failed to create pool: %v\n", err)
		os.Exit(1)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		cleanup()
		fmt.Fprintf(os.Stderr, "failed to ping database: %v\n", err)
		os.Exit(1)
	}

	globalDB = &testDB{
		Pool:          pool,
		ConnStr:       connStr,
		MigrationsDir: findMigrationsDir(),
	}
	code := m.Run()
	pool.Close()
	cleanup()
	os.Exit(code)
}

// findMigrationsDir locates the migrations directory relative to this test file.
func findMigrationsDir() string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)
	// test/integration -> repo root
	return filepath.Join(dir, "..", "..", "migrations")
}

// createOrgSchema creates a new organization schema and runs all migrations.
func createOrgSchema(t *testing.T, ctx context.Context, orgID string) {
	t.Helper()
	if err := db.CreateOrgSchema(ctx, globalDB.Pool, orgID, globalDB.MigrationsDir); err != nil {
		t.Fatalf("create org schema %s: %v", orgID, err)
	}
}

// dropOrgSchema drops an organization schema for cleanup.
func dropOrgSchema(t *testing.T, ctx context.Context, orgID string) {
	t.Helper()
	schema := fmt.Sprintf("org_%s", orgID)
	_, err := globalDB.Pool.Exec(ctx, fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", schema))
	if err != nil {
		t.Logf("warning: failed to drop schema %s: %v", schema, err)
	}
}

// withOrgConn acquires a connection, pins its search_path to the organization
// schema, and passes a context carrying the connection to the callback — the
// same shape repositories see behind the organization middleware.
func withOrgConn(ctx context.Context, pool *pgxpool.Pool, orgID string, fn func(ctx context.Context) error) error {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire conn: %w", err)
	}
	defer conn.Release()

	schema := fmt.Sprintf("org_%s", orgID)
	if _, err := conn.Exec(ctx, fmt.Sprintf("SET search_path TO %s, public", schema)); err != nil {
		return fmt.Errorf("set search_path: %w", err)
	}

	ctx = context.WithValue(ctx, db.DBConnKey, conn)
	return fn(ctx)
}

// uniqueOrgID generates a unique organization ID for test isolation.
func uniqueOrgID(prefix string) string {
	short := strings.ReplaceAll(uuid.New().String()[:8], "-", "")
	return fmt.Sprintf("%s_%s", prefix, short)
}

// createTestPatient registers a patient through the repository inside the
// given organization schema.
func createTestPatient(t *testing.T, ctx context.Context, orgID, firstName, lastName string) *patient.Patient {
	t.Helper()
	var result *patient.Patient
	err := withOrgConn(ctx, globalDB.Pool, orgID, func(ctx context.Context) error {
		repo := patient.NewRepoPG(globalDB.Pool)
		p := &patient.Patient{FirstName: firstName, LastName: lastName}
		if err := repo.Create(ctx, p); err != nil {
			return err
		}
		result = p
		return nil
	})
	if err != nil {
		t.Fatalf("create test patient: %v", err)
	}
	return result
}
