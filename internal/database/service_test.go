package database

import (
	"context"
	"testing"
	"time"

	"focal/internal/testutils"
)

func newTestService(t *testing.T) *SQLiteService {
	t.Helper()

	service := NewSQLiteService(testutils.NewCaptureLogger())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := service.Connect(ctx, TestConfig()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	t.Cleanup(func() {
		service.Close()
	})

	return service
}

func TestSQLiteService_ConnectAndHealth(t *testing.T) {
	service := newTestService(t)

	ctx := context.Background()
	if err := service.Health(ctx); err != nil {
		t.Errorf("Health check failed: %v", err)
	}

	if service.DB() == nil {
		t.Error("Expected DB() to return a connection")
	}
	if service.GetQueries() == nil {
		t.Error("Expected GetQueries() to return a queries instance")
	}
}

func TestSQLiteService_HealthWithoutConnect(t *testing.T) {
	service := NewSQLiteService(testutils.NewCaptureLogger())

	if err := service.Health(context.Background()); err == nil {
		t.Error("Expected health check to fail when not connected")
	}
}

func TestSQLiteService_Migrate(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	if err := service.Migrate(ctx); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}

	version, err := service.GetMigrationVersion(ctx)
	if err != nil {
		t.Fatalf("GetMigrationVersion failed: %v", err)
	}
	if version < 2 {
		t.Errorf("Expected migration version >= 2, got %d", version)
	}

	// Schema tables should exist after migration
	for _, table := range []string{"categories", "applications", "windows", "sessions"} {
		var name string
		err := service.DB().QueryRowContext(ctx,
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("Expected table %s to exist: %v", table, err)
		}
	}
}

func TestSQLiteService_MigrateSeedsDefaultCategories(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	if err := service.Migrate(ctx); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}

	count, err := service.GetQueries().CountCategories(ctx)
	if err != nil {
		t.Fatalf("CountCategories failed: %v", err)
	}
	if count == 0 {
		t.Error("Expected default categories to be seeded by migrations")
	}

	category, err := service.GetQueries().GetCategory(ctx, "other")
	if err != nil {
		t.Fatalf("Expected 'other' default category: %v", err)
	}
	if !category.IsDefault {
		t.Error("Expected 'other' category to be marked default")
	}
}

func TestSQLiteService_MigrateIsIdempotent(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	if err := service.Migrate(ctx); err != nil {
		t.Fatalf("First migrate failed: %v", err)
	}
	if err := service.Migrate(ctx); err != nil {
		t.Fatalf("Second migrate failed: %v", err)
	}
}

func TestSQLiteService_GetPreparedQueries(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	if err := service.Migrate(ctx); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}

	prepared, err := service.GetPreparedQueries(ctx)
	if err != nil {
		t.Fatalf("GetPreparedQueries failed: %v", err)
	}
	if prepared == nil {
		t.Fatal("Expected a prepared queries instance")
	}

	// Second call returns the cached instance
	again, err := service.GetPreparedQueries(ctx)
	if err != nil {
		t.Fatalf("Second GetPreparedQueries failed: %v", err)
	}
	if prepared != again {
		t.Error("Expected the same prepared queries instance on repeated calls")
	}

	if _, err := prepared.CountCategories(ctx); err != nil {
		t.Errorf("Prepared query failed: %v", err)
	}
}

func TestSQLiteService_Close(t *testing.T) {
	service := NewSQLiteService(testutils.NewCaptureLogger())
	ctx := context.Background()

	if err := service.Connect(ctx, TestConfig()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	if err := service.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Closing an already closed service is a no-op
	if err := service.Close(); err != nil {
		t.Errorf("Second close should be a no-op: %v", err)
	}

	if err := service.Health(ctx); err == nil {
		t.Error("Expected health check to fail after close")
	}
}

func TestSQLiteService_Optimize(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	if err := service.Migrate(ctx); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	if err := service.Optimize(ctx); err != nil {
		t.Errorf("Optimize failed: %v", err)
	}
}
