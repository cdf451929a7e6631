// Package testutil builds sales sheets and dataset stores for tests.
package testutil

import (
	"testing"

	"github.com/Veraticus/drivetrain/internal/dataset"
	"github.com/Veraticus/drivetrain/internal/model"
	"github.com/Veraticus/drivetrain/internal/storage"
)

// TestDB is a migrated dataset store closed when the test ends.
type TestDB struct {
	Store *storage.SQLiteStorage
	t     testing.TB
}

// SetupTestDB opens a private in-memory store.
func SetupTestDB(t testing.TB) *TestDB {
	t.Helper()
	return SetupTestDBAt(t, storage.MemoryPath)
}

// SetupTestDBAt opens a store at path, for tests that hand the same file to
// another component.
func SetupTestDBAt(t testing.TB, path string) *TestDB {
	t.Helper()

	store, err := storage.Open(t.Context(), path)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{Store: store, t: t}
}

// MustImport stores rows under name or fails the test.
func (db *TestDB) MustImport(name string, rows dataset.RawRows) *model.StoredDataset {
	db.t.Helper()

	info, err := db.Store.SaveRows(db.t.Context(), name, "testutil", rows, nil)
	if err != nil {
		db.t.Fatalf("failed to import %q: %v", name, err)
	}
	return info
}

// MustLoad aggregates a stored dataset or fails the test.
func (db *TestDB) MustLoad(name string) *model.Dataset {
	db.t.Helper()

	ds, err := dataset.LoadFrom(db.t.Context(), db.Store.Source(name), dataset.Options{})
	if err != nil {
		db.t.Fatalf("failed to load %q: %v", name, err)
	}
	return ds
}
