package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/menthoven/mxapplist/internal/record"
)

// createTestStore creates a store backed by a temp file for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestDevice registers a device and returns its id.
func createTestDevice(t *testing.T, s *Store, name string) int64 {
	t.Helper()
	id, _, err := s.EnsureDevice(context.Background(), name)
	if err != nil {
		t.Fatalf("EnsureDevice(%q) failed: %v", name, err)
	}
	return id
}

// createTestRecord creates an application record with minimal required fields.
func createTestRecord(source record.Source, identifier, name string) record.Record {
	return record.Record{
		Name:       name,
		Source:     source,
		Identifier: identifier,
		Version:    "1.0",
	}
}

// mustUpsert inserts a record and fails the test on error.
func mustUpsert(t *testing.T, s *Store, deviceID int64, rec record.Record) bool {
	t.Helper()
	inserted, err := s.UpsertApp(context.Background(), deviceID, rec)
	if err != nil {
		t.Fatalf("UpsertApp(%q) failed: %v", rec.Identifier, err)
	}
	return inserted
}
