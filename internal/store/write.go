package store

import (
	"context"
	"fmt"
	"time"

	"github.com/menthoven/mxapplist/internal/record"
)

// EnsureDevice returns the id of the device row with the given name,
// creating it if absent. Returns the id and whether the device already
// existed.
func (s *Store) EnsureDevice(ctx context.Context, name string) (id int64, existed bool, err error) {
	// Use a transaction to ensure atomicity of insert-or-select
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, false, fmt.Errorf("ensure device: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	result, err := tx.ExecContext(ctx, `
		INSERT INTO devices (name)
		VALUES (?)
		ON CONFLICT(name) DO NOTHING
	`, name)
	if err != nil {
		return 0, false, fmt.Errorf("ensure device: insert: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, false, fmt.Errorf("ensure device: rows affected: %w", err)
	}

	if rowsAffected > 0 {
		// New row inserted - get the auto-generated ID
		id, err = result.LastInsertId()
		if err != nil {
			return 0, false, fmt.Errorf("ensure device: last insert id: %w", err)
		}
	} else {
		// Conflict - device already exists, fetch the existing ID
		err = tx.QueryRowContext(ctx, `
			SELECT id FROM devices WHERE name = ?
		`, name).Scan(&id)
		if err != nil {
			return 0, false, fmt.Errorf("ensure device: select existing: %w", err)
		}
		existed = true
	}

	if err := tx.Commit(); err != nil {
		return 0, false, fmt.Errorf("ensure device: commit: %w", err)
	}

	return id, existed, nil
}

// UpsertApp inserts an application record for a device.
// Uses ON CONFLICT(device_id, source, identifier) DO NOTHING so records
// already present are left untouched, making repeated collection runs
// idempotent. Returns whether a new row was inserted.
func (s *Store) UpsertApp(ctx context.Context, deviceID int64, rec record.Record) (inserted bool, err error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO apps
		(device_id, source, identifier, name, version, added_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(device_id, source, identifier) DO NOTHING
	`,
		deviceID,
		string(rec.Source),
		rec.Identifier,
		rec.Name,
		rec.Version,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("upsert app: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("upsert app: rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// RecordScan inserts a collection-run summary.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - duplicate scan IDs
// are silently ignored.
func (s *Store) RecordScan(ctx context.Context, deviceID int64, scan record.ScanSummary) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scans
		(id, device_id, created_at, seen, added)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		scan.ID,
		deviceID,
		scan.CreatedAt.UTC().Format(time.RFC3339),
		scan.Seen,
		scan.Added,
	)
	if err != nil {
		return fmt.Errorf("record scan: %w", err)
	}

	return nil
}
