package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/menthoven/mxapplist/internal/record"
)

// AppQuery narrows ListApps results. Zero values mean no filtering.
type AppQuery struct {
	Device  string          // only rows for this device name
	Sources []record.Source // only rows from these sources
}

// ListApps returns application rows joined with their device name,
// in insertion order.
//
// Returns an empty slice (not nil) if no rows match.
func (s *Store) ListApps(ctx context.Context, q AppQuery) ([]record.App, error) {
	query := `
		SELECT a.name, a.source, a.identifier, a.version, d.name, a.added_at
		FROM apps a
		JOIN devices d ON a.device_id = d.id
	`
	var conds []string
	var args []any

	if q.Device != "" {
		conds = append(conds, "d.name = ?")
		args = append(args, q.Device)
	}
	if len(q.Sources) > 0 {
		// Build placeholder string for IN clause
		placeholders := make([]byte, 0, len(q.Sources)*2-1)
		for i, src := range q.Sources {
			if i > 0 {
				placeholders = append(placeholders, ',')
			}
			placeholders = append(placeholders, '?')
			args = append(args, string(src))
		}
		conds = append(conds, "a.source IN ("+string(placeholders)+")")
	}

	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	// Insertion order
	query += " ORDER BY a.id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query apps: %w", err)
	}
	defer rows.Close()

	var apps []record.App
	for rows.Next() {
		app, err := scanApp(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate apps: %w", err)
	}

	// Return empty slice instead of nil
	if apps == nil {
		apps = []record.App{}
	}

	return apps, nil
}

// ListScans returns collection-run summaries, newest first.
// A limit <= 0 returns all scans.
//
// Returns an empty slice (not nil) if no scans exist.
func (s *Store) ListScans(ctx context.Context, limit int) ([]record.ScanSummary, error) {
	query := `
		SELECT s.id, d.name, s.created_at, s.seen, s.added
		FROM scans s
		JOIN devices d ON s.device_id = d.id
		ORDER BY s.created_at DESC, s.id DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query scans: %w", err)
	}
	defer rows.Close()

	var scans []record.ScanSummary
	for rows.Next() {
		scan, err := scanScanSummary(rows)
		if err != nil {
			return nil, err
		}
		scans = append(scans, scan)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scans: %w", err)
	}

	if scans == nil {
		scans = []record.ScanSummary{}
	}

	return scans, nil
}

// DeviceExists reports whether a device row with the given name exists,
// without creating one.
func (s *Store) DeviceExists(ctx context.Context, name string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM devices WHERE name = ?
	`, name).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check device: %w", err)
	}
	return count > 0, nil
}

// scanApp scans a row into an App struct.
func scanApp(rows *sql.Rows) (record.App, error) {
	var app record.App
	var source, addedAt string

	if err := rows.Scan(
		&app.Name, &source, &app.Identifier, &app.Version, &app.Device, &addedAt,
	); err != nil {
		return record.App{}, fmt.Errorf("scan app: %w", err)
	}

	app.Source = record.Source(source)

	ts, err := time.Parse(time.RFC3339, addedAt)
	if err != nil {
		return record.App{}, fmt.Errorf("parse app added_at: %w", err)
	}
	app.AddedAt = ts

	return app, nil
}

// scanScanSummary scans a row into a ScanSummary struct.
func scanScanSummary(rows *sql.Rows) (record.ScanSummary, error) {
	var scan record.ScanSummary
	var createdAt string

	if err := rows.Scan(
		&scan.ID, &scan.Device, &createdAt, &scan.Seen, &scan.Added,
	); err != nil {
		return record.ScanSummary{}, fmt.Errorf("scan run summary: %w", err)
	}

	ts, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return record.ScanSummary{}, fmt.Errorf("parse scan created_at: %w", err)
	}
	scan.CreatedAt = ts

	return scan, nil
}
