// Package store provides SQLite-backed storage for collected
// application records.
//
// One database holds three tables:
//   - devices: machines whose packages have been collected
//   - apps: one row per application per device per source
//   - scans: one row per collection run (seen/added counts)
//
// Duplicate protection lives in the schema: the UNIQUE(device_id,
// source, identifier) constraint plus ON CONFLICT DO NOTHING writes
// make repeated collection runs idempotent.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
package store
