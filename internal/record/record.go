// Package record holds the domain types shared by the collector, the
// store, and the CLI: application records, their package source, and
// collection-run summaries.
package record

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Source identifies the package manager an application record came from.
type Source string

const (
	SourceFlatpak Source = "flatpak"
	SourcePacman  Source = "pacman"
)

// Sources lists all known sources in collection order.
var Sources = []Source{SourceFlatpak, SourcePacman}

func (s Source) String() string {
	return string(s)
}

// ParseSource converts a user-supplied name into a Source.
// Matching is case-insensitive.
func ParseSource(name string) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case string(SourceFlatpak):
		return SourceFlatpak, nil
	case string(SourcePacman):
		return SourcePacman, nil
	}
	return "", fmt.Errorf("unknown source %q: must be one of %v", name, Sources)
}

// Record is one installed application reported by a package source.
// Identifier is the unique key within a source: the application ID for
// flatpak, the package name for pacman.
type Record struct {
	Name       string `json:"name"`
	Source     Source `json:"source"`
	Identifier string `json:"identifier"`
	Version    string `json:"version,omitempty"`
}

// App is a persisted application row, including the device it was
// collected on and when it was first recorded.
type App struct {
	Name       string    `json:"name"`
	Source     Source    `json:"source"`
	Identifier string    `json:"identifier"`
	Version    string    `json:"version,omitempty"`
	Device     string    `json:"device"`
	AddedAt    time.Time `json:"added_at"`
}

// ScanSummary describes one collection run: how many records the
// sources reported (seen) and how many were new to the database (added).
type ScanSummary struct {
	ID        string    `json:"id"`
	Device    string    `json:"device"`
	CreatedAt time.Time `json:"created_at"`
	Seen      int       `json:"seen"`
	Added     int       `json:"added"`
}

// NewScanID returns a time-ordered unique identifier for a scan run.
func NewScanID() string {
	return uuid.Must(uuid.NewV7()).String()
}
