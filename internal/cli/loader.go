package cli

import (
	"fmt"

	"github.com/menthoven/mxapplist/internal/config"
	"github.com/menthoven/mxapplist/internal/record"
	"github.com/menthoven/mxapplist/internal/store"
)

// Error codes reported in CLI error envelopes.
const (
	ErrCodeGeneric  = "E001" // Generic/unknown error
	ErrCodeConfig   = "E002" // Config file unreadable or invalid
	ErrCodeDatabase = "E003" // Database cannot be opened or written
	ErrCodeDevice   = "E004" // Device name missing or registration declined
	ErrCodeSource   = "E005" // Package source invalid or unavailable
)

// loadConfig resolves the effective configuration, applying the
// --config and --database flags on top of file and environment values.
func loadConfig(opts *RootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return config.Config{}, err
	}
	if opts.Database != "" {
		cfg.Database = opts.Database
	}
	return cfg, nil
}

// parseSources validates --source values, deduplicating while keeping
// the order given.
func parseSources(names []string) ([]record.Source, error) {
	seen := make(map[record.Source]bool)
	sources := make([]record.Source, 0, len(names))
	for _, name := range names {
		src, err := record.ParseSource(name)
		if err != nil {
			return nil, err
		}
		if seen[src] {
			continue
		}
		seen[src] = true
		sources = append(sources, src)
	}
	return sources, nil
}

// openStore opens the application database at the configured path.
func openStore(cfg config.Config) (*store.Store, error) {
	st, err := store.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", cfg.Database, err)
	}
	return st, nil
}
