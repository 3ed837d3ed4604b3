// Package config resolves mxapplist settings from built-in defaults,
// an optional YAML config file, and environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds the resolved settings for a run.
type Config struct {
	Device   string  `yaml:"device"`
	Database string  `yaml:"database"`
	Sources  Sources `yaml:"sources"`
}

// Sources configures the package sources add collects from.
type Sources struct {
	Flatpak FlatpakSource `yaml:"flatpak"`
	Pacman  PacmanSource  `yaml:"pacman"`
}

// FlatpakSource configures flatpak collection.
type FlatpakSource struct {
	Enabled bool   `yaml:"enabled"`
	Command string `yaml:"command"`
}

// PacmanSource configures pacman collection. Command may name an AUR
// helper with a pacman-compatible query interface (paru, yay).
type PacmanSource struct {
	Enabled      bool   `yaml:"enabled"`
	Command      string `yaml:"command"`
	ExplicitOnly bool   `yaml:"explicit_only"`
}

// Default returns the built-in configuration: both sources enabled,
// explicit pacman packages only, the machine hostname as device name.
func Default() Config {
	host, _ := os.Hostname()
	return Config{
		Device: host,
		Sources: Sources{
			Flatpak: FlatpakSource{Enabled: true, Command: "flatpak"},
			Pacman:  PacmanSource{Enabled: true, Command: "pacman", ExplicitOnly: true},
		},
	}
}

// DefaultPath returns the default config file location,
// mxapplist/config.yaml under the user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config directory: %w", err)
	}
	return filepath.Join(dir, "mxapplist", "config.yaml"), nil
}

// DefaultDatabasePath returns the default database location,
// applist.db in the user's home directory.
func DefaultDatabasePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, "applist.db"), nil
}

// Load resolves configuration in precedence order: built-in defaults,
// then the YAML config file, then MXAPPLIST_* environment variables.
// An explicit path must exist; a missing default path is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := parse(&cfg, path, data); err != nil {
			return Config{}, err
		}
	case os.IsNotExist(err) && !explicit:
		// No config file; defaults apply.
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if cfg.Database == "" {
		db, err := DefaultDatabasePath()
		if err != nil {
			return Config{}, err
		}
		cfg.Database = db
	}

	return cfg, nil
}

// parse validates a config document against the embedded schema, then
// strictly decodes it over cfg so absent keys keep their defaults.
func parse(cfg *Config, path string, data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if err := validateSchema(path, data); err != nil {
		return err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// envOverrides are the environment variables recognized on top of the
// config file.
type envOverrides struct {
	Database string `envconfig:"DATABASE"`
	Device   string `envconfig:"DEVICE"`
}

// applyEnv overlays MXAPPLIST_* environment variables onto cfg.
func applyEnv(cfg *Config) error {
	var env envOverrides
	if err := envconfig.Process("mxapplist", &env); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	if env.Database != "" {
		cfg.Database = env.Database
	}
	if env.Device != "" {
		cfg.Device = env.Device
	}
	return nil
}
