package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSchema_FullDocument(t *testing.T) {
	doc := []byte(`
device: workstation
database: /var/lib/mxapplist/apps.db
sources:
  flatpak:
    enabled: true
    command: flatpak
  pacman:
    enabled: true
    command: yay
    explicit_only: false
`)
	assert.NoError(t, validateSchema("config.yaml", doc))
}

func TestValidateSchema_UnknownField(t *testing.T) {
	err := validateSchema("config.yaml", []byte("bogus: 1\n"))
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Contains(t, err.Error(), "bogus")
}

func TestValidateSchema_BadPacmanCommand(t *testing.T) {
	doc := []byte(`
sources:
  pacman:
    command: apt
`)
	err := validateSchema("config.yaml", doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "command")
}

func TestValidateSchema_WrongType(t *testing.T) {
	doc := []byte(`
sources:
  flatpak:
    enabled: "yes"
`)
	err := validateSchema("config.yaml", doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enabled")
}

func TestValidateSchema_EmptyDevice(t *testing.T) {
	err := validateSchema("config.yaml", []byte(`device: ""`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "device")
}

func TestValidateSchema_ErrorNamesFile(t *testing.T) {
	err := validateSchema("custom.yaml", []byte("bogus: 1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config custom.yaml")
}
