package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"y", "y\n", true},
		{"yes", "yes\n", true},
		{"uppercase", "YES\n", true},
		{"n", "n\n", false},
		{"empty_line", "\n", false},
		{"eof", "", false},
		{"garbage", "maybe\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := confirm(strings.NewReader(tt.input), &out, "Register new device %q?", "testbox")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, `Register new device "testbox"? [y/N]: `, out.String())
		})
	}
}
