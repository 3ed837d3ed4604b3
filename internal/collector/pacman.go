package collector

import (
	"context"
	"strings"

	"github.com/menthoven/mxapplist/internal/record"
)

const defaultPacmanCommand = "pacman"

// Pacman lists applications installed through pacman or one of the
// AUR helpers with a pacman-compatible query interface (paru, yay).
type Pacman struct {
	Command      string // binary to invoke, defaults to "pacman"
	ExplicitOnly bool   // restrict to explicitly installed packages
}

func (p Pacman) Name() string {
	return record.SourcePacman.String()
}

// Installed runs `<command> --query` and parses its "name version"
// lines. The package name doubles as the identifier.
func (p Pacman) Installed(ctx context.Context) ([]record.Record, error) {
	bin := p.Command
	if bin == "" {
		bin = defaultPacmanCommand
	}
	args := []string{"--query"}
	if p.ExplicitOnly {
		args = append(args, "--explicit")
	}
	out, err := run(ctx, bin, args...)
	if err != nil {
		return nil, err
	}
	return parsePacmanQuery(out), nil
}

// parsePacmanQuery converts `pacman --query` output into records.
// Each line is "name version"; a bare name is tolerated.
func parsePacmanQuery(out string) []record.Record {
	var records []record.Record
	for _, line := range splitLines(out) {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		rec := record.Record{
			Source:     record.SourcePacman,
			Identifier: fields[0],
			Name:       fields[0],
		}
		if len(fields) > 1 {
			rec.Version = fields[1]
		}
		records = append(records, rec)
	}
	return records
}
