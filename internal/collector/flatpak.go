package collector

import (
	"context"
	"strings"

	"github.com/menthoven/mxapplist/internal/record"
)

const defaultFlatpakCommand = "flatpak"

// Flatpak lists applications installed through flatpak.
// Runtimes are excluded; only applications are reported.
type Flatpak struct {
	Command string // binary to invoke, defaults to "flatpak"
}

func (f Flatpak) Name() string {
	return record.SourceFlatpak.String()
}

// Installed runs `flatpak list --app` and parses its tab-separated
// columns: application ID, name, version.
func (f Flatpak) Installed(ctx context.Context) ([]record.Record, error) {
	bin := f.Command
	if bin == "" {
		bin = defaultFlatpakCommand
	}
	out, err := run(ctx, bin, "list", "--app", "--columns=application,name,version")
	if err != nil {
		return nil, err
	}
	return parseFlatpakList(out), nil
}

// parseFlatpakList converts `flatpak list` output into records. A line
// like "org.mozilla.firefox\tFirefox\t1.0" yields identifier
// org.mozilla.firefox, name Firefox, version 1.0. Lines with fewer
// than two columns or without an identifier are skipped; a missing
// name falls back to the identifier.
func parseFlatpakList(out string) []record.Record {
	var records []record.Record
	for _, line := range splitLines(out) {
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			continue
		}
		rec := record.Record{
			Source:     record.SourceFlatpak,
			Identifier: strings.TrimSpace(fields[0]),
			Name:       strings.TrimSpace(fields[1]),
		}
		if len(fields) > 2 {
			rec.Version = strings.TrimSpace(fields[2])
		}
		if rec.Identifier == "" {
			continue
		}
		if rec.Name == "" {
			rec.Name = rec.Identifier
		}
		records = append(records, rec)
	}
	return records
}
