// Package render draws application and scan-history tables for
// terminal output. Colors degrade to plain text on non-TTY writers.
package render

import (
	"io"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/menthoven/mxapplist/internal/record"
)

// Palettes cycle in first-seen order so the same device or source
// keeps its color for the whole table.
var (
	devicePalette = []lipgloss.Color{"6", "2", "3"}
	sourcePalette = []lipgloss.Color{"4", "5", "1", "7"}
)

// Renderer draws tables sized and colored for a specific writer.
type Renderer struct {
	re *lipgloss.Renderer
}

// New returns a Renderer targeting w.
func New(w io.Writer) *Renderer {
	return &Renderer{re: lipgloss.NewRenderer(w)}
}

// Apps renders the application table, ordered case-insensitively by
// name. The input slice is not modified.
func (r *Renderer) Apps(apps []record.App) string {
	sorted := sortApps(apps)

	deviceColors := make(map[string]lipgloss.Color)
	sourceColors := make(map[string]lipgloss.Color)
	rows := make([][]string, 0, len(sorted))
	for _, app := range sorted {
		colorFor(deviceColors, devicePalette, app.Device)
		colorFor(sourceColors, sourcePalette, app.Source.String())
		rows = append(rows, []string{app.Name, app.Version, app.Source.String(), app.Device})
	}

	headerStyle := r.re.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := r.re.NewStyle().Padding(0, 1)

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.re.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers("APPLICATION", "VERSION", "SOURCE", "DEVICE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			switch col {
			case 2:
				return cellStyle.Foreground(sourceColors[sorted[row].Source.String()])
			case 3:
				return cellStyle.Foreground(deviceColors[sorted[row].Device])
			default:
				return cellStyle
			}
		})

	return tbl.String()
}

// Scans renders the collection-run history table, newest first as
// provided by the store.
func (r *Renderer) Scans(scans []record.ScanSummary) string {
	deviceColors := make(map[string]lipgloss.Color)
	rows := make([][]string, 0, len(scans))
	for _, s := range scans {
		colorFor(deviceColors, devicePalette, s.Device)
		rows = append(rows, []string{
			s.ID,
			s.Device,
			s.CreatedAt.Format("2006-01-02 15:04:05"),
			strconv.Itoa(s.Seen),
			strconv.Itoa(s.Added),
		})
	}

	headerStyle := r.re.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := r.re.NewStyle().Padding(0, 1)

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.re.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers("SCAN", "DEVICE", "WHEN", "SEEN", "ADDED").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 1 {
				return cellStyle.Foreground(deviceColors[rows[row][1]])
			}
			return cellStyle
		})

	return tbl.String()
}

// sortApps orders apps for display: case-insensitive by name, then by
// identifier for stable ties.
func sortApps(apps []record.App) []record.App {
	sorted := make([]record.App, len(apps))
	copy(sorted, apps)
	c := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(sorted, func(i, j int) bool {
		if cmp := c.CompareString(sorted[i].Name, sorted[j].Name); cmp != 0 {
			return cmp < 0
		}
		return sorted[i].Identifier < sorted[j].Identifier
	})
	return sorted
}

// colorFor assigns each distinct key a palette color in first-seen
// order, wrapping when the palette runs out.
func colorFor(assigned map[string]lipgloss.Color, palette []lipgloss.Color, key string) lipgloss.Color {
	if c, ok := assigned[key]; ok {
		return c
	}
	c := palette[len(assigned)%len(palette)]
	assigned[key] = c
	return c
}
