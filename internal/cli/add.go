package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/menthoven/mxapplist/internal/collector"
	"github.com/menthoven/mxapplist/internal/config"
	"github.com/menthoven/mxapplist/internal/record"
)

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Device  string
	Sources []string
	Yes     bool
}

// AddResult summarizes one collection run.
type AddResult struct {
	ScanID  string         `json:"scan_id"`
	Device  string         `json:"device"`
	Seen    int            `json:"seen"`
	Added   int            `json:"added"`
	Sources []SourceReport `json:"sources"`
}

// SourceReport describes the outcome for one package source.
type SourceReport struct {
	Source  string `json:"source"`
	Records int    `json:"records"`
	Added   int    `json:"added"`
	Skipped bool   `json:"skipped"`
	Reason  string `json:"reason,omitempty"`
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Collect installed applications into the database",
		Long: `Collect the applications installed on this machine and record them.

Runs the flatpak and pacman listing commands, parses their output, and
inserts every application not yet recorded for this device. Already
recorded applications are left untouched, so repeated runs are safe.
A source whose listing command is missing or fails is skipped and
reported; the other source still runs.

Example:
  mxapplist add
  mxapplist add --device laptop --source flatpak --yes`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Device, "device", "", "device name to record under (default from config)")
	cmd.Flags().StringSliceVar(&opts.Sources, "source", nil, "package source to collect (repeatable: flatpak, pacman)")
	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "register unknown devices without prompting")

	return cmd
}

func runAdd(opts *AddOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeConfig, "failed to load config", err)
	}

	device := opts.Device
	if device == "" {
		device = cfg.Device
	}
	if device == "" {
		return fail(formatter, ExitCommandError, ErrCodeDevice,
			"no device name: set --device or the device config key", nil)
	}

	selected, err := parseSources(opts.Sources)
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeSource, "invalid --source", err)
	}
	sources := buildSources(cfg, selected)
	if len(sources) == 0 {
		return fail(formatter, ExitCommandError, ErrCodeSource, "no package sources selected", nil)
	}

	slog.Debug("opening database", "path", cfg.Database)
	st, err := openStore(cfg)
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeDatabase, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	// Confirm before registering a device the database has never seen.
	exists, err := st.DeviceExists(ctx, device)
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeDatabase, "failed to query devices", err)
	}
	if !exists && !opts.Yes {
		ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Register new device %q?", device)
		if err != nil {
			return fail(formatter, ExitCommandError, ErrCodeDevice, "failed to read confirmation", err)
		}
		if !ok {
			return fail(formatter, ExitFailure, ErrCodeDevice,
				fmt.Sprintf("aborted: device %q not registered", device), nil)
		}
	}

	deviceID, existed, err := st.EnsureDevice(ctx, device)
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeDatabase, "failed to register device", err)
	}
	if !existed {
		slog.Info("registered new device", "device", device)
	}

	result := AddResult{ScanID: record.NewScanID(), Device: device}
	collected := 0
	for _, res := range collector.Collect(ctx, sources) {
		report := SourceReport{Source: res.Source, Records: len(res.Records)}
		if res.Skipped() {
			report.Skipped = true
			report.Reason = res.Err.Error()
			slog.Warn("skipping source", "source", res.Source, "reason", res.Err)
			result.Sources = append(result.Sources, report)
			continue
		}
		collected++
		for _, rec := range res.Records {
			inserted, err := st.UpsertApp(ctx, deviceID, rec)
			if err != nil {
				return fail(formatter, ExitCommandError, ErrCodeDatabase,
					fmt.Sprintf("failed to record %s", rec.Identifier), err)
			}
			if inserted {
				report.Added++
			}
		}
		result.Seen += report.Records
		result.Added += report.Added
		result.Sources = append(result.Sources, report)
	}

	if collected == 0 {
		return fail(formatter, ExitFailure, ErrCodeSource, "no package sources available", nil)
	}

	scan := record.ScanSummary{
		ID:        result.ScanID,
		Device:    device,
		CreatedAt: time.Now().UTC(),
		Seen:      result.Seen,
		Added:     result.Added,
	}
	if err := st.RecordScan(ctx, deviceID, scan); err != nil {
		return fail(formatter, ExitCommandError, ErrCodeDatabase, "failed to record scan", err)
	}
	slog.Debug("scan recorded", "scan_id", scan.ID, "seen", scan.Seen, "added", scan.Added)

	return outputAddResult(formatter, result)
}

// buildSources assembles the collectors to run: the --source selection
// when given, otherwise the sources enabled in config. Collection order
// is fixed (flatpak, then pacman) regardless of selection order.
func buildSources(cfg config.Config, selected []record.Source) []collector.Source {
	want := func(s record.Source) bool {
		if len(selected) > 0 {
			for _, sel := range selected {
				if sel == s {
					return true
				}
			}
			return false
		}
		switch s {
		case record.SourceFlatpak:
			return cfg.Sources.Flatpak.Enabled
		case record.SourcePacman:
			return cfg.Sources.Pacman.Enabled
		}
		return false
	}

	var sources []collector.Source
	if want(record.SourceFlatpak) {
		sources = append(sources, &collector.Flatpak{Command: cfg.Sources.Flatpak.Command})
	}
	if want(record.SourcePacman) {
		sources = append(sources, &collector.Pacman{
			Command:      cfg.Sources.Pacman.Command,
			ExplicitOnly: cfg.Sources.Pacman.ExplicitOnly,
		})
	}
	return sources
}

// outputAddResult reports the collection summary.
func outputAddResult(formatter *OutputFormatter, result AddResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	for _, src := range result.Sources {
		if src.Skipped {
			fmt.Fprintf(formatter.Writer, "%s: skipped (%s)\n", src.Source, src.Reason)
			continue
		}
		fmt.Fprintf(formatter.Writer, "%s: %d applications (%d new)\n", src.Source, src.Records, src.Added)
	}
	fmt.Fprintf(formatter.Writer, "Recorded %d new of %d applications for device %q.\n",
		result.Added, result.Seen, result.Device)
	return nil
}
