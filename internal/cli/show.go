package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/menthoven/mxapplist/internal/render"
	"github.com/menthoven/mxapplist/internal/store"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Device  string
	Sources []string
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "List recorded applications",
		Long: `List every application recorded in the database.

Shows all devices by default; narrow the listing with --device and
--source.

Example:
  mxapplist show
  mxapplist show --device laptop --source pacman --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Device, "device", "", "only list applications recorded for this device")
	cmd.Flags().StringSliceVar(&opts.Sources, "source", nil, "only list applications from this source (repeatable)")

	return cmd
}

func runShow(opts *ShowOptions, cmd *cobra.Command) error {
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

	sources, err := parseSources(opts.Sources)
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeSource, "invalid --source", err)
	}

	st, err := openStore(cfg)
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeDatabase, "failed to open database", err)
	}
	defer st.Close()

	apps, err := st.ListApps(ctx, store.AppQuery{Device: opts.Device, Sources: sources})
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeDatabase, "failed to list applications", err)
	}
	formatter.VerboseLog("Loaded %d application(s) from %s", len(apps), cfg.Database)

	if formatter.Format == "json" {
		return formatter.Success(apps)
	}
	if len(apps) == 0 {
		fmt.Fprintln(formatter.Writer, "No applications recorded.")
		return nil
	}
	fmt.Fprintln(formatter.Writer, render.New(formatter.Writer).Apps(apps))
	return nil
}
