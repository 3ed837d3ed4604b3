package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/menthoven/mxapplist/internal/render"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Limit int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past collection runs",
		Long: `List past collection runs, newest first.

Each run shows how many applications the sources reported and how many
were new to the database.

Example:
  mxapplist history
  mxapplist history --limit 5`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum runs to list (0 for all)")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
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

	st, err := openStore(cfg)
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeDatabase, "failed to open database", err)
	}
	defer st.Close()

	scans, err := st.ListScans(ctx, opts.Limit)
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeDatabase, "failed to list runs", err)
	}
	formatter.VerboseLog("Loaded %d run(s) from %s", len(scans), cfg.Database)

	if formatter.Format == "json" {
		return formatter.Success(scans)
	}
	if len(scans) == 0 {
		fmt.Fprintln(formatter.Writer, "No runs recorded.")
		return nil
	}
	fmt.Fprintln(formatter.Writer, render.New(formatter.Writer).Scans(scans))
	return nil
}
