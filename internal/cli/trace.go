package cli

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/sift/internal/store"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database string
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace [run-token]",
		Short: "Inspect recorded pipeline runs",
		Long: `List recorded runs, or show the per-stage trace of one run.

With no argument, lists all runs in the database. With a run token,
shows the run's stage-by-stage row counts and table hashes.

Example:
  sift trace --db ./runs.db
  sift trace --db ./runs.db 0190a8b2-... --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:    rootOpts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   rootOpts.Verbose,
			}
			token := ""
			if len(args) == 1 {
				token = args[0]
			}
			return runTrace(cmd, formatter, opts, token)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runTrace(cmd *cobra.Command, formatter *OutputFormatter, opts *TraceOptions, token string) error {
	st, err := store.Open(opts.Database)
	if err != nil {
		wrapped := WrapExitError(ExitCommandError, "failed to open database", err)
		_ = formatter.Error(ErrCodeDatabase, wrapped.Error(), nil)
		return wrapped
	}
	defer st.Close()

	if token == "" {
		return listRuns(cmd, formatter, st)
	}
	return showTrace(cmd, formatter, st, token)
}

func listRuns(cmd *cobra.Command, formatter *OutputFormatter, st *store.Store) error {
	runs, err := st.ListRuns(cmd.Context())
	if err != nil {
		wrapped := WrapExitError(ExitCommandError, "failed to list runs", err)
		_ = formatter.Error(ErrCodeDatabase, wrapped.Error(), nil)
		return wrapped
	}

	if formatter.Format == "json" {
		return formatter.Success(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "no runs recorded")
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-38s %-12s %8s %8s  %s\n", "TOKEN", "PIPELINE", "ROWS IN", "ROWS OUT", "CREATED")
	for _, r := range runs {
		fmt.Fprintf(&b, "%-38s %-12s %8d %8d  %s\n", r.Token, r.Pipeline, r.RowsIn, r.RowsOut, r.CreatedAt)
	}
	fmt.Fprint(formatter.Writer, b.String())
	return nil
}

func showTrace(cmd *cobra.Command, formatter *OutputFormatter, st *store.Store, token string) error {
	run, err := st.ReadRun(cmd.Context(), token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			wrapped := NewExitError(ExitFailure, fmt.Sprintf("run not found: %s", token))
			_ = formatter.Error(ErrCodeNotFound, wrapped.Error(), nil)
			return wrapped
		}
		wrapped := WrapExitError(ExitCommandError, "failed to read run", err)
		_ = formatter.Error(ErrCodeDatabase, wrapped.Error(), nil)
		return wrapped
	}

	trace, err := st.ReadTrace(cmd.Context(), token)
	if err != nil {
		wrapped := WrapExitError(ExitCommandError, "failed to read trace", err)
		_ = formatter.Error(ErrCodeDatabase, wrapped.Error(), nil)
		return wrapped
	}

	if formatter.Format == "json" {
		return formatter.Success(map[string]any{
			"run":   run,
			"trace": trace,
		})
	}

	var b strings.Builder
	fmt.Fprintf(&b, "run %s (%s): %d rows in, %d rows out\n", run.Token, run.Pipeline, run.RowsIn, run.RowsOut)
	for _, tr := range trace {
		fmt.Fprintf(&b, "  %2d. %-24s %5d -> %-5d cols=%d hash=%s\n",
			tr.Seq, tr.Stage, tr.RowsIn, tr.RowsOut, tr.Cols, tr.TableHash)
	}
	fmt.Fprint(formatter.Writer, b.String())
	return nil
}
