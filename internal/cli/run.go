package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/sift/internal/pipeline"
	"github.com/roach88/sift/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Output   string
	Database string

	// TokenGenerator allows overriding the run token generator (for
	// testing). If nil, defaults to UUIDv7Generator.
	TokenGenerator pipeline.RunTokenGenerator
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <definition> <input.csv>",
		Short: "Run a cleaning pipeline over a CSV file",
		Long: `Run the pipeline described by a CUE definition over a CSV file and
write the cleaned table as CSV.

Example:
  sift run ./pipeline.cue ./customers.csv -o cleaned.csv
  sift run ./pipeline.cue ./customers.csv --db ./runs.db --verbose`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, opts, args[0], args[1])
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output CSV path (default stdout)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record the run trace in this SQLite database")

	return cmd
}

func runPipeline(cmd *cobra.Command, opts *RunOptions, defPath, inputPath string) error {
	cfg, err := LoadDefinition(defPath)
	if err != nil {
		return err
	}

	in, err := os.Open(inputPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open input", err)
	}
	defer in.Close()

	tbl, err := ReadCSV(in)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read input", err)
	}
	slog.Info("input loaded", "path", inputPath, "rows", tbl.NumRows(), "cols", tbl.NumCols())

	runner := pipeline.NewRunner(opts.TokenGenerator)
	res, err := runner.RunConfig(cmd.Context(), tbl, cfg)
	if err != nil {
		return WrapExitError(ExitFailure, "pipeline failed", err)
	}

	if opts.Database != "" {
		if err := recordRun(cmd, opts.Database, res, tbl.NumRows()); err != nil {
			return err
		}
	}

	var out io.Writer = cmd.OutOrStdout()
	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to create output", err)
		}
		defer f.Close()
		out = f
	}

	if err := WriteCSV(out, res.Table); err != nil {
		return WrapExitError(ExitCommandError, "failed to write output", err)
	}

	slog.Info("run complete",
		"run", res.RunToken,
		"pipeline", res.Pipeline,
		"rows_out", res.Table.NumRows(),
	)
	return nil
}

func recordRun(cmd *cobra.Command, dbPath string, res *pipeline.Result, rowsIn int) error {
	st, err := store.Open(dbPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	if err := st.RecordRun(cmd.Context(), res, rowsIn); err != nil {
		return WrapExitError(ExitCommandError, "failed to record run", err)
	}
	slog.Info("run recorded", "run", res.RunToken, "db", dbPath)
	return nil
}
