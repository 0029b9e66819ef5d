package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/sift/internal/bridge"
	"github.com/roach88/sift/internal/pipeline"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Output string

	// TokenGenerator allows overriding the run token generator (for
	// testing). If nil, defaults to UUIDv7Generator.
	TokenGenerator pipeline.RunTokenGenerator
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export <definition> <input.csv>",
		Short: "Run a pipeline and export the result as Arrow IPC",
		Long: `Run the pipeline over a CSV file and write the cleaned table as an
Arrow IPC stream, for consumption by analytical tools without reparsing.

Example:
  sift export ./pipeline.cue ./customers.csv --out cleaned.arrow`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, opts, args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&opts.Output, "out", "", "output .arrow path (required)")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runExport(cmd *cobra.Command, opts *ExportOptions, defPath, inputPath string) error {
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

	runner := pipeline.NewRunner(opts.TokenGenerator)
	res, err := runner.RunConfig(cmd.Context(), tbl, cfg)
	if err != nil {
		return WrapExitError(ExitFailure, "pipeline failed", err)
	}

	data, err := bridge.SerializeIPC(res.Table)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to serialize table", err)
	}

	if err := os.WriteFile(opts.Output, data, 0o644); err != nil {
		return WrapExitError(ExitCommandError, "failed to write output", err)
	}

	slog.Info("export complete",
		"run", res.RunToken,
		"out", opts.Output,
		"rows", res.Table.NumRows(),
		"bytes", len(data),
	)
	return nil
}
