package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/sift/internal/compiler"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <definition>",
		Short: "Validate a CUE pipeline definition",
		Long: `Compile a CUE pipeline definition and report every problem found,
without running anything.

Example:
  sift validate ./pipeline.cue
  sift validate ./definitions/ --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:    rootOpts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   rootOpts.Verbose,
			}
			return runValidate(formatter, args[0])
		},
	}
	return cmd
}

func runValidate(formatter *OutputFormatter, path string) error {
	value, err := LoadDefinitionValue(path)
	if err != nil {
		_ = formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return err
	}

	cfg, errs := compiler.CompileDefinitionAll(value)
	if len(errs) > 0 {
		for _, cerr := range errs {
			var ce *compiler.CompileError
			if errors.As(cerr, &ce) {
				_ = formatter.Error(ErrCodeCompileFailed, ce.Error(), map[string]string{"field": ce.Field})
			} else {
				_ = formatter.Error(ErrCodeCompileFailed, cerr.Error(), nil)
			}
		}
		return WrapExitError(ExitFailure, fmt.Sprintf("definition has %d error(s)", len(errs)), errs[0])
	}

	return formatter.Success(fmt.Sprintf("definition ok: pipeline=%s renames=%d replacements=%d casts=%d",
		cfg.PipelineName(), len(cfg.ColumnRenames), len(cfg.Replacements)+len(cfg.NumericReplacements), len(cfg.Casts)))
}
