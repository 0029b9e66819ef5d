package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/sift/internal/stage"
	"github.com/roach88/sift/internal/table"
)

// StageTrace records what one stage did to the table.
type StageTrace struct {
	// Seq is the 1-based position of the stage in the pipeline.
	Seq int `json:"seq"`

	// Stage is the stage name.
	Stage string `json:"stage"`

	// RowsIn and RowsOut are the row counts before and after the stage.
	RowsIn  int `json:"rows_in"`
	RowsOut int `json:"rows_out"`

	// Cols is the column count after the stage.
	Cols int `json:"cols"`

	// TableHash is the content hash of the table after the stage.
	TableHash string `json:"table_hash"`
}

// Result is the outcome of a completed pipeline run.
type Result struct {
	// RunToken correlates the run across logs and the trace store.
	RunToken string

	// Pipeline is the variant name that was executed.
	Pipeline string

	// Table is the cleaned table.
	Table *table.Table

	// Trace holds one entry per executed stage, in execution order.
	Trace []StageTrace
}

// Runner executes stage lists over tables.
//
// Execution is synchronous and single-pass: stages run in order, each over
// the previous stage's output. The input table is never modified. The first
// failing stage aborts the run; there is no retry and no partial result.
type Runner struct {
	tokens RunTokenGenerator
}

// NewRunner creates a Runner. A nil generator defaults to UUIDv7 tokens.
func NewRunner(gen RunTokenGenerator) *Runner {
	if gen == nil {
		gen = UUIDv7Generator{}
	}
	return &Runner{tokens: gen}
}

// Run executes the stages over tbl and returns the cleaned table with its
// trace. The context is checked between stages; stages themselves are pure
// in-memory transformations and do not block.
func (r *Runner) Run(ctx context.Context, tbl *table.Table, pipelineName string, stages []stage.Stage) (*Result, error) {
	token := r.tokens.Generate()
	slog.Info("pipeline starting",
		"run", token,
		"pipeline", pipelineName,
		"stages", len(stages),
		"rows", tbl.NumRows(),
		"cols", tbl.NumCols(),
	)

	trace := make([]StageTrace, 0, len(stages))
	current := tbl

	for i, s := range stages {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run %s cancelled before stage %s: %w", token, s.Name(), err)
		}

		rowsIn := current.NumRows()
		next, err := s.Apply(current)
		if err != nil {
			slog.Error("stage failed",
				"run", token,
				"stage", s.Name(),
				"seq", i+1,
				"error", err,
			)
			return nil, fmt.Errorf("run %s: %w", token, err)
		}

		hash, err := next.Hash()
		if err != nil {
			return nil, fmt.Errorf("run %s: hash after stage %s: %w", token, s.Name(), err)
		}

		trace = append(trace, StageTrace{
			Seq:       i + 1,
			Stage:     s.Name(),
			RowsIn:    rowsIn,
			RowsOut:   next.NumRows(),
			Cols:      next.NumCols(),
			TableHash: hash,
		})
		slog.Debug("stage applied",
			"run", token,
			"stage", s.Name(),
			"seq", i+1,
			"rows_in", rowsIn,
			"rows_out", next.NumRows(),
			"table_hash", hash,
		)
		current = next
	}

	slog.Info("pipeline finished",
		"run", token,
		"pipeline", pipelineName,
		"rows", current.NumRows(),
	)
	return &Result{
		RunToken: token,
		Pipeline: pipelineName,
		Table:    current,
		Trace:    trace,
	}, nil
}

// RunConfig builds the stage list from cfg and executes it.
func (r *Runner) RunConfig(ctx context.Context, tbl *table.Table, cfg *Config) (*Result, error) {
	stages, err := cfg.Stages()
	if err != nil {
		return nil, fmt.Errorf("build stages: %w", err)
	}
	return r.Run(ctx, tbl, cfg.PipelineName(), stages)
}
