package store

import (
	"context"
	"fmt"

	"github.com/roach88/sift/internal/pipeline"
)

// Run is a recorded pipeline run.
type Run struct {
	Token     string `json:"token"`
	Pipeline  string `json:"pipeline"`
	RowsIn    int    `json:"rows_in"`
	RowsOut   int    `json:"rows_out"`
	TableHash string `json:"table_hash"`
	CreatedAt string `json:"created_at"`
}

// ListRuns returns all recorded runs, most recent first.
// Returns an empty slice (not nil) if nothing has been recorded.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT token, pipeline, rows_in, rows_out, table_hash, created_at
		FROM runs
		ORDER BY created_at DESC, token COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.Token, &r.Pipeline, &r.RowsIn, &r.RowsOut, &r.TableHash, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	if runs == nil {
		runs = []Run{}
	}
	return runs, nil
}

// ReadRun retrieves a single run by token.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadRun(ctx context.Context, token string) (Run, error) {
	var r Run
	err := s.db.QueryRowContext(ctx, `
		SELECT token, pipeline, rows_in, rows_out, table_hash, created_at
		FROM runs
		WHERE token = ?
	`, token).Scan(&r.Token, &r.Pipeline, &r.RowsIn, &r.RowsOut, &r.TableHash, &r.CreatedAt)
	if err != nil {
		return Run{}, fmt.Errorf("read run %s: %w", token, err)
	}
	return r, nil
}

// ReadTrace returns the stage traces for a run, ordered by seq.
// Returns an empty slice (not nil) if the run has no traces.
func (s *Store) ReadTrace(ctx context.Context, token string) ([]pipeline.StageTrace, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, stage, rows_in, rows_out, cols, table_hash
		FROM stage_traces
		WHERE run_token = ?
		ORDER BY seq ASC
	`, token)
	if err != nil {
		return nil, fmt.Errorf("query traces: %w", err)
	}
	defer rows.Close()

	var trace []pipeline.StageTrace
	for rows.Next() {
		var tr pipeline.StageTrace
		if err := rows.Scan(&tr.Seq, &tr.Stage, &tr.RowsIn, &tr.RowsOut, &tr.Cols, &tr.TableHash); err != nil {
			return nil, fmt.Errorf("scan trace: %w", err)
		}
		trace = append(trace, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate traces: %w", err)
	}

	if trace == nil {
		trace = []pipeline.StageTrace{}
	}
	return trace, nil
}
