package store

import (
	"context"
	"fmt"

	"github.com/roach88/sift/internal/pipeline"
)

// RecordRun writes a completed run and its stage traces in one transaction.
// Uses ON CONFLICT(token) DO NOTHING for idempotency - recording the same
// run twice is a no-op.
//
// rowsIn is the row count of the input table; the output row count and
// final table hash come from the result itself.
func (s *Store) RecordRun(ctx context.Context, res *pipeline.Result, rowsIn int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("record run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	finalHash := ""
	if n := len(res.Trace); n > 0 {
		finalHash = res.Trace[n-1].TableHash
	} else {
		finalHash, err = res.Table.Hash()
		if err != nil {
			return fmt.Errorf("record run: hash table: %w", err)
		}
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO runs
		(token, pipeline, rows_in, rows_out, table_hash)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(token) DO NOTHING
	`,
		res.RunToken,
		res.Pipeline,
		rowsIn,
		res.Table.NumRows(),
		finalHash,
	)
	if err != nil {
		return fmt.Errorf("record run: insert run: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("record run: rows affected: %w", err)
	}
	if rowsAffected == 0 {
		// Run already recorded; traces were written with it.
		return tx.Commit()
	}

	for _, tr := range res.Trace {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO stage_traces
			(run_token, seq, stage, rows_in, rows_out, cols, table_hash)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`,
			res.RunToken,
			tr.Seq,
			tr.Stage,
			tr.RowsIn,
			tr.RowsOut,
			tr.Cols,
			tr.TableHash,
		)
		if err != nil {
			return fmt.Errorf("record run: insert trace seq %d: %w", tr.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("record run: commit: %w", err)
	}
	return nil
}
