// Package stage defines the column-level cleaning stages of the sift
// pipeline. Each stage is a small descriptor struct implementing Stage;
// stage lists are assembled by the pipeline package and executed by its
// runner.
//
// Every stage is a pure function over its input table: it returns a new
// table and never mutates the one it receives. A stage either succeeds
// completely or fails with a *stage.Error carrying the stage name, the
// column involved, and a machine-readable code. There is no partial-result
// recovery; the runner aborts at the first failing stage.
package stage
