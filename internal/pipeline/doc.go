// Package pipeline assembles cleaning stages into named pipelines and
// executes them.
//
// A pipeline is an ordered stage list built from a Config. Two orderings
// are defined: "standard" deduplicates before value cleaning, "dedup-last"
// deduplicates after it, which changes which rows count as duplicates. Both
// are run by the same Runner, which records a per-stage trace (row counts
// and content hashes) and stops at the first failing stage.
package pipeline
