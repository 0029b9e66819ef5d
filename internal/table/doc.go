// Package table provides the in-memory tabular data model for sift.
//
// A Table is an ordered collection of uniquely named columns. Each column
// holds a sequence of cell values of a nominal type, with rows aligned by
// position across columns. Tables are treated as immutable: every operation
// that changes a table returns a new one, leaving the input intact. Cleaning
// stages rely on this copy-on-write contract.
//
// Cell values use a sealed interface (Value) with exactly four
// implementations: Null, String, Int, and Float. Canonical JSON
// serialization and domain-separated SHA-256 hashing give rows and tables
// stable, deterministic identities used for deduplication, trace records,
// and golden tests.
package table
