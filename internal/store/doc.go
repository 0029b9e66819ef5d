// Package store persists pipeline run traces to SQLite.
//
// The cleaning core is persistence-free; this store is an external
// collaborator used by the CLI to record what each run did (row counts and
// table hashes per stage) so runs can be inspected later with `sift trace`.
package store
