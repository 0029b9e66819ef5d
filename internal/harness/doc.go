// Package harness provides the scenario-based conformance test harness.
//
// Scenarios are YAML files describing an input table and a pipeline
// configuration; the harness runs the pipeline with a fixed run token and
// compares the canonical encoding of the cleaned table against a golden
// file. Golden files are the source of truth for expected cleaning
// behavior.
package harness
