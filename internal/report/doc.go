// Package report writes the YAML run report: one document per invocation
// with a run ID, timing, per-target rows, totals, and a BLAKE3 digest of
// every output file the run produced or found in place.
package report
