// Package store persists compiled index snapshots as flat files.
//
// A compiled snapshot lets a process start from a single binary file instead
// of reparsing every source document. Document fingerprints travel with the
// file so callers can detect staleness against the current sources.
package store
