// Package database provides SQLite-based local storage for cczukit.
//
// A single Store backs two concerns:
//   - the disk cache for portal responses, such as parsed training plans
//   - small string properties, such as the last resolved login topology
//
// The store uses modernc.org/sqlite, so no cgo toolchain is needed.
// Callers treat the cache as best-effort: a failed read is a miss.
package database
