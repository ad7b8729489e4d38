// Package memengine provides an in-memory record store.
//
// It is used by tests and by the CLI's "memory" engine. Data lives only as long
// as the process.
package memengine
