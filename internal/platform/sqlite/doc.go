// Package sqlite provides the embedded store.KeyValueStore backend, built on
// the pure-Go modernc.org/sqlite driver. It is the default backend for
// single-node deployments and for the CLI's local session file.
package sqlite
