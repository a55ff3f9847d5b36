// Package memory provides an in-process store.KeyValueStore. It is used for
// tests and for running the server without a database; nothing survives a
// restart.
package memory
