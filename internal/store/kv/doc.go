// Package kv implements the store repositories on top of a
// store.KeyValueStore. Values are JSON documents except for the session
// flags, token and remembered email, which are stored as plain strings.
package kv
