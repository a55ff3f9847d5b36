// Package postgres provides the PostgreSQL store.KeyValueStore backend,
// using the pgx driver through database/sql. It maps driver errors onto the
// store package's sentinel errors.
package postgres
