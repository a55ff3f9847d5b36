// Package migrations embeds the schema migrations for the SQL key-value
// backends and applies them with goose. Postgres and SQLite each have their
// own migration directory because their DDL differs.
package migrations
