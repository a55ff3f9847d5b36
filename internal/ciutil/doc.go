// Package ciutil resolves test infrastructure settings, such as the
// Postgres URL used by integration tests, from the environment of local
// runs and CI providers.
package ciutil
