// Package api exposes the storefront over HTTP: accounts, the catalog, and
// the caller's cart, wishlist and orders. Handlers translate requests into
// service calls and map service errors to status codes and safe messages.
package api
