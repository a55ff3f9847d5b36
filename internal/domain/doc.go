// Package domain contains the core business entities of the storefront:
// catalog line items, cart entries, users, orders and account settings.
// It is independent of storage and delivery mechanisms.
package domain
