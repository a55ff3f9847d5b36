// Package store defines interfaces for data persistence operations.
//
// Every persisted record lives under a string key in a KeyValueStore, using
// the layout in keys.go. The repository interfaces (UserStore, SessionStore,
// OrderStore, WishlistSnapshotStore, SettingsStore) hide that layout from
// services; package store/kv implements them over any KeyValueStore.
package store
