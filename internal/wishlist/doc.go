// Package wishlist holds a user's saved fragrances in memory.
//
// State changes only through Reduce, a pure function of (State, Action).
// Store wraps Reduce with a mutex, user-facing notifications and a memoized
// View that is rebuilt only when the item slice is replaced. Stores never
// write to durable storage; callers persist Items() themselves.
package wishlist
