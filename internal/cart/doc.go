// Package cart holds a shopper's cart in memory.
//
// Reduce is the only way cart state changes. Adding an item that is already
// in the cart increments its quantity; setting a quantity of zero or less
// removes it. Store serializes actions, emits notifications and memoizes
// the derived count and total.
package cart
