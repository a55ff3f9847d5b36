// Package notify carries user-facing notifications ("toasts") from the cart
// and wishlist stores to whoever presents them.
//
// Stores publish through the Notifier interface and never know who listens.
// An Emitter fans notifications out to registered Handlers; a Recorder
// buffers them so an HTTP response can return the notifications produced
// while serving a request.
package notify
