package notify

import (
	"log/slog"
	"sync"
)

// Emitter fans notifications out to registered handlers.
type Emitter struct {
	mu       sync.RWMutex
	handlers map[int]Handler
	nextID   int
	logger   *slog.Logger
}

var _ Notifier = (*Emitter)(nil)

// NewEmitter creates an Emitter with no handlers.
func NewEmitter(logger *slog.Logger) *Emitter {
	return &Emitter{
		handlers: make(map[int]Handler),
		logger:   logger.With("component", "notify_emitter"),
	}
}

// RegisterHandler adds a handler for the lifetime of the emitter.
func (e *Emitter) RegisterHandler(handler Handler) {
	_ = e.Subscribe(handler)
}

// Subscribe adds a handler and returns a function that removes it.
// The returned function is safe to call more than once.
func (e *Emitter) Subscribe(handler Handler) (unsubscribe func()) {
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.handlers[id] = handler
	count := len(e.handlers)
	e.mu.Unlock()

	e.logger.Debug("registered notification handler", "handler_count", count)

	return func() {
		e.mu.Lock()
		delete(e.handlers, id)
		e.mu.Unlock()
	}
}

// Notify delivers n to every registered handler. A failing handler is
// logged and does not stop delivery to the others.
func (e *Emitter) Notify(n Notification) {
	e.mu.RLock()
	handlers := make([]Handler, 0, len(e.handlers))
	for _, h := range e.handlers {
		handlers = append(handlers, h)
	}
	e.mu.RUnlock()

	if len(handlers) == 0 {
		e.logger.Debug("no handlers registered for notification",
			"notification_id", n.ID,
			"notification_level", n.Level)
		return
	}

	for i, handler := range handlers {
		if err := handler.HandleNotification(n); err != nil {
			e.logger.Error("handler failed to process notification",
				"error", err,
				"handler_index", i,
				"notification_id", n.ID)
		}
	}
}
