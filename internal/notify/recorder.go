package notify

import (
	"log/slog"
	"sync"
)

// Recorder buffers notifications until they are drained.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

var (
	_ Handler  = (*Recorder)(nil)
	_ Notifier = (*Recorder)(nil)
)

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// HandleNotification records n.
func (r *Recorder) HandleNotification(n Notification) error {
	r.Notify(n)
	return nil
}

// Notify records n.
func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	r.items = append(r.items, n)
	r.mu.Unlock()
}

// Notifications returns a copy of everything recorded so far.
func (r *Recorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.items))
	copy(out, r.items)
	return out
}

// Drain returns everything recorded and empties the buffer.
func (r *Recorder) Drain() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.items
	r.items = nil
	if out == nil {
		out = []Notification{}
	}
	return out
}

// Messages returns the recorded messages in order.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.items))
	for i, n := range r.items {
		out[i] = n.Message
	}
	return out
}

// LogHandler writes notifications to a logger at debug level.
type LogHandler struct {
	Logger *slog.Logger
}

// HandleNotification logs n.
func (h LogHandler) HandleNotification(n Notification) error {
	h.Logger.Debug("notification",
		"notification_id", n.ID,
		"notification_level", n.Level,
		"message", n.Message)
	return nil
}
