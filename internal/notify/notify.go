package notify

import (
	"time"

	"github.com/google/uuid"
)

// Level is the severity of a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelError   Level = "error"
)

// Notification is one user-facing message.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// New creates a Notification stamped with the current time.
func New(level Level, message string) Notification {
	return Notification{
		ID:        uuid.New(),
		Level:     level,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
}

// Notifier accepts notifications. Implementations must not block.
type Notifier interface {
	Notify(n Notification)
}

// Handler processes notifications published by an Emitter.
type Handler interface {
	HandleNotification(n Notification) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(n Notification)

// Notify calls f(n).
func (f NotifierFunc) Notify(n Notification) { f(n) }

// Discard is a Notifier that drops everything.
var Discard Notifier = NotifierFunc(func(Notification) {})

// Success publishes a success notification to n.
func Success(n Notifier, message string) { n.Notify(New(LevelSuccess, message)) }

// Info publishes an info notification to n.
func Info(n Notifier, message string) { n.Notify(New(LevelInfo, message)) }

// Error publishes an error notification to n.
func Error(n Notifier, message string) { n.Notify(New(LevelError, message)) }
