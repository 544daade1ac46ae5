package dispatch

import (
	"context"
	"time"
)

// Effect-provider contracts. Each provider performs one kind of real-world
// side effect; the dispatcher owns validation and result shaping, providers
// own the effect itself.

// CalendarProvider creates a calendar entry and returns its identifier.
// An empty identifier with a nil error means the provider accepted the call
// but produced no entry (e.g., no calendar account configured).
type CalendarProvider interface {
	CreateCalendarEntry(ctx context.Context, title string, start, end time.Time, location, description string) (string, error)
}

// NavigationProvider starts navigation toward a destination.
type NavigationProvider interface {
	StartNavigation(ctx context.Context, location string) (bool, error)
}

// TodoProvider records a todo/reminder.
type TodoProvider interface {
	CreateTodo(ctx context.Context, title, content string) (bool, error)
}

// ClipboardProvider writes text to the system clipboard.
type ClipboardProvider interface {
	WriteClipboard(text string) error
}
