// Package notify fans domain events out to connected clients. Delivery is
// best-effort: a failed emit is logged and never reported to the caller.
package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID        string      `json:"id"`
	Name      string      `json:"event"`
	Message   string      `json:"message"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

func NewEvent(name, message string, data interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Name:      name,
		Message:   message,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

type Notifier interface {
	Emit(ctx context.Context, event Event)
}

type Nop struct{}

func (Nop) Emit(context.Context, Event) {}

// Multi emits every event to each notifier in order.
type Multi []Notifier

func (m Multi) Emit(ctx context.Context, event Event) {
	for _, n := range m {
		n.Emit(ctx, event)
	}
}
