package events

import (
	"context"
	"time"
)

const (
	OrderStreamKey = "order_events"
	OrderGroup     = "order_event_group"
)

type Type string

const (
	OrderPlaced     Type = "order_placed"
	OrderEscalated  Type = "order_escalated"
	OrderCancelled  Type = "order_cancelled"
	ReturnRequested Type = "return_requested"
	ReturnMarked    Type = "order_return_marked"
)

type OrderEvent struct {
	Type      Type      `json:"event_type"`
	OrderID   string    `json:"order_id"`
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

type Publisher interface {
	Publish(ctx context.Context, event OrderEvent) error
}

// Nop discards events. Used when no Redis is configured.
type Nop struct{}

func (Nop) Publish(context.Context, OrderEvent) error { return nil }
