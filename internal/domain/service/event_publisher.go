package service

import (
	"context"
)

// Item event types published to the message queue.
const (
	ItemEventCreated = "item.created"
	ItemEventEdited  = "item.edited"
	ItemEventDeleted = "item.deleted"
)

// ItemEvent represents an item lifecycle event for async consumers
// (search indexers, moderation, analytics).
type ItemEvent struct {
	RequestID string `json:"request_id,omitempty"` // For distributed tracing
	EventType string `json:"event_type"`
	ItemID    string `json:"item_id"`
	UserID    string `json:"user_id"`
	Category  string `json:"category,omitempty"`
	Country   string `json:"country,omitempty"`
	City      string `json:"city,omitempty"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishItemEvent publishes an item lifecycle event for async processing
	PublishItemEvent(ctx context.Context, event *ItemEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
