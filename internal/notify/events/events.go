package events

import (
	"context"
	"time"

	"minderbook/internal/models"
)

// BookingStatusChanged is published after every persisted booking
// transition so downstream consumers (SMS relay, analytics) can react.
type BookingStatusChanged struct {
	BookingID     string               `json:"booking_id"`
	ParentID      string               `json:"parent_id"`
	ChildminderID string               `json:"childminder_id"`
	OldStatus     models.BookingStatus `json:"old_status"`
	NewStatus     models.BookingStatus `json:"new_status"`
	OccurredAt    time.Time            `json:"occurred_at"`
}

type Publisher interface {
	PublishBookingStatusChanged(ctx context.Context, evt BookingStatusChanged) error
	Close() error
}

// NopPublisher is used when event publishing is disabled in config.
type NopPublisher struct{}

func (NopPublisher) PublishBookingStatusChanged(_ context.Context, _ BookingStatusChanged) error {
	return nil
}

func (NopPublisher) Close() error { return nil }
