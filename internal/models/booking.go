package models

import "time"

type BookingStatus string

const (
	BookingPending       BookingStatus = "PENDING"
	BookingConfirmed     BookingStatus = "CONFIRMED"
	BookingCancelled     BookingStatus = "CANCELLED"
	BookingLateCancelled BookingStatus = "LATE_CANCELLED"
	BookingCompleted     BookingStatus = "COMPLETED"
)

type Booking struct {
	ID                string        `json:"id"`
	ParentID          string        `json:"parent_id"`
	ChildminderID     string        `json:"childminder_id"`
	StartTime         time.Time     `json:"start_time"`
	EndTime           time.Time     `json:"end_time"`
	Status            BookingStatus `json:"status"`
	BookingType       string        `json:"booking_type"`
	IsEmergency       bool          `json:"is_emergency"`
	IsRecurring       bool          `json:"is_recurring"`
	RecurrencePattern string        `json:"recurrence_pattern,omitempty"`
	CancellationNote  string        `json:"cancellation_note,omitempty"`
	ChildIDs          []string      `json:"child_ids,omitempty"`
	ParentName        string        `json:"parent_name,omitempty"`
	ChildminderName   string        `json:"childminder_name,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}
