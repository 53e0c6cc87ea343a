package models

import "time"

// ActivityEntry is the audit trail row written after every successful
// notification send and moderation action.
type ActivityEntry struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}
