package models

import "time"

type Message struct {
	ID          string    `json:"id"`
	SenderID    string    `json:"sender_id"`
	RecipientID string    `json:"recipient_id"`
	Body        string    `json:"body"`
	SenderName  string    `json:"sender_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
