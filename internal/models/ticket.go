package models

import "time"

type TicketStatus string

const (
	TicketOpen       TicketStatus = "OPEN"
	TicketInProgress TicketStatus = "IN_PROGRESS"
	TicketResolved   TicketStatus = "RESOLVED"
	TicketClosed     TicketStatus = "CLOSED"
)

type SupportTicket struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	Subject       string          `json:"subject"`
	Category      string          `json:"category"`
	Priority      string          `json:"priority"`
	Status        TicketStatus    `json:"status"`
	AssigneeID    string          `json:"assignee_id,omitempty"`
	SubmitterName string          `json:"submitter_name,omitempty"`
	Messages      []TicketMessage `json:"messages,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type TicketMessage struct {
	ID        string    `json:"id"`
	TicketID  string    `json:"ticket_id"`
	AuthorID  string    `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
