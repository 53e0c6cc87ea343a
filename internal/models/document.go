package models

import "time"

type DocumentStatus string

const (
	DocumentPending  DocumentStatus = "PENDING"
	DocumentApproved DocumentStatus = "APPROVED"
	DocumentRejected DocumentStatus = "REJECTED"
)

type Document struct {
	ID         string         `json:"id"`
	UserID     string         `json:"user_id"`
	Name       string         `json:"name"`
	Type       string         `json:"type"`
	Status     DocumentStatus `json:"status"`
	FileURL    string         `json:"file_url"`
	FileSize   int64          `json:"file_size"`
	ReviewerID string         `json:"reviewer_id,omitempty"`
	ReviewNote string         `json:"review_note,omitempty"`
	OwnerName  string         `json:"owner_name,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	ReviewedAt *time.Time     `json:"reviewed_at,omitempty"`
}
