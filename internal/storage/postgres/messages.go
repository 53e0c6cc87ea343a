package postgres

import (
	"fmt"

	"minderbook/internal/models"

	"github.com/google/uuid"
)

func (s *Storage) CreateMessage(m *models.Message) (string, error) {
	id := uuid.NewString()

	err := s.DB.QueryRow(`
		INSERT INTO messages (id, sender_id, recipient_id, body, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id`,
		id, m.SenderID, m.RecipientID, m.Body,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to create message: %w", err)
	}

	return id, nil
}

// ListConversation returns the message history between two users,
// oldest first.
func (s *Storage) ListConversation(userID, otherID string) ([]models.Message, error) {
	rows, err := s.DB.Query(`
		SELECT m.id, m.sender_id, m.recipient_id, m.body, u.name, m.created_at
		FROM messages m
		JOIN users u ON u.id = m.sender_id
		WHERE (m.sender_id = $1 AND m.recipient_id = $2)
		   OR (m.sender_id = $2 AND m.recipient_id = $1)
		ORDER BY m.created_at ASC`, userID, otherID)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversation: %w", err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var m models.Message
		if err = rows.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Body, &m.SenderName, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}

	return messages, rows.Err()
}
