package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"minderbook/internal/lib/api/pagination"
	"minderbook/internal/models"
	"minderbook/internal/storage"

	"github.com/google/uuid"
)

func (s *Storage) CreateTicket(t *models.SupportTicket, firstMessage string) (string, error) {
	tx, err := s.DB.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	id := uuid.NewString()

	_, err = tx.Exec(`
		INSERT INTO support_tickets (id, user_id, subject, category, priority, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())`,
		id, t.UserID, t.Subject, t.Category, t.Priority, models.TicketOpen,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create ticket: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO ticket_messages (id, ticket_id, author_id, body, created_at)
		VALUES ($1, $2, $3, $4, NOW())`,
		uuid.NewString(), id, t.UserID, firstMessage,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create ticket message: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit ticket: %w", err)
	}

	return id, nil
}

func (s *Storage) GetTicket(id string) (*models.SupportTicket, error) {
	query := `
		SELECT t.id, t.user_id, t.subject, t.category, t.priority, t.status,
		       COALESCE(t.assignee_id, ''), u.name, t.created_at, t.updated_at
		FROM support_tickets t
		JOIN users u ON u.id = t.user_id
		WHERE t.id = $1`

	var t models.SupportTicket
	err := s.DB.QueryRow(query, id).Scan(
		&t.ID, &t.UserID, &t.Subject, &t.Category, &t.Priority, &t.Status,
		&t.AssigneeID, &t.SubmitterName, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	rows, err := s.DB.Query(`
		SELECT id, ticket_id, author_id, body, created_at
		FROM ticket_messages
		WHERE ticket_id = $1
		ORDER BY created_at ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket messages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.TicketMessage
		if err = rows.Scan(&m.ID, &m.TicketID, &m.AuthorID, &m.Body, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ticket message: %w", err)
		}
		t.Messages = append(t.Messages, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ticket messages: %w", err)
	}

	return &t, nil
}

type TicketFilter struct {
	UserID   string
	Status   string
	Priority string
	Category string
	Params   pagination.Params
}

func (s *Storage) ListTickets(f TicketFilter) ([]models.SupportTicket, int64, error) {
	args := []any{}
	conds := []string{"1=1"}

	if f.UserID != "" {
		args = append(args, f.UserID)
		conds = append(conds, "t.user_id = $"+itoa(len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, "t.status = $"+itoa(len(args)))
	}
	if f.Priority != "" {
		args = append(args, f.Priority)
		conds = append(conds, "t.priority = $"+itoa(len(args)))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, "t.category = $"+itoa(len(args)))
	}

	whereSQL := "WHERE " + strings.Join(conds, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM support_tickets t ` + whereSQL
	if err := s.DB.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	args = append(args, f.Params.Limit, f.Params.Offset())
	query := `
		SELECT t.id, t.user_id, t.subject, t.category, t.priority, t.status,
		       COALESCE(t.assignee_id, ''), u.name, t.created_at, t.updated_at
		FROM support_tickets t
		JOIN users u ON u.id = t.user_id
		` + whereSQL + `
		ORDER BY t.updated_at DESC
		LIMIT $` + itoa(len(args)-1) + ` OFFSET $` + itoa(len(args))

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}
	defer rows.Close()

	var tickets []models.SupportTicket
	for rows.Next() {
		var t models.SupportTicket
		err = rows.Scan(
			&t.ID, &t.UserID, &t.Subject, &t.Category, &t.Priority, &t.Status,
			&t.AssigneeID, &t.SubmitterName, &t.CreatedAt, &t.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, t)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating tickets: %w", err)
	}

	return tickets, total, nil
}

// AddTicketMessage appends a reply. The first admin reply moves an OPEN
// ticket to IN_PROGRESS.
func (s *Storage) AddTicketMessage(ticketID, authorID, body string, authorIsAdmin bool) (*models.SupportTicket, error) {
	tx, err := s.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var status models.TicketStatus
	err = tx.QueryRow(`SELECT status FROM support_tickets WHERE id = $1`, ticketID).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to check ticket: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO ticket_messages (id, ticket_id, author_id, body, created_at)
		VALUES ($1, $2, $3, $4, NOW())`,
		uuid.NewString(), ticketID, authorID, body,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add ticket message: %w", err)
	}

	newStatus := status
	if authorIsAdmin && status == models.TicketOpen {
		newStatus = models.TicketInProgress
	}

	_, err = tx.Exec(`
		UPDATE support_tickets SET status = $1, updated_at = NOW() WHERE id = $2`,
		newStatus, ticketID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to touch ticket: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit ticket reply: %w", err)
	}

	return s.GetTicket(ticketID)
}

func (s *Storage) UpdateTicket(id string, status models.TicketStatus, assigneeID string) (*models.SupportTicket, error) {
	result, err := s.DB.Exec(`
		UPDATE support_tickets
		SET status = COALESCE(NULLIF($1, ''), status),
		    assignee_id = CASE WHEN $2 <> '' THEN $2 ELSE assignee_id END,
		    updated_at = NOW()
		WHERE id = $3`,
		string(status), assigneeID, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return nil, storage.ErrNotFound
	}

	return s.GetTicket(id)
}
