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

func (s *Storage) CreateDocument(d *models.Document) (string, error) {
	id := uuid.NewString()

	err := s.DB.QueryRow(`
		INSERT INTO documents (id, user_id, name, type, status, file_url, file_size, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id`,
		id, d.UserID, d.Name, d.Type, models.DocumentPending, d.FileURL, d.FileSize,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to create document: %w", err)
	}

	return id, nil
}

func (s *Storage) GetDocument(id string) (*models.Document, error) {
	query := `
		SELECT d.id, d.user_id, d.name, d.type, d.status, d.file_url, d.file_size,
		       COALESCE(d.reviewer_id, ''), COALESCE(d.review_note, ''),
		       u.name, d.created_at, d.reviewed_at
		FROM documents d
		JOIN users u ON u.id = d.user_id
		WHERE d.id = $1`

	var d models.Document
	err := s.DB.QueryRow(query, id).Scan(
		&d.ID, &d.UserID, &d.Name, &d.Type, &d.Status, &d.FileURL, &d.FileSize,
		&d.ReviewerID, &d.ReviewNote, &d.OwnerName, &d.CreatedAt, &d.ReviewedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return &d, nil
}

type DocumentFilter struct {
	UserID string
	Status string
	Type   string
	Params pagination.Params
}

func (s *Storage) ListDocuments(f DocumentFilter) ([]models.Document, int64, error) {
	args := []any{}
	conds := []string{"1=1"}

	if f.UserID != "" {
		args = append(args, f.UserID)
		conds = append(conds, "d.user_id = $"+itoa(len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, "d.status = $"+itoa(len(args)))
	}
	if f.Type != "" {
		args = append(args, f.Type)
		conds = append(conds, "d.type = $"+itoa(len(args)))
	}

	whereSQL := "WHERE " + strings.Join(conds, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM documents d ` + whereSQL
	if err := s.DB.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count documents: %w", err)
	}

	args = append(args, f.Params.Limit, f.Params.Offset())
	query := `
		SELECT d.id, d.user_id, d.name, d.type, d.status, d.file_url, d.file_size,
		       COALESCE(d.reviewer_id, ''), COALESCE(d.review_note, ''),
		       u.name, d.created_at, d.reviewed_at
		FROM documents d
		JOIN users u ON u.id = d.user_id
		` + whereSQL + `
		ORDER BY d.created_at DESC
		LIMIT $` + itoa(len(args)-1) + ` OFFSET $` + itoa(len(args))

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var d models.Document
		err = rows.Scan(
			&d.ID, &d.UserID, &d.Name, &d.Type, &d.Status, &d.FileURL, &d.FileSize,
			&d.ReviewerID, &d.ReviewNote, &d.OwnerName, &d.CreatedAt, &d.ReviewedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, d)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating documents: %w", err)
	}

	return docs, total, nil
}

func (s *Storage) ReviewDocument(id string, status models.DocumentStatus, reviewerID, note string) (*models.Document, error) {
	result, err := s.DB.Exec(`
		UPDATE documents
		SET status = $1, reviewer_id = $2, review_note = $3, reviewed_at = NOW()
		WHERE id = $4`,
		status, reviewerID, note, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to review document: %w", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return nil, storage.ErrNotFound
	}

	return s.GetDocument(id)
}
