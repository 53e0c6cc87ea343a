package postgres

import (
	"fmt"

	"minderbook/internal/models"

	"github.com/google/uuid"
)

func (s *Storage) CreateChild(c *models.Child) (string, error) {
	id := uuid.NewString()

	err := s.DB.QueryRow(`
		INSERT INTO children (id, parent_id, name, age, allergies, special_needs)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		id, c.ParentID, c.Name, c.Age, c.Allergies, c.SpecialNeeds,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to create child: %w", err)
	}

	return id, nil
}

func (s *Storage) ListChildren(parentID string) ([]models.Child, error) {
	rows, err := s.DB.Query(`
		SELECT id, parent_id, name, age, COALESCE(allergies, ''), COALESCE(special_needs, '')
		FROM children
		WHERE parent_id = $1
		ORDER BY name`, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list children: %w", err)
	}
	defer rows.Close()

	var children []models.Child
	for rows.Next() {
		var c models.Child
		if err = rows.Scan(&c.ID, &c.ParentID, &c.Name, &c.Age, &c.Allergies, &c.SpecialNeeds); err != nil {
			return nil, fmt.Errorf("failed to scan child: %w", err)
		}
		children = append(children, c)
	}

	return children, rows.Err()
}
