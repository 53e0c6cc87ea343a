package postgres

import (
	"fmt"
)

// RecordActivity writes one audit-trail row. Callers treat failures as
// best-effort and only log them.
func (s *Storage) RecordActivity(userID, action, detail string) error {
	_, err := s.DB.Exec(`
		INSERT INTO activity_log (user_id, action, detail, created_at)
		VALUES ($1, $2, $3, NOW())`,
		userID, action, detail,
	)
	if err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}

	return nil
}
