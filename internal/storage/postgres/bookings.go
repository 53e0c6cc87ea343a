package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"minderbook/internal/lib/api/pagination"
	"minderbook/internal/models"
	"minderbook/internal/storage"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

func (s *Storage) CreateBooking(b *models.Booking) (string, error) {
	tx, err := s.DB.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	id := uuid.NewString()

	insertQuery := `
		INSERT INTO bookings (
			id, parent_id, childminder_id, start_time, end_time, status,
			booking_type, is_emergency, is_recurring, recurrence_pattern,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())`

	_, err = tx.Exec(insertQuery,
		id, b.ParentID, b.ChildminderID, b.StartTime, b.EndTime,
		models.BookingPending, b.BookingType, b.IsEmergency,
		b.IsRecurring, b.RecurrencePattern,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create booking: %w", err)
	}

	for _, childID := range b.ChildIDs {
		_, err = tx.Exec(
			`INSERT INTO booking_children (booking_id, child_id) VALUES ($1, $2)`,
			id, childID,
		)
		if err != nil {
			return "", fmt.Errorf("failed to attach child to booking: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit booking: %w", err)
	}

	return id, nil
}

func (s *Storage) GetBooking(id string) (*models.Booking, error) {
	query := `
		SELECT b.id, b.parent_id, b.childminder_id, b.start_time, b.end_time,
		       b.status, b.booking_type, b.is_emergency, b.is_recurring,
		       COALESCE(b.recurrence_pattern, ''), COALESCE(b.cancellation_note, ''),
		       p.name, c.name, b.created_at, b.updated_at,
		       COALESCE(ARRAY_AGG(bc.child_id) FILTER (WHERE bc.child_id IS NOT NULL), '{}')
		FROM bookings b
		JOIN users p ON p.id = b.parent_id
		JOIN users c ON c.id = b.childminder_id
		LEFT JOIN booking_children bc ON bc.booking_id = b.id
		WHERE b.id = $1
		GROUP BY b.id, p.name, c.name`

	var b models.Booking
	err := s.DB.QueryRow(query, id).Scan(
		&b.ID, &b.ParentID, &b.ChildminderID, &b.StartTime, &b.EndTime,
		&b.Status, &b.BookingType, &b.IsEmergency, &b.IsRecurring,
		&b.RecurrencePattern, &b.CancellationNote,
		&b.ParentName, &b.ChildminderName, &b.CreatedAt, &b.UpdatedAt,
		pq.Array(&b.ChildIDs),
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return &b, nil
}

type BookingFilter struct {
	ParentID      string
	ChildminderID string
	Status        string
	From          *time.Time
	To            *time.Time
	Search        string
	Sort          string // start_time|created_at|status
	Order         string // asc|desc
	Params        pagination.Params
}

func (s *Storage) ListBookings(f BookingFilter) ([]models.Booking, int64, error) {
	args := []any{}
	conds := []string{"1=1"}

	if f.ParentID != "" {
		args = append(args, f.ParentID)
		conds = append(conds, "b.parent_id = $"+itoa(len(args)))
	}
	if f.ChildminderID != "" {
		args = append(args, f.ChildminderID)
		conds = append(conds, "b.childminder_id = $"+itoa(len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, "b.status = $"+itoa(len(args)))
	}
	if f.From != nil {
		args = append(args, *f.From)
		conds = append(conds, "b.start_time >= $"+itoa(len(args)))
	}
	if f.To != nil {
		args = append(args, *f.To)
		conds = append(conds, "b.start_time <= $"+itoa(len(args)))
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		p := "%" + q + "%"
		args = append(args, p, p)
		conds = append(conds, "(p.name ILIKE $"+itoa(len(args)-1)+" OR c.name ILIKE $"+itoa(len(args))+")")
	}

	whereSQL := "WHERE " + strings.Join(conds, " AND ")

	var total int64
	countQuery := `
		SELECT COUNT(*)
		FROM bookings b
		JOIN users p ON p.id = b.parent_id
		JOIN users c ON c.id = b.childminder_id ` + whereSQL
	if err := s.DB.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	sortCol := sanitizeSort(f.Sort, map[string]bool{"start_time": true, "created_at": true, "status": true}, "start_time")
	sortOrd := sanitizeOrder(f.Order, "desc")

	args = append(args, f.Params.Limit, f.Params.Offset())
	query := `
		SELECT b.id, b.parent_id, b.childminder_id, b.start_time, b.end_time,
		       b.status, b.booking_type, b.is_emergency, b.is_recurring,
		       COALESCE(b.recurrence_pattern, ''), COALESCE(b.cancellation_note, ''),
		       p.name, c.name, b.created_at, b.updated_at
		FROM bookings b
		JOIN users p ON p.id = b.parent_id
		JOIN users c ON c.id = b.childminder_id
		` + whereSQL + `
		ORDER BY b.` + sortCol + ` ` + sortOrd + `
		LIMIT $` + itoa(len(args)-1) + ` OFFSET $` + itoa(len(args))

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		var b models.Booking
		err = rows.Scan(
			&b.ID, &b.ParentID, &b.ChildminderID, &b.StartTime, &b.EndTime,
			&b.Status, &b.BookingType, &b.IsEmergency, &b.IsRecurring,
			&b.RecurrencePattern, &b.CancellationNote,
			&b.ParentName, &b.ChildminderName, &b.CreatedAt, &b.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating bookings: %w", err)
	}

	return bookings, total, nil
}

func (s *Storage) UpdateBookingStatus(id string, status models.BookingStatus, cancellationNote string) (*models.Booking, error) {
	query := `
		UPDATE bookings
		SET status = $1,
		    cancellation_note = CASE WHEN $2 <> '' THEN $2 ELSE cancellation_note END,
		    updated_at = NOW()
		WHERE id = $3`

	result, err := s.DB.Exec(query, status, cancellationNote, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return nil, storage.ErrNotFound
	}

	return s.GetBooking(id)
}

// CompleteElapsedBookings marks confirmed bookings whose end time has
// passed as completed. Runs from the background sweep in main.
func (s *Storage) CompleteElapsedBookings() (int64, error) {
	result, err := s.DB.Exec(`
		UPDATE bookings
		SET status = $1, updated_at = NOW()
		WHERE status = $2 AND end_time < NOW()`,
		models.BookingCompleted, models.BookingConfirmed,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to complete elapsed bookings: %w", err)
	}

	n, _ := result.RowsAffected()
	return n, nil
}

func sanitizeSort(sort string, allowed map[string]bool, def string) string {
	if allowed[sort] {
		return sort
	}
	return def
}

func sanitizeOrder(order, def string) string {
	if order == "asc" || order == "desc" {
		return order
	}
	return def
}
