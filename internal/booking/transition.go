package booking

import (
	"errors"
	"strings"
	"time"

	"minderbook/internal/models"
)

// LateCancelWindow is the boundary below which a parent cancellation is
// recorded as LATE_CANCELLED. The comparison is between instants, so
// daylight-saving wall-clock jumps do not move the boundary.
const LateCancelWindow = 24 * time.Hour

var (
	ErrNotAllowed        = errors.New("actor may not perform this transition")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrNoteRequired      = errors.New("cancellation note is required")
	ErrReasonRequired    = errors.New("admin reason is required")
)

// Action is a childminder- or parent-triggered transition request.
type Action string

const (
	ActionAccept   Action = "accept"
	ActionDecline  Action = "decline"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
)

// Respond resolves a childminder action against the booking's current
// status. Decline requires a cancellation note.
func Respond(b *models.Booking, action Action, note string) (models.BookingStatus, error) {
	switch action {
	case ActionAccept:
		if b.Status != models.BookingPending {
			return "", ErrIllegalTransition
		}
		return models.BookingConfirmed, nil
	case ActionDecline:
		if b.Status != models.BookingPending {
			return "", ErrIllegalTransition
		}
		if note == "" {
			return "", ErrNoteRequired
		}
		return models.BookingCancelled, nil
	case ActionComplete:
		if b.Status != models.BookingConfirmed {
			return "", ErrIllegalTransition
		}
		return models.BookingCompleted, nil
	default:
		return "", ErrIllegalTransition
	}
}

// Cancel resolves a parent cancellation. Inside the late-cancel window
// the booking is marked LATE_CANCELLED instead of CANCELLED.
func Cancel(b *models.Booking, now time.Time) (models.BookingStatus, error) {
	if b.Status != models.BookingPending && b.Status != models.BookingConfirmed {
		return "", ErrIllegalTransition
	}

	if b.StartTime.Sub(now) < LateCancelWindow {
		return models.BookingLateCancelled, nil
	}

	return models.BookingCancelled, nil
}

// Override validates an admin status override. Admins may set any
// status but must always supply a reason for the audit trail.
func Override(status models.BookingStatus, adminReason string) error {
	if strings.TrimSpace(adminReason) == "" {
		return ErrReasonRequired
	}

	switch status {
	case models.BookingPending, models.BookingConfirmed, models.BookingCancelled,
		models.BookingLateCancelled, models.BookingCompleted:
		return nil
	default:
		return ErrIllegalTransition
	}
}
