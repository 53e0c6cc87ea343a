package cancelBooking

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"minderbook/internal/booking"
	"minderbook/internal/http-server/middleware/mwauth"
	"minderbook/internal/lib/api/response"
	"minderbook/internal/lib/logger/sl"
	"minderbook/internal/models"
	"minderbook/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type CancelRequest struct {
	Note string `json:"note"`
}

type CancelResponse struct {
	response.Response
	Booking *models.Booking `json:"booking"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingCanceller
type BookingCanceller interface {
	GetBooking(id string) (*models.Booking, error)
	UpdateBookingStatus(id string, status models.BookingStatus, cancellationNote string) (*models.Booking, error)
	GetUser(id string) (*models.User, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=StatusNotifier
type StatusNotifier interface {
	BookingStatusChanged(ctx context.Context, b *models.Booking, old models.BookingStatus, parent, minder *models.User)
}

func New(log *slog.Logger, bookings BookingCanceller, notifier StatusNotifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.cancelBooking.New"

		log = log.With(slog.String("op", op))

		sess := mwauth.FromContext(r.Context())

		bookingID := chi.URLParam(r, "id")
		if bookingID == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("booking id is required"))
			return
		}

		log = log.With(slog.String("booking_id", bookingID))

		var req CancelRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		b, err := bookings.GetBooking(bookingID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("booking not found"))
				return
			}

			log.Error("failed to get booking", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to cancel booking"))
			return
		}

		if b.ParentID != sess.UserID {
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("booking belongs to another parent"))
			return
		}

		oldStatus := b.Status

		newStatus, err := booking.Cancel(b, time.Now())
		if err != nil {
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error("booking can no longer be cancelled"))
			return
		}

		updated, err := bookings.UpdateBookingStatus(bookingID, newStatus, req.Note)
		if err != nil {
			log.Error("failed to update booking status", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to cancel booking"))
			return
		}

		notifyParties(r.Context(), log, bookings, notifier, updated, oldStatus)

		log.Info("booking cancelled", slog.String("new_status", string(newStatus)))

		render.JSON(w, r, CancelResponse{
			Response: response.OK(),
			Booking:  updated,
		})
	}
}

// notifyParties resolves both users and fires the best-effort emails.
// Lookup failures only suppress the notification, never the response.
func notifyParties(ctx context.Context, log *slog.Logger, bookings BookingCanceller, notifier StatusNotifier, b *models.Booking, old models.BookingStatus) {
	parent, err := bookings.GetUser(b.ParentID)
	if err != nil {
		log.Error("failed to look up parent for notification", sl.Err(err))
		return
	}

	minder, err := bookings.GetUser(b.ChildminderID)
	if err != nil {
		log.Error("failed to look up childminder for notification", sl.Err(err))
		return
	}

	notifier.BookingStatusChanged(ctx, b, old, parent, minder)
}
