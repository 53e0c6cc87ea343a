package respondBooking

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"minderbook/internal/booking"
	"minderbook/internal/http-server/middleware/mwauth"
	"minderbook/internal/lib/api/response"
	"minderbook/internal/lib/logger/sl"
	"minderbook/internal/models"
	"minderbook/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type RespondRequest struct {
	Action string `json:"action" validate:"required,oneof=accept decline complete"`
	Note   string `json:"note"`
}

type RespondResponse struct {
	response.Response
	Booking *models.Booking `json:"booking"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingResponder
type BookingResponder interface {
	GetBooking(id string) (*models.Booking, error)
	UpdateBookingStatus(id string, status models.BookingStatus, cancellationNote string) (*models.Booking, error)
	GetUser(id string) (*models.User, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=StatusNotifier
type StatusNotifier interface {
	BookingStatusChanged(ctx context.Context, b *models.Booking, old models.BookingStatus, parent, minder *models.User)
}

func New(log *slog.Logger, bookings BookingResponder, notifier StatusNotifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.respondBooking.New"

		log = log.With(slog.String("op", op))

		sess := mwauth.FromContext(r.Context())

		bookingID := chi.URLParam(r, "id")
		if bookingID == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("booking id is required"))
			return
		}

		log = log.With(slog.String("booking_id", bookingID))

		var req RespondRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				log.Error("invalid request", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
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
			render.JSON(w, r, response.Error("failed to respond to booking"))
			return
		}

		if b.ChildminderID != sess.UserID {
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("booking belongs to another childminder"))
			return
		}

		oldStatus := b.Status

		newStatus, err := booking.Respond(b, booking.Action(req.Action), req.Note)
		if err != nil {
			switch {
			case errors.Is(err, booking.ErrNoteRequired):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("cancellation note is required to decline"))
			default:
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("booking is not in a state that allows this action"))
			}
			return
		}

		updated, err := bookings.UpdateBookingStatus(bookingID, newStatus, req.Note)
		if err != nil {
			log.Error("failed to update booking status", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to respond to booking"))
			return
		}

		if parent, perr := bookings.GetUser(updated.ParentID); perr != nil {
			log.Error("failed to look up parent for notification", sl.Err(perr))
		} else if minder, merr := bookings.GetUser(updated.ChildminderID); merr != nil {
			log.Error("failed to look up childminder for notification", sl.Err(merr))
		} else {
			notifier.BookingStatusChanged(r.Context(), updated, oldStatus, parent, minder)
		}

		log.Info("booking responded",
			slog.String("action", req.Action),
			slog.String("new_status", string(newStatus)),
		)

		render.JSON(w, r, RespondResponse{
			Response: response.OK(),
			Booking:  updated,
		})
	}
}
