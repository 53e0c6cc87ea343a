package updateBookingStatus

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

type UpdateRequest struct {
	Status           string `json:"status" validate:"required"`
	AdminReason      string `json:"admin_reason" validate:"required"`
	CancellationNote string `json:"cancellation_note"`
}

type UpdateResponse struct {
	response.Response
	Booking *models.Booking `json:"booking"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingOverrider
type BookingOverrider interface {
	GetBooking(id string) (*models.Booking, error)
	UpdateBookingStatus(id string, status models.BookingStatus, cancellationNote string) (*models.Booking, error)
	GetUser(id string) (*models.User, error)
	RecordActivity(userID, action, detail string) error
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=StatusNotifier
type StatusNotifier interface {
	BookingStatusChanged(ctx context.Context, b *models.Booking, old models.BookingStatus, parent, minder *models.User)
}

// New is the admin override form target: any status may be set, but an
// audit reason is always mandatory.
func New(log *slog.Logger, bookings BookingOverrider, notifier StatusNotifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.updateBookingStatus.New"

		log = log.With(slog.String("op", op))

		sess := mwauth.FromContext(r.Context())

		bookingID := chi.URLParam(r, "id")
		if bookingID == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("booking id is required"))
			return
		}

		log = log.With(slog.String("booking_id", bookingID))

		var req UpdateRequest

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

		newStatus := models.BookingStatus(req.Status)
		if err = booking.Override(newStatus, req.AdminReason); err != nil {
			if errors.Is(err, booking.ErrReasonRequired) {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("admin reason is required"))
				return
			}

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("unknown booking status"))
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
			render.JSON(w, r, response.Error("failed to update booking"))
			return
		}

		oldStatus := b.Status

		updated, err := bookings.UpdateBookingStatus(bookingID, newStatus, req.CancellationNote)
		if err != nil {
			log.Error("failed to update booking status", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to update booking"))
			return
		}

		if err = bookings.RecordActivity(sess.UserID, "admin_booking_override", req.AdminReason); err != nil {
			log.Error("failed to record admin override", sl.Err(err))
		}

		if parent, perr := bookings.GetUser(updated.ParentID); perr != nil {
			log.Error("failed to look up parent for notification", sl.Err(perr))
		} else if minder, merr := bookings.GetUser(updated.ChildminderID); merr != nil {
			log.Error("failed to look up childminder for notification", sl.Err(merr))
		} else {
			notifier.BookingStatusChanged(r.Context(), updated, oldStatus, parent, minder)
		}

		log.Info("booking status overridden",
			slog.String("old_status", string(oldStatus)),
			slog.String("new_status", string(newStatus)),
			slog.String("admin_id", sess.UserID),
		)

		render.JSON(w, r, UpdateResponse{
			Response: response.OK(),
			Booking:  updated,
		})
	}
}
