package createBooking

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"minderbook/internal/http-server/middleware/mwauth"
	"minderbook/internal/lib/api/response"
	"minderbook/internal/lib/logger/sl"
	"minderbook/internal/models"
	"minderbook/internal/storage"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type BookingRequest struct {
	ChildminderID     string    `json:"childminder_id" validate:"required"`
	StartTime         time.Time `json:"start_time" validate:"required"`
	EndTime           time.Time `json:"end_time" validate:"required"`
	BookingType       string    `json:"booking_type" validate:"required"`
	IsEmergency       bool      `json:"is_emergency"`
	IsRecurring       bool      `json:"is_recurring"`
	RecurrencePattern string    `json:"recurrence_pattern"`
	ChildIDs          []string  `json:"child_ids"`
}

type BookingResponse struct {
	response.Response
	Booking *models.Booking `json:"booking"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingCreator
type BookingCreator interface {
	GetUser(id string) (*models.User, error)
	CreateBooking(b *models.Booking) (string, error)
	GetBooking(id string) (*models.Booking, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=StatusNotifier
type StatusNotifier interface {
	BookingStatusChanged(ctx context.Context, b *models.Booking, old models.BookingStatus, parent, minder *models.User)
}

func New(log *slog.Logger, bookings BookingCreator, notifier StatusNotifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.createBooking.New"

		log = log.With(slog.String("op", op))

		sess := mwauth.FromContext(r.Context())

		var req BookingRequest

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

		if !req.EndTime.After(req.StartTime) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("end time must be after start time"))
			return
		}

		if req.IsRecurring && req.RecurrencePattern == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("recurrence pattern is required for recurring bookings"))
			return
		}

		minder, err := bookings.GetUser(req.ChildminderID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("childminder not found"))
				return
			}

			log.Error("failed to look up childminder", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create booking"))
			return
		}

		if minder.Role != models.RoleChildminder {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("selected user is not a childminder"))
			return
		}

		b := &models.Booking{
			ParentID:          sess.UserID,
			ChildminderID:     req.ChildminderID,
			StartTime:         req.StartTime,
			EndTime:           req.EndTime,
			BookingType:       req.BookingType,
			IsEmergency:       req.IsEmergency,
			IsRecurring:       req.IsRecurring,
			RecurrencePattern: req.RecurrencePattern,
			ChildIDs:          req.ChildIDs,
		}

		id, err := bookings.CreateBooking(b)
		if err != nil {
			log.Error("failed to create booking", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create booking"))
			return
		}

		created, err := bookings.GetBooking(id)
		if err != nil {
			log.Error("failed to load created booking", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create booking"))
			return
		}

		parent, err := bookings.GetUser(sess.UserID)
		if err != nil {
			log.Error("failed to look up parent", sl.Err(err))
		} else {
			notifier.BookingStatusChanged(r.Context(), created, "", parent, minder)
		}

		log.Info("booking created",
			slog.String("booking_id", id),
			slog.String("parent_id", sess.UserID),
			slog.String("childminder_id", req.ChildminderID),
		)

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, BookingResponse{
			Response: response.OK(),
			Booking:  created,
		})
	}
}
