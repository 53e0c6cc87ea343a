package listBookings

import (
	"log/slog"
	"net/http"
	"time"

	"minderbook/internal/http-server/middleware/mwauth"
	"minderbook/internal/lib/api/pagination"
	"minderbook/internal/lib/api/response"
	"minderbook/internal/lib/logger/sl"
	"minderbook/internal/models"
	"minderbook/internal/storage/postgres"

	"github.com/go-chi/render"
)

type BookingsResponse struct {
	response.Response
	Bookings   []models.Booking      `json:"bookings"`
	Pagination pagination.Pagination `json:"pagination"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingLister
type BookingLister interface {
	ListBookings(f postgres.BookingFilter) ([]models.Booking, int64, error)
}

// New serves the role-scoped booking list: parents and childminders see
// only their own rows, admins see everything and may filter by party.
func New(log *slog.Logger, bookings BookingLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.listBookings.New"

		log = log.With(slog.String("op", op))

		sess := mwauth.FromContext(r.Context())
		q := r.URL.Query()

		f := postgres.BookingFilter{
			Status: q.Get("status"),
			Search: q.Get("search"),
			Sort:   q.Get("sort"),
			Order:  q.Get("order"),
			Params: pagination.ParseParams(q),
		}

		if from, err := time.Parse(time.RFC3339, q.Get("from")); err == nil {
			f.From = &from
		}
		if to, err := time.Parse(time.RFC3339, q.Get("to")); err == nil {
			f.To = &to
		}

		switch sess.Role {
		case models.RoleParent:
			f.ParentID = sess.UserID
		case models.RoleChildminder:
			f.ChildminderID = sess.UserID
		case models.RoleAdmin:
			f.ParentID = q.Get("parent_id")
			f.ChildminderID = q.Get("childminder_id")
		}

		rows, total, err := bookings.ListBookings(f)
		if err != nil {
			log.Error("failed to list bookings", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to list bookings"))
			return
		}

		log.Info("bookings listed", slog.Int("count", len(rows)), slog.Int64("total", total))

		render.JSON(w, r, BookingsResponse{
			Response:   response.OK(),
			Bookings:   rows,
			Pagination: pagination.New(f.Params, total),
		})
	}
}
