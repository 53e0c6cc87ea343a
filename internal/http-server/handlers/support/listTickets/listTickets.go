package listTickets

import (
	"log/slog"
	"net/http"

	"minderbook/internal/http-server/middleware/mwauth"
	"minderbook/internal/lib/api/pagination"
	"minderbook/internal/lib/api/response"
	"minderbook/internal/lib/logger/sl"
	"minderbook/internal/models"
	"minderbook/internal/storage/postgres"

	"github.com/go-chi/render"
)

type TicketsResponse struct {
	response.Response
	Tickets    []models.SupportTicket `json:"tickets"`
	Pagination pagination.Pagination  `json:"pagination"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=TicketLister
type TicketLister interface {
	ListTickets(f postgres.TicketFilter) ([]models.SupportTicket, int64, error)
}

func New(log *slog.Logger, tickets TicketLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.support.listTickets.New"

		log = log.With(slog.String("op", op))

		sess := mwauth.FromContext(r.Context())
		q := r.URL.Query()

		f := postgres.TicketFilter{
			Status:   q.Get("status"),
			Priority: q.Get("priority"),
			Category: q.Get("category"),
			Params:   pagination.ParseParams(q),
		}

		if sess.Role != models.RoleAdmin {
			f.UserID = sess.UserID
		}

		rows, total, err := tickets.ListTickets(f)
		if err != nil {
			log.Error("failed to list tickets", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to list tickets"))
			return
		}

		log.Info("tickets listed", slog.Int("count", len(rows)), slog.Int64("total", total))

		render.JSON(w, r, TicketsResponse{
			Response:   response.OK(),
			Tickets:    rows,
			Pagination: pagination.New(f.Params, total),
		})
	}
}
