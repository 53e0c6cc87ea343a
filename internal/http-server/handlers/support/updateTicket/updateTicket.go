package updateTicket

import (
	"errors"
	"log/slog"
	"net/http"

	"minderbook/internal/lib/api/response"
	"minderbook/internal/lib/logger/sl"
	"minderbook/internal/models"
	"minderbook/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type UpdateRequest struct {
	Status     string `json:"status" validate:"omitempty,oneof=OPEN IN_PROGRESS RESOLVED CLOSED"`
	AssigneeID string `json:"assignee_id"`
}

type UpdateResponse struct {
	response.Response
	Ticket *models.SupportTicket `json:"ticket"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=TicketUpdater
type TicketUpdater interface {
	UpdateTicket(id string, status models.TicketStatus, assigneeID string) (*models.SupportTicket, error)
}

func New(log *slog.Logger, tickets TicketUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.support.updateTicket.New"

		log = log.With(slog.String("op", op))

		ticketID := chi.URLParam(r, "id")
		if ticketID == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("ticket id is required"))
			return
		}

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

		if req.Status == "" && req.AssigneeID == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("nothing to update"))
			return
		}

		updated, err := tickets.UpdateTicket(ticketID, models.TicketStatus(req.Status), req.AssigneeID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("ticket not found"))
				return
			}

			log.Error("failed to update ticket", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to update ticket"))
			return
		}

		log.Info("ticket updated", slog.String("ticket_id", ticketID))

		render.JSON(w, r, UpdateResponse{
			Response: response.OK(),
			Ticket:   updated,
		})
	}
}
