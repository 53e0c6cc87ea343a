package createTicket

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"minderbook/internal/http-server/middleware/mwauth"
	"minderbook/internal/lib/api/response"
	"minderbook/internal/lib/logger/sl"
	"minderbook/internal/models"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type TicketRequest struct {
	Subject  string `json:"subject" validate:"required"`
	Category string `json:"category" validate:"required,oneof=booking billing account safety other"`
	Priority string `json:"priority" validate:"required,oneof=low medium high"`
	Message  string `json:"message" validate:"required"`
}

type TicketResponse struct {
	response.Response
	TicketID string `json:"ticket_id"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=TicketCreator
type TicketCreator interface {
	CreateTicket(t *models.SupportTicket, firstMessage string) (string, error)
	GetUser(id string) (*models.User, error)
	ListAdmins() ([]models.User, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=TicketNotifier
type TicketNotifier interface {
	TicketCreated(ctx context.Context, t *models.SupportTicket, submitter *models.User, admins []models.User)
}

func New(log *slog.Logger, tickets TicketCreator, notifier TicketNotifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.support.createTicket.New"

		log = log.With(slog.String("op", op))

		sess := mwauth.FromContext(r.Context())

		var req TicketRequest

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

		ticket := &models.SupportTicket{
			UserID:   sess.UserID,
			Subject:  req.Subject,
			Category: req.Category,
			Priority: req.Priority,
		}

		id, err := tickets.CreateTicket(ticket, req.Message)
		if err != nil {
			log.Error("failed to create ticket", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create ticket"))
			return
		}

		ticket.ID = id
		notifyCreated(r.Context(), log, tickets, notifier, ticket, sess.UserID)

		log.Info("ticket created", slog.String("ticket_id", id), slog.String("user_id", sess.UserID))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, TicketResponse{
			Response: response.OK(),
			TicketID: id,
		})
	}
}

func notifyCreated(ctx context.Context, log *slog.Logger, tickets TicketCreator, notifier TicketNotifier, t *models.SupportTicket, submitterID string) {
	submitter, err := tickets.GetUser(submitterID)
	if err != nil {
		log.Error("failed to look up submitter for notification", sl.Err(err))
		return
	}

	admins, err := tickets.ListAdmins()
	if err != nil {
		log.Error("failed to list admins for notification", sl.Err(err))
		admins = nil
	}

	notifier.TicketCreated(ctx, t, submitter, admins)
}
