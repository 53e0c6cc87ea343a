package replyTicket

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"minderbook/internal/http-server/middleware/mwauth"
	"minderbook/internal/lib/api/response"
	"minderbook/internal/lib/logger/sl"
	"minderbook/internal/models"
	"minderbook/internal/storage"
	"minderbook/internal/storage/redisstore"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type ReplyRequest struct {
	Body string `json:"body" validate:"required"`
}

type ReplyResponse struct {
	response.Response
	Ticket *models.SupportTicket `json:"ticket"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=TicketReplier
type TicketReplier interface {
	GetTicket(id string) (*models.SupportTicket, error)
	AddTicketMessage(ticketID, authorID, body string, authorIsAdmin bool) (*models.SupportTicket, error)
	GetUser(id string) (*models.User, error)
	ListAdmins() ([]models.User, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ReplyNotifier
type ReplyNotifier interface {
	TicketReplied(ctx context.Context, t *models.SupportTicket, recipient *models.User, authorName string)
}

func New(log *slog.Logger, tickets TicketReplier, notifier ReplyNotifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.support.replyTicket.New"

		log = log.With(slog.String("op", op))

		sess := mwauth.FromContext(r.Context())

		ticketID := chi.URLParam(r, "id")
		if ticketID == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("ticket id is required"))
			return
		}

		log = log.With(slog.String("ticket_id", ticketID))

		var req ReplyRequest

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

		existing, err := tickets.GetTicket(ticketID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("ticket not found"))
				return
			}

			log.Error("failed to get ticket", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to reply to ticket"))
			return
		}

		isAdmin := sess.Role == models.RoleAdmin
		if !isAdmin && existing.UserID != sess.UserID {
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("ticket belongs to another user"))
			return
		}

		updated, err := tickets.AddTicketMessage(ticketID, sess.UserID, req.Body, isAdmin)
		if err != nil {
			log.Error("failed to add ticket message", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to reply to ticket"))
			return
		}

		notifyOtherSide(r.Context(), log, tickets, notifier, updated, sess, isAdmin)

		log.Info("ticket reply added", slog.String("author_id", sess.UserID))

		render.JSON(w, r, ReplyResponse{
			Response: response.OK(),
			Ticket:   updated,
		})
	}
}

// notifyOtherSide emails whoever did not write the reply: the submitter
// when an admin replies, every admin when the submitter replies.
func notifyOtherSide(ctx context.Context, log *slog.Logger, tickets TicketReplier, notifier ReplyNotifier, t *models.SupportTicket, sess *redisstore.Session, isAdmin bool) {
	if isAdmin {
		submitter, err := tickets.GetUser(t.UserID)
		if err != nil {
			log.Error("failed to look up submitter for notification", sl.Err(err))
			return
		}
		notifier.TicketReplied(ctx, t, submitter, sess.Name)
		return
	}

	admins, err := tickets.ListAdmins()
	if err != nil {
		log.Error("failed to list admins for notification", sl.Err(err))
		return
	}

	for i := range admins {
		notifier.TicketReplied(ctx, t, &admins[i], sess.Name)
	}
}
