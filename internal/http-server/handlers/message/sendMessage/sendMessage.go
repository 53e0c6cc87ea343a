package sendMessage

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

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type SendRequest struct {
	RecipientID string `json:"recipient_id" validate:"required"`
	Body        string `json:"body" validate:"required"`
}

type SendResponse struct {
	response.Response
	MessageID string `json:"message_id"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=MessageStore
type MessageStore interface {
	CreateMessage(m *models.Message) (string, error)
	GetUser(id string) (*models.User, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Notifier
type Notifier interface {
	NewMessage(ctx context.Context, recipient *models.User, senderName string)
}

func New(log *slog.Logger, messages MessageStore, notifier Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.message.sendMessage.New"

		log = log.With(slog.String("op", op))

		sess := mwauth.FromContext(r.Context())

		var req SendRequest

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

		if req.RecipientID == sess.UserID {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("cannot message yourself"))
			return
		}

		recipient, err := messages.GetUser(req.RecipientID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("recipient not found"))
				return
			}

			log.Error("failed to get recipient", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to send message"))
			return
		}

		id, err := messages.CreateMessage(&models.Message{
			SenderID:    sess.UserID,
			RecipientID: req.RecipientID,
			Body:        req.Body,
		})
		if err != nil {
			log.Error("failed to create message", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to send message"))
			return
		}

		notifier.NewMessage(r.Context(), recipient, sess.Name)

		log.Info("message sent",
			slog.String("message_id", id),
			slog.String("recipient_id", req.RecipientID),
		)

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, SendResponse{
			Response:  response.OK(),
			MessageID: id,
		})
	}
}
