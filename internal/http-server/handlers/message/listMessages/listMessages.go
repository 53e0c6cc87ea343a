package listMessages

import (
	"log/slog"
	"net/http"

	"minderbook/internal/http-server/middleware/mwauth"
	"minderbook/internal/lib/api/response"
	"minderbook/internal/lib/logger/sl"
	"minderbook/internal/models"

	"github.com/go-chi/render"
)

type ConversationResponse struct {
	response.Response
	Messages []models.Message `json:"messages"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ConversationLister
type ConversationLister interface {
	ListConversation(userID, otherID string) ([]models.Message, error)
}

func New(log *slog.Logger, messages ConversationLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.message.listMessages.New"

		log = log.With(slog.String("op", op))

		sess := mwauth.FromContext(r.Context())

		otherID := r.URL.Query().Get("with")
		if otherID == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("query parameter 'with' is required"))
			return
		}

		rows, err := messages.ListConversation(sess.UserID, otherID)
		if err != nil {
			log.Error("failed to list conversation", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to list messages"))
			return
		}

		render.JSON(w, r, ConversationResponse{
			Response: response.OK(),
			Messages: rows,
		})
	}
}
