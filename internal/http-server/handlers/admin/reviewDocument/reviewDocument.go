package reviewDocument

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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type ReviewRequest struct {
	Status string `json:"status" validate:"required,oneof=APPROVED REJECTED"`
	Note   string `json:"note"`
}

type ReviewResponse struct {
	response.Response
	Document *models.Document `json:"document"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=DocumentReviewer
type DocumentReviewer interface {
	ReviewDocument(id string, status models.DocumentStatus, reviewerID, note string) (*models.Document, error)
	GetUser(id string) (*models.User, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ReviewNotifier
type ReviewNotifier interface {
	DocumentReviewed(ctx context.Context, d *models.Document, owner *models.User)
}

func New(log *slog.Logger, documents DocumentReviewer, notifier ReviewNotifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.reviewDocument.New"

		log = log.With(slog.String("op", op))

		sess := mwauth.FromContext(r.Context())

		documentID := chi.URLParam(r, "id")
		if documentID == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("document id is required"))
			return
		}

		var req ReviewRequest

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

		doc, err := documents.ReviewDocument(documentID, models.DocumentStatus(req.Status), sess.UserID, req.Note)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("document not found"))
				return
			}

			log.Error("failed to review document", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to review document"))
			return
		}

		if owner, oerr := documents.GetUser(doc.UserID); oerr != nil {
			log.Error("failed to look up document owner", sl.Err(oerr))
		} else {
			notifier.DocumentReviewed(r.Context(), doc, owner)
		}

		log.Info("document reviewed",
			slog.String("document_id", documentID),
			slog.String("status", req.Status),
			slog.String("reviewer_id", sess.UserID),
		)

		render.JSON(w, r, ReviewResponse{
			Response: response.OK(),
			Document: doc,
		})
	}
}
