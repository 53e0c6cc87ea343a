package uploadDocument

import (
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

type UploadRequest struct {
	Name     string `json:"name" validate:"required"`
	Type     string `json:"type" validate:"required,oneof=garda_vetting tusla_registration first_aid insurance other"`
	FileURL  string `json:"file_url" validate:"required,url"`
	FileSize int64  `json:"file_size" validate:"required,min=1"`
}

type UploadResponse struct {
	response.Response
	DocumentID string `json:"document_id"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=DocumentCreator
type DocumentCreator interface {
	CreateDocument(d *models.Document) (string, error)
}

func New(log *slog.Logger, documents DocumentCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.document.uploadDocument.New"

		log = log.With(slog.String("op", op))

		sess := mwauth.FromContext(r.Context())

		var req UploadRequest

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

		id, err := documents.CreateDocument(&models.Document{
			UserID:   sess.UserID,
			Name:     req.Name,
			Type:     req.Type,
			FileURL:  req.FileURL,
			FileSize: req.FileSize,
		})
		if err != nil {
			log.Error("failed to create document", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to upload document"))
			return
		}

		log.Info("document uploaded", slog.String("document_id", id), slog.String("user_id", sess.UserID))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, UploadResponse{
			Response:   response.OK(),
			DocumentID: id,
		})
	}
}
