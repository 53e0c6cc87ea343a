package addChild

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

type ChildRequest struct {
	Name         string `json:"name" validate:"required"`
	Age          int    `json:"age" validate:"required,min=0,max=17"`
	Allergies    string `json:"allergies"`
	SpecialNeeds string `json:"special_needs"`
}

type ChildResponse struct {
	response.Response
	ChildID string `json:"child_id"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ChildCreator
type ChildCreator interface {
	CreateChild(c *models.Child) (string, error)
}

func New(log *slog.Logger, children ChildCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.child.addChild.New"

		log = log.With(slog.String("op", op))

		sess := mwauth.FromContext(r.Context())

		var req ChildRequest

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

		id, err := children.CreateChild(&models.Child{
			ParentID:     sess.UserID,
			Name:         req.Name,
			Age:          req.Age,
			Allergies:    req.Allergies,
			SpecialNeeds: req.SpecialNeeds,
		})
		if err != nil {
			log.Error("failed to create child", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to add child"))
			return
		}

		log.Info("child added", slog.String("child_id", id), slog.String("parent_id", sess.UserID))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, ChildResponse{
			Response: response.OK(),
			ChildID:  id,
		})
	}
}
