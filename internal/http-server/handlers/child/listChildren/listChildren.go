package listChildren

import (
	"log/slog"
	"net/http"

	"minderbook/internal/http-server/middleware/mwauth"
	"minderbook/internal/lib/api/response"
	"minderbook/internal/lib/logger/sl"
	"minderbook/internal/models"

	"github.com/go-chi/render"
)

type ChildrenResponse struct {
	response.Response
	Children []models.Child `json:"children"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ChildLister
type ChildLister interface {
	ListChildren(parentID string) ([]models.Child, error)
}

func New(log *slog.Logger, children ChildLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.child.listChildren.New"

		log = log.With(slog.String("op", op))

		sess := mwauth.FromContext(r.Context())

		rows, err := children.ListChildren(sess.UserID)
		if err != nil {
			log.Error("failed to list children", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to list children"))
			return
		}

		render.JSON(w, r, ChildrenResponse{
			Response: response.OK(),
			Children: rows,
		})
	}
}
