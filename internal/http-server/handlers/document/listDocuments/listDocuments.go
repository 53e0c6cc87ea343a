package listDocuments

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

type DocumentsResponse struct {
	response.Response
	Documents  []models.Document     `json:"documents"`
	Pagination pagination.Pagination `json:"pagination"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=DocumentLister
type DocumentLister interface {
	ListDocuments(f postgres.DocumentFilter) ([]models.Document, int64, error)
}

// New serves the document list: owners see their own uploads, admins
// see the full review queue with status/type filters.
func New(log *slog.Logger, documents DocumentLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.document.listDocuments.New"

		log = log.With(slog.String("op", op))

		sess := mwauth.FromContext(r.Context())
		q := r.URL.Query()

		f := postgres.DocumentFilter{
			Status: q.Get("status"),
			Type:   q.Get("type"),
			Params: pagination.ParseParams(q),
		}

		if sess.Role != models.RoleAdmin {
			f.UserID = sess.UserID
		}

		rows, total, err := documents.ListDocuments(f)
		if err != nil {
			log.Error("failed to list documents", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to list documents"))
			return
		}

		log.Info("documents listed", slog.Int("count", len(rows)), slog.Int64("total", total))

		render.JSON(w, r, DocumentsResponse{
			Response:   response.OK(),
			Documents:  rows,
			Pagination: pagination.New(f.Params, total),
		})
	}
}
